package services

import (
	"errors"
	"strings"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NoticeService manages site-wide announcements. Creating an active
// notice broadcasts it to every active user through the fan-out engine,
// after the insert commits.
type NoticeService struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewNoticeService(db *gorm.DB, notifier *notify.Notifier) *NoticeService {
	return &NoticeService{db: db, notifier: notifier}
}

func (s *NoticeService) Create(p principal.Principal, req *dto.NoticeRequest) (*models.Notice, error) {
	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperr.Validation("title and content are required")
	}

	noticeType := req.Type
	if noticeType == "" {
		noticeType = "announcement"
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	notice := models.Notice{
		ID:       uuid.New(),
		AuthorID: p.UserID,
		Title:    title,
		Content:  content,
		Type:     noticeType,
		IsActive: isActive,
	}
	if err := s.db.Create(&notice).Error; err != nil {
		return nil, serviceErr(err, "notice create failed")
	}

	if isActive {
		s.notifier.Announcement(title, content)
	}
	return &notice, nil
}

func (s *NoticeService) Update(p principal.Principal, noticeID uuid.UUID, req *dto.NoticeRequest) (*models.Notice, error) {
	var notice models.Notice
	if err := s.db.First(&notice, "id = ?", noticeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("notice not found")
		}
		return nil, serviceErr(err, "notice lookup failed")
	}

	updates := map[string]interface{}{}
	if t := strings.TrimSpace(req.Title); t != "" {
		updates["title"] = t
		notice.Title = t
	}
	if c := strings.TrimSpace(req.Content); c != "" {
		updates["content"] = c
		notice.Content = c
	}
	if req.Type != "" {
		updates["type"] = req.Type
		notice.Type = req.Type
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
		notice.IsActive = *req.IsActive
	}
	if len(updates) == 0 {
		return &notice, nil
	}

	if err := s.db.Model(&models.Notice{}).Where("id = ?", noticeID).
		Updates(updates).Error; err != nil {
		return nil, serviceErr(err, "notice update failed")
	}
	return &notice, nil
}

func (s *NoticeService) Delete(p principal.Principal, noticeID uuid.UUID) error {
	res := s.db.Delete(&models.Notice{}, "id = ?", noticeID)
	if res.Error != nil {
		return serviceErr(res.Error, "notice delete failed")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notice not found")
	}
	return nil
}

// ListActive is the public feed of current announcements.
func (s *NoticeService) ListActive(page, limit int) ([]models.Notice, int64, error) {
	query := s.db.Model(&models.Notice{}).Where("is_active = ?", true)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceErr(err, "notice count failed")
	}

	var notices []models.Notice
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&notices).Error; err != nil {
		return nil, 0, serviceErr(err, "notice list failed")
	}
	return notices, total, nil
}

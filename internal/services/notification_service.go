package services

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationService is the poll surface for the rows the fan-out engine
// writes: list, unread count, read flips, soft delete. It never creates
// notifications.
type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

func (s *NotificationService) List(p principal.Principal, unreadOnly bool, page, limit int) ([]models.Notification, int64, error) {
	query := s.db.Model(&models.Notification{}).Where("recipient_id = ?", p.UserID)
	if unreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceErr(err, "notification count failed")
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&notifications).Error; err != nil {
		return nil, 0, serviceErr(err, "notification list failed")
	}
	return notifications, total, nil
}

func (s *NotificationService) UnreadCount(p principal.Principal) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", p.UserID, false).
		Count(&count).Error; err != nil {
		return 0, serviceErr(err, "unread count failed")
	}
	return count, nil
}

func (s *NotificationService) MarkRead(p principal.Principal, notificationID uuid.UUID) error {
	var n models.Notification
	if err := s.db.First(&n, "id = ?", notificationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("notification not found")
		}
		return serviceErr(err, "notification lookup failed")
	}
	if n.RecipientID != p.UserID {
		return apperr.NotFound("notification not found")
	}
	if err := s.db.Model(&n).Update("is_read", true).Error; err != nil {
		return serviceErr(err, "mark read failed")
	}
	return nil
}

func (s *NotificationService) MarkAllRead(p principal.Principal) (int64, error) {
	res := s.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND is_read = ?", p.UserID, false).
		Update("is_read", true)
	if res.Error != nil {
		return 0, serviceErr(res.Error, "mark all read failed")
	}
	return res.RowsAffected, nil
}

func (s *NotificationService) Delete(p principal.Principal, notificationID uuid.UUID) error {
	res := s.db.Where("id = ? AND recipient_id = ?", notificationID, p.UserID).
		Delete(&models.Notification{})
	if res.Error != nil {
		return serviceErr(res.Error, "notification delete failed")
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("notification not found")
	}
	return nil
}

package services

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserService covers profile reads/updates and the admin user listing.
// Role and status transitions belong to ModerationService.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

func (s *UserService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}
		return nil, serviceErr(err, "user lookup failed")
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(p principal.Principal, nickname, contact, avatar *string) (*models.User, error) {
	user, err := s.Get(p.UserID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if nickname != nil {
		if len(*nickname) > 20 {
			return nil, apperr.Validation("nickname is too long")
		}
		updates["nickname"] = *nickname
		user.Nickname = *nickname
	}
	if contact != nil {
		if len(*contact) > 50 {
			return nil, apperr.Validation("contact is too long")
		}
		updates["contact"] = *contact
		user.Contact = *contact
	}
	if avatar != nil {
		updates["avatar"] = *avatar
		user.Avatar = *avatar
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.db.Model(&models.User{}).Where("id = ?", p.UserID).
		Updates(updates).Error; err != nil {
		return nil, serviceErr(err, "profile update failed")
	}
	return user, nil
}

// ListUsers is the admin user-management query with search over student
// id, name, and nickname.
func (s *UserService) ListUsers(search string, role models.Role, status models.UserStatus, page, limit int) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("student_id LIKE ? OR name LIKE ? OR nickname LIKE ?", like, like, like)
	}
	if role != "" {
		query = query.Where("role = ?", role)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceErr(err, "user count failed")
	}

	var users []models.User
	if err := query.Order("created_at DESC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return nil, 0, serviceErr(err, "user list failed")
	}
	return users, total, nil
}

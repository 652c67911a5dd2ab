package services

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MessageService is the private mailbox between two users. The NEW_MESSAGE
// notification is a hint for the unread-count poll, not a delivery channel.
type MessageService struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewMessageService(db *gorm.DB, notifier *notify.Notifier) *MessageService {
	return &MessageService{db: db, notifier: notifier}
}

func (s *MessageService) Send(p principal.Principal, receiverID uuid.UUID, content string) (*models.Message, error) {
	if content == "" {
		return nil, apperr.Validation("content is required")
	}
	if receiverID == p.UserID {
		return nil, apperr.InvalidState("cannot message yourself")
	}

	var receiver models.User
	if err := s.db.Select("id", "status").First(&receiver, "id = ?", receiverID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("recipient not found")
		}
		return nil, serviceErr(err, "recipient lookup failed")
	}

	var sender models.User
	if err := s.db.Select("id", "name", "nickname").First(&sender, "id = ?", p.UserID).Error; err != nil {
		return nil, serviceErr(err, "sender lookup failed")
	}

	msg := models.Message{
		ID:         uuid.New(),
		SenderID:   p.UserID,
		ReceiverID: receiverID,
		Content:    content,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, serviceErr(err, "message create failed")
	}

	name := sender.Nickname
	if name == "" {
		name = sender.Name
	}
	s.notifier.NewMessage(receiverID, name)
	return &msg, nil
}

// Conversation returns the two-way thread between the caller and another
// user, oldest first, and marks the caller's side read.
func (s *MessageService) Conversation(p principal.Principal, otherID uuid.UUID, page, limit int) ([]models.Message, error) {
	var messages []models.Message
	if err := s.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			p.UserID, otherID, otherID, p.UserID).
		Order("created_at ASC").
		Limit(limit).Offset((page - 1) * limit).
		Find(&messages).Error; err != nil {
		return nil, serviceErr(err, "conversation load failed")
	}

	s.db.Model(&models.Message{}).
		Where("sender_id = ? AND receiver_id = ? AND is_read = ?", otherID, p.UserID, false).
		Update("is_read", true)

	return messages, nil
}

func (s *MessageService) UnreadCount(p principal.Principal) (int64, error) {
	var count int64
	if err := s.db.Model(&models.Message{}).
		Where("receiver_id = ? AND is_read = ?", p.UserID, false).
		Count(&count).Error; err != nil {
		return 0, serviceErr(err, "message unread count failed")
	}
	return count, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a campus account. StudentID is the immutable external identity;
// CredentialHash stays empty until activation or until an admin verifies
// the account and a default credential is derived from the student id.
type User struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID      string         `gorm:"size:32;not null;uniqueIndex" json:"student_id"`
	Name           string         `gorm:"size:50;not null" json:"name"`
	Nickname       string         `gorm:"size:50" json:"nickname"`
	Contact        string         `gorm:"size:50" json:"contact,omitempty"`
	Avatar         string         `gorm:"size:255" json:"avatar,omitempty"`
	Role           Role           `gorm:"size:20;not null;default:'unverified';index" json:"role"`
	Status         UserStatus     `gorm:"size:20;not null;default:'active';index" json:"status"`
	CredentialHash string         `gorm:"size:255" json:"-"`
	ActivationCode string         `gorm:"size:64" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`
}

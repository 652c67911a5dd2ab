package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Product is a second-hand listing. SoldAt is set iff Status is sold.
// Status "deleted" is terminal and coincides with the soft-delete flag so
// purged products drop out of every query.
type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	SellerID    uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	CategoryID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"category_id"`
	Name        string         `gorm:"size:100;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"not null" json:"price"`
	Images      datatypes.JSON `gorm:"type:jsonb" json:"images"`
	Contact     string         `gorm:"size:50" json:"contact,omitempty"`
	Status      ProductStatus  `gorm:"size:20;not null;default:'active';index" json:"status"`
	ViewCount   int            `gorm:"default:0" json:"view_count"`
	SoldAt      *time.Time     `json:"sold_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`

	Seller   User     `gorm:"foreignKey:SellerID" json:"-"`
	Category Category `gorm:"foreignKey:CategoryID" json:"-"`
}

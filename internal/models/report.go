package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report is a user complaint about a product. Open mirrors the pending
// status as a nullable column: true while pending, NULL once processed or
// cancelled. The composite unique index therefore allows any number of
// closed reports per (reporter, product) but at most one open one, closing
// the race between two concurrent submits at the storage layer.
type Report struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID      `gorm:"type:uuid;not null;index;uniqueIndex:idx_reports_open_once" json:"reporter_id"`
	ProductID  *uuid.UUID     `gorm:"type:uuid;index;uniqueIndex:idx_reports_open_once" json:"product_id,omitempty"`
	Reason     string         `gorm:"size:100;not null" json:"reason"`
	Content    string         `gorm:"size:1000" json:"content"`
	Status     ReportStatus   `gorm:"size:20;not null;default:'pending';index" json:"status"`
	Open       *bool          `gorm:"uniqueIndex:idx_reports_open_once" json:"-"`
	AdminNote  string         `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	Reporter User     `gorm:"foreignKey:ReporterID" json:"-"`
	Product  *Product `gorm:"foreignKey:ProductID" json:"-"`
}

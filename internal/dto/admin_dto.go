package dto

import (
	"time"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
)

type CreateReportRequest struct {
	ProductID uuid.UUID `json:"product_id"`
	Reason    string    `json:"reason"`
	Content   string    `json:"content"`
}

type ProcessReportRequest struct {
	Action    string `json:"action"` // approve | reject
	AdminNote string `json:"admin_note"`
}

type RemoveProductRequest struct {
	Reason string `json:"reason"`
}

type ChangeRoleRequest struct {
	Role models.Role `json:"role"`
}

type ChangeStatusRequest struct {
	Status models.UserStatus `json:"status"`
	Reason string            `json:"reason"`
}

type NoticeRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Type     string `json:"type"`
	IsActive *bool  `json:"is_active"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DashboardStats is the admin landing-page rollup.
type DashboardStats struct {
	TotalUsers      int64          `json:"total_users"`
	ActiveUsers     int64          `json:"active_users"`
	TotalProducts   int64          `json:"total_products"`
	ActiveProducts  int64          `json:"active_products"`
	TotalCategories int64          `json:"total_categories"`
	PendingReports  int64          `json:"pending_reports"`
	RecentUsers     int64          `json:"recent_users"`
	RecentProducts  int64          `json:"recent_products"`
	Growth          []GrowthPoint  `json:"growth"`
	RecentActivity  []ActivityItem `json:"recent_activity"`
}

// GrowthPoint is one day of the dense registration series; days with no
// registrations still appear with a zero count.
type GrowthPoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// ActivityItem is one entry of the merged recent-activity feed.
type ActivityItem struct {
	Source    string    `json:"source"` // product | report | user
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Status    string    `json:"status"` // success | pending
	CreatedAt time.Time `json:"created_at"`
}

type UserStats struct {
	Total      int64 `json:"total"`
	Verified   int64 `json:"verified"`
	Unverified int64 `json:"unverified"`
	Admins     int64 `json:"admins"`
}

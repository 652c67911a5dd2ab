package services

import (
	"sort"
	"time"

	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"gorm.io/gorm"
)

const (
	activityPageSize = 10
	recentWindow     = 7 * 24 * time.Hour
)

// DashboardService is the read-only admin rollup. It never mutates state
// and depends on the store alone.
type DashboardService struct {
	db *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

func periodDays(period string) int {
	switch period {
	case "week":
		return 7
	case "quarter":
		return 90
	default: // month
		return 30
	}
}

// Stats assembles the dashboard: entity counts, the dense registration
// growth series, and the merged recent-activity feed.
func (s *DashboardService) Stats(period string) (*dto.DashboardStats, error) {
	stats := &dto.DashboardStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.TotalUsers, s.db.Model(&models.User{})},
		{&stats.ActiveUsers, s.db.Model(&models.User{}).Where("status = ?", models.UserActive)},
		{&stats.TotalProducts, s.db.Model(&models.Product{})},
		{&stats.ActiveProducts, s.db.Model(&models.Product{}).Where("status = ?", models.ProductActive)},
		{&stats.TotalCategories, s.db.Model(&models.Category{})},
		{&stats.PendingReports, s.db.Model(&models.Report{}).Where("status = ?", models.ReportPending)},
		{&stats.RecentUsers, s.db.Model(&models.User{}).Where("created_at >= ?", time.Now().Add(-recentWindow))},
		{&stats.RecentProducts, s.db.Model(&models.Product{}).Where("created_at >= ?", time.Now().Add(-recentWindow))},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, serviceErr(err, "dashboard count failed")
		}
	}

	growth, err := s.registrationGrowth(periodDays(period))
	if err != nil {
		return nil, err
	}
	stats.Growth = growth

	activity, err := s.recentActivity()
	if err != nil {
		return nil, err
	}
	stats.RecentActivity = activity

	return stats, nil
}

// registrationGrowth buckets user registrations per day over the window.
// Every day appears exactly once, zero or not, oldest first.
func (s *DashboardService) registrationGrowth(days int) ([]dto.GrowthPoint, error) {
	today := time.Now().Truncate(24 * time.Hour)
	start := today.AddDate(0, 0, -(days - 1))

	var createdAts []time.Time
	if err := s.db.Model(&models.User{}).
		Where("created_at >= ?", start).
		Pluck("created_at", &createdAts).Error; err != nil {
		return nil, serviceErr(err, "dashboard growth query failed")
	}

	byDay := make(map[string]int, days)
	for _, t := range createdAts {
		byDay[t.Format("2006-01-02")]++
	}

	series := make([]dto.GrowthPoint, days)
	for i := 0; i < days; i++ {
		day := start.AddDate(0, 0, i).Format("2006-01-02")
		series[i] = dto.GrowthPoint{Date: day, Count: byDay[day]}
	}
	return series, nil
}

// recentActivity fetches the newest items from each of the three sources,
// tags them with a coarse status, merges, sorts by timestamp descending
// (ties broken by source then id so the order is reproducible), and
// truncates to one page.
func (s *DashboardService) recentActivity() ([]dto.ActivityItem, error) {
	items := make([]dto.ActivityItem, 0, 3*activityPageSize)

	var users []models.User
	if err := s.db.Where("role <> ?", models.RoleUnverified).
		Order("created_at DESC").Limit(activityPageSize).
		Find(&users).Error; err != nil {
		return nil, serviceErr(err, "dashboard activity query failed")
	}
	for _, u := range users {
		items = append(items, dto.ActivityItem{
			Source: "user", ID: u.ID, Title: u.Name,
			Status: "success", CreatedAt: u.CreatedAt,
		})
	}

	var products []models.Product
	if err := s.db.Order("created_at DESC").Limit(activityPageSize).
		Find(&products).Error; err != nil {
		return nil, serviceErr(err, "dashboard activity query failed")
	}
	for _, pr := range products {
		items = append(items, dto.ActivityItem{
			Source: "product", ID: pr.ID, Title: pr.Name,
			Status: "success", CreatedAt: pr.CreatedAt,
		})
	}

	var reports []models.Report
	if err := s.db.Order("created_at DESC").Limit(activityPageSize).
		Find(&reports).Error; err != nil {
		return nil, serviceErr(err, "dashboard activity query failed")
	}
	for _, r := range reports {
		status := "success"
		if r.Status == models.ReportPending {
			status = "pending"
		}
		items = append(items, dto.ActivityItem{
			Source: "report", ID: r.ID, Title: r.Reason,
			Status: status, CreatedAt: r.CreatedAt,
		})
	}

	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		if items[i].Source != items[j].Source {
			return items[i].Source < items[j].Source
		}
		return items[i].ID.String() < items[j].ID.String()
	})

	if len(items) > activityPageSize {
		items = items[:activityPageSize]
	}
	return items, nil
}

// UserStats is the user-management rollup for the admin panel.
func (s *DashboardService) UserStats() (*dto.UserStats, error) {
	stats := &dto.UserStats{}

	counts := []struct {
		dest  *int64
		query *gorm.DB
	}{
		{&stats.Total, s.db.Model(&models.User{})},
		{&stats.Verified, s.db.Model(&models.User{}).Where("role = ?", models.RoleVerified)},
		{&stats.Unverified, s.db.Model(&models.User{}).Where("role = ?", models.RoleUnverified)},
		{&stats.Admins, s.db.Model(&models.User{}).Where("role IN ?", []models.Role{models.RoleAdmin, models.RoleSuperAdmin})},
	}
	for _, c := range counts {
		if err := c.query.Count(c.dest).Error; err != nil {
			return nil, serviceErr(err, "user stats count failed")
		}
	}
	return stats, nil
}

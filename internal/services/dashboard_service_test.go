package services

import (
	"testing"
	"time"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	admin := makeUser(t, db, models.RoleAdmin, models.UserActive)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	makeUser(t, db, models.RoleVerified, models.UserDisabled)
	active := makeProduct(t, db, seller.ID, models.ProductActive)
	makeProduct(t, db, seller.ID, models.ProductRemoved)

	open := true
	require.NoError(t, db.Create(&models.Report{
		ID:         uuid.New(),
		ReporterID: admin.ID,
		ProductID:  &active.ID,
		Reason:     "spam",
		Status:     models.ReportPending,
		Open:       &open,
	}).Error)

	stats, err := svc.Stats("month")
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.TotalUsers)
	assert.EqualValues(t, 2, stats.ActiveUsers)
	assert.EqualValues(t, 2, stats.TotalProducts)
	assert.EqualValues(t, 1, stats.ActiveProducts)
	assert.EqualValues(t, 1, stats.PendingReports)
	assert.EqualValues(t, 3, stats.RecentUsers)
	assert.Len(t, stats.Growth, 30)
}

// The growth series is dense: every day of the window appears exactly
// once, in order, with zeroes for quiet days.
func TestRegistrationGrowthDense(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	makeUser(t, db, models.RoleVerified, models.UserActive)
	old := makeUser(t, db, models.RoleVerified, models.UserActive)
	require.NoError(t, db.Model(old).
		Update("created_at", time.Now().AddDate(0, 0, -3)).Error)

	stats, err := svc.Stats("week")
	require.NoError(t, err)
	require.Len(t, stats.Growth, 7)

	total := 0
	for i, point := range stats.Growth {
		parsed, err := time.Parse("2006-01-02", point.Date)
		require.NoError(t, err)
		if i > 0 {
			prev, _ := time.Parse("2006-01-02", stats.Growth[i-1].Date)
			assert.Equal(t, 24*time.Hour, parsed.Sub(prev), "days must be consecutive")
		}
		total += point.Count
	}
	assert.Equal(t, 2, total)
	assert.Equal(t, 1, stats.Growth[6].Count, "today's registration lands in the last bucket")
}

func TestRecentActivityFeed(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	reporter := makeUser(t, db, models.RoleVerified, models.UserActive)
	unverified := makeUser(t, db, models.RoleUnverified, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	open := true
	require.NoError(t, db.Create(&models.Report{
		ID:         uuid.New(),
		ReporterID: reporter.ID,
		ProductID:  &product.ID,
		Reason:     "spam",
		Status:     models.ReportPending,
		Open:       &open,
	}).Error)

	stats, err := svc.Stats("week")
	require.NoError(t, err)

	sources := map[string]int{}
	for _, item := range stats.RecentActivity {
		sources[item.Source]++
		assert.NotEqual(t, unverified.ID, item.ID, "unverified accounts stay out of the feed")
		if item.Source == "report" {
			assert.Equal(t, "pending", item.Status)
		}
	}
	assert.Equal(t, 2, sources["user"])
	assert.Equal(t, 1, sources["product"])
	assert.Equal(t, 1, sources["report"])
	assert.LessOrEqual(t, len(stats.RecentActivity), 10)

	// newest first
	for i := 1; i < len(stats.RecentActivity); i++ {
		assert.False(t, stats.RecentActivity[i].CreatedAt.
			After(stats.RecentActivity[i-1].CreatedAt))
	}
}

func TestUserStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	makeUser(t, db, models.RoleAdmin, models.UserActive)
	makeUser(t, db, models.RoleSuperAdmin, models.UserActive)
	makeUser(t, db, models.RoleVerified, models.UserActive)
	makeUser(t, db, models.RoleUnverified, models.UserActive)

	stats, err := svc.UserStats()
	require.NoError(t, err)
	assert.EqualValues(t, 4, stats.Total)
	assert.EqualValues(t, 1, stats.Verified)
	assert.EqualValues(t, 1, stats.Unverified)
	assert.EqualValues(t, 2, stats.Admins)
}

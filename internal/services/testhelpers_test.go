package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/database"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an in-memory store migrated with the full schema. The
// connection pool is pinned to one connection so concurrent test
// goroutines serialize instead of each getting an empty database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestNotifier(db *gorm.DB) *notify.Notifier {
	return notify.New(db)
}

// testFixture is the cast shared by the moderation-flow tests.
type testFixture struct {
	db       *gorm.DB
	admin    *models.User
	reporter *models.User
	seller   *models.User
	product  *models.Product
}

func makeUser(t *testing.T, db *gorm.DB, role models.Role, status models.UserStatus) *models.User {
	t.Helper()
	u := &models.User{
		ID:        uuid.New(),
		StudentID: uuid.New().String()[:8],
		Name:      "Test User",
		Nickname:  "tester",
		Role:      role,
		Status:    status,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func makeCategory(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	c := &models.Category{
		ID:   uuid.New(),
		Name: "Category " + uuid.New().String()[:8],
	}
	require.NoError(t, db.Create(c).Error)
	return c
}

func makeProduct(t *testing.T, db *gorm.DB, sellerID uuid.UUID, status models.ProductStatus) *models.Product {
	t.Helper()
	category := makeCategory(t, db)
	p := &models.Product{
		ID:         uuid.New(),
		SellerID:   sellerID,
		CategoryID: category.ID,
		Name:       "Used Bicycle",
		Price:      45,
		Status:     status,
	}
	require.NoError(t, db.Create(p).Error)
	return p
}

func asPrincipal(u *models.User) principal.Principal {
	return principal.Principal{UserID: u.ID, Role: u.Role}
}

func notificationsFor(t *testing.T, db *gorm.DB, userID uuid.UUID) []models.Notification {
	t.Helper()
	var rows []models.Notification
	require.NoError(t, db.Where("recipient_id = ?", userID).Order("created_at").Find(&rows).Error)
	return rows
}

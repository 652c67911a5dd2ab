package database

import (
	"log/slog"

	"github.com/campusgoods/market-backend/internal/auth"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var defaultCategories = []models.Category{
	{Name: "Electronics", Description: "Phones, laptops, gadgets"},
	{Name: "Textbooks", Description: "Course books, references, novels"},
	{Name: "Daily Goods", Description: "Household and dorm items"},
	{Name: "Clothing", Description: "Clothes, shoes, bags"},
	{Name: "Sports", Description: "Fitness and sports equipment"},
	{Name: "Other", Description: "Everything else"},
}

// Seed inserts the default categories and, when a student id is
// configured, a super admin account with the derived initial credential.
// It is idempotent: existing rows are left alone.
func Seed(db *gorm.DB, superAdminStudentID string) error {
	for _, c := range defaultCategories {
		var existing models.Category
		if err := db.Where("name = ?", c.Name).First(&existing).Error; err == nil {
			continue
		}
		c.ID = uuid.New()
		if err := db.Create(&c).Error; err != nil {
			return err
		}
	}

	if superAdminStudentID == "" {
		return nil
	}

	var admin models.User
	if err := db.Where("student_id = ?", superAdminStudentID).First(&admin).Error; err == nil {
		return nil
	}

	admin = models.User{
		ID:             uuid.New(),
		StudentID:      superAdminStudentID,
		Name:           "Administrator",
		Nickname:       "admin",
		Role:           models.RoleSuperAdmin,
		Status:         models.UserActive,
		CredentialHash: auth.HashCredential(auth.DeriveInitialCredential(superAdminStudentID)),
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	slog.Info("super admin seeded", "student_id", superAdminStudentID)
	return nil
}

// SeedDemo populates a handful of verified accounts and listings for
// local development. Skipped entirely when any demo account exists.
func SeedDemo(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).
		Where("student_id LIKE ?", "2023%").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	demoUsers := []models.User{
		{StudentID: "20230001", Name: "Alice Chen", Nickname: "alice"},
		{StudentID: "20230002", Name: "Bob Lee", Nickname: "bob"},
		{StudentID: "20230003", Name: "Carol Wu", Nickname: "carol"},
	}
	for i := range demoUsers {
		u := &demoUsers[i]
		u.ID = uuid.New()
		u.Role = models.RoleVerified
		u.Status = models.UserActive
		u.CredentialHash = auth.HashCredential(auth.DeriveInitialCredential(u.StudentID))
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	var electronics, textbooks models.Category
	if err := db.Where("name = ?", "Electronics").First(&electronics).Error; err != nil {
		return err
	}
	if err := db.Where("name = ?", "Textbooks").First(&textbooks).Error; err != nil {
		return err
	}

	demoProducts := []models.Product{
		{SellerID: demoUsers[0].ID, CategoryID: electronics.ID, Name: "ThinkPad X1 Carbon", Description: "Gen 9, light scratches, battery fine", Price: 520},
		{SellerID: demoUsers[0].ID, CategoryID: textbooks.ID, Name: "Linear Algebra Done Right", Description: "3rd edition, some highlighting", Price: 12},
		{SellerID: demoUsers[1].ID, CategoryID: electronics.ID, Name: "AirPods Pro", Description: "Works, replacement tips included", Price: 80},
	}
	for i := range demoProducts {
		p := &demoProducts[i]
		p.ID = uuid.New()
		p.Status = models.ProductActive
		if err := db.Create(p).Error; err != nil {
			return err
		}
	}

	slog.Info("demo data seeded", "users", len(demoUsers), "products", len(demoProducts))
	return nil
}

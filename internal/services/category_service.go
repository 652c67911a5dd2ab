package services

import (
	"errors"
	"strings"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CategoryService struct {
	db *gorm.DB
}

func NewCategoryService(db *gorm.DB) *CategoryService {
	return &CategoryService{db: db}
}

func (s *CategoryService) List() ([]models.Category, error) {
	var categories []models.Category
	if err := s.db.Order("created_at ASC").Find(&categories).Error; err != nil {
		return nil, serviceErr(err, "category list failed")
	}
	return categories, nil
}

func (s *CategoryService) Create(req *dto.CategoryRequest) (*models.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Validation("name is required")
	}

	var existing models.Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, apperr.Conflict("category %q already exists", name)
	}

	category := models.Category{
		ID:          uuid.New(),
		Name:        name,
		Description: strings.TrimSpace(req.Description),
	}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, serviceErr(err, "category create failed")
	}
	return &category, nil
}

func (s *CategoryService) Update(categoryID uuid.UUID, req *dto.CategoryRequest) (*models.Category, error) {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, serviceErr(err, "category lookup failed")
	}

	updates := map[string]interface{}{}
	if name := strings.TrimSpace(req.Name); name != "" && name != category.Name {
		var existing models.Category
		if err := s.db.Where("name = ? AND id <> ?", name, categoryID).First(&existing).Error; err == nil {
			return nil, apperr.Conflict("category %q already exists", name)
		}
		updates["name"] = name
		category.Name = name
	}
	if req.Description != "" {
		updates["description"] = strings.TrimSpace(req.Description)
		category.Description = updates["description"].(string)
	}
	if len(updates) == 0 {
		return &category, nil
	}

	if err := s.db.Model(&models.Category{}).Where("id = ?", categoryID).
		Updates(updates).Error; err != nil {
		return nil, serviceErr(err, "category update failed")
	}
	return &category, nil
}

// Delete refuses to remove a category that still has listings.
func (s *CategoryService) Delete(categoryID uuid.UUID) error {
	var category models.Category
	if err := s.db.First(&category, "id = ?", categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category not found")
		}
		return serviceErr(err, "category lookup failed")
	}

	var productCount int64
	if err := s.db.Model(&models.Product{}).Where("category_id = ?", categoryID).
		Count(&productCount).Error; err != nil {
		return serviceErr(err, "category product count failed")
	}
	if productCount > 0 {
		return apperr.InvalidState("category still has %d listings", productCount)
	}

	if err := s.db.Delete(&category).Error; err != nil {
		return serviceErr(err, "category delete failed")
	}
	return nil
}

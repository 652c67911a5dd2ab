package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ProductService is the seller-facing listing CRUD. Moderation
// transitions (remove/restore/purge) live in ModerationService; sellers
// only create, edit, and mark sold.
type ProductService struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewProductService(db *gorm.DB, notifier *notify.Notifier) *ProductService {
	return &ProductService{db: db, notifier: notifier}
}

func (s *ProductService) Create(p principal.Principal, req *dto.CreateProductRequest) (*models.Product, error) {
	if req.Name == "" {
		return nil, apperr.Validation("name is required")
	}
	if req.Price <= 0 {
		return nil, apperr.Validation("price must be positive")
	}

	var category models.Category
	if err := s.db.First(&category, "id = ?", req.CategoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, serviceErr(err, "category lookup failed")
	}

	images, _ := json.Marshal(req.Images)
	product := models.Product{
		ID:          uuid.New(),
		SellerID:    p.UserID,
		CategoryID:  req.CategoryID,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Contact:     req.Contact,
		Images:      datatypes.JSON(images),
		Status:      models.ProductActive,
	}
	if err := s.db.Create(&product).Error; err != nil {
		return nil, serviceErr(err, "product create failed")
	}
	return &product, nil
}

// Update edits listing fields. Only the seller or an admin may edit, and
// deleted listings are gone for everyone.
func (s *ProductService) Update(p principal.Principal, productID uuid.UUID, req *dto.UpdateProductRequest) (*models.Product, error) {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, serviceErr(err, "product lookup failed")
	}
	if product.SellerID != p.UserID && !p.IsAdmin() {
		return nil, apperr.InvalidState("only the seller may edit this listing")
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, apperr.Validation("name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, apperr.Validation("price must be positive")
		}
		updates["price"] = *req.Price
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.Contact != nil {
		updates["contact"] = *req.Contact
	}
	if req.Images != nil {
		images, _ := json.Marshal(req.Images)
		updates["images"] = datatypes.JSON(images)
	}
	if len(updates) == 0 {
		return &product, nil
	}

	if err := s.db.Model(&product).Updates(updates).Error; err != nil {
		return nil, serviceErr(err, "product update failed")
	}
	return &product, nil
}

// MarkSold flips an active listing to sold and stamps SoldAt; the two
// always change together.
func (s *ProductService) MarkSold(p principal.Principal, productID uuid.UUID) (*models.Product, error) {
	var product models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&product, "id = ?", productID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("product not found")
			}
			return apperr.Dependency(err, "failed to load product")
		}
		if product.SellerID != p.UserID {
			return apperr.InvalidState("only the seller may mark a listing sold")
		}
		if product.Status != models.ProductActive {
			return apperr.InvalidState("only active listings can be marked sold (current: %s)", product.Status)
		}

		now := time.Now()
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", productID, models.ProductActive).
			Updates(map[string]interface{}{"status": models.ProductSold, "sold_at": now})
		if res.Error != nil {
			return apperr.Dependency(res.Error, "failed to mark sold")
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("only active listings can be marked sold")
		}
		product.Status = models.ProductSold
		product.SoldAt = &now
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "mark sold failed")
	}
	return &product, nil
}

// Get returns one listing and bumps its view counter.
func (s *ProductService) Get(productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.Preload("Seller").Preload("Category").
		First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, serviceErr(err, "product lookup failed")
	}

	// Counter bump is fire-and-forget; a lost increment is fine.
	s.db.Model(&models.Product{}).Where("id = ?", productID).
		UpdateColumn("view_count", gorm.Expr("view_count + 1"))
	product.ViewCount++

	return &product, nil
}

// List is the public browse query. Guests only ever see active listings.
func (s *ProductService) List(q *dto.ProductQuery) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{})

	switch q.Status {
	case "":
		query = query.Where("status = ?", models.ProductActive)
	case "all":
		// admin listing, no filter
	default:
		query = query.Where("status = ?", q.Status)
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID)
	}
	if q.SellerID != nil {
		query = query.Where("seller_id = ?", *q.SellerID)
	}
	if q.Search != "" {
		like := "%" + q.Search + "%"
		query = query.Where("name LIKE ? OR description LIKE ?", like, like)
	}
	if q.MinPrice != nil {
		query = query.Where("price >= ?", *q.MinPrice)
	}
	if q.MaxPrice != nil {
		query = query.Where("price <= ?", *q.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, serviceErr(err, "product count failed")
	}

	sortBy := "created_at"
	switch q.SortBy {
	case "price", "view_count":
		sortBy = q.SortBy
	}
	order := sortBy + " DESC"
	if q.SortOrder == "asc" {
		order = sortBy + " ASC"
	}

	var products []models.Product
	if err := query.Preload("Seller").Preload("Category").
		Order(order).
		Limit(q.Limit).Offset((q.Page - 1) * q.Limit).
		Find(&products).Error; err != nil {
		return nil, 0, serviceErr(err, "product list failed")
	}
	return products, total, nil
}

// AddComment posts a comment and notifies the seller after the insert,
// unless the seller is commenting on their own listing.
func (s *ProductService) AddComment(p principal.Principal, req *dto.CreateCommentRequest) (*models.Comment, error) {
	if req.Content == "" {
		return nil, apperr.Validation("content is required")
	}

	var product models.Product
	if err := s.db.First(&product, "id = ?", req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, serviceErr(err, "product lookup failed")
	}

	var author models.User
	if err := s.db.Select("id", "name", "nickname").First(&author, "id = ?", p.UserID).Error; err != nil {
		return nil, serviceErr(err, "author lookup failed")
	}

	comment := models.Comment{
		ID:        uuid.New(),
		ProductID: req.ProductID,
		AuthorID:  p.UserID,
		Content:   req.Content,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, serviceErr(err, "comment create failed")
	}

	if product.SellerID != p.UserID {
		name := author.Nickname
		if name == "" {
			name = author.Name
		}
		s.notifier.NewComment(product.SellerID, product.Name, name, req.Content)
	}
	return &comment, nil
}

// ListComments returns a product's comments, oldest first.
func (s *ProductService) ListComments(productID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	if err := s.db.Where("product_id = ?", productID).
		Preload("Author").
		Order("created_at ASC").
		Find(&comments).Error; err != nil {
		return nil, serviceErr(err, "comment list failed")
	}
	return comments, nil
}

// Favorite bookmarks a listing; favoriting twice is a Conflict surfaced
// by the unique index.
func (s *ProductService) Favorite(p principal.Principal, productID uuid.UUID) error {
	var product models.Product
	if err := s.db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("product not found")
		}
		return serviceErr(err, "product lookup failed")
	}

	fav := models.Favorite{ID: uuid.New(), UserID: p.UserID, ProductID: productID}
	if err := s.db.Create(&fav).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("already favorited")
		}
		return serviceErr(err, "favorite create failed")
	}
	return nil
}

func (s *ProductService) Unfavorite(p principal.Principal, productID uuid.UUID) error {
	if err := s.db.Where("user_id = ? AND product_id = ?", p.UserID, productID).
		Delete(&models.Favorite{}).Error; err != nil {
		return serviceErr(err, "unfavorite failed")
	}
	return nil
}

func (s *ProductService) ListFavorites(p principal.Principal) ([]models.Favorite, error) {
	var favorites []models.Favorite
	if err := s.db.Where("user_id = ?", p.UserID).
		Preload("Product").
		Order("created_at DESC").
		Find(&favorites).Error; err != nil {
		return nil, serviceErr(err, "favorite list failed")
	}
	return favorites, nil
}

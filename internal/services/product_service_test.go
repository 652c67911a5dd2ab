package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProductService(t *testing.T) (*ProductService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewProductService(db, newTestNotifier(db)), db
}

func TestCreateProduct(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	category := makeCategory(t, db)

	product, err := svc.Create(asPrincipal(seller), &dto.CreateProductRequest{
		Name:       "Desk Lamp",
		Price:      8.5,
		CategoryID: category.ID,
		Images:     []string{"lamp.jpg"},
	})
	require.NoError(t, err)
	assert.Equal(t, models.ProductActive, product.Status)
	assert.Equal(t, seller.ID, product.SellerID)

	_, err = svc.Create(asPrincipal(seller), &dto.CreateProductRequest{
		Name: "", Price: 5, CategoryID: category.ID,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(asPrincipal(seller), &dto.CreateProductRequest{
		Name: "Free Stuff", Price: 0, CategoryID: category.ID,
	})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.Create(asPrincipal(seller), &dto.CreateProductRequest{
		Name: "Lost", Price: 5, CategoryID: uuid.New(),
	})
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestUpdateProductOwnership(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	stranger := makeUser(t, db, models.RoleVerified, models.UserActive)
	admin := makeUser(t, db, models.RoleAdmin, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	newName := "Refurbished Bicycle"
	_, err := svc.Update(asPrincipal(stranger), product.ID, &dto.UpdateProductRequest{Name: &newName})
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	updated, err := svc.Update(asPrincipal(admin), product.ID, &dto.UpdateProductRequest{Name: &newName})
	require.NoError(t, err)
	assert.Equal(t, "Refurbished Bicycle", updated.Name)
}

func TestMarkSold(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	stranger := makeUser(t, db, models.RoleVerified, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	_, err := svc.MarkSold(asPrincipal(stranger), product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))

	sold, err := svc.MarkSold(asPrincipal(seller), product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductSold, sold.Status)
	require.NotNil(t, sold.SoldAt, "sold status and timestamp change together")

	_, err = svc.MarkSold(asPrincipal(seller), product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestListProducts(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	makeProduct(t, db, seller.ID, models.ProductActive)
	makeProduct(t, db, seller.ID, models.ProductRemoved)
	makeProduct(t, db, seller.ID, models.ProductSold)

	// public browse only surfaces active listings
	products, total, err := svc.List(&dto.ProductQuery{Page: 1, Limit: 20})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, models.ProductActive, products[0].Status)

	// the admin console sees everything
	_, total, err = svc.List(&dto.ProductQuery{Page: 1, Limit: 20, Status: "all"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)

	_, total, err = svc.List(&dto.ProductQuery{Page: 1, Limit: 20, Status: "sold"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestAddComment(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	buyer := makeUser(t, db, models.RoleVerified, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	comment, err := svc.AddComment(asPrincipal(buyer), &dto.CreateCommentRequest{
		ProductID: product.ID,
		Content:   "still available?",
	})
	require.NoError(t, err)
	assert.Equal(t, buyer.ID, comment.AuthorID)

	rows := notificationsFor(t, db, seller.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyNewComment, rows[0].Type)

	// seller commenting on their own listing is not self-notified
	_, err = svc.AddComment(asPrincipal(seller), &dto.CreateCommentRequest{
		ProductID: product.ID,
		Content:   "yes, pickup at the dorms",
	})
	require.NoError(t, err)
	assert.Len(t, notificationsFor(t, db, seller.ID), 1)
}

func TestFavorites(t *testing.T) {
	svc, db := newProductService(t)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	buyer := makeUser(t, db, models.RoleVerified, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	require.NoError(t, svc.Favorite(asPrincipal(buyer), product.ID))

	err := svc.Favorite(asPrincipal(buyer), product.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	favorites, err := svc.ListFavorites(asPrincipal(buyer))
	require.NoError(t, err)
	assert.Len(t, favorites, 1)

	require.NoError(t, svc.Unfavorite(asPrincipal(buyer), product.ID))
	favorites, err = svc.ListFavorites(asPrincipal(buyer))
	require.NoError(t, err)
	assert.Empty(t, favorites)

	// unfavorite is idempotent enough to re-favorite afterwards
	require.NoError(t, svc.Favorite(asPrincipal(buyer), product.ID))
}

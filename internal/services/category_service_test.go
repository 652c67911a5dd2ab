package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)

	created, err := svc.Create(&dto.CategoryRequest{Name: "Music Gear", Description: "guitars, keyboards"})
	require.NoError(t, err)
	assert.Equal(t, "Music Gear", created.Name)

	_, err = svc.Create(&dto.CategoryRequest{Name: "Music Gear"})
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))

	_, err = svc.Create(&dto.CategoryRequest{Name: "  "})
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	updated, err := svc.Update(created.ID, &dto.CategoryRequest{Name: "Instruments"})
	require.NoError(t, err)
	assert.Equal(t, "Instruments", updated.Name)

	list, err := svc.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, svc.Delete(created.ID))
	err = svc.Delete(created.ID)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// A category with listings cannot be deleted out from under them.
func TestCategoryDeleteWithProducts(t *testing.T) {
	db := newTestDB(t)
	svc := NewCategoryService(db)
	seller := makeUser(t, db, models.RoleVerified, models.UserActive)
	product := makeProduct(t, db, seller.ID, models.ProductActive)

	err := svc.Delete(product.CategoryID)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

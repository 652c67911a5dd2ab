package services

import (
	"testing"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/auth"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModerationService(t *testing.T) (*ModerationService, *testFixture) {
	t.Helper()
	db := newTestDB(t)
	svc := NewModerationService(db, newTestNotifier(db))
	f := &testFixture{
		db:     db,
		admin:  makeUser(t, db, models.RoleAdmin, models.UserActive),
		seller: makeUser(t, db, models.RoleVerified, models.UserActive),
	}
	return svc, f
}

func TestRemoveProduct(t *testing.T) {
	svc, f := newModerationService(t)
	product := makeProduct(t, f.db, f.seller.ID, models.ProductActive)

	removed, err := svc.RemoveProduct(asPrincipal(f.admin), product.ID, "prohibited item")
	require.NoError(t, err)
	assert.Equal(t, models.ProductRemoved, removed.Status)

	rows := notificationsFor(t, f.db, f.seller.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyProductRemoved, rows[0].Type)
	assert.Contains(t, rows[0].Content, "prohibited item")

	// a second remove is an error, not a silent no-op
	_, err = svc.RemoveProduct(asPrincipal(f.admin), product.ID, "again")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
	assert.Len(t, notificationsFor(t, f.db, f.seller.ID), 1)
}

func TestRemoveProductGuards(t *testing.T) {
	svc, f := newModerationService(t)

	_, err := svc.RemoveProduct(asPrincipal(f.admin), uuid.New(), "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))

	sold := makeProduct(t, f.db, f.seller.ID, models.ProductSold)
	_, err = svc.RemoveProduct(asPrincipal(f.admin), sold.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState))
}

func TestRestoreProduct(t *testing.T) {
	svc, f := newModerationService(t)
	product := makeProduct(t, f.db, f.seller.ID, models.ProductRemoved)

	restored, err := svc.RestoreProduct(asPrincipal(f.admin), product.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ProductActive, restored.Status)

	rows := notificationsFor(t, f.db, f.seller.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyProductRestored, rows[0].Type)
}

// removed -> active is the only restore edge; every other source state
// must be refused.
func TestRestoreProductOnlyFromRemoved(t *testing.T) {
	svc, f := newModerationService(t)

	for _, status := range []models.ProductStatus{
		models.ProductActive, models.ProductSold,
	} {
		product := makeProduct(t, f.db, f.seller.ID, status)
		_, err := svc.RestoreProduct(asPrincipal(f.admin), product.ID)
		assert.True(t, apperr.IsKind(err, apperr.KindInvalidState), "status %s", status)
	}
	assert.Empty(t, notificationsFor(t, f.db, f.seller.ID))
}

func TestPurgeProduct(t *testing.T) {
	svc, f := newModerationService(t)
	product := makeProduct(t, f.db, f.seller.ID, models.ProductRemoved)

	require.NoError(t, svc.PurgeProduct(asPrincipal(f.admin), product.ID, "gone"))

	// row is soft-deleted, status terminal
	var purged models.Product
	require.NoError(t, f.db.Unscoped().First(&purged, "id = ?", product.ID).Error)
	assert.Equal(t, models.ProductDeleted, purged.Status)
	assert.True(t, purged.DeletedAt.Valid)

	// purge sends nothing to the seller
	assert.Empty(t, notificationsFor(t, f.db, f.seller.ID))

	// and is terminal
	err := svc.PurgeProduct(asPrincipal(f.admin), product.ID, "")
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

func TestChangeUserRole(t *testing.T) {
	svc, f := newModerationService(t)
	target := makeUser(t, f.db, models.RoleVerified, models.UserActive)

	updated, err := svc.ChangeUserRole(asPrincipal(f.admin), target.ID, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, updated.Role)

	rows := notificationsFor(t, f.db, target.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyRoleChanged, rows[0].Type)
}

func TestChangeUserRoleGuards(t *testing.T) {
	svc, f := newModerationService(t)

	_, err := svc.ChangeUserRole(asPrincipal(f.admin), f.admin.ID, models.RoleVerified)
	assert.True(t, apperr.IsKind(err, apperr.KindInvalidState), "self-demotion must be refused")

	target := makeUser(t, f.db, models.RoleVerified, models.UserActive)
	_, err = svc.ChangeUserRole(asPrincipal(f.admin), target.ID, "emperor")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))

	_, err = svc.ChangeUserRole(asPrincipal(f.admin), uuid.New(), models.RoleVerified)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
}

// Verifying an account with no credential assigns the derived initial
// one, so the student can log in with a known first secret.
func TestChangeUserRoleAssignsInitialCredential(t *testing.T) {
	svc, f := newModerationService(t)

	target := &models.User{
		ID:        uuid.New(),
		StudentID: "20251234",
		Name:      "Fresh Import",
		Role:      models.RoleUnverified,
		Status:    models.UserActive,
	}
	require.NoError(t, f.db.Create(target).Error)

	updated, err := svc.ChangeUserRole(asPrincipal(f.admin), target.ID, models.RoleVerified)
	require.NoError(t, err)
	assert.Equal(t, models.RoleVerified, updated.Role)

	var stored models.User
	require.NoError(t, f.db.First(&stored, "id = ?", target.ID).Error)
	assert.True(t, auth.Verify(stored.CredentialHash, auth.DeriveInitialCredential("20251234")))

	// an account that already holds a credential keeps it
	withCred := makeUser(t, f.db, models.RoleUnverified, models.UserActive)
	require.NoError(t, f.db.Model(withCred).Update("credential_hash", "keepme").Error)
	_, err = svc.ChangeUserRole(asPrincipal(f.admin), withCred.ID, models.RoleVerified)
	require.NoError(t, err)
	stored = models.User{}
	require.NoError(t, f.db.First(&stored, "id = ?", withCred.ID).Error)
	assert.Equal(t, "keepme", stored.CredentialHash)
}

func TestChangeUserStatus(t *testing.T) {
	svc, f := newModerationService(t)
	target := makeUser(t, f.db, models.RoleVerified, models.UserActive)

	updated, err := svc.ChangeUserStatus(asPrincipal(f.admin), target.ID, models.UserFrozen, "suspicious activity")
	require.NoError(t, err)
	assert.Equal(t, models.UserFrozen, updated.Status)

	rows := notificationsFor(t, f.db, target.ID)
	require.Len(t, rows, 1)
	assert.Equal(t, models.NotifyAccountStatus, rows[0].Type)
	assert.Contains(t, rows[0].Content, "suspicious activity")

	// back to active works and re-notifies without the reason
	updated, err = svc.ChangeUserStatus(asPrincipal(f.admin), target.ID, models.UserActive, "ignored")
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, updated.Status)
	rows = notificationsFor(t, f.db, target.ID)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.NotContains(t, row.Content, "ignored")
	}
}

func TestChangeUserStatusNoOp(t *testing.T) {
	svc, f := newModerationService(t)
	target := makeUser(t, f.db, models.RoleVerified, models.UserActive)

	updated, err := svc.ChangeUserStatus(asPrincipal(f.admin), target.ID, models.UserActive, "")
	require.NoError(t, err)
	assert.Equal(t, models.UserActive, updated.Status)
	assert.Empty(t, notificationsFor(t, f.db, target.ID), "no-op change must not notify")

	_, err = svc.ChangeUserStatus(asPrincipal(f.admin), target.ID, "vaporized", "")
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
}

package services

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/auth"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/campusgoods/market-backend/internal/principal"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationService owns the administrator-initiated transitions on
// products (remove / restore / purge) and users (role / status) that do
// not originate from a report. Same discipline as report processing: one
// transaction, then best-effort notification after commit.
type ModerationService struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewModerationService(db *gorm.DB, notifier *notify.Notifier) *ModerationService {
	return &ModerationService{db: db, notifier: notifier}
}

func loadProduct(tx *gorm.DB, productID uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := tx.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("product not found")
		}
		return nil, apperr.Dependency(err, "failed to load product")
	}
	return &product, nil
}

// RemoveProduct takes an active listing off the market. Any other source
// state (removed, sold, deleted) is an InvalidState error rather than a
// silent no-op so a duplicate click is visible to the operator.
func (s *ModerationService) RemoveProduct(p principal.Principal, productID uuid.UUID, reason string) (*models.Product, error) {
	var product *models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if product, err = loadProduct(tx, productID); err != nil {
			return err
		}
		if product.Status != models.ProductActive {
			return apperr.InvalidState("only active listings can be removed (current: %s)", product.Status)
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", productID, models.ProductActive).
			Update("status", models.ProductRemoved)
		if res.Error != nil {
			return apperr.Dependency(res.Error, "failed to remove product")
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("only active listings can be removed")
		}
		product.Status = models.ProductRemoved
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "product remove failed")
	}

	s.notifier.ProductRemoved(product.SellerID, product.Name, reason)
	return product, nil
}

// RestoreProduct is the single reverse edge of the product state machine:
// removed -> active, nothing else.
func (s *ModerationService) RestoreProduct(p principal.Principal, productID uuid.UUID) (*models.Product, error) {
	var product *models.Product

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var err error
		if product, err = loadProduct(tx, productID); err != nil {
			return err
		}
		if product.Status != models.ProductRemoved {
			return apperr.InvalidState("only removed listings can be restored (current: %s)", product.Status)
		}
		res := tx.Model(&models.Product{}).
			Where("id = ? AND status = ?", productID, models.ProductRemoved).
			Update("status", models.ProductActive)
		if res.Error != nil {
			return apperr.Dependency(res.Error, "failed to restore product")
		}
		if res.RowsAffected == 0 {
			return apperr.InvalidState("only removed listings can be restored")
		}
		product.Status = models.ProductActive
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "product restore failed")
	}

	s.notifier.ProductRestored(product.SellerID, product.Name)
	return product, nil
}

// PurgeProduct is the terminal transition: any state except deleted goes
// to deleted, and the row is soft-deleted so it vanishes from every
// listing. Purging deliberately sends no notification.
func (s *ModerationService) PurgeProduct(p principal.Principal, productID uuid.UUID, reason string) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		product, err := loadProduct(tx, productID)
		if err != nil {
			return err
		}
		if product.Status == models.ProductDeleted {
			return apperr.InvalidState("listing is already deleted")
		}
		if err := tx.Model(&models.Product{}).Where("id = ?", productID).
			Update("status", models.ProductDeleted).Error; err != nil {
			return apperr.Dependency(err, "failed to mark product deleted")
		}
		if err := tx.Delete(&models.Product{}, "id = ?", productID).Error; err != nil {
			return apperr.Dependency(err, "failed to delete product")
		}
		return nil
	})
	return serviceErr(err, "product purge failed")
}

// ChangeUserRole updates a user's role. Admins cannot change their own
// role. The unverified -> verified transition also assigns the derived
// initial credential when the account has none, so the student has a
// known first-login secret; this coupling is deliberate.
func (s *ModerationService) ChangeUserRole(p principal.Principal, userID uuid.UUID, newRole models.Role) (*models.User, error) {
	if !newRole.Valid() {
		return nil, apperr.Validation("invalid role %q", newRole)
	}
	if p.UserID == userID {
		return nil, apperr.InvalidState("administrators cannot change their own role")
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user not found")
			}
			return apperr.Dependency(err, "failed to load user")
		}

		updates := map[string]interface{}{"role": newRole}
		if user.Role == models.RoleUnverified && newRole == models.RoleVerified && user.CredentialHash == "" {
			updates["credential_hash"] = auth.HashCredential(auth.DeriveInitialCredential(user.StudentID))
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Updates(updates).Error; err != nil {
			return apperr.Dependency(err, "failed to update role")
		}

		user.Role = newRole
		if hash, ok := updates["credential_hash"].(string); ok {
			user.CredentialHash = hash
		}
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "role change failed")
	}

	s.notifier.RoleChanged(user.ID, newRole)
	return &user, nil
}

// ChangeUserStatus moves a user between active, disabled, and frozen in
// any direction. A no-op change succeeds but does not spam a
// notification.
func (s *ModerationService) ChangeUserStatus(p principal.Principal, userID uuid.UUID, newStatus models.UserStatus, reason string) (*models.User, error) {
	if !newStatus.Valid() {
		return nil, apperr.Validation("invalid status %q", newStatus)
	}

	var user models.User
	changed := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("user not found")
			}
			return apperr.Dependency(err, "failed to load user")
		}
		if user.Status == newStatus {
			return nil
		}
		if err := tx.Model(&models.User{}).Where("id = ?", userID).
			Update("status", newStatus).Error; err != nil {
			return apperr.Dependency(err, "failed to update status")
		}
		user.Status = newStatus
		changed = true
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "status change failed")
	}

	if changed {
		s.notifier.AccountStatusChanged(user.ID, newStatus, reason)
	}
	return &user, nil
}

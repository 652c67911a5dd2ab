package services

import (
	"errors"
	"time"

	"github.com/campusgoods/market-backend/internal/apperr"
	"github.com/campusgoods/market-backend/internal/auth"
	"github.com/campusgoods/market-backend/internal/config"
	"github.com/campusgoods/market-backend/internal/dto"
	"github.com/campusgoods/market-backend/internal/models"
	"github.com/campusgoods/market-backend/internal/notify"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// AuthService issues tokens and runs the activation flow. Identity checks
// live here; authorization decisions live with the managers that receive
// the resulting principal.
type AuthService struct {
	db       *gorm.DB
	cfg      *config.Config
	notifier *notify.Notifier
}

func NewAuthService(db *gorm.DB, cfg *config.Config, notifier *notify.Notifier) *AuthService {
	return &AuthService{db: db, cfg: cfg, notifier: notifier}
}

// Login authenticates by student id and password (which may still be the
// derived initial credential for accounts verified by an admin).
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	if req.StudentID == "" || req.Password == "" {
		return nil, apperr.Validation("student id and password are required")
	}

	var user models.User
	if err := s.db.Where("student_id = ?", req.StudentID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("account not found")
		}
		return nil, serviceErr(err, "login lookup failed")
	}
	if user.Status != models.UserActive {
		return nil, apperr.InvalidState("account is %s", user.Status)
	}
	if user.CredentialHash == "" {
		return nil, apperr.InvalidState("account has no credential yet; complete activation first")
	}
	if !auth.Verify(user.CredentialHash, req.Password) {
		return nil, apperr.Validation("invalid student id or password")
	}

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, serviceErr(err, "token generation failed")
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(&user)}, nil
}

// Activate claims a pre-imported unverified account: the student proves
// possession of the activation code, picks a password, and becomes a
// verified user. The welcome notification fires after the update commits.
func (s *AuthService) Activate(req *dto.ActivateRequest) (*dto.AuthResponse, error) {
	if req.StudentID == "" || req.Name == "" || req.ActivationCode == "" || req.Password == "" || req.Nickname == "" {
		return nil, apperr.Validation("all activation fields are required")
	}

	var user models.User
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ?", req.StudentID).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("student id not found")
			}
			return apperr.Dependency(err, "failed to load account")
		}
		if user.Name != req.Name {
			return apperr.Validation("name does not match our records")
		}
		if user.CredentialHash != "" && user.Role != models.RoleUnverified {
			return apperr.Conflict("account already activated")
		}
		if user.ActivationCode == "" || user.ActivationCode != req.ActivationCode {
			return apperr.Validation("invalid activation code")
		}

		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			return apperr.Dependency(err, "failed to hash password")
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).
			Updates(map[string]interface{}{
				"credential_hash": hash,
				"nickname":        req.Nickname,
				"role":            models.RoleVerified,
				"activation_code": "",
			}).Error; err != nil {
			return apperr.Dependency(err, "failed to activate account")
		}
		user.CredentialHash = hash
		user.Nickname = req.Nickname
		user.Role = models.RoleVerified
		return nil
	})
	if err != nil {
		return nil, serviceErr(err, "activation failed")
	}

	s.notifier.Welcome(user.ID, user.Name)

	token, err := s.generateToken(&user)
	if err != nil {
		return nil, serviceErr(err, "token generation failed")
	}
	return &dto.AuthResponse{Token: token, User: dto.NewUserResponse(&user)}, nil
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":        user.ID.String(),
		"student_id": user.StudentID,
		"role":       string(user.Role),
		"iat":        time.Now().Unix(),
		"exp":        time.Now().Add(s.cfg.JWTExpiry).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

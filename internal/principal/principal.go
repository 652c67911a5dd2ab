// Package principal is the authenticated identity handed to the core
// managers. Handlers resolve it once from the JWT and pass it explicitly;
// no core code ever reads ambient request state.
package principal

import (
	"errors"

	"github.com/campusgoods/market-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type Principal struct {
	UserID uuid.UUID
	Role   models.Role
}

func (p Principal) IsAdmin() bool { return p.Role.IsAdmin() }

// FromContext extracts the principal from the JWT the auth middleware
// stored in locals.
func FromContext(c *fiber.Ctx) (Principal, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return Principal{}, errors.New("no token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, errors.New("invalid claims")
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Principal{}, errors.New("missing or malformed sub claim")
	}

	role, _ := claims["role"].(string)
	return Principal{UserID: userID, Role: models.Role(role)}, nil
}

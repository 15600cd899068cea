package scope

import (
	"errors"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// GetIdentityID extracts the caller's identity UUID from JWT claims in context.
func GetIdentityID(c *fiber.Ctx) (uuid.UUID, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, errors.New("missing sub claim")
	}

	return uuid.Parse(sub)
}

// GetIdentity returns the Identity loaded by the RequireIdentity middleware.
func GetIdentity(c *fiber.Ctx) (*models.Identity, bool) {
	identity, ok := c.Locals("identity").(*models.Identity)
	return identity, ok
}

package middleware

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/scope"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RequireIdentity resolves the JWT subject to a stored Identity and puts it
// in locals for downstream handlers. Runs after JWTProtected.
func RequireIdentity(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identityID, err := scope.GetIdentityID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var identity models.Identity
		if err := db.First(&identity, "id = ?", identityID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		c.Locals("identity", &identity)
		return c.Next()
	}
}

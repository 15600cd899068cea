package handlers

import (
	"encoding/json"
	"errors"

	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/dto"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/models"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/services"
	"github.com/gofiber/fiber/v2"
)

// genericAuthMessage is returned for NotFound, BadCredential and
// RoleMismatch alike so the auth surface leaks nothing about which
// accounts or hospitals exist.
const genericAuthMessage = "Invalid contact or password"

func authFailure(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrNotFound) ||
		errors.Is(err, services.ErrBadCredential) ||
		errors.Is(err, services.ErrRoleMismatch) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: genericAuthMessage,
		})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: true, Message: "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}

// decodeProfile turns the free-form profile object from a request into the
// role-variant shape for the given role.
func decodeProfile(role models.Role, raw map[string]any) (models.RoleProfile, error) {
	if len(raw) == 0 {
		return models.DecodeProfile(role, nil)
	}
	b, err := json.Marshal(raw)
	if err != nil {
		return nil, err
	}
	return models.DecodeProfile(role, b)
}

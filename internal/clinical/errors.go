package clinical

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// ErrorStatus maps gate failures to HTTP statuses for the record modules.
func ErrorStatus(err error) int {
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, ErrNoHospitalAffiliation), errors.Is(err, ErrRoleNotPermitted):
		return fiber.StatusForbidden
	default:
		return fiber.StatusBadRequest
	}
}

package clinical

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Plugin defines the interface every clinical record module implements.
type Plugin interface {
	// Kind returns the record kind this module persists.
	Kind() RecordKind

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts the module's routes on the given Fiber group.
	// The group is already prefixed with /api/p and has JWT middleware plus
	// identity loading applied.
	RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config)
}

package visits

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type VisitsPlugin struct{}

func New() *VisitsPlugin {
	return &VisitsPlugin{}
}

func (p *VisitsPlugin) Kind() clinical.RecordKind { return clinical.KindVisit }

func (p *VisitsPlugin) Models() []interface{} {
	return []interface{}{&Visit{}}
}

func (p *VisitsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewVisitService(db)
	h := NewVisitHandler(svc)

	router.Post("/visits", h.Create)
	router.Get("/visits", h.List)
}

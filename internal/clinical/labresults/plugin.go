package labresults

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type LabResultsPlugin struct{}

func New() *LabResultsPlugin {
	return &LabResultsPlugin{}
}

func (p *LabResultsPlugin) Kind() clinical.RecordKind { return clinical.KindLabResult }

func (p *LabResultsPlugin) Models() []interface{} {
	return []interface{}{&LabResult{}}
}

func (p *LabResultsPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewLabResultService(db)
	h := NewLabResultHandler(svc)

	router.Post("/lab-results", h.Create)
	router.Get("/lab-results", h.List)
}

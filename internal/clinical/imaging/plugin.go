package imaging

import (
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/clinical"
	"github.com/Muhammad-Bilal1605/CardioLink-sub002/internal/config"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ImagingPlugin struct{}

func New() *ImagingPlugin {
	return &ImagingPlugin{}
}

func (p *ImagingPlugin) Kind() clinical.RecordKind { return clinical.KindImaging }

func (p *ImagingPlugin) Models() []interface{} {
	return []interface{}{&ImagingStudy{}}
}

func (p *ImagingPlugin) RegisterRoutes(router fiber.Router, db *gorm.DB, _ *config.Config) {
	svc := NewImagingService(db)
	h := NewImagingHandler(svc)

	router.Post("/imaging", h.Create)
	router.Get("/imaging", h.List)
}

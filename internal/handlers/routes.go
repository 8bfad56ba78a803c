package handlers

import (
	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Analyze *AnalyzeHandler
	Results *ResultHandler
	Meta    *MetaHandler
}

// RegisterRoutes mounts the JSON API under /api/v1.
func RegisterRoutes(app *fiber.App, h Handlers) {
	api := app.Group("/api/v1")

	api.Get("/health", h.Meta.HandleHealth)
	api.Get("/about", h.Meta.HandleAbout)
	api.Get("/skills", h.Meta.HandleSkills)

	api.Post("/analyze", h.Analyze.HandleAnalyze)
	api.Post("/analyze/text", h.Analyze.HandleAnalyzeText)
	api.Post("/compare", h.Analyze.HandleCompare)

	api.Get("/results", h.Results.HandleListResults)
	api.Get("/results/:id", h.Results.HandleGetResult)
	api.Delete("/results", h.Results.HandleClearResults)
	api.Get("/batches/:id", h.Results.HandleGetBatch)
}

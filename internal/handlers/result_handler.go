package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

const (
	defaultResultsLimit = 20
	maxResultsLimit     = 200
)

type ResultHandler struct {
	repo repositories.AnalysisRepository
}

func NewResultHandler(repo repositories.AnalysisRepository) *ResultHandler {
	return &ResultHandler{
		repo: repo,
	}
}

// HandleListResults returns the most recent analyses, newest first.
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", defaultResultsLimit)
	if limit < 1 || limit > maxResultsLimit {
		return badRequest("limit must be between 1 and %d", maxResultsLimit)
	}

	analyses, err := h.repo.FindRecent(limit)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"results": analyses,
		"count":   len(analyses),
	})
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("invalid analysis ID")
	}

	analysis, err := h.repo.FindByID(id)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"analysis":      analysis,
		"match_percent": analysis.MatchPercent(),
		"rating":        models.Rating(analysis.MatchPercent()),
	})
}

// HandleGetBatch rebuilds the results table of an earlier comparison.
func (h *ResultHandler) HandleGetBatch(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest("invalid batch ID")
	}

	analyses, err := h.repo.FindByBatch(id)
	if err != nil {
		return err
	}

	rows := make([]models.ComparisonRow, len(analyses))
	for i := range analyses {
		rows[i] = models.NewComparisonRow(&analyses[i])
	}

	return c.JSON(fiber.Map{
		"batch_id": id.String(),
		"results":  rows,
	})
}

func (h *ResultHandler) HandleClearResults(c *fiber.Ctx) error {
	if err := h.repo.DeleteAll(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Results cleared",
	})
}

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type MetaHandler struct {
	similarity      services.SimilarityService
	skills          services.SkillExtractorService
	semanticEnabled bool
	maxFileSize     int64
}

func NewMetaHandler(
	similarity services.SimilarityService,
	skills services.SkillExtractorService,
	semanticEnabled bool,
	maxFileSize int64,
) *MetaHandler {
	return &MetaHandler{
		similarity:      similarity,
		skills:          skills,
		semanticEnabled: semanticEnabled,
		maxFileSize:     maxFileSize,
	}
}

func (h *MetaHandler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now(),
	})
}

// HandleAbout describes how scores are computed and how to read them.
func (h *MetaHandler) HandleAbout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"name":              "Resume Matcher",
		"score_bands":       models.ScoreBands,
		"model":             h.similarity.ModelInfo(),
		"semantic_scoring":  h.semanticEnabled,
		"supported_formats": services.SupportedFormats,
		"max_file_size":     h.maxFileSize,
	})
}

func (h *MetaHandler) HandleSkills(c *fiber.Ctx) error {
	vocab := h.skills.Vocabulary()
	return c.JSON(fiber.Map{
		"categories":  vocab.Categories,
		"soft_skills": vocab.SoftSkills,
		"total":       len(vocab.AllSkills()),
	})
}

package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

type AnalyzeHandler struct {
	analyzer  services.AnalyzerService
	extractor services.TextExtractorService
	upload    services.UploadService
	validator *validator.Validate
}

func NewAnalyzeHandler(
	analyzer services.AnalyzerService,
	extractor services.TextExtractorService,
	upload services.UploadService,
) *AnalyzeHandler {
	return &AnalyzeHandler{
		analyzer:  analyzer,
		extractor: extractor,
		upload:    upload,
		validator: validator.New(),
	}
}

// HandleAnalyze scores an uploaded resume against a pasted job description.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("resume")
	if err != nil {
		return badRequest("'resume' file is required")
	}

	file, err := h.upload.ReadFile(fileHeader)
	if err != nil {
		return err
	}

	extracted, err := h.extractor.ExtractText(file.Name, file.Data)
	if err != nil {
		return err
	}

	report, err := h.analyzer.AnalyzeResume(c.UserContext(), services.AnalysisInput{
		Filename:       file.Name,
		ResumeText:     extracted.Text,
		JobDescription: c.FormValue("job_description"),
	})
	if err != nil {
		return err
	}

	info := file.Info()
	report.File = &info

	return c.JSON(report)
}

// HandleAnalyzeText is the JSON variant of HandleAnalyze for already extracted text.
func (h *AnalyzeHandler) HandleAnalyzeText(c *fiber.Ctx) error {
	var req models.AnalyzeTextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest("invalid request body")
	}

	if err := h.validator.Struct(req); err != nil {
		return validationError(err)
	}

	report, err := h.analyzer.AnalyzeResume(c.UserContext(), services.AnalysisInput{
		Filename:       req.Filename,
		ResumeText:     req.ResumeText,
		JobDescription: req.JobDescription,
	})
	if err != nil {
		return err
	}

	return c.JSON(report)
}

// HandleCompare ranks several uploaded resumes against one job description.
// Files rejected at upload are listed as failures next to the ranked results.
func (h *AnalyzeHandler) HandleCompare(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return badRequest("failed to parse multipart form")
	}

	headers := form.File["resumes"]
	if len(headers) == 0 {
		return badRequest("at least one file in 'resumes' is required")
	}

	files, failures, firstErr := h.readFiles(headers)
	if len(files) == 0 {
		return firstErr
	}

	report, err := h.analyzer.CompareResumes(c.UserContext(), files, formValue(form, "job_description"))
	if err != nil {
		if firstErr != nil && errors.Is(err, services.ErrNoResults) {
			return fmt.Errorf("%w; rejected at upload: %s", err, firstErr.Error())
		}
		return err
	}

	report.Failures = append(failures, report.Failures...)
	return c.JSON(report)
}

func (h *AnalyzeHandler) readFiles(headers []*multipart.FileHeader) ([]models.UploadedFile, []models.BatchFailure, error) {
	var files []models.UploadedFile
	var failures []models.BatchFailure
	var firstErr error

	for _, header := range headers {
		file, err := h.upload.ReadFile(header)
		if err != nil {
			failures = append(failures, models.BatchFailure{Filename: header.Filename, Error: err.Error()})
			firstErr = errors.Join(firstErr, err)
			continue
		}
		files = append(files, *file)
	}

	return files, failures, firstErr
}

func formValue(form *multipart.Form, key string) string {
	if values := form.Value[key]; len(values) > 0 {
		return values[0]
	}
	return ""
}

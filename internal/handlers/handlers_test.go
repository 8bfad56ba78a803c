package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

const (
	resumeText = "Experience\nGo developer shipping services with Docker and PostgreSQL.\nSkills\nGo, Docker, Git"
	jobText    = "Hiring a Go engineer with Docker and Kubernetes experience."
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	repo := repositories.NewMemoryAnalysisRepository(50)
	extractor := services.NewTextExtractorService()
	similarity := services.NewSimilarityService(5000)
	skills := services.NewSkillExtractorService(nil)
	analyzer := services.NewAnalyzerService(repo, extractor, similarity, skills, nil, services.NewWorker(2))

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	RegisterRoutes(app, Handlers{
		Analyze: NewAnalyzeHandler(analyzer, extractor, services.NewUploadService(1024)),
		Results: NewResultHandler(repo),
		Meta:    NewMetaHandler(similarity, skills, false, 1024),
	})
	return app
}

type upload struct {
	field, name string
	data        []byte
}

func multipartRequest(t *testing.T, path string, fields map[string]string, files ...upload) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, f := range files {
		part, err := writer.CreateFormFile(f.field, f.name)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func jsonRequest(t *testing.T, method, path string, payload any) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, map[string]any) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestHandleAnalyze(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, multipartRequest(t, "/api/v1/analyze",
		map[string]string{"job_description": jobText},
		upload{field: "resume", name: "jane.txt", data: []byte(resumeText)},
	))

	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "jane.txt", body["filename"])
	assert.Contains(t, body["matched_skills"], "docker")
	assert.Contains(t, body["missing_skills"], "kubernetes")
	assert.Contains(t, body, "charts")

	file, ok := body["file"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "jane.txt", file["name"])
}

func TestHandleAnalyze_Errors(t *testing.T) {
	app := newTestApp(t)

	tests := []struct {
		name   string
		req    *http.Request
		status int
	}{
		{
			name:   "missing file",
			req:    multipartRequest(t, "/api/v1/analyze", map[string]string{"job_description": jobText}),
			status: fiber.StatusBadRequest,
		},
		{
			name: "unsupported format",
			req: multipartRequest(t, "/api/v1/analyze", map[string]string{"job_description": jobText},
				upload{field: "resume", name: "jane.docx", data: []byte(resumeText)}),
			status: fiber.StatusUnsupportedMediaType,
		},
		{
			name: "file too large",
			req: multipartRequest(t, "/api/v1/analyze", map[string]string{"job_description": jobText},
				upload{field: "resume", name: "jane.txt", data: bytes.Repeat([]byte("a"), 2048)}),
			status: fiber.StatusRequestEntityTooLarge,
		},
		{
			name: "no text",
			req: multipartRequest(t, "/api/v1/analyze", map[string]string{"job_description": jobText},
				upload{field: "resume", name: "blank.txt", data: []byte("  \n ")}),
			status: fiber.StatusUnprocessableEntity,
		},
		{
			name: "missing job description",
			req: multipartRequest(t, "/api/v1/analyze", nil,
				upload{field: "resume", name: "jane.txt", data: []byte(resumeText)}),
			status: fiber.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := do(t, app, tt.req)
			assert.Equal(t, tt.status, status, body)
			assert.EqualValues(t, tt.status, body["code"])
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestHandleAnalyzeText(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, jsonRequest(t, http.MethodPost, "/api/v1/analyze/text", map[string]string{
		"filename":        "pasted.txt",
		"resume_text":     resumeText,
		"job_description": jobText,
	}))
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, "pasted.txt", body["filename"])

	status, body = do(t, app, jsonRequest(t, http.MethodPost, "/api/v1/analyze/text", map[string]string{
		"resume_text": resumeText,
	}))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body["error"], "JobDescription")
}

func TestHandleCompare(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, multipartRequest(t, "/api/v1/compare",
		map[string]string{"job_description": jobText},
		upload{field: "resumes", name: "chef.txt", data: []byte("Chef cooking pasta for restaurants.")},
		upload{field: "resumes", name: "jane.txt", data: []byte(resumeText)},
		upload{field: "resumes", name: "old.docx", data: []byte(resumeText)},
	))
	require.Equal(t, fiber.StatusOK, status, body)

	results, ok := body["results"].([]any)
	require.True(t, ok)
	require.Len(t, results, 2)
	assert.Equal(t, "jane.txt", results[0].(map[string]any)["filename"])

	failures, ok := body["failures"].([]any)
	require.True(t, ok)
	require.Len(t, failures, 1)
	assert.Equal(t, "old.docx", failures[0].(map[string]any)["filename"])

	batchID, ok := body["batch_id"].(string)
	require.True(t, ok)

	status, body = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/batches/"+batchID, nil))
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Len(t, body["results"], 2)
}

func TestHandleCompare_Errors(t *testing.T) {
	app := newTestApp(t)

	status, _ := do(t, app, multipartRequest(t, "/api/v1/compare", map[string]string{"job_description": jobText}))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, multipartRequest(t, "/api/v1/compare",
		map[string]string{"job_description": jobText},
		upload{field: "resumes", name: "a.docx", data: []byte("x")},
	))
	assert.Equal(t, fiber.StatusUnsupportedMediaType, status)

	status, _ = do(t, app, multipartRequest(t, "/api/v1/compare",
		map[string]string{"job_description": jobText},
		upload{field: "resumes", name: "a.txt", data: []byte(" ")},
	))
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestHandleCompare_AllRejectedReportsEveryReason(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, multipartRequest(t, "/api/v1/compare",
		map[string]string{"job_description": jobText},
		upload{field: "resumes", name: "old.docx", data: []byte(resumeText)},
		upload{field: "resumes", name: "big.txt", data: bytes.Repeat([]byte("a"), 2048)},
		upload{field: "resumes", name: "blank.txt", data: []byte(" ")},
	))

	assert.Equal(t, fiber.StatusUnprocessableEntity, status, body)
	msg, ok := body["error"].(string)
	require.True(t, ok)
	assert.Contains(t, msg, services.ErrNoResults.Error())
	assert.Contains(t, msg, services.ErrNoTextContent.Error())
	assert.Contains(t, msg, services.ErrUnsupportedFormat.Error())
	assert.Contains(t, msg, services.ErrFileTooLarge.Error())
}

func TestResultEndpoints(t *testing.T) {
	app := newTestApp(t)

	_, created := do(t, app, jsonRequest(t, http.MethodPost, "/api/v1/analyze/text", map[string]string{
		"resume_text":     resumeText,
		"job_description": jobText,
	}))
	id, ok := created["id"].(string)
	require.True(t, ok)

	status, body := do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results/"+id, nil))
	require.Equal(t, fiber.StatusOK, status, body)
	assert.Equal(t, created["match_percent"], body["match_percent"])
	assert.Equal(t, created["rating"], body["rating"])

	status, body = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, body["count"])

	status, _ = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results?limit=0", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results/not-a-uuid", nil))
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results/"+uuid.NewString(), nil))
	assert.Equal(t, fiber.StatusNotFound, status)

	status, body = do(t, app, jsonRequest(t, http.MethodDelete, "/api/v1/results", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "Results cleared", body["message"])

	status, _ = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/results/"+id, nil))
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestMetaEndpoints(t *testing.T) {
	app := newTestApp(t)

	status, body := do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/health", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "healthy", body["status"])

	status, body = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/about", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["score_bands"], 4)
	assert.Equal(t, false, body["semantic_scoring"])

	status, body = do(t, app, jsonRequest(t, http.MethodGet, "/api/v1/skills", nil))
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, body["categories"], 6)
	assert.Greater(t, body["total"], 0.0)
}

func TestStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrap: %w", services.ErrUnsupportedFormat), fiber.StatusUnsupportedMediaType},
		{fmt.Errorf("wrap: %w", services.ErrFileTooLarge), fiber.StatusRequestEntityTooLarge},
		{services.ErrNoTextContent, fiber.StatusUnprocessableEntity},
		{fmt.Errorf("%w: all failed", services.ErrNoResults), fiber.StatusUnprocessableEntity},
		{services.ErrEmptyInput, fiber.StatusBadRequest},
		{badRequest("limit %d", 0), fiber.StatusBadRequest},
		{fmt.Errorf("analysis x: %w", repositories.ErrNotFound), fiber.StatusNotFound},
		{fiber.ErrMethodNotAllowed, fiber.StatusMethodNotAllowed},
		{fmt.Errorf("disk on fire"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(strings.ReplaceAll(tt.err.Error(), " ", "_"), func(t *testing.T) {
			assert.Equal(t, tt.want, StatusCode(tt.err))
		})
	}
}

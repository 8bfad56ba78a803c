package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/services"
)

func writeTempFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadLocalFile(t *testing.T) {
	dir := t.TempDir()
	path := writeTempFile(t, dir, "jane.txt", "Go developer")

	file, err := readLocalFile(path, 1024)
	require.NoError(t, err)
	assert.Equal(t, "jane.txt", file.Name)
	assert.Equal(t, int64(12), file.Size)

	_, err = readLocalFile(path, 4)
	assert.ErrorIs(t, err, services.ErrFileTooLarge)

	_, err = readLocalFile(filepath.Join(dir, "missing.txt"), 1024)
	assert.Error(t, err)
}

func TestPrintComparison(t *testing.T) {
	var out bytes.Buffer
	printComparison(&out, &models.ComparisonReport{
		Results: []models.ComparisonRow{
			{Filename: "jane.txt", MatchPercent: 72.5, MatchedSkills: 3, MissingSkills: 1, TotalSkills: 4},
			{Filename: "chef.txt", MatchPercent: 3.1},
		},
		Failures: []models.BatchFailure{{Filename: "old.docx", Error: "unsupported file format"}},
		Summary:  models.ComparisonSummary{TotalResumes: 2, BestMatch: 72.5, AverageMatch: 37.8, LowestMatch: 3.1},
	})

	text := out.String()
	assert.Contains(t, text, "RANK")
	assert.Contains(t, text, "jane.txt")
	assert.Contains(t, text, "72.5%")
	assert.Contains(t, text, "Average 37.8%")
	assert.Contains(t, text, "old.docx: unsupported file format")
}

func TestAnalyzeCommand(t *testing.T) {
	t.Setenv("DATABASE_ENABLED", "false")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("SKILLS_FILE", "")

	dir := t.TempDir()
	job := writeTempFile(t, dir, "job.txt", "Looking for a Go developer with Docker and Kubernetes.")
	resume := writeTempFile(t, dir, "jane.txt", "Go developer. Skills: Go, Docker, Git")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"analyze", "--job", job, resume})
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		analyzeJSON = false
	})

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "jane.txt:")
	assert.Contains(t, text, "% match")
	assert.Contains(t, text, "Missing skills (1): kubernetes")
}

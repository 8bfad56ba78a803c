package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestToPercent(t *testing.T) {
	assert.Equal(t, 0.0, ToPercent(0))
	assert.Equal(t, 100.0, ToPercent(1))
	assert.Equal(t, 73.5, ToPercent(0.73456))
	assert.Equal(t, 12.3, ToPercent(0.1234))
}

func TestRating(t *testing.T) {
	tests := []struct {
		percent float64
		want    string
	}{
		{100, RatingExcellent},
		{90, RatingExcellent},
		{89.9, RatingGood},
		{70, RatingGood},
		{69.9, RatingModerate},
		{50, RatingModerate},
		{49.9, RatingPoor},
		{0, RatingPoor},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Rating(tt.percent), "percent %.1f", tt.percent)
	}
}

func TestNewComparisonRow(t *testing.T) {
	analysis := &Analysis{
		ID:            uuid.New(),
		Filename:      "jane.pdf",
		Score:         0.6789,
		MatchedSkills: []string{"go", "docker"},
		MissingSkills: []string{"kubernetes"},
		ResumeSkills:  []string{"go", "docker", "git"},
	}

	row := NewComparisonRow(analysis)

	assert.Equal(t, analysis.ID.String(), row.ID)
	assert.Equal(t, 67.9, row.MatchPercent)
	assert.Equal(t, 2, row.MatchedSkills)
	assert.Equal(t, 1, row.MissingSkills)
	assert.Equal(t, 3, row.TotalSkills)
	assert.Equal(t, []string{"kubernetes"}, row.MissingList)
}

func TestUploadedFileInfo(t *testing.T) {
	file := &UploadedFile{Name: "cv.pdf", Size: 1572864, ContentType: "application/pdf"}

	info := file.Info()

	assert.Equal(t, "cv.pdf", info.Name)
	assert.Equal(t, 1.5, info.SizeMB)
	assert.Equal(t, "application/pdf", info.Type)
}

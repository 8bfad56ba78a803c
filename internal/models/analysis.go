package models

import (
	"time"

	"github.com/google/uuid"
)

type AnalysisKind string

const (
	KindSingle AnalysisKind = "single"
	KindBatch  AnalysisKind = "batch"
)

// Analysis is one recorded resume-vs-job comparison.
type Analysis struct {
	ID            uuid.UUID    `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Kind          AnalysisKind `gorm:"type:text;not null;default:'single'" json:"kind"`
	BatchID       *uuid.UUID   `gorm:"type:uuid;index" json:"batch_id,omitempty"`
	Filename      string       `gorm:"type:text" json:"filename"`
	Score         float64      `gorm:"not null" json:"score"`
	SemanticScore *float64     `json:"semantic_score,omitempty"`
	MatchedSkills []string     `gorm:"serializer:json;type:text" json:"matched_skills"`
	MissingSkills []string     `gorm:"serializer:json;type:text" json:"missing_skills"`
	ResumeSkills  []string     `gorm:"serializer:json;type:text" json:"resume_skills"`
	JobSkills     []string     `gorm:"serializer:json;type:text" json:"job_skills"`
	CreatedAt     time.Time    `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (Analysis) TableName() string {
	return "analyses"
}

// MatchPercent returns the score on the 0-100 scale shown to users.
func (a *Analysis) MatchPercent() float64 {
	return ToPercent(a.Score)
}

package models

import (
	"math"
	"time"
)

type AnalyzeTextRequest struct {
	Filename       string `json:"filename" validate:"omitempty,max=255"`
	ResumeText     string `json:"resume_text" validate:"required"`
	JobDescription string `json:"job_description" validate:"required"`
}

type SkillGroup struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
}

type SuggestionGroup struct {
	Category string   `json:"category"`
	Items    []string `json:"items"`
}

type AnalysisReport struct {
	ID                  string             `json:"id"`
	Filename            string             `json:"filename"`
	Score               float64            `json:"score"`
	MatchPercent        float64            `json:"match_percent"`
	Rating              string             `json:"rating"`
	SemanticScore       *float64           `json:"semantic_score,omitempty"`
	File                *FileInfo          `json:"file,omitempty"`
	MatchedSkills       []string           `json:"matched_skills"`
	MissingSkills       []string           `json:"missing_skills"`
	ResumeSkills        []string           `json:"resume_skills"`
	JobSkills           []string           `json:"job_skills"`
	SkillCategories     []SkillGroup       `json:"skill_categories"`
	SectionSimilarities map[string]float64 `json:"section_similarities,omitempty"`
	Suggestions         []SuggestionGroup  `json:"suggestions"`
	Recommendations     []string           `json:"recommendations"`
	Charts              map[string]*Figure `json:"charts"`
	CreatedAt           time.Time          `json:"created_at"`
}

// ComparisonRow is one line of the multi-resume results table.
type ComparisonRow struct {
	ID            string   `json:"id"`
	Filename      string   `json:"filename"`
	Score         float64  `json:"score"`
	MatchPercent  float64  `json:"match_percent"`
	MatchedSkills int      `json:"matched_skills"`
	MissingSkills int      `json:"missing_skills"`
	TotalSkills   int      `json:"total_skills"`
	MatchedList   []string `json:"matched_skills_list"`
	MissingList   []string `json:"missing_skills_list"`
}

type ComparisonSummary struct {
	TotalResumes int     `json:"total_resumes"`
	BestMatch    float64 `json:"best_match"`
	AverageMatch float64 `json:"average_match"`
	LowestMatch  float64 `json:"lowest_match"`
}

type BatchFailure struct {
	Filename string `json:"filename"`
	Error    string `json:"error"`
}

type ComparisonReport struct {
	BatchID  string            `json:"batch_id"`
	Results  []ComparisonRow   `json:"results"`
	Failures []BatchFailure    `json:"failures,omitempty"`
	Summary  ComparisonSummary `json:"summary"`
	Chart    *Figure           `json:"chart,omitempty"`
}

// NewComparisonRow converts a recorded analysis into a results table row.
func NewComparisonRow(a *Analysis) ComparisonRow {
	return ComparisonRow{
		ID:            a.ID.String(),
		Filename:      a.Filename,
		Score:         a.Score,
		MatchPercent:  a.MatchPercent(),
		MatchedSkills: len(a.MatchedSkills),
		MissingSkills: len(a.MissingSkills),
		TotalSkills:   len(a.ResumeSkills),
		MatchedList:   a.MatchedSkills,
		MissingList:   a.MissingSkills,
	}
}

// ToPercent converts a [0,1] score into a percentage rounded to one decimal.
func ToPercent(score float64) float64 {
	return math.Round(score*1000) / 10
}

const (
	RatingExcellent = "excellent"
	RatingGood      = "good"
	RatingModerate  = "moderate"
	RatingPoor      = "poor"
)

// Rating maps a match percentage onto the interpretation bands shown in the UI.
func Rating(percent float64) string {
	switch {
	case percent >= 90:
		return RatingExcellent
	case percent >= 70:
		return RatingGood
	case percent >= 50:
		return RatingModerate
	default:
		return RatingPoor
	}
}

type ScoreBand struct {
	Min         float64 `json:"min"`
	Max         float64 `json:"max"`
	Rating      string  `json:"rating"`
	Description string  `json:"description"`
}

// ScoreBands documents the match score interpretation.
var ScoreBands = []ScoreBand{
	{Min: 90, Max: 100, Rating: RatingExcellent, Description: "Excellent match - strong candidate"},
	{Min: 70, Max: 89, Rating: RatingGood, Description: "Good match - consider for interview"},
	{Min: 50, Max: 69, Rating: RatingModerate, Description: "Moderate match - review skills gap"},
	{Min: 0, Max: 49, Rating: RatingPoor, Description: "Poor match - significant skills gap"},
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

var (
	ErrEmptyInput = errors.New("resume and job description are required")
	ErrNoResults  = errors.New("none of the resumes could be analyzed")
)

type AnalysisInput struct {
	Filename       string
	ResumeText     string
	JobDescription string
}

type AnalyzerService interface {
	AnalyzeResume(ctx context.Context, input AnalysisInput) (*models.AnalysisReport, error)
	CompareResumes(ctx context.Context, files []models.UploadedFile, jobDescription string) (*models.ComparisonReport, error)
}

type analyzerService struct {
	repo        repositories.AnalysisRepository
	extractor   TextExtractorService
	similarity  SimilarityService
	skills      SkillExtractorService
	suggestions SuggestionService
	charts      ChartService
	semantic    SemanticScorer
	worker      Worker
}

// NewAnalyzerService wires the analysis pipeline. semantic may be nil.
func NewAnalyzerService(
	repo repositories.AnalysisRepository,
	extractor TextExtractorService,
	similarity SimilarityService,
	skills SkillExtractorService,
	semantic SemanticScorer,
	worker Worker,
) AnalyzerService {
	return &analyzerService{
		repo:        repo,
		extractor:   extractor,
		similarity:  similarity,
		skills:      skills,
		suggestions: NewSuggestionService(),
		charts:      NewChartService(skills),
		semantic:    semantic,
		worker:      worker,
	}
}

// AnalyzeResume scores one resume against a job description and records the result.
func (a *analyzerService) AnalyzeResume(ctx context.Context, input AnalysisInput) (*models.AnalysisReport, error) {
	resumeText := strings.TrimSpace(input.ResumeText)
	jobDescription := NormalizeJobDescription(input.JobDescription)
	if resumeText == "" || jobDescription == "" {
		return nil, ErrEmptyInput
	}

	filename := input.Filename
	if filename == "" {
		filename = "resume.txt"
	}

	log.Printf("🔍 Analyzing %s against job description\n", filename)

	score := a.similarity.ComputeSimilarity(resumeText, jobDescription)

	resumeSkills := a.skills.ExtractSkills(resumeText)
	jobSkills := a.skills.ExtractSkills(jobDescription)
	matched, missing := a.skills.CompareSkills(resumeSkills, jobSkills)

	analysis := &models.Analysis{
		ID:            uuid.New(),
		Kind:          models.KindSingle,
		Filename:      filename,
		Score:         score,
		MatchedSkills: matched,
		MissingSkills: missing,
		ResumeSkills:  resumeSkills,
		JobSkills:     jobSkills,
		CreatedAt:     time.Now(),
	}

	if a.semantic != nil {
		semanticScore, err := a.semantic.Score(ctx, resumeText, jobDescription)
		if err != nil {
			log.Printf("⚠️ Semantic scoring skipped: %v\n", err)
		} else {
			analysis.SemanticScore = &semanticScore
		}
	}

	log.Println("💾 Saving analysis...")
	if err := a.repo.Create(analysis); err != nil {
		return nil, fmt.Errorf("failed to save analysis: %w", err)
	}

	percent := analysis.MatchPercent()
	categories := a.skills.CategorizeSkills(resumeSkills)

	report := &models.AnalysisReport{
		ID:                  analysis.ID.String(),
		Filename:            filename,
		Score:               score,
		MatchPercent:        percent,
		Rating:              models.Rating(percent),
		SemanticScore:       analysis.SemanticScore,
		MatchedSkills:       matched,
		MissingSkills:       missing,
		ResumeSkills:        resumeSkills,
		JobSkills:           jobSkills,
		SkillCategories:     categories,
		SectionSimilarities: a.similarity.ComputeSectionSimilarities(resumeText, jobDescription),
		Suggestions:         a.suggestions.Generate(resumeText, jobDescription, missing),
		Recommendations:     a.skills.Recommendations(missing),
		Charts: map[string]*models.Figure{
			ChartMatchGauge:         a.charts.MatchGauge(percent),
			ChartSkillsRadar:        a.charts.SkillsRadar(resumeSkills, jobSkills, matched),
			ChartSkillsDistribution: a.charts.SkillsDistribution(categories),
			ChartMatchBreakdown:     a.charts.MatchBreakdown(matched, missing),
			ChartImprovementPlan:    a.charts.ImprovementPriority(missing),
		},
		CreatedAt: analysis.CreatedAt,
	}

	log.Printf("✅ Analysis %s completed: %.1f%% match\n", report.ID, percent)
	return report, nil
}

// CompareResumes ranks several resumes against one job description. Files
// that cannot be read are reported as failures; the rest are still ranked.
func (a *analyzerService) CompareResumes(ctx context.Context, files []models.UploadedFile, jobDescription string) (*models.ComparisonReport, error) {
	jobDescription = NormalizeJobDescription(jobDescription)
	if jobDescription == "" || len(files) == 0 {
		return nil, ErrEmptyInput
	}

	batchID := uuid.New()
	jobSkills := a.skills.ExtractSkills(jobDescription)
	analyses := make([]*models.Analysis, len(files))

	log.Printf("🚀 Comparing %d resumes (batch %s)\n", len(files), batchID)

	errs := a.worker.Run(ctx, len(files), func(ctx context.Context, i int) error {
		file := files[i]
		log.Printf("📄 Extracting text from %s\n", file.Name)

		extracted, err := a.extractor.ExtractText(file.Name, file.Data)
		if err != nil {
			return err
		}

		resumeSkills := a.skills.ExtractSkills(extracted.Text)
		matched, missing := a.skills.CompareSkills(resumeSkills, jobSkills)

		analysis := &models.Analysis{
			ID:            uuid.New(),
			Kind:          models.KindBatch,
			BatchID:       &batchID,
			Filename:      file.Name,
			Score:         a.similarity.ComputeSimilarity(extracted.Text, jobDescription),
			MatchedSkills: matched,
			MissingSkills: missing,
			ResumeSkills:  resumeSkills,
			JobSkills:     jobSkills,
			CreatedAt:     time.Now(),
		}

		if err := a.repo.Create(analysis); err != nil {
			return fmt.Errorf("failed to save analysis: %w", err)
		}

		analyses[i] = analysis
		return nil
	})

	report := &models.ComparisonReport{
		BatchID: batchID.String(),
		Results: []models.ComparisonRow{},
	}

	for i, err := range errs {
		if err != nil {
			report.Failures = append(report.Failures, models.BatchFailure{Filename: files[i].Name, Error: err.Error()})
			continue
		}
		report.Results = append(report.Results, models.NewComparisonRow(analyses[i]))
	}

	if len(report.Results) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("comparison cancelled: %w", err)
		}
		return nil, fmt.Errorf("%w: %s", ErrNoResults, report.Failures[0].Error)
	}

	sort.SliceStable(report.Results, func(i, j int) bool {
		return report.Results[i].Score > report.Results[j].Score
	})

	report.Summary = summarize(report.Results)
	report.Chart = a.charts.ComparisonBar(report.Results)

	log.Printf("✅ Batch %s completed: %d ranked, %d failed\n", batchID, len(report.Results), len(report.Failures))
	return report, nil
}

// summarize expects rows sorted by score, best first.
func summarize(rows []models.ComparisonRow) models.ComparisonSummary {
	var total float64
	for _, row := range rows {
		total += row.MatchPercent
	}

	return models.ComparisonSummary{
		TotalResumes: len(rows),
		BestMatch:    rows[0].MatchPercent,
		AverageMatch: math.Round(total/float64(len(rows))*10) / 10,
		LowestMatch:  rows[len(rows)-1].MatchPercent,
	}
}

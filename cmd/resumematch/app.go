package main

import (
	"context"
	"fmt"
	"log"

	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/config"
	"alfredoptarigan/resume-matcher/internal/repositories"
	"alfredoptarigan/resume-matcher/internal/services"
)

// application holds the services shared by the serve and analyze commands.
type application struct {
	cfg        *config.Config
	db         *gorm.DB
	repo       repositories.AnalysisRepository
	extractor  services.TextExtractorService
	upload     services.UploadService
	similarity services.SimilarityService
	skills     services.SkillExtractorService
	semantic   services.SemanticScorer
	analyzer   services.AnalyzerService
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	app := &application{cfg: cfg}

	if cfg.Database.Enabled {
		db, err := config.InitDatabase(cfg)
		if err != nil {
			return nil, err
		}
		app.db = db
		app.repo = repositories.NewAnalysisRepository(db)
		log.Println("✅ Using PostgreSQL analysis history")
	} else {
		app.repo = repositories.NewMemoryAnalysisRepository(cfg.Analysis.HistoryLimit)
		log.Printf("✅ Using in-memory analysis history (last %d results)\n", cfg.Analysis.HistoryLimit)
	}

	vocab := services.DefaultSkillVocabulary()
	if cfg.Analysis.SkillsFile != "" {
		loaded, err := services.LoadSkillVocabulary(cfg.Analysis.SkillsFile)
		if err != nil {
			return nil, err
		}
		vocab = loaded
		log.Printf("✅ Skill vocabulary loaded from %s\n", cfg.Analysis.SkillsFile)
	}

	app.extractor = services.NewTextExtractorService()
	app.upload = services.NewUploadService(cfg.Upload.MaxFileSize)
	app.similarity = services.NewSimilarityService(cfg.Analysis.MaxFeatures)
	app.skills = services.NewSkillExtractorService(vocab)

	if cfg.Gemini.Enabled() {
		embedder, err := services.NewGeminiService(ctx, cfg.Gemini.APIKey, cfg.Gemini.EmbedModel)
		if err != nil {
			return nil, err
		}
		app.semantic = services.NewSemanticScorer(embedder, cfg.Worker.RetryMaxAttempts, cfg.Worker.RetryInitialDelay)
		log.Println("✅ Gemini semantic scoring enabled")
	}

	app.analyzer = services.NewAnalyzerService(
		app.repo,
		app.extractor,
		app.similarity,
		app.skills,
		app.semantic,
		services.NewWorker(cfg.Worker.Concurrency),
	)
	log.Println("✅ Services initialized successfully")

	return app, nil
}

func (a *application) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database handle: %w", err)
	}
	return sqlDB.Close()
}

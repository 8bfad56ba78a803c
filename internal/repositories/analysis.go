package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"alfredoptarigan/resume-matcher/internal/models"
)

var ErrNotFound = errors.New("record not found")

type AnalysisRepository interface {
	Create(analysis *models.Analysis) error
	FindByID(id uuid.UUID) (*models.Analysis, error)
	FindByBatch(batchID uuid.UUID) ([]models.Analysis, error)
	FindRecent(limit int) ([]models.Analysis, error)
	DeleteAll() error
}

type analysisRepository struct {
	db *gorm.DB
}

func NewAnalysisRepository(db *gorm.DB) AnalysisRepository {
	return &analysisRepository{db: db}
}

func (r *analysisRepository) Create(analysis *models.Analysis) error {
	if err := r.db.Create(analysis).Error; err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	return nil
}

func (r *analysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	var analysis models.Analysis
	if err := r.db.Where("id = ?", id).First(&analysis).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find analysis: %w", err)
	}
	return &analysis, nil
}

func (r *analysisRepository) FindByBatch(batchID uuid.UUID) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Where("batch_id = ?", batchID).
		Order("score DESC").
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find batch analyses: %w", err)
	}

	if len(analyses) == 0 {
		return nil, fmt.Errorf("batch %s: %w", batchID, ErrNotFound)
	}

	return analyses, nil
}

func (r *analysisRepository) FindRecent(limit int) ([]models.Analysis, error) {
	var analyses []models.Analysis
	err := r.db.
		Order("created_at DESC").
		Limit(limit).
		Find(&analyses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find recent analyses: %w", err)
	}
	return analyses, nil
}

func (r *analysisRepository) DeleteAll() error {
	result := r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Analysis{})
	if result.Error != nil {
		return fmt.Errorf("failed to clear analyses: %w", result.Error)
	}
	return nil
}

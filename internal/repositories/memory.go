package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
)

// memoryAnalysisRepository keeps the most recent analyses in process memory.
// Once limit is reached the oldest record is evicted.
type memoryAnalysisRepository struct {
	mu      sync.RWMutex
	limit   int
	records []models.Analysis
	byID    map[uuid.UUID]int
}

func NewMemoryAnalysisRepository(limit int) AnalysisRepository {
	if limit <= 0 {
		limit = 200
	}
	return &memoryAnalysisRepository{
		limit: limit,
		byID:  make(map[uuid.UUID]int),
	}
}

func (r *memoryAnalysisRepository) Create(analysis *models.Analysis) error {
	if analysis == nil {
		return fmt.Errorf("failed to create analysis: nil record")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if analysis.ID == uuid.Nil {
		analysis.ID = uuid.New()
	}
	if analysis.CreatedAt.IsZero() {
		analysis.CreatedAt = time.Now()
	}
	if _, exists := r.byID[analysis.ID]; exists {
		return fmt.Errorf("failed to create analysis: duplicate id %s", analysis.ID)
	}

	r.records = append(r.records, *analysis)
	if len(r.records) > r.limit {
		r.records = r.records[len(r.records)-r.limit:]
	}
	r.reindex()

	return nil
}

func (r *memoryAnalysisRepository) FindByID(id uuid.UUID) (*models.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("analysis %s: %w", id, ErrNotFound)
	}
	analysis := r.records[idx]
	return &analysis, nil
}

func (r *memoryAnalysisRepository) FindByBatch(batchID uuid.UUID) ([]models.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var analyses []models.Analysis
	for _, record := range r.records {
		if record.BatchID != nil && *record.BatchID == batchID {
			analyses = append(analyses, record)
		}
	}

	if len(analyses) == 0 {
		return nil, fmt.Errorf("batch %s: %w", batchID, ErrNotFound)
	}

	sort.SliceStable(analyses, func(i, j int) bool {
		return analyses[i].Score > analyses[j].Score
	})
	return analyses, nil
}

func (r *memoryAnalysisRepository) FindRecent(limit int) ([]models.Analysis, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if limit <= 0 || limit > len(r.records) {
		limit = len(r.records)
	}

	analyses := make([]models.Analysis, 0, limit)
	for i := len(r.records) - 1; i >= 0 && len(analyses) < limit; i-- {
		analyses = append(analyses, r.records[i])
	}
	return analyses, nil
}

func (r *memoryAnalysisRepository) DeleteAll() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.records = nil
	r.byID = make(map[uuid.UUID]int)
	return nil
}

func (r *memoryAnalysisRepository) reindex() {
	r.byID = make(map[uuid.UUID]int, len(r.records))
	for i, record := range r.records {
		r.byID[record.ID] = i
	}
}

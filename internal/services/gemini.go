package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"
	"unicode/utf8"

	"google.golang.org/genai"
)

// maxEmbeddingChars keeps requests under the embedding model's token limit.
const maxEmbeddingChars = 40000

type EmbeddingService interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

type geminiService struct {
	client     *genai.Client
	embedModel string
}

func NewGeminiService(ctx context.Context, apiKey, embedModel string) (EmbeddingService, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &geminiService{
		client:     client,
		embedModel: embedModel,
	}, nil
}

// GenerateEmbedding implements EmbeddingService.
func (g *geminiService) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	text = truncateUTF8(text, maxEmbeddingChars)

	result, err := g.client.Models.EmbedContent(ctx, g.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to generate embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, errors.New("empty embedding result")
	}

	return result.Embeddings[0].Values, nil
}

type SemanticScorer interface {
	Score(ctx context.Context, resumeText, jobDescription string) (float64, error)
}

type semanticScorer struct {
	embedder     EmbeddingService
	maxAttempts  int
	initialDelay time.Duration
}

func NewSemanticScorer(embedder EmbeddingService, maxAttempts int, initialDelay time.Duration) SemanticScorer {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &semanticScorer{
		embedder:     embedder,
		maxAttempts:  maxAttempts,
		initialDelay: initialDelay,
	}
}

// Score returns the cosine similarity of the two texts' embeddings, clamped to [0,1].
func (s *semanticScorer) Score(ctx context.Context, resumeText, jobDescription string) (float64, error) {
	resumeVec, err := s.embedWithRetry(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume: %w", err)
	}

	jobVec, err := s.embedWithRetry(ctx, jobDescription)
	if err != nil {
		return 0, fmt.Errorf("failed to embed job description: %w", err)
	}

	if len(resumeVec) != len(jobVec) {
		return 0, fmt.Errorf("embedding dimensions differ: %d vs %d", len(resumeVec), len(jobVec))
	}

	return clampUnit(denseCosine(resumeVec, jobVec)), nil
}

func (s *semanticScorer) embedWithRetry(ctx context.Context, text string) ([]float32, error) {
	var lastErr error
	delay := s.initialDelay

	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		vec, err := s.embedder.GenerateEmbedding(ctx, text)
		if err == nil {
			return vec, nil
		}
		lastErr = err

		if attempt == s.maxAttempts {
			break
		}

		log.Printf("⚠️ Embedding attempt %d failed: %v. Retrying...\n", attempt, err)

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}

	return nil, fmt.Errorf("failed after %d attempts: %w", s.maxAttempts, lastErr)
}

// truncateUTF8 cuts text to at most limit bytes without splitting a rune.
func truncateUTF8(text string, limit int) string {
	if len(text) <= limit {
		return text
	}
	for limit > 0 && !utf8.RuneStart(text[limit]) {
		limit--
	}
	return text[:limit]
}

func denseCosine(a, b []float32) float64 {
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

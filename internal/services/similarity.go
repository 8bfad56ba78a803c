package services

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"
)

type SimilarityService interface {
	ComputeSimilarity(text1, text2 string) float64
	ComputeSectionSimilarities(resumeText, jobDescription string) map[string]float64
	BatchSimilarity(texts []string, reference string) []float64
	ModelInfo() SimilarityModelInfo
}

type SimilarityModelInfo struct {
	Status         string `json:"status"`
	ModelName      string `json:"model_name"`
	VectorizerType string `json:"vectorizer_type"`
	MaxFeatures    int    `json:"max_features"`
	NgramRange     [2]int `json:"ngram_range"`
	StopWords      string `json:"stop_words"`
}

var (
	disallowedChars = regexp.MustCompile(`[^\p{L}\p{N}_\s.,;:!?]`)
	tokenPattern    = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)
)

// TfidfVectorizer turns a small corpus into L2-normalised TF-IDF vectors.
type TfidfVectorizer struct {
	MaxFeatures int
	NgramMin    int
	NgramMax    int
	MinDF       int
	// MaxDF is a proportion of documents; terms seen in more are dropped.
	MaxDF     float64
	StopWords wordSet
}

func NewTfidfVectorizer(maxFeatures int) *TfidfVectorizer {
	if maxFeatures <= 0 {
		maxFeatures = 5000
	}
	return &TfidfVectorizer{
		MaxFeatures: maxFeatures,
		NgramMin:    1,
		NgramMax:    2,
		MinDF:       1,
		MaxDF:       1.0,
		StopWords:   englishStopWords,
	}
}

// SparseVector maps vocabulary terms to weights.
type SparseVector map[string]float64

// FitTransform learns the vocabulary and idf weights from docs and returns one vector per doc.
func (v *TfidfVectorizer) FitTransform(docs []string) []SparseVector {
	n := len(docs)
	counts := make([]map[string]int, n)
	df := make(map[string]int)
	totals := make(map[string]int)

	for i, doc := range docs {
		counts[i] = make(map[string]int)
		for _, term := range v.analyze(doc) {
			counts[i][term]++
			totals[term]++
		}
		for term := range counts[i] {
			df[term]++
		}
	}

	vocabulary := v.buildVocabulary(df, totals, n)

	idf := make(map[string]float64, len(vocabulary))
	for term := range vocabulary {
		idf[term] = math.Log(float64(1+n)/float64(1+df[term])) + 1
	}

	vectors := make([]SparseVector, n)
	for i := range docs {
		vec := make(SparseVector)
		var norm float64
		for term, count := range counts[i] {
			weight, ok := idf[term]
			if !ok {
				continue
			}
			value := float64(count) * weight
			vec[term] = value
			norm += value * value
		}
		if norm > 0 {
			norm = math.Sqrt(norm)
			for term := range vec {
				vec[term] /= norm
			}
		}
		vectors[i] = vec
	}

	return vectors
}

func (v *TfidfVectorizer) buildVocabulary(df, totals map[string]int, n int) map[string]struct{} {
	maxDocCount := n
	if v.MaxDF > 0 && v.MaxDF < 1 {
		maxDocCount = int(v.MaxDF * float64(n))
	}

	candidates := make([]string, 0, len(df))
	for term, count := range df {
		if count >= v.MinDF && count <= maxDocCount {
			candidates = append(candidates, term)
		}
	}

	if v.MaxFeatures > 0 && len(candidates) > v.MaxFeatures {
		sort.Slice(candidates, func(i, j int) bool {
			if totals[candidates[i]] != totals[candidates[j]] {
				return totals[candidates[i]] > totals[candidates[j]]
			}
			return candidates[i] < candidates[j]
		})
		candidates = candidates[:v.MaxFeatures]
	}

	vocabulary := make(map[string]struct{}, len(candidates))
	for _, term := range candidates {
		vocabulary[term] = struct{}{}
	}
	return vocabulary
}

// analyze tokenizes doc, drops stop words and emits word n-grams.
func (v *TfidfVectorizer) analyze(doc string) []string {
	var tokens []string
	for _, token := range tokenPattern.FindAllString(strings.ToLower(doc), -1) {
		if v.StopWords != nil && v.StopWords.has(token) {
			continue
		}
		tokens = append(tokens, token)
	}

	var terms []string
	for size := v.NgramMin; size <= v.NgramMax; size++ {
		for i := 0; i+size <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+size], " "))
		}
	}
	return terms
}

// CosineSimilarity of two L2-normalised vectors.
func CosineSimilarity(a, b SparseVector) float64 {
	if len(a) > len(b) {
		a, b = b, a
	}
	var dot float64
	for term, weight := range a {
		dot += weight * b[term]
	}
	return dot
}

type similarityService struct {
	maxFeatures int
}

func NewSimilarityService(maxFeatures int) SimilarityService {
	return &similarityService{maxFeatures: maxFeatures}
}

// PreprocessText lowercases text, strips unusual punctuation and collapses whitespace.
func PreprocessText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(text)
	text = disallowedChars.ReplaceAllString(text, " ")
	return strings.Join(strings.Fields(text), " ")
}

// ComputeSimilarity returns the TF-IDF cosine similarity of two texts in [0,1].
func (s *similarityService) ComputeSimilarity(text1, text2 string) float64 {
	processed1 := PreprocessText(text1)
	processed2 := PreprocessText(text2)
	if processed1 == "" || processed2 == "" {
		return 0
	}

	vectors := NewTfidfVectorizer(s.maxFeatures).FitTransform([]string{processed1, processed2})
	return clampUnit(CosineSimilarity(vectors[0], vectors[1]))
}

func (s *similarityService) ComputeSectionSimilarities(resumeText, jobDescription string) map[string]float64 {
	resumeSections := ExtractSections(resumeText)
	jobSections := ExtractSections(jobDescription)

	similarities := make(map[string]float64)
	for _, resumeSection := range resumeSections {
		for _, jobSection := range jobSections {
			if resumeSection.Content == "" || jobSection.Content == "" {
				continue
			}
			key := fmt.Sprintf("%s_vs_%s", resumeSection.Name, jobSection.Name)
			similarities[key] = s.ComputeSimilarity(resumeSection.Content, jobSection.Content)
		}
	}
	return similarities
}

func (s *similarityService) BatchSimilarity(texts []string, reference string) []float64 {
	scores := make([]float64, len(texts))
	for i, text := range texts {
		scores[i] = s.ComputeSimilarity(text, reference)
	}
	return scores
}

func (s *similarityService) ModelInfo() SimilarityModelInfo {
	vectorizer := NewTfidfVectorizer(s.maxFeatures)
	return SimilarityModelInfo{
		Status:         "loaded",
		ModelName:      "tfidf",
		VectorizerType: "TF-IDF",
		MaxFeatures:    vectorizer.MaxFeatures,
		NgramRange:     [2]int{vectorizer.NgramMin, vectorizer.NgramMax},
		StopWords:      "english",
	}
}

func clampUnit(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

package services

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	CategorySoftSkills = "soft_skills"
	CategoryOther      = "other"

	maxRecommendations = 5
)

type SkillCategory struct {
	Name   string   `yaml:"name" json:"name"`
	Skills []string `yaml:"skills" json:"skills"`
}

// SkillVocabulary is the closed set of skills the extractor can report.
// Aliases map an alternative spelling to a vocabulary skill.
type SkillVocabulary struct {
	Categories []SkillCategory     `yaml:"categories" json:"categories"`
	SoftSkills []string            `yaml:"soft_skills" json:"soft_skills"`
	Aliases    map[string]string   `yaml:"aliases" json:"aliases,omitempty"`
	Variations map[string][]string `yaml:"variations" json:"variations,omitempty"`
}

func DefaultSkillVocabulary() *SkillVocabulary {
	return &SkillVocabulary{
		Categories: []SkillCategory{
			{Name: "programming_languages", Skills: []string{
				"python", "java", "javascript", "c++", "c#", "r", "scala", "kotlin",
				"swift", "go", "rust", "php", "ruby", "typescript", "matlab", "perl",
			}},
			{Name: "web_technologies", Skills: []string{
				"html", "css", "react", "angular", "vue", "node.js", "express",
				"django", "flask", "spring", "bootstrap", "jquery", "sass", "less",
			}},
			{Name: "databases", Skills: []string{
				"sql", "mysql", "postgresql", "mongodb", "redis", "cassandra",
				"oracle", "sqlite", "dynamodb", "elasticsearch",
			}},
			{Name: "cloud_platforms", Skills: []string{
				"aws", "azure", "gcp", "google cloud", "docker", "kubernetes",
				"terraform", "jenkins", "gitlab", "github actions",
			}},
			{Name: "data_science", Skills: []string{
				"machine learning", "deep learning", "data analysis", "statistics",
				"pandas", "numpy", "scikit-learn", "tensorflow", "pytorch", "keras",
			}},
			{Name: "tools", Skills: []string{
				"git", "linux", "unix", "bash", "powershell", "vim", "vscode",
				"intellij", "eclipse", "jira", "confluence", "slack",
			}},
		},
		SoftSkills: []string{
			"communication", "leadership", "teamwork", "problem solving",
			"analytical thinking", "creativity", "adaptability", "time management",
			"project management", "critical thinking", "collaboration",
		},
		Aliases: map[string]string{
			"js":                    "javascript",
			"ecmascript":            "javascript",
			"golang":                "go",
			"nodejs":                "node.js",
			"reactjs":               "react",
			"react.js":              "react",
			"vue.js":                "vue",
			"postgres":              "postgresql",
			"mongo":                 "mongodb",
			"k8s":                   "kubernetes",
			"amazon web services":   "aws",
			"google cloud platform": "gcp",
			"microsoft azure":       "azure",
			"ml":                    "machine learning",
			"sklearn":               "scikit-learn",
			"visual studio code":    "vscode",
		},
		Variations: map[string][]string{
			"javascript":       {"js", "ecmascript"},
			"python":           {"py"},
			"machine learning": {"ml"},
			"postgresql":       {"postgres"},
			"aws":              {"amazon web services"},
			"gcp":              {"google cloud platform", "google cloud"},
			"azure":            {"microsoft azure"},
		},
	}
}

// LoadSkillVocabulary reads a YAML vocabulary file. Skills are lowercased.
func LoadSkillVocabulary(path string) (*SkillVocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read skills file: %w", err)
	}

	var vocab SkillVocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("failed to parse skills file: %w", err)
	}

	if len(vocab.Categories) == 0 && len(vocab.SoftSkills) == 0 {
		return nil, fmt.Errorf("skills file %s defines no skills", path)
	}

	vocab.normalize()
	return &vocab, nil
}

func (v *SkillVocabulary) normalize() {
	for i := range v.Categories {
		v.Categories[i].Name = strings.ToLower(strings.TrimSpace(v.Categories[i].Name))
		v.Categories[i].Skills = lowerAll(v.Categories[i].Skills)
	}
	v.SoftSkills = lowerAll(v.SoftSkills)

	aliases := make(map[string]string, len(v.Aliases))
	for alias, skill := range v.Aliases {
		aliases[strings.ToLower(strings.TrimSpace(alias))] = strings.ToLower(strings.TrimSpace(skill))
	}
	v.Aliases = aliases

	variations := make(map[string][]string, len(v.Variations))
	for base, list := range v.Variations {
		variations[strings.ToLower(strings.TrimSpace(base))] = lowerAll(list)
	}
	v.Variations = variations
}

func lowerAll(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.ToLower(strings.TrimSpace(item)); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// AllSkills lists every technical skill in category order followed by soft skills.
func (v *SkillVocabulary) AllSkills() []string {
	var all []string
	for _, category := range v.Categories {
		all = append(all, category.Skills...)
	}
	return append(all, v.SoftSkills...)
}

type SkillExtractorService interface {
	ExtractSkills(text string) []string
	CompareSkills(resumeSkills, jobSkills []string) (matched, missing []string)
	CategorizeSkills(skills []string) []models.SkillGroup
	Recommendations(missingSkills []string) []string
	Vocabulary() *SkillVocabulary
}

type skillMatcher struct {
	skill   string
	pattern *regexp.Regexp
}

type skillExtractorService struct {
	vocab      *SkillVocabulary
	known      map[string]string
	categoryOf map[string]string
	matchers   []skillMatcher
}

var skillContextPatterns = []*regexp.Regexp{
	regexp.MustCompile(`experience\s+(?:with|in)\s+([^,.;]+)`),
	regexp.MustCompile(`proficient\s+(?:with|in)\s+([^,.;]+)`),
	regexp.MustCompile(`skilled\s+(?:with|in)\s+([^,.;]+)`),
	regexp.MustCompile(`knowledge\s+(?:of|in)\s+([^,.;]+)`),
	regexp.MustCompile(`familiar\s+(?:with|in)\s+([^,.;]+)`),
	regexp.MustCompile(`expertise\s+(?:with|in)\s+([^,.;]+)`),
	regexp.MustCompile(`technologies:\s*([^.;]+)`),
	regexp.MustCompile(`skills:\s*([^.;]+)`),
	regexp.MustCompile(`tools:\s*([^.;]+)`),
}

var (
	skillListSeparator = regexp.MustCompile(`[,;|&\n]+|\s+and\s+|\s+or\s+`)
	contextFillers     = regexp.MustCompile(`^(?:the|a|an|and|or|using|with|in)\s+`)
)

func NewSkillExtractorService(vocab *SkillVocabulary) SkillExtractorService {
	if vocab == nil {
		vocab = DefaultSkillVocabulary()
	}

	s := &skillExtractorService{
		vocab:      vocab,
		known:      make(map[string]string),
		categoryOf: make(map[string]string),
	}

	for _, category := range vocab.Categories {
		for _, skill := range category.Skills {
			if _, ok := s.categoryOf[skill]; !ok {
				s.categoryOf[skill] = category.Name
			}
		}
	}
	for _, skill := range vocab.SoftSkills {
		if _, ok := s.categoryOf[skill]; !ok {
			s.categoryOf[skill] = CategorySoftSkills
		}
	}

	for skill := range s.categoryOf {
		s.known[skill] = skill
		s.matchers = append(s.matchers, skillMatcher{skill: skill, pattern: boundaryPattern(skill)})
	}
	for alias, skill := range vocab.Aliases {
		if _, ok := s.categoryOf[skill]; !ok {
			continue
		}
		if _, ok := s.known[alias]; !ok {
			s.known[alias] = skill
		}
		s.matchers = append(s.matchers, skillMatcher{skill: skill, pattern: boundaryPattern(alias)})
	}

	sort.Slice(s.matchers, func(i, j int) bool {
		return s.matchers[i].pattern.String() < s.matchers[j].pattern.String()
	})

	return s
}

// boundaryPattern matches term as a whole word. \b is not enough for
// terms such as "c++", "c#" or "node.js", so the boundaries are spelled out
// as "not preceded/followed by a word character". A leading dot is not a
// boundary, so "js" does not match inside "vue.js".
func boundaryPattern(term string) *regexp.Regexp {
	return regexp.MustCompile(`(?:^|[^\p{L}\p{N}_.])` + regexp.QuoteMeta(term) + `(?:$|[^\p{L}\p{N}_+#])`)
}

func (s *skillExtractorService) Vocabulary() *SkillVocabulary {
	return s.vocab
}

// ExtractSkills returns the sorted vocabulary skills mentioned in text.
func (s *skillExtractorService) ExtractSkills(text string) []string {
	if strings.TrimSpace(text) == "" {
		return []string{}
	}

	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	for _, m := range s.matchers {
		if _, ok := found[m.skill]; ok {
			continue
		}
		if m.pattern.MatchString(lower) {
			found[m.skill] = struct{}{}
		}
	}

	for _, skill := range s.contextSkills(lower) {
		found[skill] = struct{}{}
	}

	skills := make([]string, 0, len(found))
	for skill := range found {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	return skills
}

// contextSkills picks up list items after phrases like "experience with"
// or "skills:" that resolve to a vocabulary skill.
func (s *skillExtractorService) contextSkills(lower string) []string {
	var skills []string
	for _, pattern := range skillContextPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			for _, candidate := range skillListSeparator.Split(match[1], -1) {
				candidate = contextFillers.ReplaceAllString(strings.TrimSpace(candidate), "")
				if skill, ok := s.resolve(candidate); ok {
					skills = append(skills, skill)
				}
			}
		}
	}
	return skills
}

func (s *skillExtractorService) resolve(candidate string) (string, bool) {
	candidate = strings.TrimSpace(candidate)
	if len(candidate) < 1 || len(strings.Fields(candidate)) > 4 {
		return "", false
	}
	skill, ok := s.known[candidate]
	return skill, ok
}

// CompareSkills splits jobSkills into those covered by the resume and those
// missing from it, keeping job order.
func (s *skillExtractorService) CompareSkills(resumeSkills, jobSkills []string) ([]string, []string) {
	resumeSet := make(map[string]struct{}, len(resumeSkills))
	for _, skill := range resumeSkills {
		resumeSet[strings.ToLower(skill)] = struct{}{}
	}

	matched := []string{}
	missing := []string{}
	seen := make(map[string]struct{}, len(jobSkills))

	for _, skill := range jobSkills {
		lower := strings.ToLower(skill)
		if _, dup := seen[lower]; dup {
			continue
		}
		seen[lower] = struct{}{}

		if s.hasMatch(lower, resumeSet) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	return matched, missing
}

func (s *skillExtractorService) hasMatch(jobSkill string, resumeSet map[string]struct{}) bool {
	if _, ok := resumeSet[jobSkill]; ok {
		return true
	}
	for resumeSkill := range resumeSet {
		if s.similarSkills(jobSkill, resumeSkill) {
			return true
		}
	}
	return false
}

// similarSkills reports whether one skill's words appear as a run inside the
// other's ("google cloud" and "google cloud platform") or both are listed
// as variations of the same base skill.
func (s *skillExtractorService) similarSkills(a, b string) bool {
	if containsWords(a, b) || containsWords(b, a) {
		return true
	}

	for base, variations := range s.vocab.Variations {
		aIn := a == base || contains(variations, a)
		bIn := b == base || contains(variations, b)
		if aIn && bIn {
			return true
		}
	}
	return false
}

func containsWords(haystack, needle string) bool {
	h := strings.Fields(haystack)
	n := strings.Fields(needle)
	if len(n) == 0 || len(n) > len(h) {
		return false
	}
	for i := 0; i+len(n) <= len(h); i++ {
		match := true
		for j := range n {
			if h[i+j] != n[j] {
				match = false
				break
			}
		}
		if match {
			return true
		}
	}
	return false
}

func contains(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

// CategorizeSkills groups skills by vocabulary category. Groups follow the
// vocabulary order, then soft_skills, then other; empty groups are kept.
func (s *skillExtractorService) CategorizeSkills(skills []string) []models.SkillGroup {
	groups := make([]models.SkillGroup, 0, len(s.vocab.Categories)+2)
	index := make(map[string]int)

	for _, category := range s.vocab.Categories {
		index[category.Name] = len(groups)
		groups = append(groups, models.SkillGroup{Category: category.Name, Skills: []string{}})
	}
	index[CategorySoftSkills] = len(groups)
	groups = append(groups, models.SkillGroup{Category: CategorySoftSkills, Skills: []string{}})
	index[CategoryOther] = len(groups)
	groups = append(groups, models.SkillGroup{Category: CategoryOther, Skills: []string{}})

	for _, skill := range skills {
		category, ok := s.categoryOf[strings.ToLower(skill)]
		if !ok {
			category = CategoryOther
		}
		i := index[category]
		groups[i].Skills = append(groups[i].Skills, skill)
	}

	return groups
}

// Recommendations suggests other skills from the technical categories the
// missing skills belong to.
func (s *skillExtractorService) Recommendations(missingSkills []string) []string {
	missing := make(map[string]struct{}, len(missingSkills))
	for _, skill := range missingSkills {
		missing[strings.ToLower(skill)] = struct{}{}
	}

	var recommendations []string
	for _, group := range s.CategorizeSkills(missingSkills) {
		if len(group.Skills) == 0 || group.Category == CategorySoftSkills || group.Category == CategoryOther {
			continue
		}
		for _, skill := range s.categorySkills(group.Category) {
			if _, ok := missing[skill]; ok {
				continue
			}
			recommendations = append(recommendations, fmt.Sprintf(
				"Consider learning %s (related to %s)", skill, strings.ReplaceAll(group.Category, "_", " "),
			))
			if len(recommendations) == maxRecommendations {
				return recommendations
			}
		}
	}

	if recommendations == nil {
		return []string{}
	}
	return recommendations
}

func (s *skillExtractorService) categorySkills(name string) []string {
	for _, category := range s.vocab.Categories {
		if category.Name == name {
			return category.Skills
		}
	}
	return nil
}

// CategoryCoverage counts skills per technical category, in vocabulary order.
func CategoryCoverage(groups []models.SkillGroup, categories []SkillCategory) []int {
	counts := make([]int, len(categories))
	for i, category := range categories {
		for _, group := range groups {
			if group.Category == category.Name {
				counts[i] = len(group.Skills)
			}
		}
	}
	return counts
}

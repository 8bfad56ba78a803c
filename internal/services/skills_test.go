package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSkills_KeywordsWithSymbols(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	skills := svc.ExtractSkills("Experienced in Python, Go and Kubernetes. Familiar with C++ and node.js.")

	assert.Equal(t, []string{"c++", "go", "kubernetes", "node.js", "python"}, skills)
}

func TestExtractSkills_Aliases(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	skills := svc.ExtractSkills("Built services on k8s with golang and postgres")

	assert.Equal(t, []string{"go", "kubernetes", "postgresql"}, skills)
}

func TestExtractSkills_ContextPhrase(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	assert.Equal(t, []string{"c#"}, svc.ExtractSkills("Skilled in C#."))
}

func TestExtractSkills_NoPartialWordMatches(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	assert.Empty(t, svc.ExtractSkills("We trust our expressive team with reading and writing"))
	assert.Empty(t, svc.ExtractSkills(""))
}

func TestExtractSkills_SubsetOfVocabulary(t *testing.T) {
	svc := NewSkillExtractorService(nil)
	vocabulary := make(map[string]bool)
	for _, skill := range svc.Vocabulary().AllSkills() {
		vocabulary[skill] = true
	}

	texts := []string{
		"Skills: Python, Django, REST APIs, GraphQL, leadership and problem solving",
		"Experience with AWS Lambda, DynamoDB, Terraform; tools: Git, Jira, Slack",
		"Proficient in machine learning (TensorFlow, PyTorch) and data analysis with pandas",
		"Technologies: ML, sklearn, visual studio code, Mongo",
	}

	for _, text := range texts {
		for _, skill := range svc.ExtractSkills(text) {
			assert.True(t, vocabulary[skill], "%q from %q is not a vocabulary skill", skill, text)
		}
	}
}

func TestExtractSkills_SortedAndUnique(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	skills := svc.ExtractSkills("Docker docker DOCKER and AWS, aws, Amazon Web Services")

	assert.Equal(t, []string{"aws", "docker"}, skills)
}

func TestCompareSkills_ExactAndFuzzy(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	matched, missing := svc.CompareSkills(
		[]string{"python", "google cloud", "postgresql"},
		[]string{"python", "gcp", "postgresql", "docker", "google cloud platform"},
	)

	assert.Equal(t, []string{"python", "gcp", "postgresql", "google cloud platform"}, matched)
	assert.Equal(t, []string{"docker"}, missing)
}

func TestCompareSkills_ShortSkillsNeedWholeWords(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	matched, missing := svc.CompareSkills([]string{"ruby", "rust"}, []string{"r", "go"})

	assert.Empty(t, matched)
	assert.Equal(t, []string{"r", "go"}, missing)
}

func TestCompareSkills_PartitionsJobSkills(t *testing.T) {
	svc := NewSkillExtractorService(nil)
	jobSkills := []string{"aws", "docker", "python", "react", "teamwork"}

	matched, missing := svc.CompareSkills([]string{"python", "amazon web services"}, jobSkills)

	assert.Len(t, append(append([]string{}, matched...), missing...), len(jobSkills))
	for _, skill := range matched {
		assert.NotContains(t, missing, skill)
	}
	assert.ElementsMatch(t, jobSkills, append(matched, missing...))
	assert.Equal(t, []string{"aws", "python"}, matched)
}

func TestCompareSkills_Empty(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	matched, missing := svc.CompareSkills(nil, nil)

	assert.NotNil(t, matched)
	assert.NotNil(t, missing)
	assert.Empty(t, matched)
	assert.Empty(t, missing)
}

func TestCategorizeSkills(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	groups := svc.CategorizeSkills([]string{"python", "react", "communication", "cobol"})

	require.Len(t, groups, 8)
	assert.Equal(t, "programming_languages", groups[0].Category)
	assert.Equal(t, []string{"python"}, groups[0].Skills)
	assert.Equal(t, "web_technologies", groups[1].Category)
	assert.Equal(t, []string{"react"}, groups[1].Skills)
	assert.Equal(t, CategorySoftSkills, groups[6].Category)
	assert.Equal(t, []string{"communication"}, groups[6].Skills)
	assert.Equal(t, CategoryOther, groups[7].Category)
	assert.Equal(t, []string{"cobol"}, groups[7].Skills)
	assert.Empty(t, groups[2].Skills)
}

func TestRecommendations(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	recs := svc.Recommendations([]string{"docker"})

	require.Len(t, recs, 5)
	assert.Equal(t, "Consider learning aws (related to cloud platforms)", recs[0])
	for _, rec := range recs {
		assert.NotContains(t, rec, "learning docker")
	}
}

func TestRecommendations_SoftSkillsOnly(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	assert.Empty(t, svc.Recommendations([]string{"communication"}))
	assert.Empty(t, svc.Recommendations(nil))
}

func TestLoadSkillVocabulary(t *testing.T) {
	content := `
categories:
  - name: Languages
    skills: [Go, Elixir]
soft_skills: [Mentoring]
aliases:
  Golang: go
`
	path := filepath.Join(t.TempDir(), "skills.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	vocab, err := LoadSkillVocabulary(path)
	require.NoError(t, err)

	require.Len(t, vocab.Categories, 1)
	assert.Equal(t, "languages", vocab.Categories[0].Name)
	assert.Equal(t, []string{"go", "elixir"}, vocab.Categories[0].Skills)
	assert.Equal(t, []string{"mentoring"}, vocab.SoftSkills)
	assert.Equal(t, "go", vocab.Aliases["golang"])

	svc := NewSkillExtractorService(vocab)
	assert.Equal(t, []string{"elixir", "go", "mentoring"}, svc.ExtractSkills("Golang and Elixir, plus mentoring juniors"))
}

func TestLoadSkillVocabulary_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSkillVocabulary(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read skills file")

	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("categories: ["), 0644))
	_, err = LoadSkillVocabulary(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse skills file")

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("{}"), 0644))
	_, err = LoadSkillVocabulary(empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defines no skills")
}

func TestLoadSkillVocabulary_ExampleFile(t *testing.T) {
	vocab, err := LoadSkillVocabulary(filepath.Join("..", "..", "configs", "skills.example.yaml"))
	require.NoError(t, err)

	svc := NewSkillExtractorService(vocab)
	assert.Equal(t, []string{"go", "kubernetes", "postgresql"}, svc.ExtractSkills("Golang services on k8s backed by Postgres"))
}

func TestExtractSkills_NoAliasInsideDottedNames(t *testing.T) {
	svc := NewSkillExtractorService(nil)

	assert.Equal(t, []string{"node.js", "vue"}, svc.ExtractSkills("Built APIs with Node.js and Vue.js"))

	matched, missing := svc.CompareSkills(svc.ExtractSkills("Frontend work in Vue.js"), []string{"javascript"})
	assert.Empty(t, matched)
	assert.Equal(t, []string{"javascript"}, missing)

	assert.Equal(t, []string{"javascript"}, svc.ExtractSkills("Strong JS fundamentals"))
}

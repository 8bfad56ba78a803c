package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	SuggestionMissingSkills   = "Missing Skills"
	SuggestionContent         = "Content Enhancement"
	SuggestionKeywords        = "Keyword Optimization"
	SuggestionStructure       = "Structure Improvements"
	SuggestionActionItems     = "Action Items"
	minResumeWords            = 200
	maxResumeWords            = 800
	minQuantifiedAchievements = 3
	minActionVerbs            = 5
	maxAverageLineLength      = 100
)

type SuggestionService interface {
	Generate(resumeText, jobDescription string, missingSkills []string) []models.SuggestionGroup
}

type suggestionService struct{}

func NewSuggestionService() SuggestionService {
	return &suggestionService{}
}

var (
	numberPattern       = regexp.MustCompile(`\d+\.?\d*%?|\b\d+\b`)
	digitPattern        = regexp.MustCompile(`\d+`)
	bulletPrefixPattern = regexp.MustCompile(`(?m)^[ \t]*[-*•]`)

	requirementPatterns = []*regexp.Regexp{
		regexp.MustCompile(`required?\s*:?\s*([^.;]+)`),
		regexp.MustCompile(`must\s+have\s*:?\s*([^.;]+)`),
		regexp.MustCompile(`essential\s*:?\s*([^.;]+)`),
		regexp.MustCompile(`qualifications?\s*:?\s*([^.;]+)`),
		regexp.MustCompile(`responsibilities?\s*:?\s*([^.;]+)`),
	}
	requirementSeparator = regexp.MustCompile(`[,;|&\n]+`)

	jobKeywordPatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b[A-Z]{2,}\b`),
		regexp.MustCompile(`\b\w+\.js\b`),
		regexp.MustCompile(`\b\w+SQL\b`),
		regexp.MustCompile(`\b\w+-\w+\b`),
	}
)

var (
	actionVerbs = []string{
		"developed", "implemented", "managed", "led", "created", "designed",
		"optimized", "achieved", "delivered", "improved", "built", "analyzed",
	}

	commonTechTerms = []string{
		"python", "java", "javascript", "react", "angular", "vue",
		"sql", "mysql", "postgresql", "mongodb", "redis",
		"aws", "azure", "gcp", "docker", "kubernetes",
		"git", "linux", "agile", "scrum", "ci/cd",
	}

	industryTerms = [][]string{
		{"financial", "banking", "trading", "investment", "fintech"},
		{"healthcare", "medical", "patient", "clinical", "pharma"},
		{"ecommerce", "retail", "marketplace", "customer", "sales"},
		{"saas", "subscription", "platform", "cloud", "enterprise"},
		{"gaming", "game", "unity", "unreal", "mobile games"},
		{"ai", "machine learning", "deep learning", "neural", "nlp"},
	}

	highPrioritySkills = []string{"python", "sql", "machine learning", "aws", "react", "java"}

	synonymHints = []struct {
		word     string
		synonyms []string
	}{
		{"developed", []string{"built", "created", "designed", "implemented"}},
		{"managed", []string{"led", "supervised", "oversaw", "directed"}},
		{"improved", []string{"enhanced", "optimized", "upgraded", "refined"}},
		{"worked", []string{"collaborated", "partnered", "contributed", "participated"}},
		{"used", []string{"utilized", "employed", "leveraged", "applied"}},
	}

	resumeSectionKeywords = []struct {
		name     string
		keywords []string
	}{
		{"summary", []string{"summary", "objective", "profile"}},
		{"experience", []string{"experience", "work", "employment"}},
		{"skills", []string{"skills", "technical", "competencies"}},
		{"education", []string{"education", "degree", "university"}},
	}
)

// Generate returns improvement suggestions grouped in a fixed order.
func (s *suggestionService) Generate(resumeText, jobDescription string, missingSkills []string) []models.SuggestionGroup {
	return []models.SuggestionGroup{
		{Category: SuggestionMissingSkills, Items: missingSkillSuggestions(missingSkills)},
		{Category: SuggestionContent, Items: contentSuggestions(resumeText, jobDescription)},
		{Category: SuggestionKeywords, Items: keywordSuggestions(resumeText, jobDescription)},
		{Category: SuggestionStructure, Items: structureSuggestions(resumeText)},
		{Category: SuggestionActionItems, Items: actionItems(missingSkills, resumeText)},
	}
}

func missingSkillSuggestions(missingSkills []string) []string {
	if len(missingSkills) == 0 {
		return []string{"Great! All required skills are present in your resume."}
	}

	var technical, tools, soft []string
	for _, skill := range missingSkills {
		lower := strings.ToLower(skill)
		switch {
		case containsAny(lower, "python", "java", "sql", "javascript", "programming"):
			technical = append(technical, skill)
		case containsAny(lower, "git", "docker", "kubernetes", "aws", "azure"):
			tools = append(tools, skill)
		case containsAny(lower, "communication", "leadership", "teamwork", "management"):
			soft = append(soft, skill)
		default:
			technical = append(technical, skill)
		}
	}

	var items []string
	if len(technical) > 0 {
		items = append(items,
			fmt.Sprintf("Consider adding these technical skills to your resume: %s", joinFirst(technical, 5)),
			"Highlight any projects or experience where you've used similar technologies",
		)
	}
	if len(tools) > 0 {
		items = append(items,
			fmt.Sprintf("Include experience with these tools/platforms: %s", joinFirst(tools, 3)),
			"Mention any certifications or training in these technologies",
		)
	}
	if len(soft) > 0 {
		items = append(items,
			fmt.Sprintf("Emphasize these soft skills with specific examples: %s", joinFirst(soft, 3)),
			"Use quantifiable achievements to demonstrate these capabilities",
		)
	}

	var priority []string
	for _, skill := range missingSkills {
		if containsAny(strings.ToLower(skill), highPrioritySkills...) {
			priority = append(priority, skill)
		}
	}
	if len(priority) > 0 {
		items = append(items, fmt.Sprintf("High priority skills to develop: %s", joinFirst(priority, 3)))
	}

	return items
}

func contentSuggestions(resumeText, jobDescription string) []string {
	items := []string{}
	resumeLower := strings.ToLower(resumeText)

	wordCount := len(strings.Fields(resumeText))
	if wordCount < minResumeWords {
		items = append(items, "Your resume appears brief. Consider adding more details about your experience and achievements.")
	} else if wordCount > maxResumeWords {
		items = append(items, "Your resume is quite lengthy. Consider condensing to focus on most relevant experience.")
	}

	if len(numberPattern.FindAllString(resumeText, -1)) < minQuantifiedAchievements {
		items = append(items, "Add quantifiable achievements (e.g., 'Increased efficiency by 25%', 'Managed team of 5')")
	}

	verbs := 0
	for _, verb := range actionVerbs {
		if strings.Contains(resumeLower, verb) {
			verbs++
		}
	}
	if verbs < minActionVerbs {
		items = append(items,
			"Use more strong action verbs to describe your accomplishments",
			"Start bullet points with impactful verbs like 'Developed', 'Implemented', 'Led'",
		)
	}

	requirements := extractKeyRequirements(jobDescription)
	if len(requirements) > 5 {
		requirements = requirements[:5]
	}
	var missingContext []string
	for _, requirement := range requirements {
		if !strings.Contains(resumeLower, requirement) {
			missingContext = append(missingContext, requirement)
		}
	}
	if len(missingContext) > 0 {
		items = append(items, fmt.Sprintf("Consider mentioning experience related to: %s", strings.Join(missingContext, ", ")))
	}

	terms := extractIndustryTerms(jobDescription)
	present := 0
	for _, term := range terms {
		if strings.Contains(resumeLower, term) {
			present++
		}
	}
	if len(terms) > 0 && float64(present) < float64(len(terms))*0.3 {
		items = append(items, "Include more industry-specific terminology to show domain knowledge")
	}

	return items
}

func keywordSuggestions(resumeText, jobDescription string) []string {
	items := []string{}
	resumeLower := strings.ToLower(resumeText)
	keywords := extractJobKeywords(jobDescription)

	var missing []string
	found := 0
	for _, keyword := range keywords {
		if strings.Contains(resumeLower, strings.ToLower(keyword)) {
			found++
		} else {
			missing = append(missing, keyword)
		}
	}

	if len(missing) > 0 {
		items = append(items,
			fmt.Sprintf("Consider incorporating these keywords: %s", joinFirst(missing, 8)),
			"Naturally integrate keywords into your experience descriptions",
		)
	}

	if totalWords := len(strings.Fields(resumeText)); totalWords > 0 {
		density := float64(found) / float64(totalWords) * 100
		if density < 2 {
			items = append(items, "Increase relevant keyword density while maintaining natural flow")
		} else if density > 10 {
			items = append(items, "Reduce keyword stuffing - focus on natural integration")
		}
	}

	jobLower := strings.ToLower(jobDescription)
	for _, hint := range synonymHints {
		if !strings.Contains(resumeLower, hint.word) {
			continue
		}
		for _, synonym := range hint.synonyms {
			if strings.Contains(jobLower, synonym) {
				items = append(items, fmt.Sprintf("Consider using '%s' instead of '%s' to match job language", synonym, hint.word))
				break
			}
		}
	}

	return items
}

func structureSuggestions(resumeText string) []string {
	items := []string{}
	lower := strings.ToLower(resumeText)

	missing := make(map[string]bool)
	for _, section := range resumeSectionKeywords {
		missing[section.name] = !containsAny(lower, section.keywords...)
	}
	if missing["summary"] {
		items = append(items, "Add a professional summary at the top highlighting your key qualifications")
	}
	if missing["skills"] {
		items = append(items, "Include a dedicated skills section to showcase your technical abilities")
	}

	if !containsAny(resumeText, "•", "*", "-", "▪") {
		items = append(items, "Use bullet points to improve readability and highlight achievements")
	}

	styles := make(map[string]struct{})
	for _, prefix := range bulletPrefixPattern.FindAllString(resumeText, -1) {
		styles[prefix] = struct{}{}
	}
	if len(styles) > 1 {
		items = append(items, "Maintain consistent bullet point formatting throughout")
	}

	lines := strings.Split(resumeText, "\n")
	total := 0
	for _, line := range lines {
		total += len([]rune(line))
	}
	if float64(total)/float64(len(lines)) > maxAverageLineLength {
		items = append(items, "Consider breaking long paragraphs into shorter, more digestible points")
	}

	return items
}

func actionItems(missingSkills []string, resumeText string) []string {
	var items []string

	if len(missingSkills) > 0 {
		items = append(items, fmt.Sprintf("Priority: Start learning %s through online courses or projects", missingSkills[0]))
	}
	if len(missingSkills) > 1 {
		items = append(items, fmt.Sprintf("Consider obtaining certification in %s", missingSkills[1]))
	}
	if len(missingSkills) > 2 {
		items = append(items, fmt.Sprintf("Look for volunteer or side projects to gain experience in %s", missingSkills[2]))
	}

	if !strings.Contains(strings.ToLower(resumeText), "experience") {
		items = append(items, "Add a detailed work experience section with specific achievements")
	}
	if !digitPattern.MatchString(resumeText) {
		items = append(items, "Quantify your achievements with specific numbers and percentages")
	}

	items = append(items,
		"Research the company's tech stack and highlight relevant experience",
		"Connect with current employees to understand role requirements better",
	)

	if containsAny(strings.ToLower(strings.Join(missingSkills, " ")), "programming", "development", "coding") {
		items = append(items, "Create GitHub portfolio showcasing projects with the required technologies")
	}

	return append(items, "Prepare specific examples demonstrating your problem-solving abilities")
}

// extractKeyRequirements returns up to ten short phrases following
// "required", "must have" and similar markers.
func extractKeyRequirements(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)
	var requirements []string

	for _, pattern := range requirementPatterns {
		for _, match := range pattern.FindAllStringSubmatch(lower, -1) {
			for _, item := range requirementSeparator.Split(strings.TrimSpace(match[1]), -1) {
				item = strings.TrimSpace(item)
				if len(item) > 3 && len(strings.Fields(item)) <= 4 {
					requirements = append(requirements, item)
				}
			}
		}
	}

	if len(requirements) > 10 {
		requirements = requirements[:10]
	}
	return requirements
}

// extractJobKeywords returns the sorted, de-duplicated acronyms, technical
// tokens and common technology terms found in a job description.
func extractJobKeywords(jobDescription string) []string {
	set := make(map[string]struct{})
	for _, pattern := range jobKeywordPatterns {
		for _, match := range pattern.FindAllString(jobDescription, -1) {
			set[match] = struct{}{}
		}
	}

	lower := strings.ToLower(jobDescription)
	for _, term := range commonTechTerms {
		if strings.Contains(lower, term) {
			set[term] = struct{}{}
		}
	}

	keywords := make([]string, 0, len(set))
	for keyword := range set {
		keywords = append(keywords, keyword)
	}
	sort.Strings(keywords)
	return keywords
}

func extractIndustryTerms(jobDescription string) []string {
	lower := strings.ToLower(jobDescription)
	set := make(map[string]struct{})
	for _, group := range industryTerms {
		for _, term := range group {
			if strings.Contains(lower, term) {
				set[term] = struct{}{}
			}
		}
	}

	terms := make([]string, 0, len(set))
	for term := range set {
		terms = append(terms, term)
	}
	sort.Strings(terms)
	return terms
}

func containsAny(text string, needles ...string) bool {
	for _, needle := range needles {
		if strings.Contains(text, needle) {
			return true
		}
	}
	return false
}

func joinFirst(items []string, n int) string {
	if len(items) > n {
		items = items[:n]
	}
	return strings.Join(items, ", ")
}

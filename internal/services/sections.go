package services

import (
	"regexp"
	"strings"
)

type Section struct {
	Name    string
	Content string
}

type sectionRule struct {
	name        string
	headers     []*regexp.Regexp
	terminators []string
}

// sectionRules are tried in order; the first header that matches opens the
// section and the nearest terminator after it closes the section.
var sectionRules = []sectionRule{
	{
		name:        "experience",
		headers:     headerPatterns(`work\s+experience`, `experience`, `employment`, `professional\s+experience`),
		terminators: []string{"education", "skills", "summary"},
	},
	{
		name:        "skills",
		headers:     headerPatterns(`skills`, `technical\s+skills`, `competencies`),
		terminators: []string{"experience", "education", "summary"},
	},
	{
		name:        "education",
		headers:     headerPatterns(`education`, `academic`, `qualifications`),
		terminators: []string{"experience", "skills", "summary"},
	},
	{
		name:        "summary",
		headers:     headerPatterns(`summary`, `objective`, `profile`),
		terminators: []string{"experience", "skills", "education"},
	},
}

func headerPatterns(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		compiled[i] = regexp.MustCompile(p)
	}
	return compiled
}

// ExtractSections splits a resume or job posting into its common sections.
// Every section is returned; Content is empty when no header was found.
func ExtractSections(text string) []Section {
	lower := strings.ToLower(text)
	sections := make([]Section, 0, len(sectionRules))

	for _, rule := range sectionRules {
		section := Section{Name: rule.name}

		for _, header := range rule.headers {
			loc := header.FindStringIndex(lower)
			if loc == nil {
				continue
			}

			end := len(lower)
			for _, terminator := range rule.terminators {
				if idx := strings.Index(lower[loc[1]:], terminator); idx >= 0 && loc[1]+idx < end {
					end = loc[1] + idx
				}
			}

			section.Content = strings.TrimSpace(lower[loc[0]:end])
			break
		}

		sections = append(sections, section)
	}

	return sections
}

package services

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"alfredoptarigan/resume-matcher/internal/models"
)

const (
	ChartMatchGauge         = "match_gauge"
	ChartSkillsRadar        = "skills_radar"
	ChartSkillsDistribution = "skills_distribution"
	ChartMatchBreakdown     = "match_breakdown"
	ChartImprovementPlan    = "improvement_priority"

	maxPrioritySkills = 10
)

// ScoreColor colours a match percentage: green from 80, orange from 60, red below.
func ScoreColor(percent float64) string {
	switch {
	case percent >= 80:
		return "green"
	case percent >= 60:
		return "orange"
	default:
		return "red"
	}
}

type ChartService interface {
	MatchGauge(percent float64) *models.Figure
	SkillsRadar(resumeSkills, jobSkills, matchedSkills []string) *models.Figure
	ComparisonBar(rows []models.ComparisonRow) *models.Figure
	SkillsDistribution(groups []models.SkillGroup) *models.Figure
	MatchBreakdown(matched, missing []string) *models.Figure
	ImprovementPriority(missing []string) *models.Figure
}

type chartService struct {
	skills SkillExtractorService
}

func NewChartService(skills SkillExtractorService) ChartService {
	return &chartService{skills: skills}
}

func (s *chartService) MatchGauge(percent float64) *models.Figure {
	return &models.Figure{
		Data: []models.Trace{{
			"type":   "indicator",
			"mode":   "gauge+number+delta",
			"value":  percent,
			"domain": map[string]any{"x": []float64{0, 1}, "y": []float64{0, 1}},
			"title":  map[string]any{"text": "Match Score"},
			"delta":  map[string]any{"reference": 70},
			"gauge": map[string]any{
				"axis": map[string]any{"range": []any{nil, 100}},
				"bar":  map[string]any{"color": ScoreColor(percent)},
				"steps": []map[string]any{
					{"range": []float64{0, 50}, "color": "lightgray"},
					{"range": []float64{50, 70}, "color": "gray"},
					{"range": []float64{70, 90}, "color": "lightgreen"},
					{"range": []float64{90, 100}, "color": "green"},
				},
				"threshold": map[string]any{
					"line":      map[string]any{"color": "red", "width": 4},
					"thickness": 0.75,
					"value":     90,
				},
			},
		}},
		Layout: models.Layout{
			"height": 300,
			"font":   map[string]any{"color": "darkblue", "family": "Arial"},
			"margin": map[string]any{"l": 20, "r": 20, "t": 40, "b": 20},
		},
	}
}

// SkillsRadar plots per-category coverage, each category normalised by the
// larger of its vocabulary size and the skills found for it.
func (s *chartService) SkillsRadar(resumeSkills, jobSkills, matchedSkills []string) *models.Figure {
	categories := s.skills.Vocabulary().Categories

	resumeCounts := CategoryCoverage(s.skills.CategorizeSkills(resumeSkills), categories)
	jobCounts := CategoryCoverage(s.skills.CategorizeSkills(jobSkills), categories)
	matchCounts := CategoryCoverage(s.skills.CategorizeSkills(matchedSkills), categories)

	labels := make([]string, len(categories))
	resumeScores := make([]float64, len(categories))
	jobScores := make([]float64, len(categories))
	matchScores := make([]float64, len(categories))

	for i, category := range categories {
		labels[i] = categoryLabel(category.Name)
		maxPossible := max(len(category.Skills), resumeCounts[i], jobCounts[i], 1)
		resumeScores[i] = float64(resumeCounts[i]) / float64(maxPossible) * 100
		jobScores[i] = float64(jobCounts[i]) / float64(maxPossible) * 100
		matchScores[i] = float64(matchCounts[i]) / float64(maxPossible) * 100
	}

	polar := func(name string, r []float64, line, fill string) models.Trace {
		return models.Trace{
			"type":      "scatterpolar",
			"r":         r,
			"theta":     labels,
			"fill":      "toself",
			"name":      name,
			"line":      map[string]any{"color": line},
			"fillcolor": fill,
		}
	}

	return &models.Figure{
		Data: []models.Trace{
			polar("Resume Skills", resumeScores, "blue", "rgba(0, 100, 255, 0.1)"),
			polar("Job Requirements", jobScores, "red", "rgba(255, 0, 0, 0.1)"),
			polar("Matched Skills", matchScores, "green", "rgba(0, 255, 0, 0.2)"),
		},
		Layout: models.Layout{
			"polar": map[string]any{
				"radialaxis": map[string]any{"visible": true, "range": []float64{0, 100}},
			},
			"showlegend": true,
			"title":      map[string]any{"text": "Skills Coverage by Category"},
			"height":     500,
		},
	}
}

// ComparisonBar draws one horizontal bar per resume, lowest score at the bottom.
func (s *chartService) ComparisonBar(rows []models.ComparisonRow) *models.Figure {
	sorted := make([]models.ComparisonRow, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MatchPercent < sorted[j].MatchPercent
	})

	x := make([]float64, len(sorted))
	y := make([]string, len(sorted))
	colors := make([]string, len(sorted))
	text := make([]string, len(sorted))
	for i, row := range sorted {
		x[i] = row.MatchPercent
		y[i] = row.Filename
		colors[i] = ScoreColor(row.MatchPercent)
		text[i] = fmt.Sprintf("%.1f%%", row.MatchPercent)
	}

	line := func(at float64, color, label string) (map[string]any, map[string]any) {
		shape := map[string]any{
			"type": "line", "x0": at, "x1": at, "y0": 0, "y1": 1, "yref": "paper",
			"line": map[string]any{"color": color, "dash": "dash"},
		}
		annotation := map[string]any{
			"x": at, "y": 1, "yref": "paper", "yanchor": "bottom",
			"text": label, "showarrow": false,
		}
		return shape, annotation
	}

	var shapes, annotations []map[string]any
	for _, ref := range []struct {
		at    float64
		color string
		label string
	}{
		{50, "gray", "Minimum"},
		{70, "orange", "Good"},
		{90, "green", "Excellent"},
	} {
		shape, annotation := line(ref.at, ref.color, ref.label)
		shapes = append(shapes, shape)
		annotations = append(annotations, annotation)
	}

	return &models.Figure{
		Data: []models.Trace{{
			"type":          "bar",
			"x":             x,
			"y":             y,
			"orientation":   "h",
			"marker":        map[string]any{"color": colors},
			"text":          text,
			"textposition":  "auto",
			"hovertemplate": "<b>%{y}</b><br>Match Score: %{x:.1f}%<br><extra></extra>",
		}},
		Layout: models.Layout{
			"title":       map[string]any{"text": "Resume Match Comparison"},
			"xaxis":       map[string]any{"title": map[string]any{"text": "Match Score (%)"}},
			"yaxis":       map[string]any{"title": map[string]any{"text": "Resume Files"}},
			"height":      max(400, len(rows)*50),
			"showlegend":  false,
			"margin":      map[string]any{"l": 200, "r": 50, "t": 50, "b": 50},
			"shapes":      shapes,
			"annotations": annotations,
		},
	}
}

func (s *chartService) SkillsDistribution(groups []models.SkillGroup) *models.Figure {
	var labels []string
	var values []int
	for _, group := range groups {
		if len(group.Skills) > 0 {
			labels = append(labels, categoryLabel(group.Category))
			values = append(values, len(group.Skills))
		}
	}

	if len(labels) == 0 {
		return emptyFigure("Skills Distribution", "No skills categorized", "", 400)
	}

	return &models.Figure{
		Data: []models.Trace{{
			"type":         "pie",
			"labels":       labels,
			"values":       values,
			"hole":         0.3,
			"textinfo":     "label+percent",
			"textposition": "auto",
		}},
		Layout: models.Layout{
			"title":      map[string]any{"text": "Skills Distribution by Category"},
			"height":     400,
			"showlegend": true,
		},
	}
}

func (s *chartService) MatchBreakdown(matched, missing []string) *models.Figure {
	bar := func(name string, count int, color string) models.Trace {
		return models.Trace{
			"type":         "bar",
			"name":         name,
			"x":            []string{"Skills Analysis"},
			"y":            []int{count},
			"marker":       map[string]any{"color": color},
			"text":         []string{fmt.Sprint(count)},
			"textposition": "auto",
		}
	}

	return &models.Figure{
		Data: []models.Trace{
			bar("Matched Skills", len(matched), "green"),
			bar("Missing Skills", len(missing), "red"),
		},
		Layout: models.Layout{
			"barmode":    "stack",
			"title":      map[string]any{"text": "Skills Match Breakdown"},
			"yaxis":      map[string]any{"title": map[string]any{"text": "Number of Skills"}},
			"height":     300,
			"showlegend": true,
		},
	}
}

// ImprovementPriority ranks up to ten missing skills; widely requested
// skills are high priority, the rest medium.
func (s *chartService) ImprovementPriority(missing []string) *models.Figure {
	if len(missing) == 0 {
		return emptyFigure("Improvement Priorities", "No missing skills identified", "green", 300)
	}

	priorityOf := func(skill string) int {
		if containsAny(strings.ToLower(skill), "python", "java", "sql", "machine learning", "aws", "react") {
			return 3
		}
		return 2
	}

	skills := make([]string, len(missing))
	copy(skills, missing)
	sort.SliceStable(skills, func(i, j int) bool {
		return priorityOf(skills[i]) > priorityOf(skills[j])
	})
	if len(skills) > maxPrioritySkills {
		skills = skills[:maxPrioritySkills]
	}

	priorities := make([]int, len(skills))
	colors := make([]string, len(skills))
	labels := make([]string, len(skills))
	for i, skill := range skills {
		priorities[i] = priorityOf(skill)
		if priorities[i] == 3 {
			colors[i], labels[i] = "red", "High"
		} else {
			colors[i], labels[i] = "orange", "Medium"
		}
	}

	return &models.Figure{
		Data: []models.Trace{{
			"type":         "bar",
			"x":            priorities,
			"y":            skills,
			"orientation":  "h",
			"marker":       map[string]any{"color": colors},
			"text":         labels,
			"textposition": "auto",
		}},
		Layout: models.Layout{
			"title":      map[string]any{"text": "Missing Skills - Learning Priority"},
			"xaxis":      map[string]any{"title": map[string]any{"text": "Priority Level"}},
			"yaxis":      map[string]any{"title": map[string]any{"text": "Skills"}},
			"height":     max(300, len(skills)*30),
			"showlegend": false,
			"margin":     map[string]any{"l": 150, "r": 50, "t": 50, "b": 50},
		},
	}
}

func emptyFigure(title, message, color string, height int) *models.Figure {
	font := map[string]any{"size": 16}
	if color != "" {
		font["color"] = color
	}
	hidden := map[string]any{"showgrid": false, "zeroline": false, "showticklabels": false}

	return &models.Figure{
		Data: []models.Trace{},
		Layout: models.Layout{
			"title":  map[string]any{"text": title},
			"height": height,
			"xaxis":  hidden,
			"yaxis":  hidden,
			"annotations": []map[string]any{{
				"x": 0.5, "y": 0.5, "xref": "paper", "yref": "paper",
				"text": message, "showarrow": false, "font": font,
			}},
		},
	}
}

// categoryLabel turns "web_technologies" into "Web Technologies".
func categoryLabel(name string) string {
	words := strings.Split(name, "_")
	for i, w := range words {
		if w != "" {
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToUpper(r)) + w[size:]
		}
	}
	return strings.Join(words, " ")
}

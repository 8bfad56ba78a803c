package services

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var markupPattern = regexp.MustCompile(`(?i)<\s*(html|body|div|p|ul|ol|li|br|span|h[1-6]|section|strong|em|table|tr|td)\b[^>]*>`)

const blockElements = "br, p, div, li, h1, h2, h3, h4, h5, h6, tr, section, article, header, footer"

// NormalizeJobDescription turns a pasted job posting into plain text.
// Postings copied from a careers page often arrive as HTML; markup is
// stripped and block elements become line breaks.
func NormalizeJobDescription(input string) string {
	if !markupPattern.MatchString(input) {
		return CleanText(input)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return CleanText(input)
	}

	doc.Find("script, style, noscript").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})

	return CleanText(doc.Text())
}

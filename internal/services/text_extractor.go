package services

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrNoTextContent     = errors.New("no text content found")
)

const (
	FormatPDF  = "pdf"
	FormatText = "txt"
)

// SupportedFormats lists the upload extensions the extractor understands.
var SupportedFormats = []string{FormatPDF, FormatText}

type TextExtractorService interface {
	ExtractText(filename string, data []byte) (*ExtractedText, error)
}

type ExtractedText struct {
	Text      string
	Format    string
	PageCount int
}

type textExtractorService struct{}

func NewTextExtractorService() TextExtractorService {
	return &textExtractorService{}
}

// FileFormat returns the lowercased extension of filename without the dot.
func FileFormat(filename string) string {
	return strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
}

// IsSupportedFormat reports whether filename has an extension the extractor handles.
func IsSupportedFormat(filename string) bool {
	format := FileFormat(filename)
	for _, supported := range SupportedFormats {
		if format == supported {
			return true
		}
	}
	return false
}

func (t *textExtractorService) ExtractText(filename string, data []byte) (*ExtractedText, error) {
	format := FileFormat(filename)

	var (
		raw       string
		pageCount int
		err       error
	)

	switch format {
	case FormatPDF:
		raw, pageCount, err = extractPDFText(data)
	case FormatText:
		raw = decodePlainText(data)
		pageCount = 1
	default:
		if format == "" {
			format = "(none)"
		}
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, err
	}

	text := CleanText(raw)
	if text == "" {
		return nil, fmt.Errorf("%s: %w", filename, ErrNoTextContent)
	}

	return &ExtractedText{
		Text:      text,
		Format:    format,
		PageCount: pageCount,
	}, nil
}

func extractPDFText(data []byte) (text string, pageCount int, err error) {
	// the pdf package panics on some malformed cross-reference tables
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("failed to read PDF: %v", r)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", 0, fmt.Errorf("failed to open PDF: %w", err)
	}

	var textBuilder strings.Builder
	totalPage := r.NumPage()

	for pageIndex := 1; pageIndex <= totalPage; pageIndex++ {
		page := r.Page(pageIndex)
		if page.V.IsNull() {
			continue
		}

		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}

		textBuilder.WriteString(pageText)
		textBuilder.WriteString("\n")
	}

	return textBuilder.String(), totalPage, nil
}

// decodePlainText reads UTF-8, falling back to Latin-1 for anything else.
func decodePlainText(data []byte) string {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if utf8.Valid(data) {
		return string(data)
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "�")
	}
	return string(decoded)
}

// CleanText collapses horizontal whitespace, trims every line and drops empty lines.
func CleanText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	lines := strings.Split(text, "\n")
	cleanedLines := make([]string, 0, len(lines))

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			cleanedLines = append(cleanedLines, line)
		}
	}

	return strings.Join(cleanedLines, "\n")
}

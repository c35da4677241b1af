package parser

import (
	"strings"

	"freightdocs/internal/domain"
)

// TextFromOCR returns the full text of an OCR result, or the page texts
// joined by blank lines when the provider left full text empty.
func TextFromOCR(r domain.OCRResult) string {
	if r.FullText != "" {
		return r.FullText
	}
	texts := make([]string, 0, len(r.Pages))
	for _, p := range r.Pages {
		if p.Text != "" {
			texts = append(texts, p.Text)
		}
	}
	return strings.Join(texts, "\n\n")
}

// HasText reports whether text carries anything to parse.
func HasText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Empty builds the zero-confidence, unverified result returned for a
// document without text. record must be the empty record of the parser's type.
func Empty(record domain.Record, marker string) *domain.ParsingResult {
	return &domain.ParsingResult{
		Type:       record.DocumentType(),
		Record:     record,
		Confidence: 0,
		Verified:   false,
		Details:    domain.ExtractionDetails{domain.DetailError: marker},
	}
}

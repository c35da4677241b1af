package port

import (
	"freightdocs/internal/domain"
)

// DocumentParser extracts a typed record from the text of one document type.
// Implementations hold only immutable configuration and are safe for
// concurrent use.
type DocumentParser interface {
	Type() domain.DocumentType
	Parse(text string) *domain.ParsingResult
	ParseOCRResult(result domain.OCRResult) *domain.ParsingResult
}

package port

import (
	"context"

	"freightdocs/internal/domain"
)

// DocumentSource loads the OCR text of a document from a location such as a
// file path.
type DocumentSource interface {
	Load(ctx context.Context, location string) (domain.OCRResult, error)
}

// DocumentDispatcher routes OCR results to the parser for a document type.
type DocumentDispatcher interface {
	ParseOCRResult(t domain.DocumentType, result domain.OCRResult) (*domain.ParsingResult, error)
}

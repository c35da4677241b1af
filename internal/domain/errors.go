package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownDocumentType = errors.New("unknown document type")
	ErrNoText              = errors.New("no text found in document")
	ErrInvalidOCRResult    = errors.New("invalid OCR result")
	ErrUnsupportedInput    = errors.New("unsupported input file")
)

// UnknownDocumentType wraps ErrUnknownDocumentType with the offending tag.
func UnknownDocumentType(tag string) error {
	return fmt.Errorf("%w: %q", ErrUnknownDocumentType, tag)
}

package parser

import (
	"fmt"
	"sort"

	"freightdocs/internal/domain"
	"freightdocs/internal/port"
)

// Dispatcher routes a document to the parser registered for its type. It is
// built once by the caller and is read-only after construction.
type Dispatcher struct {
	parsers map[domain.DocumentType]port.DocumentParser
}

// NewDispatcher creates a Dispatcher with the given parsers registered.
func NewDispatcher(parsers ...port.DocumentParser) *Dispatcher {
	d := &Dispatcher{parsers: make(map[domain.DocumentType]port.DocumentParser, len(parsers))}
	for _, p := range parsers {
		d.Register(p)
	}
	return d
}

// Register adds p under its own document type, replacing any earlier parser
// for that type.
func (d *Dispatcher) Register(p port.DocumentParser) {
	d.parsers[p.Type()] = p
}

// Parser returns the parser registered for t.
func (d *Dispatcher) Parser(t domain.DocumentType) (port.DocumentParser, error) {
	p, ok := d.parsers[t]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownDocumentType, t)
	}
	return p, nil
}

// Parse runs the parser for t over raw text.
func (d *Dispatcher) Parse(t domain.DocumentType, text string) (*domain.ParsingResult, error) {
	p, err := d.Parser(t)
	if err != nil {
		return nil, err
	}
	return p.Parse(text), nil
}

// ParseOCRResult runs the parser for t over an OCR provider result.
func (d *Dispatcher) ParseOCRResult(t domain.DocumentType, r domain.OCRResult) (*domain.ParsingResult, error) {
	p, err := d.Parser(t)
	if err != nil {
		return nil, err
	}
	return p.ParseOCRResult(r), nil
}

// Types lists the registered document types in sorted order.
func (d *Dispatcher) Types() []domain.DocumentType {
	out := make([]domain.DocumentType, 0, len(d.parsers))
	for t := range d.parsers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

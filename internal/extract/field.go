package extract

import (
	"freightdocs/internal/domain"
)

// Converter validates a match and turns it into a typed value. Returning false
// rejects the match and extraction moves on to the next candidate.
type Converter[T any] func(m Match) (T, bool)

// Field is a named slot with an ordered pattern list and a converter.
type Field[T any] struct {
	Name     string
	Patterns []Pattern
	Convert  Converter[T]
	// EachMatch makes every match of a pattern a candidate instead of only
	// the first one.
	EachMatch bool
	// RecordValue stores the captured value instead of the full match as
	// the raw text in details.
	RecordValue bool
}

// Extract returns the value of the first candidate that converts.
func (f *Field[T]) Extract(text string) (T, Match, bool) {
	var zero T
	for i, p := range f.Patterns {
		var candidates []Match
		if f.EachMatch {
			candidates = p.All(text, i, -1)
		} else if m, ok := p.First(text, i); ok {
			candidates = []Match{m}
		}
		for _, m := range candidates {
			if v, ok := f.Convert(m); ok {
				return v, m, true
			}
		}
	}
	return zero, Match{}, false
}

// ExtractInto runs Extract and records the outcome in details under f.Name.
// It returns nil when the field is absent.
func (f *Field[T]) ExtractInto(text string, details domain.ExtractionDetails) *T {
	v, m, ok := f.Extract(text)
	if !ok {
		Miss(details, f.Name)
		return nil
	}
	if f.RecordValue {
		m.Raw = m.Value
	}
	Record(details, f.Name, m)
	return &v
}

// Record stores the winning pattern index and raw text for field.
func Record(details domain.ExtractionDetails, field string, m Match) {
	idx := m.Index
	details[field] = domain.FieldMatch{Pattern: &idx, Raw: m.Raw}
}

// Miss records that no pattern produced field.
func Miss(details domain.ExtractionDetails, field string) {
	details[field] = domain.FieldMatch{}
}

// Found records a field located without an ordered pattern (keyword scan,
// inference). Its pattern index is -1.
func Found(details domain.ExtractionDetails, field, raw string) {
	idx := -1
	details[field] = domain.FieldMatch{Pattern: &idx, Raw: raw}
}

package validator

import (
	"sort"

	"freightdocs/internal/domain"
)

// unsureThreshold is the confidence at or below which a found field is
// reported as unsure.
const unsureThreshold = 0.5

// FieldStatus represents the computed state of a single extracted field.
type FieldStatus struct {
	Status   domain.FieldStatus `json:"status" yaml:"status"`
	Messages []string           `json:"messages" yaml:"messages"`
}

// ComputeFieldStatuses derives per-field statuses from the extraction details
// of a parse. Fields graded individually use their own confidence; the rest
// fall back to the document confidence.
func ComputeFieldStatuses(details domain.ExtractionDetails, confidence float64) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for _, field := range details.Fields() {
		m, _ := details.Match(field)
		if !m.Found() {
			statuses[field] = &FieldStatus{
				Status:   domain.FieldStatusMissing,
				Messages: []string{"no pattern matched"},
			}
			continue
		}

		score := confidence
		if m.Confidence > 0 {
			score = m.Confidence
		}
		if score <= unsureThreshold {
			statuses[field] = &FieldStatus{
				Status:   domain.FieldStatusUnsure,
				Messages: []string{"low extraction confidence"},
			}
			continue
		}
		statuses[field] = &FieldStatus{Status: domain.FieldStatusFound, Messages: []string{}}
	}
	return statuses
}

// MissingFields lists the fields whose status is missing, in sorted order.
func MissingFields(statuses map[string]*FieldStatus) []string {
	var out []string
	for field, fs := range statuses {
		if fs.Status == domain.FieldStatusMissing {
			out = append(out, field)
		}
	}
	sort.Strings(out)
	return out
}

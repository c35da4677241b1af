package extract

import (
	"strings"
	"time"

	"freightdocs/internal/normalize"
)

// Text accepts the trimmed value when valid (nil accepts anything non-empty).
func Text(valid func(string) bool) Converter[string] {
	return func(m Match) (string, bool) {
		v := strings.TrimSpace(m.Value)
		if v == "" {
			return "", false
		}
		if valid != nil && !valid(v) {
			return "", false
		}
		return v, true
	}
}

// Upper is Text with the value upper-cased before validation.
func Upper(valid func(string) bool) Converter[string] {
	return func(m Match) (string, bool) {
		v := strings.ToUpper(strings.TrimSpace(m.Value))
		if v == "" || (valid != nil && !valid(v)) {
			return "", false
		}
		return v, true
	}
}

// Cleaned runs clean over the value and accepts it when longer than minLen.
func Cleaned(clean func(string) string, minLen int) Converter[string] {
	return func(m Match) (string, bool) {
		v := clean(m.Value)
		if len(v) <= minLen {
			return "", false
		}
		return v, true
	}
}

// Date parses the value with normalize.ParseDate and applies accept, if set.
func Date(accept func(time.Time) bool) Converter[time.Time] {
	return func(m Match) (time.Time, bool) {
		t, ok := normalize.ParseDate(m.Value)
		if !ok {
			return time.Time{}, false
		}
		if accept != nil && !accept(t) {
			return time.Time{}, false
		}
		return t, true
	}
}

// MinorUnits converts the value to cents using the full match for magnitude
// markers, rejecting amounts below minCents.
func MinorUnits(minCents int64) Converter[int64] {
	return func(m Match) (int64, bool) {
		cents, ok := normalize.ToMinorUnits(m.Value, m.Raw)
		if !ok || cents < minCents {
			return 0, false
		}
		return cents, true
	}
}

package validator

import (
	"regexp"
	"strings"

	"freightdocs/internal/normalize"
)

var trailingPunct = regexp.MustCompile(`[.,;:]+$`)

var companyLabelWords = map[string]struct{}{
	"CERTIFICATE": {}, "LIABILITY": {}, "GENERAL": {}, "POLICY": {},
	"COVERAGE": {}, "EFFECTIVE": {}, "EXPIRATION": {}, "AMOUNT": {}, "LIMIT": {},
}

// CleanCompanyName strips label words that leak into a captured carrier name
// and title-cases the rest. When every word is filtered the collapsed input
// is returned unchanged.
func CleanCompanyName(s string) string {
	s = normalize.CollapseSpace(s)
	s = trailingPunct.ReplaceAllString(s, "")

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		upper := strings.ToUpper(w)
		_, label := companyLabelWords[upper]
		switch {
		case !label && len(w) > 1:
			kept = append(kept, w)
		case (upper == "INSURANCE" || upper == "COMPANY") && len(words) > 1:
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return s
	}
	return normalize.TitleCase(strings.Join(kept, " "))
}

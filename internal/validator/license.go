package validator

import (
	"regexp"
	"strings"

	"freightdocs/internal/normalize"
)

var licenseFalsePositives = map[string]struct{}{
	"COMMERCIAL": {}, "DRIVER": {}, "LICENSE": {}, "EXPIRES": {}, "ADDRESS": {},
	"BIRTHDAY": {}, "WEIGHT": {}, "HEIGHT": {}, "EYES": {}, "HAIR": {},
}

// LicenseNumberValid accepts 7 to 15 characters containing at least one digit.
func LicenseNumberValid(s string) bool {
	if len(s) < 7 || len(s) > 15 {
		return false
	}
	if !strings.ContainsAny(s, "0123456789") {
		return false
	}
	_, bad := licenseFalsePositives[strings.ToUpper(s)]
	return !bad
}

var (
	licenseToken = regexp.MustCompile(`^[A-Z0-9]{7,}$`)
	dateToken    = regexp.MustCompile(`^\d+[/-]\d+`)
)

var nameNoiseWords = map[string]struct{}{
	"LICENSE": {}, "CDL": {}, "EXP": {}, "EXPIRES": {}, "CLASS": {},
}

// CleanPersonName drops license-number, date and label tokens from a captured
// name, turns "LAST, FIRST" around and title-cases the result. Long
// upper-case tokens are only dropped when they carry a digit, so surnames
// such as JOHNSON survive.
func CleanPersonName(s string) string {
	s = normalize.CollapseSpace(s)

	words := strings.Fields(s)
	kept := make([]string, 0, len(words))
	for _, w := range words {
		if licenseToken.MatchString(w) && strings.ContainsAny(w, "0123456789") {
			continue
		}
		if dateToken.MatchString(w) {
			continue
		}
		if _, noise := nameNoiseWords[strings.ToUpper(w)]; noise {
			continue
		}
		kept = append(kept, w)
	}
	if len(kept) == 0 {
		return s
	}

	name := strings.Join(kept, " ")
	if parts := strings.Split(name, ","); len(parts) == 2 {
		name = strings.TrimSpace(parts[1]) + " " + strings.TrimSpace(parts[0])
	}
	return normalize.TitleCase(name)
}

// CleanAddress collapses line breaks and whitespace runs.
func CleanAddress(s string) string {
	return normalize.CollapseSpace(s)
}

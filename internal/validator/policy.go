// Package validator holds the value-level checks and cleaners applied to
// captured text before it is accepted as a field.
package validator

import (
	"regexp"
	"strconv"
	"strings"

	"freightdocs/internal/normalize"
)

// DefaultPolicyPrefixes are the carrier codes accepted as bare alphabetic
// policy numbers.
var DefaultPolicyPrefixes = []string{"ABC", "PGR", "ASC", "SF", "ALL", "GEICO", "STATE", "PROG", "TPC"}

const (
	DefaultPolicyYearMin = 2020
	DefaultPolicyYearMax = 2035
)

var (
	policyAlnum     = regexp.MustCompile(`[A-Z0-9]`)
	policyYear      = regexp.MustCompile(`^(?:19|20)\d{2}$`)
	policyRejectors = []*regexp.Regexp{
		regexp.MustCompile(`^20[O][0-9]$`),
		regexp.MustCompile(`^[0-9][O][0-9]{2}$`),
		regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`),
		regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2,4}$`),
	}
)

// policyFalsePositives are label words, OCR fragments and round coverage
// amounts that the broad policy patterns tend to capture.
var policyFalsePositives = map[string]struct{}{
	"CERTIFICATE": {}, "INSURANCE": {}, "LIABILITY": {}, "GENERAL": {},
	"COMMERCIAL": {}, "POLICY": {}, "COVERAGE": {}, "EFFECTIVE": {},
	"EXPIRATION": {}, "COMPANY": {},
	"1000000": {}, "2000000": {}, "500000": {}, "750000": {},
	"IFICATE": {}, "URANCE": {}, "TIFICATE": {},
	"NUMBER": {}, "NO": {}, "#": {},
	"RANDOM": {}, "TEXT": {}, "MORE": {}, "SOME": {}, "NAME": {},
	"DATE": {}, "TIME": {}, "FORM": {}, "TYPE": {}, "KIND": {},
	"AUTO": {}, "HOME": {}, "FIRE": {}, "LIFE": {},
}

// PolicyNumberRules decides whether captured text looks like a policy number.
type PolicyNumberRules struct {
	KnownPrefixes []string
	YearMin       int
	YearMax       int

	prefixes map[string]struct{}
}

// NewPolicyNumberRules builds rules, falling back to the defaults for empty
// or zero arguments.
func NewPolicyNumberRules(prefixes []string, yearMin, yearMax int) *PolicyNumberRules {
	if len(prefixes) == 0 {
		prefixes = DefaultPolicyPrefixes
	}
	if yearMin == 0 {
		yearMin = DefaultPolicyYearMin
	}
	if yearMax == 0 {
		yearMax = DefaultPolicyYearMax
	}
	r := &PolicyNumberRules{
		KnownPrefixes: prefixes,
		YearMin:       yearMin,
		YearMax:       yearMax,
		prefixes:      make(map[string]struct{}, len(prefixes)),
	}
	for _, p := range prefixes {
		r.prefixes[strings.ToUpper(p)] = struct{}{}
	}
	return r
}

// Valid applies the rules to the value exactly as captured.
func (r *PolicyNumberRules) Valid(s string) bool {
	if len(s) < 4 || !policyAlnum.MatchString(s) {
		return false
	}
	for _, re := range policyRejectors {
		if re.MatchString(s) {
			return false
		}
	}
	if policyYear.MatchString(s) {
		year, _ := strconv.Atoi(s)
		if year < r.YearMin || year > r.YearMax {
			return false
		}
	}

	upper := strings.ToUpper(s)
	if _, bad := policyFalsePositives[upper]; bad {
		return false
	}
	if normalize.IsAlpha(s) && len(s) <= 10 {
		if _, ok := r.prefixes[upper]; !ok {
			return false
		}
	}
	if normalize.IsDigits(s) && len(s) < 4 {
		return false
	}
	return true
}

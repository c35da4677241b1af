// Package normalize converts captured text into typed values: money in minor
// units, calendar dates, and cleaned strings.
package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	millionMarker  = regexp.MustCompile(`(?i)\b(?:million|m)\b`)
	thousandMarker = regexp.MustCompile(`(?i)\b(?:thousand|k)\b`)
	amountJunk     = regexp.MustCompile(`[,$\s]`)

	oneMillion  = decimal.NewFromInt(1_000_000)
	oneThousand = decimal.NewFromInt(1_000)
	hundred     = decimal.NewFromInt(100)
)

// ToMinorUnits converts a captured amount to cents. Magnitude markers are read
// from the part of fullMatch that follows the captured digits, so a label such
// as "Commercial Auto" can never scale the amount.
func ToMinorUnits(captured, fullMatch string) (int64, bool) {
	amount, ok := parseAmount(captured)
	if !ok {
		return 0, false
	}

	suffix := fullMatch
	if i := strings.Index(fullMatch, captured); i >= 0 {
		suffix = fullMatch[i+len(captured):]
	}
	switch {
	case millionMarker.MatchString(suffix):
		amount = amount.Mul(oneMillion)
	case thousandMarker.MatchString(suffix):
		amount = amount.Mul(oneThousand)
	}
	return toCents(amount)
}

// DollarsToCents converts a plain dollar amount ("1,234.50", "$2500") to cents.
func DollarsToCents(s string) (int64, bool) {
	amount, ok := parseAmount(s)
	if !ok {
		return 0, false
	}
	return toCents(amount)
}

// ParseAmount parses a dollar amount with separators stripped.
func ParseAmount(s string) (decimal.Decimal, bool) {
	return parseAmount(s)
}

func parseAmount(s string) (decimal.Decimal, bool) {
	cleaned := amountJunk.ReplaceAllString(s, "")
	if cleaned == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func toCents(amount decimal.Decimal) (int64, bool) {
	cents := amount.Mul(hundred).Round(0)
	bi := cents.BigInt()
	if !bi.IsInt64() {
		return 0, false
	}
	return bi.Int64(), true
}

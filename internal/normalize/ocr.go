package normalize

import (
	"regexp"
	"strings"
)

// KeywordFix maps an OCR misreading to its correction.
type KeywordFix struct {
	wrong *regexp.Regexp
	right string
}

func keyword(wrong, right string) KeywordFix {
	return KeywordFix{
		wrong: regexp.MustCompile(`(?i)` + regexp.QuoteMeta(wrong)),
		right: right,
	}
}

// RateConKeywordFixes are digit-for-letter misreadings seen on rate confirmations.
var RateConKeywordFixes = []KeywordFix{
	keyword("orig1n", "origin"),
	keyword("0rigin", "origin"),
	keyword("or1gin", "origin"),
	keyword("destinat10n", "destination"),
	keyword("dest1nat10n", "destination"),
	keyword("destinati0n", "destination"),
	keyword("h0ust0n", "houston"),
	keyword("c0nfirmat10n", "confirmation"),
	keyword("c0nfirmati0n", "confirmation"),
	keyword("p1ckup", "pickup"),
	keyword("p1ck", "pick"),
	keyword("del1very", "delivery"),
	keyword("t0tal", "total"),
	keyword("we1ght", "weight"),
	keyword("c0mm0dity", "commodity"),
	keyword("c0mm0d1ty", "commodity"),
	keyword("l0s angeles", "los angeles"),
}

// PODKeywordFixes are misreadings seen on delivery receipts.
var PODKeywordFixes = []KeywordFix{
	keyword("del1very", "delivery"),
	keyword("de1ivery", "delivery"),
	keyword("del1vered", "delivered"),
	keyword("de1ivered", "delivered"),
	keyword("d3livery", "delivery"),
	keyword("d3livered", "delivered"),
	keyword("del!very", "delivery"),
	keyword("del!vered", "delivered"),
	keyword("s1gnature", "signature"),
	keyword("s1gned", "signed"),
	keyword("rec31ved", "received"),
	keyword("rece1ved", "received"),
	keyword("acc3pted", "accepted"),
	keyword("accept3d", "accepted"),
	keyword("pr00f", "proof"),
	keyword("pr0of", "proof"),
	keyword("p0d", "pod"),
	keyword("dat3", "date"),
	keyword("dat_e", "date"),
	keyword("t1me", "time"),
	keyword("tim3", "time"),
	keyword("c0nfirmat10n", "confirmation"),
	keyword("c0nfirmati0n", "confirmation"),
	keyword("c0mplete", "complete"),
	keyword("compl3te", "complete"),
}

// FixKeywords replaces each misreading case-insensitively, keeping the case
// shape of the original text (upper, title, or as given in the table).
func FixKeywords(text string, fixes []KeywordFix) string {
	for _, f := range fixes {
		text = f.wrong.ReplaceAllStringFunc(text, func(orig string) string {
			switch {
			case IsUpper(orig):
				return strings.ToUpper(f.right)
			case IsTitle(orig):
				return TitleCase(f.right)
			default:
				return f.right
			}
		})
	}
	return text
}

// FixKeywordsLower replaces each misreading case-insensitively with the
// lower-case correction.
func FixKeywordsLower(text string, fixes []KeywordFix) string {
	for _, f := range fixes {
		text = f.wrong.ReplaceAllLiteralString(text, f.right)
	}
	return text
}

var digitConfusions = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile(`(?i)\b0([a-z]{2,})\b`), "o${1}"},
	{regexp.MustCompile(`(?i)\b([a-z]+)0([a-z]+)\b`), "${1}o${2}"},
	{regexp.MustCompile(`(?i)\b1([a-z]{2,})\b`), "l${1}"},
	{regexp.MustCompile(`(?i)\b([a-z]+)1([a-z]+)\b`), "${1}l${2}"},
}

// FixDigitConfusions turns a 0 or 1 embedded in an alphabetic word into o or l.
func FixDigitConfusions(text string) string {
	for _, c := range digitConfusions {
		text = c.re.ReplaceAllString(text, c.repl)
	}
	return text
}

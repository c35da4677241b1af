// Package extract runs ordered fallback patterns over OCR text. Patterns are
// tried most-specific first; the first one whose capture converts wins.
package extract

import (
	"regexp"
)

// Pattern is one candidate in a field's ordered pattern list.
type Pattern struct {
	Expr *regexp.Regexp
	// Group is the capture group holding the value.
	Group int
}

// P compiles a case-insensitive pattern whose value is capture group 1.
func P(expr string) Pattern {
	return Pattern{Expr: regexp.MustCompile(`(?i)` + expr), Group: 1}
}

// Exact compiles a case-sensitive pattern whose value is capture group 1.
func Exact(expr string) Pattern {
	return Pattern{Expr: regexp.MustCompile(expr), Group: 1}
}

// WithGroup returns a copy of p reading its value from group g.
func (p Pattern) WithGroup(g int) Pattern {
	p.Group = g
	return p
}

// Match is one pattern hit.
type Match struct {
	// Index is the position of the producing pattern in its list.
	Index int
	// Raw is the full matched substring.
	Raw string
	// Value is the text of the pattern's value group.
	Value string
	// Groups holds every capture group, Groups[0] being Raw.
	Groups []string
}

// Group returns capture group i, or "" when it did not participate.
func (m Match) Group(i int) string {
	if i < 0 || i >= len(m.Groups) {
		return ""
	}
	return m.Groups[i]
}

// First returns the first match of p in text.
func (p Pattern) First(text string, index int) (Match, bool) {
	sub := p.Expr.FindStringSubmatch(text)
	if sub == nil {
		return Match{}, false
	}
	return newMatch(index, p.Group, sub), true
}

// All returns every non-overlapping match of p in text, at most n when n >= 0.
func (p Pattern) All(text string, index, n int) []Match {
	subs := p.Expr.FindAllStringSubmatch(text, n)
	out := make([]Match, 0, len(subs))
	for _, sub := range subs {
		out = append(out, newMatch(index, p.Group, sub))
	}
	return out
}

func newMatch(index, group int, sub []string) Match {
	m := Match{Index: index, Raw: sub[0], Groups: sub}
	if group < len(sub) {
		m.Value = sub[group]
	}
	return m
}

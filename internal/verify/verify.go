// Package verify decides whether a parsed document is usable without human
// review.
package verify

import (
	"math"
	"time"
)

// DaysUntil returns the whole days from now until t, rounding toward
// negative infinity so that a date already passed is never zero days away.
func DaysUntil(t, now time.Time) int {
	return int(math.Floor(t.Sub(now).Hours() / 24))
}

// Check is one named condition of a rule.
type Check[T any] struct {
	Name string
	Pass func(T) bool
}

// Rule is an ordered list of checks that must all pass.
type Rule[T any] struct {
	Checks []Check[T]
}

// NewRule builds a rule from checks in evaluation order.
func NewRule[T any](checks ...Check[T]) Rule[T] {
	return Rule[T]{Checks: checks}
}

// Evaluate runs the checks in order, stopping at the first failure. It
// returns the name of the failed check, or "" when the subject verifies.
func (r Rule[T]) Evaluate(subject T) (bool, string) {
	for _, c := range r.Checks {
		if !c.Pass(subject) {
			return false, c.Name
		}
	}
	return true, ""
}

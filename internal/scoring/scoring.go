// Package scoring turns the set of fields a parser found into a confidence
// score in [0, 1]: a weighted base, optionally replaced or raised by the first
// tier whose condition holds.
package scoring

// Presence records which named fields a parse produced.
type Presence map[string]bool

// Has reports whether field was found.
func (p Presence) Has(field string) bool {
	return p[field]
}

// All reports whether every listed field was found.
func (p Presence) All(fields ...string) bool {
	for _, f := range fields {
		if !p[f] {
			return false
		}
	}
	return true
}

// Any reports whether at least one listed field was found.
func (p Presence) Any(fields ...string) bool {
	for _, f := range fields {
		if p[f] {
			return true
		}
	}
	return false
}

// Count returns how many fields were found. With no arguments it counts the
// whole set.
func (p Presence) Count(fields ...string) int {
	n := 0
	if len(fields) == 0 {
		for _, ok := range p {
			if ok {
				n++
			}
		}
		return n
	}
	for _, f := range fields {
		if p[f] {
			n++
		}
	}
	return n
}

// Weight is one field's share of the weighted base.
type Weight struct {
	Field string
	Value float64
}

// Mode says how a triggered tier combines with the weighted base.
type Mode int

const (
	// Replace discards the weighted base and uses the tier score.
	Replace Mode = iota
	// Floor keeps the weighted base unless the tier score is higher.
	Floor
)

// Tier is a named score band guarded by a condition over the found fields.
type Tier struct {
	Name  string
	When  func(Presence) bool
	Score float64
	Mode  Mode
}

// Model is the scoring configuration of one document type. Tiers are
// evaluated in order and only the first triggered tier applies.
type Model struct {
	Weights []Weight
	Tiers   []Tier
}

// Result is a computed score with the base and tier that produced it.
type Result struct {
	Score float64
	Base  float64
	// Tier is the name of the triggered tier, empty when the weighted base
	// stands alone.
	Tier string
}

// Score evaluates the model over p.
func (m Model) Score(p Presence) Result {
	base := m.Base(p)
	res := Result{Score: base, Base: base}
	for _, t := range m.Tiers {
		if t.When == nil || !t.When(p) {
			continue
		}
		res.Tier = t.Name
		switch t.Mode {
		case Floor:
			if t.Score > res.Score {
				res.Score = t.Score
			}
		default:
			res.Score = t.Score
		}
		break
	}
	res.Score = Clamp(res.Score)
	return res
}

// Base sums the weights of the found fields.
func (m Model) Base(p Presence) float64 {
	total := 0.0
	for _, w := range m.Weights {
		if p[w.Field] {
			total += w.Value
		}
	}
	return total
}

// Graded sums each weight multiplied by the field's own extraction
// confidence. Fields absent from grades contribute nothing.
func (m Model) Graded(grades map[string]float64) float64 {
	total := 0.0
	for _, w := range m.Weights {
		total += grades[w.Field] * w.Value
	}
	return total
}

// Breakdown returns the contribution of every weighted field, zero for
// fields that were not found.
func (m Model) Breakdown(p Presence) map[string]float64 {
	out := make(map[string]float64, len(m.Weights))
	for _, w := range m.Weights {
		if p[w.Field] {
			out[w.Field] = w.Value
		} else {
			out[w.Field] = 0
		}
	}
	return out
}

// Clamp bounds v to [0, 1].
func Clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// Always is a tier condition that always holds.
func Always(Presence) bool { return true }

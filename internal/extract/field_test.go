package extract_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
)

func TestPattern_FirstAndAll(t *testing.T) {
	p := extract.P(`ref\s*#?\s*(\d+)`)

	m, ok := p.First("REF #12 and ref 34", 3)
	require.True(t, ok)
	assert.Equal(t, 3, m.Index)
	assert.Equal(t, "REF #12", m.Raw)
	assert.Equal(t, "12", m.Value)
	assert.Equal(t, "12", m.Group(1))
	assert.Equal(t, "", m.Group(5))

	all := p.All("REF #12 and ref 34", 0, -1)
	require.Len(t, all, 2)
	assert.Equal(t, "34", all[1].Value)

	assert.Len(t, p.All("REF #12 and ref 34", 0, 1), 1)

	_, ok = p.First("nothing here", 0)
	assert.False(t, ok)
}

func TestPattern_ExactIsCaseSensitive(t *testing.T) {
	p := extract.Exact(`([A-Z]{2})\s+\d{5}`)

	_, ok := p.First("tx 75201", 0)
	assert.False(t, ok)

	m, ok := p.First("TX 75201", 0)
	require.True(t, ok)
	assert.Equal(t, "TX", m.Value)
}

func TestPattern_WithGroupZero(t *testing.T) {
	p := extract.P(`delivered\s+successfully`).WithGroup(0)

	m, ok := p.First("Package Delivered  successfully today", 0)
	require.True(t, ok)
	assert.Equal(t, "Delivered  successfully", m.Value)
}

func TestField_FallsThroughRejectedCandidates(t *testing.T) {
	f := extract.Field[string]{
		Name: "code",
		Patterns: []extract.Pattern{
			extract.P(`code:\s*(\w+)`),
			extract.P(`id:\s*(\w+)`),
		},
		Convert: extract.Text(func(s string) bool { return len(s) >= 4 }),
	}

	v, m, ok := f.Extract("code: ab\nid: abcd")
	require.True(t, ok)
	assert.Equal(t, "abcd", v)
	assert.Equal(t, 1, m.Index)
}

func TestField_EachMatch(t *testing.T) {
	f := extract.Field[string]{
		Name:      "code",
		Patterns:  []extract.Pattern{extract.P(`code:\s*(\w+)`)},
		Convert:   extract.Text(func(s string) bool { return len(s) >= 4 }),
		EachMatch: true,
	}

	v, _, ok := f.Extract("code: ab\ncode: abcd")
	require.True(t, ok)
	assert.Equal(t, "abcd", v)

	f.EachMatch = false
	_, _, ok = f.Extract("code: ab\ncode: abcd")
	assert.False(t, ok)
}

func TestField_ExtractInto(t *testing.T) {
	f := extract.Field[string]{
		Name:     "code",
		Patterns: []extract.Pattern{extract.P(`code:\s*(\w+)`)},
		Convert:  extract.Upper(nil),
	}
	details := domain.ExtractionDetails{}

	v := f.ExtractInto("Code: xy12", details)
	require.NotNil(t, v)
	assert.Equal(t, "XY12", *v)

	m, ok := details.Match("code")
	require.True(t, ok)
	require.NotNil(t, m.Pattern)
	assert.Equal(t, 0, *m.Pattern)
	assert.Equal(t, "Code: xy12", m.Raw)

	assert.Nil(t, f.ExtractInto("nothing", details))
	m, _ = details.Match("code")
	assert.False(t, m.Found())
}

func TestField_ExtractIntoRecordValue(t *testing.T) {
	f := extract.Field[string]{
		Name:        "due",
		Patterns:    []extract.Pattern{extract.P(`due\s+date:\s*(\S+)`)},
		Convert:     extract.Text(nil),
		RecordValue: true,
	}
	details := domain.ExtractionDetails{}

	f.ExtractInto("Due Date: 07/01/2026", details)

	m, ok := details.Match("due")
	require.True(t, ok)
	assert.Equal(t, "07/01/2026", m.Raw)
}

func TestFound_UsesNegativeIndex(t *testing.T) {
	details := domain.ExtractionDetails{}

	extract.Found(details, "origin", "Origin: Dallas, TX")

	m, ok := details.Match("origin")
	require.True(t, ok)
	assert.Equal(t, -1, *m.Pattern)
	assert.True(t, m.Found())
}

func TestConverters(t *testing.T) {
	match := func(value, raw string) extract.Match {
		return extract.Match{Value: value, Raw: raw}
	}

	_, ok := extract.Text(nil)(match("   ", ""))
	assert.False(t, ok)

	v, ok := extract.Cleaned(strings.TrimSpace, 2)(match(" abc ", ""))
	assert.True(t, ok)
	assert.Equal(t, "abc", v)
	_, ok = extract.Cleaned(strings.TrimSpace, 2)(match(" ab ", ""))
	assert.False(t, ok)

	cents, ok := extract.MinorUnits(100)(match("2", "$2 Million"))
	assert.True(t, ok)
	assert.Equal(t, int64(200000000), cents)
	_, ok = extract.MinorUnits(100000)(match("50", "$50"))
	assert.False(t, ok)

	notPast := func(tm time.Time) bool { return tm.Year() >= 2026 }
	d, ok := extract.Date(notPast)(match("03/01/2026", ""))
	assert.True(t, ok)
	assert.Equal(t, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), d)
	_, ok = extract.Date(notPast)(match("03/01/2020", ""))
	assert.False(t, ok)
	_, ok = extract.Date(nil)(match("soon", ""))
	assert.False(t, ok)
}

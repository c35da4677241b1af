package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/normalize"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"01/15/2026", day(2026, 1, 15)},
		{"1-15-2026", day(2026, 1, 15)},
		{"1/15/26", day(2026, 1, 15)},
		{"1-15-26", day(2026, 1, 15)},
		{"2026/01/15", day(2026, 1, 15)},
		{"2026-1-15", day(2026, 1, 15)},
		{" 12/31/2027 ", day(2027, 12, 31)},
	}
	for _, tt := range tests {
		got, ok := normalize.ParseDate(tt.in)
		require.True(t, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "13/45/2026", "25/12/2025", "January 5"} {
		_, ok := normalize.ParseDate(in)
		assert.False(t, ok, in)
	}
}

func TestParseInvoiceDate_DayFirstFallback(t *testing.T) {
	got, ok := normalize.ParseInvoiceDate("25/12/2025")
	require.True(t, ok)
	assert.Equal(t, day(2025, 12, 25), got)

	got, ok = normalize.ParseInvoiceDate("03/04/2026")
	require.True(t, ok)
	assert.Equal(t, day(2026, 3, 4), got)
}

func TestParseDateTime(t *testing.T) {
	tests := []struct {
		date  string
		clock string
		want  time.Time
	}{
		{"06/15/2026", "2:30 PM", time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)},
		{"06/15/2026", "2:30pm", time.Date(2026, 6, 15, 14, 30, 0, 0, time.UTC)},
		{"06/15/2026", "14:05", time.Date(2026, 6, 15, 14, 5, 0, 0, time.UTC)},
		{"06/15/2026", "", day(2026, 6, 15)},
		{"06/15/2026", "99:99", day(2026, 6, 15)},
		{"June 15, 2026", "", day(2026, 6, 15)},
		{"25/06/2026", "", day(2026, 6, 25)},
	}
	for _, tt := range tests {
		got, ok := normalize.ParseDateTime(tt.date, tt.clock)
		require.True(t, ok, tt.date+" "+tt.clock)
		assert.Equal(t, tt.want, got, tt.date+" "+tt.clock)
	}
}

func TestParseDateTime_BadDate(t *testing.T) {
	_, ok := normalize.ParseDateTime("not a date", "10:00")

	assert.False(t, ok)
}

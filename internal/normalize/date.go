package normalize

import (
	"strings"
	"time"
)

// DateLayouts is the ordered list of layouts tried by ParseDate.
var DateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
	"2006/1/2",
	"2006-1-2",
}

// deliveryDateLayouts extends DateLayouts with the day-first, month-name and
// timestamped shapes seen on delivery receipts.
var deliveryDateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
	"2006/1/2",
	"2006-1-2",
	"2/1/2006",
	"2-1-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2006-01-02 15:04:05",
	"1/2/2006 15:04:05",
}

// invoiceDateLayouts follows DateLayouts with day-first fallbacks.
var invoiceDateLayouts = []string{
	"1/2/2006",
	"1-2-2006",
	"1/2/06",
	"1-2-06",
	"2006-1-2",
	"2/1/2006",
	"2-1-2006",
}

var clockLayouts = []string{
	"15:04",
	"15:04:05",
	"3:04 PM",
	"3:04:05 PM",
	"3:04PM",
}

// pivotYear is the first year accepted as-is; earlier years move forward a century.
const pivotYear = 1950

// ParseDate parses s with the first matching layout from DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	return parseWithLayouts(s, DateLayouts)
}

// ParseInvoiceDate is ParseDate with day-first layouts tried last, so
// "25/12/2026" still parses.
func ParseInvoiceDate(s string) (time.Time, bool) {
	return parseWithLayouts(s, invoiceDateLayouts)
}

// ParseDateTime parses a delivery date with an optional time of day. An
// unparseable clock leaves the date at midnight.
func ParseDateTime(date, clock string) (time.Time, bool) {
	t, ok := parseWithLayouts(date, deliveryDateLayouts)
	if !ok {
		return time.Time{}, false
	}
	clock = strings.ToUpper(strings.TrimSpace(clock))
	if clock == "" {
		return t, true
	}
	for _, layout := range clockLayouts {
		c, err := time.Parse(layout, clock)
		if err != nil {
			continue
		}
		return time.Date(t.Year(), t.Month(), t.Day(), c.Hour(), c.Minute(), c.Second(), 0, time.UTC), true
	}
	return t, true
}

func parseWithLayouts(s string, layouts []string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Year() < pivotYear {
			t = t.AddDate(100, 0, 0)
		}
		return t.UTC(), true
	}
	return time.Time{}, false
}

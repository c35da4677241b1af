package validator

import "time"

// FutureOnly accepts dates strictly after now().
func FutureOnly(now func() time.Time) func(time.Time) bool {
	return func(t time.Time) bool {
		return t.After(now())
	}
}

// ReasonableInvoiceDate accepts dates from a year before now() to six months
// after it.
func ReasonableInvoiceDate(now func() time.Time) func(time.Time) bool {
	return func(t time.Time) bool {
		n := now()
		return !t.Before(n.AddDate(0, 0, -365)) && !t.After(n.AddDate(0, 0, 180))
	}
}

package validator

import (
	"regexp"

	"freightdocs/internal/normalize"
)

var (
	invoiceNumberShape = regexp.MustCompile(`(?i)^[A-Z0-9\-_]+$`)
	partyNameJunk      = regexp.MustCompile(`[^\w\s&.,'-]`)
	addressJunk        = regexp.MustCompile(`[^\w\s,.'-]`)
)

// InvoiceNumberValid accepts identifiers of three or more letters, digits,
// dashes and underscores.
func InvoiceNumberValid(s string) bool {
	return len(s) >= 3 && invoiceNumberShape.MatchString(s)
}

// CleanPartyName normalizes a vendor or customer name captured from an invoice.
func CleanPartyName(s string) string {
	s = normalize.CollapseSpace(s)
	s = partyNameJunk.ReplaceAllString(s, "")
	return normalize.TitleCase(s)
}

// CleanInvoiceAddress collapses whitespace and drops characters that never
// appear in a postal address.
func CleanInvoiceAddress(s string) string {
	s = normalize.CollapseSpace(s)
	return addressJunk.ReplaceAllString(s, "")
}

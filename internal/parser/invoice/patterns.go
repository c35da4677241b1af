package invoice

import (
	"regexp"

	"freightdocs/internal/extract"
)

const (
	datePart     = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`
	moneyCapture = `[:]*\s*\$?\s*([\d,]+\.?\d{0,2})`
	// partyName stays on one line; the label may sit on the line above.
	partyName    = `[:]*\s*\n?\s*([A-Z][A-Za-z \t&.,'-]{2,50})`
	streetSuffix = `(?:Street|St|Avenue|Ave|Road|Rd|Drive|Dr|Boulevard|Blvd|Lane|Ln|Way|Place|Pl)`
)

var numberPatterns = []extract.Pattern{
	extract.P(`(?:INVOICE|Invoice)\s*(?:#|Number|No\.?)[:]*\s*([A-Z0-9\-_]{3,20})`),
	extract.P(`INV[#:]?\s*([A-Z0-9\-_]{3,20})`),
	extract.P(`Invoice\s+([A-Z0-9\-_]{3,20})`),
	extract.P(`(?:BILL|Bill)\s*(?:#|Number|No\.?)[:]*\s*([A-Z0-9\-_]{3,20})`),
}

var invoiceDateLabel = extract.P(`(?:Invoice\s+Date|Date|Billing\s+Date|Issue\s+Date)[:]*\s*(` + datePart + `)`)

var dueDateLabel = extract.P(`(?:Due\s+Date|Payment\s+Due|Due)[:]*\s*(` + datePart + `)`)

// fallbackDatePatterns are tried when the labelled invoice date is absent or
// unreadable; their dates must also fall in the plausible invoice window.
var fallbackDatePatterns = []extract.Pattern{
	invoiceDateLabel,
	dueDateLabel,
	extract.P(`(?:Date|Due)[:]*\s*(\d{4}-\d{1,2}-\d{1,2})`),
}

var vendorPatterns = []extract.Pattern{
	extract.P(`(?:Bill\s+To|Vendor|From|Shipper|Carrier)` + partyName),
	extract.P(`([A-Z][A-Za-z \t&.,'-]*(?:LLC|Inc|Corp|Co|Company|Industries|Logistics|Transportation|Freight))`),
}

var customerPatterns = []extract.Pattern{
	extract.P(`(?:Ship\s+To|Customer|Consignee|Deliver\s+To)` + partyName),
}

var (
	vendorAddressLabels   = []string{"Bill To", "Vendor", "From", "Shipper", "Carrier"}
	customerAddressLabels = []string{"Ship To", "Customer", "Consignee", "Deliver To"}
)

// addressPatterns builds one pattern per label: the label, a name that may
// wrap, then a street line ending in city, state and ZIP.
func addressPatterns(labels []string) []extract.Pattern {
	out := make([]extract.Pattern, len(labels))
	for i, l := range labels {
		out[i] = extract.P(regexp.QuoteMeta(l) +
			`[:]*\s*\n?\s*[A-Za-z\s&.,'-]+\n?\s*` +
			`([0-9]+\s+[A-Za-z\s]+` + streetSuffix + `[^0-9]*?[A-Za-z\s]+,\s*[A-Z]{2}\s+\d{5}(?:-\d{4})?)`)
	}
	return out
}

// Grades fall by 0.1 per tier.
var totalPatterns = []extract.Pattern{
	extract.P(`(?:Grand\s+Total|Invoice\s+Total|Total\s+Amount|Final\s+Total)` + moneyCapture),
	extract.P(`\b(?:Total|Amount\s+Due|Balance)` + moneyCapture),
}

var subtotalPatterns = []extract.Pattern{
	extract.P(`(?:Subtotal|Sub\s+Total)` + moneyCapture),
}

var taxPatterns = []extract.Pattern{
	extract.P(`(?:Tax|Sales\s+Tax|VAT)` + moneyCapture),
}

var termsPatterns = []extract.Pattern{
	extract.P(`(?:Terms|Payment\s+Terms|Net\s+Terms)[:]*\s*([A-Za-z0-9 \t]{3,20})`),
	extract.P(`\b(Net\s+\d+|COD|Cash\s+on\s+Delivery|Due\s+on\s+Receipt|Prepaid)\b`),
}

var referencePatterns = []extract.Pattern{
	extract.P(`\b(?:BOL|B/L|Bill\s+of\s+Lading)\b(?:\s*(?:#|No\.?|Number))?[:]*\s*([A-Z0-9\-_]{3,20})`),
	extract.P(`\b(?:PRO|Pro\s+Number)\b(?:\s*(?:#|No\.?))?[:]*\s*([A-Z0-9\-_]{3,20})`),
}

// Line item patterns capture the description in group 1 and the amount in
// group 2, both on the same line.
var lineItemPatterns = []extract.Pattern{
	extract.P(`([A-Za-z \t\-]+(?:Freight|Charge|Fee|Surcharge|Accessorial)[A-Za-z \t\-]*)[ \t]+.*?\$?[ \t]*([\d,]+\.?\d{0,2})`),
	extract.P(`(Fuel\s+Surcharge|FSC).*?\$?[ \t]*([\d,]+\.?\d{0,2})`),
	extract.P(`(Detention|Delay|Wait\s+Time).*?\$?[ \t]*([\d,]+\.?\d{0,2})`),
	extract.P(`(Lumper|Loading|Unloading).*?\$?[ \t]*([\d,]+\.?\d{0,2})`),
}

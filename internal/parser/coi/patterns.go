package coi

import (
	"freightdocs/internal/extract"
)

const (
	datePart    = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`
	dateCapture = `(` + datePart + `)`
	// amountTail captures a dollar figure and an optional magnitude word
	// that must stand on its own, so "Medical" on the next line is ignored.
	amountTail = `[:]*\s*\$?([0-9,]+(?:\.[0-9]{1,2})?)(?:[ \t]*(?:Million|Thousand|M|K)\b)?`
)

var policyPatterns = []extract.Pattern{
	extract.P(`(?:Policy|POL)(?:\s+(?:Number|No|#))[:]*\s*([A-Z0-9-]{4,20})`),
	extract.P(`(?:Certificate|Cert)(?:\s+(?:No|Number))[:]*\s+([A-Z0-9-]{6,20})`),
	extract.P(`\b([A-Z]{2,4}[-]?[0-9A-Z]{3,}(?:[-][0-9A-Z]{3,})*)\b`),
	extract.P(`POLICY[:]*\s*([A-Z0-9-]{6,20})(?:\s|$)`),
	extract.Exact(`\b([0-9]{8,15})\b`),
	extract.P(`Policy[:]\s*([A-Z0-9-]{4,20})(?:\s|$)`),
}

var companyPatterns = []extract.Pattern{
	extract.P(`(?:Insurer|Insurance Company|Carrier)[:]*\s*([A-Z][A-Za-z\s&]{3,40})`),
	extract.P(`\b(State Farm|Allstate|Progressive|GEICO|Farmers|Liberty Mutual|Nationwide|USAA|Travelers|American Family|MetLife|AIG|CNA|Zurich|Hartford|Chubb)\b`),
	extract.P(`(?:Issued by|Underwritten by)[:]*\s*([A-Z][A-Za-z\s&]{3,40})`),
	extract.P(`\b([A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*\s+Insurance\s+Company)\b`),
	extract.P(`\b([A-Z][A-Za-z]*(?:\s+[A-Z][A-Za-z]*)*)\s+Insurance(?:\s+Company)?\b`),
	extract.P(`\b([A-Z][A-Za-z\s&]{10,50}(?:Insurance|Company))\b`),
}

var generalLiabilityPatterns = []extract.Pattern{
	extract.P(`(?:General Liability|GL|General Agg|Aggregate)` + amountTail),
	extract.P(`(?:Each Occurrence|Per Occurrence|Occurrence Limit)` + amountTail),
	extract.P(`(?:Bodily Injury|Property Damage|BI/PD)` + amountTail),
	extract.P(`(?:Coverage|Limit)` + amountTail),
}

var autoLiabilityPatterns = []extract.Pattern{
	extract.P(`(?:Auto Liability|AL|Commercial Auto|Vehicle)` + amountTail),
	extract.P(`(?:Combined Single Limit|CSL|Single Limit)` + amountTail),
	extract.P(`(?:Liability Limit|Liability Coverage)` + amountTail),
}

var effectiveDatePatterns = []extract.Pattern{
	extract.P(`(?:Effective|Eff)(?:\s+Date)?[:]*\s*` + dateCapture),
	extract.P(`(?:Policy Period|Coverage Period)[:]*\s*` + dateCapture),
	extract.P(`From[:]*\s*` + dateCapture),
}

var expirationDatePatterns = []extract.Pattern{
	extract.P(`(?:Expires|Expiration|Exp)(?:\s+Date)?[:]*\s*` + dateCapture),
	extract.P(`(?:Policy Period|Coverage Period)[:]*\s*` + datePart + `\s+(?:to|through|-)\s*` + dateCapture),
	extract.P(`To[:]*\s*` + dateCapture),
	extract.P(`(?:Valid Until|Until)[:]*\s*` + dateCapture),
}

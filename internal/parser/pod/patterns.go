package pod

import (
	"freightdocs/internal/extract"
)

const (
	datePart    = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`
	isoDatePart = `\d{4}[/-]\d{1,2}[/-]\d{1,2}`
	honorific   = `(?:mr\.?|ms\.?|mrs\.?|dr\.?)?`
	personName  = `([A-Za-z][A-Za-z\s]{2,30})`
)

var confirmationPatterns = []extract.Pattern{
	extract.P(`delivery\s+confirmed?`).WithGroup(0),
	extract.P(`delivered\s+successfully`).WithGroup(0),
	extract.P(`package\s+delivered`).WithGroup(0),
	extract.P(`shipment\s+delivered`).WithGroup(0),
	extract.P(`freight\s+delivered`).WithGroup(0),
	extract.P(`cargo\s+delivered`).WithGroup(0),
	extract.P(`goods\s+delivered`).WithGroup(0),
	extract.P(`delivery\s+complete[d]?`).WithGroup(0),
	extract.P(`received\s+in\s+good\s+condition`).WithGroup(0),
	extract.P(`delivery\s+accepted`).WithGroup(0),
	extract.P(`status[:\s]*delivered`).WithGroup(0),
	extract.P(`proof\s+of\s+delivery`).WithGroup(0),
	extract.P(`pod\s+confirmation`).WithGroup(0),
}

// documentIndicators mark a text as a delivery receipt even when no
// confirmation phrase is present. Matched as lower-case substrings.
var documentIndicators = []string{
	"proof of delivery",
	"pod",
	"delivery receipt",
	"delivery confirmation",
	"consignee receipt",
	"freight receipt",
	"delivery note",
	"shipment receipt",
}

// Patterns with a capture group contribute the captured text; the others
// contribute the whole match.
var signaturePatterns = []extract.Pattern{
	extract.P(`signature[:\s]*([A-Za-z\s]+)`),
	extract.P(`signed\s+by[:\s]*([A-Za-z\s]+)`),
	extract.P(`received\s+by[:\s]*([A-Za-z\s]+)`),
	extract.P(`accepted\s+by[:\s]*([A-Za-z\s]+)`),
	extract.P(`electronically\s+signed`).WithGroup(0),
	extract.P(`digital\s+signature`).WithGroup(0),
	extract.P(`signature\s+on\s+file`).WithGroup(0),
	extract.P(`signed\s+digitally`).WithGroup(0),
	extract.P(`[*]{2,}.*signature.*[*]{2,}`).WithGroup(0),
	extract.P(`___+.*signature.*___+`).WithGroup(0),
}

var signatureKeywords = []string{
	"signature",
	"signed",
	"electronic signature",
	"digital signature",
	"signature on file",
	"signed by",
	"received by",
	"accepted by",
}

var receiverPatterns = []extract.Pattern{
	extract.P(`(?:received|delivered|signed)\s+(?:to|by)[:\s]*` + honorific + `\s*` + personName),
	extract.P(`consignee[:\s]*(?:mr\.?|ms\.?|mrs\.?)?\s*` + personName),
	extract.P(`recipient[:\s]*(?:mr\.?|ms\.?|mrs\.?)?\s*` + personName),
	extract.P(`customer[:\s]*(?:mr\.?|ms\.?|mrs\.?)?\s*` + personName),
	extract.P(`name[:\s]*` + personName),
	extract.P(`contact[:\s]*` + personName),
	extract.P(`signature[:\s]*[_\-]*\s*` + personName),
}

// receiverStopWords disqualify a receiver candidate containing any of them.
var receiverStopWords = []string{
	"date", "time", "signature", "line", "print", "page", "delivery",
	"package", "condition", "satisfied", "front door", "good", "excellent",
	"poor", "damaged", "notes", "comments", "remarks",
}

// Patterns with a time of day carry it in group 2. The twelve-hour form is
// tried before the twenty-four-hour one so an AM/PM suffix is never dropped.
var deliveryDatePatterns = []extract.Pattern{
	extract.P(`(?:delivered|delivery|received)\s+(?:on|at)?[:\s]*(` + datePart + `)`),
	extract.P(`(?:delivered|delivery|received)\s+(?:on|at)?[:\s]*(` + isoDatePart + `)`),
	extract.P(`delivery\s+date[:\s]*(` + datePart + `)`),
	extract.P(`delivery\s+date[:\s]*(` + isoDatePart + `)`),
	extract.P(`delivered[:\s]*(` + datePart + `)`),
	extract.P(`delivered[:\s]*(` + isoDatePart + `)`),
	extract.P(`(?:delivered|delivery|received)[:\s]*(` + datePart + `)\s+(\d{1,2}:\d{2}\s*[ap]m)`),
	extract.P(`(?:delivered|delivery|received)[:\s]*(` + datePart + `)\s+(?:at\s+)?(\d{1,2}:\d{2})`),
	extract.P(`(` + datePart + `)`),
	extract.P(`(` + isoDatePart + `)`),
}

var notePatterns = []extract.Pattern{
	extract.P(`(?:delivery\s+)?notes?\b[:\s]*([^\n\r]{10,200})`),
	extract.P(`(?:special\s+)?instructions?\b[:\s]*([^\n\r]{10,200})`),
	extract.P(`comments?\b[:\s]*([^\n\r]{10,200})`),
	extract.P(`remarks?\b[:\s]*([^\n\r]{10,200})`),
	extract.P(`observations?\b[:\s]*([^\n\r]{5,100})`),
	extract.P(`condition[:\s]*([^\n\r]{5,100})`),
	extract.P(`((?:good|poor|damaged|excellent)\s+condition)`),
	extract.P(`(damage[sd]?[:\s]*[^\n\r]{5,100})`),
	extract.P(`(exception[:\s]*[^\n\r]{5,100})`),
}

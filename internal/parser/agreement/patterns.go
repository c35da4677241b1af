package agreement

import (
	"freightdocs/internal/extract"
)

const dateCapture = `(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`

// Signature indicator types, in pattern order.
const (
	SigDigital             = "digital_signature"
	SigDriverLine          = "signature_line_driver"
	SigLine                = "signature_line"
	SigSignedBy            = "signed_by"
	SigMarks               = "signature_marks"
	SigSignedDate          = "signed_date"
	SigSignedOn            = "signed_on"
	SigElectronicAgreement = "electronic_agreement"
)

type signaturePattern struct {
	kind    string
	pattern extract.Pattern
	// presenceOnly patterns count once without collecting their matches.
	presenceOnly bool
}

// Digits inside words tolerate OCR confusing i/1 and e/3.
var signaturePatterns = []signaturePattern{
	{kind: SigDigital, pattern: extract.P(`(?:Digitally|D[0-9]g[0-9]tally|Electronic(?:ally)?)\s+(?:Signed|S[0-9]gn[e3]d)\s+(?:by|BY)[:]*\s*([A-Za-z0-9\s\.]+)`)},
	{kind: SigDriverLine, pattern: extract.P(`(?:Driver|Dr[0-9]v[e3]r)\s+(?:Signature|S[0-9]gnatur[e3])[:](?:\s*([A-Za-z0-9_\s\.]*)|$)`)},
	{kind: SigLine, pattern: extract.P(`(?:Signature|S[0-9]gnatur[e3])[:](?:\s*([A-Za-z0-9_\s\.]*)|$)`)},
	{kind: SigSignedBy, pattern: extract.P(`(?:Signed|S[0-9]gn[e3]d)\s+(?:by|BY)[:]*\s*([A-Za-z0-9_\s\.]+)`)},
	{kind: SigMarks, pattern: extract.P(`X{2,}[_\-\s]*|X[_\-]{3,}|[_\-]{4,}`).WithGroup(0), presenceOnly: true},
	{kind: SigSignedDate, pattern: extract.P(`(?:Date|Dat[e3])\s+(?:Signed|S[0-9]gn[e3]d)[:]*\s*` + dateCapture)},
	{kind: SigSignedOn, pattern: extract.P(`(?:Signed|S[0-9]gn[e3]d)\s+(?:on|ON)[:]*\s*` + dateCapture)},
	{kind: SigElectronicAgreement, pattern: extract.P(`(?:I\s+agree|I\s+accept|I\s+acknowledge).*(?:terms|agreement|contract|conditions|responsibility)`).WithGroup(0)},
}

var agreementTypePatterns = []extract.Pattern{
	extract.P(`(?:Driver|Dr[0-9]v[e3]r|Independent\s+Contractor|Carrier)\s+(?:Agreement|Agr[e3][e3]m[e3]nt)`).WithGroup(0),
	extract.P(`Transportation\s+Agreement`).WithGroup(0),
	extract.P(`Freight\s+Broker\s+Agreement`).WithGroup(0),
	extract.P(`Freight\s+Agreement`).WithGroup(0),
	extract.P(`Load\s+Agreement`).WithGroup(0),
	extract.P(`(?m)(?:^|\n)\s*Terms\s+(?:and\s+Conditions|of\s+Service)`).WithGroup(0),
	extract.P(`(?:Employment|Service)\s+Contract`).WithGroup(0),
	extract.P(`Non[\s-]?Disclosure\s+Agreement|\bNDA\b`).WithGroup(0),
}

var keyTermPatterns = []extract.Pattern{
	extract.P(`(?:liability|insurance|coverage).*(?:amount|limit)[:]*\s*\$?[0-9,]+(?:\.[0-9]{2})?`).WithGroup(0),
	extract.P(`(?:payment|compensation|rate).*(?:per|@).*(?:mile|load|hour)`).WithGroup(0),
	extract.P(`(?:equipment|vehicle|truck).*(?:requirement|specification)`).WithGroup(0),
	extract.P(`(?:termination|cancel|terminate).*(?:notice|days|immediately)`).WithGroup(0),
	extract.P(`(?:compliance|regulation|DOT|FMCSA).*(?:requirement|standard)`).WithGroup(0),
}

var signingDatePatterns = []extract.Pattern{
	extract.P(`(?:Date\s+Signed|Signed\s+on|Signature\s+Date)[:]*\s*` + dateCapture),
	extract.P(`(?:Date)[:]*\s*` + dateCapture),
	extract.P(`(?:Agreed\s+on|Agreement\s+Date)[:]*\s*` + dateCapture),
}

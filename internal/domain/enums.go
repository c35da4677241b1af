package domain

import "strings"

// DocumentType identifies which parser handles a document.
type DocumentType string

const (
	DocumentTypeCDL       DocumentType = "CDL"
	DocumentTypeCOI       DocumentType = "COI"
	DocumentTypeAgreement DocumentType = "AGREEMENT"
	DocumentTypeRateCon   DocumentType = "RATE_CON"
	DocumentTypePOD       DocumentType = "POD"
	DocumentTypeInvoice   DocumentType = "INVOICE"
)

// AllDocumentTypes lists every supported document type in dispatch order.
var AllDocumentTypes = []DocumentType{
	DocumentTypeCDL,
	DocumentTypeCOI,
	DocumentTypeAgreement,
	DocumentTypeRateCon,
	DocumentTypePOD,
	DocumentTypeInvoice,
}

// documentTypeAliases maps lowercase spellings accepted on input to a DocumentType.
var documentTypeAliases = map[string]DocumentType{
	"cdl":               DocumentTypeCDL,
	"license":           DocumentTypeCDL,
	"coi":               DocumentTypeCOI,
	"insurance":         DocumentTypeCOI,
	"agreement":         DocumentTypeAgreement,
	"rate_con":          DocumentTypeRateCon,
	"ratecon":           DocumentTypeRateCon,
	"rate_confirmation": DocumentTypeRateCon,
	"pod":               DocumentTypePOD,
	"proof_of_delivery": DocumentTypePOD,
	"invoice":           DocumentTypeInvoice,
}

// ParseDocumentType resolves a case-insensitive document type tag.
func ParseDocumentType(s string) (DocumentType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.ReplaceAll(key, "-", "_")
	if dt, ok := documentTypeAliases[key]; ok {
		return dt, nil
	}
	return "", UnknownDocumentType(s)
}

// FieldStatus is the derived per-field state reported alongside a result.
type FieldStatus string

const (
	FieldStatusFound   FieldStatus = "found"
	FieldStatusMissing FieldStatus = "missing"
	FieldStatusUnsure  FieldStatus = "unsure"
)

// ReportFormat selects the batch report encoding.
type ReportFormat string

const (
	ReportFormatCSV  ReportFormat = "csv"
	ReportFormatXLSX ReportFormat = "xlsx"
)

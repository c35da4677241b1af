package domain

import (
	"time"

	"github.com/google/uuid"
)

// FieldMatch records which ordered pattern produced a field and the text it
// matched. Pattern is nil when no pattern produced an accepted value.
// Confidence is set only by parsers that grade fields individually.
type FieldMatch struct {
	Pattern    *int    `json:"pattern" yaml:"pattern"`
	Raw        string  `json:"raw,omitempty" yaml:"raw,omitempty"`
	Confidence float64 `json:"confidence,omitempty" yaml:"confidence,omitempty"`
}

// Found reports whether a pattern produced the field.
func (m FieldMatch) Found() bool {
	return m.Pattern != nil
}

// ExtractionDetails is the audit side-channel of a parse. Field entries hold a
// FieldMatch; diagnostic entries hold plain values.
type ExtractionDetails map[string]any

// DetailError is the key carrying a parse-level diagnostic.
const DetailError = "error"

// NoTextMarker is the diagnostic recorded when a document carries no text.
const NoTextMarker = "No text found in OCR result"

// Match returns the FieldMatch recorded under field.
func (d ExtractionDetails) Match(field string) (FieldMatch, bool) {
	m, ok := d[field].(FieldMatch)
	return m, ok
}

// Fields returns the names of all FieldMatch entries.
func (d ExtractionDetails) Fields() []string {
	var out []string
	for k, v := range d {
		if _, ok := v.(FieldMatch); ok {
			out = append(out, k)
		}
	}
	return out
}

// Record is the typed output of a document parser.
type Record interface {
	DocumentType() DocumentType
	Summary() RecordSummary
}

// RecordSummary is the type-independent projection of a record used by reports.
type RecordSummary struct {
	Identifier  string
	Party       string
	AmountCents *int64
	Date        *time.Time
}

// ParsingResult is produced once per parse call and never stored by the engine.
type ParsingResult struct {
	Type       DocumentType      `json:"document_type" yaml:"document_type"`
	Record     Record            `json:"data" yaml:"data"`
	Confidence float64           `json:"confidence" yaml:"confidence"`
	Verified   bool              `json:"verified" yaml:"verified"`
	Details    ExtractionDetails `json:"extraction_details" yaml:"extraction_details"`
}

// OCRPage is one page of provider output.
type OCRPage struct {
	Number int    `json:"page_number,omitempty" yaml:"page_number,omitempty"`
	Text   string `json:"text" yaml:"text"`
}

// OCRResult is the OCR-provider result shape accepted by the engine.
type OCRResult struct {
	FullText string    `json:"full_text" yaml:"full_text"`
	Pages    []OCRPage `json:"pages,omitempty" yaml:"pages,omitempty"`
}

// InsuranceRecord is a parsed certificate of insurance.
type InsuranceRecord struct {
	PolicyNumber          *string    `json:"policy_number" yaml:"policy_number"`
	InsuranceCompany      *string    `json:"insurance_company" yaml:"insurance_company"`
	GeneralLiabilityCents *int64     `json:"general_liability_amount" yaml:"general_liability_amount"`
	AutoLiabilityCents    *int64     `json:"auto_liability_amount" yaml:"auto_liability_amount"`
	EffectiveDate         *time.Time `json:"effective_date" yaml:"effective_date"`
	ExpirationDate        *time.Time `json:"expiration_date" yaml:"expiration_date"`
}

func (*InsuranceRecord) DocumentType() DocumentType { return DocumentTypeCOI }

func (r *InsuranceRecord) Summary() RecordSummary {
	s := RecordSummary{
		Identifier: deref(r.PolicyNumber),
		Party:      deref(r.InsuranceCompany),
		Date:       r.ExpirationDate,
	}
	s.AmountCents = r.GeneralLiabilityCents
	if s.AmountCents == nil {
		s.AmountCents = r.AutoLiabilityCents
	}
	return s
}

// LicenseRecord is a parsed commercial driver's license.
type LicenseRecord struct {
	DriverName     *string    `json:"driver_name" yaml:"driver_name"`
	LicenseNumber  *string    `json:"license_number" yaml:"license_number"`
	ExpirationDate *time.Time `json:"expiration_date" yaml:"expiration_date"`
	LicenseClass   *string    `json:"license_class" yaml:"license_class"`
	Address        *string    `json:"address" yaml:"address"`
	State          *string    `json:"state" yaml:"state"`
}

func (*LicenseRecord) DocumentType() DocumentType { return DocumentTypeCDL }

func (r *LicenseRecord) Summary() RecordSummary {
	return RecordSummary{
		Identifier: deref(r.LicenseNumber),
		Party:      deref(r.DriverName),
		Date:       r.ExpirationDate,
	}
}

// AgreementRecord is a parsed driver or carrier agreement.
type AgreementRecord struct {
	SignatureDetected   bool       `json:"signature_detected" yaml:"signature_detected"`
	SignatureIndicators int        `json:"signature_indicators" yaml:"signature_indicators"`
	AgreementType       *string    `json:"agreement_type" yaml:"agreement_type"`
	SigningDate         *time.Time `json:"signing_date" yaml:"signing_date"`
	KeyTerms            []string   `json:"key_terms" yaml:"key_terms"`
}

func (*AgreementRecord) DocumentType() DocumentType { return DocumentTypeAgreement }

func (r *AgreementRecord) Summary() RecordSummary {
	return RecordSummary{
		Identifier: deref(r.AgreementType),
		Date:       r.SigningDate,
	}
}

// RateConRecord is a parsed rate confirmation.
type RateConRecord struct {
	RateCents    *int64     `json:"rate_amount" yaml:"rate_amount"`
	Origin       *string    `json:"origin" yaml:"origin"`
	Destination  *string    `json:"destination" yaml:"destination"`
	PickupDate   *time.Time `json:"pickup_date" yaml:"pickup_date"`
	DeliveryDate *time.Time `json:"delivery_date" yaml:"delivery_date"`
	WeightLbs    *float64   `json:"weight" yaml:"weight"`
	Commodity    *string    `json:"commodity" yaml:"commodity"`
}

func (*RateConRecord) DocumentType() DocumentType { return DocumentTypeRateCon }

func (r *RateConRecord) Summary() RecordSummary {
	route := ""
	if r.Origin != nil || r.Destination != nil {
		route = deref(r.Origin) + " -> " + deref(r.Destination)
	}
	return RecordSummary{
		Identifier:  route,
		AmountCents: r.RateCents,
		Date:        r.PickupDate,
	}
}

// PODRecord is a parsed proof of delivery.
type PODRecord struct {
	DeliveryConfirmed bool       `json:"delivery_confirmed" yaml:"delivery_confirmed"`
	SignaturePresent  bool       `json:"signature_present" yaml:"signature_present"`
	ReceiverName      *string    `json:"receiver_name" yaml:"receiver_name"`
	DeliveryDate      *time.Time `json:"delivery_date" yaml:"delivery_date"`
	DeliveryNotes     *string    `json:"delivery_notes" yaml:"delivery_notes"`
}

func (*PODRecord) DocumentType() DocumentType { return DocumentTypePOD }

func (r *PODRecord) Summary() RecordSummary {
	return RecordSummary{
		Party: deref(r.ReceiverName),
		Date:  r.DeliveryDate,
	}
}

// LineItem is one charge on an invoice.
type LineItem struct {
	Description string `json:"description" yaml:"description"`
	AmountCents int64  `json:"total" yaml:"total"`
	RawAmount   string `json:"raw_amount" yaml:"raw_amount"`
}

// InvoiceRecord is a parsed freight invoice.
type InvoiceRecord struct {
	InvoiceNumber   *string    `json:"invoice_number" yaml:"invoice_number"`
	InvoiceDate     *time.Time `json:"invoice_date" yaml:"invoice_date"`
	DueDate         *time.Time `json:"due_date" yaml:"due_date"`
	VendorName      *string    `json:"vendor_name" yaml:"vendor_name"`
	VendorAddress   *string    `json:"vendor_address" yaml:"vendor_address"`
	CustomerName    *string    `json:"customer_name" yaml:"customer_name"`
	CustomerAddress *string    `json:"customer_address" yaml:"customer_address"`
	SubtotalCents   *int64     `json:"subtotal" yaml:"subtotal"`
	TaxCents        *int64     `json:"tax_amount" yaml:"tax_amount"`
	TotalCents      *int64     `json:"total_amount" yaml:"total_amount"`
	PaymentTerms    *string    `json:"payment_terms" yaml:"payment_terms"`
	Reference       *string    `json:"reference" yaml:"reference"`
	LineItems       []LineItem `json:"line_items" yaml:"line_items"`
}

func (*InvoiceRecord) DocumentType() DocumentType { return DocumentTypeInvoice }

func (r *InvoiceRecord) Summary() RecordSummary {
	return RecordSummary{
		Identifier:  deref(r.InvoiceNumber),
		Party:       deref(r.VendorName),
		AmountCents: r.TotalCents,
		Date:        r.InvoiceDate,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// BatchItem is the outcome of one document in a batch run.
type BatchItem struct {
	ID       uuid.UUID      `json:"id" yaml:"id"`
	Source   string         `json:"source" yaml:"source"`
	Type     DocumentType   `json:"document_type" yaml:"document_type"`
	Result   *ParsingResult `json:"result,omitempty" yaml:"result,omitempty"`
	Error    string         `json:"error,omitempty" yaml:"error,omitempty"`
	Duration time.Duration  `json:"duration" yaml:"duration"`
}

// Failed reports whether the document could not be parsed at all.
func (b BatchItem) Failed() bool {
	return b.Error != ""
}

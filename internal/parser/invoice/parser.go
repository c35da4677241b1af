// Package invoice parses freight carrier invoices. Unlike the other parsers
// it grades every field on its own and scores the document from those grades.
package invoice

import (
	"log/slog"
	"strings"
	"time"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
	"freightdocs/internal/normalize"
	"freightdocs/internal/parser"
	"freightdocs/internal/scoring"
	"freightdocs/internal/validator"
	"freightdocs/internal/verify"
)

const (
	FieldNumber          = "invoice_number"
	FieldInvoiceDate     = "invoice_date"
	FieldDueDate         = "due_date"
	FieldVendorName      = "vendor_name"
	FieldVendorAddress   = "vendor_address"
	FieldCustomerName    = "customer_name"
	FieldCustomerAddress = "customer_address"
	FieldSubtotal        = "subtotal"
	FieldTax             = "tax_amount"
	FieldTotal           = "total_amount"
	FieldPaymentTerms    = "payment_terms"
	FieldReference       = "reference"
	FieldLineItems       = "line_items"

	// DetailLineItemCount holds the number of distinct line items.
	DetailLineItemCount = "line_items_count"
)

const (
	DefaultVerifiedThreshold = 0.65

	multiLineBonus = 0.05
)

// Per-field extraction grades.
const (
	gradeNumber       = 0.9
	gradeLabelledDate = 0.85
	gradeFallbackDate = 0.7
	gradeParty        = 0.8
	gradeAddress      = 0.75
	gradeTopTotal     = 0.9
	gradeTotalStep    = 0.1
	gradeAmount       = 0.8
	gradeTerms        = 0.8
	gradeReference    = 0.8
	gradeLineItems    = 0.7
)

// Options configures a Parser.
type Options struct {
	parser.Options
	// VerifiedThreshold is the confidence an invoice with a number and a
	// total needs to verify.
	VerifiedThreshold float64
}

// Parser extracts an InvoiceRecord from invoice text.
type Parser struct {
	log *slog.Logger

	number          extract.Field[string]
	invoiceDate     extract.Field[time.Time]
	fallbackDate    extract.Field[time.Time]
	dueDate         extract.Field[time.Time]
	vendorName      extract.Field[string]
	customerName    extract.Field[string]
	vendorAddress   extract.Field[string]
	customerAddress extract.Field[string]
	total           extract.Field[int64]
	subtotal        extract.Field[int64]
	tax             extract.Field[int64]
	terms           extract.Field[string]
	reference       extract.Field[string]

	model  scoring.Model
	verify verify.Rule[subject]
}

type subject struct {
	rec        *domain.InvoiceRecord
	confidence float64
}

// New creates an invoice parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	threshold := opts.VerifiedThreshold
	if threshold == 0 {
		threshold = DefaultVerifiedThreshold
	}

	party := extract.Cleaned(validator.CleanPartyName, 2)
	address := func(m extract.Match) (string, bool) {
		v := validator.CleanInvoiceAddress(m.Value)
		return v, v != ""
	}
	invoiceDate := func(accept func(time.Time) bool) extract.Converter[time.Time] {
		return func(m extract.Match) (time.Time, bool) {
			t, ok := normalize.ParseInvoiceDate(m.Value)
			if !ok || (accept != nil && !accept(t)) {
				return time.Time{}, false
			}
			return t, true
		}
	}

	p := &Parser{log: base.Logger.With("document_type", domain.DocumentTypeInvoice)}
	p.number = extract.Field[string]{Name: FieldNumber, Patterns: numberPatterns, Convert: extract.Text(validator.InvoiceNumberValid)}
	p.invoiceDate = extract.Field[time.Time]{Name: FieldInvoiceDate, Patterns: []extract.Pattern{invoiceDateLabel}, Convert: invoiceDate(nil)}
	p.fallbackDate = extract.Field[time.Time]{
		Name:     FieldInvoiceDate,
		Patterns: fallbackDatePatterns,
		Convert:  invoiceDate(validator.ReasonableInvoiceDate(base.Now)),
	}
	p.dueDate = extract.Field[time.Time]{Name: FieldDueDate, Patterns: []extract.Pattern{dueDateLabel}, Convert: invoiceDate(nil)}
	p.vendorName = extract.Field[string]{Name: FieldVendorName, Patterns: vendorPatterns, Convert: party}
	p.customerName = extract.Field[string]{Name: FieldCustomerName, Patterns: customerPatterns, Convert: party}
	p.vendorAddress = extract.Field[string]{Name: FieldVendorAddress, Patterns: addressPatterns(vendorAddressLabels), Convert: address}
	p.customerAddress = extract.Field[string]{Name: FieldCustomerAddress, Patterns: addressPatterns(customerAddressLabels), Convert: address}
	p.total = extract.Field[int64]{Name: FieldTotal, Patterns: totalPatterns, Convert: cents(1)}
	p.subtotal = extract.Field[int64]{Name: FieldSubtotal, Patterns: subtotalPatterns, Convert: cents(1)}
	p.tax = extract.Field[int64]{Name: FieldTax, Patterns: taxPatterns, Convert: cents(0)}
	p.terms = extract.Field[string]{
		Name:     FieldPaymentTerms,
		Patterns: termsPatterns,
		Convert:  extract.Text(func(s string) bool { return len(s) > 2 }),
	}
	p.reference = extract.Field[string]{Name: FieldReference, Patterns: referencePatterns, Convert: extract.Upper(referenceValid)}

	p.model = scoring.Model{
		Weights: []scoring.Weight{
			{Field: FieldNumber, Value: 0.25},
			{Field: FieldTotal, Value: 0.20},
			{Field: FieldVendorName, Value: 0.15},
			{Field: FieldInvoiceDate, Value: 0.10},
			{Field: FieldCustomerName, Value: 0.10},
			{Field: FieldLineItems, Value: 0.10},
			{Field: FieldSubtotal, Value: 0.05},
			{Field: FieldDueDate, Value: 0.05},
		},
	}
	p.verify = verify.NewRule(
		verify.Check[subject]{Name: "invoice_number", Pass: func(s subject) bool { return s.rec.InvoiceNumber != nil }},
		verify.Check[subject]{Name: "total_amount", Pass: func(s subject) bool { return s.rec.TotalCents != nil }},
		verify.Check[subject]{Name: "verified_threshold", Pass: func(s subject) bool { return s.confidence >= threshold }},
	)
	return p
}

// cents converts a captured amount, accepting values of at least minCents.
func cents(minCents int64) extract.Converter[int64] {
	return func(m extract.Match) (int64, bool) {
		c, ok := normalize.DollarsToCents(m.Value)
		return c, ok && c >= minCents
	}
}

func referenceValid(s string) bool {
	return validator.InvoiceNumberValid(s) && strings.ContainsAny(s, "0123456789")
}

func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypeInvoice }

// Parse extracts the invoice fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.InvoiceRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("invoice.Parser: parsing document", "chars", len(text))

	details := domain.ExtractionDetails{}
	grades := map[string]float64{}
	g := grader{text: text, details: details, grades: grades}

	rec := &domain.InvoiceRecord{
		InvoiceNumber:   graded(g, &p.number, gradeNumber),
		InvoiceDate:     graded(g, &p.invoiceDate, gradeLabelledDate),
		DueDate:         graded(g, &p.dueDate, gradeLabelledDate),
		VendorName:      graded(g, &p.vendorName, gradeParty),
		VendorAddress:   graded(g, &p.vendorAddress, gradeAddress),
		CustomerName:    graded(g, &p.customerName, gradeParty),
		CustomerAddress: graded(g, &p.customerAddress, gradeAddress),
		SubtotalCents:   graded(g, &p.subtotal, gradeAmount),
		TaxCents:        graded(g, &p.tax, gradeAmount),
		PaymentTerms:    graded(g, &p.terms, gradeTerms),
		Reference:       graded(g, &p.reference, gradeReference),
	}
	if rec.InvoiceDate == nil {
		rec.InvoiceDate = graded(g, &p.fallbackDate, gradeFallbackDate)
	}
	rec.TotalCents = p.extractTotal(g)
	rec.LineItems = extractLineItems(g)

	confidence := p.model.Graded(grades)
	if len(rec.LineItems) > 1 {
		confidence += multiLineBonus
	}
	confidence = scoring.Clamp(confidence)

	verified, failed := p.verify.Evaluate(subject{rec: rec, confidence: confidence})
	if !verified {
		p.log.Debug("invoice.Parser: invoice not verified", "failed_check", failed)
	}

	p.log.Info("invoice.Parser: parsing completed",
		"confidence", confidence,
		"verified", verified,
		"invoice_number", rec.InvoiceNumber,
		"total_cents", rec.TotalCents)

	return &domain.ParsingResult{
		Type:       domain.DocumentTypeInvoice,
		Record:     rec,
		Confidence: confidence,
		Verified:   verified,
		Details:    details,
	}
}

// ParseOCRResult parses the text carried by an OCR provider result.
func (p *Parser) ParseOCRResult(r domain.OCRResult) *domain.ParsingResult {
	return p.Parse(parser.TextFromOCR(r))
}

type grader struct {
	text    string
	details domain.ExtractionDetails
	grades  map[string]float64
}

// graded extracts f and, when found, stamps grade on its detail entry and in
// the grade table.
func graded[T any](g grader, f *extract.Field[T], grade float64) *T {
	v := f.ExtractInto(g.text, g.details)
	if v != nil {
		g.setGrade(f.Name, grade)
	}
	return v
}

func (g grader) setGrade(field string, grade float64) {
	if m, ok := g.details.Match(field); ok {
		m.Confidence = grade
		g.details[field] = m
	}
	g.grades[field] = grade
}

// extractTotal grades the total by the tier of the pattern that found it.
func (p *Parser) extractTotal(g grader) *int64 {
	v := p.total.ExtractInto(g.text, g.details)
	if v == nil {
		return nil
	}
	m, _ := g.details.Match(FieldTotal)
	g.setGrade(FieldTotal, gradeTopTotal-float64(*m.Pattern)*gradeTotalStep)
	return v
}

// extractLineItems collects every charge line across all patterns, keeping
// the first occurrence of each description and amount pair.
func extractLineItems(g grader) []domain.LineItem {
	type key struct {
		desc  string
		cents int64
	}
	var (
		items []domain.LineItem
		first extract.Match
		seen  = map[key]bool{}
	)
	for i, pat := range lineItemPatterns {
		for _, m := range pat.All(g.text, i, -1) {
			desc := normalize.CollapseSpace(m.Group(1))
			raw := strings.TrimSpace(m.Group(2))
			c, ok := normalize.DollarsToCents(raw)
			if !ok || c <= 0 || desc == "" {
				continue
			}
			k := key{desc: strings.ToLower(desc), cents: c}
			if seen[k] {
				continue
			}
			seen[k] = true
			if len(items) == 0 {
				first = m
			}
			items = append(items, domain.LineItem{Description: desc, AmountCents: c, RawAmount: raw})
		}
	}
	g.details[DetailLineItemCount] = len(items)
	if len(items) == 0 {
		extract.Miss(g.details, FieldLineItems)
		return nil
	}
	extract.Record(g.details, FieldLineItems, first)
	g.setGrade(FieldLineItems, gradeLineItems)
	return items
}

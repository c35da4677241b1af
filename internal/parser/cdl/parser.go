// Package cdl parses commercial driver's licenses.
package cdl

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
	FieldName           = "name"
	FieldLicenseNumber  = "license_number"
	FieldExpirationDate = "expiration_date"
	FieldLicenseClass   = "license_class"
	FieldAddress        = "address"
	FieldState          = "state"
)

const DefaultMinExpirationDays = 30

// Options configures a Parser.
type Options struct {
	parser.Options
	// MinExpirationDays is how far in the future the expiration date must
	// lie for the license to verify.
	MinExpirationDays int
}

// Parser extracts a LicenseRecord from license text.
type Parser struct {
	now func() time.Time
	log *slog.Logger

	name       extract.Field[string]
	license    extract.Field[string]
	expiration extract.Field[time.Time]
	class      extract.Field[string]
	address    extract.Field[string]
	state      extract.Field[string]

	model  scoring.Model
	verify verify.Rule[subject]
}

type subject struct {
	rec *domain.LicenseRecord
	now time.Time
}

// New creates a license parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	minDays := opts.MinExpirationDays
	if minDays == 0 {
		minDays = DefaultMinExpirationDays
	}

	p := &Parser{
		now: base.Now,
		log: base.Logger.With("document_type", domain.DocumentTypeCDL),
	}
	p.name = extract.Field[string]{
		Name:     FieldName,
		Patterns: namePatterns,
		Convert: func(m extract.Match) (string, bool) {
			raw := strings.TrimSpace(m.Value)
			if last := m.Group(2); last != "" {
				raw = m.Group(1) + " " + last
			}
			name := validator.CleanPersonName(raw)
			return name, len(name) > 3
		},
	}
	p.license = extract.Field[string]{
		Name:      FieldLicenseNumber,
		Patterns:  licensePatterns,
		EachMatch: true,
		Convert: func(m extract.Match) (string, bool) {
			if !validator.LicenseNumberValid(m.Value) {
				return "", false
			}
			return strings.ToUpper(m.Value), true
		},
	}
	p.expiration = extract.Field[time.Time]{
		Name:     FieldExpirationDate,
		Patterns: expirationPatterns,
		Convert:  extract.Date(validator.FutureOnly(p.now)),
	}
	p.class = extract.Field[string]{
		Name:     FieldLicenseClass,
		Patterns: classPatterns,
		Convert: extract.Upper(func(s string) bool {
			return s == "A" || s == "B" || s == "C"
		}),
	}
	p.address = extract.Field[string]{
		Name:     FieldAddress,
		Patterns: addressPatterns,
		Convert: func(m extract.Match) (string, bool) {
			raw := strings.TrimSpace(m.Value)
			if zip := m.Group(2); zip != "" {
				raw = strings.TrimSpace(m.Group(1)) + " " + strings.TrimSpace(zip)
			}
			addr := validator.CleanAddress(raw)
			return addr, len(addr) > 10
		},
	}
	p.state = extract.Field[string]{
		Name:     FieldState,
		Patterns: statePatterns,
		Convert: extract.Upper(func(s string) bool {
			return len(s) == 2 && normalize.IsAlpha(s)
		}),
	}
	p.model = confidenceModel()
	p.verify = verify.NewRule(
		verify.Check[subject]{Name: "driver_name", Pass: func(s subject) bool { return s.rec.DriverName != nil }},
		verify.Check[subject]{Name: "expiration_date", Pass: func(s subject) bool { return s.rec.ExpirationDate != nil }},
		verify.Check[subject]{Name: "expiration_window", Pass: func(s subject) bool {
			return verify.DaysUntil(*s.rec.ExpirationDate, s.now) >= minDays
		}},
	)
	return p
}

func confidenceModel() scoring.Model {
	return scoring.Model{
		Weights: []scoring.Weight{
			{Field: FieldName, Value: 0.35},
			{Field: FieldExpirationDate, Value: 0.35},
			{Field: FieldLicenseNumber, Value: 0.15},
			{Field: FieldLicenseClass, Value: 0.10},
			{Field: FieldAddress, Value: 0.03},
			{Field: FieldState, Value: 0.02},
		},
		Tiers: []scoring.Tier{
			{Name: "name_and_expiration", Score: 0.95, Mode: scoring.Floor, When: func(pr scoring.Presence) bool {
				return pr.All(FieldName, FieldExpirationDate)
			}},
			{Name: "name_or_expiration", Score: 0.70, Mode: scoring.Floor, When: func(pr scoring.Presence) bool {
				return pr.Any(FieldName, FieldExpirationDate) && pr.Count() >= 2
			}},
		},
	}
}

func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypeCDL }

// Parse extracts the license fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.LicenseRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("cdl.Parser: parsing document", "chars", len(text))

	details := domain.ExtractionDetails{}
	rec := &domain.LicenseRecord{
		DriverName:     p.name.ExtractInto(text, details),
		LicenseNumber:  p.license.ExtractInto(text, details),
		ExpirationDate: p.expiration.ExtractInto(text, details),
		LicenseClass:   p.class.ExtractInto(text, details),
		Address:        p.address.ExtractInto(text, details),
		State:          p.state.ExtractInto(text, details),
	}

	present := scoring.Presence{
		FieldName:           rec.DriverName != nil,
		FieldLicenseNumber:  rec.LicenseNumber != nil,
		FieldExpirationDate: rec.ExpirationDate != nil,
		FieldLicenseClass:   rec.LicenseClass != nil,
		FieldAddress:        rec.Address != nil,
		FieldState:          rec.State != nil,
	}
	score := p.model.Score(present)

	verified, failed := p.verify.Evaluate(subject{rec: rec, now: p.now()})
	if !verified {
		p.log.Debug("cdl.Parser: license not verified", "failed_check", failed)
	}

	p.log.Info("cdl.Parser: parsing completed",
		"confidence", score.Score,
		"verified", verified,
		"fields_found", present.Count())

	return &domain.ParsingResult{
		Type:       domain.DocumentTypeCDL,
		Record:     rec,
		Confidence: score.Score,
		Verified:   verified,
		Details:    details,
	}
}

func (p *Parser) ParseOCRResult(r domain.OCRResult) *domain.ParsingResult {
	return p.Parse(parser.TextFromOCR(r))
}

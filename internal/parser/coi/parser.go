// Package coi parses certificates of insurance.
package coi

import (
	"log/slog"
	"strings"
	"time"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
	"freightdocs/internal/parser"
	"freightdocs/internal/scoring"
	"freightdocs/internal/validator"
	"freightdocs/internal/verify"
)

// Detail keys recorded for each field.
const (
	FieldPolicy           = "policy"
	FieldCompany          = "company"
	FieldGeneralLiability = "general_liability"
	FieldAutoLiability    = "auto_liability"
	FieldEffectiveDate    = "effective_date"
	FieldExpirationDate   = "expiration_date"
)

const (
	DefaultMinCoverageDays  = 30
	DefaultMinCoverageCents = 100000
)

// Options configures a Parser.
type Options struct {
	parser.Options
	PolicyRules *validator.PolicyNumberRules
	// MinCoverageDays is how far in the future the expiration date must lie
	// for the certificate to verify.
	MinCoverageDays int
	// MinCoverageCents is the smallest liability amount accepted.
	MinCoverageCents int64
}

// Parser extracts an InsuranceRecord from certificate text.
type Parser struct {
	now             func() time.Time
	log             *slog.Logger
	minCoverageDays int

	policy     extract.Field[string]
	company    extract.Field[string]
	gl         extract.Field[int64]
	al         extract.Field[int64]
	effective  extract.Field[time.Time]
	expiration extract.Field[time.Time]

	model  scoring.Model
	verify verify.Rule[subject]
}

type subject struct {
	rec *domain.InsuranceRecord
	now time.Time
}

// New creates a certificate parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	if opts.PolicyRules == nil {
		opts.PolicyRules = validator.NewPolicyNumberRules(nil, 0, 0)
	}
	if opts.MinCoverageDays == 0 {
		opts.MinCoverageDays = DefaultMinCoverageDays
	}
	if opts.MinCoverageCents == 0 {
		opts.MinCoverageCents = DefaultMinCoverageCents
	}

	p := &Parser{
		now:             base.Now,
		log:             base.Logger.With("document_type", domain.DocumentTypeCOI),
		minCoverageDays: opts.MinCoverageDays,
	}
	rules := opts.PolicyRules
	p.policy = extract.Field[string]{
		Name:     FieldPolicy,
		Patterns: policyPatterns,
		Convert: func(m extract.Match) (string, bool) {
			v := strings.TrimSpace(m.Value)
			if !rules.Valid(v) {
				return "", false
			}
			return strings.ToUpper(v), true
		},
	}
	p.company = extract.Field[string]{
		Name:     FieldCompany,
		Patterns: companyPatterns,
		Convert:  extract.Cleaned(validator.CleanCompanyName, 3),
	}
	p.gl = extract.Field[int64]{
		Name:     FieldGeneralLiability,
		Patterns: generalLiabilityPatterns,
		Convert:  extract.MinorUnits(opts.MinCoverageCents),
	}
	p.al = extract.Field[int64]{
		Name:     FieldAutoLiability,
		Patterns: autoLiabilityPatterns,
		Convert:  extract.MinorUnits(opts.MinCoverageCents),
	}
	p.effective = extract.Field[time.Time]{
		Name:        FieldEffectiveDate,
		Patterns:    effectiveDatePatterns,
		Convert:     extract.Date(nil),
		RecordValue: true,
	}
	p.expiration = extract.Field[time.Time]{
		Name:        FieldExpirationDate,
		Patterns:    expirationDatePatterns,
		Convert:     extract.Date(validator.FutureOnly(p.now)),
		RecordValue: true,
	}
	p.model = confidenceModel()
	p.verify = verify.NewRule(
		verify.Check[subject]{Name: "policy_number", Pass: func(s subject) bool { return s.rec.PolicyNumber != nil }},
		verify.Check[subject]{Name: "expiration_date", Pass: func(s subject) bool { return s.rec.ExpirationDate != nil }},
		verify.Check[subject]{Name: "liability_amount", Pass: func(s subject) bool {
			return s.rec.GeneralLiabilityCents != nil || s.rec.AutoLiabilityCents != nil
		}},
		verify.Check[subject]{Name: "coverage_window", Pass: func(s subject) bool {
			return verify.DaysUntil(*s.rec.ExpirationDate, s.now) >= p.minCoverageDays
		}},
	)
	return p
}

func confidenceModel() scoring.Model {
	amounts := func(pr scoring.Presence) bool { return pr.Any(FieldGeneralLiability, FieldAutoLiability) }
	dates := func(pr scoring.Presence) bool { return pr.Any(FieldEffectiveDate, FieldExpirationDate) }
	return scoring.Model{
		Weights: []scoring.Weight{
			{Field: FieldPolicy, Value: 0.25},
			{Field: FieldCompany, Value: 0.15},
			{Field: FieldGeneralLiability, Value: 0.20},
			{Field: FieldAutoLiability, Value: 0.20},
			{Field: FieldEffectiveDate, Value: 0.10},
			{Field: FieldExpirationDate, Value: 0.10},
		},
		Tiers: []scoring.Tier{
			{Name: "complete", Score: 0.95, When: func(pr scoring.Presence) bool {
				return pr.All(FieldPolicy, FieldCompany) && amounts(pr) && dates(pr)
			}},
			{Name: "core_plus", Score: 0.85, When: func(pr scoring.Presence) bool {
				return pr.Has(FieldPolicy) && amounts(pr) && dates(pr) &&
					(pr.Has(FieldCompany) || pr.All(FieldGeneralLiability, FieldAutoLiability))
			}},
			{Name: "core", Score: 0.80, When: func(pr scoring.Presence) bool {
				return pr.Has(FieldPolicy) && amounts(pr) && dates(pr)
			}},
			{Name: "partial", Score: 0.70, When: func(pr scoring.Presence) bool {
				return pr.Has(FieldPolicy) && (amounts(pr) || dates(pr))
			}},
		},
	}
}

// Type implements port.DocumentParser.
func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypeCOI }

// Parse extracts the certificate fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.InsuranceRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("coi.Parser: parsing document", "chars", len(text))

	details := domain.ExtractionDetails{}
	rec := &domain.InsuranceRecord{
		PolicyNumber:          p.policy.ExtractInto(text, details),
		InsuranceCompany:      p.company.ExtractInto(text, details),
		GeneralLiabilityCents: p.gl.ExtractInto(text, details),
		AutoLiabilityCents:    p.al.ExtractInto(text, details),
		EffectiveDate:         p.effective.ExtractInto(text, details),
		ExpirationDate:        p.expiration.ExtractInto(text, details),
	}

	present := scoring.Presence{
		FieldPolicy:           rec.PolicyNumber != nil,
		FieldCompany:          rec.InsuranceCompany != nil,
		FieldGeneralLiability: rec.GeneralLiabilityCents != nil,
		FieldAutoLiability:    rec.AutoLiabilityCents != nil,
		FieldEffectiveDate:    rec.EffectiveDate != nil,
		FieldExpirationDate:   rec.ExpirationDate != nil,
	}
	score := p.model.Score(present)

	verified, failed := p.verify.Evaluate(subject{rec: rec, now: p.now()})
	if !verified {
		p.log.Debug("coi.Parser: insurance not verified", "failed_check", failed)
	}

	p.log.Info("coi.Parser: parsing completed",
		"confidence", score.Score,
		"verified", verified,
		"fields_found", present.Count())

	return &domain.ParsingResult{
		Type:       domain.DocumentTypeCOI,
		Record:     rec,
		Confidence: score.Score,
		Verified:   verified,
		Details:    details,
	}
}

// ParseOCRResult parses the text carried by an OCR provider result.
func (p *Parser) ParseOCRResult(r domain.OCRResult) *domain.ParsingResult {
	return p.Parse(parser.TextFromOCR(r))
}

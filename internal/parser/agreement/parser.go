// Package agreement parses driver, carrier and service agreements.
package agreement

import (
	"log/slog"
	"strings"
	"time"
	"unicode"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
	"freightdocs/internal/normalize"
	"freightdocs/internal/parser"
	"freightdocs/internal/scoring"
	"freightdocs/internal/verify"
)

const (
	FieldSignature     = "signature"
	FieldAgreementType = "agreement_type"
	FieldSigningDate   = "signing_date"
	FieldKeyTerms      = "key_terms"

	DetailSignatureIndicators = "signature_indicators"
	DetailSignatureEvidence   = "signature_details"
	DetailKeyTermsFound       = "key_terms_found"
)

const (
	DefaultSignedThreshold = 0.90
	maxTermMatches         = 3
	minTermLength          = 10
)

// SignatureEvidence is one signature pattern that fired.
type SignatureEvidence struct {
	Pattern int      `json:"pattern" yaml:"pattern"`
	Type    string   `json:"pattern_type" yaml:"pattern_type"`
	Matches []string `json:"matches" yaml:"matches"`
}

// Options configures a Parser.
type Options struct {
	parser.Options
	// SignedThreshold is the confidence at which an agreement counts as signed.
	SignedThreshold float64
}

// Parser extracts an AgreementRecord from agreement text.
type Parser struct {
	log *slog.Logger

	agreementType extract.Field[string]
	signingDate   extract.Field[time.Time]

	model  scoring.Model
	verify verify.Rule[float64]
}

// New creates an agreement parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	threshold := opts.SignedThreshold
	if threshold == 0 {
		threshold = DefaultSignedThreshold
	}

	p := &Parser{
		log: base.Logger.With("document_type", domain.DocumentTypeAgreement),
	}
	p.agreementType = extract.Field[string]{
		Name:     FieldAgreementType,
		Patterns: agreementTypePatterns,
		Convert: func(m extract.Match) (string, bool) {
			v := titleAgreementType(m.Value)
			return v, v != ""
		},
	}
	p.signingDate = extract.Field[time.Time]{
		Name:     FieldSigningDate,
		Patterns: signingDatePatterns,
		Convert:  extract.Date(nil),
	}
	p.model = confidenceModel()
	p.verify = verify.NewRule(
		verify.Check[float64]{Name: "signed_threshold", Pass: func(c float64) bool { return c >= threshold }},
	)
	return p
}

func confidenceModel() scoring.Model {
	tier := func(name string, score float64, when func(scoring.Presence) bool) scoring.Tier {
		return scoring.Tier{Name: name, Score: score, When: when}
	}
	return scoring.Model{
		Tiers: []scoring.Tier{
			tier("signature_type_date", 0.95, func(pr scoring.Presence) bool {
				return pr.All(FieldSignature, FieldAgreementType, FieldSigningDate)
			}),
			tier("signature_type", 0.85, func(pr scoring.Presence) bool { return pr.All(FieldSignature, FieldAgreementType) }),
			tier("signature_terms", 0.75, func(pr scoring.Presence) bool { return pr.All(FieldSignature, FieldKeyTerms) }),
			tier("signature", 0.70, func(pr scoring.Presence) bool { return pr.Has(FieldSignature) }),
			tier("type_terms", 0.60, func(pr scoring.Presence) bool { return pr.All(FieldAgreementType, FieldKeyTerms) }),
			tier("terms", 0.40, func(pr scoring.Presence) bool { return pr.Has(FieldKeyTerms) }),
			tier("none", 0.20, scoring.Always),
		},
	}
}

// signatureBoost rewards agreements carrying several independent signature
// indicators.
func signatureBoost(indicators int) float64 {
	switch {
	case indicators >= 6:
		return 0.25
	case indicators >= 4:
		return 0.15
	case indicators >= 3:
		return 0.10
	case indicators >= 2:
		return 0.05
	}
	return 0
}

func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypeAgreement }

// Parse extracts the agreement fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.AgreementRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("agreement.Parser: parsing document", "chars", len(text))

	details := domain.ExtractionDetails{}
	evidence := detectSignature(text)
	detected := len(evidence) >= 2 || hasStrongIndicator(evidence)
	details[DetailSignatureIndicators] = len(evidence)
	details[DetailSignatureEvidence] = evidence
	if detected {
		extract.Found(details, FieldSignature, evidence[0].Type)
	} else {
		extract.Miss(details, FieldSignature)
	}

	rec := &domain.AgreementRecord{
		SignatureDetected:   detected,
		SignatureIndicators: len(evidence),
		SigningDate:         p.signingDate.ExtractInto(text, details),
		AgreementType:       p.agreementType.ExtractInto(text, details),
		KeyTerms:            keyTerms(text),
	}
	details[DetailKeyTermsFound] = len(rec.KeyTerms)

	present := scoring.Presence{
		FieldSignature:     rec.SignatureDetected,
		FieldAgreementType: rec.AgreementType != nil,
		FieldSigningDate:   rec.SigningDate != nil,
		FieldKeyTerms:      len(rec.KeyTerms) > 0,
	}
	confidence := p.model.Score(present).Score
	if detected {
		confidence = scoring.Clamp(confidence + signatureBoost(len(evidence)))
	}

	signed, _ := p.verify.Evaluate(confidence)

	p.log.Info("agreement.Parser: parsing completed",
		"confidence", confidence,
		"signed", signed,
		"signature_detected", detected)

	return &domain.ParsingResult{
		Type:       domain.DocumentTypeAgreement,
		Record:     rec,
		Confidence: confidence,
		Verified:   signed,
		Details:    details,
	}
}

func (p *Parser) ParseOCRResult(r domain.OCRResult) *domain.ParsingResult {
	return p.Parse(parser.TextFromOCR(r))
}

func detectSignature(text string) []SignatureEvidence {
	var evidence []SignatureEvidence
	for i, sp := range signaturePatterns {
		if sp.presenceOnly {
			if sp.pattern.Expr.MatchString(text) {
				evidence = append(evidence, SignatureEvidence{Pattern: i, Type: sp.kind, Matches: []string{sp.kind + "_found"}})
			}
			continue
		}
		hits := sp.pattern.All(text, i, -1)
		if len(hits) == 0 {
			continue
		}
		matches := make([]string, 0, len(hits))
		for _, h := range hits {
			matches = append(matches, h.Value)
		}
		evidence = append(evidence, SignatureEvidence{Pattern: i, Type: sp.kind, Matches: matches})
	}
	return evidence
}

// hasStrongIndicator reports whether any single indicator is enough on its
// own. A "signed by" line only counts when it names someone.
func hasStrongIndicator(evidence []SignatureEvidence) bool {
	for _, e := range evidence {
		if e.Type != SigSignedBy {
			return true
		}
		for _, m := range e.Matches {
			if len(strings.TrimSpace(m)) > 3 {
				return true
			}
		}
	}
	return false
}

func keyTerms(text string) []string {
	var terms []string
	for i, pat := range keyTermPatterns {
		for _, m := range pat.All(text, i, maxTermMatches) {
			term := normalize.CollapseSpace(m.Value)
			if len(term) > minTermLength {
				terms = append(terms, term)
			}
		}
	}
	return terms
}

var lowercaseWords = map[string]struct{}{
	"and": {}, "of": {}, "the": {}, "in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "with": {},
}

// titleAgreementType capitalizes each word except articles and prepositions
// after the first word.
func titleAgreementType(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		if _, small := lowercaseWords[w]; small && i > 0 {
			continue
		}
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(w string) string {
	r := []rune(w)
	if len(r) == 0 {
		return w
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

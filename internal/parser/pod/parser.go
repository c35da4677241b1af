// Package pod parses proof-of-delivery receipts.
package pod

import (
	"log/slog"
	"regexp"
	"strings"
	"time"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
	"freightdocs/internal/normalize"
	"freightdocs/internal/parser"
	"freightdocs/internal/scoring"
	"freightdocs/internal/verify"
)

const (
	FieldDeliveryConfirmed = "delivery_confirmed"
	FieldSignature         = "signature_present"
	FieldReceiverName      = "receiver_name"
	FieldDeliveryDate      = "delivery_date"
	FieldDeliveryNotes     = "delivery_notes"
)

// Diagnostic detail keys.
const (
	DetailConfirmationMethod    = "delivery_confirmation_method"
	DetailConfirmationPattern   = "delivery_confirmation_pattern"
	DetailConfirmationIndicator = "delivery_confirmation_indicator"
	DetailSignatureMethod       = "signature_method"
	DetailSignatureIndicators   = "signature_indicators"
	DetailReceiverMethod        = "receiver_name_method"
	DetailReceiverPattern       = "receiver_name_pattern"
	DetailReceiverScore         = "receiver_name_score"
	DetailDateMethod            = "delivery_date_method"
	DetailDatePattern           = "delivery_date_pattern"
	DetailDateRaw               = "delivery_date_raw"
	DetailTimeRaw               = "delivery_time_raw"
	DetailNotesMethod           = "delivery_notes_method"
	DetailNotesCount            = "delivery_notes_count"
	DetailConfidenceBreakdown   = "confidence_breakdown"
)

const (
	MethodPattern      = "pattern_match"
	MethodDocumentType = "document_type"
	MethodFound        = "found"
	MethodNotFound     = "not_found"
)

const (
	DefaultCompletedThreshold = 0.80

	maxSignatureIndicators = 5
	maxNotesLength         = 500
	minNoteLength          = 5
)

// breakdownKeys name each field's weight in the confidence breakdown.
var breakdownKeys = map[string]string{
	FieldDeliveryConfirmed: "delivery_confirmed_weight",
	FieldSignature:         "signature_weight",
	FieldDeliveryDate:      "date_weight",
	FieldReceiverName:      "receiver_weight",
	FieldDeliveryNotes:     "notes_weight",
}

var (
	fullName   = regexp.MustCompile(`^[A-Z][a-z]+ [A-Z][a-z]+$`)
	singleName = regexp.MustCompile(`^[A-Z][a-z]+$`)
)

// Options configures a Parser.
type Options struct {
	parser.Options
	// CompletedThreshold is the confidence at which a confirmed delivery
	// counts as complete.
	CompletedThreshold float64
}

// Parser extracts a PODRecord from delivery receipt text.
type Parser struct {
	log *slog.Logger

	model  scoring.Model
	verify verify.Rule[subject]
}

type subject struct {
	rec        *domain.PODRecord
	confidence float64
}

// New creates a proof-of-delivery parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	threshold := opts.CompletedThreshold
	if threshold == 0 {
		threshold = DefaultCompletedThreshold
	}
	return &Parser{
		log: base.Logger.With("document_type", domain.DocumentTypePOD),
		model: scoring.Model{
			Weights: []scoring.Weight{
				{Field: FieldDeliveryConfirmed, Value: 0.40},
				{Field: FieldSignature, Value: 0.25},
				{Field: FieldDeliveryDate, Value: 0.20},
				{Field: FieldReceiverName, Value: 0.10},
				{Field: FieldDeliveryNotes, Value: 0.05},
			},
		},
		verify: verify.NewRule(
			verify.Check[subject]{Name: "delivery_confirmed", Pass: func(s subject) bool { return s.rec.DeliveryConfirmed }},
			verify.Check[subject]{Name: "completed_threshold", Pass: func(s subject) bool { return s.confidence >= threshold }},
		),
	}
}

func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypePOD }

// Parse extracts the delivery receipt fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.PODRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("pod.Parser: parsing document", "chars", len(text))

	text = normalize.FixDigitConfusions(normalize.FixKeywordsLower(text, normalize.PODKeywordFixes))
	details := domain.ExtractionDetails{}

	rec := &domain.PODRecord{
		DeliveryConfirmed: extractConfirmation(text, details),
		SignaturePresent:  extractSignature(text, details),
		ReceiverName:      extractReceiver(text, details),
		DeliveryDate:      extractDeliveryDate(text, details),
		DeliveryNotes:     extractNotes(text, details),
	}

	confidence := p.confidence(rec, details)
	completed, failed := p.verify.Evaluate(subject{rec: rec, confidence: confidence})
	if !completed {
		p.log.Debug("pod.Parser: delivery not completed", "failed_check", failed)
	}

	p.log.Info("pod.Parser: parsing completed",
		"confidence", confidence,
		"pod_completed", completed)

	return &domain.ParsingResult{
		Type:       domain.DocumentTypePOD,
		Record:     rec,
		Confidence: confidence,
		Verified:   completed,
		Details:    details,
	}
}

// ParseOCRResult parses the text carried by an OCR provider result.
func (p *Parser) ParseOCRResult(r domain.OCRResult) *domain.ParsingResult {
	return p.Parse(parser.TextFromOCR(r))
}

// confidence is the weighted base plus small quality bonuses, capped at 1.
// The computation is recorded under DetailConfidenceBreakdown.
func (p *Parser) confidence(rec *domain.PODRecord, details domain.ExtractionDetails) float64 {
	present := scoring.Presence{
		FieldDeliveryConfirmed: rec.DeliveryConfirmed,
		FieldSignature:         rec.SignaturePresent,
		FieldDeliveryDate:      rec.DeliveryDate != nil,
		FieldReceiverName:      rec.ReceiverName != nil,
		FieldDeliveryNotes:     rec.DeliveryNotes != nil,
	}
	base := p.model.Base(present)

	bonuses := 0.0
	if details[DetailConfirmationMethod] == MethodPattern {
		bonuses += 0.02
	}
	if rec.ReceiverName != nil && len(*rec.ReceiverName) > 5 {
		bonuses += 0.02
	}
	if rec.DeliveryNotes != nil && len(*rec.DeliveryNotes) > 20 {
		bonuses += 0.01
	}
	final := min(1.0, base+bonuses)

	breakdown := map[string]float64{
		"base_score":  base,
		"bonuses":     bonuses,
		"final_score": final,
	}
	for field, weight := range p.model.Breakdown(present) {
		breakdown[breakdownKeys[field]] = weight
	}
	details[DetailConfidenceBreakdown] = breakdown
	return final
}

func extractConfirmation(text string, details domain.ExtractionDetails) bool {
	for i, pat := range confirmationPatterns {
		if m, ok := pat.First(text, i); ok {
			extract.Record(details, FieldDeliveryConfirmed, m)
			details[DetailConfirmationMethod] = MethodPattern
			details[DetailConfirmationPattern] = i
			return true
		}
	}
	lower := strings.ToLower(text)
	for _, indicator := range documentIndicators {
		if strings.Contains(lower, indicator) {
			extract.Found(details, FieldDeliveryConfirmed, indicator)
			details[DetailConfirmationMethod] = MethodDocumentType
			details[DetailConfirmationIndicator] = indicator
			return true
		}
	}
	extract.Miss(details, FieldDeliveryConfirmed)
	details[DetailConfirmationMethod] = MethodNotFound
	return false
}

func extractSignature(text string, details domain.ExtractionDetails) bool {
	var indicators []string
	for i, pat := range signaturePatterns {
		for _, m := range pat.All(text, i, -1) {
			indicators = append(indicators, m.Value)
		}
	}
	lower := strings.ToLower(text)
	for _, kw := range signatureKeywords {
		if strings.Contains(lower, kw) {
			indicators = append(indicators, kw)
		}
	}

	if len(indicators) == 0 {
		extract.Miss(details, FieldSignature)
		details[DetailSignatureMethod] = MethodNotFound
		return false
	}
	extract.Found(details, FieldSignature, indicators[0])
	details[DetailSignatureMethod] = MethodFound
	details[DetailSignatureIndicators] = indicators[:min(len(indicators), maxSignatureIndicators)]
	return true
}

// extractReceiver returns the best-scoring receiver candidate across all
// patterns. Only the first line of a candidate is kept.
func extractReceiver(text string, details domain.ExtractionDetails) *string {
	var (
		best      string
		bestMatch extract.Match
		bestScore int
	)
	for i, pat := range receiverPatterns {
		for _, m := range pat.All(text, i, -1) {
			name, _, _ := strings.Cut(m.Value, "\n")
			name = strings.TrimSpace(name)
			if len(name) < 2 || hasStopWord(name) {
				continue
			}
			if s := receiverScore(name); s > bestScore {
				best, bestMatch, bestScore = name, m, s
			}
		}
	}
	if best == "" {
		extract.Miss(details, FieldReceiverName)
		details[DetailReceiverMethod] = MethodNotFound
		return nil
	}
	extract.Record(details, FieldReceiverName, bestMatch)
	details[DetailReceiverMethod] = MethodPattern
	details[DetailReceiverPattern] = bestMatch.Index
	details[DetailReceiverScore] = bestScore
	return &best
}

func hasStopWord(name string) bool {
	lower := strings.ToLower(name)
	for _, w := range receiverStopWords {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}

// receiverScore prefers short, capitalised "First Last" names.
func receiverScore(name string) int {
	score := 0
	switch {
	case len(name) <= 20:
		score += 3
	case len(name) <= 30:
		score++
	}
	switch {
	case fullName.MatchString(name):
		score += 5
	case singleName.MatchString(name):
		score += 2
	}
	if strings.Count(name, ".") <= 1 && strings.Count(name, ",") <= 1 {
		score++
	}
	return score
}

func extractDeliveryDate(text string, details domain.ExtractionDetails) *time.Time {
	for i, pat := range deliveryDatePatterns {
		for _, m := range pat.All(text, i, -1) {
			clock := m.Group(2)
			t, ok := normalize.ParseDateTime(m.Value, clock)
			if !ok {
				continue
			}
			extract.Record(details, FieldDeliveryDate, m)
			details[DetailDateMethod] = MethodPattern
			details[DetailDatePattern] = i
			details[DetailDateRaw] = m.Value
			if clock != "" {
				details[DetailTimeRaw] = clock
			}
			return &t
		}
	}
	extract.Miss(details, FieldDeliveryDate)
	details[DetailDateMethod] = MethodNotFound
	return nil
}

// extractNotes joins every distinct note-like phrase in order of discovery.
func extractNotes(text string, details domain.ExtractionDetails) *string {
	var (
		notes []string
		found int
		seen  = map[string]bool{}
	)
	for i, pat := range notePatterns {
		for _, m := range pat.All(text, i, -1) {
			n := strings.TrimSpace(m.Value)
			if len(n) < minNoteLength {
				continue
			}
			found++
			if !seen[n] {
				seen[n] = true
				notes = append(notes, n)
			}
		}
	}
	if found == 0 {
		extract.Miss(details, FieldDeliveryNotes)
		details[DetailNotesMethod] = MethodNotFound
		return nil
	}
	combined := normalize.Truncate(strings.Join(notes, ". "), maxNotesLength)
	extract.Found(details, FieldDeliveryNotes, notes[0])
	details[DetailNotesMethod] = MethodPattern
	details[DetailNotesCount] = found
	return &combined
}

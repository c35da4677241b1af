// Package ratecon parses broker rate confirmations.
package ratecon

import (
	"fmt"
	"log/slog"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"freightdocs/internal/domain"
	"freightdocs/internal/extract"
	"freightdocs/internal/normalize"
	"freightdocs/internal/parser"
	"freightdocs/internal/scoring"
	"freightdocs/internal/verify"
)

const (
	FieldRate         = "rate"
	FieldOrigin       = "origin"
	FieldDestination  = "destination"
	FieldPickupDate   = "pickup_date"
	FieldDeliveryDate = "delivery_date"
	FieldWeight       = "weight"
	FieldCommodity    = "commodity"
)

// NoteSuffix is appended to a field name to form the key of its
// human-readable extraction note, e.g. "rate_extraction".
const NoteSuffix = "_extraction"

const (
	DefaultMinRateCents      = 5000
	DefaultMaxRateCents      = 5000000
	DefaultVerifiedThreshold = 0.80

	minWeightLbs    = 100
	maxWeightLbs    = 80000
	minCommodityLen = 3
	maxCommodityLen = 100
)

var vagueCommodities = map[string]bool{"here": true, "there": true, "this": true, "that": true}

// Options configures a Parser.
type Options struct {
	parser.Options
	// MinRateCents and MaxRateCents bound the accepted line-haul rate.
	MinRateCents int64
	MaxRateCents int64
}

// Parser extracts a RateConRecord from rate confirmation text.
type Parser struct {
	log     *slog.Logger
	minRate int64
	maxRate int64

	model  scoring.Model
	verify verify.Rule[subject]
}

type subject struct {
	rec        *domain.RateConRecord
	confidence float64
}

// New creates a rate confirmation parser.
func New(opts Options) *Parser {
	base := opts.Options.WithDefaults()
	if opts.MinRateCents == 0 {
		opts.MinRateCents = DefaultMinRateCents
	}
	if opts.MaxRateCents == 0 {
		opts.MaxRateCents = DefaultMaxRateCents
	}
	return &Parser{
		log:     base.Logger.With("document_type", domain.DocumentTypeRateCon),
		minRate: opts.MinRateCents,
		maxRate: opts.MaxRateCents,
		model:   confidenceModel(),
		verify: verify.NewRule(
			verify.Check[subject]{Name: "rate", Pass: func(s subject) bool { return s.rec.RateCents != nil }},
			verify.Check[subject]{Name: "origin", Pass: func(s subject) bool { return s.rec.Origin != nil }},
			verify.Check[subject]{Name: "destination", Pass: func(s subject) bool { return s.rec.Destination != nil }},
			verify.Check[subject]{Name: "confidence", Pass: func(s subject) bool { return s.confidence >= DefaultVerifiedThreshold }},
		),
	}
}

func confidenceModel() scoring.Model {
	return scoring.Model{
		Weights: []scoring.Weight{
			{Field: FieldRate, Value: 0.40},
			{Field: FieldOrigin, Value: 0.20},
			{Field: FieldDestination, Value: 0.20},
			{Field: FieldPickupDate, Value: 0.10},
			{Field: FieldDeliveryDate, Value: 0.05},
			{Field: FieldWeight, Value: 0.03},
			{Field: FieldCommodity, Value: 0.02},
		},
		Tiers: []scoring.Tier{
			{Name: "route_dates", Score: 0.95, When: func(pr scoring.Presence) bool {
				return pr.All(FieldRate, FieldOrigin, FieldDestination) && pr.Any(FieldPickupDate, FieldDeliveryDate)
			}},
			{Name: "route", Score: 0.85, When: func(pr scoring.Presence) bool {
				return pr.All(FieldRate, FieldOrigin, FieldDestination)
			}},
			{Name: "rate_one_end", Score: 0.70, When: func(pr scoring.Presence) bool {
				return pr.Has(FieldRate) && pr.Any(FieldOrigin, FieldDestination)
			}},
			{Name: "rate", Score: 0.60, When: func(pr scoring.Presence) bool { return pr.Has(FieldRate) }},
		},
	}
}

func (p *Parser) Type() domain.DocumentType { return domain.DocumentTypeRateCon }

// Parse extracts the rate confirmation fields from text.
func (p *Parser) Parse(text string) *domain.ParsingResult {
	if !parser.HasText(text) {
		return parser.Empty(&domain.RateConRecord{}, domain.NoTextMarker)
	}
	p.log.Debug("ratecon.Parser: parsing document", "chars", len(text))

	text = normalize.FixKeywords(text, normalize.RateConKeywordFixes)
	details := domain.ExtractionDetails{}

	rec := &domain.RateConRecord{RateCents: p.extractRate(text, details)}
	rec.Origin, rec.Destination = extractRoute(text, details)
	rec.PickupDate, rec.DeliveryDate = extractDates(text, details)
	rec.WeightLbs = extractWeight(text, details)
	rec.Commodity = extractCommodity(text, details)

	present := scoring.Presence{
		FieldRate:         rec.RateCents != nil,
		FieldOrigin:       rec.Origin != nil,
		FieldDestination:  rec.Destination != nil,
		FieldPickupDate:   rec.PickupDate != nil,
		FieldDeliveryDate: rec.DeliveryDate != nil,
		FieldWeight:       rec.WeightLbs != nil,
		FieldCommodity:    rec.Commodity != nil,
	}
	score := p.model.Score(present)

	verified, failed := p.verify.Evaluate(subject{rec: rec, confidence: score.Score})
	if !verified {
		p.log.Debug("ratecon.Parser: rate confirmation not verified", "failed_check", failed)
	}

	p.log.Info("ratecon.Parser: parsing completed",
		"confidence", score.Score,
		"verified", verified,
		"rate_cents", rec.RateCents,
		"route", rec.Summary().Identifier)

	return &domain.ParsingResult{
		Type:       domain.DocumentTypeRateCon,
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

func note(details domain.ExtractionDetails, field, msg string) {
	details[field+NoteSuffix] = msg
}

// extractRate returns the largest in-range amount found by any rate pattern.
func (p *Parser) extractRate(text string, details domain.ExtractionDetails) *int64 {
	var (
		best  extract.Match
		cents int64
		seen  bool
	)
	for i, pat := range ratePatterns {
		for _, m := range pat.All(text, i, -1) {
			seen = true
			c, ok := normalize.DollarsToCents(m.Value)
			if !ok || c < p.minRate || c > p.maxRate || c <= cents {
				continue
			}
			best, cents = m, c
		}
	}
	switch {
	case !seen:
		extract.Miss(details, FieldRate)
		note(details, FieldRate, "No rate amount found")
		return nil
	case cents == 0:
		extract.Miss(details, FieldRate)
		note(details, FieldRate, "No valid rate amount parsed")
		return nil
	}
	extract.Record(details, FieldRate, best)
	note(details, FieldRate, fmt.Sprintf("Found rate: $%s (%s)", decimal.New(cents, -2).StringFixed(2), best.Value))
	return &cents
}

// extractRoute finds origin and destination from keyword lines, then a
// route phrase, then the first two distinct city/state pairs in the text.
func extractRoute(text string, details domain.ExtractionDetails) (*string, *string) {
	var origin, destination *string

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if origin == nil {
			origin = placeAfterKeyword(line, originKeywords)
			if origin != nil {
				extract.Found(details, FieldOrigin, line)
				note(details, FieldOrigin, "Found origin: "+*origin)
			}
		}
		if destination == nil {
			destination = placeAfterKeyword(line, destinationKeywords)
			if destination != nil {
				extract.Found(details, FieldDestination, line)
				note(details, FieldDestination, "Found destination: "+*destination)
			}
		}
	}

	if origin == nil || destination == nil {
		for i, pat := range routePatterns {
			m, ok := pat.First(text, i)
			if !ok {
				continue
			}
			if origin == nil {
				origin = place(m.Group(1), m.Group(2))
				extract.Record(details, FieldOrigin, m)
				note(details, FieldOrigin, "Found origin: "+*origin)
			}
			if destination == nil {
				destination = place(m.Group(3), m.Group(4))
				extract.Record(details, FieldDestination, m)
				note(details, FieldDestination, "Found destination: "+*destination)
			}
			break
		}
	}

	if origin == nil || destination == nil {
		// A place already resolved for one end is never reused for the other.
		var places []string
		for i, pat := range placePatterns {
			for _, m := range pat.All(text, i, -1) {
				pl := *place(m.Group(1), m.Group(2))
				if slices.Contains(places, pl) || samePlace(origin, pl) || samePlace(destination, pl) {
					continue
				}
				places = append(places, pl)
			}
		}
		if len(places) > 0 && origin == nil {
			origin = &places[0]
			extract.Found(details, FieldOrigin, places[0])
			note(details, FieldOrigin, "Inferred origin: "+places[0])
			places = places[1:]
		}
		if len(places) > 0 && destination == nil {
			destination = &places[0]
			extract.Found(details, FieldDestination, places[0])
			note(details, FieldDestination, "Inferred destination: "+places[0])
		}
	}

	if origin == nil {
		extract.Miss(details, FieldOrigin)
		note(details, FieldOrigin, "No origin location found")
	}
	if destination == nil {
		extract.Miss(details, FieldDestination)
		note(details, FieldDestination, "No destination location found")
	}
	return origin, destination
}

// placeAfterKeyword reads a place from the text following the first keyword
// on the line that yields one.
func placeAfterKeyword(line string, keywords []*regexp.Regexp) *string {
	for _, kw := range keywords {
		loc := kw.FindStringIndex(line)
		if loc == nil {
			continue
		}
		rest := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line[loc[1]:]), ":"))
		for _, pat := range linePlacePatterns {
			sub := pat.FindStringSubmatch(rest)
			if sub == nil {
				continue
			}
			if len(sub) > 2 {
				return place(sub[1], sub[2])
			}
			return place(sub[1], placeholderState)
		}
	}
	return nil
}

func samePlace(resolved *string, pl string) bool {
	return resolved != nil && *resolved == pl
}

func place(city, state string) *string {
	s := strings.TrimSpace(city) + ", " + strings.ToUpper(state)
	return &s
}

// extractDates reads pickup and delivery dates from keyword lines and falls
// back to the chronologically first two dates in the text.
func extractDates(text string, details domain.ExtractionDetails) (*time.Time, *time.Time) {
	var pickup, delivery *time.Time

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		lower := strings.ToLower(line)
		if pickup == nil && containsAny(lower, pickupKeywords) {
			if t := dateOnLine(line); t != nil {
				pickup = t
				extract.Found(details, FieldPickupDate, line)
				note(details, FieldPickupDate, "Found pickup date: "+t.Format("01/02/2006"))
			}
		}
		if delivery == nil && containsAny(lower, deliveryKeywords) {
			if t := dateOnLine(line); t != nil {
				delivery = t
				extract.Found(details, FieldDeliveryDate, line)
				note(details, FieldDeliveryDate, "Found delivery date: "+t.Format("01/02/2006"))
			}
		}
	}

	if pickup == nil || delivery == nil {
		var dates []time.Time
		for i, pat := range datePatterns {
			for _, m := range pat.All(text, i, -1) {
				if t, ok := normalize.ParseDate(m.Value); ok {
					dates = append(dates, t)
				}
			}
		}
		slices.SortStableFunc(dates, func(a, b time.Time) int { return a.Compare(b) })
		if len(dates) > 0 && pickup == nil {
			pickup = &dates[0]
			extract.Found(details, FieldPickupDate, dates[0].Format("01/02/2006"))
			note(details, FieldPickupDate, "Inferred pickup date: "+dates[0].Format("01/02/2006"))
		}
		if len(dates) > 1 && delivery == nil {
			delivery = &dates[1]
			extract.Found(details, FieldDeliveryDate, dates[1].Format("01/02/2006"))
			note(details, FieldDeliveryDate, "Inferred delivery date: "+dates[1].Format("01/02/2006"))
		}
	}

	if pickup == nil {
		extract.Miss(details, FieldPickupDate)
		note(details, FieldPickupDate, "No pickup date found")
	}
	if delivery == nil {
		extract.Miss(details, FieldDeliveryDate)
		note(details, FieldDeliveryDate, "No delivery date found")
	}
	return pickup, delivery
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

func dateOnLine(line string) *time.Time {
	sub := lineDate.FindStringSubmatch(line)
	if sub == nil {
		return nil
	}
	t, ok := normalize.ParseDate(sub[1])
	if !ok {
		return nil
	}
	return &t
}

func extractWeight(text string, details domain.ExtractionDetails) *float64 {
	for i, pat := range weightPatterns {
		for _, m := range pat.All(text, i, -1) {
			v, err := strconv.ParseFloat(strings.ReplaceAll(m.Value, ",", ""), 64)
			if err != nil || v < minWeightLbs || v > maxWeightLbs {
				continue
			}
			extract.Record(details, FieldWeight, m)
			note(details, FieldWeight, fmt.Sprintf("Found weight: %s lbs", strconv.FormatFloat(v, 'f', 0, 64)))
			return &v
		}
	}
	extract.Miss(details, FieldWeight)
	note(details, FieldWeight, "No weight found")
	return nil
}

func extractCommodity(text string, details domain.ExtractionDetails) *string {
	for i, pat := range commodityPatterns {
		for _, m := range pat.All(text, i, -1) {
			v := strings.TrimSpace(m.Value)
			if len(v) < minCommodityLen || len(v) > maxCommodityLen ||
				vagueCommodities[strings.ToLower(v)] || !hasLetter(v) {
				continue
			}
			extract.Record(details, FieldCommodity, m)
			note(details, FieldCommodity, "Found commodity: "+v)
			return &v
		}
	}
	extract.Miss(details, FieldCommodity)
	note(details, FieldCommodity, "No commodity found")
	return nil
}

func hasLetter(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}

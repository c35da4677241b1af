package ratecon

import (
	"regexp"

	"freightdocs/internal/extract"
)

const (
	dollarFigure = `([0-9]{1,5}(?:,[0-9]{3})*(?:\.[0-9]{2})?)`
	datePart     = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`
)

// Every candidate from every rate pattern competes; the largest in range wins.
var ratePatterns = []extract.Pattern{
	extract.P(`(?:rate|amount|total)[:\s]*\$?` + dollarFigure),
	extract.P(`compensation[:\s]*\$?` + dollarFigure),
	extract.P(`pay[:\s]*\$?` + dollarFigure),
	extract.P(`\$` + dollarFigure),
	extract.P(dollarFigure + `\s*(?:dollars?|usd)`),
}

var (
	originKeywords      = keywordPatterns("from", "origin", "pickup", "pick up", "pick", "loading")
	destinationKeywords = keywordPatterns("to", "destination", "delivery", "deliver", "drop off", "drop", "unload")
)

// linePlacePatterns read a place from the rest of a keyword line. The last
// one has no state group and yields a placeholder state.
var linePlacePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s]*[A-Za-z]),\s*([A-Z]{2})`),
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s]*[A-Za-z])\s+([A-Z]{2})`),
	regexp.MustCompile(`(?i)([A-Za-z][A-Za-z\s]*[A-Za-z])`),
}

const placeholderState = "XX"

// routePatterns capture origin city/state in groups 1-2 and destination in 3-4.
var routePatterns = []extract.Pattern{
	extract.P(`\bfrom\s+([A-Za-z]+(?:\s+[A-Za-z]+)*),\s*([A-Z]{2})\s+to\s+([A-Za-z]+(?:\s+[A-Za-z]+)*),\s*([A-Z]{2})`),
	extract.P(`([A-Za-z]+(?:\s+[A-Za-z]+)*)\s+([A-Z]{2})\s+to\s+([A-Za-z]+(?:\s+[A-Za-z]+)*)\s+([A-Z]{2})`),
	extract.P(`\b(?:pick\s*up|pickup)\s+([A-Za-z]+(?:\s+[A-Za-z]+)*)\s+([A-Z]{2}).*?(?:drop\s*off|delivery?)\s+([A-Za-z]+(?:\s+[A-Za-z]+)*)\s+([A-Z]{2})`),
}

// placePatterns feed route inference when neither keyword lines nor a route
// phrase named both ends.
var placePatterns = []extract.Pattern{
	extract.P(`\b(?:from|origin|pickup)\b[:\s]*([A-Za-z\s]+),\s*([A-Z]{2})`),
	extract.P(`\b(?:to|destination|delivery)\b[:\s]*([A-Za-z\s]+),\s*([A-Z]{2})`),
	extract.P(`([A-Za-z\s]+),\s*([A-Z]{2})(?:\s+[0-9]{5})?`),
}

var (
	pickupKeywords   = []string{"pickup", "pick up", "loading", "load date"}
	deliveryKeywords = []string{"delivery", "deliver", "unload", "delivery date"}

	lineDate = regexp.MustCompile(`(` + datePart + `)`)
)

var datePatterns = []extract.Pattern{
	extract.P(`(?:pickup|pick.?up|loading)[:\s]*(` + datePart + `)`),
	extract.P(`(?:delivery|deliver|unload)[:\s]*(` + datePart + `)`),
	extract.Exact(`(` + datePart + `)`),
	extract.Exact(`(\d{4}[/-]\d{1,2}[/-]\d{1,2})`),
}

var weightPatterns = []extract.Pattern{
	extract.P(`(?:weight|lbs?|pounds?)[:\s]*([0-9,]+)`),
	extract.P(`([0-9,]+)\s*(?:lbs?|pounds?)`),
}

// The commodity value stays on its label's line.
var commodityPatterns = []extract.Pattern{
	extract.P(`(?:commodity|product|freight|cargo)[:\s]*([A-Za-z \t,.-]+)`),
	extract.P(`(?:description|desc)[:\s]*([A-Za-z \t,.-]+)`),
}

func keywordPatterns(words ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, len(words))
	for i, w := range words {
		out[i] = regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(w) + `\b`)
	}
	return out
}

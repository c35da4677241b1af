package cdl

import (
	"freightdocs/internal/extract"
)

const (
	datePart    = `\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`
	streetTypes = `(?:ST|STREET|AVE|AVENUE|RD|ROAD|BLVD|BOULEVARD|DR|DRIVE|LN|LANE)`
)

var namePatterns = []extract.Pattern{
	extract.P(`(?:NAME|Name):\s*([A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+){1,3})`),
	extract.P(`([A-Z][A-Z]+,\s*[A-Z][a-zA-Z]+(?:\s+[A-Z][a-zA-Z]+)*)`),
	// first and last name are joined by the converter
	extract.P(`(?s)(?:First|FIRST):\s*([A-Z][a-zA-Z]+).*?(?:Last|LAST):\s*([A-Z][a-zA-Z]+)`),
	extract.Exact(`(?m)^([A-Z][a-z]+\s+[A-Z][a-z]+(?:\s+[A-Z][a-z]+)?)$`),
}

var licensePatterns = []extract.Pattern{
	extract.P(`(?:DL|LICENSE|LIC|CDL)[:# ]*([A-Z0-9]{7,15})`),
	extract.Exact(`\b([A-Z0-9]{8,12})\b`),
	extract.P(`(?:CA|TX|FL|NY|IL|PA|OH|GA|NC|MI)\s*([A-Z0-9]{7,12})`),
}

var expirationPatterns = []extract.Pattern{
	extract.P(`(?:EXP|EXPIRES|EXPIRATION)\s*(?:DATE)?[:]*\s*(` + datePart + `)`),
	extract.P(`DOB:\s*` + datePart + `.*?(?:EXP|EXPIRES)[:]*\s*(` + datePart + `)`),
	extract.Exact(`\b(\d{1,2}[/-]\d{1,2}[/-]\d{4})\b`),
}

var classPatterns = []extract.Pattern{
	extract.P(`(?:CLASS|CDL CLASS)[:]*\s*([A-C])`),
	extract.P(`(?:CLASS\s*)?([A-C])\s*(?:CDL|CLASS)`),
}

var addressPatterns = []extract.Pattern{
	extract.P(`(?:ADDRESS|ADDR)[:]*\s*([0-9]+\s+[A-Za-z\s]+` + streetTypes + `[^0-9]*?[A-Z]{2}\s+\d{5})`),
	// street line and "ST 12345" are joined by the converter
	extract.P(`(?s)([0-9]+\s+[A-Za-z][A-Za-z\s]+` + streetTypes + `)[^0-9]*?([A-Z]{2}\s+\d{5})`),
	extract.P(`([0-9]{1,5}\s+[A-Za-z][A-Za-z\s]+` + streetTypes + `)(?:[^0-9]|$)`),
}

var statePatterns = []extract.Pattern{
	extract.P(`(?:STATE|ST)[:]*\s*([A-Z]{2})`),
	extract.Exact(`\b([A-Z]{2})\s+\d{5}`),
}

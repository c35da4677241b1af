package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"freightdocs/internal/domain"
)

// unsafeRun matches runs of characters that do not belong in a report name.
var unsafeRun = regexp.MustCompile(`[^a-z0-9-]+`)

const maxNameLen = 64

// SanitizeFilename lower-cases name and turns every run of characters other
// than letters, digits and hyphens into one underscore. The result is capped
// at 64 bytes and never starts or ends with a separator.
func SanitizeFilename(name string) string {
	s := unsafeRun.ReplaceAllString(strings.ToLower(name), "_")
	if len(s) > maxNameLen {
		s = s[:maxNameLen]
	}
	return strings.Trim(s, "_-")
}

// BuildFilename returns {name}_{YYYY-MM-DD}.{csv|xlsx}, falling back to
// "report" when nothing of name survives sanitizing.
func BuildFilename(name string, format domain.ReportFormat, now time.Time) string {
	sanitized := SanitizeFilename(name)
	if sanitized == "" {
		sanitized = "report"
	}
	return fmt.Sprintf("%s_%s.%s", sanitized, now.Format("2006-01-02"), format)
}

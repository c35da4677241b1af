package parser

import (
	"log/slog"
	"time"
)

// Options carries the collaborators shared by every document parser.
type Options struct {
	// Now is the clock used for expiration and date-window checks.
	Now    func() time.Time
	Logger *slog.Logger
}

// WithDefaults fills unset collaborators with the wall clock and the default
// logger.
func (o Options) WithDefaults() Options {
	if o.Now == nil {
		o.Now = func() time.Time { return time.Now().UTC() }
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

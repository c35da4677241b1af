// Package engine wires the document parsers from configuration.
package engine

import (
	"log/slog"
	"time"

	"freightdocs/internal/config"
	"freightdocs/internal/parser"
	"freightdocs/internal/parser/agreement"
	"freightdocs/internal/parser/cdl"
	"freightdocs/internal/parser/coi"
	"freightdocs/internal/parser/invoice"
	"freightdocs/internal/parser/pod"
	"freightdocs/internal/parser/ratecon"
	"freightdocs/internal/validator"
)

// New builds one parser per document type and registers them on a fresh
// Dispatcher. A nil now uses the wall clock.
func New(cfg config.EngineConfig, logger *slog.Logger, now func() time.Time) *parser.Dispatcher {
	base := parser.Options{Now: now, Logger: logger}.WithDefaults()

	return parser.NewDispatcher(
		coi.New(coi.Options{
			Options:          base,
			PolicyRules:      validator.NewPolicyNumberRules(cfg.PolicyPrefixes, cfg.PolicyYearMin, cfg.PolicyYearMax),
			MinCoverageDays:  cfg.MinCoverageDays,
			MinCoverageCents: cfg.MinCoverageCents,
		}),
		cdl.New(cdl.Options{
			Options:           base,
			MinExpirationDays: cfg.LicenseMinExpirationDays,
		}),
		agreement.New(agreement.Options{
			Options:         base,
			SignedThreshold: cfg.AgreementSignedThreshold,
		}),
		ratecon.New(ratecon.Options{
			Options:      base,
			MinRateCents: cfg.RateMinCents,
			MaxRateCents: cfg.RateMaxCents,
		}),
		pod.New(pod.Options{
			Options:            base,
			CompletedThreshold: cfg.PODCompletedThreshold,
		}),
		invoice.New(invoice.Options{
			Options:           base,
			VerifiedThreshold: cfg.InvoiceVerifiedThreshold,
		}),
	)
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"freightdocs/internal/parser/agreement"
	"freightdocs/internal/parser/cdl"
	"freightdocs/internal/parser/coi"
	"freightdocs/internal/parser/invoice"
	"freightdocs/internal/parser/pod"
	"freightdocs/internal/parser/ratecon"
	"freightdocs/internal/validator"
)

// Config holds all application configuration.
type Config struct {
	Log    LogConfig
	Engine EngineConfig
	Batch  BatchConfig
	Report ReportConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// EngineConfig holds the tunable thresholds of the document parsers.
type EngineConfig struct {
	PolicyPrefixes   []string `mapstructure:"policy_prefixes"`
	PolicyYearMin    int      `mapstructure:"policy_year_min"`
	PolicyYearMax    int      `mapstructure:"policy_year_max"`
	MinCoverageDays  int      `mapstructure:"min_coverage_days"`
	MinCoverageCents int64    `mapstructure:"min_coverage_cents"`

	LicenseMinExpirationDays int     `mapstructure:"license_min_expiration_days"`
	AgreementSignedThreshold float64 `mapstructure:"agreement_signed_threshold"`

	RateMinCents int64 `mapstructure:"rate_min_cents"`
	RateMaxCents int64 `mapstructure:"rate_max_cents"`

	PODCompletedThreshold    float64 `mapstructure:"pod_completed_threshold"`
	InvoiceVerifiedThreshold float64 `mapstructure:"invoice_verified_threshold"`
}

// BatchConfig holds batch worker settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
	TimeoutSecs int `mapstructure:"timeout_secs"`
}

// Timeout returns the per-document timeout, zero meaning none.
func (b BatchConfig) Timeout() time.Duration {
	return time.Duration(b.TimeoutSecs) * time.Second
}

// ReportConfig holds batch report settings.
type ReportConfig struct {
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the FREIGHTDOCS_
// prefix and, when file is non-empty, from a YAML config file. Environment
// variables win over the file.
func Load(file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("FREIGHTDOCS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// Engine defaults
	v.SetDefault("engine.policy_prefixes", strings.Join(validator.DefaultPolicyPrefixes, ","))
	v.SetDefault("engine.policy_year_min", validator.DefaultPolicyYearMin)
	v.SetDefault("engine.policy_year_max", validator.DefaultPolicyYearMax)
	v.SetDefault("engine.min_coverage_days", coi.DefaultMinCoverageDays)
	v.SetDefault("engine.min_coverage_cents", coi.DefaultMinCoverageCents)
	v.SetDefault("engine.license_min_expiration_days", cdl.DefaultMinExpirationDays)
	v.SetDefault("engine.agreement_signed_threshold", agreement.DefaultSignedThreshold)
	v.SetDefault("engine.rate_min_cents", ratecon.DefaultMinRateCents)
	v.SetDefault("engine.rate_max_cents", ratecon.DefaultMaxRateCents)
	v.SetDefault("engine.pod_completed_threshold", pod.DefaultCompletedThreshold)
	v.SetDefault("engine.invoice_verified_threshold", invoice.DefaultVerifiedThreshold)

	// Batch defaults
	v.SetDefault("batch.concurrency", 5)
	v.SetDefault("batch.timeout_secs", 30)

	// Report defaults
	v.SetDefault("report.format", "csv")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"log.level":                          "FREIGHTDOCS_LOG_LEVEL",
		"log.format":                         "FREIGHTDOCS_LOG_FORMAT",
		"engine.policy_prefixes":             "FREIGHTDOCS_ENGINE_POLICY_PREFIXES",
		"engine.policy_year_min":             "FREIGHTDOCS_ENGINE_POLICY_YEAR_MIN",
		"engine.policy_year_max":             "FREIGHTDOCS_ENGINE_POLICY_YEAR_MAX",
		"engine.min_coverage_days":           "FREIGHTDOCS_ENGINE_MIN_COVERAGE_DAYS",
		"engine.min_coverage_cents":          "FREIGHTDOCS_ENGINE_MIN_COVERAGE_CENTS",
		"engine.license_min_expiration_days": "FREIGHTDOCS_ENGINE_LICENSE_MIN_EXPIRATION_DAYS",
		"engine.agreement_signed_threshold":  "FREIGHTDOCS_ENGINE_AGREEMENT_SIGNED_THRESHOLD",
		"engine.rate_min_cents":              "FREIGHTDOCS_ENGINE_RATE_MIN_CENTS",
		"engine.rate_max_cents":              "FREIGHTDOCS_ENGINE_RATE_MAX_CENTS",
		"engine.pod_completed_threshold":     "FREIGHTDOCS_ENGINE_POD_COMPLETED_THRESHOLD",
		"engine.invoice_verified_threshold":  "FREIGHTDOCS_ENGINE_INVOICE_VERIFIED_THRESHOLD",
		"batch.concurrency":                  "FREIGHTDOCS_BATCH_CONCURRENCY",
		"batch.timeout_secs":                 "FREIGHTDOCS_BATCH_TIMEOUT_SECS",
		"report.format":                      "FREIGHTDOCS_REPORT_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := &Config{}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.Engine = EngineConfig{
		PolicyPrefixes:           splitList(v.GetStringSlice("engine.policy_prefixes")),
		PolicyYearMin:            v.GetInt("engine.policy_year_min"),
		PolicyYearMax:            v.GetInt("engine.policy_year_max"),
		MinCoverageDays:          v.GetInt("engine.min_coverage_days"),
		MinCoverageCents:         v.GetInt64("engine.min_coverage_cents"),
		LicenseMinExpirationDays: v.GetInt("engine.license_min_expiration_days"),
		AgreementSignedThreshold: v.GetFloat64("engine.agreement_signed_threshold"),
		RateMinCents:             v.GetInt64("engine.rate_min_cents"),
		RateMaxCents:             v.GetInt64("engine.rate_max_cents"),
		PODCompletedThreshold:    v.GetFloat64("engine.pod_completed_threshold"),
		InvoiceVerifiedThreshold: v.GetFloat64("engine.invoice_verified_threshold"),
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
		TimeoutSecs: v.GetInt("batch.timeout_secs"),
	}
	cfg.Report = ReportConfig{
		Format: strings.ToLower(v.GetString("report.format")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// splitList flattens comma-separated entries, as a list may arrive either as a
// YAML sequence or as one comma-separated environment variable.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, p := range strings.Split(item, ",") {
			p = strings.ToUpper(strings.TrimSpace(p))
			if p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (c *Config) validate() error {
	if c.Engine.PolicyYearMin > c.Engine.PolicyYearMax {
		return fmt.Errorf("engine.policy_year_min %d is after engine.policy_year_max %d",
			c.Engine.PolicyYearMin, c.Engine.PolicyYearMax)
	}
	if c.Engine.RateMinCents > c.Engine.RateMaxCents {
		return fmt.Errorf("engine.rate_min_cents %d is above engine.rate_max_cents %d",
			c.Engine.RateMinCents, c.Engine.RateMaxCents)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("batch.concurrency must be at least 1, got %d", c.Batch.Concurrency)
	}
	switch c.Report.Format {
	case "csv", "xlsx":
	default:
		return fmt.Errorf("report.format must be csv or xlsx, got %q", c.Report.Format)
	}
	return nil
}

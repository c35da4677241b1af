package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freightdocs/internal/config"
	"freightdocs/internal/validator"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, validator.DefaultPolicyPrefixes, cfg.Engine.PolicyPrefixes)
	assert.Equal(t, 2020, cfg.Engine.PolicyYearMin)
	assert.Equal(t, 2035, cfg.Engine.PolicyYearMax)
	assert.Equal(t, 30, cfg.Engine.MinCoverageDays)
	assert.Equal(t, int64(100000), cfg.Engine.MinCoverageCents)
	assert.Equal(t, 30, cfg.Engine.LicenseMinExpirationDays)
	assert.Equal(t, int64(5000), cfg.Engine.RateMinCents)
	assert.Equal(t, int64(5000000), cfg.Engine.RateMaxCents)
	assert.InDelta(t, 0.90, cfg.Engine.AgreementSignedThreshold, 1e-9)
	assert.InDelta(t, 0.80, cfg.Engine.PODCompletedThreshold, 1e-9)
	assert.InDelta(t, 0.65, cfg.Engine.InvoiceVerifiedThreshold, 1e-9)
	assert.Equal(t, 5, cfg.Batch.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.Batch.Timeout())
	assert.Equal(t, "csv", cfg.Report.Format)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FREIGHTDOCS_LOG_LEVEL", "debug")
	t.Setenv("FREIGHTDOCS_ENGINE_POLICY_PREFIXES", "abc, xyz")
	t.Setenv("FREIGHTDOCS_ENGINE_RATE_MAX_CENTS", "900000")
	t.Setenv("FREIGHTDOCS_BATCH_CONCURRENCY", "2")
	t.Setenv("FREIGHTDOCS_REPORT_FORMAT", "XLSX")

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"ABC", "XYZ"}, cfg.Engine.PolicyPrefixes)
	assert.Equal(t, int64(900000), cfg.Engine.RateMaxCents)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
	assert.Equal(t, "xlsx", cfg.Report.Format)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freightdocs.yaml")
	content := "log:\n  format: json\n" +
		"engine:\n  policy_prefixes: [TPC, GEICO]\n  min_coverage_days: 60\n" +
		"batch:\n  timeout_secs: 5\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"TPC", "GEICO"}, cfg.Engine.PolicyPrefixes)
	assert.Equal(t, 60, cfg.Engine.MinCoverageDays)
	assert.Equal(t, 5*time.Second, cfg.Batch.Timeout())
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "freightdocs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o600))
	t.Setenv("FREIGHTDOCS_LOG_LEVEL", "error")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.Log.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))

	assert.Error(t, err)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"year window inverted", map[string]string{
			"FREIGHTDOCS_ENGINE_POLICY_YEAR_MIN": "2040",
		}},
		{"rate bounds inverted", map[string]string{
			"FREIGHTDOCS_ENGINE_RATE_MIN_CENTS": "9000000",
		}},
		{"zero concurrency", map[string]string{
			"FREIGHTDOCS_BATCH_CONCURRENCY": "0",
		}},
		{"unknown report format", map[string]string{
			"FREIGHTDOCS_REPORT_FORMAT": "pdf",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load("")
			assert.Error(t, err)
		})
	}
}

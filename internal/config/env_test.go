package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("REPORTNG_LOG_LEVEL", "debug")
	t.Setenv("REPORTNG_LOG_FORMAT", "json")
	t.Setenv("REPORTNG_LOG_OUTPUT", "stdout")
	t.Setenv("REPORTNG_TELEMETRY_ENABLED", "yes")
	t.Setenv("REPORTNG_PROMETHEUS_ENABLED", "1")
	t.Setenv("REPORTNG_PROMETHEUS_TEXTFILE", "/var/lib/node_exporter/reportng.prom")
	t.Setenv("REPORTNG_LANGUAGE", "de")
	t.Setenv("REPORTNG_ASSETS_MODE", "DOWNLOAD")
	t.Setenv("REPORTNG_ASSETS_DIR", "/tmp/assets")
	t.Setenv("REPORTNG_HTTP_TIMEOUT", "12")
	t.Setenv("REPORTNG_OUTPUT", "weekly.html")

	cfg := Default()
	applyEnvOverrides(cfg)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "stdout", cfg.Logging.Output)
	assert.True(t, cfg.Telemetry.Enabled)
	assert.True(t, cfg.Telemetry.Prometheus.Enabled)
	assert.Equal(t, "/var/lib/node_exporter/reportng.prom", cfg.Telemetry.Prometheus.TextfilePath)
	assert.Equal(t, "de", cfg.Report.Language)
	assert.Equal(t, AssetModeDownload, cfg.Assets.Mode)
	assert.Equal(t, "/tmp/assets", cfg.Assets.DownloadDir)
	assert.Equal(t, 12, cfg.HTTP.TimeoutSeconds)
	assert.Equal(t, "weekly.html", cfg.Output.Path)
}

func TestApplyEnvOverrides_InvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("REPORTNG_HTTP_TIMEOUT", "soon")

	cfg := Default()
	applyEnvOverrides(cfg)
	assert.Equal(t, defaultHTTPTimeout, cfg.HTTP.TimeoutSeconds)
}

func TestParseBool(t *testing.T) {
	for _, v := range []string{"true", "TRUE", "1", "yes", " on "} {
		assert.True(t, parseBool(v), v)
	}
	for _, v := range []string{"false", "0", "no", "", "maybe"} {
		assert.False(t, parseBool(v), v)
	}
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reportng.yaml")
	cfg := Default()
	cfg.Report.ReportName = "Written"

	require.NoError(t, Write(path, cfg, false))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "# reportng configuration"))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Written", loaded.Report.ReportName)
	assert.Equal(t, cfg.Assets, loaded.Assets)

	assert.Error(t, Write(path, cfg, false), "existing file is kept")
	assert.NoError(t, Write(path, cfg, true))
}

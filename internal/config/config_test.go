package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "reportng.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, "stderr", cfg.Logging.Output)
	assert.Equal(t, consts.ServiceName, cfg.Telemetry.ServiceName)
	assert.Equal(t, "reportng.prom", cfg.Telemetry.Prometheus.TextfilePath)

	assert.Equal(t, consts.DefaultTheme, cfg.Report.Theme)
	assert.True(t, cfg.Report.HighlightCode)
	assert.Equal(t, AssetModeRemote, cfg.Assets.Mode)
	assert.Equal(t, 30*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, consts.DefaultUserAgent, cfg.HTTP.UserAgent)
	assert.Equal(t, "report.html", cfg.Output.Path)

	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
report:
  name: Nightly
  theme: darkly
  use_asciinema: true
assets:
  mode: download
  download_dir: ./static
  relative_path: static/
http:
  timeout_seconds: 5
output:
  path: out/nightly.html
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format, "unset values keep defaults")
	assert.Equal(t, "Nightly", cfg.Report.ReportName)
	assert.Equal(t, "darkly", cfg.Report.Theme)
	assert.True(t, cfg.Report.UseAsciinema)
	assert.True(t, cfg.Report.ShowSearch, "unset report options keep defaults")
	assert.Equal(t, AssetModeDownload, cfg.Assets.Mode)
	assert.Equal(t, "./static", cfg.Assets.DownloadDir)
	assert.Equal(t, "darkly", cfg.AssetTheme())
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout())
	assert.Equal(t, "out/nightly.html", cfg.Output.Path)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("SCAN_TITLE", "Perimeter")
	path := writeConfig(t, `
report:
  name: ${SCAN_TITLE}
  brand: ${SCAN_BRAND:-acme}
  user_css: "a { content: '$x'; }"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Perimeter", cfg.Report.ReportName)
	assert.Equal(t, "acme", cfg.Report.Brand)
	assert.Equal(t, "a { content: '$x'; }", cfg.Report.UserCSS)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.ErrorCode
	}{
		{"invalid yaml", "report: [", errors.ErrCodeConfigParse},
		{"invalid values", "assets:\n  mode: ftp\n", errors.ErrCodeConfigInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.IsCode(err, tt.code), "got %v", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, errors.IsCode(err, errors.ErrCodeConfigNotFound))
}

func TestLoadOrDefault(t *testing.T) {
	t.Setenv("REPORTNG_THEME", "flatly")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "flatly", cfg.Report.Theme)

	cfg, err = LoadOrDefault(writeConfig(t, "output:\n  path: x.html\n"))
	require.NoError(t, err)
	assert.Equal(t, "x.html", cfg.Output.Path)
}

func TestAssetTheme(t *testing.T) {
	cfg := Default()
	assert.Equal(t, consts.DefaultTheme, cfg.AssetTheme())

	cfg.Assets.Theme = "cyborg"
	assert.Equal(t, "cyborg", cfg.AssetTheme())
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("TEST_VAR", "value")

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"set", "${TEST_VAR}", "value"},
		{"unset", "${TEST_UNSET_VAR}", ""},
		{"default", "${TEST_UNSET_VAR:-fallback}", "fallback"},
		{"set ignores default", "${TEST_VAR:-fallback}", "value"},
		{"no braces", "$TEST_VAR", "$TEST_VAR"},
		{"embedded", "a-${TEST_VAR}-b", "a-value-b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnvVars(tt.input))
		})
	}
}

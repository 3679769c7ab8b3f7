package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// applyEnvOverrides applies REPORTNG_* environment variables on top of the
// file configuration:
//   - REPORTNG_LOG_LEVEL, REPORTNG_LOG_FORMAT, REPORTNG_LOG_OUTPUT, REPORTNG_LOG_FILE
//   - REPORTNG_TELEMETRY_ENABLED, REPORTNG_OTLP_ENABLED, REPORTNG_OTLP_ENDPOINT
//   - REPORTNG_PROMETHEUS_ENABLED, REPORTNG_PROMETHEUS_TEXTFILE
//   - REPORTNG_THEME, REPORTNG_LANGUAGE
//   - REPORTNG_ASSETS_MODE, REPORTNG_ASSETS_DIR
//   - REPORTNG_HTTP_TIMEOUT, REPORTNG_OUTPUT
func applyEnvOverrides(cfg *Config) {
	// Logging overrides
	if v := os.Getenv("REPORTNG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("REPORTNG_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("REPORTNG_LOG_OUTPUT"); v != "" {
		cfg.Logging.Output = v
	}
	if v := os.Getenv("REPORTNG_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	// Telemetry overrides
	if v := os.Getenv("REPORTNG_TELEMETRY_ENABLED"); v != "" {
		cfg.Telemetry.Enabled = parseBool(v)
	}
	if v := os.Getenv("REPORTNG_OTLP_ENABLED"); v != "" {
		cfg.Telemetry.OTLP.Enabled = parseBool(v)
	}
	if v := os.Getenv("REPORTNG_OTLP_ENDPOINT"); v != "" {
		cfg.Telemetry.OTLP.Endpoint = v
	}
	if v := os.Getenv("REPORTNG_PROMETHEUS_ENABLED"); v != "" {
		cfg.Telemetry.Prometheus.Enabled = parseBool(v)
	}
	if v := os.Getenv("REPORTNG_PROMETHEUS_TEXTFILE"); v != "" {
		cfg.Telemetry.Prometheus.TextfilePath = v
	}

	// Report overrides
	if v := os.Getenv("REPORTNG_THEME"); v != "" {
		cfg.Report.Theme = v
	}
	if v := os.Getenv("REPORTNG_LANGUAGE"); v != "" {
		cfg.Report.Language = v
	}

	// Asset overrides
	if v := os.Getenv("REPORTNG_ASSETS_MODE"); v != "" {
		cfg.Assets.Mode = AssetMode(strings.ToLower(v))
	}
	if v := os.Getenv("REPORTNG_ASSETS_DIR"); v != "" {
		cfg.Assets.DownloadDir = v
	}

	if v := os.Getenv("REPORTNG_HTTP_TIMEOUT"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.TimeoutSeconds = secs
		}
	}
	if v := os.Getenv("REPORTNG_OUTPUT"); v != "" {
		cfg.Output.Path = v
	}
}

// parseBool parses a boolean string value
func parseBool(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	return v == "true" || v == "1" || v == "yes" || v == "on"
}

// configHeader is the comment header written above generated configuration
const configHeader = `# reportng configuration
#
# Environment Variable Support:
#   - Use ${VAR_NAME} or ${VAR_NAME:-default} in values to reference environment variables
#   - Or use REPORTNG_* environment variables to override:
#     REPORTNG_LOG_LEVEL, REPORTNG_LOG_FORMAT, REPORTNG_LOG_OUTPUT, REPORTNG_LOG_FILE
#     REPORTNG_THEME, REPORTNG_LANGUAGE
#     REPORTNG_ASSETS_MODE, REPORTNG_ASSETS_DIR
#     REPORTNG_HTTP_TIMEOUT, REPORTNG_OUTPUT
#

`

// Write writes cfg to path with a commented header. An existing file is
// only replaced when overwrite is set.
func Write(path string, cfg *Config, overwrite bool) error {
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("configuration file already exists: %s", path)
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, []byte(configHeader+string(data)), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

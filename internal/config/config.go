// Package config provides configuration management for the application.
// It supports YAML configuration files with environment variable overrides.
package config

import (
	"os"
	"regexp"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/verustcode/reportng/consts"
	"github.com/verustcode/reportng/internal/report"
	"github.com/verustcode/reportng/pkg/errors"
	"github.com/verustcode/reportng/pkg/logger"
	"github.com/verustcode/reportng/pkg/telemetry"
)

// Default configuration values
const (
	defaultConfigPath     = "reportng.yaml"
	defaultOutputPath     = "report.html"
	defaultDownloadDir    = "assets"
	defaultHTTPTimeout    = 30
	defaultOTLPEndpoint   = "localhost:4317"
	defaultPrometheusFile = "reportng.prom"
)

// DefaultPath is the configuration file read when no path is given
const DefaultPath = defaultConfigPath

// AssetMode selects where the report head loads its CSS and JavaScript from
type AssetMode string

// Asset modes
const (
	// AssetModeRemote links to the public CDN URLs
	AssetModeRemote AssetMode = "remote"
	// AssetModeLocal links to files already present under RelativePath
	AssetModeLocal AssetMode = "local"
	// AssetModeDownload downloads the files into DownloadDir before building
	AssetModeDownload AssetMode = "download"
)

// Config represents the complete application configuration
type Config struct {
	Logging   logger.Config    `yaml:"logging"`
	Telemetry telemetry.Config `yaml:"telemetry"`
	// Report holds the default session options. A definition's report
	// section is applied on top.
	Report report.Options `yaml:"report"`
	Assets AssetsConfig   `yaml:"assets"`
	HTTP   HTTPConfig     `yaml:"http"`
	Output OutputConfig   `yaml:"output"`
}

// AssetsConfig holds asset resolution settings
type AssetsConfig struct {
	Mode AssetMode `yaml:"mode"`
	// DownloadDir is where download mode writes files
	DownloadDir string `yaml:"download_dir"`
	// RelativePath is the prefix the report uses to reference local files,
	// relative to where the report is opened
	RelativePath string `yaml:"relative_path"`
	// Theme overrides the bootswatch theme of downloaded stylesheets.
	// Empty uses report.theme.
	Theme string `yaml:"theme"`
}

// HTTPConfig holds outbound request settings
type HTTPConfig struct {
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent"`
}

// Timeout returns the request timeout
func (c HTTPConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// OutputConfig holds output settings
type OutputConfig struct {
	// Path is the report file written when the command line gives none
	Path string `yaml:"path"`
}

// AssetTheme returns the theme applied to downloaded stylesheets
func (c *Config) AssetTheme() string {
	if c.Assets.Theme != "" {
		return c.Assets.Theme
	}
	return c.Report.Theme
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Logging: logger.Config{
			Level:      "info",
			Format:     "text",
			Output:     logger.OutputStderr,
			File:       "",
			MaxSize:    100, // Max 100MB per log file
			MaxAge:     7,   // Retain logs for 7 days
			MaxBackups: 5,   // Keep 5 backup files
			Compress:   false,
		},
		Telemetry: telemetry.Config{
			Enabled:     false,
			ServiceName: consts.ServiceName,
			OTLP: telemetry.OTLPConfig{
				Enabled:  false,
				Endpoint: defaultOTLPEndpoint,
				Insecure: true,
			},
			Prometheus: telemetry.PrometheusConfig{
				Enabled:      false,
				TextfilePath: defaultPrometheusFile,
			},
		},
		Report: report.DefaultOptions(),
		Assets: AssetsConfig{
			Mode:         AssetModeRemote,
			DownloadDir:  defaultDownloadDir,
			RelativePath: defaultDownloadDir + "/",
		},
		HTTP: HTTPConfig{
			TimeoutSeconds: defaultHTTPTimeout,
			UserAgent:      consts.DefaultUserAgent,
		},
		Output: OutputConfig{
			Path: defaultOutputPath,
		},
	}
}

// Load loads configuration from a YAML file with environment variable
// expansion, then applies REPORTNG_* overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.New(errors.ErrCodeConfigNotFound, "configuration file not found: "+path)
		}
		return nil, errors.Wrap(errors.ErrCodeConfigInvalid, "failed to read configuration file", err)
	}

	expanded := expandEnvVars(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeConfigParse, "failed to parse configuration file", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault loads path when it exists and falls back to the defaults
// (with environment overrides) otherwise
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := Default()
		applyEnvOverrides(cfg)
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

var envVarPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// expandEnvVars replaces ${VAR_NAME} patterns with environment variable values
// Only matches ${VAR_NAME} format (not $VAR_NAME) so CSS and JavaScript
// values containing '$' are left alone
func expandEnvVars(content string) string {
	return envVarPattern.ReplaceAllStringFunc(content, func(match string) string {
		// Support default values: ${VAR_NAME:-default}
		parts := strings.SplitN(match[2:len(match)-1], ":-", 2)

		if value := os.Getenv(parts[0]); value != "" {
			return value
		}
		if len(parts) > 1 {
			return parts[1]
		}
		return ""
	})
}

// Package config provides configuration management for the application.
// This file contains validation functions for configuration values.
package config

import (
	"fmt"
	"strings"

	"github.com/verustcode/reportng/internal/palette"
	"github.com/verustcode/reportng/pkg/errors"
)

// validAssetModes lists the accepted assets.mode values
var validAssetModes = []AssetMode{AssetModeRemote, AssetModeLocal, AssetModeDownload}

// Validate checks the configuration and normalizes the report language.
// All problems are reported together.
func (c *Config) Validate() error {
	var problems []string

	if c.Report.NavbarColor != "" && !palette.IsValid(c.Report.NavbarColor) {
		problems = append(problems, fmt.Sprintf("report.navbar_color %q is not one of %s",
			c.Report.NavbarColor, strings.Join(palette.Accepted(), ", ")))
	}

	if lang, err := ParseLanguage(c.Report.Language); err != nil {
		problems = append(problems, fmt.Sprintf("report.language: %v", err))
	} else {
		c.Report.Language = lang.String()
	}

	if !isValidAssetMode(c.Assets.Mode) {
		problems = append(problems, fmt.Sprintf("assets.mode %q must be one of remote, local, download", c.Assets.Mode))
	}
	if c.Assets.Mode == AssetModeDownload && c.Assets.DownloadDir == "" {
		problems = append(problems, "assets.download_dir is required in download mode")
	}

	if c.HTTP.TimeoutSeconds <= 0 {
		problems = append(problems, fmt.Sprintf("http.timeout_seconds must be positive, got %d", c.HTTP.TimeoutSeconds))
	}

	if c.Output.Path == "" {
		problems = append(problems, "output.path must not be empty")
	}

	if len(problems) > 0 {
		return errors.New(errors.ErrCodeConfigInvalid,
			"invalid configuration: "+strings.Join(problems, "; ")).WithDetails(problems)
	}
	return nil
}

func isValidAssetMode(m AssetMode) bool {
	for _, v := range validAssetModes {
		if v == m {
			return true
		}
	}
	return false
}

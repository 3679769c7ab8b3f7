// Package config provides configuration management for the application.
package config

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// LanguageAuto selects the language from the environment locale
const LanguageAuto = "auto"

// LanguageConfig wraps the document language tag
type LanguageConfig struct {
	tag language.Tag
}

// ParseLanguage parses and validates a BCP 47 language tag.
// An empty tag defaults to English and "auto" detects the system language.
func ParseLanguage(langTag string) (*LanguageConfig, error) {
	switch strings.TrimSpace(langTag) {
	case "":
		return &LanguageConfig{tag: language.English}, nil
	case LanguageAuto:
		return &LanguageConfig{tag: detectSystemLanguage()}, nil
	}

	// Locale style tags such as en_US are accepted
	tag, err := language.Parse(strings.ReplaceAll(langTag, "_", "-"))
	if err != nil {
		return nil, fmt.Errorf("invalid language tag %q: %w", langTag, err)
	}
	return &LanguageConfig{tag: tag}, nil
}

// Tag returns the underlying language tag
func (lc *LanguageConfig) Tag() language.Tag {
	return lc.tag
}

// String returns the language tag as a string (e.g., "en", "zh-CN")
func (lc *LanguageConfig) String() string {
	return lc.tag.String()
}

// DisplayName returns the English name of the language (e.g., "English",
// "Brazilian Portuguese")
func (lc *LanguageConfig) DisplayName() string {
	if name := display.English.Tags().Name(lc.tag); name != "" {
		return name
	}
	return lc.tag.String()
}

// detectSystemLanguage attempts to detect the system language from environment variables
func detectSystemLanguage() language.Tag {
	// Check common environment variables for language setting
	envVars := []string{"LC_ALL", "LC_MESSAGES", "LANG", "LANGUAGE"}

	for _, envVar := range envVars {
		if val := os.Getenv(envVar); val != "" {
			// Parse the locale string (e.g., "en_US.UTF-8" -> "en-US")
			langPart := strings.Split(val, ".")[0]
			langPart = strings.Replace(langPart, "_", "-", 1)

			if tag, err := language.Parse(langPart); err == nil && langPart != "C" && langPart != "POSIX" {
				return tag
			}
		}
	}

	// Default to English if no system language detected
	return language.English
}

package check

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/fatih/color"
	"go.uber.org/zap"

	"github.com/verustcode/reportng/internal/assets"
	"github.com/verustcode/reportng/internal/config"
	"github.com/verustcode/reportng/internal/definition"
	"github.com/verustcode/reportng/internal/report"
)

// ValidationResult represents the result of validating one file
type ValidationResult struct {
	Path       string
	Valid      bool
	Error      error
	Warnings   []string
	BlockCount int
}

// validateAll validates the configuration, every definition and the
// local asset files, printing as it goes
func (c *Checker) validateAll() {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	cfgResult, cfg := c.validateConfig()
	c.report.AddValidationResult(cfgResult)
	if !cfgResult.Valid {
		red.Fprintf(c.out, "  ✗ %s: %v\n", cfgResult.Path, cfgResult.Error)
		return
	}
	green.Fprintf(c.out, "  ✓ %s is valid\n", cfgResult.Path)

	for _, r := range c.validateDefinitions() {
		c.report.AddValidationResult(r)
		if r.Valid {
			green.Fprintf(c.out, "  ✓ %s (%d blocks)\n", r.Path, r.BlockCount)
		} else {
			red.Fprintf(c.out, "  ✗ %s: %v\n", r.Path, r.Error)
		}
	}

	assetResult := c.checkAssets(cfg)
	c.report.AddValidationResult(assetResult)
	switch {
	case !assetResult.Valid:
		red.Fprintf(c.out, "  ✗ %s: %v\n", assetResult.Path, assetResult.Error)
	case len(assetResult.Warnings) > 0:
		yellow.Fprintf(c.out, "  ⚠ %s: %d files will be downloaded\n", assetResult.Path, len(assetResult.Warnings))
	default:
		green.Fprintf(c.out, "  ✓ assets (%s mode)\n", cfg.Assets.Mode)
	}
}

// validateConfig loads the configuration, falling back to defaults when
// the file is absent
func (c *Checker) validateConfig() (ValidationResult, *config.Config) {
	result := ValidationResult{Path: c.configPath}

	cfg, err := config.LoadOrDefault(c.configPath)
	if err != nil {
		result.Error = err
		return result, nil
	}
	result.Valid = true
	return result, cfg
}

// validateDefinitions parses every YAML file in the definitions directory
// and dry builds it, so bad colors and disabled features are reported
// before a real build.
func (c *Checker) validateDefinitions() []ValidationResult {
	entries, err := os.ReadDir(c.definitionsDir)
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	defaults := config.Default().Report
	if cfg, err := config.LoadOrDefault(c.configPath); err == nil {
		defaults = cfg.Report
	}
	loader := definition.NewLoader(defaults)

	results := make([]ValidationResult, 0, len(names))
	for _, name := range names {
		path := filepath.Join(c.definitionsDir, name)
		results = append(results, validateDefinition(loader, path))
	}
	return results
}

func validateDefinition(loader *definition.Loader, path string) ValidationResult {
	result := ValidationResult{Path: path}

	doc, err := loader.Load(path)
	if err != nil {
		result.Error = err
		return result
	}
	result.BlockCount = len(doc.Blocks)

	for _, b := range doc.Blocks {
		if b.Kind == report.KindAsciinema {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("%s: asciinema link at line %d is resolved at build time", path, b.Line))
		}
	}

	_, err = definition.Build(context.Background(), doc,
		report.WithResolver(offlineResolver{}),
		report.WithLogger(zap.NewNop()),
	)
	if err != nil {
		result.Error = err
		return result
	}

	result.Valid = true
	return result
}

// offlineResolver keeps asciinema links as they are during a dry build
type offlineResolver struct{}

func (offlineResolver) FinalURL(_ context.Context, url string) (string, error) {
	return url, nil
}

// checkAssets verifies the asset files a local or download mode build
// links to. Missing files fail local mode; in download mode they are
// fetched at build time and only reported as warnings.
func (c *Checker) checkAssets(cfg *config.Config) ValidationResult {
	result := ValidationResult{Path: "assets", Valid: true}
	if cfg == nil || cfg.Assets.Mode == config.AssetModeRemote || cfg.Assets.Mode == "" {
		return result
	}
	result.Path = cfg.Assets.DownloadDir

	table := assets.Default()
	table[assets.BootswatchTheme] = assets.ThemeURL(table[assets.BootswatchTheme], cfg.AssetTheme())

	var missing []string
	for _, name := range table.Names() {
		file := assets.FileName(table[name])
		if !fileExists(filepath.Join(cfg.Assets.DownloadDir, file)) {
			missing = append(missing, file)
		}
	}
	if len(missing) == 0 {
		return result
	}

	if cfg.Assets.Mode == config.AssetModeLocal {
		result.Valid = false
		result.Error = fmt.Errorf("%d asset files missing: %v", len(missing), missing)
		return result
	}
	for _, f := range missing {
		result.Warnings = append(result.Warnings, fmt.Sprintf("asset %s not downloaded yet", f))
	}
	return result
}

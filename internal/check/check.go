// Package check provides environment checking and initialization.
// It verifies the configuration file, the report definitions and the
// local asset files a build depends on, and can create missing files
// from the embedded templates.
package check

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// CheckResult represents the result of a non-interactive environment check
type CheckResult struct {
	// Success indicates whether all required checks passed
	Success bool
	// Errors contains problems that make a build fail
	Errors []string
	// Warnings contains non-critical issues that don't block a build
	Warnings []string
	// Suggestions contains helpful tips for fixing issues
	Suggestions []string
}

// ConfirmFunc asks the user a yes/no question
type ConfirmFunc func(title string) (bool, error)

// Checker handles environment checking and initialization
type Checker struct {
	// configPath is the application configuration file
	configPath string
	// definitionsDir holds the report definitions to validate
	definitionsDir string
	// report collects check results for final output
	report *Report
	// confirm prompts before files are created
	confirm ConfirmFunc
	out     io.Writer
}

// Option configures a Checker
type Option func(*Checker)

// WithConfirm replaces the interactive prompt
func WithConfirm(fn ConfirmFunc) Option {
	return func(c *Checker) {
		c.confirm = fn
	}
}

// WithOutput sets where check output is written, default stdout
func WithOutput(w io.Writer) Option {
	return func(c *Checker) {
		c.out = w
	}
}

// NewChecker creates a new environment checker
func NewChecker(configPath, definitionsDir string, opts ...Option) *Checker {
	c := &Checker{
		configPath:     configPath,
		definitionsDir: definitionsDir,
		confirm:        confirmCreate,
		out:            os.Stdout,
	}
	for _, o := range opts {
		o(c)
	}
	c.report = NewReport(c.out)
	return c
}

// Run executes the full interactive environment check
func (c *Checker) Run() error {
	c.printHeader()

	fmt.Fprintln(c.out)
	c.printSection("Checking configuration files")
	if err := c.checkFiles(); err != nil {
		return fmt.Errorf("file check failed: %w", err)
	}

	fmt.Fprintln(c.out)
	c.printSection("Checking report definitions")
	if err := c.checkDefinitionsDir(); err != nil {
		return fmt.Errorf("definitions check failed: %w", err)
	}

	fmt.Fprintln(c.out)
	c.printSection("Validating configuration and definitions")
	c.validateAll()

	fmt.Fprintln(c.out)
	c.report.PrintDetailedReport()

	if c.report.calculateSummary().HasErrors {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// printHeader prints the welcome header
func (c *Checker) printHeader() {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("12")).
		MarginBottom(1)

	fmt.Fprintln(c.out, titleStyle.Render("reportng environment check"))
}

// printSection prints a section header
func (c *Checker) printSection(title string) {
	style := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))
	fmt.Fprintln(c.out, style.Render(title+"..."))
}

// ConfigPath returns the configuration file checked
func (c *Checker) ConfigPath() string {
	return c.configPath
}

// DefinitionsDir returns the definitions directory checked
func (c *Checker) DefinitionsDir() string {
	return c.definitionsDir
}

// Report returns the collected results
func (c *Checker) Report() *Report {
	return c.report
}

// confirmCreate asks user to confirm file creation
func confirmCreate(title string) (bool, error) {
	var confirm bool
	err := huh.NewConfirm().
		Title(title).
		Affirmative("Yes").
		Negative("No").
		Value(&confirm).
		WithTheme(huh.ThemeCharm()).
		Run()
	if err != nil {
		return false, err
	}
	return confirm, nil
}

// fileExists checks if a file exists
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ensureDir creates the parent directory of path if it doesn't exist
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

// RunNonInteractive performs a non-interactive environment check.
// Unlike Run(), this method does not prompt for user input and does not create files.
// A missing configuration file is a warning since defaults apply.
func (c *Checker) RunNonInteractive() *CheckResult {
	result := &CheckResult{
		Success:     true,
		Errors:      make([]string, 0),
		Warnings:    make([]string, 0),
		Suggestions: make([]string, 0),
	}

	if !fileExists(c.configPath) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Configuration not found, defaults apply: %s", c.configPath))
		result.Suggestions = append(result.Suggestions,
			"Run 'reportng check --interactive' to create configuration files")
	}

	cfgResult, cfg := c.validateConfig()
	if !cfgResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors,
			fmt.Sprintf("Invalid %s: %v", cfgResult.Path, cfgResult.Error))
		return result
	}

	defResults := c.validateDefinitions()
	if len(defResults) == 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("No report definitions found in %s", c.definitionsDir))
	}
	for _, r := range defResults {
		if !r.Valid {
			result.Success = false
			result.Errors = append(result.Errors, fmt.Sprintf("Invalid %s: %v", r.Path, r.Error))
		}
		result.Warnings = append(result.Warnings, r.Warnings...)
	}

	assetResult := c.checkAssets(cfg)
	if !assetResult.Valid {
		result.Success = false
		result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", assetResult.Path, assetResult.Error))
		result.Suggestions = append(result.Suggestions,
			"Run 'reportng assets download' to fetch the asset files")
	}
	result.Warnings = append(result.Warnings, assetResult.Warnings...)

	return result
}

// PrintCheckResult prints the check result in a formatted way
func PrintCheckResult(w io.Writer, result *CheckResult) {
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)

	if len(result.Errors) > 0 {
		fmt.Fprintln(w)
		red.Fprintln(w, "[ERROR] Environment check failed")
		fmt.Fprintln(w)
		for _, err := range result.Errors {
			red.Fprintf(w, "  ✗ %s\n", err)
		}
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(w)
		yellow.Fprintln(w, "[WARNING] Configuration warnings:")
		fmt.Fprintln(w)
		for _, warn := range result.Warnings {
			yellow.Fprintf(w, "  ⚠ %s\n", warn)
		}
	}

	if len(result.Suggestions) > 0 {
		cyan.Fprintln(w, "\nTo fix these issues:")
		for _, suggestion := range result.Suggestions {
			fmt.Fprintf(w, "  → %s\n", suggestion)
		}
	}

	if result.Success && len(result.Errors) == 0 {
		color.New(color.FgGreen, color.Bold).Fprintln(w, "✓ Environment check passed")
	}
	fmt.Fprintln(w)
}

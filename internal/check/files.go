package check

import (
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/verustcode/reportng/internal/configfiles"
)

// FileCheckResult represents the result of a file check
type FileCheckResult struct {
	Path        string
	Exists      bool
	Created     bool
	Description string
	Error       error
}

// checkFiles checks the configuration file and offers to create it
func (c *Checker) checkFiles() error {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if fileExists(c.configPath) {
		green.Fprintf(c.out, "  ✓ %s exists\n", c.configPath)
		c.report.AddFileResult(FileCheckResult{Path: c.configPath, Exists: true, Description: "configuration"})
		return nil
	}

	yellow.Fprintf(c.out, "  ⚠ %s not found\n", c.configPath)
	result := FileCheckResult{Path: c.configPath, Description: "configuration"}
	created, err := c.createConfig()
	if err != nil {
		result.Error = err
		c.report.AddFileResult(result)
		return err
	}
	result.Exists, result.Created = created, created
	c.report.AddFileResult(result)
	return nil
}

// createConfig writes the example configuration after confirmation
func (c *Checker) createConfig() (bool, error) {
	ok, err := c.confirm(fmt.Sprintf("Create %s from example?", c.configPath))
	if err != nil {
		return false, fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		color.New(color.FgHiBlack).Fprintf(c.out, "  - Skipped creating %s\n", c.configPath)
		return false, nil
	}

	content, err := configfiles.GetConfigExample()
	if err != nil {
		return false, fmt.Errorf("failed to read embedded config example: %w", err)
	}
	if err := ensureDir(c.configPath); err != nil {
		return false, err
	}
	if err := os.WriteFile(c.configPath, content, 0644); err != nil {
		return false, fmt.Errorf("failed to write %s: %w", c.configPath, err)
	}

	color.New(color.FgGreen).Fprintf(c.out, "  ✓ Created %s\n", c.configPath)
	return true, nil
}

// checkDefinitionsDir checks for report definitions and offers to
// install the bundled examples when the directory has none
func (c *Checker) checkDefinitionsDir() error {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)

	if configfiles.DefinitionsExist(c.definitionsDir) {
		green.Fprintf(c.out, "  ✓ %s contains report definitions\n", c.definitionsDir)
		c.report.AddFileResult(FileCheckResult{Path: c.definitionsDir, Exists: true, Description: "report definitions"})
		return nil
	}

	yellow.Fprintf(c.out, "  ⚠ No report definitions in %s\n", c.definitionsDir)
	ok, err := c.confirm(fmt.Sprintf("Install example definitions into %s?", c.definitionsDir))
	if err != nil {
		return fmt.Errorf("confirmation failed: %w", err)
	}
	if !ok {
		color.New(color.FgHiBlack).Fprintln(c.out, "  - Skipped installing example definitions")
		c.report.AddFileResult(FileCheckResult{Path: c.definitionsDir, Description: "report definitions"})
		return nil
	}

	n, err := configfiles.InitDefinitions(c.definitionsDir)
	if err != nil {
		return fmt.Errorf("failed to install definitions: %w", err)
	}
	green.Fprintf(c.out, "  ✓ Installed %d example definitions\n", n)
	c.report.AddFileResult(FileCheckResult{Path: c.definitionsDir, Exists: true, Created: n > 0, Description: "report definitions"})
	return nil
}

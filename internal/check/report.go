package check

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Report collects and displays check results
type Report struct {
	FileResults       []FileCheckResult
	ValidationResults []ValidationResult
	out               io.Writer
}

// NewReport creates a new report that prints to w
func NewReport(w io.Writer) *Report {
	return &Report{
		FileResults:       make([]FileCheckResult, 0),
		ValidationResults: make([]ValidationResult, 0),
		out:               w,
	}
}

// AddFileResult adds a file check result
func (r *Report) AddFileResult(result FileCheckResult) {
	r.FileResults = append(r.FileResults, result)
}

// AddValidationResult adds a validation result
func (r *Report) AddValidationResult(result ValidationResult) {
	r.ValidationResults = append(r.ValidationResults, result)
}

// Print prints the final summary report
func (r *Report) Print() {
	r.printSeparator()
	r.printSummary(r.calculateSummary())
}

// ReportSummary holds the summary statistics
type ReportSummary struct {
	TotalFiles       int
	FilesExist       int
	FilesCreated     int
	FilesMissing     int
	TotalValidations int
	ValidationsValid int
	ValidationErrors int
	TotalBlocks      int
	HasErrors        bool
	HasWarnings      bool
}

// calculateSummary calculates the summary from all results
func (r *Report) calculateSummary() ReportSummary {
	summary := ReportSummary{}

	summary.TotalFiles = len(r.FileResults)
	for _, result := range r.FileResults {
		if result.Exists || result.Created {
			if result.Created {
				summary.FilesCreated++
			}
			summary.FilesExist++
		} else {
			summary.FilesMissing++
		}
		if result.Error != nil {
			summary.HasErrors = true
		}
	}

	summary.TotalValidations = len(r.ValidationResults)
	for _, result := range r.ValidationResults {
		if result.Valid {
			summary.ValidationsValid++
			summary.TotalBlocks += result.BlockCount
		} else {
			summary.ValidationErrors++
			if result.Error != nil {
				summary.HasErrors = true
			}
		}
		if len(result.Warnings) > 0 {
			summary.HasWarnings = true
		}
	}

	return summary
}

func (r *Report) printSeparator() {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))
	fmt.Fprintln(r.out, style.Render(strings.Repeat("─", 50)))
}

func (r *Report) printSummary(summary ReportSummary) {
	green := color.New(color.FgGreen, color.Bold)
	yellow := color.New(color.FgYellow, color.Bold)
	red := color.New(color.FgRed, color.Bold)

	switch {
	case summary.HasErrors:
		red.Fprint(r.out, "✗ Check completed")
	case summary.HasWarnings || summary.FilesMissing > 0:
		yellow.Fprint(r.out, "⚠ Check completed")
	default:
		green.Fprint(r.out, "✓ Check completed")
	}

	var details []string
	if summary.FilesCreated > 0 {
		details = append(details, fmt.Sprintf("%d file(s) created", summary.FilesCreated))
	}
	if summary.FilesMissing > 0 {
		details = append(details, fmt.Sprintf("%d file(s) missing", summary.FilesMissing))
	}
	if summary.ValidationErrors > 0 {
		details = append(details, fmt.Sprintf("%d validation error(s)", summary.ValidationErrors))
	}

	if len(details) > 0 {
		fmt.Fprintf(r.out, " (%s)\n", strings.Join(details, ", "))
	} else {
		fmt.Fprintln(r.out, " - All checks passed")
	}
}

// PrintDetailedReport prints a detailed report with all sections
func (r *Report) PrintDetailedReport() {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("12")).
		Padding(0, 2).
		Width(50).
		Align(lipgloss.Center)

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("15"))

	fmt.Fprintln(r.out, boxStyle.Render(titleStyle.Render("reportng Environment Check Report")))
	fmt.Fprintln(r.out)

	r.printFileSection()
	fmt.Fprintln(r.out)

	r.printValidationSection()
	fmt.Fprintln(r.out)

	r.Print()
}

func (r *Report) printFileSection() {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))

	fmt.Fprintln(r.out, sectionStyle.Render("📁 File Check"))

	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	red := color.New(color.FgRed)

	for _, result := range r.FileResults {
		switch {
		case result.Error != nil:
			red.Fprintf(r.out, "  ✗ %s: %v\n", result.Path, result.Error)
		case result.Created:
			green.Fprintf(r.out, "  ✓ %s (created)\n", result.Path)
		case result.Exists:
			green.Fprintf(r.out, "  ✓ %s\n", result.Path)
		default:
			yellow.Fprintf(r.out, "  ⚠ %s does not exist\n", result.Path)
		}
	}
}

func (r *Report) printValidationSection() {
	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("14"))

	fmt.Fprintln(r.out, sectionStyle.Render("📝 Configuration and Definitions"))

	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	yellow := color.New(color.FgYellow)

	for _, result := range r.ValidationResults {
		if result.Valid {
			if result.BlockCount > 0 {
				green.Fprintf(r.out, "  ✓ %s (%d blocks)\n", result.Path, result.BlockCount)
			} else {
				green.Fprintf(r.out, "  ✓ %s\n", result.Path)
			}
		} else if result.Error != nil {
			red.Fprintf(r.out, "  ✗ %s: %v\n", result.Path, result.Error)
		}

		for _, warning := range result.Warnings {
			yellow.Fprintf(r.out, "    └─ %s\n", warning)
		}
	}
}

package check

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestCalculateSummary(t *testing.T) {
	r := NewReport(&bytes.Buffer{})
	r.AddFileResult(FileCheckResult{Path: "reportng.yaml", Exists: true})
	r.AddFileResult(FileCheckResult{Path: "definitions", Exists: true, Created: true})
	r.AddFileResult(FileCheckResult{Path: "other"})
	r.AddValidationResult(ValidationResult{Path: "a.yaml", Valid: true, BlockCount: 3})
	r.AddValidationResult(ValidationResult{Path: "b.yaml", Valid: true, BlockCount: 2, Warnings: []string{"w"}})
	r.AddValidationResult(ValidationResult{Path: "c.yaml", Error: errors.New("bad")})

	s := r.calculateSummary()

	if s.TotalFiles != 3 || s.FilesExist != 2 || s.FilesCreated != 1 || s.FilesMissing != 1 {
		t.Errorf("Unexpected file counts: %+v", s)
	}
	if s.TotalValidations != 3 || s.ValidationsValid != 2 || s.ValidationErrors != 1 {
		t.Errorf("Unexpected validation counts: %+v", s)
	}
	if s.TotalBlocks != 5 {
		t.Errorf("TotalBlocks = %d, want 5", s.TotalBlocks)
	}
	if !s.HasErrors || !s.HasWarnings {
		t.Error("Expected both errors and warnings")
	}
}

func TestPrintDetailedReport(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	r.AddFileResult(FileCheckResult{Path: "reportng.yaml", Exists: true, Created: true})
	r.AddValidationResult(ValidationResult{Path: "defs/a.yaml", Valid: true, BlockCount: 4})

	r.PrintDetailedReport()

	out := buf.String()
	for _, want := range []string{"reportng.yaml (created)", "defs/a.yaml (4 blocks)", "file(s) created"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestPrint_AllPassed(t *testing.T) {
	var buf bytes.Buffer
	r := NewReport(&buf)
	r.AddValidationResult(ValidationResult{Path: "reportng.yaml", Valid: true})

	r.Print()

	if !strings.Contains(buf.String(), "All checks passed") {
		t.Errorf("Expected all checks passed, got %q", buf.String())
	}
}

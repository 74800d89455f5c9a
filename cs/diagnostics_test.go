package cs

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// TestSeverity verifies the Severity String() method.
func TestSeverity(t *testing.T) {
	tests := []struct {
		severity Severity
		expected string
	}{
		{SeverityCritical, "CRITICAL"},
		{SeverityMajor, "MAJOR"},
		{SeverityMinor, "MINOR"},
		{Severity(999), "UNKNOWN"},
	}

	for _, tt := range tests {
		result := tt.severity.String()
		if result != tt.expected {
			t.Errorf("Severity(%d).String() = %q; want %q", tt.severity, result, tt.expected)
		}
	}
}

// TestDiagnostic verifies Diagnostic formatting.
func TestDiagnostic(t *testing.T) {
	tests := []struct {
		name     string
		diag     Diagnostic
		expected string
	}{
		{
			name: "Diagnostic with index",
			diag: Diagnostic{
				Stage:    StageDecode,
				Command:  "callsubr",
				Issue:    "subroutine index 107 out of range",
				Severity: SeverityMinor,
				Index:    12,
			},
			expected: "[MINOR] decode/callsubr at 12: subroutine index 107 out of range",
		},
		{
			name: "Diagnostic without index",
			diag: Diagnostic{
				Stage:    StageCompose,
				Command:  "seac",
				Issue:    "accent glyph missing",
				Severity: SeverityMajor,
				Index:    -1,
			},
			expected: "[MAJOR] compose/seac: accent glyph missing",
		},
		{
			name: "Diagnostic without command",
			diag: Diagnostic{
				Stage:    StageInterpret,
				Issue:    "cannot interpret",
				Severity: SeverityCritical,
				Index:    0,
			},
			expected: "[CRITICAL] interpret at 0: cannot interpret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.diag.Error()
			if result != tt.expected {
				t.Errorf("Diagnostic.Error() = %q; want %q", result, tt.expected)
			}
		})
	}
}

// TestDiagnosticsCollector verifies collecting and querying issues.
func TestDiagnosticsCollector(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	d := &Diagnostics{}
	d.add(StageDecode, "hintmask", "truncated hint mask", SeverityMajor, 3)
	d.add(StageInterpret, "", "cannot interpret", SeverityCritical, 0)
	d.add(StageInterpret, "closepath", "no open subpath to close", SeverityMinor, 7)

	if d.Len() != 3 {
		t.Fatalf("Len() = %d; want 3", d.Len())
	}
	if !d.HasCritical() {
		t.Error("HasCritical() = false; want true")
	}
	if n := len(d.Critical()); n != 1 {
		t.Errorf("len(Critical()) = %d; want 1", n)
	}
	if d.Issues()[2].Command != "closepath" {
		t.Errorf("Issues()[2].Command = %q; want closepath", d.Issues()[2].Command)
	}
	d.Reset()
	if d.Len() != 0 || d.HasCritical() {
		t.Errorf("expected empty collector after Reset()")
	}
}

// TestNilDiagnostics verifies that a nil collector drops issues.
func TestNilDiagnostics(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "font.charstring")
	defer teardown()
	//
	var d *Diagnostics
	d.add(StageDecode, "", "dropped", SeverityMinor, 0)
	if d.Len() != 0 || d.Issues() != nil || d.HasCritical() {
		t.Errorf("nil Diagnostics should stay empty")
	}
	d.Reset()
}

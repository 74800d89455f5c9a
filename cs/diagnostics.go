package cs

import (
	"errors"
	"fmt"
)

// Errors returned by the Decoder. All other problems with a glyph program are
// recovered from and reported as Diagnostics.
var (
	// ErrSubrDepth is returned if subroutine calls nest deeper than allowed,
	// which is almost always caused by cyclic subroutines.
	ErrSubrDepth = errors.New("subroutine calls nested too deeply")
	// ErrProgramTooLarge is returned if a glyph program expands to more
	// instructions than allowed after inlining its subroutines.
	ErrProgramTooLarge = errors.New("glyph program too large")
)

var errNotANumber = errors.New("byte does not start an operand")

// Severity represents the severity level of a glyph program issue.
type Severity int

const (
	// SeverityCritical indicates an issue which makes the glyph outline unusable.
	SeverityCritical Severity = iota
	// SeverityMajor indicates an issue which probably leaves the outline incomplete.
	SeverityMajor
	// SeverityMinor indicates an issue which can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the severity.
func (s Severity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// Stage tells which part of the engine encountered an issue.
type Stage uint8

const (
	// StageDecode issues are structural: truncated code, bad subroutine calls, etc.
	StageDecode Stage = iota
	// StageInterpret issues are inconsistencies detected while executing.
	StageInterpret
	// StageCompose issues are failures of composite glyphs (seac).
	StageCompose
)

func (s Stage) String() string {
	switch s {
	case StageDecode:
		return "decode"
	case StageInterpret:
		return "interpret"
	case StageCompose:
		return "compose"
	}
	return "unknown"
}

// Diagnostic describes a recoverable issue with a glyph program.
type Diagnostic struct {
	Stage    Stage    // part of the engine reporting the issue
	Command  string   // name of the operator involved, if any
	Issue    string   // human-readable description of the issue
	Severity Severity // severity level of the issue
	Index    int      // byte offset (decode) or instruction index (interpret); -1 if unknown
}

// Error implements the error interface.
func (d Diagnostic) Error() string {
	cmd := ""
	if d.Command != "" {
		cmd = "/" + d.Command
	}
	if d.Index >= 0 {
		return fmt.Sprintf("[%s] %s%s at %d: %s", d.Severity, d.Stage, cmd, d.Index, d.Issue)
	}
	return fmt.Sprintf("[%s] %s%s: %s", d.Severity, d.Stage, cmd, d.Issue)
}

// Diagnostics accumulates issues found while decoding and interpreting a
// glyph program. A nil *Diagnostics is valid and drops every issue after
// tracing it.
//
// Diagnostics is not safe for concurrent use; use one collector per glyph.
type Diagnostics struct {
	issues []Diagnostic
}

// add records an issue and writes it to the trace.
func (d *Diagnostics) add(stage Stage, cmd string, issue string, severity Severity, index int) {
	diag := Diagnostic{
		Stage:    stage,
		Command:  cmd,
		Issue:    issue,
		Severity: severity,
		Index:    index,
	}
	if severity == SeverityMinor {
		tracer().Infof("%s", diag.Error())
	} else {
		tracer().Errorf("%s", diag.Error())
	}
	if d != nil {
		d.issues = append(d.issues, diag)
	}
}

// Issues returns all recorded issues in order of appearance.
func (d *Diagnostics) Issues() []Diagnostic {
	if d == nil {
		return nil
	}
	return d.issues
}

// Len returns the number of recorded issues.
func (d *Diagnostics) Len() int {
	if d == nil {
		return 0
	}
	return len(d.issues)
}

// Critical returns all issues with critical severity.
func (d *Diagnostics) Critical() []Diagnostic {
	critical := make([]Diagnostic, 0)
	for _, diag := range d.Issues() {
		if diag.Severity == SeverityCritical {
			critical = append(critical, diag)
		}
	}
	return critical
}

// HasCritical returns true if any critical issue has been recorded.
func (d *Diagnostics) HasCritical() bool {
	for _, diag := range d.Issues() {
		if diag.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// Reset drops all recorded issues.
func (d *Diagnostics) Reset() {
	if d != nil {
		d.issues = d.issues[:0]
	}
}

package errors

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
)

// ErrorLevel represents the severity of a diagnostic
type ErrorLevel string

const (
	Error   ErrorLevel = "error"
	Warning ErrorLevel = "warning"
	Note    ErrorLevel = "note"
	Help    ErrorLevel = "help"
)

// Position locates a diagnostic inside an analyzed source file.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}

// AnalysisError is a recoverable, reportable diagnostic: malformed input,
// an unresolvable reference, a bad configuration value. Internal invariant
// violations are not AnalysisErrors; those panic (see UnreachableError).
type AnalysisError struct {
	Level       ErrorLevel
	Code        string       // Error code like E0300
	Message     string       // Primary message
	Position    Position     // Location in source
	Length      int          // Length of the problematic region
	Suggestions []Suggestion // Suggested fixes
	Notes       []string     // Additional context notes
	HelpText    string       // Help text for the error
}

func (e AnalysisError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s[%s]: %s", e.Level, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Level, e.Message)
}

// Suggestion represents a suggested fix
type Suggestion struct {
	Message     string // Description of the suggestion
	Replacement string // Suggested replacement text (optional)
}

// ErrorReporter renders diagnostics against the source they refer to,
// with the line/caret layout used by the CLI.
type ErrorReporter struct {
	filename string
	lines    []string
}

// NewErrorReporter creates a reporter for a single source file.
func NewErrorReporter(filename, source string) *ErrorReporter {
	return &ErrorReporter{
		filename: filename,
		lines:    strings.Split(source, "\n"),
	}
}

// FormatError renders one diagnostic: a colored header, the offending
// line with one context line on each side, a caret marker, then any
// suggestions, notes and help text.
func (er *ErrorReporter) FormatError(err AnalysisError) string {
	var out strings.Builder

	levelColor := levelColor(err.Level)
	bold := color.New(color.Bold).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	if err.Code != "" {
		fmt.Fprintf(&out, "%s[%s]: %s\n", levelColor(string(err.Level)), err.Code, err.Message)
	} else {
		fmt.Fprintf(&out, "%s: %s\n", levelColor(string(err.Level)), err.Message)
	}

	gutter := lineNumberWidth(err.Position.Line)
	indent := strings.Repeat(" ", gutter)
	fmt.Fprintf(&out, "%s %s %s:%d:%d\n", indent, dim("-->"), er.filename, err.Position.Line, err.Position.Column)
	fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))

	er.writeContext(&out, err.Position.Line-1, gutter, dim)
	if line, ok := er.line(err.Position.Line); ok {
		fmt.Fprintf(&out, "%s %s %s\n", bold(fmt.Sprintf("%*d", gutter, err.Position.Line)), dim("│"), line)
		fmt.Fprintf(&out, "%s %s %s\n", indent, dim("│"), marker(err.Position.Column, err.Length, err.Level))
	}
	er.writeContext(&out, err.Position.Line+1, gutter, dim)

	if len(err.Suggestions) > 0 {
		cyan := color.New(color.FgCyan).SprintFunc()
		fmt.Fprintf(&out, "%s %s\n", indent, dim("│"))
		for i, s := range err.Suggestions {
			if i == 0 {
				fmt.Fprintf(&out, "%s %s %s: %s\n", indent, cyan("help"), cyan("try"), s.Message)
			} else {
				fmt.Fprintf(&out, "%s      %s\n", indent, s.Message)
			}
			if s.Replacement != "" {
				fmt.Fprintf(&out, "%s %s %s\n", indent, cyan("│"), cyan(s.Replacement))
			}
		}
	}

	blue := color.New(color.FgBlue).SprintFunc()
	for _, note := range err.Notes {
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), blue("note:"), note)
	}
	if err.HelpText != "" {
		green := color.New(color.FgGreen).SprintFunc()
		fmt.Fprintf(&out, "%s %s %s %s\n", indent, dim("│"), green("help:"), err.HelpText)
	}

	out.WriteString("\n")
	return out.String()
}

// line returns the 1-based source line if it exists.
func (er *ErrorReporter) line(n int) (string, bool) {
	if n < 1 || n > len(er.lines) {
		return "", false
	}
	return er.lines[n-1], true
}

func (er *ErrorReporter) writeContext(out *strings.Builder, n, gutter int, dim func(...interface{}) string) {
	if line, ok := er.line(n); ok {
		fmt.Fprintf(out, "%s %s %s\n", dim(fmt.Sprintf("%*d", gutter, n)), dim("│"), line)
	}
}

// levelColor returns the color function for an error level
func levelColor(level ErrorLevel) func(...interface{}) string {
	switch level {
	case Warning:
		return color.New(color.FgYellow, color.Bold).SprintFunc()
	case Note:
		return color.New(color.FgBlue, color.Bold).SprintFunc()
	case Help:
		return color.New(color.FgGreen, color.Bold).SprintFunc()
	default:
		return color.New(color.FgRed, color.Bold).SprintFunc()
	}
}

// marker creates the caret underline for the offending region
func marker(column, length int, level ErrorLevel) string {
	if length <= 0 {
		length = 1
	}
	markerColor := levelColor(level)
	spaces := strings.Repeat(" ", max(0, column-1))
	return spaces + markerColor(strings.Repeat("^", length))
}

// lineNumberWidth calculates the gutter width needed for line numbers
func lineNumberWidth(line int) int {
	width := len(fmt.Sprintf("%d", line))
	if width < 3 {
		width = 3 // minimum width for visual alignment
	}
	return width
}

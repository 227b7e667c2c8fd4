// Package diagnostics carries the records the analyzer reports to users and
// renders them for terminals. Formatting is stable: `file:line:col:
// severity[CODE]: message`, colorized only when writing to a tty.
package diagnostics

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/pyrite/internal/location"
)

type Severity int

const (
	Error Severity = iota
	Warning
	Info
)

func (s Severity) String() string {
	switch s {
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Info:
		return "info"
	}
	return "unknown"
}

// Diagnostic is a single analyzer finding anchored to a source location.
type Diagnostic struct {
	Code     string
	Severity Severity
	Loc      location.Location
	Message  string
}

// New builds a diagnostic with a formatted message.
func New(code string, severity Severity, loc location.Location, format string, args ...interface{}) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: severity,
		Loc:      loc,
		Message:  fmt.Sprintf(format, args...),
	}
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: %s[%s]: %s", d.Loc, d.Severity, d.Code, d.Message)
}

var severityColors = map[Severity]*color.Color{
	Error:   color.New(color.FgRed, color.Bold),
	Warning: color.New(color.FgYellow),
	Info:    color.New(color.FgCyan),
}

// Render writes diagnostics one per line. When w is a terminal the severity
// is colorized; otherwise the output is plain so it stays grep-friendly.
func Render(w io.Writer, diagnostics []Diagnostic) {
	colorize := false
	if f, ok := w.(*os.File); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	for _, diagnostic := range diagnostics {
		if colorize {
			severity := severityColors[diagnostic.Severity].Sprintf("%s[%s]", diagnostic.Severity, diagnostic.Code)
			fmt.Fprintf(w, "%s: %s: %s\n", diagnostic.Loc, severity, diagnostic.Message)
			continue
		}
		fmt.Fprintln(w, diagnostic)
	}
}

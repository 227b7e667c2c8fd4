package diagnostics

import (
	"bytes"
	"strings"
	"testing"

	"github.com/funvibe/pyrite/internal/location"
)

func TestDiagnosticString(t *testing.T) {
	diagnostic := New("AST001", Error, location.New("mod.py", 3, 4, 3, 10), "unexpected %s", "statement")
	want := "mod.py:3:4: error[AST001]: unexpected statement"
	if got := diagnostic.String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRenderPlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	Render(&buf, []Diagnostic{
		New("AST001", Warning, location.New("mod.py", 1, 0, 1, 5), "suspicious"),
		New("AST002", Info, location.New("mod.py", 2, 0, 2, 5), "note"),
	})
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("rendered %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "warning[AST001]") {
		t.Errorf("line = %q, want severity and code", lines[0])
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Errorf("non-terminal output must not contain color escapes")
	}
}

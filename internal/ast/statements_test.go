package ast

import (
	"testing"
)

func TestTerminates(t *testing.T) {
	tests := []struct {
		name string
		body []Statement
		want bool
	}{
		{"empty", nil, false},
		{"return", []Statement{&Return{Loc: testLoc(1)}}, true},
		{"raise", []Statement{&Pass{}, &Raise{Loc: testLoc(2), Expression: ident("e")}}, true},
		{"continue", []Statement{&Continue{Loc: testLoc(1)}}, true},
		{"plain statements", []Statement{&Pass{}, &ExpressionStatement{Expression: ident("x")}}, false},
		{
			// Shallow by design: both branches returning is not enough.
			"nested returns ignored",
			[]Statement{&If{
				Test:   ident("flag"),
				Body:   []Statement{&Return{}},
				OrElse: []Statement{&Return{}},
			}},
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Terminates(tt.body); got != tt.want {
				t.Errorf("Terminates() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAssume(t *testing.T) {
	test := NewIdent(testLoc(7), "cond")
	statement := Assume(test)

	assertion, ok := statement.(*Assert)
	if !ok {
		t.Fatalf("Assume() = %T, want *Assert", statement)
	}
	if assertion.GetLoc() != test.GetLoc() {
		t.Errorf("location = %v, want %v", assertion.GetLoc(), test.GetLoc())
	}
	if !ExpressionEqual(assertion.Test, test) {
		t.Errorf("test = %s, want %s", assertion.Test, test)
	}
	if assertion.Message != nil {
		t.Errorf("message = %s, want nil", assertion.Message)
	}
}

func TestExtractDocstring(t *testing.T) {
	docstring := func(value string) Statement {
		return &ExpressionStatement{Loc: testLoc(1), Expression: strLit(value)}
	}

	tests := []struct {
		name       string
		statements []Statement
		want       string
		wantNone   bool
	}{
		{"empty body", nil, "", true},
		{"non-string first", []Statement{&Pass{}}, "", true},
		{"string not first", []Statement{&Pass{}, docstring("late")}, "", true},
		{"single line", []Statement{docstring("Summary.")}, "Summary.", false},
		{
			"continuation unindented",
			[]Statement{docstring("Summary.\n    Detail one.\n      Detail two.\n")},
			"Summary.\nDetail one.\n  Detail two.\n",
			false,
		},
		{
			"blank lines ignored for indent",
			[]Statement{docstring("Head.\n\n  Tail.")},
			"Head.\n\nTail.",
			false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractDocstring(tt.statements)
			if tt.wantNone {
				if got != nil {
					t.Fatalf("ExtractDocstring() = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("ExtractDocstring() = nil, want %q", tt.want)
			}
			if *got != tt.want {
				t.Errorf("ExtractDocstring() = %q, want %q", *got, tt.want)
			}
		})
	}
}

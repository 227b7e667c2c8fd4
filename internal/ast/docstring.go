package ast

import (
	"strings"
)

// ExtractDocstring returns the docstring of a statement list: the leading
// expression statement holding a string literal, if present. Continuation
// lines are unindented to their minimum common indent; the first line is
// kept as written.
func ExtractDocstring(statements []Statement) *string {
	if len(statements) == 0 {
		return nil
	}
	expression, ok := statements[0].(*ExpressionStatement)
	if !ok {
		return nil
	}
	literal, ok := AsString(expression.Expression)
	if !ok {
		return nil
	}
	docstring := unindent(literal.Value)
	return &docstring
}

func unindent(docstring string) string {
	lines := strings.Split(docstring, "\n")
	if len(lines) < 2 {
		return docstring
	}
	indent := -1
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		width := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || width < indent {
			indent = width
		}
	}
	if indent <= 0 {
		return docstring
	}
	trimmed := make([]string, len(lines))
	trimmed[0] = lines[0]
	for i, line := range lines[1:] {
		if len(line) >= indent {
			trimmed[i+1] = line[indent:]
		} else {
			trimmed[i+1] = strings.TrimLeft(line, " \t")
		}
	}
	return strings.Join(trimmed, "\n")
}

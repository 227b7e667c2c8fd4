// Package source models compilation units: the parsed statement stream of
// one file, with an identity callers use to key derived caches. Modules are
// immutable once built; derivations over them are pure.
package source

import (
	"github.com/google/uuid"

	"github.com/funvibe/pyrite/internal/ast"
)

// Module is one parsed compilation unit.
type Module struct {
	ID         uuid.UUID
	Path       string
	Statements []ast.Statement
}

// NewModule builds a module with a fresh identity.
func NewModule(path string, statements []ast.Statement) *Module {
	return &Module{
		ID:         uuid.New(),
		Path:       path,
		Statements: statements,
	}
}

// Toplevel wraps the module's statements in the synthetic toplevel define
// the type checker analyzes module-level code through.
func (m *Module) Toplevel() *ast.Define {
	return ast.CreateToplevel(m.Statements)
}

// Docstring returns the module docstring, if any.
func (m *Module) Docstring() *string {
	return ast.ExtractDocstring(m.Statements)
}

// Classes returns the top-level class definitions, unwrapping stubs.
func (m *Module) Classes() []*ast.Class {
	var classes []*ast.Class
	for _, statement := range m.Statements {
		switch s := statement.(type) {
		case *ast.Class:
			classes = append(classes, s)
		case *ast.Stub:
			if class, ok := s.Stubbed.(*ast.Class); ok {
				classes = append(classes, class)
			}
		}
	}
	return classes
}

// ApplyStubs overlays a stub module onto a definition module. Classes merge
// by name via the class-level stub merge; toplevel defines with a matching
// name and arity take the stub's signature; stub declarations with no match
// are carried over ahead of the definition statements. The result is a new
// module with a fresh identity.
func ApplyStubs(definition, stub *Module) *Module {
	type stubEntry struct {
		statement ast.Statement
		class     *ast.Class
		define    *ast.Define
		assign    *ast.Assign
		matched   bool
	}
	var entries []*stubEntry
	for _, statement := range stub.Statements {
		entry := &stubEntry{statement: statement}
		inner := statement
		if wrapped, ok := statement.(*ast.Stub); ok {
			inner = wrapped.Stubbed
		}
		switch s := inner.(type) {
		case *ast.Class:
			entry.class = s
		case *ast.Define:
			entry.define = s
		case *ast.Assign:
			entry.assign = s
		default:
			continue
		}
		entries = append(entries, entry)
	}

	updated := make([]ast.Statement, 0, len(definition.Statements))
	for _, statement := range definition.Statements {
		switch s := statement.(type) {
		case *ast.Class:
			var match *stubEntry
			for _, entry := range entries {
				if !entry.matched && entry.class != nil && ast.ExpressionEqual(entry.class.Name, s.Name) {
					match = entry
					break
				}
			}
			if match == nil {
				updated = append(updated, statement)
				continue
			}
			match.matched = true
			updated = append(updated, s.Update(match.class))
		case *ast.Define:
			var match *stubEntry
			for _, entry := range entries {
				if !entry.matched && entry.define != nil &&
					ast.ExpressionEqual(entry.define.Name, s.Name) &&
					len(entry.define.Parameters) == len(s.Parameters) {
					match = entry
					break
				}
			}
			if match == nil {
				updated = append(updated, statement)
				continue
			}
			match.matched = true
			replacement := *s
			replacement.Parameters = match.define.Parameters
			replacement.ReturnAnnotation = match.define.ReturnAnnotation
			updated = append(updated, &replacement)
		case *ast.Assign:
			var match *stubEntry
			for _, entry := range entries {
				if !entry.matched && entry.assign != nil && ast.ExpressionEqual(entry.assign.Target, s.Target) {
					match = entry
					break
				}
			}
			if match == nil {
				updated = append(updated, statement)
				continue
			}
			match.matched = true
			replacement := *s
			replacement.Annotation = match.assign.Annotation
			updated = append(updated, &replacement)
		default:
			updated = append(updated, statement)
		}
	}

	var statements []ast.Statement
	for _, entry := range entries {
		if !entry.matched {
			statements = append(statements, entry.statement)
		}
	}
	statements = append(statements, updated...)
	return NewModule(definition.Path, statements)
}

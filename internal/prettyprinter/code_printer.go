package prettyprinter

import (
	"bytes"
	"strings"

	"github.com/funvibe/pyrite/internal/ast"
)

// --- Code Printer (Output looks like source code) ---

// CodePrinter renders statements back into canonical surface syntax. The
// output is deterministic: two spaces per nesting level, one statement per
// line, stable ordering everywhere. Diagnostics and golden tests depend on
// byte-for-byte stability.
type CodePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewCodePrinter() *CodePrinter {
	return &CodePrinter{}
}

// Print renders a single statement.
func Print(statement ast.Statement) string {
	p := NewCodePrinter()
	p.PrintStatement(statement)
	return p.String()
}

// PrintStatements renders a statement list.
func PrintStatements(statements []ast.Statement) string {
	p := NewCodePrinter()
	for _, statement := range statements {
		p.PrintStatement(statement)
	}
	return p.String()
}

func (p *CodePrinter) String() string {
	return p.buf.String()
}

func (p *CodePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *CodePrinter) writeln() {
	p.buf.WriteString("\n")
}

func (p *CodePrinter) writeIndent() {
	for i := 0; i < p.indent; i++ {
		p.buf.WriteString("  ")
	}
}

func (p *CodePrinter) line(s string) {
	p.writeIndent()
	p.write(s)
	p.writeln()
}

// printBlock prints a `header:` line followed by the indented body. An empty
// body renders as `pass` so the output stays parseable.
func (p *CodePrinter) printBlock(header string, body []ast.Statement) {
	p.line(header + ":")
	p.indent++
	if len(body) == 0 {
		p.line("pass")
	} else {
		for _, statement := range body {
			p.PrintStatement(statement)
		}
	}
	p.indent--
}

func (p *CodePrinter) printDecorators(decorators []ast.Expression) {
	for _, decorator := range decorators {
		p.line("@" + p.expr(decorator))
	}
}

func (p *CodePrinter) expr(expression ast.Expression) string {
	if expression == nil {
		return "<???>"
	}
	return expression.String()
}

// PrintStatement renders one statement at the current indentation level.
func (p *CodePrinter) PrintStatement(statement ast.Statement) {
	switch s := statement.(type) {
	case *ast.Assign:
		p.printAssign(s)
	case *ast.Assert:
		text := "assert " + p.expr(s.Test)
		if s.Message != nil {
			text += ", " + p.expr(s.Message)
		}
		p.line(text)
	case *ast.Break:
		p.line("break")
	case *ast.Continue:
		p.line("continue")
	case *ast.Pass:
		p.line("pass")
	case *ast.Class:
		p.printClass(s)
	case *ast.Define:
		p.printDefine(s)
	case *ast.Delete:
		p.line("del " + p.expr(s.Target))
	case *ast.ExpressionStatement:
		p.line(p.expr(s.Expression))
	case *ast.Raise:
		if s.Expression == nil {
			p.line("raise")
		} else {
			p.line("raise " + p.expr(s.Expression))
		}
	case *ast.Return:
		if s.Expression == nil {
			p.line("return")
		} else {
			p.line("return " + p.expr(s.Expression))
		}
	case *ast.Yield:
		p.line("yield " + p.expr(s.Expression))
	case *ast.YieldFrom:
		p.line("yield from " + p.expr(s.Expression))
	case *ast.For:
		p.printFor(s)
	case *ast.With:
		p.printWith(s)
	case *ast.Try:
		p.printTry(s)
	case *ast.While:
		p.printBlock("while "+p.expr(s.Test), s.Body)
		if len(s.OrElse) > 0 {
			p.printBlock("else", s.OrElse)
		}
	case *ast.If:
		p.printBlock("if "+p.expr(s.Test), s.Body)
		if len(s.OrElse) > 0 {
			p.printBlock("else", s.OrElse)
		}
	case *ast.Import:
		p.printImport(s)
	case *ast.Global:
		p.line("global " + strings.Join(s.Names, ", "))
	case *ast.Nonlocal:
		p.line("nonlocal " + strings.Join(s.Names, ", "))
	case *ast.Stub:
		p.PrintStatement(s.Stubbed)
	default:
		p.line("<???>")
	}
}

func (p *CodePrinter) printAssign(s *ast.Assign) {
	target := p.expr(s.Target)
	if s.Parent != nil {
		target = s.Parent.String() + "." + target
	}
	if s.Value == nil {
		if s.Annotation != nil {
			p.line(target + ": " + p.expr(s.Annotation))
		} else {
			p.line(target)
		}
		return
	}
	text := target + " = " + p.expr(s.Value)
	if s.Annotation != nil {
		text += "  # " + p.expr(s.Annotation)
	}
	p.line(text)
}

func (p *CodePrinter) printClass(s *ast.Class) {
	p.printDecorators(s.Decorators)
	header := "class " + s.Name.String()
	if len(s.Bases) > 0 {
		parts := make([]string, len(s.Bases))
		for i, base := range s.Bases {
			if base.Name != "" {
				parts[i] = base.Name + "=" + p.expr(base.Value)
			} else {
				parts[i] = p.expr(base.Value)
			}
		}
		header += "(" + strings.Join(parts, ", ") + ")"
	}
	p.printBlock(header, s.Body)
}

func (p *CodePrinter) printDefine(s *ast.Define) {
	p.printDecorators(s.Decorators)
	header := "def "
	if s.Async {
		header = "async def "
	}
	header += s.Name.String()
	parts := make([]string, len(s.Parameters))
	for i, parameter := range s.Parameters {
		text := parameter.Name
		if parameter.Annotation != nil {
			text += ": " + p.expr(parameter.Annotation)
		}
		if parameter.Value != nil {
			text += " = " + p.expr(parameter.Value)
		}
		parts[i] = text
	}
	header += "(" + strings.Join(parts, ", ") + ")"
	if s.ReturnAnnotation != nil {
		header += " -> " + p.expr(s.ReturnAnnotation)
	}
	p.printBlock(header, s.Body)
}

func (p *CodePrinter) printFor(s *ast.For) {
	header := "for "
	if s.Async {
		header = "async for "
	}
	header += p.expr(s.Target) + " in " + p.expr(s.Iterator)
	p.printBlock(header, s.Body)
	if len(s.OrElse) > 0 {
		p.printBlock("else", s.OrElse)
	}
}

func (p *CodePrinter) printWith(s *ast.With) {
	header := "with "
	if s.Async {
		header = "async with "
	}
	parts := make([]string, len(s.Items))
	for i, item := range s.Items {
		text := p.expr(item.Expression)
		if item.Alias != nil {
			text += " as " + p.expr(item.Alias)
		}
		parts[i] = text
	}
	p.printBlock(header+strings.Join(parts, ", "), s.Body)
}

func (p *CodePrinter) printTry(s *ast.Try) {
	p.printBlock("try", s.Body)
	for _, handler := range s.Handlers {
		header := "except"
		if handler.Kind != nil {
			header += " " + p.expr(handler.Kind)
		}
		if handler.Name != "" {
			header += " as " + handler.Name
		}
		p.printBlock(header, handler.Body)
	}
	if len(s.OrElse) > 0 {
		p.printBlock("else", s.OrElse)
	}
	if len(s.Finally) > 0 {
		p.printBlock("finally", s.Finally)
	}
}

func (p *CodePrinter) printImport(s *ast.Import) {
	parts := make([]string, len(s.Imports))
	for i, entry := range s.Imports {
		text := entry.Name.String()
		if entry.Alias != "" {
			text += " as " + entry.Alias
		}
		parts[i] = text
	}
	if s.From != nil {
		p.line("from " + s.From.String() + " import " + strings.Join(parts, ", "))
		return
	}
	p.line("import " + strings.Join(parts, ", "))
}

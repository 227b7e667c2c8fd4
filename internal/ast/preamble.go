package ast

import (
	"github.com/funvibe/pyrite/internal/config"
)

// asChain returns the expression as an access chain, lifting anything else
// into a single expression segment so protocol calls can be attached.
func asChain(expression Expression) *Access {
	if access, ok := AsAccess(expression); ok {
		return access
	}
	return &Access{
		Loc:      expression.GetLoc(),
		Segments: []Segment{ExpressionSegment{Value: expression}},
	}
}

// Preamble desugars the loop header into the assignment the type checker
// analyzes in place of the implicit iteration protocol:
//
//	target = iterator.__iter__().__next__()
//
// or the __aiter__/__anext__ pair for async loops.
func (f *For) Preamble() []Statement {
	iterName, nextName := config.IterMethodName, config.NextMethodName
	if f.Async {
		iterName, nextName = config.AsyncIterMethodName, config.AsyncNextMethodName
	}
	value := asChain(f.Iterator).Append(
		IdentSegment{Name: iterName},
		CallSegment{},
		IdentSegment{Name: nextName},
		CallSegment{},
	)
	value.Loc = f.Loc
	return []Statement{
		&Assign{Loc: f.Loc, Target: f.Target, Value: value},
	}
}

// Preamble desugars each context-manager item. Items bound with `as` become
// assignments of the __enter__ (or awaited __aenter__) result; unbound items
// surface as plain expression statements so they are still type-checked.
func (w *With) Preamble() []Statement {
	var preamble []Statement
	for _, item := range w.Items {
		if item.Alias == nil {
			preamble = append(preamble, &ExpressionStatement{Loc: w.Loc, Expression: item.Expression})
			continue
		}
		var value Expression
		if w.Async {
			enter := asChain(item.Expression).Append(
				IdentSegment{Name: config.AsyncEnterMethod},
				CallSegment{},
			)
			enter.Loc = w.Loc
			value = &Await{Loc: w.Loc, Value: enter}
		} else {
			enter := asChain(item.Expression).Append(
				IdentSegment{Name: config.EnterMethodName},
				CallSegment{},
			)
			enter.Loc = w.Loc
			value = enter
		}
		preamble = append(preamble, &Assign{Loc: w.Loc, Target: item.Alias, Value: value})
	}
	return preamble
}

// Preamble desugars the exception bindings of each handler. A bound handler
// becomes an annotated assignment of the exception name; a tuple of kinds
// unifies into typing.Union; an unbound kind surfaces as a bare expression
// statement so it is still type-checked.
func (t *Try) Preamble() []Statement {
	var preamble []Statement
	for _, handler := range t.Handlers {
		switch {
		case handler.Kind == nil:
		case handler.Name == "":
			preamble = append(preamble, &ExpressionStatement{Loc: handler.Loc, Expression: handler.Kind})
		default:
			annotation := handler.Kind
			if tuple, ok := AsTuple(handler.Kind); ok {
				annotation = TypingUnion(handler.Loc, tuple.Elements)
			}
			preamble = append(preamble, &Assign{
				Loc:        handler.Loc,
				Target:     NewIdent(handler.Loc, handler.Name),
				Annotation: annotation,
			})
		}
	}
	return preamble
}

package ast

import (
	"github.com/funvibe/pyrite/internal/config"
	"github.com/funvibe/pyrite/internal/location"
)

// HasDecorator returns true iff some decorator of the define is an access
// chain whose leading identifier segments equal the dot-separated components
// of name. Trailing call segments are allowed, anything else is not.
func (d *Define) HasDecorator(name string) bool {
	for _, decorator := range d.Decorators {
		if access, ok := AsAccess(decorator); ok && access.MatchesDotted(name) {
			return true
		}
	}
	return false
}

// IsCoroutine reports whether the define carries the asyncio coroutine
// decorator.
func (d *Define) IsCoroutine() bool {
	return d.HasDecorator(config.CoroutineDecorator)
}

// IsAbstractMethod reports whether the define is marked abstract.
func (d *Define) IsAbstractMethod() bool {
	for _, name := range config.AbstractMethodDecorators {
		if d.HasDecorator(name) {
			return true
		}
	}
	return false
}

// IsOverloadedMethod reports whether the define is an overload signature.
func (d *Define) IsOverloadedMethod() bool {
	return d.HasDecorator(config.OverloadDecorator) || d.HasDecorator(config.TypingOverloadDecorator)
}

// IsStaticMethod reports whether the define is a staticmethod.
func (d *Define) IsStaticMethod() bool {
	return d.HasDecorator(config.StaticMethodDecorator)
}

// IsClassMethod reports whether the define carries one of the recognized
// classmethod decorators.
func (d *Define) IsClassMethod(names *config.RecognizedNames) bool {
	for _, name := range names.ClassmethodDecorators {
		if d.HasDecorator(name) {
			return true
		}
	}
	return false
}

// IsPropertySetter reports whether the define carries a `<name>.setter`
// decorator.
func (d *Define) IsPropertySetter() bool {
	name := d.SimpleName()
	if name == "" {
		return false
	}
	return d.HasDecorator(name + config.SetterSuffix)
}

// IsMethod reports whether the define is a method: it has a parent class and
// retains a single-segment name relative to it.
func (d *Define) IsMethod() bool {
	if d.Parent == nil {
		return false
	}
	_, ok := d.Name.SimpleName()
	return ok
}

// IsConstructor reports whether the define initializes instances of its
// parent class. In test mode the xUnit-style setup methods count too.
func (d *Define) IsConstructor(inTest bool) bool {
	if d.Parent == nil {
		return false
	}
	name := d.SimpleName()
	if name == config.ConstructorName {
		return true
	}
	if inTest {
		for _, testName := range config.TestConstructorNames {
			if name == testName {
				return true
			}
		}
	}
	return false
}

// IsToplevel reports whether the define wraps a module's top-level code.
func (d *Define) IsToplevel() bool {
	return d.SimpleName() == ToplevelName
}

// IsUntyped reports whether the define has no return annotation.
func (d *Define) IsUntyped() bool {
	return d.ReturnAnnotation == nil
}

// IsGeneratedConstructor reports whether the define is a synthesized
// constructor.
func (d *Define) IsGeneratedConstructor() bool {
	return d.Generated && d.SimpleName() == config.ConstructorName
}

// Dump reports whether the body carries the type-environment dump marker.
func (d *Define) Dump() bool {
	return d.hasMarkerCall(config.DumpMarkerName)
}

// DumpCFG reports whether the body carries the control-flow-graph dump marker.
func (d *Define) DumpCFG() bool {
	return d.hasMarkerCall(config.DumpCFGMarkerName)
}

func (d *Define) hasMarkerCall(marker string) bool {
	for _, statement := range d.Body {
		expression, ok := statement.(*ExpressionStatement)
		if !ok {
			continue
		}
		access, ok := AsAccess(expression.Expression)
		if !ok || len(access.Segments) != 2 {
			continue
		}
		ident, ok := access.Segments[0].(IdentSegment)
		if !ok || ident.Name != marker {
			continue
		}
		if _, ok := access.Segments[1].(CallSegment); ok {
			return true
		}
	}
	return false
}

// selfName returns the identifier instance attributes are assigned through:
// the first parameter's name, or the conventional `self` for a define with
// no parameters.
func (d *Define) selfName() string {
	if len(d.Parameters) > 0 {
		return d.Parameters[0].Name
	}
	return config.SelfName
}

// CreateToplevel wraps a module's statements in the synthetic toplevel
// define.
func CreateToplevel(statements []Statement) *Define {
	loc := location.Location{}
	if len(statements) > 0 {
		loc = statements[0].GetLoc()
	}
	return &Define{
		Loc:  loc,
		Name: NewIdent(loc, ToplevelName),
		Body: statements,
	}
}

// CreateGeneratedConstructor synthesizes the default constructor for a class
// without an explicit one: a single self parameter and a `pass` body. The
// class docstring is carried over so attribute tooling sees it.
func CreateGeneratedConstructor(class *Class) *Define {
	loc := class.GetLoc()
	return &Define{
		Loc:        loc,
		Name:       NewIdent(loc, config.ConstructorName),
		Parameters: []*Parameter{{Loc: loc, Name: config.SelfName}},
		Body:       []Statement{&Pass{Loc: loc}},
		Docstring:  class.Docstring,
		Generated:  true,
		Parent:     class.Name,
	}
}

// implicitOccurrence is one `self.<field> = ...` sighting during constructor
// expansion.
type implicitOccurrence struct {
	loc        location.Location
	annotation Expression
	value      Expression
}

// ImplicitAttributes returns the instance attributes the constructor installs
// via `self.<field> = ...`, keyed by field name. The body is first expanded:
// nested control-flow blocks are inlined, and a top-level `self.m(...)` call
// whose target is a define in the class's own body is replaced by that
// define's statements. The inlining is single-level: calls inside an inlined
// body are not followed, so cycles cannot occur.
//
// When an assignment carries no annotation but its right-hand side is a bare
// parameter, the parameter's declared annotation is used instead. Divergent
// annotations across occurrences of the same field unify into typing.Union.
func (d *Define) ImplicitAttributes(definition *Class) *AttributeMap {
	parameterAnnotations := make(map[string]Expression)
	for _, parameter := range d.Parameters {
		if parameter.Annotation != nil {
			parameterAnnotations[parameter.Name] = parameter.Annotation
		}
	}

	self := d.selfName()
	expanded := expandConstructorBody(d.Body, definition, self, true)

	var fields []string
	occurrences := make(map[string][]implicitOccurrence)
	record := func(field string, occurrence implicitOccurrence) {
		if _, ok := occurrences[field]; !ok {
			fields = append(fields, field)
		}
		occurrences[field] = append(occurrences[field], occurrence)
	}

	for _, statement := range expanded {
		assign, ok := statement.(*Assign)
		if !ok {
			continue
		}
		annotation := assign.Annotation
		if annotation == nil {
			if value, ok := AsAccess(assign.Value); ok {
				if name, ok := value.SimpleName(); ok {
					annotation = parameterAnnotations[name]
				}
			}
		}
		targets := []Expression{assign.Target}
		if tuple, ok := AsTuple(assign.Target); ok {
			targets = tuple.Elements
		}
		for _, target := range targets {
			field, ok := selfField(target, self)
			if !ok {
				continue
			}
			record(field, implicitOccurrence{
				loc:        assign.GetLoc(),
				annotation: annotation,
				value:      assign.Value,
			})
		}
	}

	attributes := NewAttributeMap()
	for _, field := range fields {
		sightings := occurrences[field]
		first := sightings[0]
		var annotations []Expression
		for _, sighting := range sightings {
			if sighting.annotation != nil {
				annotations = append(annotations, sighting.annotation)
			}
		}
		var annotation Expression
		if len(annotations) > 0 {
			annotation = TypingUnion(first.loc, annotations)
		}
		attributes.Set(field, &Attribute{
			Loc:        first.loc,
			Target:     NewIdent(first.loc, field),
			Annotation: annotation,
			Value:      first.value,
			Primitive:  true,
		})
	}
	return attributes
}

// selfField matches `<self>.<field>` targets: exactly two identifier
// segments with the leading one equal to the receiver name.
func selfField(target Expression, self string) (string, bool) {
	access, ok := AsAccess(target)
	if !ok || len(access.Segments) != 2 {
		return "", false
	}
	receiver, ok := access.Segments[0].(IdentSegment)
	if !ok || receiver.Name != self {
		return "", false
	}
	field, ok := access.Segments[1].(IdentSegment)
	if !ok {
		return "", false
	}
	return field.Name, true
}

// expandConstructorBody flattens a constructor body for attribute discovery.
// Control-flow blocks contribute all their branches; exception handlers do
// not. Sibling-method calls are inlined once when inlineCalls is set.
func expandConstructorBody(body []Statement, definition *Class, self string, inlineCalls bool) []Statement {
	var expanded []Statement
	for _, statement := range body {
		switch s := statement.(type) {
		case *If:
			expanded = append(expanded, expandConstructorBody(s.Body, definition, self, inlineCalls)...)
			expanded = append(expanded, expandConstructorBody(s.OrElse, definition, self, inlineCalls)...)
		case *For:
			expanded = append(expanded, expandConstructorBody(s.Body, definition, self, inlineCalls)...)
			expanded = append(expanded, expandConstructorBody(s.OrElse, definition, self, inlineCalls)...)
		case *While:
			expanded = append(expanded, expandConstructorBody(s.Body, definition, self, inlineCalls)...)
			expanded = append(expanded, expandConstructorBody(s.OrElse, definition, self, inlineCalls)...)
		case *With:
			expanded = append(expanded, expandConstructorBody(s.Body, definition, self, inlineCalls)...)
		case *Try:
			expanded = append(expanded, expandConstructorBody(s.Body, definition, self, inlineCalls)...)
			expanded = append(expanded, expandConstructorBody(s.OrElse, definition, self, inlineCalls)...)
			expanded = append(expanded, expandConstructorBody(s.Finally, definition, self, inlineCalls)...)
		case *ExpressionStatement:
			if callee := siblingCallee(s, definition, self); inlineCalls && callee != nil {
				expanded = append(expanded, expandConstructorBody(callee.Body, definition, self, false)...)
				continue
			}
			expanded = append(expanded, statement)
		default:
			expanded = append(expanded, statement)
		}
	}
	return expanded
}

// siblingCallee resolves a top-level `self.m(...)` call to the define named m
// in the class's own body, if any.
func siblingCallee(statement *ExpressionStatement, definition *Class, self string) *Define {
	if definition == nil {
		return nil
	}
	access, ok := AsAccess(statement.Expression)
	if !ok || len(access.Segments) != 3 {
		return nil
	}
	receiver, ok := access.Segments[0].(IdentSegment)
	if !ok || receiver.Name != self {
		return nil
	}
	method, ok := access.Segments[1].(IdentSegment)
	if !ok {
		return nil
	}
	if _, ok := access.Segments[2].(CallSegment); !ok {
		return nil
	}
	for _, candidate := range definition.Body {
		if define, ok := candidate.(*Define); ok && define.SimpleName() == method.Name {
			return define
		}
	}
	return nil
}

// PropertyAttribute returns the attribute a property-style decorator exposes,
// or nil when the define is not a property. Class-level properties wrap the
// return annotation in typing.ClassVar; setters carry the second parameter's
// annotation.
func (d *Define) PropertyAttribute(loc location.Location, names *config.RecognizedNames) *Attribute {
	target := &Access{Loc: loc, Segments: d.Name.Segments}
	for _, name := range names.ClassPropertyDecorators {
		if d.HasDecorator(name) {
			return &Attribute{
				Loc:        loc,
				Target:     target,
				Annotation: TypingClassVar(loc, d.ReturnAnnotation),
				Async:      d.Async,
			}
		}
	}
	for _, name := range names.PropertyDecorators {
		if d.HasDecorator(name) {
			return &Attribute{
				Loc:        loc,
				Target:     target,
				Annotation: d.ReturnAnnotation,
				Async:      d.Async,
			}
		}
	}
	if d.IsPropertySetter() && len(d.Parameters) >= 2 {
		return &Attribute{
			Loc:        loc,
			Target:     target,
			Annotation: d.Parameters[1].Annotation,
			Async:      d.Async,
			Setter:     true,
		}
	}
	return nil
}

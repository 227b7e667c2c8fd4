package ast

import (
	"github.com/funvibe/pyrite/internal/config"
)

// Attributes produces the class's attribute map. Five sources contribute, in
// decreasing priority: explicit class-body assignments, implicit constructor
// attributes, property defines, callable attributes, and nested classes. On a
// name conflict the higher-priority source wins; within a source, later
// statements overwrite earlier ones. Iteration order is deterministic.
//
// includeGenerated controls whether constructor-discovered attributes are
// included; inTest widens the constructor set to the test setup methods.
func (c *Class) Attributes(names *config.RecognizedNames, inTest, includeGenerated bool) *AttributeMap {
	attributes := c.nestedClassAttributes()
	attributes = mergeAttributeMaps(c.callableAttributes(), attributes)
	attributes = mergeAttributeMaps(c.propertyAttributes(names), attributes)
	if includeGenerated {
		attributes = mergeAttributeMaps(c.implicitAttributes(inTest), attributes)
	}
	return mergeAttributeMaps(c.explicitAttributes(), attributes)
}

// Constructors returns the body defines that initialize instances.
func (c *Class) Constructors(inTest bool) []*Define {
	var constructors []*Define
	for _, statement := range c.Body {
		if define, ok := statement.(*Define); ok && define.IsConstructor(inTest) {
			constructors = append(constructors, define)
		}
	}
	return constructors
}

// explicitAttributes collects class-body assignments to single-segment
// targets, including tuple-destructuring forms. A destructuring whose
// arities cannot be reconciled contributes nothing.
func (c *Class) explicitAttributes() *AttributeMap {
	attributes := NewAttributeMap()
	for _, statement := range c.Body {
		assign, ok := unwrapAssign(statement)
		if !ok {
			continue
		}
		if target, ok := AsAccess(assign.Target); ok {
			if name, ok := target.SimpleName(); ok {
				attributes.Set(name, &Attribute{
					Loc:        assign.GetLoc(),
					Target:     target,
					Annotation: assign.Annotation,
					Value:      assign.Value,
					Primitive:  true,
				})
			}
			continue
		}
		tuple, ok := AsTuple(assign.Target)
		if !ok {
			continue
		}
		if values, ok := AsTuple(assign.Value); ok {
			if len(values.Elements) != len(tuple.Elements) {
				continue
			}
			for i, element := range tuple.Elements {
				target, ok := AsAccess(element)
				if !ok {
					continue
				}
				name, ok := target.SimpleName()
				if !ok {
					continue
				}
				attributes.Set(name, &Attribute{
					Loc:        assign.GetLoc(),
					Target:     target,
					Annotation: assign.Annotation,
					Value:      values.Elements[i],
					Primitive:  true,
				})
			}
			continue
		}
		if value, ok := AsAccess(assign.Value); ok {
			for i, element := range tuple.Elements {
				target, ok := AsAccess(element)
				if !ok {
					continue
				}
				name, ok := target.SimpleName()
				if !ok {
					continue
				}
				item := value.Append(
					IdentSegment{Name: config.GetItemMethodName},
					CallSegment{Args: []Expression{&Integer{Loc: assign.GetLoc(), Value: int64(i)}}},
				)
				attributes.Set(name, &Attribute{
					Loc:        assign.GetLoc(),
					Target:     target,
					Annotation: assign.Annotation,
					Value:      item,
					Primitive:  true,
				})
			}
		}
	}
	return attributes
}

// implicitAttributes unions the constructor-discovered attributes of every
// constructor in the body. The last constructor wins the value and flags;
// divergent annotations unify into typing.Union.
func (c *Class) implicitAttributes(inTest bool) *AttributeMap {
	attributes := NewAttributeMap()
	for _, constructor := range c.Constructors(inTest) {
		constructor.ImplicitAttributes(c).Each(func(name string, attribute *Attribute) {
			existing, ok := attributes.Get(name)
			if !ok || existing.Annotation == nil {
				attributes.Set(name, attribute)
				return
			}
			merged := *attribute
			if attribute.Annotation == nil {
				merged.Annotation = existing.Annotation
			} else {
				merged.Annotation = TypingUnion(existing.Loc, []Expression{existing.Annotation, attribute.Annotation})
			}
			attributes.Set(name, &merged)
		})
	}
	return attributes
}

// propertyAttributes collects attributes exposed by property-style defines.
// A getter and a setter for the same name merge into one attribute carrying
// the getter annotation in Annotation and the setter annotation in Value.
func (c *Class) propertyAttributes(names *config.RecognizedNames) *AttributeMap {
	attributes := NewAttributeMap()
	for _, statement := range c.Body {
		define, ok := unwrapDefine(statement)
		if !ok {
			continue
		}
		attribute := define.PropertyAttribute(define.GetLoc(), names)
		if attribute == nil {
			continue
		}
		name := attribute.Name()
		if name == "" {
			continue
		}
		if existing, ok := attributes.Get(name); ok && existing.Setter != attribute.Setter {
			getter, setter := existing, attribute
			if existing.Setter {
				getter, setter = attribute, existing
			}
			attributes.Set(name, &Attribute{
				Loc:        existing.Loc,
				Target:     existing.Target,
				Annotation: getter.Annotation,
				Value:      setter.Annotation,
				Async:      existing.Async || attribute.Async,
				Setter:     true,
			})
			continue
		}
		attributes.Set(name, attribute)
	}
	return attributes
}

// callableAttributes collects one attribute per method name, accumulating
// overload signatures. The stored defines have their bodies cleared; callers
// must not expect bodies on them.
func (c *Class) callableAttributes() *AttributeMap {
	attributes := NewAttributeMap()
	for _, statement := range c.Body {
		define, ok := unwrapDefine(statement)
		if !ok {
			continue
		}
		name := define.SimpleName()
		if name == "" {
			continue
		}
		signature := *define
		signature.Body = nil
		if existing, ok := attributes.Get(name); ok {
			defines := make([]*Define, 0, len(existing.Defines)+1)
			defines = append(defines, existing.Defines...)
			defines = append(defines, &signature)
			attributes.Set(name, &Attribute{
				Loc:     existing.Loc,
				Target:  existing.Target,
				Defines: defines,
			})
			continue
		}
		attributes.Set(name, &Attribute{
			Loc:     define.GetLoc(),
			Target:  &Access{Loc: define.GetLoc(), Segments: define.Name.Segments},
			Defines: []*Define{&signature},
		})
	}
	return attributes
}

// nestedClassAttributes exposes each nested class as a typing.ClassVar of
// its type.
func (c *Class) nestedClassAttributes() *AttributeMap {
	attributes := NewAttributeMap()
	for _, statement := range c.Body {
		nested, ok := unwrapClass(statement)
		if !ok {
			continue
		}
		name := nested.SimpleName()
		if name == "" {
			continue
		}
		loc := nested.GetLoc()
		attributes.Set(name, &Attribute{
			Loc:        loc,
			Target:     NewIdent(loc, name),
			Annotation: TypingClassVar(loc, TypingType(loc, nested.Name)),
		})
	}
	return attributes
}

// Update merges a parallel stub class into the definition: matching
// assignments take the stub's annotation, matching defines take the stub's
// parameters and return annotation, and stub declarations with no match in
// the definition are carried over into the resulting body.
func (c *Class) Update(stub *Class) *Class {
	type stubEntry struct {
		statement Statement
		assign    *Assign
		define    *Define
		matched   bool
	}
	var entries []*stubEntry
	for _, statement := range stub.Body {
		entry := &stubEntry{statement: statement}
		if assign, ok := unwrapAssign(statement); ok {
			entry.assign = assign
		} else if define, ok := unwrapDefine(statement); ok {
			entry.define = define
		} else {
			continue
		}
		entries = append(entries, entry)
	}

	updated := make([]Statement, 0, len(c.Body))
	for _, statement := range c.Body {
		switch s := statement.(type) {
		case *Assign:
			var match *stubEntry
			for _, entry := range entries {
				if !entry.matched && entry.assign != nil && ExpressionEqual(entry.assign.Target, s.Target) {
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
		case *Define:
			var match *stubEntry
			for _, entry := range entries {
				if !entry.matched && entry.define != nil &&
					ExpressionEqual(entry.define.Name, s.Name) &&
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
		default:
			updated = append(updated, statement)
		}
	}

	var body []Statement
	for _, entry := range entries {
		if !entry.matched {
			body = append(body, entry.statement)
		}
	}
	body = append(body, updated...)

	merged := *c
	merged.Body = body
	return &merged
}

func unwrapAssign(statement Statement) (*Assign, bool) {
	switch s := statement.(type) {
	case *Assign:
		return s, true
	case *Stub:
		assign, ok := s.Stubbed.(*Assign)
		return assign, ok
	}
	return nil, false
}

func unwrapDefine(statement Statement) (*Define, bool) {
	switch s := statement.(type) {
	case *Define:
		return s, true
	case *Stub:
		define, ok := s.Stubbed.(*Define)
		return define, ok
	}
	return nil, false
}

func unwrapClass(statement Statement) (*Class, bool) {
	switch s := statement.(type) {
	case *Class:
		return s, true
	case *Stub:
		class, ok := s.Stubbed.(*Class)
		return class, ok
	}
	return nil, false
}

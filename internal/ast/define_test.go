package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/pyrite/internal/config"
)

func method(parent, name string, parameters []*Parameter, body ...Statement) *Define {
	return &Define{
		Loc:        testLoc(1),
		Name:       ident(name),
		Parameters: parameters,
		Body:       body,
		Parent:     ident(parent),
	}
}

func params(names ...string) []*Parameter {
	parameters := make([]*Parameter, len(names))
	for i, name := range names {
		parameters[i] = &Parameter{Loc: testLoc(1), Name: name}
	}
	return parameters
}

func TestDecoratorQueries(t *testing.T) {
	decorate := func(d *Define, decorators ...Expression) *Define {
		d.Decorators = decorators
		return d
	}

	plain := method("C", "m", params("self"))
	assert.False(t, plain.HasDecorator("staticmethod"))
	assert.False(t, plain.IsStaticMethod())
	assert.False(t, plain.IsAbstractMethod())

	static := decorate(method("C", "m", params("self")), ident("staticmethod"))
	assert.True(t, static.IsStaticMethod())

	abstract := decorate(method("C", "m", params("self")), dotted("abc", "abstractmethod"))
	assert.True(t, abstract.IsAbstractMethod())

	abstractProp := decorate(method("C", "m", params("self")), ident("abstractproperty"))
	assert.True(t, abstractProp.IsAbstractMethod())

	coroutine := decorate(method("C", "m", params("self")), dotted("asyncio", "coroutines", "coroutine"))
	assert.True(t, coroutine.IsCoroutine())

	overloaded := decorate(method("C", "m", params("self")), dotted("typing", "overload"))
	assert.True(t, overloaded.IsOverloadedMethod())

	classMethod := decorate(method("C", "m", params("cls")), ident("classmethod"))
	assert.True(t, classMethod.IsClassMethod(config.DefaultRecognizedNames()))

	setter := decorate(method("C", "foo", params("self", "value")), dotted("foo", "setter"))
	assert.True(t, setter.IsPropertySetter())

	wrongSetter := decorate(method("C", "foo", params("self", "value")), dotted("bar", "setter"))
	assert.False(t, wrongSetter.IsPropertySetter())
}

func TestRoleQueries(t *testing.T) {
	m := method("C", "m", params("self"))
	assert.True(t, m.IsMethod())
	assert.False(t, m.IsConstructor(false))

	free := &Define{Loc: testLoc(1), Name: ident("f")}
	assert.False(t, free.IsMethod())

	init := method("C", "__init__", params("self"))
	assert.True(t, init.IsConstructor(false))

	setUp := method("C", "setUp", params("self"))
	assert.False(t, setUp.IsConstructor(false))
	assert.True(t, setUp.IsConstructor(true))

	asyncSetup := method("C", "_async_setup", params("self"))
	assert.True(t, asyncSetup.IsConstructor(true))

	untyped := method("C", "m", params("self"))
	assert.True(t, untyped.IsUntyped())
	untyped.ReturnAnnotation = ident("None")
	assert.False(t, untyped.IsUntyped())
}

func TestDumpMarkers(t *testing.T) {
	withBody := func(body ...Statement) *Define {
		return &Define{Loc: testLoc(1), Name: ident("f"), Body: body}
	}

	marker := withBody(&ExpressionStatement{Loc: testLoc(2), Expression: call(ident("pyre_dump"))})
	assert.True(t, marker.Dump())
	assert.False(t, marker.DumpCFG())

	cfg := withBody(&ExpressionStatement{Loc: testLoc(2), Expression: call(ident("pyre_dump_cfg"))})
	assert.True(t, cfg.DumpCFG())
	assert.False(t, cfg.Dump())

	// A bare reference without a call is not a marker.
	bare := withBody(&ExpressionStatement{Loc: testLoc(2), Expression: ident("pyre_dump")})
	assert.False(t, bare.Dump())
}

func TestCreateToplevel(t *testing.T) {
	statements := []Statement{&Pass{Loc: testLoc(1)}, &Return{Loc: testLoc(2)}}
	toplevel := CreateToplevel(statements)

	require.NotNil(t, toplevel)
	assert.True(t, toplevel.IsToplevel())
	assert.False(t, toplevel.Generated)
	assert.Empty(t, toplevel.Parameters)
	assert.Equal(t, statements, toplevel.Body)
}

func TestCreateGeneratedConstructor(t *testing.T) {
	docstring := "A class."
	class := &Class{Loc: testLoc(3), Name: ident("C"), Docstring: &docstring}
	constructor := CreateGeneratedConstructor(class)

	require.NotNil(t, constructor)
	assert.True(t, constructor.Generated)
	assert.True(t, constructor.IsGeneratedConstructor())
	assert.True(t, constructor.IsConstructor(false))
	assert.Equal(t, class.GetLoc(), constructor.GetLoc())
	require.Len(t, constructor.Parameters, 1)
	assert.Equal(t, "self", constructor.Parameters[0].Name)
	require.NotNil(t, constructor.Docstring)
	assert.Equal(t, docstring, *constructor.Docstring)

	// A generated constructor installs nothing.
	attributes := constructor.ImplicitAttributes(class)
	assert.Zero(t, attributes.Len())
}

func TestImplicitAttributesParameterFallback(t *testing.T) {
	// def __init__(self, x: int) -> None:
	//     self.a = x
	//     self.b: str = ""
	init := method("C", "__init__",
		[]*Parameter{
			{Loc: testLoc(1), Name: "self"},
			{Loc: testLoc(1), Name: "x", Annotation: ident("int")},
		},
		&Assign{Loc: testLoc(2), Target: selfDot("a"), Value: ident("x")},
		&Assign{Loc: testLoc(3), Target: selfDot("b"), Annotation: ident("str"), Value: strLit("")},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init}}

	attributes := init.ImplicitAttributes(class)
	require.Equal(t, []string{"a", "b"}, attributes.Names())

	a, ok := attributes.Get("a")
	require.True(t, ok)
	assert.True(t, a.Primitive)
	assert.True(t, ExpressionEqual(a.Annotation, ident("int")))

	b, ok := attributes.Get("b")
	require.True(t, ok)
	assert.True(t, b.Primitive)
	assert.True(t, ExpressionEqual(b.Annotation, ident("str")))
}

func TestImplicitAttributesControlFlowExpansion(t *testing.T) {
	init := method("C", "__init__", params("self"),
		&If{
			Loc:  testLoc(2),
			Test: ident("flag"),
			Body: []Statement{
				&Assign{Loc: testLoc(3), Target: selfDot("a"), Annotation: ident("int"), Value: intLit(1)},
			},
			OrElse: []Statement{
				&Assign{Loc: testLoc(5), Target: selfDot("a"), Annotation: ident("str"), Value: strLit("")},
			},
		},
		&Try{
			Loc: testLoc(6),
			Body: []Statement{
				&Assign{Loc: testLoc(7), Target: selfDot("b"), Value: intLit(0)},
			},
			Finally: []Statement{
				&Assign{Loc: testLoc(9), Target: selfDot("c"), Value: intLit(0)},
			},
		},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init}}

	attributes := init.ImplicitAttributes(class)
	assert.Equal(t, []string{"a", "b", "c"}, attributes.Names())

	// Divergent annotations across branches unify.
	a, ok := attributes.Get("a")
	require.True(t, ok)
	assert.Equal(t, "typing.Union[int, str]", a.Annotation.String())

	b, ok := attributes.Get("b")
	require.True(t, ok)
	assert.Nil(t, b.Annotation)
}

func TestImplicitAttributesSiblingInlining(t *testing.T) {
	helper := method("C", "_init_fields", params("self"),
		&Assign{Loc: testLoc(6), Target: selfDot("ready"), Annotation: ident("bool"), Value: ident("False")},
	)
	init := method("C", "__init__", params("self"),
		&ExpressionStatement{Loc: testLoc(2), Expression: call(dotted("self", "_init_fields"))},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init, helper}}

	attributes := init.ImplicitAttributes(class)
	ready, ok := attributes.Get("ready")
	require.True(t, ok, "delegated assignment should be discovered")
	assert.True(t, ExpressionEqual(ready.Annotation, ident("bool")))
}

func TestImplicitAttributesInliningIsSingleLevel(t *testing.T) {
	// The inlined body's own calls are not followed.
	second := method("C", "_second", params("self"),
		&Assign{Loc: testLoc(9), Target: selfDot("deep"), Value: intLit(1)},
	)
	first := method("C", "_first", params("self"),
		&ExpressionStatement{Loc: testLoc(6), Expression: call(dotted("self", "_second"))},
		&Assign{Loc: testLoc(7), Target: selfDot("shallow"), Value: intLit(1)},
	)
	init := method("C", "__init__", params("self"),
		&ExpressionStatement{Loc: testLoc(2), Expression: call(dotted("self", "_first"))},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init, first, second}}

	attributes := init.ImplicitAttributes(class)
	_, ok := attributes.Get("shallow")
	assert.True(t, ok)
	_, ok = attributes.Get("deep")
	assert.False(t, ok, "second-level calls must not be inlined")
}

func TestImplicitAttributesTupleTarget(t *testing.T) {
	init := method("C", "__init__", params("self"),
		&Assign{
			Loc: testLoc(2),
			Target: &Tuple{Loc: testLoc(2), Elements: []Expression{
				selfDot("a"),
				selfDot("b"),
				ident("local"),
			}},
			Value: ident("triple"),
		},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init}}

	attributes := init.ImplicitAttributes(class)
	assert.Equal(t, []string{"a", "b"}, attributes.Names())
}

func TestImplicitAttributesRenamedReceiver(t *testing.T) {
	init := method("C", "__init__", params("this"),
		&Assign{Loc: testLoc(2), Target: NewAccess(testLoc(2), "this", "x"), Value: intLit(1)},
		&Assign{Loc: testLoc(3), Target: selfDot("ignored"), Value: intLit(2)},
	)
	class := &Class{Loc: testLoc(1), Name: ident("C"), Body: []Statement{init}}

	attributes := init.ImplicitAttributes(class)
	assert.Equal(t, []string{"x"}, attributes.Names())
}

func TestPropertyAttribute(t *testing.T) {
	names := config.DefaultRecognizedNames()

	getter := method("C", "foo", params("self"))
	getter.Decorators = []Expression{ident("property")}
	getter.ReturnAnnotation = ident("int")
	attribute := getter.PropertyAttribute(getter.GetLoc(), names)
	require.NotNil(t, attribute)
	assert.Equal(t, "foo", attribute.Name())
	assert.False(t, attribute.Setter)
	assert.True(t, ExpressionEqual(attribute.Annotation, ident("int")))

	classProperty := method("C", "bar", params("cls"))
	classProperty.Decorators = []Expression{dotted("util", "classproperty")}
	classProperty.ReturnAnnotation = ident("str")
	attribute = classProperty.PropertyAttribute(classProperty.GetLoc(), names)
	require.NotNil(t, attribute)
	assert.Equal(t, "typing.ClassVar[str]", attribute.Annotation.String())

	setter := method("C", "foo", []*Parameter{
		{Loc: testLoc(1), Name: "self"},
		{Loc: testLoc(1), Name: "value", Annotation: ident("str")},
	})
	setter.Decorators = []Expression{dotted("foo", "setter")}
	attribute = setter.PropertyAttribute(setter.GetLoc(), names)
	require.NotNil(t, attribute)
	assert.True(t, attribute.Setter)
	assert.True(t, ExpressionEqual(attribute.Annotation, ident("str")))

	// A setter without a value parameter exposes nothing.
	truncated := method("C", "foo", params("self"))
	truncated.Decorators = []Expression{dotted("foo", "setter")}
	assert.Nil(t, truncated.PropertyAttribute(truncated.GetLoc(), names))

	plain := method("C", "m", params("self"))
	assert.Nil(t, plain.PropertyAttribute(plain.GetLoc(), names))
}

// Package astjson implements the wire format the parser uses to hand
// statement streams to the analyzer. Nodes are encoded as tagged JSON
// objects (`{"kind": "Assign", ...}`); locations round-trip unchanged.
//
// Decoding tolerates missing optional fields but rejects unknown kinds:
// a kind this package does not know is an input error, never a panic.
package astjson

import (
	"encoding/json"
	"fmt"

	"github.com/funvibe/pyrite/internal/ast"
	"github.com/funvibe/pyrite/internal/location"
)

// Document is a decoded parser handoff: one compilation unit's statements.
type Document struct {
	Path       string
	Statements []ast.Statement
}

type documentNode struct {
	Path       string      `json:"path,omitempty"`
	Statements []*stmtNode `json:"statements"`
}

type locNode struct {
	File        string `json:"file,omitempty"`
	StartLine   int    `json:"start_line"`
	StartColumn int    `json:"start_column"`
	EndLine     int    `json:"end_line"`
	EndColumn   int    `json:"end_column"`
}

type exprNode struct {
	Kind     string      `json:"kind"`
	Loc      *locNode    `json:"loc,omitempty"`
	Segments []*segNode  `json:"segments,omitempty"`
	Elements []*exprNode `json:"elements,omitempty"`
	Value    *exprNode   `json:"value,omitempty"`
	Str      string      `json:"str,omitempty"`
	Int      int64       `json:"int,omitempty"`
	Float    float64     `json:"float,omitempty"`
	Bool     bool        `json:"bool,omitempty"`
}

type segNode struct {
	Kind    string      `json:"kind"`
	Name    string      `json:"name,omitempty"`
	Args    []*exprNode `json:"args,omitempty"`
	Indexes []*exprNode `json:"indexes,omitempty"`
	Value   *exprNode   `json:"value,omitempty"`
}

type argNode struct {
	Name  string    `json:"name,omitempty"`
	Value *exprNode `json:"value"`
}

type paramNode struct {
	Loc        *locNode  `json:"loc,omitempty"`
	Name       string    `json:"name"`
	Annotation *exprNode `json:"annotation,omitempty"`
	Value      *exprNode `json:"value,omitempty"`
}

type handlerNode struct {
	Loc  *locNode    `json:"loc,omitempty"`
	Kind *exprNode   `json:"kind,omitempty"`
	Name string      `json:"name,omitempty"`
	Body []*stmtNode `json:"body,omitempty"`
}

type itemNode struct {
	Expression *exprNode `json:"expression"`
	Alias      *exprNode `json:"alias,omitempty"`
}

type importNode struct {
	Name  *exprNode `json:"name"`
	Alias string    `json:"alias,omitempty"`
}

type stmtNode struct {
	Kind       string         `json:"kind"`
	Loc        *locNode       `json:"loc,omitempty"`
	Target     *exprNode      `json:"target,omitempty"`
	Annotation *exprNode      `json:"annotation,omitempty"`
	Value      *exprNode      `json:"value,omitempty"`
	Parent     *exprNode      `json:"parent,omitempty"`
	Test       *exprNode      `json:"test,omitempty"`
	Message    *exprNode      `json:"message,omitempty"`
	Name       *exprNode      `json:"name,omitempty"`
	Bases      []*argNode     `json:"bases,omitempty"`
	Body       []*stmtNode    `json:"body,omitempty"`
	OrElse     []*stmtNode    `json:"orelse,omitempty"`
	Finally    []*stmtNode    `json:"finally,omitempty"`
	Handlers   []*handlerNode `json:"handlers,omitempty"`
	Decorators []*exprNode    `json:"decorators,omitempty"`
	Docstring  *string        `json:"docstring,omitempty"`
	Parameters []*paramNode   `json:"parameters,omitempty"`
	Returns    *exprNode      `json:"returns,omitempty"`
	Async      bool           `json:"async,omitempty"`
	Generated  bool           `json:"generated,omitempty"`
	Expression *exprNode      `json:"expression,omitempty"`
	Iterator   *exprNode      `json:"iterator,omitempty"`
	Items      []*itemNode    `json:"items,omitempty"`
	From       *exprNode      `json:"from,omitempty"`
	Imports    []*importNode  `json:"imports,omitempty"`
	Names      []string       `json:"names,omitempty"`
	Stubbed    *stmtNode      `json:"stubbed,omitempty"`
}

// DecodeDocument parses a serialized compilation unit.
func DecodeDocument(data []byte) (*Document, error) {
	var doc documentNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing document: %w", err)
	}
	statements, err := decodeStatements(doc.Statements)
	if err != nil {
		return nil, err
	}
	return &Document{Path: doc.Path, Statements: statements}, nil
}

// EncodeDocument serializes a compilation unit.
func EncodeDocument(doc *Document) ([]byte, error) {
	nodes := make([]*stmtNode, len(doc.Statements))
	for i, statement := range doc.Statements {
		node, err := encodeStatement(statement)
		if err != nil {
			return nil, err
		}
		nodes[i] = node
	}
	return json.MarshalIndent(&documentNode{Path: doc.Path, Statements: nodes}, "", "  ")
}

func decodeLoc(n *locNode) location.Location {
	if n == nil {
		return location.Location{}
	}
	return location.Location{
		File:        n.File,
		StartLine:   n.StartLine,
		StartColumn: n.StartColumn,
		EndLine:     n.EndLine,
		EndColumn:   n.EndColumn,
	}
}

func encodeLoc(l location.Location) *locNode {
	if l.IsZero() {
		return nil
	}
	return &locNode{
		File:        l.File,
		StartLine:   l.StartLine,
		StartColumn: l.StartColumn,
		EndLine:     l.EndLine,
		EndColumn:   l.EndColumn,
	}
}

func decodeStatements(nodes []*stmtNode) ([]ast.Statement, error) {
	var statements []ast.Statement
	for _, node := range nodes {
		statement, err := decodeStatement(node)
		if err != nil {
			return nil, err
		}
		statements = append(statements, statement)
	}
	return statements, nil
}

func decodeStatement(n *stmtNode) (ast.Statement, error) {
	if n == nil {
		return nil, fmt.Errorf("missing statement node")
	}
	loc := decodeLoc(n.Loc)
	switch n.Kind {
	case "Assign":
		target, err := decodeExpression(n.Target)
		if err != nil {
			return nil, err
		}
		annotation, err := decodeOptional(n.Annotation)
		if err != nil {
			return nil, err
		}
		value, err := decodeOptional(n.Value)
		if err != nil {
			return nil, err
		}
		parent, err := decodeOptionalAccess(n.Parent)
		if err != nil {
			return nil, err
		}
		return &ast.Assign{Loc: loc, Target: target, Annotation: annotation, Value: value, Parent: parent}, nil
	case "Assert":
		test, err := decodeExpression(n.Test)
		if err != nil {
			return nil, err
		}
		message, err := decodeOptional(n.Message)
		if err != nil {
			return nil, err
		}
		return &ast.Assert{Loc: loc, Test: test, Message: message}, nil
	case "Break":
		return &ast.Break{Loc: loc}, nil
	case "Continue":
		return &ast.Continue{Loc: loc}, nil
	case "Pass":
		return &ast.Pass{Loc: loc}, nil
	case "Class":
		name, err := decodeAccess(n.Name)
		if err != nil {
			return nil, err
		}
		bases := make([]ast.Argument, 0, len(n.Bases))
		for _, base := range n.Bases {
			value, err := decodeExpression(base.Value)
			if err != nil {
				return nil, err
			}
			bases = append(bases, ast.Argument{Name: base.Name, Value: value})
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExpressions(n.Decorators)
		if err != nil {
			return nil, err
		}
		return &ast.Class{Loc: loc, Name: name, Bases: bases, Body: body, Decorators: decorators, Docstring: n.Docstring}, nil
	case "Define":
		name, err := decodeAccess(n.Name)
		if err != nil {
			return nil, err
		}
		parameters := make([]*ast.Parameter, 0, len(n.Parameters))
		for _, parameter := range n.Parameters {
			annotation, err := decodeOptional(parameter.Annotation)
			if err != nil {
				return nil, err
			}
			value, err := decodeOptional(parameter.Value)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, &ast.Parameter{
				Loc:        decodeLoc(parameter.Loc),
				Name:       parameter.Name,
				Annotation: annotation,
				Value:      value,
			})
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := decodeExpressions(n.Decorators)
		if err != nil {
			return nil, err
		}
		returns, err := decodeOptional(n.Returns)
		if err != nil {
			return nil, err
		}
		parent, err := decodeOptionalAccess(n.Parent)
		if err != nil {
			return nil, err
		}
		return &ast.Define{
			Loc:              loc,
			Name:             name,
			Parameters:       parameters,
			Body:             body,
			Decorators:       decorators,
			Docstring:        n.Docstring,
			ReturnAnnotation: returns,
			Async:            n.Async,
			Generated:        n.Generated,
			Parent:           parent,
		}, nil
	case "Delete":
		target, err := decodeExpression(n.Target)
		if err != nil {
			return nil, err
		}
		return &ast.Delete{Loc: loc, Target: target}, nil
	case "Expression":
		expression, err := decodeExpression(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.ExpressionStatement{Loc: loc, Expression: expression}, nil
	case "Raise":
		expression, err := decodeOptional(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Raise{Loc: loc, Expression: expression}, nil
	case "Return":
		expression, err := decodeOptional(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Return{Loc: loc, Expression: expression}, nil
	case "Yield":
		expression, err := decodeExpression(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.Yield{Loc: loc, Expression: expression}, nil
	case "YieldFrom":
		expression, err := decodeExpression(n.Expression)
		if err != nil {
			return nil, err
		}
		return &ast.YieldFrom{Loc: loc, Expression: expression}, nil
	case "For":
		target, err := decodeExpression(n.Target)
		if err != nil {
			return nil, err
		}
		iterator, err := decodeExpression(n.Iterator)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeStatements(n.OrElse)
		if err != nil {
			return nil, err
		}
		return &ast.For{Loc: loc, Target: target, Iterator: iterator, Body: body, OrElse: orElse, Async: n.Async}, nil
	case "With":
		items := make([]ast.WithItem, 0, len(n.Items))
		for _, item := range n.Items {
			expression, err := decodeExpression(item.Expression)
			if err != nil {
				return nil, err
			}
			alias, err := decodeOptional(item.Alias)
			if err != nil {
				return nil, err
			}
			items = append(items, ast.WithItem{Expression: expression, Alias: alias})
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		return &ast.With{Loc: loc, Items: items, Body: body, Async: n.Async}, nil
	case "Try":
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		handlers := make([]ast.ExceptHandler, 0, len(n.Handlers))
		for _, handler := range n.Handlers {
			kind, err := decodeOptional(handler.Kind)
			if err != nil {
				return nil, err
			}
			handlerBody, err := decodeStatements(handler.Body)
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, ast.ExceptHandler{
				Loc:  decodeLoc(handler.Loc),
				Kind: kind,
				Name: handler.Name,
				Body: handlerBody,
			})
		}
		orElse, err := decodeStatements(n.OrElse)
		if err != nil {
			return nil, err
		}
		finally, err := decodeStatements(n.Finally)
		if err != nil {
			return nil, err
		}
		return &ast.Try{Loc: loc, Body: body, Handlers: handlers, OrElse: orElse, Finally: finally}, nil
	case "While":
		test, err := decodeExpression(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeStatements(n.OrElse)
		if err != nil {
			return nil, err
		}
		return &ast.While{Loc: loc, Test: test, Body: body, OrElse: orElse}, nil
	case "If":
		test, err := decodeExpression(n.Test)
		if err != nil {
			return nil, err
		}
		body, err := decodeStatements(n.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := decodeStatements(n.OrElse)
		if err != nil {
			return nil, err
		}
		return &ast.If{Loc: loc, Test: test, Body: body, OrElse: orElse}, nil
	case "Import":
		from, err := decodeOptionalAccess(n.From)
		if err != nil {
			return nil, err
		}
		imports := make([]ast.ImportEntry, 0, len(n.Imports))
		for _, entry := range n.Imports {
			name, err := decodeAccess(entry.Name)
			if err != nil {
				return nil, err
			}
			imports = append(imports, ast.ImportEntry{Name: name, Alias: entry.Alias})
		}
		return &ast.Import{Loc: loc, From: from, Imports: imports}, nil
	case "Global":
		return &ast.Global{Loc: loc, Names: n.Names}, nil
	case "Nonlocal":
		return &ast.Nonlocal{Loc: loc, Names: n.Names}, nil
	case "Stub":
		stubbed, err := decodeStatement(n.Stubbed)
		if err != nil {
			return nil, err
		}
		switch stubbed.(type) {
		case *ast.Assign, *ast.Class, *ast.Define:
		default:
			return nil, fmt.Errorf("stub wraps %q, want Assign, Class or Define", n.Stubbed.Kind)
		}
		return &ast.Stub{Loc: loc, Stubbed: stubbed}, nil
	}
	return nil, fmt.Errorf("unknown statement kind %q", n.Kind)
}

func decodeExpressions(nodes []*exprNode) ([]ast.Expression, error) {
	var expressions []ast.Expression
	for _, node := range nodes {
		expression, err := decodeExpression(node)
		if err != nil {
			return nil, err
		}
		expressions = append(expressions, expression)
	}
	return expressions, nil
}

func decodeOptional(n *exprNode) (ast.Expression, error) {
	if n == nil {
		return nil, nil
	}
	return decodeExpression(n)
}

func decodeOptionalAccess(n *exprNode) (*ast.Access, error) {
	if n == nil {
		return nil, nil
	}
	return decodeAccess(n)
}

func decodeAccess(n *exprNode) (*ast.Access, error) {
	expression, err := decodeExpression(n)
	if err != nil {
		return nil, err
	}
	access, ok := ast.AsAccess(expression)
	if !ok {
		return nil, fmt.Errorf("expected access chain, got %q", n.Kind)
	}
	return access, nil
}

func decodeExpression(n *exprNode) (ast.Expression, error) {
	if n == nil {
		return nil, fmt.Errorf("missing expression node")
	}
	loc := decodeLoc(n.Loc)
	switch n.Kind {
	case "Access":
		segments := make([]ast.Segment, 0, len(n.Segments))
		for _, segment := range n.Segments {
			decoded, err := decodeSegment(segment)
			if err != nil {
				return nil, err
			}
			segments = append(segments, decoded)
		}
		return &ast.Access{Loc: loc, Segments: segments}, nil
	case "Tuple":
		elements, err := decodeExpressions(n.Elements)
		if err != nil {
			return nil, err
		}
		return &ast.Tuple{Loc: loc, Elements: elements}, nil
	case "String":
		return &ast.String{Loc: loc, Value: n.Str}, nil
	case "Integer":
		return &ast.Integer{Loc: loc, Value: n.Int}, nil
	case "Float":
		return &ast.Float{Loc: loc, Value: n.Float}, nil
	case "Boolean":
		return &ast.Boolean{Loc: loc, Value: n.Bool}, nil
	case "None":
		return &ast.None{Loc: loc}, nil
	case "Await":
		value, err := decodeExpression(n.Value)
		if err != nil {
			return nil, err
		}
		return &ast.Await{Loc: loc, Value: value}, nil
	}
	return nil, fmt.Errorf("unknown expression kind %q", n.Kind)
}

func decodeSegment(n *segNode) (ast.Segment, error) {
	switch n.Kind {
	case "Ident":
		return ast.IdentSegment{Name: n.Name}, nil
	case "Call":
		args, err := decodeExpressions(n.Args)
		if err != nil {
			return nil, err
		}
		return ast.CallSegment{Args: args}, nil
	case "Subscript":
		indexes, err := decodeExpressions(n.Indexes)
		if err != nil {
			return nil, err
		}
		return ast.SubscriptSegment{Indexes: indexes}, nil
	case "Expr":
		value, err := decodeExpression(n.Value)
		if err != nil {
			return nil, err
		}
		return ast.ExpressionSegment{Value: value}, nil
	}
	return nil, fmt.Errorf("unknown segment kind %q", n.Kind)
}

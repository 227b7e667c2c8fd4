package astjson

import (
	"fmt"

	"github.com/funvibe/pyrite/internal/ast"
)

func encodeStatements(statements []ast.Statement) ([]*stmtNode, error) {
	var nodes []*stmtNode
	for _, statement := range statements {
		node, err := encodeStatement(statement)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func encodeStatement(statement ast.Statement) (*stmtNode, error) {
	switch s := statement.(type) {
	case *ast.Assign:
		target, err := encodeExpression(s.Target)
		if err != nil {
			return nil, err
		}
		annotation, err := encodeOptional(s.Annotation)
		if err != nil {
			return nil, err
		}
		value, err := encodeOptional(s.Value)
		if err != nil {
			return nil, err
		}
		var parent *exprNode
		if s.Parent != nil {
			if parent, err = encodeExpression(s.Parent); err != nil {
				return nil, err
			}
		}
		return &stmtNode{Kind: "Assign", Loc: encodeLoc(s.Loc), Target: target, Annotation: annotation, Value: value, Parent: parent}, nil
	case *ast.Assert:
		test, err := encodeExpression(s.Test)
		if err != nil {
			return nil, err
		}
		message, err := encodeOptional(s.Message)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Assert", Loc: encodeLoc(s.Loc), Test: test, Message: message}, nil
	case *ast.Break:
		return &stmtNode{Kind: "Break", Loc: encodeLoc(s.Loc)}, nil
	case *ast.Continue:
		return &stmtNode{Kind: "Continue", Loc: encodeLoc(s.Loc)}, nil
	case *ast.Pass:
		return &stmtNode{Kind: "Pass", Loc: encodeLoc(s.Loc)}, nil
	case *ast.Class:
		name, err := encodeExpression(s.Name)
		if err != nil {
			return nil, err
		}
		var bases []*argNode
		for _, base := range s.Bases {
			value, err := encodeExpression(base.Value)
			if err != nil {
				return nil, err
			}
			bases = append(bases, &argNode{Name: base.Name, Value: value})
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := encodeExpressions(s.Decorators)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Class", Loc: encodeLoc(s.Loc), Name: name, Bases: bases, Body: body, Decorators: decorators, Docstring: s.Docstring}, nil
	case *ast.Define:
		name, err := encodeExpression(s.Name)
		if err != nil {
			return nil, err
		}
		var parameters []*paramNode
		for _, parameter := range s.Parameters {
			annotation, err := encodeOptional(parameter.Annotation)
			if err != nil {
				return nil, err
			}
			value, err := encodeOptional(parameter.Value)
			if err != nil {
				return nil, err
			}
			parameters = append(parameters, &paramNode{
				Loc:        encodeLoc(parameter.Loc),
				Name:       parameter.Name,
				Annotation: annotation,
				Value:      value,
			})
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		decorators, err := encodeExpressions(s.Decorators)
		if err != nil {
			return nil, err
		}
		returns, err := encodeOptional(s.ReturnAnnotation)
		if err != nil {
			return nil, err
		}
		var parent *exprNode
		if s.Parent != nil {
			if parent, err = encodeExpression(s.Parent); err != nil {
				return nil, err
			}
		}
		return &stmtNode{
			Kind:       "Define",
			Loc:        encodeLoc(s.Loc),
			Name:       name,
			Parameters: parameters,
			Body:       body,
			Decorators: decorators,
			Docstring:  s.Docstring,
			Returns:    returns,
			Async:      s.Async,
			Generated:  s.Generated,
			Parent:     parent,
		}, nil
	case *ast.Delete:
		target, err := encodeExpression(s.Target)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Delete", Loc: encodeLoc(s.Loc), Target: target}, nil
	case *ast.ExpressionStatement:
		expression, err := encodeExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Expression", Loc: encodeLoc(s.Loc), Expression: expression}, nil
	case *ast.Raise:
		expression, err := encodeOptional(s.Expression)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Raise", Loc: encodeLoc(s.Loc), Expression: expression}, nil
	case *ast.Return:
		expression, err := encodeOptional(s.Expression)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Return", Loc: encodeLoc(s.Loc), Expression: expression}, nil
	case *ast.Yield:
		expression, err := encodeExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Yield", Loc: encodeLoc(s.Loc), Expression: expression}, nil
	case *ast.YieldFrom:
		expression, err := encodeExpression(s.Expression)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "YieldFrom", Loc: encodeLoc(s.Loc), Expression: expression}, nil
	case *ast.For:
		target, err := encodeExpression(s.Target)
		if err != nil {
			return nil, err
		}
		iterator, err := encodeExpression(s.Iterator)
		if err != nil {
			return nil, err
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := encodeStatements(s.OrElse)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "For", Loc: encodeLoc(s.Loc), Target: target, Iterator: iterator, Body: body, OrElse: orElse, Async: s.Async}, nil
	case *ast.With:
		var items []*itemNode
		for _, item := range s.Items {
			expression, err := encodeExpression(item.Expression)
			if err != nil {
				return nil, err
			}
			alias, err := encodeOptional(item.Alias)
			if err != nil {
				return nil, err
			}
			items = append(items, &itemNode{Expression: expression, Alias: alias})
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "With", Loc: encodeLoc(s.Loc), Items: items, Body: body, Async: s.Async}, nil
	case *ast.Try:
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		var handlers []*handlerNode
		for _, handler := range s.Handlers {
			kind, err := encodeOptional(handler.Kind)
			if err != nil {
				return nil, err
			}
			handlerBody, err := encodeStatements(handler.Body)
			if err != nil {
				return nil, err
			}
			handlers = append(handlers, &handlerNode{
				Loc:  encodeLoc(handler.Loc),
				Kind: kind,
				Name: handler.Name,
				Body: handlerBody,
			})
		}
		orElse, err := encodeStatements(s.OrElse)
		if err != nil {
			return nil, err
		}
		finally, err := encodeStatements(s.Finally)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Try", Loc: encodeLoc(s.Loc), Body: body, Handlers: handlers, OrElse: orElse, Finally: finally}, nil
	case *ast.While:
		test, err := encodeExpression(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := encodeStatements(s.OrElse)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "While", Loc: encodeLoc(s.Loc), Test: test, Body: body, OrElse: orElse}, nil
	case *ast.If:
		test, err := encodeExpression(s.Test)
		if err != nil {
			return nil, err
		}
		body, err := encodeStatements(s.Body)
		if err != nil {
			return nil, err
		}
		orElse, err := encodeStatements(s.OrElse)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "If", Loc: encodeLoc(s.Loc), Test: test, Body: body, OrElse: orElse}, nil
	case *ast.Import:
		var from *exprNode
		var err error
		if s.From != nil {
			if from, err = encodeExpression(s.From); err != nil {
				return nil, err
			}
		}
		var imports []*importNode
		for _, entry := range s.Imports {
			name, err := encodeExpression(entry.Name)
			if err != nil {
				return nil, err
			}
			imports = append(imports, &importNode{Name: name, Alias: entry.Alias})
		}
		return &stmtNode{Kind: "Import", Loc: encodeLoc(s.Loc), From: from, Imports: imports}, nil
	case *ast.Global:
		return &stmtNode{Kind: "Global", Loc: encodeLoc(s.Loc), Names: s.Names}, nil
	case *ast.Nonlocal:
		return &stmtNode{Kind: "Nonlocal", Loc: encodeLoc(s.Loc), Names: s.Names}, nil
	case *ast.Stub:
		stubbed, err := encodeStatement(s.Stubbed)
		if err != nil {
			return nil, err
		}
		return &stmtNode{Kind: "Stub", Loc: encodeLoc(s.Loc), Stubbed: stubbed}, nil
	}
	return nil, fmt.Errorf("cannot encode statement %T", statement)
}

func encodeExpressions(expressions []ast.Expression) ([]*exprNode, error) {
	var nodes []*exprNode
	for _, expression := range expressions {
		node, err := encodeExpression(expression)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)
	}
	return nodes, nil
}

func encodeOptional(expression ast.Expression) (*exprNode, error) {
	if expression == nil {
		return nil, nil
	}
	return encodeExpression(expression)
}

func encodeExpression(expression ast.Expression) (*exprNode, error) {
	switch e := expression.(type) {
	case *ast.Access:
		var segments []*segNode
		for _, segment := range e.Segments {
			node, err := encodeSegment(segment)
			if err != nil {
				return nil, err
			}
			segments = append(segments, node)
		}
		return &exprNode{Kind: "Access", Loc: encodeLoc(e.Loc), Segments: segments}, nil
	case *ast.Tuple:
		elements, err := encodeExpressions(e.Elements)
		if err != nil {
			return nil, err
		}
		return &exprNode{Kind: "Tuple", Loc: encodeLoc(e.Loc), Elements: elements}, nil
	case *ast.String:
		return &exprNode{Kind: "String", Loc: encodeLoc(e.Loc), Str: e.Value}, nil
	case *ast.Integer:
		return &exprNode{Kind: "Integer", Loc: encodeLoc(e.Loc), Int: e.Value}, nil
	case *ast.Float:
		return &exprNode{Kind: "Float", Loc: encodeLoc(e.Loc), Float: e.Value}, nil
	case *ast.Boolean:
		return &exprNode{Kind: "Boolean", Loc: encodeLoc(e.Loc), Bool: e.Value}, nil
	case *ast.None:
		return &exprNode{Kind: "None", Loc: encodeLoc(e.Loc)}, nil
	case *ast.Await:
		value, err := encodeExpression(e.Value)
		if err != nil {
			return nil, err
		}
		return &exprNode{Kind: "Await", Loc: encodeLoc(e.Loc), Value: value}, nil
	}
	return nil, fmt.Errorf("cannot encode expression %T", expression)
}

func encodeSegment(segment ast.Segment) (*segNode, error) {
	switch s := segment.(type) {
	case ast.IdentSegment:
		return &segNode{Kind: "Ident", Name: s.Name}, nil
	case ast.CallSegment:
		args, err := encodeExpressions(s.Args)
		if err != nil {
			return nil, err
		}
		return &segNode{Kind: "Call", Args: args}, nil
	case ast.SubscriptSegment:
		indexes, err := encodeExpressions(s.Indexes)
		if err != nil {
			return nil, err
		}
		return &segNode{Kind: "Subscript", Indexes: indexes}, nil
	case ast.ExpressionSegment:
		value, err := encodeExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return &segNode{Kind: "Expr", Value: value}, nil
	}
	return nil, fmt.Errorf("cannot encode segment %T", segment)
}

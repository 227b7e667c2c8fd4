package ast

import (
	"strconv"
	"strings"

	"github.com/funvibe/pyrite/internal/location"
)

// Node is the base interface for all AST nodes.
type Node interface {
	GetLoc() location.Location
}

// Expression is a Node that represents an expression. The statement layer
// treats expressions as opaque values: it only relies on structural equality
// and the query helpers below (AsAccess, AsTuple, AsString, AsInteger).
type Expression interface {
	Node
	expressionNode()
	String() string
}

// Segment is one element of an access chain: a dotted identifier, a call
// applied to the chain so far, a subscript, or a parenthesized expression
// lifted into the chain.
type Segment interface {
	segmentNode()
	String() string
}

// IdentSegment is a plain identifier segment, e.g. the `x` in `a.x`.
type IdentSegment struct {
	Name string
}

func (s IdentSegment) segmentNode()   {}
func (s IdentSegment) String() string { return s.Name }

// CallSegment applies the chain built so far, e.g. the `(1, 2)` in `f(1, 2)`.
type CallSegment struct {
	Args []Expression
}

func (s CallSegment) segmentNode() {}
func (s CallSegment) String() string {
	parts := make([]string, len(s.Args))
	for i, arg := range s.Args {
		parts[i] = arg.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// SubscriptSegment indexes the chain built so far, e.g. the `[int, str]` in
// `typing.Union[int, str]`.
type SubscriptSegment struct {
	Indexes []Expression
}

func (s SubscriptSegment) segmentNode() {}
func (s SubscriptSegment) String() string {
	parts := make([]string, len(s.Indexes))
	for i, index := range s.Indexes {
		parts[i] = index.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ExpressionSegment lifts an arbitrary expression into an access chain so
// that protocol calls can be attached to it, e.g. `(a + b).__iter__()`.
type ExpressionSegment struct {
	Value Expression
}

func (s ExpressionSegment) segmentNode() {}
func (s ExpressionSegment) String() string {
	if s.Value == nil {
		return "(<nil>)"
	}
	return "(" + s.Value.String() + ")"
}

// Access represents a qualified name or call chain, e.g. `a.b(1).c`.
type Access struct {
	Loc      location.Location
	Segments []Segment
}

func (a *Access) expressionNode() {}
func (a *Access) GetLoc() location.Location {
	if a == nil {
		return location.Location{}
	}
	return a.Loc
}

func (a *Access) String() string {
	var sb strings.Builder
	for i, segment := range a.Segments {
		if i > 0 {
			if _, ok := segment.(IdentSegment); ok {
				sb.WriteString(".")
			}
		}
		sb.WriteString(segment.String())
	}
	return sb.String()
}

// NewIdent builds a single-segment access for a bare identifier.
func NewIdent(loc location.Location, name string) *Access {
	return &Access{Loc: loc, Segments: []Segment{IdentSegment{Name: name}}}
}

// NewAccess builds a dotted access chain from identifier components.
func NewAccess(loc location.Location, names ...string) *Access {
	segments := make([]Segment, len(names))
	for i, name := range names {
		segments[i] = IdentSegment{Name: name}
	}
	return &Access{Loc: loc, Segments: segments}
}

// Append returns a new access extending the receiver; the receiver is left
// untouched.
func (a *Access) Append(segments ...Segment) *Access {
	combined := make([]Segment, 0, len(a.Segments)+len(segments))
	combined = append(combined, a.Segments...)
	combined = append(combined, segments...)
	return &Access{Loc: a.Loc, Segments: combined}
}

// SimpleName returns the identifier of a single-segment access.
func (a *Access) SimpleName() (string, bool) {
	if a == nil || len(a.Segments) != 1 {
		return "", false
	}
	ident, ok := a.Segments[0].(IdentSegment)
	if !ok {
		return "", false
	}
	return ident.Name, true
}

// LastName returns the identifier of the last identifier segment, scanning
// backwards past trailing call or subscript segments.
func (a *Access) LastName() (string, bool) {
	if a == nil {
		return "", false
	}
	for i := len(a.Segments) - 1; i >= 0; i-- {
		if ident, ok := a.Segments[i].(IdentSegment); ok {
			return ident.Name, true
		}
	}
	return "", false
}

// LeadingNames returns the maximal prefix of identifier segment names.
func (a *Access) LeadingNames() []string {
	var names []string
	for _, segment := range a.Segments {
		ident, ok := segment.(IdentSegment)
		if !ok {
			break
		}
		names = append(names, ident.Name)
	}
	return names
}

// MatchesDotted reports whether the chain is exactly the dot-separated
// identifiers of name, allowing trailing call segments after the full match.
func (a *Access) MatchesDotted(name string) bool {
	if a == nil {
		return false
	}
	parts := strings.Split(name, ".")
	if len(a.Segments) < len(parts) {
		return false
	}
	for i, part := range parts {
		ident, ok := a.Segments[i].(IdentSegment)
		if !ok || ident.Name != part {
			return false
		}
	}
	for _, segment := range a.Segments[len(parts):] {
		if _, ok := segment.(CallSegment); !ok {
			return false
		}
	}
	return true
}

// Tuple represents a tuple expression, e.g. `(a, b)`.
type Tuple struct {
	Loc      location.Location
	Elements []Expression
}

func (t *Tuple) expressionNode() {}
func (t *Tuple) GetLoc() location.Location {
	if t == nil {
		return location.Location{}
	}
	return t.Loc
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.Elements))
	for i, element := range t.Elements {
		parts[i] = element.String()
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// String represents a string literal.
type String struct {
	Loc   location.Location
	Value string
}

func (s *String) expressionNode() {}
func (s *String) GetLoc() location.Location {
	if s == nil {
		return location.Location{}
	}
	return s.Loc
}

func (s *String) String() string { return strconv.Quote(s.Value) }

// Integer represents an integer literal.
type Integer struct {
	Loc   location.Location
	Value int64
}

func (i *Integer) expressionNode() {}
func (i *Integer) GetLoc() location.Location {
	if i == nil {
		return location.Location{}
	}
	return i.Loc
}

func (i *Integer) String() string { return strconv.FormatInt(i.Value, 10) }

// Float represents a floating point literal.
type Float struct {
	Loc   location.Location
	Value float64
}

func (f *Float) expressionNode() {}
func (f *Float) GetLoc() location.Location {
	if f == nil {
		return location.Location{}
	}
	return f.Loc
}

func (f *Float) String() string { return strconv.FormatFloat(f.Value, 'g', -1, 64) }

// Boolean represents True or False.
type Boolean struct {
	Loc   location.Location
	Value bool
}

func (b *Boolean) expressionNode() {}
func (b *Boolean) GetLoc() location.Location {
	if b == nil {
		return location.Location{}
	}
	return b.Loc
}

func (b *Boolean) String() string {
	if b.Value {
		return "True"
	}
	return "False"
}

// None represents the None literal.
type None struct {
	Loc location.Location
}

func (n *None) expressionNode() {}
func (n *None) GetLoc() location.Location {
	if n == nil {
		return location.Location{}
	}
	return n.Loc
}

func (n *None) String() string { return "None" }

// Await represents `await expr`. It appears in synthesized protocol calls for
// asynchronous context managers.
type Await struct {
	Loc   location.Location
	Value Expression
}

func (a *Await) expressionNode() {}
func (a *Await) GetLoc() location.Location {
	if a == nil {
		return location.Location{}
	}
	return a.Loc
}

func (a *Await) String() string {
	if a.Value == nil {
		return "await <nil>"
	}
	return "await " + a.Value.String()
}

// AsAccess returns the expression as an access chain, if it is one.
func AsAccess(e Expression) (*Access, bool) {
	access, ok := e.(*Access)
	return access, ok && access != nil
}

// AsTuple returns the expression as a tuple, if it is one.
func AsTuple(e Expression) (*Tuple, bool) {
	tuple, ok := e.(*Tuple)
	return tuple, ok && tuple != nil
}

// AsString returns the expression as a string literal, if it is one.
func AsString(e Expression) (*String, bool) {
	s, ok := e.(*String)
	return s, ok && s != nil
}

// AsInteger returns the expression as an integer literal, if it is one.
func AsInteger(e Expression) (*Integer, bool) {
	i, ok := e.(*Integer)
	return i, ok && i != nil
}

// ExpressionEqual reports structural equality between two expressions.
// Locations are ignored.
func ExpressionEqual(a, b Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch left := a.(type) {
	case *Access:
		right, ok := b.(*Access)
		if !ok || len(left.Segments) != len(right.Segments) {
			return false
		}
		for i := range left.Segments {
			if !segmentEqual(left.Segments[i], right.Segments[i]) {
				return false
			}
		}
		return true
	case *Tuple:
		right, ok := b.(*Tuple)
		if !ok || len(left.Elements) != len(right.Elements) {
			return false
		}
		for i := range left.Elements {
			if !ExpressionEqual(left.Elements[i], right.Elements[i]) {
				return false
			}
		}
		return true
	case *String:
		right, ok := b.(*String)
		return ok && left.Value == right.Value
	case *Integer:
		right, ok := b.(*Integer)
		return ok && left.Value == right.Value
	case *Float:
		right, ok := b.(*Float)
		return ok && left.Value == right.Value
	case *Boolean:
		right, ok := b.(*Boolean)
		return ok && left.Value == right.Value
	case *None:
		_, ok := b.(*None)
		return ok
	case *Await:
		right, ok := b.(*Await)
		return ok && ExpressionEqual(left.Value, right.Value)
	}
	return false
}

func segmentEqual(a, b Segment) bool {
	switch left := a.(type) {
	case IdentSegment:
		right, ok := b.(IdentSegment)
		return ok && left.Name == right.Name
	case CallSegment:
		right, ok := b.(CallSegment)
		if !ok || len(left.Args) != len(right.Args) {
			return false
		}
		for i := range left.Args {
			if !ExpressionEqual(left.Args[i], right.Args[i]) {
				return false
			}
		}
		return true
	case SubscriptSegment:
		right, ok := b.(SubscriptSegment)
		if !ok || len(left.Indexes) != len(right.Indexes) {
			return false
		}
		for i := range left.Indexes {
			if !ExpressionEqual(left.Indexes[i], right.Indexes[i]) {
				return false
			}
		}
		return true
	case ExpressionSegment:
		right, ok := b.(ExpressionSegment)
		return ok && ExpressionEqual(left.Value, right.Value)
	}
	return false
}

// TypingUnion builds `typing.Union[...]` over members. A single member is
// returned as-is; nested unions are flattened; duplicates are collapsed,
// first occurrence wins the order.
func TypingUnion(loc location.Location, members []Expression) Expression {
	var flattened []Expression
	for _, member := range members {
		if inner, ok := unionMembers(member); ok {
			flattened = append(flattened, inner...)
			continue
		}
		flattened = append(flattened, member)
	}
	var distinct []Expression
	for _, member := range flattened {
		seen := false
		for _, existing := range distinct {
			if ExpressionEqual(existing, member) {
				seen = true
				break
			}
		}
		if !seen {
			distinct = append(distinct, member)
		}
	}
	if len(distinct) == 1 {
		return distinct[0]
	}
	return &Access{
		Loc: loc,
		Segments: []Segment{
			IdentSegment{Name: "typing"},
			IdentSegment{Name: "Union"},
			SubscriptSegment{Indexes: distinct},
		},
	}
}

// unionMembers unpacks a `typing.Union[...]` access into its members.
func unionMembers(e Expression) ([]Expression, bool) {
	access, ok := AsAccess(e)
	if !ok || len(access.Segments) != 3 {
		return nil, false
	}
	names := access.LeadingNames()
	if len(names) != 2 || names[0] != "typing" || names[1] != "Union" {
		return nil, false
	}
	subscript, ok := access.Segments[2].(SubscriptSegment)
	if !ok {
		return nil, false
	}
	return subscript.Indexes, true
}

// TypingClassVar wraps an annotation in `typing.ClassVar[...]`.
func TypingClassVar(loc location.Location, inner Expression) Expression {
	indexes := []Expression{}
	if inner != nil {
		indexes = append(indexes, inner)
	}
	return &Access{
		Loc: loc,
		Segments: []Segment{
			IdentSegment{Name: "typing"},
			IdentSegment{Name: "ClassVar"},
			SubscriptSegment{Indexes: indexes},
		},
	}
}

// TypingType wraps an expression in `typing.Type[...]`.
func TypingType(loc location.Location, inner Expression) Expression {
	return &Access{
		Loc: loc,
		Segments: []Segment{
			IdentSegment{Name: "typing"},
			IdentSegment{Name: "Type"},
			SubscriptSegment{Indexes: []Expression{inner}},
		},
	}
}

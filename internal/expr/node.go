// Package expr holds pseudocode expression trees and their
// precedence-climbing parser. Trees are plain pointer structures owned by
// whoever parsed them; the type layer annotates nodes through a
// single-assignment memo slot but never keeps references back.
package expr

import "strux/internal/source"

// Expr is the closed set of expression node kinds.
type Expr interface {
	Span() source.Span
	// TypeMemo exposes the node's inferred-type cache.
	TypeMemo() *Memo
	exprNode()
}

// Memo caches the type id the inference layer assigned to a node. Only the
// first assignment sticks, so repeated inference passes stay consistent.
type Memo struct {
	id uint32
	ok bool
}

// Set records the inferred type id. It reports whether the value was taken;
// a second call leaves the first result in place.
func (m *Memo) Set(id uint32) bool {
	if m.ok {
		return false
	}
	m.id, m.ok = id, true
	return true
}

// Get returns the cached type id, if any.
func (m *Memo) Get() (uint32, bool) { return m.id, m.ok }

type base struct {
	span source.Span
	memo Memo
}

func (b *base) Span() source.Span { return b.span }
func (b *base) TypeMemo() *Memo   { return &b.memo }
func (b *base) exprNode()         {}

// LitKind classifies literal constants.
type LitKind uint8

const (
	LitInt LitKind = iota
	LitFloat
	LitString
	LitChar
	LitBool
	// LitRaw wraps tokens that could not be parsed, kept so callers can
	// still render a complete line.
	LitRaw
)

var litNames = [...]string{"int", "float", "string", "char", "bool", "raw"}

func (k LitKind) String() string {
	if int(k) < len(litNames) {
		return litNames[k]
	}
	return "unknown"
}

// Operator applies a canonical operator to one, two or three operands.
// Ternary selection uses Op "?:" with three operands.
type Operator struct {
	base
	Op  string
	Ops []Expr
}

// Identifier names a variable, constant or routine.
type Identifier struct {
	base
	Name string
}

// Literal is a constant. Text keeps the source spelling, quotes included.
type Literal struct {
	base
	Kind LitKind
	Text string
}

// Index subscripts a base expression: a[i] or a[i, j].
type Index struct {
	base
	Base Expr
	Args []Expr
}

// Member selects a record component: rec.comp.
type Member struct {
	base
	Base Expr
	Name string
}

// Call applies arguments to a callee: f(x, y).
type Call struct {
	base
	Callee Expr
	Args   []Expr
}

// ArrayInit is a brace-delimited element list: {1, 2, 3}.
type ArrayInit struct {
	base
	Elems []Expr
}

// RecordInit instantiates a named record type: Point{x: 1, y: 2} or
// positional Point{1, 2}. Resolution against the registry happens later.
type RecordInit struct {
	base
	TypeName string
	Comps    []Component
}

// Component is one record initializer slot. Name is empty for positional
// components.
type Component struct {
	base
	Name  string
	Value Expr
}

func newBase(span source.Span) base { return base{span: span} }

// NewIdentifier builds an identifier node, for callers that synthesize
// nodes outside the parser.
func NewIdentifier(name string, span source.Span) *Identifier {
	return &Identifier{base: newBase(span), Name: name}
}

// NewLiteral builds a literal node.
func NewLiteral(kind LitKind, text string, span source.Span) *Literal {
	return &Literal{base: newBase(span), Kind: kind, Text: text}
}

// NewOperator builds an operator node over operands.
func NewOperator(op string, span source.Span, ops ...Expr) *Operator {
	return &Operator{base: newBase(span), Op: op, Ops: ops}
}

// Name returns the callee name for plain calls, empty when the callee is
// not a bare identifier.
func (c *Call) Name() string {
	if id, ok := c.Callee.(*Identifier); ok {
		return id.Name
	}
	return ""
}

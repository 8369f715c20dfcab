// Package parser classifies raw pseudocode lines and extracts their
// structured form: the line kind, its expressions, and for declarations the
// registered types and names. Classification is pure per call; everything
// the parser needs arrives as arguments.
package parser

import (
	"strings"

	"strux/internal/expr"
	"strux/internal/types"
)

// Kind enumerates the line kinds.
type Kind uint8

const (
	KindRaw Kind = iota
	KindAssignment
	KindInput
	KindOutput
	KindCondition
	KindForLoop
	KindForeachLoop
	KindRoutineCall
	KindConstFunctCall
	KindReturn
	KindLeave
	KindExit
	KindThrow
	KindCase
	KindSelector
	KindDefault
	KindCatch
	KindTypeDef
	KindConstDef
	KindVarDecl
	KindVarInit
	KindRoutine

	kindCount
)

var kindNames = [...]string{
	"raw", "assignment", "input", "output", "condition", "for", "foreach",
	"call", "const call", "return", "leave", "exit", "throw", "case",
	"selector", "default", "catch", "type definition", "const definition",
	"variable declaration", "initialized declaration", "routine header",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// KindSet is a bitmask over line kinds, used by callers to constrain what a
// given diagram element may contain.
type KindSet uint32

// AnyKind accepts every kind.
const AnyKind KindSet = 0

// Of builds a set from kinds.
func Of(kinds ...Kind) KindSet {
	var s KindSet
	for _, k := range kinds {
		s |= 1 << k
	}
	return s
}

// Has reports whether the set accepts a kind. The empty set accepts all.
func (s KindSet) Has(k Kind) bool {
	return s == AnyKind || s&(1<<k) != 0
}

// Single returns the only kind in the set, if it has exactly one.
func (s KindSet) Single() (Kind, bool) {
	if s == AnyKind || s&(s-1) != 0 {
		return 0, false
	}
	for k := Kind(0); k < kindCount; k++ {
		if s&(1<<k) != 0 {
			return k, true
		}
	}
	return 0, false
}

func (s KindSet) String() string {
	if s == AnyKind {
		return "any"
	}
	var parts []string
	for k := Kind(0); k < kindCount; k++ {
		if s&(1<<k) != 0 {
			parts = append(parts, k.String())
		}
	}
	return strings.Join(parts, " or ")
}

// Line is the closed set of classified line shapes. Every shape also keeps
// the original source text, so degraded lines lose nothing.
type Line interface {
	Kind() Kind
	Text() string
	// Expressions returns the expression payload in a fixed per-kind
	// order, for rendering and variable gathering.
	Expressions() []expr.Expr
	lineNode()
}

type line struct{ text string }

func (l line) Text() string { return l.text }
func (line) lineNode()      {}

// Raw is the degraded shape: classification failed or nothing matched, the
// pieces hold whatever parsed best-effort.
type Raw struct {
	line
	Pieces []expr.Expr
}

// Assignment is target <- value; Expr's root is the assignment operator.
type Assignment struct {
	line
	Expr expr.Expr
}

// Input reads values into targets, with an optional literal prompt. A nil
// Prompt is the null placeholder: the slot exists, nothing fills it.
type Input struct {
	line
	Prompt  expr.Expr
	Targets []expr.Expr
}

// Output writes the expressions in order.
type Output struct {
	line
	Exprs []expr.Expr
}

// Condition guards an alternative or loop.
type Condition struct {
	line
	Expr expr.Expr
}

// ForLoop is var <- start to end [by step]. Step is nil when absent.
type ForLoop struct {
	line
	Var   expr.Expr
	Start expr.Expr
	End   expr.Expr
	Step  expr.Expr
}

// ForeachLoop is var in items.
type ForeachLoop struct {
	line
	Var   expr.Expr
	Items []expr.Expr
}

// RoutineCall is a statement-level procedure call.
type RoutineCall struct {
	line
	Expr expr.Expr
}

// ConstFunctCall is a constant definition whose value is a routine call.
type ConstFunctCall struct {
	line
	Name  string
	Type  types.TypeID
	Value expr.Expr
}

// Return leaves the routine, optionally with a result.
type Return struct {
	line
	Expr expr.Expr
}

// Leave exits the named number of loop levels, default one.
type Leave struct {
	line
	Levels expr.Expr
}

// Exit terminates the program, optionally with a code.
type Exit struct {
	line
	Expr expr.Expr
}

// Throw raises an error value.
type Throw struct {
	line
	Expr expr.Expr
}

// Case heads a multi-way selection with its discriminator.
type Case struct {
	line
	Expr expr.Expr
}

// Selector is one branch label list of a selection.
type Selector struct {
	line
	Values []expr.Expr
}

// Default is the fall-through branch label.
type Default struct {
	line
}

// Catch binds the caught value in a try block.
type Catch struct {
	line
	Target expr.Expr
}

// TypeDef registers a named type.
type TypeDef struct {
	line
	Name string
	Type types.TypeID
}

// ConstDef defines a named constant, optionally typed.
type ConstDef struct {
	line
	Name  string
	Type  types.TypeID
	Value expr.Expr
}

// VarDecl declares names with a shared type and no value.
type VarDecl struct {
	line
	Names []string
	Type  types.TypeID
}

// VarInit declares one name with a type and an initial value.
type VarInit struct {
	line
	Name  string
	Type  types.TypeID
	Value expr.Expr
}

// Param is one routine parameter. Const marks a read-only group.
type Param struct {
	Name    string
	Type    types.TypeID
	Default expr.Expr
	Const   bool
}

// Routine is a routine header: name, parameters, optional result type.
type Routine struct {
	line
	Name   string
	Params []Param
	Result types.TypeID
}

func (Raw) Kind() Kind            { return KindRaw }
func (Assignment) Kind() Kind     { return KindAssignment }
func (Input) Kind() Kind          { return KindInput }
func (Output) Kind() Kind         { return KindOutput }
func (Condition) Kind() Kind      { return KindCondition }
func (ForLoop) Kind() Kind        { return KindForLoop }
func (ForeachLoop) Kind() Kind    { return KindForeachLoop }
func (RoutineCall) Kind() Kind    { return KindRoutineCall }
func (ConstFunctCall) Kind() Kind { return KindConstFunctCall }
func (Return) Kind() Kind         { return KindReturn }
func (Leave) Kind() Kind          { return KindLeave }
func (Exit) Kind() Kind           { return KindExit }
func (Throw) Kind() Kind          { return KindThrow }
func (Case) Kind() Kind           { return KindCase }
func (Selector) Kind() Kind       { return KindSelector }
func (Default) Kind() Kind        { return KindDefault }
func (Catch) Kind() Kind          { return KindCatch }
func (TypeDef) Kind() Kind        { return KindTypeDef }
func (ConstDef) Kind() Kind       { return KindConstDef }
func (VarDecl) Kind() Kind        { return KindVarDecl }
func (VarInit) Kind() Kind        { return KindVarInit }
func (Routine) Kind() Kind        { return KindRoutine }

func (l Raw) Expressions() []expr.Expr { return l.Pieces }
func (l Assignment) Expressions() []expr.Expr {
	return []expr.Expr{l.Expr}
}
func (l Input) Expressions() []expr.Expr {
	return append([]expr.Expr{l.Prompt}, l.Targets...)
}
func (l Output) Expressions() []expr.Expr    { return l.Exprs }
func (l Condition) Expressions() []expr.Expr { return []expr.Expr{l.Expr} }
func (l ForLoop) Expressions() []expr.Expr {
	out := []expr.Expr{l.Var, l.Start, l.End}
	if l.Step != nil {
		out = append(out, l.Step)
	}
	return out
}
func (l ForeachLoop) Expressions() []expr.Expr {
	return append([]expr.Expr{l.Var}, l.Items...)
}
func (l RoutineCall) Expressions() []expr.Expr    { return []expr.Expr{l.Expr} }
func (l ConstFunctCall) Expressions() []expr.Expr { return []expr.Expr{l.Value} }
func (l Return) Expressions() []expr.Expr         { return optExpr(l.Expr) }
func (l Leave) Expressions() []expr.Expr          { return optExpr(l.Levels) }
func (l Exit) Expressions() []expr.Expr           { return optExpr(l.Expr) }
func (l Throw) Expressions() []expr.Expr          { return optExpr(l.Expr) }
func (l Case) Expressions() []expr.Expr           { return []expr.Expr{l.Expr} }
func (l Selector) Expressions() []expr.Expr       { return l.Values }
func (Default) Expressions() []expr.Expr          { return nil }
func (l Catch) Expressions() []expr.Expr          { return []expr.Expr{l.Target} }
func (TypeDef) Expressions() []expr.Expr          { return nil }
func (l ConstDef) Expressions() []expr.Expr       { return []expr.Expr{l.Value} }
func (VarDecl) Expressions() []expr.Expr          { return nil }
func (l VarInit) Expressions() []expr.Expr        { return []expr.Expr{l.Value} }
func (l Routine) Expressions() []expr.Expr {
	var out []expr.Expr
	for _, p := range l.Params {
		if p.Default != nil {
			out = append(out, p.Default)
		}
	}
	return out
}

func optExpr(e expr.Expr) []expr.Expr {
	if e == nil {
		return nil
	}
	return []expr.Expr{e}
}

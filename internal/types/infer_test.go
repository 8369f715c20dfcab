package types

import (
	"testing"

	"strux/internal/expr"
	"strux/internal/source"
)

func lit(kind expr.LitKind, text string) expr.Expr {
	return expr.NewLiteral(kind, text, source.Span{})
}

func TestInferLiteral(t *testing.T) {
	r := NewRegistry()
	a := r.Arena()
	tests := []struct {
		kind expr.LitKind
		text string
		want TypeID
	}{
		{expr.LitInt, "42", a.Primitive(PrimInt)},
		{expr.LitInt, "2147483647", a.Primitive(PrimInt)},
		{expr.LitInt, "2147483648", a.Primitive(PrimLong)},
		{expr.LitInt, "0x1F", a.Primitive(PrimInt)},
		{expr.LitInt, "0b101", a.Primitive(PrimInt)},
		{expr.LitFloat, "3.14", a.Primitive(PrimDouble)},
		{expr.LitString, `"abc"`, a.Primitive(PrimString)},
		{expr.LitChar, "'a'", a.Primitive(PrimChar)},
		{expr.LitChar, `'\n'`, a.Primitive(PrimChar)},
		{expr.LitChar, "'ab'", a.Primitive(PrimString)},
		{expr.LitBool, "true", a.Primitive(PrimBool)},
	}
	for _, tt := range tests {
		if got := r.InferLiteral(tt.kind, tt.text); got != tt.want {
			t.Errorf("InferLiteral(%v, %q): got %s, want %s",
				tt.kind, tt.text, a.Encode(got), a.Encode(tt.want))
		}
	}
}

func TestInferOperators(t *testing.T) {
	r := NewRegistry()
	a := r.Arena()
	i := func() expr.Expr { return lit(expr.LitInt, "1") }
	d := func() expr.Expr { return lit(expr.LitFloat, "1.5") }
	s := func() expr.Expr { return lit(expr.LitString, `"s"`) }
	op := func(name string, ops ...expr.Expr) expr.Expr {
		return expr.NewOperator(name, source.Span{}, ops...)
	}

	tests := []struct {
		name string
		e    expr.Expr
		want TypeID
	}{
		{"comparison", op("<", i(), i()), a.Primitive(PrimBool)},
		{"logic", op("&&", i(), i()), a.Primitive(PrimBool)},
		{"negation", op("!", i()), a.Primitive(PrimBool)},
		{"modulo", op("%", i(), i()), a.Primitive(PrimInt)},
		{"integer division", op("div", i(), i()), a.Primitive(PrimInt)},
		{"division", op("/", i(), i()), a.Primitive(PrimDouble)},
		{"promotion", op("+", i(), d()), a.Primitive(PrimDouble)},
		{"int addition", op("+", i(), i()), a.Primitive(PrimInt)},
		{"concatenation", op("+", s(), i()), a.Primitive(PrimString)},
		{"assignment", op("<-", i(), d()), a.Primitive(PrimDouble)},
		{"selection", op("?:", op("<", i(), i()), i(), i()), a.Primitive(PrimInt)},
	}
	for _, tt := range tests {
		if got := r.Infer(tt.e); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.name, a.Encode(got), a.Encode(tt.want))
		}
	}
}

func TestInferIdentifierAndIndex(t *testing.T) {
	r := NewRegistry()
	a := r.Arena()
	arr := a.New(Type{Kind: KindArray, Elem: a.Primitive(PrimDouble), Size: SizeUnknown})
	r.BindVar("weights", arr, 0, true)
	r.BindVar("name", a.Primitive(PrimString), 0, true)

	id := expr.NewIdentifier("weights", source.Span{})
	if got := r.Infer(id); got != arr {
		t.Fatalf("identifier: got %s", a.Encode(got))
	}
	idx := &expr.Index{Base: expr.NewIdentifier("weights", source.Span{}), Args: []expr.Expr{lit(expr.LitInt, "1")}}
	if got := r.Infer(idx); got != a.Primitive(PrimDouble) {
		t.Errorf("array element: got %s", a.Encode(got))
	}
	strIdx := &expr.Index{Base: expr.NewIdentifier("name", source.Span{}), Args: []expr.Expr{lit(expr.LitInt, "1")}}
	if got := r.Infer(strIdx); got != a.Primitive(PrimChar) {
		t.Errorf("string element: got %s", a.Encode(got))
	}
}

func TestInferMemberAndBuiltin(t *testing.T) {
	r := NewRegistry()
	a := r.Arena()
	rec, err := r.Define("Point", Type{Kind: KindRecord, Fields: []Field{
		{Name: "x", Type: a.Primitive(PrimDouble)},
	}})
	if err != nil {
		t.Fatalf("Define: %v", err)
	}
	r.BindVar("p", rec, 0, true)

	member := &expr.Member{Base: expr.NewIdentifier("p", source.Span{}), Name: "x"}
	if got := r.Infer(member); got != a.Primitive(PrimDouble) {
		t.Errorf("member: got %s", a.Encode(got))
	}
	missing := &expr.Member{Base: expr.NewIdentifier("p", source.Span{}), Name: "z"}
	if got := r.Infer(missing); got != NoType {
		t.Errorf("unknown member must stay untyped, got %s", a.Encode(got))
	}

	call := &expr.Call{Callee: expr.NewIdentifier("Length", source.Span{}), Args: []expr.Expr{lit(expr.LitString, `"s"`)}}
	if got := r.Infer(call); got != a.Primitive(PrimInt) {
		t.Errorf("builtin result: got %s", a.Encode(got))
	}
	unknown := &expr.Call{Callee: expr.NewIdentifier("mystery", source.Span{})}
	if got := r.Infer(unknown); got != NoType {
		t.Errorf("unknown routine must stay untyped, got %s", a.Encode(got))
	}
}

func TestInferNeverFails(t *testing.T) {
	r := NewRegistry()
	if got := r.Infer(expr.NewIdentifier("unbound", source.Span{})); got != NoType {
		t.Errorf("unbound identifier: got %d, want NoType", got)
	}
	if got := r.Infer(nil); got != NoType {
		t.Errorf("nil expression: got %d, want NoType", got)
	}
}

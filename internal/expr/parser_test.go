package expr_test

import (
	"testing"

	"strux/internal/diag"
	"strux/internal/expr"
	"strux/internal/lexer"
	"strux/internal/source"
	"strux/internal/token"
)

func parse(t *testing.T, src string) expr.Expr {
	t.Helper()
	toks := lexer.Split(src, true)
	token.Unify(toks, false)
	e, err := expr.Parse(toks)
	if err != nil {
		t.Fatalf("Parse(%q): %v", src, err)
	}
	return e
}

func parseErr(t *testing.T, src string) *diag.SyntaxError {
	t.Helper()
	toks := lexer.Split(src, true)
	token.Unify(toks, false)
	_, err := expr.Parse(toks)
	if err == nil {
		t.Fatalf("Parse(%q): expected error", src)
	}
	serr, ok := err.(*diag.SyntaxError)
	if !ok {
		t.Fatalf("Parse(%q): error is %T, want *diag.SyntaxError", src, err)
	}
	return serr
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"1 + 2 * 3", "1 + 2 * 3"},
		{"(1 + 2) * 3", "(1 + 2) * 3"},
		{"1 * (2 + 3)", "1 * (2 + 3)"},
		{"a and b or c", "a && b || c"},
		{"a or b and c", "a || b && c"},
		{"a = b and c <> d", "a == b && c != d"},
		{"a < b = c", "a < b == c"},
		{"-a * b", "-a * b"},
		{"-(a * b)", "-(a * b)"},
		{"not a and b", "!a && b"},
		{"a mod b div c", "a % b div c"},
		{"x <- y <- z", "x <- y <- z"},
		{"1 shl 2 + 3", "1 << 2 + 3"},
	}
	for _, tt := range tests {
		if got := expr.String(parse(t, tt.src)); got != tt.want {
			t.Errorf("String(parse(%q)): got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestAssignmentIsRightAssociative(t *testing.T) {
	e := parse(t, "x <- y <- z")
	root, ok := e.(*expr.Operator)
	if !ok || root.Op != "<-" {
		t.Fatalf("root must be the assignment operator, got %T", e)
	}
	if id, ok := root.Ops[0].(*expr.Identifier); !ok || id.Name != "x" {
		t.Errorf("left child must be x")
	}
	if rhs, ok := root.Ops[1].(*expr.Operator); !ok || rhs.Op != "<-" {
		t.Errorf("right child must be the nested assignment")
	}
}

func TestRenderKeepsLeftNestedAssignmentParens(t *testing.T) {
	// построенное вручную лево-вложенное присваивание не должно терять скобки
	sp := source.Span{}
	inner := expr.NewOperator("<-", sp,
		expr.NewIdentifier("a", sp), expr.NewIdentifier("b", sp))
	e := expr.NewOperator("<-", sp, inner, expr.NewIdentifier("c", sp))
	if got := expr.String(e); got != "(a <- b) <- c" {
		t.Errorf("got %q, want %q", got, "(a <- b) <- c")
	}
	// правая вложенность остаётся без скобок
	rhs := expr.NewOperator("<-", sp,
		expr.NewIdentifier("y", sp), expr.NewIdentifier("z", sp))
	e = expr.NewOperator("<-", sp, expr.NewIdentifier("x", sp), rhs)
	if got := expr.String(e); got != "x <- y <- z" {
		t.Errorf("got %q, want %q", got, "x <- y <- z")
	}
}

func TestTernary(t *testing.T) {
	e := parse(t, "a > 0 ? a : -a")
	op, ok := e.(*expr.Operator)
	if !ok || op.Op != "?:" || len(op.Ops) != 3 {
		t.Fatalf("expected ternary operator, got %v", expr.String(e))
	}
	if got := expr.String(e); got != "a > 0 ? a : -a" {
		t.Errorf("render: got %q", got)
	}

	// the else branch owns a nested selection
	e = parse(t, "a ? b : c ? d : e")
	op = e.(*expr.Operator)
	if _, ok := op.Ops[2].(*expr.Operator); !ok {
		t.Errorf("nested selection must sit in the else branch")
	}
}

func TestPostfixChains(t *testing.T) {
	e := parse(t, "m[i].width(1, 2)")
	call, ok := e.(*expr.Call)
	if !ok || len(call.Args) != 2 {
		t.Fatalf("expected call, got %T", e)
	}
	member, ok := call.Callee.(*expr.Member)
	if !ok || member.Name != "width" {
		t.Fatalf("expected member callee, got %T", call.Callee)
	}
	if _, ok := member.Base.(*expr.Index); !ok {
		t.Fatalf("expected index base, got %T", member.Base)
	}
	if got := expr.String(e); got != "m[i].width(1, 2)" {
		t.Errorf("render: got %q", got)
	}
}

func TestCallName(t *testing.T) {
	call := parse(t, "f(x)").(*expr.Call)
	if call.Name() != "f" {
		t.Errorf("Name: got %q", call.Name())
	}
	nested := parse(t, "obj.f(x)").(*expr.Call)
	if nested.Name() != "" {
		t.Errorf("member callee has no bare name, got %q", nested.Name())
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		src  string
		kind expr.LitKind
	}{
		{"42", expr.LitInt},
		{"0x1F", expr.LitInt},
		{"3.14", expr.LitFloat},
		{`"text"`, expr.LitString},
		{"'c'", expr.LitChar},
		{"true", expr.LitBool},
		{"FALSE", expr.LitBool},
	}
	for _, tt := range tests {
		lit, ok := parse(t, tt.src).(*expr.Literal)
		if !ok {
			t.Errorf("parse(%q): not a literal", tt.src)
			continue
		}
		if lit.Kind != tt.kind {
			t.Errorf("parse(%q): kind %v, want %v", tt.src, lit.Kind, tt.kind)
		}
	}
}

func TestArrayInit(t *testing.T) {
	arr, ok := parse(t, "{1, 2, 3}").(*expr.ArrayInit)
	if !ok || len(arr.Elems) != 3 {
		t.Fatalf("expected three-element initializer")
	}
	empty, ok := parse(t, "{}").(*expr.ArrayInit)
	if !ok || len(empty.Elems) != 0 {
		t.Fatalf("expected empty initializer")
	}
}

func TestRecordInit(t *testing.T) {
	rec, ok := parse(t, "Point{x: 1, y: 2}").(*expr.RecordInit)
	if !ok || rec.TypeName != "Point" {
		t.Fatalf("expected record initializer")
	}
	if len(rec.Comps) != 2 || rec.Comps[0].Name != "x" || rec.Comps[1].Name != "y" {
		t.Fatalf("named components lost: %+v", rec.Comps)
	}

	pos := parse(t, "Point{1, 2}").(*expr.RecordInit)
	if pos.Comps[0].Name != "" {
		t.Errorf("positional component must have no name")
	}
}

func TestTranslate(t *testing.T) {
	tbl := &expr.OpTable{Spellings: map[string]string{
		"%":  "mod",
		"&&": "and",
		"<-": ":=",
	}}
	tests := []struct {
		src  string
		want string
	}{
		{"a mod b and c", "a mod b and c"},
		{"x <- a % 2", "x := a mod 2"},
	}
	for _, tt := range tests {
		if got := expr.Translate(parse(t, tt.src), tbl); got != tt.want {
			t.Errorf("Translate(%q): got %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		src  string
		code diag.Code
	}{
		{"1 +", diag.SynPrematureEnd},
		{"a b", diag.SynLeftoverTokens},
		{"(1 + 2", diag.SynUnmatchedBracket},
		{"a . 5", diag.SynBadMemberAccess},
		{"f(1, 2", diag.SynPrematureEnd},
		{"a ? b", diag.SynUnexpectedToken},
		{"a[]", diag.SynMissingOperand},
	}
	for _, tt := range tests {
		serr := parseErr(t, tt.src)
		if serr.Code != tt.code {
			t.Errorf("Parse(%q): code %s, want %s", tt.src, serr.Code.ID(), tt.code.ID())
		}
		if serr.Span.Start > serr.Span.End {
			t.Errorf("Parse(%q): inverted span %s", tt.src, serr.Span)
		}
	}
}

func TestSplitTokens(t *testing.T) {
	toks := lexer.Split("a, f(b, c), {d, e}", true)
	pieces := expr.SplitTokens(toks, ",")
	if len(pieces) != 3 {
		t.Fatalf("bracket-aware split: got %d pieces, want 3", len(pieces))
	}
}

func TestParseListKeepTail(t *testing.T) {
	toks := lexer.Split("a + 1, 23 + * 6 (", true)
	exprs, errs := expr.ParseList(toks, ",", true)
	if len(exprs) != 2 {
		t.Fatalf("keepTail must yield one node per piece, got %d", len(exprs))
	}
	if len(errs) != 1 {
		t.Fatalf("expected one collected error, got %d", len(errs))
	}
	raw, ok := exprs[1].(*expr.Literal)
	if !ok || raw.Kind != expr.LitRaw {
		t.Fatalf("broken piece must degrade to a raw node, got %T", exprs[1])
	}
}

func TestMemoFirstAssignmentWins(t *testing.T) {
	e := parse(t, "x")
	if !e.TypeMemo().Set(7) {
		t.Fatalf("first Set must be taken")
	}
	if e.TypeMemo().Set(9) {
		t.Errorf("second Set must be rejected")
	}
	if id, ok := e.TypeMemo().Get(); !ok || id != 7 {
		t.Errorf("Get: got %d, %v", id, ok)
	}
}

package expr

import (
	"strings"

	"strux/internal/lexer"
	"strux/internal/source"
	"strux/internal/token"
)

// NegateText negates a condition at the text level. An outer negation is
// stripped when the rest is a single token or one parenthesized group;
// otherwise the condition is wrapped, with parentheses only when the
// condition is more than one token. Negating a single identifier twice
// yields the original text.
func NegateText(text string) string {
	toks := lexer.Split(text, true).Trim()
	if len(toks) > 0 && (toks[0].Is("!") || toks[0].IsFold("not")) {
		rest := token.List(toks[1:]).Trim()
		if len(rest) == 1 || isParenGroup(rest) {
			return rest.Concat()
		}
	}
	trimmed := strings.TrimSpace(text)
	if len(toks) == 1 {
		return "not " + trimmed
	}
	return "not (" + trimmed + ")"
}

// isParenGroup reports whether the tokens form exactly one parenthesized
// group, blanks aside.
func isParenGroup(l token.List) bool {
	l = l.Trim()
	if len(l) < 2 || !l[0].Is("(") || !l[len(l)-1].Is(")") {
		return false
	}
	depth := 0
	for i, t := range l {
		switch t.Text {
		case "(":
			depth++
		case ")":
			depth--
			if depth == 0 && i != len(l)-1 {
				return false
			}
		}
	}
	return depth == 0
}

// Negate negates a parsed condition: a not-operator is unwrapped, a
// comparison is flipped, anything else is wrapped in a not-operator.
func Negate(e Expr) Expr {
	if op, ok := e.(*Operator); ok {
		if op.Op == "!" && len(op.Ops) == 1 {
			return op.Ops[0]
		}
		if len(op.Ops) == 2 {
			if flipped, ok := flipComparison(op.Op); ok {
				return &Operator{base: newBase(op.Span()), Op: flipped, Ops: op.Ops}
			}
		}
	}
	return &Operator{
		base: newBase(source.Span{Start: e.Span().Start, End: e.Span().End}),
		Op:   "!",
		Ops:  []Expr{e},
	}
}

func flipComparison(op string) (string, bool) {
	switch op {
	case "==":
		return "!=", true
	case "!=":
		return "==", true
	case "<":
		return ">=", true
	case ">=":
		return "<", true
	case ">":
		return "<=", true
	case "<=":
		return ">", true
	}
	return "", false
}

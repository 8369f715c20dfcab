package expr

import (
	"strings"
)

// OpTable customizes rendering for a target language: operator spellings,
// precedence overrides and the unary not spelling. Code generators supply
// one; the zero table renders canonical pseudocode.
type OpTable struct {
	// Spellings maps canonical operators to target spellings, e.g.
	// "%" -> "mod" or "<-" -> ":=".
	Spellings map[string]string
	// Precedence overrides the canonical ladder per canonical operator.
	Precedence map[string]int
}

func (t *OpTable) spell(op string) string {
	if t != nil {
		if s, ok := t.Spellings[op]; ok {
			return s
		}
	}
	return op
}

func (t *OpTable) prec(op string) int {
	if t != nil {
		if p, ok := t.Precedence[op]; ok {
			return p
		}
	}
	return Prec(op)
}

// String renders the expression in canonical spelling, parenthesized only
// where precedence requires it.
func String(e Expr) string { return Translate(e, nil) }

// Translate renders the expression using the given operator table.
func Translate(e Expr, t *OpTable) string {
	var sb strings.Builder
	render(&sb, e, t, precNone)
	return sb.String()
}

// isWordOp reports whether a spelling needs blanks around it regardless of
// precedence, e.g. "mod" or "and".
func isWordOp(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !('a' <= c && c <= 'z' || 'A' <= c && c <= 'Z') {
			return false
		}
	}
	return len(s) > 0
}

func render(sb *strings.Builder, e Expr, t *OpTable, outer int) {
	switch n := e.(type) {
	case *Operator:
		renderOperator(sb, n, t, outer)
	case *Identifier:
		sb.WriteString(n.Name)
	case *Literal:
		sb.WriteString(n.Text)
	case *Index:
		render(sb, n.Base, t, precPostfix)
		sb.WriteByte('[')
		renderList(sb, n.Args, t)
		sb.WriteByte(']')
	case *Member:
		render(sb, n.Base, t, precPostfix)
		sb.WriteByte('.')
		sb.WriteString(n.Name)
	case *Call:
		render(sb, n.Callee, t, precPostfix)
		sb.WriteByte('(')
		renderList(sb, n.Args, t)
		sb.WriteByte(')')
	case *ArrayInit:
		sb.WriteByte('{')
		renderList(sb, n.Elems, t)
		sb.WriteByte('}')
	case *RecordInit:
		sb.WriteString(n.TypeName)
		sb.WriteByte('{')
		for i := range n.Comps {
			if i > 0 {
				sb.WriteString(", ")
			}
			if n.Comps[i].Name != "" {
				sb.WriteString(n.Comps[i].Name)
				sb.WriteString(": ")
			}
			render(sb, n.Comps[i].Value, t, precTernary)
		}
		sb.WriteByte('}')
	}
}

func renderList(sb *strings.Builder, elems []Expr, t *OpTable) {
	for i, e := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		render(sb, e, t, precTernary)
	}
}

func renderOperator(sb *strings.Builder, n *Operator, t *OpTable, outer int) {
	prec := t.prec(n.Op)
	// unary minus and friends bind tighter than their binary spellings
	if len(n.Ops) == 1 && prec < precUnary {
		prec = precUnary
	}
	parens := prec < outer
	if parens {
		sb.WriteByte('(')
	}
	switch len(n.Ops) {
	case 1:
		spell := t.spell(n.Op)
		sb.WriteString(spell)
		if isWordOp(spell) {
			sb.WriteByte(' ')
		}
		render(sb, n.Ops[0], t, precUnary)
	case 3: // cond ? then : else
		render(sb, n.Ops[0], t, prec+1)
		sb.WriteString(" ? ")
		render(sb, n.Ops[1], t, prec)
		sb.WriteString(" : ")
		render(sb, n.Ops[2], t, prec)
	default:
		// the operand on the associating side renders at prec, the other
		// side one step tighter, so a left-leaning tree of a right-assoc
		// operator keeps its parentheses
		leftMin, rightMin := prec, prec+1
		if rightAssoc(n.Op) {
			leftMin, rightMin = prec+1, prec
		}
		render(sb, n.Ops[0], t, leftMin)
		sb.WriteByte(' ')
		sb.WriteString(t.spell(n.Op))
		sb.WriteByte(' ')
		render(sb, n.Ops[1], t, rightMin)
	}
	if parens {
		sb.WriteByte(')')
	}
}

package expr

import (
	"strings"

	"strux/internal/diag"
	"strux/internal/source"
	"strux/internal/token"
)

// cursor is an immutable position in a token list. Parse functions take a
// cursor and return the advanced one, so no position state is shared.
type cursor struct {
	toks token.List
	pos  int
}

func (c cursor) eof() bool { return c.pos >= len(c.toks) }

func (c cursor) peek() token.Token {
	if c.eof() {
		return token.Token{}
	}
	return c.toks[c.pos]
}

func (c cursor) next() cursor { return cursor{toks: c.toks, pos: c.pos + 1} }

// span returns the position to blame for an error at the cursor.
func (c cursor) span() source.Span {
	if c.eof() {
		if n := len(c.toks); n > 0 {
			end := c.toks[n-1].Span.End
			return source.Span{Start: end, End: end}
		}
		return source.Span{}
	}
	return c.peek().Span
}

// Parse parses the whole token list as one expression. Whitespace tokens
// are ignored; tokens left over after the expression are an error.
func Parse(l token.List) (Expr, error) {
	c := cursor{toks: l.NonBlank()}
	e, c, err := parseBinary(c, precAssign)
	if err != nil {
		return nil, err
	}
	if !c.eof() {
		return nil, diag.Errorf(diag.SynLeftoverTokens, c.span(),
			"unexpected %q after expression", c.peek().Text)
	}
	return e, nil
}

// parseBinary climbs the operator ladder starting from minPrec.
func parseBinary(c cursor, minPrec int) (Expr, cursor, error) {
	lhs, c, err := parseUnary(c)
	if err != nil {
		return nil, c, err
	}
	for !c.eof() {
		op := c.peek()
		prec, ok := binaryPrec[op.Text]
		if !ok || prec < minPrec {
			break
		}
		if op.Text == "?" {
			lhs, c, err = parseTernary(c.next(), lhs)
			if err != nil {
				return nil, c, err
			}
			continue
		}
		rightMin := prec + 1
		if rightAssoc(op.Text) {
			rightMin = prec
		}
		var rhs Expr
		rhs, c, err = parseBinary(c.next(), rightMin)
		if err != nil {
			return nil, c, err
		}
		lhs = &Operator{
			base: newBase(source.Span{Start: lhs.Span().Start, End: rhs.Span().End}),
			Op:   op.Text,
			Ops:  []Expr{lhs, rhs},
		}
	}
	return lhs, c, nil
}

// parseTernary finishes cond ? then : else after the question mark. The
// branches parse at ternary level, so a nested selection owns its own colon.
func parseTernary(c cursor, cond Expr) (Expr, cursor, error) {
	thenE, c, err := parseBinary(c, precTernary)
	if err != nil {
		return nil, c, err
	}
	if c.peek().Text != ":" {
		return nil, c, diag.Errorf(diag.SynUnexpectedToken, c.span(),
			"expected \":\" in selection, found %q", c.peek().Text)
	}
	elseE, c, err := parseBinary(c.next(), precTernary)
	if err != nil {
		return nil, c, err
	}
	return &Operator{
		base: newBase(source.Span{Start: cond.Span().Start, End: elseE.Span().End}),
		Op:   "?:",
		Ops:  []Expr{cond, thenE, elseE},
	}, c, nil
}

func parseUnary(c cursor) (Expr, cursor, error) {
	t := c.peek()
	switch t.Text {
	case "!", "+", "-", "*", "&":
		operand, c2, err := parseUnary(c.next())
		if err != nil {
			return nil, c2, err
		}
		return &Operator{
			base: newBase(source.Span{Start: t.Span.Start, End: operand.Span().End}),
			Op:   t.Text,
			Ops:  []Expr{operand},
		}, c2, nil
	}
	atom, c, err := parsePrimary(c)
	if err != nil {
		return nil, c, err
	}
	return parsePostfix(c, atom)
}

// parsePostfix attaches call, index and member chains to an atom.
func parsePostfix(c cursor, atom Expr) (Expr, cursor, error) {
	for !c.eof() {
		switch c.peek().Text {
		case "(":
			args, c2, err := parseBracketList(c.next(), ")")
			if err != nil {
				return nil, c2, err
			}
			atom = &Call{
				base:   newBase(source.Span{Start: atom.Span().Start, End: c2.toks[c2.pos-1].Span.End}),
				Callee: atom,
				Args:   args,
			}
			c = c2
		case "[":
			args, c2, err := parseBracketList(c.next(), "]")
			if err != nil {
				return nil, c2, err
			}
			if len(args) == 0 {
				return nil, c2, diag.Errorf(diag.SynMissingOperand, c.peek().Span,
					"index needs at least one subscript")
			}
			atom = &Index{
				base: newBase(source.Span{Start: atom.Span().Start, End: c2.toks[c2.pos-1].Span.End}),
				Base: atom,
				Args: args,
			}
			c = c2
		case ".":
			name := c.next().peek()
			if !name.IsIdent() {
				return nil, c, diag.Errorf(diag.SynBadMemberAccess, c.next().span(),
					"expected component name after \".\", found %q", name.Text)
			}
			atom = &Member{
				base: newBase(source.Span{Start: atom.Span().Start, End: name.Span.End}),
				Base: atom,
				Name: name.Text,
			}
			c = c.next().next()
		default:
			return atom, c, nil
		}
	}
	return atom, c, nil
}

func parsePrimary(c cursor) (Expr, cursor, error) {
	t := c.peek()
	switch {
	case c.eof():
		return nil, c, diag.Errorf(diag.SynPrematureEnd, c.span(), "expression ends unexpectedly")
	case t.Text == "(":
		e, c2, err := parseBinary(c.next(), precAssign)
		if err != nil {
			return nil, c2, err
		}
		if c2.peek().Text != ")" {
			return nil, c2, diag.Errorf(diag.SynUnmatchedBracket, t.Span, "unmatched \"(\"")
		}
		return e, c2.next(), nil
	case t.Text == "{":
		elems, c2, err := parseBracketList(c.next(), "}")
		if err != nil {
			return nil, c2, err
		}
		return &ArrayInit{
			base:  newBase(source.Span{Start: t.Span.Start, End: c2.toks[c2.pos-1].Span.End}),
			Elems: elems,
		}, c2, nil
	case t.Kind == token.KindInt:
		return &Literal{base: newBase(t.Span), Kind: LitInt, Text: t.Text}, c.next(), nil
	case t.Kind == token.KindFloat:
		return &Literal{base: newBase(t.Span), Kind: LitFloat, Text: t.Text}, c.next(), nil
	case t.Kind == token.KindString:
		return &Literal{base: newBase(t.Span), Kind: LitString, Text: t.Text}, c.next(), nil
	case t.Kind == token.KindChar:
		return &Literal{base: newBase(t.Span), Kind: LitChar, Text: t.Text}, c.next(), nil
	case t.IsIdent() || t.Kind == token.KindKeyword:
		if strings.EqualFold(t.Text, "true") || strings.EqualFold(t.Text, "false") {
			return &Literal{base: newBase(t.Span), Kind: LitBool, Text: t.Text}, c.next(), nil
		}
		if c.next().peek().Text == "{" && t.IsIdent() {
			return parseRecordInit(c.next().next(), t)
		}
		return &Identifier{base: newBase(t.Span), Name: t.Text}, c.next(), nil
	default:
		return nil, c, diag.Errorf(diag.SynMissingOperand, t.Span,
			"expected an operand, found %q", t.Text)
	}
}

// parseRecordInit finishes Type{...} after the opening brace. Components
// are either name: value or positional; the type name resolves later.
func parseRecordInit(c cursor, name token.Token) (Expr, cursor, error) {
	var comps []Component
	if c.peek().Text != "}" {
		for {
			comp, c2, err := parseComponent(c)
			if err != nil {
				return nil, c2, err
			}
			comps = append(comps, comp)
			c = c2
			if c.peek().Text != "," {
				break
			}
			c = c.next()
		}
	}
	if c.peek().Text != "}" {
		return nil, c, diag.Errorf(diag.SynPrematureEnd, c.span(),
			"record initializer for %s is not closed", name.Text)
	}
	end := c.peek().Span.End
	return &RecordInit{
		base:     newBase(source.Span{Start: name.Span.Start, End: end}),
		TypeName: name.Text,
		Comps:    comps,
	}, c.next(), nil
}

func parseComponent(c cursor) (Component, cursor, error) {
	start := c.span()
	name := ""
	if c.peek().IsIdent() && c.next().peek().Text == ":" {
		name = c.peek().Text
		c = c.next().next()
	}
	value, c, err := parseBinary(c, precTernary)
	if err != nil {
		return Component{}, c, err
	}
	return Component{
		base:  newBase(source.Span{Start: start.Start, End: value.Span().End}),
		Name:  name,
		Value: value,
	}, c, nil
}

// parseBracketList parses a comma-separated expression list up to the given
// closing bracket and consumes it. An empty list is allowed.
func parseBracketList(c cursor, closing string) ([]Expr, cursor, error) {
	var elems []Expr
	if c.peek().Text == closing {
		return elems, c.next(), nil
	}
	for {
		if c.eof() {
			return nil, c, diag.Errorf(diag.SynPrematureEnd, c.span(),
				"missing %q before the end of the line", closing)
		}
		e, c2, err := parseBinary(c, precTernary)
		if err != nil {
			return nil, c2, err
		}
		elems = append(elems, e)
		c = c2
		switch c.peek().Text {
		case ",":
			c = c.next()
		case closing:
			return elems, c.next(), nil
		default:
			if c.eof() {
				return nil, c, diag.Errorf(diag.SynPrematureEnd, c.span(),
					"missing %q before the end of the line", closing)
			}
			return nil, c, diag.Errorf(diag.SynUnexpectedToken, c.span(),
				"expected %q or \",\", found %q", closing, c.peek().Text)
		}
	}
}

package expr

import (
	"strux/internal/diag"
	"strux/internal/token"
)

// SplitTokens splits a token list on a separator text, honoring bracket
// nesting: separators inside (), [] or {} do not split. Blank-only pieces
// are kept so callers can detect empty slots.
func SplitTokens(l token.List, sep string) []token.List {
	var out []token.List
	depth := 0
	start := 0
	for i, t := range l {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			if depth > 0 {
				depth--
			}
		case depth == 0 && t.Text == sep:
			out = append(out, l[start:i])
			start = i + 1
		}
	}
	return append(out, l[start:])
}

// ParseList parses a separator-joined sequence of expressions from a full
// token list. With keepTail, a piece that fails to parse becomes a raw
// literal node carrying its source text, and the error is collected instead
// of aborting, so callers always get one node per piece.
func ParseList(l token.List, sep string, keepTail bool) ([]Expr, []*diag.SyntaxError) {
	pieces := SplitTokens(l, sep)
	exprs := make([]Expr, 0, len(pieces))
	var errs []*diag.SyntaxError
	for _, piece := range pieces {
		trimmed := piece.Trim()
		if len(trimmed) == 0 {
			continue
		}
		e, err := Parse(trimmed)
		if err == nil {
			exprs = append(exprs, e)
			continue
		}
		serr, ok := err.(*diag.SyntaxError)
		if !ok {
			serr = diag.Errorf(diag.SynUnparsableTail, trimmed.Span(), "%s", err.Error())
		}
		errs = append(errs, serr)
		if keepTail {
			exprs = append(exprs, RawNode(trimmed))
		}
	}
	return exprs, errs
}

// RawNode wraps unparsable tokens so the line can still be rendered whole.
func RawNode(l token.List) Expr {
	return &Literal{base: newBase(l.Span()), Kind: LitRaw, Text: l.Concat()}
}

package parser

import (
	"strux/internal/diag"
	"strux/internal/expr"
	"strux/internal/keyword"
	"strux/internal/token"
	"strux/internal/types"
)

// extractFor handles both counting and traversing loops. The head keyword
// gives the first guess; the to/in marker decides, and a mismatch between
// the two is reported.
func extractFor(kind Kind, text string, work token.List, opts *Options) (Line, error) {
	rest := dropKey(work, keyword.PreFor, keyword.PreForIn)
	idxTo := topLevelKey(rest, keyword.PostFor)
	idxIn := topLevelKey(rest, keyword.PostForIn)

	switch {
	case idxTo >= 0 && idxIn >= 0:
		return nil, diag.Errorf(diag.ClsForMarkerClash, rest[idxIn].Span,
			"loop header mixes %q and %q", rest[idxTo].Text, rest[idxIn].Text)
	case idxIn >= 0:
		// an explicit counting introducer with an "in" body is a clash,
		// but a shared introducer legitimately serves both forms
		if kind == KindForLoop && !sharedIntroducer(opts.Keywords) && headIsKey(work, keyword.PreFor) {
			return nil, diag.Errorf(diag.ClsForMarkerClash, rest[idxIn].Span,
				"counting loop header contains %q", rest[idxIn].Text)
		}
		return extractForeach(text, rest, idxIn, opts)
	case idxTo >= 0:
		if kind == KindForeachLoop && headIsKey(work, keyword.PreForIn) {
			return nil, diag.Errorf(diag.ClsForMarkerClash, rest[idxTo].Span,
				"traversing loop header contains %q", rest[idxTo].Text)
		}
		return extractCounting(text, rest, idxTo, opts)
	default:
		return nil, diag.Errorf(diag.ClsForMarkerClash, rest.Span(),
			"loop header needs a %q or %q marker",
			opts.Keywords.Phrase(keyword.PostFor), opts.Keywords.Phrase(keyword.PostForIn))
	}
}

// sharedIntroducer reports whether preForIn falls back to preFor, making
// the head keyword ambiguous by configuration.
func sharedIntroducer(t keyword.Table) bool {
	e, ok := t.Entry(keyword.PreForIn)
	return ok && e.Phrase == ""
}

func headIsKey(work token.List, key string) bool {
	return len(work) > 0 && work[0].IsKey(key)
}

// topLevelKey returns the index of the first bracket-free token condensed
// into the named keyword slot, or -1.
func topLevelKey(l token.List, key string) int {
	depth := 0
	for i, t := range l {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			if depth > 0 {
				depth--
			}
		case depth == 0 && t.Key == key:
			return i
		}
	}
	return -1
}

// extractCounting parses "v <- start to end [by step]" after the introducer.
func extractCounting(text string, rest token.List, idxTo int, opts *Options) (Line, error) {
	head := rest[:idxTo].Trim()
	tail := rest[idxTo+1:].Trim()

	assign, err := parseWhole(head)
	if err != nil {
		return nil, err
	}
	op, ok := assign.(*expr.Operator)
	if !ok || op.Op != "<-" || len(op.Ops) != 2 {
		return nil, diag.Errorf(diag.SynExpectAssignment, assign.Span(),
			"counting loop needs \"variable <- start\" before %q", opts.Keywords.Phrase(keyword.PostFor))
	}
	if _, plain := op.Ops[0].(*expr.Identifier); !plain {
		return nil, diag.Errorf(diag.SynExpectIdentifier, op.Ops[0].Span(),
			"loop variable must be a plain name")
	}

	var step expr.Expr
	if idxBy := topLevelKey(tail, keyword.StepFor); idxBy >= 0 {
		stepToks := tail[idxBy+1:].Trim()
		tail = tail[:idxBy].Trim()
		step, err = parseStep(stepToks)
		if err != nil {
			return nil, err
		}
	}
	end, err := parseWhole(tail)
	if err != nil {
		return nil, err
	}

	if opts.Registry != nil {
		v := op.Ops[0].(*expr.Identifier)
		opts.Registry.BindVar(v.Name, opts.Registry.Arena().Primitive(types.PrimInt), opts.Site, false)
	}
	return ForLoop{
		line:  line{text: text},
		Var:   op.Ops[0],
		Start: op.Ops[1],
		End:   end,
		Step:  step,
	}, nil
}

// parseStep accepts an optionally signed integer literal.
func parseStep(l token.List) (expr.Expr, error) {
	e, err := parseWhole(l)
	if err != nil {
		return nil, err
	}
	v := e
	if op, ok := v.(*expr.Operator); ok && len(op.Ops) == 1 && (op.Op == "-" || op.Op == "+") {
		v = op.Ops[0]
	}
	if lit, ok := v.(*expr.Literal); !ok || lit.Kind != expr.LitInt {
		return nil, diag.Errorf(diag.SynBadStepValue, e.Span(),
			"step must be a whole-number literal")
	}
	return e, nil
}

// extractForeach parses "v in item, item, ..." around the marker index.
func extractForeach(text string, rest token.List, idxIn int, opts *Options) (Line, error) {
	head := rest[:idxIn].NonBlank()
	if len(head) != 1 || !head[0].IsIdent() {
		return nil, diag.Errorf(diag.SynExpectIdentifier, token.List(rest[:idxIn]).Span(),
			"traversing loop needs a single name before %q", opts.Keywords.Phrase(keyword.PostForIn))
	}
	items := rest[idxIn+1:].Trim().Clone()
	token.Unify(items, false)
	exprs, errs := expr.ParseList(items, ",", false)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if len(exprs) == 0 {
		return nil, diag.Errorf(diag.SynExpectExpression, items.Span(),
			"traversing loop has nothing to traverse")
	}
	if opts.Registry != nil {
		opts.Registry.BindVar(head[0].Text, types.NoType, opts.Site, false)
	}
	return ForeachLoop{
		line:  line{text: text},
		Var:   expr.NewIdentifier(head[0].Text, head[0].Span),
		Items: exprs,
	}, nil
}

package parser

import (
	"strux/internal/diag"
	"strux/internal/expr"
	"strux/internal/keyword"
	"strux/internal/token"
	"strux/internal/types"
)

// extract dispatches to the per-kind rule. work still contains the prefix
// keyword token when the line had one.
func extract(kind Kind, text string, work token.List, opts *Options, diags *[]diag.Diagnostic) (Line, error) {
	switch kind {
	case KindAssignment:
		return extractAssignment(text, work, opts)
	case KindInput:
		return extractInput(text, work, opts)
	case KindOutput:
		return extractOutput(text, work, diags)
	case KindCondition:
		return extractCondition(text, work)
	case KindForLoop, KindForeachLoop:
		return extractFor(kind, text, work, opts)
	case KindRoutineCall:
		return extractCall(text, work)
	case KindReturn, KindExit, KindThrow:
		return extractJump(kind, text, work)
	case KindLeave:
		return extractLeave(text, work)
	case KindCase:
		return extractCase(text, work)
	case KindSelector:
		return extractSelector(text, work)
	case KindDefault:
		return Default{line: line{text: text}}, nil
	case KindCatch:
		return extractCatch(text, work)
	case KindVarDecl, KindVarInit:
		return extractVarDecl(text, work, opts)
	case KindConstDef:
		return extractConstDef(text, work, opts)
	case KindTypeDef:
		return extractTypeDef(text, work, opts)
	case KindRoutine:
		return extractRoutine(text, work, opts)
	}
	return nil, diag.Errorf(diag.ClsUnresolvableKind, work.Span(), "unsupported line kind %s", kind)
}

// dropHead removes the prefix keyword or introducer word, if present.
func dropHead(work token.List) token.List {
	if len(work) > 0 {
		return work[1:].Trim()
	}
	return work
}

// dropKey removes the head token only when it is the named condensed
// keyword; lines adopted from an expected kind may lack it.
func dropKey(work token.List, keys ...string) token.List {
	if len(work) > 0 {
		for _, k := range keys {
			if work[0].IsKey(k) {
				return dropHead(work)
			}
		}
	}
	return work
}

// dropTrailingKey removes a suffix marker keyword like postAlt.
func dropTrailingKey(work token.List, keys ...string) token.List {
	if len(work) > 0 {
		last := work[len(work)-1]
		for _, k := range keys {
			if last.IsKey(k) {
				return work[:len(work)-1].Trim()
			}
		}
	}
	return work
}

// parseWhole fully unifies and parses the tokens as one expression.
func parseWhole(work token.List) (expr.Expr, error) {
	work = work.Clone()
	token.Unify(work, false)
	return expr.Parse(work)
}

func extractAssignment(text string, work token.List, opts *Options) (Line, error) {
	e, err := parseWhole(work)
	if err != nil {
		// x: int <- 5 parses as a declaration with initializer
		if hasTopLevel(work, ":") || work.IndexFold("as") >= 0 {
			if l, derr := parseVarGroups(text, work, opts); derr == nil {
				return l, nil
			}
		}
		return nil, err
	}
	op, ok := e.(*expr.Operator)
	if !ok || op.Op != "<-" {
		return nil, diag.Errorf(diag.SynExpectAssignment, e.Span(), "expected an assignment")
	}
	if name, _ := expr.Target(op.Ops[0]); name == "" {
		return nil, diag.Errorf(diag.SynExpectIdentifier, op.Ops[0].Span(),
			"assignment target must start with a name")
	} else if opts.Registry != nil {
		opts.Registry.BindVar(name, opts.Registry.Infer(op.Ops[1]), opts.Site, false)
	}
	return Assignment{line: line{text: text}, Expr: e}, nil
}

func extractInput(text string, work token.List, opts *Options) (Line, error) {
	rest := dropKey(work, keyword.Input)
	in := Input{line: line{text: text}}
	nb := rest.NonBlank()
	if len(nb) == 0 {
		return in, nil
	}
	if nb[0].Kind == token.KindString {
		in.Prompt = expr.NewLiteral(expr.LitString, nb[0].Text, nb[0].Span)
		rest = rest[rest.Index(nb[0].Text)+1:].Trim()
		if len(rest) > 0 && rest[0].Is(",") {
			rest = rest[1:].Trim()
		}
	}
	for _, piece := range expr.SplitTokens(rest, ",") {
		piece = piece.Trim()
		if len(piece) == 0 {
			continue
		}
		targets, err := parseInputTargets(piece)
		if err != nil {
			return nil, err
		}
		in.Targets = append(in.Targets, targets...)
	}
	for _, t := range in.Targets {
		if name, _ := expr.Target(t); name != "" && opts.Registry != nil {
			opts.Registry.BindVar(name, types.NoType, opts.Site, false)
		}
	}
	return in, nil
}

// parseInputTargets parses one comma piece. Blank-separated bare names are
// split into individual targets, anything else must parse as one lvalue.
func parseInputTargets(piece token.List) ([]expr.Expr, error) {
	e, err := parseWhole(piece)
	if err == nil {
		if name, _ := expr.Target(e); name == "" {
			return nil, diag.Errorf(diag.SynExpectIdentifier, e.Span(),
				"input target must start with a name")
		}
		return []expr.Expr{e}, nil
	}
	var out []expr.Expr
	for _, t := range piece {
		switch {
		case t.IsBlank():
		case t.IsIdent():
			out = append(out, expr.NewIdentifier(t.Text, t.Span))
		default:
			return nil, err
		}
	}
	if len(out) == 0 {
		return nil, err
	}
	return out, nil
}

func extractOutput(text string, work token.List, diags *[]diag.Diagnostic) (Line, error) {
	rest := dropKey(work, keyword.Output).Clone()
	token.Unify(rest, false)
	exprs, errs := expr.ParseList(rest, ",", true)
	for _, e := range errs {
		*diags = append(*diags, diag.New(diag.SevWarning, e.Code, e.Span, e.Error()))
	}
	return Output{line: line{text: text}, Exprs: exprs}, nil
}

func extractCondition(text string, work token.List) (Line, error) {
	rest := dropKey(work, keyword.PreAlt, keyword.PreWhile, keyword.PreRepeat)
	rest = dropTrailingKey(rest, keyword.PostAlt, keyword.PostWhile, keyword.PostRepeat)
	if len(rest.NonBlank()) == 0 {
		return nil, diag.Errorf(diag.SynExpectExpression, work.Span(), "condition is empty")
	}
	e, err := parseWhole(rest)
	if err != nil {
		return nil, err
	}
	return Condition{line: line{text: text}, Expr: e}, nil
}

func extractCase(text string, work token.List) (Line, error) {
	rest := dropKey(work, keyword.PreCase)
	rest = dropTrailingKey(rest, keyword.PostCase)
	if len(rest.NonBlank()) == 0 {
		return nil, diag.Errorf(diag.SynExpectExpression, work.Span(), "selection lacks a discriminator")
	}
	e, err := parseWhole(rest)
	if err != nil {
		return nil, err
	}
	return Case{line: line{text: text}, Expr: e}, nil
}

func extractSelector(text string, work token.List) (Line, error) {
	rest := work.Clone()
	token.Unify(rest, false)
	values, errs := expr.ParseList(rest, ",", false)
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if len(values) == 0 {
		return nil, diag.Errorf(diag.SynExpectExpression, work.Span(), "branch label is empty")
	}
	return Selector{line: line{text: text}, Values: values}, nil
}

func extractCatch(text string, work token.List) (Line, error) {
	e, err := parseWhole(work)
	if err != nil {
		return nil, err
	}
	if _, ok := e.(*expr.Identifier); !ok {
		return nil, diag.Errorf(diag.SynExpectIdentifier, e.Span(),
			"catch needs a plain name to bind the error to")
	}
	return Catch{line: line{text: text}, Target: e}, nil
}

func extractCall(text string, work token.List) (Line, error) {
	e, err := parseWhole(work)
	if err != nil {
		return nil, err
	}
	if _, ok := e.(*expr.Call); !ok {
		return nil, diag.Errorf(diag.SynUnexpectedToken, e.Span(), "expected a routine call")
	}
	return RoutineCall{line: line{text: text}, Expr: e}, nil
}

func extractJump(kind Kind, text string, work token.List) (Line, error) {
	rest := dropKey(work, keyword.PreReturn, keyword.PreExit, keyword.PreThrow)
	var e expr.Expr
	if len(rest.NonBlank()) > 0 {
		var err error
		e, err = parseWhole(rest)
		if err != nil {
			return nil, err
		}
	}
	switch kind {
	case KindReturn:
		return Return{line: line{text: text}, Expr: e}, nil
	case KindExit:
		return Exit{line: line{text: text}, Expr: e}, nil
	default:
		return Throw{line: line{text: text}, Expr: e}, nil
	}
}

func extractLeave(text string, work token.List) (Line, error) {
	rest := dropKey(work, keyword.PreLeave)
	l := Leave{line: line{text: text}}
	if len(rest.NonBlank()) == 0 {
		return l, nil
	}
	e, err := parseWhole(rest)
	if err != nil {
		return nil, err
	}
	if lit, ok := e.(*expr.Literal); !ok || lit.Kind != expr.LitInt {
		return nil, diag.Errorf(diag.SynUnexpectedToken, e.Span(),
			"leave takes a literal number of loop levels")
	}
	l.Levels = e
	return l, nil
}

package parser

import (
	"strings"

	"strux/internal/diag"
	"strux/internal/expr"
	"strux/internal/keyword"
	"strux/internal/lexer"
	"strux/internal/source"
	"strux/internal/token"
	"strux/internal/types"
)

// Options carries everything one classification call needs. The keyword
// table and registry belong to the caller; the parser never retains them.
type Options struct {
	Keywords keyword.Table
	// Expected constrains the acceptable kinds; the zero value accepts
	// anything.
	Expected KindSet
	// Registry receives type definitions and variable bindings. May be
	// nil when the caller only wants classification.
	Registry *types.Registry
	// Site is the caller's line index, recorded on declarations.
	Site int
}

func (o *Options) registry() *types.Registry {
	if o.Registry == nil {
		o.Registry = types.NewRegistry()
	}
	return o.Registry
}

// Declares reports whether condensed tokens can bind names or types
// explicitly: a var/dim/const/type head, a type annotation as in
// "x: int <- 5", or an "as" clause. Any ":" counts, including inside
// brackets, so routine headers with typed parameters are caught too.
// Such lines must parse against the real registry.
func Declares(toks token.List) bool {
	toks = toks.Trim()
	if len(toks) == 0 {
		return false
	}
	if toks[0].IsIdent() {
		switch strings.ToLower(toks[0].Text) {
		case "var", "dim", "const", "type":
			return true
		}
	}
	return toks.Index(":") >= 0 || toks.IndexFold("as") >= 0
}

// ParseLine classifies one line of pseudocode. It never fails: errors below
// the classification boundary are converted into diagnostics and the line
// degrades to a Raw shape, so the host can keep rendering and editing.
func ParseLine(text string, opts Options) (Line, []diag.Diagnostic) {
	var diags []diag.Diagnostic
	l, err := classify(text, &opts, &diags)
	if err != nil {
		diags = append(diags, toDiagnostic(err))
		l = rawLine(text, &opts, &diags)
	}
	return l, diags
}

func toDiagnostic(err error) diag.Diagnostic {
	if serr, ok := err.(*diag.SyntaxError); ok {
		return serr.Diagnostic()
	}
	return diag.NewError(diag.SynUnexpectedToken, source.Span{}, err.Error())
}

// rawLine builds the degraded shape: comma pieces parsed best-effort, with
// unparsable tails kept as raw nodes.
func rawLine(text string, opts *Options, diags *[]diag.Diagnostic) Line {
	toks := prepare(text, opts)
	token.Unify(toks, false)
	pieces, errs := expr.ParseList(toks, ",", true)
	for _, e := range errs {
		*diags = append(*diags, diag.New(diag.SevWarning, e.Code, e.Span, e.Error()))
	}
	return Raw{line: line{text: text}, Pieces: pieces}
}

// prepare lexes, condenses and normalizes assignments.
func prepare(text string, opts *Options) token.List {
	toks := opts.Keywords.Condense(lexer.Split(text, true))
	token.Unify(toks, true)
	return toks
}

// noteUnterminated reports quote characters the lexer had to leave bare:
// a literal opened there but never closed. Recovered, never raised.
func noteUnterminated(toks token.List, diags *[]diag.Diagnostic) {
	for _, t := range toks {
		if t.Kind == token.KindSym && (t.Text == "\"" || t.Text == "'") {
			*diags = append(*diags, diag.New(diag.SevWarning, diag.LexUnterminatedLiteral, t.Span,
				"literal opened with "+t.Text+" is never closed"))
		}
	}
}

func classify(text string, opts *Options, diags *[]diag.Diagnostic) (Line, error) {
	toks := prepare(text, opts)
	noteUnterminated(toks, diags)
	work := toks.Trim()

	guess, haveGuess := guessKind(work, opts)

	// reconcile the guess with what the caller expects
	if haveGuess && !opts.Expected.Has(guess) {
		return nil, diag.Errorf(diag.ClsKindConflict, work.Span(),
			"line looks like %s, but only %s is allowed here", guess, opts.Expected)
	}
	if !haveGuess {
		if k, ok := opts.Expected.Single(); ok {
			guess, haveGuess = k, true
		}
	}
	if !haveGuess {
		return classifyUnresolved(text, work, opts, diags)
	}
	return extract(guess, text, work, opts, diags)
}

// guessKind inspects the first non-blank token. The boolean is false when
// nothing identifies the line.
func guessKind(work token.List, opts *Options) (Kind, bool) {
	if len(work) == 0 {
		return 0, false
	}
	head := work[0]
	if head.Kind == token.KindKeyword {
		if k, ok := prefixKind(head.Key); ok {
			return k, true
		}
	}
	if head.IsIdent() {
		switch strings.ToLower(head.Text) {
		case "var", "dim":
			if hasTopLevel(work, "<-") {
				return KindVarInit, true
			}
			return KindVarDecl, true
		case "const":
			return KindConstDef, true
		case "type":
			return KindTypeDef, true
		}
	}
	if head.IsFold("default") && len(work.NonBlank()) == 1 {
		return KindDefault, true
	}
	if hasTopLevel(work, "<-") {
		return KindAssignment, true
	}
	return 0, false
}

func prefixKind(key string) (Kind, bool) {
	switch key {
	case keyword.Input:
		return KindInput, true
	case keyword.Output:
		return KindOutput, true
	case keyword.PreAlt, keyword.PreWhile, keyword.PreRepeat:
		return KindCondition, true
	case keyword.PreFor:
		return KindForLoop, true
	case keyword.PreForIn:
		return KindForeachLoop, true
	case keyword.PreCase:
		return KindCase, true
	case keyword.PreLeave:
		return KindLeave, true
	case keyword.PreReturn:
		return KindReturn, true
	case keyword.PreExit:
		return KindExit, true
	case keyword.PreThrow:
		return KindThrow, true
	}
	return 0, false
}

// hasTopLevel reports whether a token occurs outside every bracket group.
func hasTopLevel(l token.List, text string) bool {
	depth := 0
	for _, t := range l {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			if depth > 0 {
				depth--
			}
		case depth == 0 && t.Text == text:
			return true
		}
	}
	return false
}

// classifyUnresolved handles lines with no keyword and no assignment: a
// call-shaped line becomes a routine call, everything else stays raw.
func classifyUnresolved(text string, work token.List, opts *Options, diags *[]diag.Diagnostic) (Line, error) {
	if callShaped(work) {
		token.Unify(work, false)
		e, err := expr.Parse(work)
		if err == nil {
			if _, ok := e.(*expr.Call); ok {
				return RoutineCall{line: line{text: text}, Expr: e}, nil
			}
		}
	}
	if opts.Expected.Has(KindSelector) && opts.Expected != AnyKind {
		return extract(KindSelector, text, work, opts, diags)
	}
	if opts.Expected != AnyKind {
		return nil, diag.Errorf(diag.ClsUnresolvableKind, work.Span(),
			"cannot tell what kind of line this is, expected %s", opts.Expected)
	}
	return rawLine(text, opts, diags), nil
}

// callShaped: an identifier directly followed by a bracketed argument list
// covering the rest of the line.
func callShaped(l token.List) bool {
	nb := l.NonBlank()
	if len(nb) < 3 || !nb[0].IsIdent() || !nb[1].Is("(") || !nb[len(nb)-1].Is(")") {
		return false
	}
	depth := 0
	for i, t := range nb[1:] {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			depth--
			if depth == 0 && i != len(nb)-2 {
				return false
			}
		}
	}
	return depth == 0
}

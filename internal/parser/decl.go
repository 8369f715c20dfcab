package parser

import (
	"strux/internal/diag"
	"strux/internal/expr"
	"strux/internal/token"
	"strux/internal/types"
)

// splitTopLevel splits like expr.SplitTokens but on a matcher, so ":" and
// the word "as" can share one code path.
func splitOnce(l token.List, match func(token.Token) bool) (token.List, token.List, bool) {
	depth := 0
	for i, t := range l {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			if depth > 0 {
				depth--
			}
		case depth == 0 && match(t):
			return l[:i].Trim(), l[i+1:].Trim(), true
		}
	}
	return l, nil, false
}

func isTypeSep(t token.Token) bool { return t.Is(":") || t.IsFold("as") }

func extractVarDecl(text string, work token.List, opts *Options) (Line, error) {
	if len(work) > 0 && (work[0].IsFold("var") || work[0].IsFold("dim")) {
		work = dropHead(work)
	}
	return parseVarGroups(text, work, opts)
}

// parseVarGroups parses "a, b: T" or "x: T <- value", the body of var/dim
// lines and of declarations written without an introducer.
func parseVarGroups(text string, work token.List, opts *Options) (Line, error) {
	decl, init, hasInit := splitOnce(work, func(t token.Token) bool { return t.Is("<-") })
	names, typeToks, hasType := splitOnce(decl, isTypeSep)
	if !hasType {
		return nil, diag.Errorf(diag.TypeMissingDescriptor, decl.Span(),
			"declaration needs \": type\" or \"as type\"")
	}

	declared, err := parseNameList(names)
	if err != nil {
		return nil, err
	}
	reg := opts.registry()
	typeID, err := parseTypeDescriptor(typeToks, reg)
	if err != nil {
		return nil, err
	}

	if hasInit {
		if len(declared) != 1 {
			return nil, diag.Errorf(diag.SynExpressionCount, names.Span(),
				"an initialized declaration introduces exactly one name, got %d", len(declared))
		}
		value, err := parseWhole(init)
		if err != nil {
			return nil, err
		}
		reg.BindVar(declared[0], typeID, opts.Site, true)
		return VarInit{line: line{text: text}, Name: declared[0], Type: typeID, Value: value}, nil
	}
	for _, name := range declared {
		reg.BindVar(name, typeID, opts.Site, true)
	}
	return VarDecl{line: line{text: text}, Names: declared, Type: typeID}, nil
}

// parseNameList reads comma-separated plain names.
func parseNameList(l token.List) ([]string, error) {
	var out []string
	for _, piece := range expr.SplitTokens(l, ",") {
		nb := piece.NonBlank()
		switch {
		case len(nb) == 0:
			return nil, diag.Errorf(diag.SynMisplacedComma, piece.Span(), "empty name before \",\"")
		case len(nb) != 1 || !nb[0].IsIdent():
			return nil, diag.Errorf(diag.SynExpectIdentifier, piece.Span(),
				"expected a plain name, found %q", piece.Trim().Concat())
		}
		out = append(out, nb[0].Text)
	}
	if len(out) == 0 {
		return nil, diag.Errorf(diag.SynExpectIdentifier, l.Span(), "declaration names nothing")
	}
	return out, nil
}

func extractConstDef(text string, work token.List, opts *Options) (Line, error) {
	rest := work
	if len(rest) > 0 && rest[0].IsFold("const") {
		rest = dropHead(rest)
	}
	left, value, ok := splitOnce(rest, func(t token.Token) bool { return t.Is("<-") || t.Is("=") })
	if !ok {
		return nil, diag.Errorf(diag.SynExpectAssignment, rest.Span(),
			"constant definition needs \"<-\" or \"=\"")
	}
	name, typeToks, hasType := splitOnce(left, isTypeSep)
	nb := name.NonBlank()
	if len(nb) != 1 || !nb[0].IsIdent() {
		return nil, diag.Errorf(diag.SynExpectIdentifier, left.Span(),
			"constant definition needs a single name")
	}

	reg := opts.registry()
	typeID := types.NoType
	if hasType {
		var err error
		typeID, err = parseTypeDescriptor(typeToks, reg)
		if err != nil {
			return nil, err
		}
	}
	v, err := parseWhole(value)
	if err != nil {
		return nil, err
	}
	if b, bound := reg.VarBinding(nb[0].Text); bound && b.Explicit {
		return nil, diag.Errorf(diag.SynDuplicateDecl, nb[0].Span,
			"%q is already defined", nb[0].Text)
	}
	if typeID == types.NoType {
		typeID = reg.Infer(v)
	}
	reg.BindVar(nb[0].Text, typeID, opts.Site, true)

	if _, isCall := v.(*expr.Call); isCall {
		return ConstFunctCall{line: line{text: text}, Name: nb[0].Text, Type: typeID, Value: v}, nil
	}
	return ConstDef{line: line{text: text}, Name: nb[0].Text, Type: typeID, Value: v}, nil
}

func extractTypeDef(text string, work token.List, opts *Options) (Line, error) {
	rest := work
	if len(rest) > 0 && rest[0].IsFold("type") {
		rest = dropHead(rest)
	}
	left, right, ok := splitOnce(rest, func(t token.Token) bool { return t.Is("=") })
	if !ok {
		return nil, diag.Errorf(diag.SynExpectAssignment, rest.Span(),
			"type definition needs \"= description\"")
	}
	nb := left.NonBlank()
	if len(nb) != 1 || !nb[0].IsIdent() {
		return nil, diag.Errorf(diag.TypeNotAnIdentifier, left.Span(),
			"type name must be a single plain name")
	}
	name := nb[0].Text

	reg := opts.registry()
	id, err := defineType(name, right, reg)
	if err != nil {
		return nil, err
	}
	return TypeDef{line: line{text: text}, Name: name, Type: id}, nil
}

// defineType registers a named type. Records go through the two-phase
// placeholder so their components can name the record itself.
func defineType(name string, desc token.List, reg *types.Registry) (types.TypeID, error) {
	head := desc.NonBlank()
	if len(head) == 0 {
		return types.NoType, diag.Errorf(diag.TypeMissingDescriptor, desc.Span(),
			"type definition lacks a description")
	}
	if head[0].IsFold("record") || head[0].IsFold("struct") {
		id, err := reg.Reserve(name)
		if err != nil {
			return types.NoType, diag.Errorf(diag.TypeRedefinition, head[0].Span, "%s", err.Error())
		}
		t, perr := parseRecordBody(desc, reg)
		if perr != nil {
			reg.Discard(name)
			return types.NoType, perr
		}
		reg.Complete(id, t)
		return id, nil
	}
	srcID, err := parseTypeDescriptor(desc, reg)
	if err != nil {
		return types.NoType, err
	}
	id, derr := reg.Define(name, reg.Arena().Get(srcID))
	if derr != nil {
		return types.NoType, diag.Errorf(diag.TypeRedefinition, desc.Span(), "%s", derr.Error())
	}
	return id, nil
}

// parseTypeDescriptor resolves a type description to an arena id:
// "array [dims] of T", "T[]" and "T[n]", inline record/struct and enum
// shapes, declared or built-in names, and the explicit unknown "???".
func parseTypeDescriptor(l token.List, reg *types.Registry) (types.TypeID, error) {
	nb := l.Trim()
	head := nb.NonBlank()
	if len(head) == 0 {
		return types.NoType, diag.Errorf(diag.TypeMissingDescriptor, l.Span(), "missing type description")
	}
	switch {
	case head[0].IsFold("array"):
		return parseArrayOf(nb, reg)
	case head[0].IsFold("record") || head[0].IsFold("struct"):
		t, err := parseRecordBody(nb, reg)
		if err != nil {
			return types.NoType, err
		}
		return reg.Arena().New(t), nil
	case head[0].IsFold("enum"):
		t, err := parseEnumBody(nb, reg)
		if err != nil {
			return types.NoType, err
		}
		return reg.Arena().New(t), nil
	}
	if len(head) == 3 && head[0].Is("?") && head[1].Is("?") && head[2].Is("?") {
		return reg.Arena().DummyType(), nil
	}
	// name with optional [n] suffixes
	if !head[0].IsIdent() {
		return types.NoType, diag.Errorf(diag.TypeNotAnIdentifier, head[0].Span,
			"expected a type name, found %q", head[0].Text)
	}
	id, ok := reg.Lookup(head[0].Text)
	if !ok {
		return types.NoType, diag.Errorf(diag.TypeUnresolvedName, head[0].Span,
			"unknown type %q", head[0].Text)
	}
	rest := nb[1:].Trim()
	for len(rest) > 0 {
		if !rest[0].Is("[") {
			return types.NoType, diag.Errorf(diag.SynUnexpectedToken, rest[0].Span,
				"unexpected %q after type name", rest[0].Text)
		}
		close := rest.Index("]")
		if close < 0 {
			return types.NoType, diag.Errorf(diag.SynUnmatchedBracket, rest[0].Span, "unmatched \"[\"")
		}
		offset, size, err := parseDims(rest[1:close].Trim())
		if err != nil {
			return types.NoType, err
		}
		id = reg.Arena().New(types.Type{Kind: types.KindArray, Elem: id, Offset: offset, Size: size})
		rest = rest[close+1:].Trim()
	}
	return id, nil
}

// parseArrayOf parses "array [dims] of T".
func parseArrayOf(l token.List, reg *types.Registry) (types.TypeID, error) {
	rest := dropHead(l) // "array"
	offset, size := 0, types.SizeUnknown
	if len(rest) > 0 && rest[0].Is("[") {
		close := rest.Index("]")
		if close < 0 {
			return types.NoType, diag.Errorf(diag.SynUnmatchedBracket, rest[0].Span, "unmatched \"[\"")
		}
		var err error
		offset, size, err = parseDims(rest[1:close].Trim())
		if err != nil {
			return types.NoType, err
		}
		rest = rest[close+1:].Trim()
	}
	if len(rest) == 0 || !rest[0].IsFold("of") {
		return types.NoType, diag.Errorf(diag.TypeMissingDescriptor, rest.Span(),
			"array type needs \"of element-type\"")
	}
	elem, err := parseTypeDescriptor(dropHead(rest), reg)
	if err != nil {
		return types.NoType, err
	}
	return reg.Arena().New(types.Type{Kind: types.KindArray, Elem: elem, Offset: offset, Size: size}), nil
}

// parseDims reads "20" or "1..20" between array brackets. Empty dims mean
// an unknown size.
func parseDims(l token.List) (offset, size int, err error) {
	nb := l.NonBlank()
	if len(nb) == 0 {
		return 0, types.SizeUnknown, nil
	}
	num := func(t token.Token) (int, bool) {
		if t.Kind != token.KindInt {
			return 0, false
		}
		n := 0
		for i := 0; i < len(t.Text); i++ {
			n = n*10 + int(t.Text[i]-'0')
		}
		return n, true
	}
	switch {
	case len(nb) == 1:
		if n, ok := num(nb[0]); ok {
			return 0, n, nil
		}
	case len(nb) == 3 && nb[1].Is(".."):
		lo, okLo := num(nb[0])
		hi, okHi := num(nb[2])
		if okLo && okHi && hi >= lo {
			return lo, hi - lo + 1, nil
		}
	}
	return 0, 0, diag.Errorf(diag.SynUnexpectedToken, l.Span(),
		"array dimension must be \"size\" or \"low..high\"")
}

// parseRecordBody parses "record { a, b: T; c: U }". Groups are separated
// by semicolons, names inside a group share the group's type.
func parseRecordBody(l token.List, reg *types.Registry) (types.Type, error) {
	body, err := braceBody(dropHead(l))
	if err != nil {
		return types.Type{}, err
	}
	t := types.Type{Kind: types.KindRecord}
	for _, group := range expr.SplitTokens(body, ";") {
		group = group.Trim()
		if len(group) == 0 {
			continue
		}
		names, typeToks, ok := splitOnce(group, isTypeSep)
		if !ok {
			return types.Type{}, diag.Errorf(diag.TypeBadComponent, group.Span(),
				"record component group needs \": type\"")
		}
		declared, nerr := parseNameList(names)
		if nerr != nil {
			return types.Type{}, nerr
		}
		compType, terr := parseTypeDescriptor(typeToks, reg)
		if terr != nil {
			return types.Type{}, terr
		}
		for _, name := range declared {
			for _, f := range t.Fields {
				if f.Name == name {
					return types.Type{}, diag.Errorf(diag.TypeBadComponent, names.Span(),
						"component %q appears twice", name)
				}
			}
			t.Fields = append(t.Fields, types.Field{Name: name, Type: compType})
		}
	}
	if len(t.Fields) == 0 {
		return types.Type{}, diag.Errorf(diag.TypeBadComponent, l.Span(), "record has no components")
	}
	return t, nil
}

// parseEnumBody parses "enum { A, B = 2, C }". Values continue counting
// from the last explicit one.
func parseEnumBody(l token.List, reg *types.Registry) (types.Type, error) {
	body, err := braceBody(dropHead(l))
	if err != nil {
		return types.Type{}, err
	}
	t := types.Type{Kind: types.KindEnum}
	next := int64(0)
	for _, piece := range expr.SplitTokens(body, ",") {
		nb := piece.NonBlank()
		if len(nb) == 0 {
			return types.Type{}, diag.Errorf(diag.SynMisplacedComma, piece.Span(), "empty enumerator")
		}
		if !nb[0].IsIdent() {
			return types.Type{}, diag.Errorf(diag.TypeBadEnumValue, nb[0].Span,
				"enumerator must be a name, found %q", nb[0].Text)
		}
		v := types.EnumValue{Name: nb[0].Text, Value: next}
		if len(nb) > 1 {
			if len(nb) != 3 || !nb[1].Is("=") || nb[2].Kind != token.KindInt {
				return types.Type{}, diag.Errorf(diag.TypeBadEnumValue, piece.Span(),
					"enumerator value must be \"name = number\"")
			}
			var parsed int64
			for i := 0; i < len(nb[2].Text); i++ {
				parsed = parsed*10 + int64(nb[2].Text[i]-'0')
			}
			v.Value, v.HasValue = parsed, true
		}
		next = v.Value + 1
		t.Enums = append(t.Enums, v)
	}
	if len(t.Enums) == 0 {
		return types.Type{}, diag.Errorf(diag.TypeBadEnumValue, l.Span(), "enum has no values")
	}
	return t, nil
}

// braceBody returns the tokens between the outermost braces.
func braceBody(l token.List) (token.List, error) {
	nb := l.Trim()
	if len(nb) == 0 || !nb[0].Is("{") {
		return nil, diag.Errorf(diag.SynUnexpectedToken, nb.Span(), "expected \"{\"")
	}
	if !nb[len(nb)-1].Is("}") {
		return nil, diag.Errorf(diag.SynUnmatchedBracket, nb[0].Span, "unmatched \"{\"")
	}
	return nb[1 : len(nb)-1].Trim(), nil
}

func extractRoutine(text string, work token.List, opts *Options) (Line, error) {
	nb := work.Trim()
	// tolerate a leading function/procedure word
	if len(nb) > 0 && (nb[0].IsFold("function") || nb[0].IsFold("procedure")) {
		nb = dropHead(nb)
	}
	if len(nb) == 0 || !nb[0].IsIdent() {
		return nil, diag.Errorf(diag.SynExpectIdentifier, nb.Span(), "routine header needs a name")
	}
	name := nb[0].Text
	rest := nb[1:].Trim()

	var params []Param
	if len(rest) > 0 && rest[0].Is("(") {
		close := matchingParen(rest)
		if close < 0 {
			return nil, diag.Errorf(diag.SynUnmatchedBracket, rest[0].Span, "unmatched \"(\"")
		}
		var err error
		params, err = parseParams(rest[1:close].Trim(), opts)
		if err != nil {
			return nil, err
		}
		rest = rest[close+1:].Trim()
	}

	result := types.NoType
	if len(rest) > 0 {
		if !isTypeSep(rest[0]) {
			return nil, diag.Errorf(diag.SynUnexpectedToken, rest[0].Span,
				"unexpected %q after parameter list", rest[0].Text)
		}
		var err error
		result, err = parseTypeDescriptor(rest[1:].Trim(), opts.registry())
		if err != nil {
			return nil, err
		}
	}
	for _, p := range params {
		opts.registry().BindVar(p.Name, p.Type, opts.Site, true)
	}
	return Routine{line: line{text: text}, Name: name, Params: params, Result: result}, nil
}

func matchingParen(l token.List) int {
	depth := 0
	for i, t := range l {
		switch {
		case t.IsOpeningBracket():
			depth++
		case t.IsClosingBracket():
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseParams reads parameter groups. Semicolons separate groups; with
// commas only, untyped names collect until a typed one closes the group.
// A name may carry "<- default".
func parseParams(l token.List, opts *Options) ([]Param, error) {
	if len(l.NonBlank()) == 0 {
		return nil, nil
	}
	reg := opts.registry()
	var params []Param
	for _, group := range expr.SplitTokens(l, ";") {
		group = group.Trim()
		if len(group) == 0 {
			continue
		}
		isConst := false
		if nb := group.NonBlank(); len(nb) > 0 && nb[0].IsFold("const") {
			isConst = true
			group = dropHead(group)
		}
		var pending []Param
		for _, piece := range expr.SplitTokens(group, ",") {
			piece = piece.Trim()
			namePart, typePart, typed := splitOnce(piece, isTypeSep)
			p, err := parseOneParam(namePart, isConst)
			if err != nil {
				return nil, err
			}
			pending = append(pending, p)
			if typed {
				typeID, terr := parseTypeDescriptor(typePart, reg)
				if terr != nil {
					return nil, terr
				}
				for i := range pending {
					pending[i].Type = typeID
				}
				params = append(params, pending...)
				pending = nil
			}
		}
		// names after the last typed group stay untyped
		params = append(params, pending...)
	}
	return params, nil
}

func parseOneParam(l token.List, isConst bool) (Param, error) {
	nameToks, def, hasDef := splitOnce(l, func(t token.Token) bool { return t.Is("<-") })
	nb := nameToks.NonBlank()
	if len(nb) != 1 || !nb[0].IsIdent() {
		return Param{}, diag.Errorf(diag.SynExpectIdentifier, l.Span(),
			"parameter must be a plain name, found %q", l.Trim().Concat())
	}
	p := Param{Name: nb[0].Text, Const: isConst}
	if hasDef {
		v, err := parseWhole(def)
		if err != nil {
			return Param{}, err
		}
		p.Default = v
	}
	return p, nil
}

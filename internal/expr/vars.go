package expr

// Walk visits the expression tree in depth-first, left-to-right order. The
// visit function can stop descent by returning false.
func Walk(e Expr, visit func(Expr) bool) {
	if e == nil || !visit(e) {
		return
	}
	switch n := e.(type) {
	case *Operator:
		for _, op := range n.Ops {
			Walk(op, visit)
		}
	case *Index:
		Walk(n.Base, visit)
		for _, a := range n.Args {
			Walk(a, visit)
		}
	case *Member:
		Walk(n.Base, visit)
	case *Call:
		// the callee name is a routine, not a variable use
		if _, bare := n.Callee.(*Identifier); !bare {
			Walk(n.Callee, visit)
		}
		for _, a := range n.Args {
			Walk(a, visit)
		}
	case *ArrayInit:
		for _, el := range n.Elems {
			Walk(el, visit)
		}
	case *RecordInit:
		for i := range n.Comps {
			Walk(n.Comps[i].Value, visit)
		}
	}
}

// Idents collects the identifier names used in the expression, in first-use
// order without duplicates. Record component names and routine names do not
// count as uses.
func Idents(e Expr) []string {
	var out []string
	seen := make(map[string]bool)
	Walk(e, func(n Expr) bool {
		if id, ok := n.(*Identifier); ok && !seen[id.Name] {
			seen[id.Name] = true
			out = append(out, id.Name)
		}
		return true
	})
	return out
}

// Target splits an assignment target into its root name and whether the
// target is a plain identifier. For a[i].x the root is a, with plain false.
func Target(e Expr) (name string, plain bool) {
	switch n := e.(type) {
	case *Identifier:
		return n.Name, true
	case *Index:
		name, _ = Target(n.Base)
		return name, false
	case *Member:
		name, _ = Target(n.Base)
		return name, false
	}
	return "", false
}

// UsedInTarget collects the names read while evaluating an assignment
// target: subscript expressions and, for partial updates, the root itself.
func UsedInTarget(e Expr) []string {
	root, plain := Target(e)
	if plain {
		return nil
	}
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name != "" && !seen[name] {
			seen[name] = true
			out = append(out, name)
		}
	}
	add(root)
	var scan func(Expr)
	scan = func(e Expr) {
		switch n := e.(type) {
		case *Index:
			scan(n.Base)
			for _, a := range n.Args {
				for _, name := range Idents(a) {
					add(name)
				}
			}
		case *Member:
			scan(n.Base)
		}
	}
	scan(e)
	return out
}

package parser

import "strux/internal/expr"

// Sets are the three variable-usage results of one line. Order is first
// occurrence, entries are unique within each set.
type Sets struct {
	Assigned []string
	Declared []string
	Used     []string
}

type setBuilder struct {
	sets Sets
	seen [3]map[string]bool
}

const (
	setAssigned = iota
	setDeclared
	setUsed
)

func (b *setBuilder) add(which int, name string) {
	if name == "" {
		return
	}
	if b.seen[which] == nil {
		b.seen[which] = make(map[string]bool)
	}
	if b.seen[which][name] {
		return
	}
	b.seen[which][name] = true
	switch which {
	case setAssigned:
		b.sets.Assigned = append(b.sets.Assigned, name)
	case setDeclared:
		b.sets.Declared = append(b.sets.Declared, name)
	case setUsed:
		b.sets.Used = append(b.sets.Used, name)
	}
}

func (b *setBuilder) addAll(which int, names []string) {
	for _, n := range names {
		b.add(which, n)
	}
}

// Gather walks a classified line and splits its names into assigned,
// declared and used sets by fixed per-kind rules. ok is false when the
// line's shape does not match its kind, which can happen on trees built by
// hand; gathering is best-effort and never fails hard.
func Gather(l Line) (Sets, bool) {
	var b setBuilder
	ok := true
	switch n := l.(type) {
	case Raw:
		for _, e := range n.Pieces {
			b.addAll(setUsed, expr.Idents(e))
		}
	case Assignment:
		op, isOp := n.Expr.(*expr.Operator)
		if !isOp || op.Op != "<-" || len(op.Ops) != 2 {
			ok = false
			break
		}
		name, _ := expr.Target(op.Ops[0])
		b.add(setAssigned, name)
		b.addAll(setUsed, expr.UsedInTarget(op.Ops[0]))
		b.addAll(setUsed, expr.Idents(op.Ops[1]))
	case Input:
		for _, t := range n.Targets {
			name, _ := expr.Target(t)
			if name == "" {
				ok = false
				continue
			}
			b.add(setAssigned, name)
			b.addAll(setUsed, expr.UsedInTarget(t))
		}
	case Output:
		for _, e := range n.Exprs {
			b.addAll(setUsed, expr.Idents(e))
		}
	case Condition:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case ForLoop:
		name, plain := expr.Target(n.Var)
		if !plain {
			ok = false
		}
		b.add(setAssigned, name)
		b.addAll(setUsed, expr.Idents(n.Start))
		b.addAll(setUsed, expr.Idents(n.End))
		if n.Step != nil {
			b.addAll(setUsed, expr.Idents(n.Step))
		}
	case ForeachLoop:
		name, plain := expr.Target(n.Var)
		if !plain {
			ok = false
		}
		b.add(setAssigned, name)
		for _, item := range n.Items {
			b.addAll(setUsed, expr.Idents(item))
		}
	case RoutineCall:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case ConstFunctCall:
		b.add(setDeclared, n.Name)
		b.add(setAssigned, n.Name)
		b.addAll(setUsed, expr.Idents(n.Value))
	case Return:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case Leave:
		b.addAll(setUsed, expr.Idents(n.Levels))
	case Exit:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case Throw:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case Case:
		b.addAll(setUsed, expr.Idents(n.Expr))
	case Selector:
		for _, v := range n.Values {
			b.addAll(setUsed, expr.Idents(v))
		}
	case Default, TypeDef:
		// nothing to gather
	case Catch:
		name, _ := expr.Target(n.Target)
		if name == "" {
			ok = false
		}
		b.add(setAssigned, name)
	case ConstDef:
		b.add(setDeclared, n.Name)
		b.add(setAssigned, n.Name)
		b.addAll(setUsed, expr.Idents(n.Value))
	case VarDecl:
		b.addAll(setDeclared, n.Names)
	case VarInit:
		b.add(setDeclared, n.Name)
		b.add(setAssigned, n.Name)
		b.addAll(setUsed, expr.Idents(n.Value))
	case Routine:
		for _, p := range n.Params {
			b.add(setDeclared, p.Name)
			if p.Default != nil {
				b.addAll(setUsed, expr.Idents(p.Default))
			}
		}
	default:
		ok = false
	}
	return b.sets, ok
}

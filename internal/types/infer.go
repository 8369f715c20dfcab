package types

import (
	"strconv"
	"strings"

	"fortio.org/safecast"

	"strux/internal/expr"
)

// InferLiteral types a literal by its spelling alone. Unknown spellings
// yield NoType, never an error.
func (r *Registry) InferLiteral(kind expr.LitKind, text string) TypeID {
	a := r.arena
	switch kind {
	case expr.LitBool:
		return a.Primitive(PrimBool)
	case expr.LitString:
		return a.Primitive(PrimString)
	case expr.LitChar:
		// '\n' and 'x' are chars, longer single-quoted text is a string
		if len(text) == 3 || (len(text) == 4 && text[1] == '\\') {
			return a.Primitive(PrimChar)
		}
		return a.Primitive(PrimString)
	case expr.LitInt:
		return r.inferIntLiteral(text)
	case expr.LitFloat:
		return a.Primitive(PrimDouble)
	}
	return NoType
}

// inferIntLiteral runs the numeric cascade: prefixed literals are int, a
// decimal that fits 32 bits is int, a wider one long, and anything only
// parseable as floating point is double.
func (r *Registry) inferIntLiteral(text string) TypeID {
	a := r.arena
	low := strings.ToLower(text)
	if strings.HasPrefix(low, "0x") || strings.HasPrefix(low, "0b") ||
		(len(text) > 1 && text[0] == '0') {
		return a.Primitive(PrimInt)
	}
	if v, err := strconv.ParseInt(text, 10, 64); err == nil {
		if _, err := safecast.Convert[int32](v); err == nil {
			return a.Primitive(PrimInt)
		}
		return a.Primitive(PrimLong)
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return a.Primitive(PrimDouble)
	}
	return NoType
}

// builtinResults types the small set of well-known routine names.
var builtinResults = map[string]Primitive{
	"length":    PrimInt,
	"pos":       PrimInt,
	"ord":       PrimInt,
	"round":     PrimInt,
	"floor":     PrimDouble,
	"ceil":      PrimDouble,
	"sqrt":      PrimDouble,
	"sqr":       PrimDouble,
	"sin":       PrimDouble,
	"cos":       PrimDouble,
	"tan":       PrimDouble,
	"random":    PrimInt,
	"chr":       PrimChar,
	"copy":      PrimString,
	"trim":      PrimString,
	"uppercase": PrimString,
	"lowercase": PrimString,
}

// Infer determines the type of an expression from variable bindings,
// literal spelling, operator result rules and record initializer names.
// Results are memoized on the nodes; absence of information yields NoType.
func (r *Registry) Infer(e expr.Expr) TypeID {
	if e == nil {
		return NoType
	}
	if cached, ok := e.TypeMemo().Get(); ok {
		return TypeID(cached)
	}
	id := r.infer(e)
	if id != NoType {
		e.TypeMemo().Set(uint32(id))
	}
	return id
}

func (r *Registry) infer(e expr.Expr) TypeID {
	a := r.arena
	switch n := e.(type) {
	case *expr.Literal:
		return r.InferLiteral(n.Kind, n.Text)
	case *expr.Identifier:
		return r.VarType(n.Name)
	case *expr.Operator:
		return r.inferOperator(n)
	case *expr.Index:
		if t := a.Get(r.Infer(n.Base)); t.Kind == KindArray {
			return t.Elem
		}
		// indexing a string yields a char
		if t := a.Get(r.Infer(n.Base)); t.Kind == KindPrimitive && t.Prim == PrimString {
			return a.Primitive(PrimChar)
		}
		return NoType
	case *expr.Member:
		if t := a.Get(r.Infer(n.Base)); t.Kind == KindRecord {
			for _, f := range t.Fields {
				if f.Name == n.Name {
					return f.Type
				}
			}
		}
		return NoType
	case *expr.Call:
		if p, ok := builtinResults[strings.ToLower(n.Name())]; ok {
			return a.Primitive(p)
		}
		return NoType
	case *expr.RecordInit:
		if id, ok := r.Lookup(n.TypeName); ok {
			return id
		}
		return NoType
	case *expr.ArrayInit:
		elem := NoType
		for _, el := range n.Elems {
			t := r.Infer(el)
			if elem == NoType {
				elem = t
			} else if t != NoType && !a.StructuralEqual(elem, t) {
				elem = r.promote(elem, t)
			}
		}
		return a.New(Type{Kind: KindArray, Elem: elem, Size: len(n.Elems)})
	}
	return NoType
}

func (r *Registry) inferOperator(n *expr.Operator) TypeID {
	a := r.arena
	switch n.Op {
	case "==", "!=", "<", "<=", ">", ">=", "&&", "||", "!":
		return a.Primitive(PrimBool)
	case "<-":
		if len(n.Ops) == 2 {
			return r.Infer(n.Ops[1])
		}
	case "?:":
		if len(n.Ops) == 3 {
			if t := r.Infer(n.Ops[1]); t != NoType {
				return t
			}
			return r.Infer(n.Ops[2])
		}
	case "%", "<<", ">>", "div":
		return a.Primitive(PrimInt)
	case "+", "-", "*", "/", "&", "|", "^":
		if len(n.Ops) == 1 {
			return r.Infer(n.Ops[0])
		}
		left, right := r.Infer(n.Ops[0]), r.Infer(n.Ops[1])
		// + concatenates when either side is a string
		if n.Op == "+" {
			if a.Get(left).Prim == PrimString || a.Get(right).Prim == PrimString {
				return a.Primitive(PrimString)
			}
		}
		if n.Op == "/" {
			return a.Primitive(PrimDouble)
		}
		return r.promote(left, right)
	}
	return NoType
}

// promote picks the wider of two numeric types; anything else is unknown.
func (r *Registry) promote(x, y TypeID) TypeID {
	a := r.arena
	tx, ty := a.Get(x), a.Get(y)
	if tx.Kind != KindPrimitive || !tx.Prim.Numeric() {
		if ty.Kind == KindPrimitive && ty.Prim.Numeric() {
			return y
		}
		return NoType
	}
	if ty.Kind != KindPrimitive || !ty.Prim.Numeric() {
		return x
	}
	if tx.Prim.rank() >= ty.Prim.rank() {
		return x
	}
	return y
}

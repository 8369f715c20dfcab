package types

import (
	"fmt"
	"strconv"
	"strings"
)

// Encode renders a type as its canonical description string:
//
//	primitives   their name
//	arrays       @name(elem,offset,size)
//	records      $name(comp1:T1;comp2:T2)
//	enums        #name(n1,n2=5,n3)
//	dummy        ???
//
// Anonymous types get positional %N placeholders so structurally equal
// shapes encode identically. A self-reference inside a record encodes as
// the bare record name, which keeps the string finite.
func (a *Arena) Encode(id TypeID) string {
	return a.encode(id, false)
}

// EncodeStructural encodes with every name anonymized, so two types compare
// equal exactly when their shapes match.
func (a *Arena) EncodeStructural(id TypeID) string {
	return a.encode(id, true)
}

// StructuralEqual reports whether two types have the same shape, names
// ignored.
func (a *Arena) StructuralEqual(x, y TypeID) bool {
	if x == y {
		return true
	}
	return a.encode(x, true) == a.encode(y, true)
}

func (a *Arena) encode(id TypeID, anonymize bool) string {
	e := encoder{arena: a, anonymize: anonymize, anon: make(map[TypeID]int), onPath: make(map[TypeID]bool)}
	var sb strings.Builder
	e.write(&sb, id)
	return sb.String()
}

type encoder struct {
	arena     *Arena
	anonymize bool
	anon      map[TypeID]int
	onPath    map[TypeID]bool
}

func (e *encoder) name(id TypeID, t Type) string {
	if !e.anonymize && t.Name != "" {
		return t.Name
	}
	n, ok := e.anon[id]
	if !ok {
		n = len(e.anon) + 1
		e.anon[id] = n
	}
	return "%" + strconv.Itoa(n)
}

func (e *encoder) write(sb *strings.Builder, id TypeID) {
	t := e.arena.Get(id)
	switch t.Kind {
	case KindPrimitive:
		sb.WriteString(t.Prim.String())
	case KindDummy, KindInvalid:
		sb.WriteString("???")
	case KindArray:
		name := e.name(id, t)
		size := "*"
		if t.Size != SizeUnknown {
			size = strconv.Itoa(t.Size)
		}
		fmt.Fprintf(sb, "@%s(", name)
		e.write(sb, t.Elem)
		fmt.Fprintf(sb, ",%d,%s)", t.Offset, size)
	case KindRecord:
		name := e.name(id, t)
		if e.onPath[id] {
			// self-reference, the name alone identifies it
			sb.WriteString("$" + name)
			return
		}
		e.onPath[id] = true
		sb.WriteString("$" + name + "(")
		for i, f := range t.Fields {
			if i > 0 {
				sb.WriteByte(';')
			}
			sb.WriteString(f.Name)
			sb.WriteByte(':')
			e.write(sb, f.Type)
		}
		sb.WriteByte(')')
		delete(e.onPath, id)
	case KindEnum:
		sb.WriteString("#" + e.name(id, t) + "(")
		for i, v := range t.Enums {
			if i > 0 {
				sb.WriteByte(',')
			}
			sb.WriteString(v.Name)
			if v.HasValue {
				sb.WriteString("=" + strconv.FormatInt(v.Value, 10))
			}
		}
		sb.WriteByte(')')
	}
}

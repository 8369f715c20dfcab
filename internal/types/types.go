// Package types models the pseudocode type system: primitives, arrays,
// records and enums held in an arena and addressed by stable ids, plus the
// per-document registry binding names and variables to them. Ids stay valid
// for the arena's lifetime, which is what lets a record component refer to
// the record being defined.
package types

// TypeID addresses a type entry in an Arena. The zero id means "no type".
type TypeID uint32

// NoType is the absent type. Inference yields Unknown instead of failing.
const NoType TypeID = 0

// Kind discriminates the type variants.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindPrimitive
	KindArray
	KindRecord
	KindEnum
	// KindDummy is the explicit "???" unknown.
	KindDummy
)

var kindNames = [...]string{"invalid", "primitive", "array", "record", "enum", "dummy"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// Primitive enumerates the built-in scalar types.
type Primitive uint8

const (
	PrimNone Primitive = iota
	PrimByte
	PrimShort
	PrimInt
	PrimLong
	PrimFloat
	PrimDouble
	PrimChar
	PrimString
	PrimBool
)

var primNames = [...]string{"", "byte", "short", "int", "long", "float", "double", "char", "string", "bool"}

func (p Primitive) String() string {
	if int(p) < len(primNames) {
		return primNames[p]
	}
	return ""
}

// Numeric reports whether the primitive takes part in arithmetic promotion.
func (p Primitive) Numeric() bool {
	switch p {
	case PrimByte, PrimShort, PrimInt, PrimLong, PrimFloat, PrimDouble:
		return true
	}
	return false
}

// rank orders numeric primitives for promotion, widest last.
func (p Primitive) rank() int {
	switch p {
	case PrimByte:
		return 1
	case PrimShort:
		return 2
	case PrimInt:
		return 3
	case PrimLong:
		return 4
	case PrimFloat:
		return 5
	case PrimDouble:
		return 6
	}
	return 0
}

// Field is one record component.
type Field struct {
	Name string
	Type TypeID
}

// EnumValue is one enumerator, with an optional explicit value.
type EnumValue struct {
	Name     string
	Value    int64
	HasValue bool
}

// SizeUnknown marks an array whose element count is not declared.
const SizeUnknown = -1

// Type is one arena entry. Which fields are meaningful depends on Kind.
type Type struct {
	Kind Kind
	Name string // declared name, empty for anonymous types

	Prim Primitive // KindPrimitive

	Elem   TypeID // KindArray
	Offset int    // KindArray, index of the first element
	Size   int    // KindArray, SizeUnknown if not declared

	Fields []Field // KindRecord, ordered

	Enums []EnumValue // KindEnum, ordered
}

// Dummy is the explicit unknown type, rendered as "???".
func Dummy() Type { return Type{Kind: KindDummy} }

func primitive(p Primitive) Type {
	return Type{Kind: KindPrimitive, Name: p.String(), Prim: p}
}

// primitiveByName resolves the built-in scalar names and their aliases.
func primitiveByName(name string) (Primitive, bool) {
	switch name {
	case "byte":
		return PrimByte, true
	case "short":
		return PrimShort, true
	case "int", "integer":
		return PrimInt, true
	case "long", "longint":
		return PrimLong, true
	case "float", "real", "single":
		return PrimFloat, true
	case "double", "longreal":
		return PrimDouble, true
	case "char", "character":
		return PrimChar, true
	case "string", "text":
		return PrimString, true
	case "bool", "boolean":
		return PrimBool, true
	}
	return PrimNone, false
}

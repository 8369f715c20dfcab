package types

import "testing"

func TestEncodePrimitivesAndDummy(t *testing.T) {
	a := NewArena()
	if got := a.Encode(a.Primitive(PrimInt)); got != "int" {
		t.Errorf("int: got %q", got)
	}
	if got := a.Encode(a.DummyType()); got != "???" {
		t.Errorf("dummy: got %q", got)
	}
	if got := a.Encode(NoType); got != "???" {
		t.Errorf("no type: got %q", got)
	}
}

func TestEncodeArray(t *testing.T) {
	a := NewArena()
	named := a.New(Type{Kind: KindArray, Name: "Row", Elem: a.Primitive(PrimDouble), Offset: 1, Size: 20})
	if got := a.Encode(named); got != "@Row(double,1,20)" {
		t.Errorf("named array: got %q", got)
	}
	anon := a.New(Type{Kind: KindArray, Elem: a.Primitive(PrimInt), Offset: 0, Size: SizeUnknown})
	if got := a.Encode(anon); got != "@%1(int,0,*)" {
		t.Errorf("anonymous open array: got %q", got)
	}
}

func TestEncodeRecordAndEnum(t *testing.T) {
	a := NewArena()
	rec := a.New(Type{Kind: KindRecord, Name: "Point", Fields: []Field{
		{Name: "x", Type: a.Primitive(PrimDouble)},
		{Name: "y", Type: a.Primitive(PrimDouble)},
	}})
	if got := a.Encode(rec); got != "$Point(x:double;y:double)" {
		t.Errorf("record: got %q", got)
	}

	enum := a.New(Type{Kind: KindEnum, Name: "Color", Enums: []EnumValue{
		{Name: "red"},
		{Name: "green", Value: 5, HasValue: true},
		{Name: "blue", Value: 6},
	}})
	if got := a.Encode(enum); got != "#Color(red,green=5,blue)" {
		t.Errorf("enum: got %q", got)
	}
}

func TestStructuralEquality(t *testing.T) {
	a := NewArena()
	mk := func(name string) TypeID {
		return a.New(Type{Kind: KindRecord, Name: name, Fields: []Field{
			{Name: "x", Type: a.Primitive(PrimInt)},
		}})
	}
	p, q := mk("P"), mk("Q")
	if !a.StructuralEqual(p, q) {
		t.Errorf("same shape under different names must compare equal")
	}
	r := a.New(Type{Kind: KindRecord, Name: "R", Fields: []Field{
		{Name: "x", Type: a.Primitive(PrimString)},
	}})
	if a.StructuralEqual(p, r) {
		t.Errorf("different component types must not compare equal")
	}
	if !a.StructuralEqual(p, p) {
		t.Errorf("a type equals itself")
	}
}

func TestEncodeStructuralAnonymizesNames(t *testing.T) {
	a := NewArena()
	id := a.New(Type{Kind: KindArray, Name: "Row", Elem: a.Primitive(PrimInt), Offset: 0, Size: 3})
	if got := a.EncodeStructural(id); got != "@%1(int,0,3)" {
		t.Errorf("structural encode: got %q", got)
	}
}

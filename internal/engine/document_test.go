package engine_test

import (
	"context"
	"reflect"
	"testing"

	"strux/internal/engine"
	"strux/internal/keyword"
	"strux/internal/parser"
	"strux/internal/types"
)

func TestUnbreak(t *testing.T) {
	tests := []struct {
		in   []string
		want []string
	}{
		{nil, nil},
		{[]string{"a", "b"}, []string{"a", "b"}},
		{[]string{"x <- 1 +\\", "2", "y <- 3"}, []string{"x <- 1 +\n2", "y <- 3"}},
		{[]string{"a\\", "b\\", "c"}, []string{"a\nb\nc"}},
		// a dangling continuation still yields its line
		{[]string{"a\\"}, []string{"a"}},
	}
	for _, tt := range tests {
		if got := engine.Unbreak(tt.in); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Unbreak(%v): got %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseElementStoresResults(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	results := d.ParseElement("e1", parser.AnyKind, []string{
		"var x: Integer",
		"y <- x + 1",
	})
	if len(results) != 2 {
		t.Fatalf("results: %d", len(results))
	}
	if results[0].Line.Kind() != parser.KindVarDecl || results[1].Line.Kind() != parser.KindAssignment {
		t.Fatalf("kinds: %s, %s", results[0].Line.Kind(), results[1].Line.Kind())
	}

	// declarations feed later inference
	reg := d.Registry()
	if reg.VarType("y") != reg.Arena().Primitive(types.PrimInt) {
		t.Errorf("y must be guessed as int from x + 1")
	}

	r, ok := d.LineSyntax("e1", 1)
	if !ok || r.Line.Text() != "y <- x + 1" {
		t.Errorf("stored line lost")
	}
	if _, ok := d.LineSyntax("e1", 5); ok {
		t.Errorf("out-of-range line must not resolve")
	}
	if _, ok := d.LineSyntax("nope", 0); ok {
		t.Errorf("unknown element must not resolve")
	}
}

func TestParseElementReplacesEarlierResults(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	d.ParseElement("e1", parser.AnyKind, []string{"a <- 1", "b <- 2"})
	d.ParseElement("e1", parser.AnyKind, []string{"c <- 3"})
	rs, _ := d.Element("e1")
	if len(rs) != 1 {
		t.Errorf("old results must be replaced, got %d", len(rs))
	}
}

func TestParseElementJoinsContinuations(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	results := d.ParseElement("e1", parser.AnyKind, []string{"x <- 1 +\\", "2"})
	if len(results) != 1 || results[0].Line.Kind() != parser.KindAssignment {
		t.Fatalf("continuation not joined: %+v", results)
	}
}

func TestDropAndElementIDs(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	d.ParseElement("b", parser.AnyKind, []string{"x <- 1"})
	d.ParseElement("a", parser.AnyKind, []string{"y <- 2"})
	if got := d.ElementIDs(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("ids: %v", got)
	}
	d.Drop("a")
	if got := d.ElementIDs(); !reflect.DeepEqual(got, []string{"b"}) {
		t.Errorf("ids after drop: %v", got)
	}
}

func TestSetKeywordsAffectsLaterParses(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	rs := d.ParseElement("e1", parser.AnyKind, []string{"solange x > 0"})
	if rs[0].Line.Kind() != parser.KindRaw {
		t.Fatalf("unknown introducer must stay raw")
	}
	d.SetKeywords(keyword.Default().With(keyword.PreWhile, "solange"))
	rs = d.ParseElement("e1", parser.AnyKind, []string{"solange x > 0"})
	if rs[0].Line.Kind() != parser.KindCondition {
		t.Errorf("reconfigured keyword not picked up, got %s", rs[0].Line.Kind())
	}
}

func TestParseLines(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	texts := []string{
		"var total: Integer",
		"total <- 0",
		"for i <- 1 to 10",
		"total <- total + i",
		"OUTPUT total",
	}
	results, err := d.ParseLines(context.Background(), texts, parser.AnyKind)
	if err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	if len(results) != len(texts) {
		t.Fatalf("results: %d", len(results))
	}
	wantKinds := []parser.Kind{
		parser.KindVarDecl,
		parser.KindAssignment,
		parser.KindForLoop,
		parser.KindAssignment,
		parser.KindOutput,
	}
	for i, want := range wantKinds {
		if got := results[i].Line.Kind(); got != want {
			t.Errorf("line %d: kind %s, want %s", i, got, want)
		}
	}

	reg := d.Registry()
	if b, ok := reg.VarBinding("total"); !ok || !b.Explicit {
		t.Errorf("declared binding lost: %+v", b)
	}
	if reg.VarType("i") != reg.Arena().Primitive(types.PrimInt) {
		t.Errorf("loop counter guess not applied after the parallel pass")
	}
}

func TestParseLinesBindsAnnotatedDeclarations(t *testing.T) {
	// объявление без вводного слова должно попасть в последовательный
	// проход и связаться так же, как через ParseElement
	texts := []string{"x: int <- 5", "y <- x * 2"}

	bulk := engine.NewDocument(keyword.Default())
	if _, err := bulk.ParseLines(context.Background(), texts, parser.AnyKind); err != nil {
		t.Fatalf("ParseLines: %v", err)
	}
	single := engine.NewDocument(keyword.Default())
	single.ParseElement("e1", parser.AnyKind, texts)

	for name, d := range map[string]*engine.Document{"bulk": bulk, "sequential": single} {
		b, ok := d.Registry().VarBinding("x")
		if !ok || !b.Explicit {
			t.Errorf("%s: x must be bound explicitly, got %+v ok=%v", name, b, ok)
			continue
		}
		if b.Type != d.Registry().Arena().Primitive(types.PrimInt) {
			t.Errorf("%s: x bound to %s", name, d.Registry().Arena().Encode(b.Type))
		}
	}
}

func TestParseLinesCanceledContext(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	texts := make([]string, 64)
	for i := range texts {
		texts[i] = "x <- 1"
	}
	if _, err := d.ParseLines(ctx, texts, parser.AnyKind); err == nil {
		t.Errorf("canceled context must surface an error")
	}
}

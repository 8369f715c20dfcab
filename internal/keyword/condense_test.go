package keyword_test

import (
	"testing"

	"strux/internal/keyword"
	"strux/internal/lexer"
	"strux/internal/token"
)

func condense(t *testing.T, tbl keyword.Table, input string) token.List {
	t.Helper()
	out := tbl.Condense(lexer.Split(input, true))
	if got := out.Concat(); got != input {
		t.Fatalf("condense broke concatenation: %q -> %q", input, got)
	}
	return out
}

func TestCondenseDefaults(t *testing.T) {
	toks := condense(t, keyword.Default(), "for i <- 1 to 10 by 2")
	if toks[0].Key != keyword.PreFor || toks[0].Kind != token.KindKeyword {
		t.Fatalf("head should condense to preFor, got %+v", toks[0])
	}
	if toks.IndexKey(keyword.PostFor) < 0 {
		t.Errorf("marker %q not condensed", "to")
	}
	if toks.IndexKey(keyword.StepFor) < 0 {
		t.Errorf("marker %q not condensed", "by")
	}
}

func TestCondensePrefixPlacement(t *testing.T) {
	toks := condense(t, keyword.Default(), "wait for x")
	if toks.IndexKey(keyword.PreFor) >= 0 {
		t.Errorf("prefix phrase must not match mid-line")
	}
}

func TestCondenseSuffixPlacement(t *testing.T) {
	tbl := keyword.Default().With(keyword.PostWhile, "do")
	toks := condense(t, tbl, "while x > 0 do")
	if toks.IndexKey(keyword.PostWhile) != len(toks)-1 {
		t.Errorf("suffix phrase must condense at line end, got %v", toks.Texts())
	}
	toks = condense(t, tbl, "while do_it(x)")
	if toks.IndexKey(keyword.PostWhile) >= 0 {
		t.Errorf("suffix phrase must not match mid-line")
	}
}

func TestCondenseMultiWordLongestWins(t *testing.T) {
	tbl := keyword.Default().With(keyword.PreForIn, "for each")
	toks := condense(t, tbl, "for each v in items")
	if toks[0].Key != keyword.PreForIn {
		t.Fatalf("expected preForIn head, got %+v", toks[0])
	}
	if toks[0].Text != "for each" {
		t.Errorf("condensed text must keep the source spelling, got %q", toks[0].Text)
	}
	// the remaining "in" marker is still found
	if toks.IndexKey(keyword.PostForIn) < 0 {
		t.Errorf("postForIn marker lost")
	}
}

func TestCondenseCaseSensitivity(t *testing.T) {
	toks := condense(t, keyword.Default(), "FOR i <- 1 to 3")
	if toks[0].Key == keyword.PreFor {
		t.Errorf("case-sensitive table must not match FOR")
	}

	fold := keyword.Build(true, []keyword.Entry{
		{Key: keyword.PreFor, Phrase: "for", Placement: keyword.Prefix},
	})
	toks = condense(t, fold, "FOR i <- 1")
	if toks[0].Key != keyword.PreFor {
		t.Errorf("case-insensitive table must match FOR")
	}
}

func TestCondenseFoldAlwaysKeys(t *testing.T) {
	for _, input := range []string{"INPUT x", "input x", "Input x"} {
		toks := condense(t, keyword.Default(), input)
		if toks[0].Key != keyword.Input {
			t.Errorf("input keyword must match %q regardless of case", input)
		}
	}
}

func TestCondenseInsideWordsDoesNotMatch(t *testing.T) {
	toks := condense(t, keyword.Default(), "formula <- 1")
	if toks.IndexKey(keyword.PreFor) >= 0 {
		t.Errorf("phrases match whole words only")
	}
}

func TestPhraseFallback(t *testing.T) {
	shared := keyword.Default().With(keyword.PreForIn, "")
	if got := shared.Phrase(keyword.PreForIn); got != "for" {
		t.Errorf("empty preForIn must fall back to preFor, got %q", got)
	}
	if got := keyword.Default().Phrase(keyword.PreForIn); got != "foreach" {
		t.Errorf("configured preForIn wins, got %q", got)
	}
}

func TestMatchesWord(t *testing.T) {
	tbl := keyword.Default()
	if !tbl.MatchesWord(keyword.Input, "input") {
		t.Errorf("fold-always key must match lowercase")
	}
	if tbl.MatchesWord(keyword.PreFor, "For") {
		t.Errorf("case-sensitive key must not fold")
	}
}

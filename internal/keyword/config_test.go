package keyword_test

import (
	"bytes"
	"strings"
	"testing"

	"strux/internal/keyword"
)

func TestLoadOverridesDefaults(t *testing.T) {
	src := `
ignore_case = true

[keywords]
preFor = "pour"
preWhile = "tant que"
`
	tbl, err := keyword.Load(strings.NewReader(src))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !tbl.IgnoreCase {
		t.Errorf("ignore_case not applied")
	}
	if got := tbl.Phrase(keyword.PreFor); got != "pour" {
		t.Errorf("preFor: got %q, want %q", got, "pour")
	}
	if got := tbl.Phrase(keyword.PreWhile); got != "tant que" {
		t.Errorf("preWhile: got %q, want %q", got, "tant que")
	}
	// untouched keys keep their defaults
	if got := tbl.Phrase(keyword.PostFor); got != "to" {
		t.Errorf("postFor default lost, got %q", got)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	if _, err := keyword.Load(strings.NewReader("nonsense = 1\n")); err == nil {
		t.Errorf("unknown top-level key must be rejected")
	}
	if _, err := keyword.Load(strings.NewReader("[keywords]\nbogus = \"x\"\n")); err == nil {
		t.Errorf("unknown keyword key must be rejected")
	}
}

func TestLoadRejectsMalformedTOML(t *testing.T) {
	if _, err := keyword.Load(strings.NewReader("[keywords\n")); err == nil {
		t.Errorf("malformed TOML must be rejected")
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	orig := keyword.Default().With(keyword.PreForIn, "for each")
	orig.IgnoreCase = true

	var buf bytes.Buffer
	if err := orig.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	loaded, err := keyword.Load(&buf)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.IgnoreCase != orig.IgnoreCase {
		t.Errorf("IgnoreCase lost in roundtrip")
	}
	for _, key := range orig.Keys() {
		want, _ := orig.Entry(key)
		got, _ := loaded.Entry(key)
		if got.Phrase != want.Phrase {
			t.Errorf("key %s: got %q, want %q", key, got.Phrase, want.Phrase)
		}
	}
}

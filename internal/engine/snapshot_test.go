package engine_test

import (
	"testing"

	"strux/internal/diag"
	"strux/internal/engine"
	"strux/internal/keyword"
	"strux/internal/parser"
)

func TestSnapshotRoundtrip(t *testing.T) {
	d := engine.NewDocument(keyword.Default().With(keyword.PreWhile, "solange"))
	d.ParseElement("body", parser.AnyKind, []string{
		"type Point = record { x, y: double }",
		"var p: Point",
		"p.x <- 1.5",
		"(broken",
	})

	data, err := d.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	s, err := engine.LoadSnapshot(data)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}

	if s.Keywords[keyword.PreWhile] != "solange" {
		t.Errorf("keyword configuration lost: %v", s.Keywords)
	}
	if len(s.Types) != 1 || s.Types[0].Name != "Point" || s.Types[0].Encoding != "$Point(x:double;y:double)" {
		t.Errorf("types: %+v", s.Types)
	}
	if s.Variables["p"] != "$Point(x:double;y:double)" {
		t.Errorf("variables: %v", s.Variables)
	}

	lines, ok := s.Elements["body"]
	if !ok || len(lines) != 4 {
		t.Fatalf("elements: %+v", s.Elements)
	}
	if parser.Kind(lines[0].Kind) != parser.KindTypeDef {
		t.Errorf("line 0 kind: %d", lines[0].Kind)
	}
	if parser.Kind(lines[2].Kind) != parser.KindAssignment {
		t.Errorf("line 2 kind: %d", lines[2].Kind)
	}
	if lines[2].Text != "p.x <- 1.5" {
		t.Errorf("line text lost: %q", lines[2].Text)
	}
	if len(lines[2].Assigned) != 1 || lines[2].Assigned[0] != "p" {
		t.Errorf("sets lost: %+v", lines[2])
	}

	broken := lines[3]
	if parser.Kind(broken.Kind) != parser.KindRaw || len(broken.Diags) == 0 {
		t.Fatalf("degraded line must keep its diagnostics: %+v", broken)
	}
	rebuilt := broken.Diags[0].Diagnostic()
	if rebuilt.Code == diag.UnknownCode || rebuilt.Message == "" {
		t.Errorf("diagnostic summary incomplete: %+v", rebuilt)
	}
}

func TestLoadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := engine.LoadSnapshot([]byte("not msgpack at all")); err == nil {
		t.Errorf("garbage input must be rejected")
	}
}

func TestSnapshotVersion(t *testing.T) {
	d := engine.NewDocument(keyword.Default())
	data, err := d.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	s, err := engine.LoadSnapshot(data)
	if err != nil {
		t.Fatalf("LoadSnapshot: %v", err)
	}
	if s.Version != 1 {
		t.Errorf("version: %d", s.Version)
	}
}

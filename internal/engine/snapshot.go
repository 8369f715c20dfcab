package engine

import (
	"fmt"

	"github.com/vmihailenco/msgpack/v5"

	"strux/internal/diag"
	"strux/internal/source"
)

// snapshotVersion guards the wire layout; bump on incompatible change.
const snapshotVersion = 1

// Snapshot is a document's parse summary in storable form: enough for a
// host to show kinds, types and diagnostics without re-parsing, not enough
// to reconstruct expression trees.
type Snapshot struct {
	Version    int                      `msgpack:"v"`
	IgnoreCase bool                     `msgpack:"fold"`
	Keywords   map[string]string        `msgpack:"kw"`
	Types      []TypeSummary            `msgpack:"types"`
	Variables  map[string]string        `msgpack:"vars"`
	Elements   map[string][]LineSummary `msgpack:"elems"`
}

// TypeSummary is one declared type as its canonical description.
type TypeSummary struct {
	Name     string `msgpack:"n"`
	Encoding string `msgpack:"e"`
}

// LineSummary is one parsed line without its tree.
type LineSummary struct {
	Text     string        `msgpack:"t"`
	Kind     uint8         `msgpack:"k"`
	Assigned []string      `msgpack:"a,omitempty"`
	Declared []string      `msgpack:"d,omitempty"`
	Used     []string      `msgpack:"u,omitempty"`
	Diags    []DiagSummary `msgpack:"diag,omitempty"`
}

// DiagSummary is one diagnostic in storable form.
type DiagSummary struct {
	Code     uint16 `msgpack:"c"`
	Severity uint8  `msgpack:"s"`
	Start    uint32 `msgpack:"lo"`
	End      uint32 `msgpack:"hi"`
	Message  string `msgpack:"m"`
}

// Snapshot captures the document's current parse state.
func (d *Document) Snapshot() ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	s := Snapshot{
		Version:    snapshotVersion,
		IgnoreCase: d.keywords.IgnoreCase,
		Keywords:   make(map[string]string),
		Variables:  make(map[string]string),
		Elements:   make(map[string][]LineSummary, len(d.elements)),
	}
	for _, key := range d.keywords.Keys() {
		s.Keywords[key] = d.keywords.Phrase(key)
	}
	arena := d.registry.Arena()
	for _, name := range d.registry.TypeNames() {
		id, _ := d.registry.Lookup(name)
		s.Types = append(s.Types, TypeSummary{Name: name, Encoding: arena.Encode(id)})
	}
	for _, name := range d.registry.VarNames() {
		s.Variables[name] = arena.Encode(d.registry.VarType(name))
	}
	for id, results := range d.elements {
		lines := make([]LineSummary, 0, len(results))
		for _, r := range results {
			lines = append(lines, summarize(r))
		}
		s.Elements[id] = lines
	}
	return msgpack.Marshal(&s)
}

func summarize(r LineResult) LineSummary {
	ls := LineSummary{
		Text:     r.Line.Text(),
		Kind:     uint8(r.Line.Kind()),
		Assigned: r.Sets.Assigned,
		Declared: r.Sets.Declared,
		Used:     r.Sets.Used,
	}
	for _, dg := range r.Diags {
		ls.Diags = append(ls.Diags, DiagSummary{
			Code:     uint16(dg.Code),
			Severity: uint8(dg.Severity),
			Start:    dg.Primary.Start,
			End:      dg.Primary.End,
			Message:  dg.Message,
		})
	}
	return ls
}

// LoadSnapshot decodes a stored parse summary.
func LoadSnapshot(data []byte) (*Snapshot, error) {
	var s Snapshot
	if err := msgpack.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("syntax snapshot: %w", err)
	}
	if s.Version != snapshotVersion {
		return nil, fmt.Errorf("syntax snapshot: version %d not supported", s.Version)
	}
	return &s, nil
}

// Diagnostic rebuilds the diag value from its summary.
func (d DiagSummary) Diagnostic() diag.Diagnostic {
	return diag.Diagnostic{
		Code:     diag.Code(d.Code),
		Severity: diag.Severity(d.Severity),
		Primary:  source.Span{Start: d.Start, End: d.End},
		Message:  d.Message,
	}
}

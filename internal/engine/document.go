// Package engine ties the line pipeline together for a whole document: it
// owns the registry and keyword table, keeps the per-element syntax map the
// host queries, and offers a parallel bulk parse.
package engine

import (
	"sort"
	"strings"
	"sync"

	"strux/internal/diag"
	"strux/internal/keyword"
	"strux/internal/parser"
	"strux/internal/types"
)

// LineResult is everything the engine knows about one parsed line.
type LineResult struct {
	Line  parser.Line
	Diags []diag.Diagnostic
	Sets  parser.Sets
}

// Document is one diagram's syntax state. Methods are safe for concurrent
// use; the registry has a single writer behind the document lock.
type Document struct {
	mu       sync.Mutex
	keywords keyword.Table
	registry *types.Registry
	elements map[string][]LineResult
}

// NewDocument creates an empty document with its own registry.
func NewDocument(kw keyword.Table) *Document {
	return &Document{
		keywords: kw,
		registry: types.NewRegistry(),
		elements: make(map[string][]LineResult),
	}
}

// Registry exposes the document's registry. Callers that mutate it must
// not do so while a bulk parse is running.
func (d *Document) Registry() *types.Registry { return d.registry }

// Keywords returns the current keyword table.
func (d *Document) Keywords() keyword.Table {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.keywords
}

// SetKeywords swaps the keyword configuration. Only later parses see it;
// stored results keep the table they were parsed with.
func (d *Document) SetKeywords(kw keyword.Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.keywords = kw
}

// Unbreak joins backslash-continued lines into unbroken logical lines.
func Unbreak(lines []string) []string {
	var out []string
	var carry string
	for _, l := range lines {
		if strings.HasSuffix(l, "\\") {
			carry += strings.TrimSuffix(l, "\\") + "\n"
			continue
		}
		out = append(out, carry+l)
		carry = ""
	}
	if carry != "" {
		out = append(out, strings.TrimSuffix(carry, "\n"))
	}
	return out
}

// ParseElement parses an element's text lines in order and stores the
// results in the syntax map, replacing earlier results for that element.
func (d *Document) ParseElement(id string, expected parser.KindSet, lines []string) []LineResult {
	d.mu.Lock()
	defer d.mu.Unlock()
	unbroken := Unbreak(lines)
	results := make([]LineResult, 0, len(unbroken))
	for i, text := range unbroken {
		l, diags := parser.ParseLine(text, parser.Options{
			Keywords: d.keywords,
			Expected: expected,
			Registry: d.registry,
			Site:     i,
		})
		sets, _ := parser.Gather(l)
		results = append(results, LineResult{Line: l, Diags: diags, Sets: sets})
	}
	d.elements[id] = results
	return results
}

// LineSyntax returns the stored result for one line of an element.
func (d *Document) LineSyntax(id string, n int) (LineResult, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rs, ok := d.elements[id]
	if !ok || n < 0 || n >= len(rs) {
		return LineResult{}, false
	}
	return rs[n], true
}

// Element returns all stored results for an element.
func (d *Document) Element(id string) ([]LineResult, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	rs, ok := d.elements[id]
	if !ok {
		return nil, false
	}
	out := make([]LineResult, len(rs))
	copy(out, rs)
	return out, true
}

// Drop forgets an element's stored syntax.
func (d *Document) Drop(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.elements, id)
}

// ElementIDs lists the elements with stored syntax, sorted.
func (d *Document) ElementIDs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, 0, len(d.elements))
	for id := range d.elements {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

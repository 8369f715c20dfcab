// Package keyword holds the configurable dialect vocabulary: which phrases
// introduce loops, branches, jumps and I/O lines, and how they are condensed
// into single tokens before classification. A Table is a value; reloading a
// configuration affects only parses that receive the new value.
package keyword

import (
	"sort"
	"strings"

	"strux/internal/lexer"
)

// Placement restricts where a phrase may be condensed within a line.
type Placement uint8

const (
	Prefix   Placement = iota // first non-blank tokens of the line
	Suffix                    // last non-blank tokens of the line
	Anywhere                  // marker phrases like "to" or "by"
)

// Well-known configuration keys.
const (
	PreAlt     = "preAlt"
	PostAlt    = "postAlt"
	PreCase    = "preCase"
	PostCase   = "postCase"
	PreFor     = "preFor"
	PostFor    = "postFor"
	StepFor    = "stepFor"
	PreForIn   = "preForIn"
	PostForIn  = "postForIn"
	PreWhile   = "preWhile"
	PostWhile  = "postWhile"
	PreRepeat  = "preRepeat"
	PostRepeat = "postRepeat"
	PreLeave   = "preLeave"
	PreReturn  = "preReturn"
	PreExit    = "preExit"
	PreThrow   = "preThrow"
	Input      = "input"
	Output     = "output"
)

// Entry is one configured phrase.
type Entry struct {
	Key       string
	Phrase    string
	Placement Placement

	// FoldAlways makes matching ignore case even when the table is
	// case-sensitive, used for the fixed declaration words.
	FoldAlways bool

	split []string // non-blank token texts of Phrase
}

// Split returns the phrase broken into its word tokens.
func (e Entry) Split() []string { return e.split }

// Table is an immutable keyword configuration.
type Table struct {
	entries []Entry
	byKey   map[string]int

	// IgnoreCase makes all phrase matching case-insensitive.
	IgnoreCase bool
}

// Build assembles a table from entries, computing split forms.
func Build(ignoreCase bool, entries []Entry) Table {
	t := Table{
		entries:    make([]Entry, len(entries)),
		byKey:      make(map[string]int, len(entries)),
		IgnoreCase: ignoreCase,
	}
	copy(t.entries, entries)
	for i := range t.entries {
		e := &t.entries[i]
		e.split = splitPhrase(e.Phrase)
		t.byKey[e.Key] = i
	}
	return t
}

func splitPhrase(phrase string) []string {
	var out []string
	for _, tok := range lexer.Split(phrase, false) {
		if !tok.IsBlank() {
			out = append(out, tok.Text)
		}
	}
	return out
}

// Default returns the stock dialect configuration.
func Default() Table {
	return Build(false, []Entry{
		{Key: PreAlt, Phrase: "", Placement: Prefix},
		{Key: PostAlt, Phrase: "", Placement: Anywhere},
		{Key: PreCase, Phrase: "", Placement: Prefix},
		{Key: PostCase, Phrase: "", Placement: Anywhere},
		{Key: PreFor, Phrase: "for", Placement: Prefix},
		{Key: PostFor, Phrase: "to", Placement: Anywhere},
		{Key: StepFor, Phrase: "by", Placement: Anywhere},
		{Key: PreForIn, Phrase: "foreach", Placement: Prefix},
		{Key: PostForIn, Phrase: "in", Placement: Anywhere},
		{Key: PreWhile, Phrase: "while", Placement: Prefix},
		{Key: PostWhile, Phrase: "", Placement: Suffix},
		{Key: PreRepeat, Phrase: "until", Placement: Prefix},
		{Key: PostRepeat, Phrase: "", Placement: Suffix},
		{Key: PreLeave, Phrase: "leave", Placement: Prefix},
		{Key: PreReturn, Phrase: "return", Placement: Prefix},
		{Key: PreExit, Phrase: "exit", Placement: Prefix},
		{Key: PreThrow, Phrase: "throw", Placement: Prefix},
		{Key: Input, Phrase: "INPUT", Placement: Prefix, FoldAlways: true},
		{Key: Output, Phrase: "OUTPUT", Placement: Prefix, FoldAlways: true},
	})
}

// Phrase returns the configured phrase for a key. An empty preForIn falls
// back to preFor, so legacy configurations keep both loop forms on one
// introducer.
func (t Table) Phrase(key string) string {
	i, ok := t.byKey[key]
	if !ok {
		return ""
	}
	p := t.entries[i].Phrase
	if p == "" && key == PreForIn {
		return t.Phrase(PreFor)
	}
	return p
}

// Entry looks up a configured entry by key.
func (t Table) Entry(key string) (Entry, bool) {
	i, ok := t.byKey[key]
	if !ok {
		return Entry{}, false
	}
	return t.entries[i], true
}

// With returns a copy of the table with one phrase replaced.
func (t Table) With(key, phrase string) Table {
	entries := make([]Entry, len(t.entries))
	copy(entries, t.entries)
	if i, ok := t.byKey[key]; ok {
		entries[i].Phrase = phrase
	} else {
		entries = append(entries, Entry{Key: key, Phrase: phrase, Placement: Anywhere})
	}
	return Build(t.IgnoreCase, entries)
}

// Keys returns all configured keys in a stable order.
func (t Table) Keys() []string {
	keys := make([]string, 0, len(t.entries))
	for _, e := range t.entries {
		keys = append(keys, e.Key)
	}
	sort.Strings(keys)
	return keys
}

// matchFold reports whether phrase matching for the entry ignores case.
func (t Table) matchFold(e Entry) bool {
	return t.IgnoreCase || e.FoldAlways
}

func textsEqual(a, b string, fold bool) bool {
	if fold {
		return strings.EqualFold(a, b)
	}
	return a == b
}

// MatchesWord reports whether a single token text equals the entry's phrase
// under the table's case rule. Multi-word phrases never match a single word.
func (t Table) MatchesWord(key, text string) bool {
	e, ok := t.Entry(key)
	if !ok || len(e.split) != 1 {
		return false
	}
	return textsEqual(e.split[0], text, t.matchFold(e))
}

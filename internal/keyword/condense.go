package keyword

import (
	"sort"

	"strux/internal/token"
)

// Condense collapses every configured phrase occurring in the token list
// into a single keyword token carrying the entry's key. Longer phrases win
// over shorter ones, so "for each" is never split into a bare "for". The
// returned list still concatenates back to the source text.
func (t Table) Condense(l token.List) token.List {
	entries := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		if len(e.split) > 0 {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if len(entries[i].split) != len(entries[j].split) {
			return len(entries[i].split) > len(entries[j].split)
		}
		return len(entries[i].Phrase) > len(entries[j].Phrase)
	})

	out := l.Clone()
	for _, e := range entries {
		out = t.condenseOne(out, e)
	}
	return out
}

func (t Table) condenseOne(l token.List, e Entry) token.List {
	fold := t.matchFold(e)
	var out token.List
	i := 0
	for i < len(l) {
		end, ok := t.matchAt(l, i, e, fold)
		if !ok {
			out = append(out, l[i])
			i++
			continue
		}
		run := l[i:end]
		out = append(out, token.Token{
			Kind: token.KindKeyword,
			Text: run.Concat(),
			Span: run.Span(),
			Key:  e.Key,
		})
		i = end
	}
	return out
}

// matchAt tries to match the entry's split form starting at position i,
// skipping blanks between phrase words. It returns the exclusive end index.
func (t Table) matchAt(l token.List, i int, e Entry, fold bool) (int, bool) {
	first := l[i]
	if first.Kind != token.KindIdent || !textsEqual(first.Text, e.split[0], fold) {
		return 0, false
	}
	switch e.Placement {
	case Prefix:
		for _, prev := range l[:i] {
			if !prev.IsBlank() {
				return 0, false
			}
		}
	case Suffix:
		// checked after the full phrase is consumed
	}
	j := i + 1
	for _, word := range e.split[1:] {
		for j < len(l) && l[j].IsBlank() {
			j++
		}
		if j >= len(l) || l[j].Kind != token.KindIdent || !textsEqual(l[j].Text, word, fold) {
			return 0, false
		}
		j++
	}
	if e.Placement == Suffix {
		for _, rest := range l[j:] {
			if !rest.IsBlank() {
				return 0, false
			}
		}
	}
	return j, true
}

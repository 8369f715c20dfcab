package token

import (
	"strings"

	"strux/internal/source"
)

// List is an ordered sequence of tokens from one line.
type List []Token

// Concat joins the token texts back into source text.
func (l List) Concat() string {
	var sb strings.Builder
	for _, t := range l {
		sb.WriteString(t.Text)
	}
	return sb.String()
}

// Texts returns the token texts in order.
func (l List) Texts() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Text
	}
	return out
}

// Span returns the byte range covered by the list.
func (l List) Span() source.Span {
	if len(l) == 0 {
		return source.Span{}
	}
	return source.Span{Start: l[0].Span.Start, End: l[len(l)-1].Span.End}
}

// NonBlank returns the list with all whitespace tokens removed.
func (l List) NonBlank() List {
	out := make(List, 0, len(l))
	for _, t := range l {
		if !t.IsBlank() {
			out = append(out, t)
		}
	}
	return out
}

// Trim strips leading and trailing whitespace tokens.
func (l List) Trim() List {
	lo, hi := 0, len(l)
	for lo < hi && l[lo].IsBlank() {
		lo++
	}
	for hi > lo && l[hi-1].IsBlank() {
		hi--
	}
	return l[lo:hi]
}

// Index returns the position of the first token with the given text, or -1.
func (l List) Index(text string) int {
	for i, t := range l {
		if t.Text == text {
			return i
		}
	}
	return -1
}

// IndexFold returns the position of the first token matching the text
// ignoring case, or -1.
func (l List) IndexFold(text string) int {
	for i, t := range l {
		if strings.EqualFold(t.Text, text) {
			return i
		}
	}
	return -1
}

// IndexKey returns the position of the first token condensed into the named
// keyword slot, or -1.
func (l List) IndexKey(key string) int {
	for i, t := range l {
		if t.Key == key {
			return i
		}
	}
	return -1
}

// Count returns how many tokens have the given text.
func (l List) Count(text string) int {
	n := 0
	for _, t := range l {
		if t.Text == text {
			n++
		}
	}
	return n
}

// Clone returns a copy that can be mutated independently.
func (l List) Clone() List {
	out := make(List, len(l))
	copy(out, l)
	return out
}

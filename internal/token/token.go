package token

import (
	"strings"

	"strux/internal/source"
)

// Token is a single lexed fragment of a line. Text always holds the exact
// source characters, so concatenating the tokens of a line reproduces the
// line verbatim.
type Token struct {
	Kind Kind
	Text string
	Span source.Span

	// Key names the dialect keyword slot this token was condensed into,
	// empty for ordinary tokens.
	Key string
}

// IsSpace reports whether the token is pure whitespace.
func (t Token) IsSpace() bool { return t.Kind == KindSpace }

// IsBlank reports whether the token is whitespace or empty.
func (t Token) IsBlank() bool {
	return t.Kind == KindSpace || strings.TrimSpace(t.Text) == ""
}

// Is compares the token text case-sensitively.
func (t Token) Is(text string) bool { return t.Text == text }

// IsFold compares the token text ignoring case.
func (t Token) IsFold(text string) bool { return strings.EqualFold(t.Text, text) }

// IsKey reports whether the token was condensed into the named keyword slot.
func (t Token) IsKey(key string) bool { return t.Key == key }

// IsIdent reports whether the token can start a name.
func (t Token) IsIdent() bool { return t.Kind == KindIdent }

// IsOpeningBracket reports whether the token opens a bracket group.
func (t Token) IsOpeningBracket() bool {
	switch t.Text {
	case "(", "[", "{":
		return true
	}
	return false
}

// IsClosingBracket reports whether the token closes a bracket group.
func (t Token) IsClosingBracket() bool {
	switch t.Text {
	case ")", "]", "}":
		return true
	}
	return false
}

// MatchingBracket returns the closing bracket for an opening one.
func MatchingBracket(open string) string {
	switch open {
	case "(":
		return ")"
	case "[":
		return "]"
	case "{":
		return "}"
	}
	return ""
}

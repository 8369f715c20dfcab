// Package lexer splits a single pseudocode line into tokens. The split is
// purely lexical and never fails: malformed input yields tokens that later
// stages reject with diagnostics. Concatenating the texts of all tokens,
// whitespace included, reproduces the source line exactly.
package lexer

import (
	"strings"
	"unicode/utf8"

	"strux/internal/source"
	"strux/internal/token"
)

const delimiters = " \t\n.,;:()[]{}<>=/\\?!%&|~^*-+\"'"

// two-character symbols reassembled from adjacent delimiters
var pairSyms = [...]string{
	"<-", ":=", "!=", "==", "<>", "<=", "<<", ">=", ">>", "&&", "||",
}

func isDelimiter(r rune) bool {
	if r < utf8.RuneSelf {
		return strings.ContainsRune(delimiters, r)
	}
	switch r {
	case '←', '≠', '≤', '≥':
		return true
	}
	return false
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' || b == '\n' }

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// Split lexes a line. With restoreLiterals set, string and character
// literals are kept as single tokens; an unterminated literal degrades to
// its raw tokens instead of being dropped.
func Split(line string, restoreLiterals bool) token.List {
	s := scanner{src: line, restore: restoreLiterals}
	for s.pos < len(s.src) {
		s.step()
	}
	return s.out
}

type scanner struct {
	src     string
	pos     int
	restore bool
	out     token.List
}

func (s *scanner) emit(kind token.Kind, start, end int) {
	s.out = append(s.out, token.Token{
		Kind: kind,
		Text: s.src[start:end],
		Span: source.Span{Start: uint32(start), End: uint32(end)},
	})
}

func (s *scanner) step() {
	b := s.src[s.pos]
	switch {
	case isBlank(b):
		s.blank()
	case b == '"' || b == '\'':
		s.quote(b)
	case b == '.':
		s.dot()
	case b == '\\':
		s.backslash()
	case b < utf8.RuneSelf && strings.ContainsRune(delimiters, rune(b)):
		s.symbol()
	case b >= utf8.RuneSelf:
		if r, _ := utf8.DecodeRuneInString(s.src[s.pos:]); isDelimiter(r) {
			s.rune()
		} else {
			s.word()
		}
	default:
		s.word()
	}
}

func (s *scanner) blank() {
	start := s.pos
	for s.pos < len(s.src) && isBlank(s.src[s.pos]) {
		s.pos++
	}
	s.emit(token.KindSpace, start, s.pos)
}

// word consumes a maximal run of non-delimiter characters and classifies
// it as an identifier or a number.
func (s *scanner) word() {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if isDelimiter(r) {
			break
		}
		s.pos += size
	}
	s.emit(classifyWord(s.src[start:s.pos]), start, s.pos)
}

func classifyWord(text string) token.Kind {
	if !isDigit(text[0]) {
		return token.KindIdent
	}
	if len(text) > 2 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			if allIn(text[2:], "0123456789abcdefABCDEF") {
				return token.KindInt
			}
		case 'b', 'B':
			if allIn(text[2:], "01") {
				return token.KindInt
			}
		}
	}
	if allIn(text, "0123456789") {
		return token.KindInt
	}
	// digit-led words like 1e5 or 23rd stay single tokens
	return token.KindIdent
}

func allIn(text, set string) bool {
	for i := 0; i < len(text); i++ {
		if !strings.ContainsRune(set, rune(text[i])) {
			return false
		}
	}
	return true
}

// rune emits one non-ASCII delimiter as its own symbol token.
func (s *scanner) rune() {
	_, size := utf8.DecodeRuneInString(s.src[s.pos:])
	s.emit(token.KindSym, s.pos, s.pos+size)
	s.pos += size
}

func (s *scanner) backslash() {
	if s.pos+1 < len(s.src) {
		switch s.src[s.pos+1] {
		case '"', '\'', '\\':
			s.emit(token.KindSym, s.pos, s.pos+2)
			s.pos += 2
			return
		}
	}
	s.emit(token.KindSym, s.pos, s.pos+1)
	s.pos++
}

func (s *scanner) symbol() {
	rest := s.src[s.pos:]
	if strings.HasPrefix(rest, "<--") {
		s.emit(token.KindSym, s.pos, s.pos+3)
		s.pos += 3
		return
	}
	for _, sym := range pairSyms {
		if strings.HasPrefix(rest, sym) {
			s.emit(token.KindSym, s.pos, s.pos+2)
			s.pos += 2
			return
		}
	}
	s.emit(token.KindSym, s.pos, s.pos+1)
	s.pos++
}

// dot distinguishes ellipses, member access and float literal continuation.
func (s *scanner) dot() {
	if strings.HasPrefix(s.src[s.pos:], "..") {
		end := s.pos + 2
		if end < len(s.src) && s.src[end] == '.' {
			end++
		}
		s.emit(token.KindSym, s.pos, end)
		s.pos = end
		return
	}
	if s.mergeFloat() {
		return
	}
	s.emit(token.KindSym, s.pos, s.pos+1)
	s.pos++
}

// mergeFloat tries to fold the dot at the cursor together with the adjacent
// digit runs into one float token. It reports whether a merge happened.
func (s *scanner) mergeFloat() bool {
	// integer part, only when the previous token is a plain integer that
	// touches the dot
	intPart := -1
	if n := len(s.out); n > 0 {
		prev := s.out[n-1]
		if prev.Kind == token.KindInt && int(prev.Span.End) == s.pos && allIn(prev.Text, "0123456789") {
			intPart = int(prev.Span.Start)
		}
	}
	end := s.pos + 1
	fracStart := end
	for end < len(s.src) && !isDelimiter(rune(s.src[end])) {
		end++
	}
	frac := s.src[fracStart:end]

	switch {
	case frac == "" && intPart >= 0:
		// trailing dot: 5. but not 5..10
	case matchesFraction(frac) && (intPart >= 0 || s.leadingDotOK()):
		// 1.5, .5, 1.5e3
		if exp := strings.IndexAny(frac, "eE"); exp == len(frac)-1 {
			// sign-split exponent: 1.5e-3 lexes as 5e, -, 3
			if end+1 < len(s.src) && (s.src[end] == '+' || s.src[end] == '-') && isDigit(s.src[end+1]) {
				end++
				for end < len(s.src) && isDigit(s.src[end]) {
					end++
				}
			} else {
				return false
			}
		}
	default:
		return false
	}

	start := s.pos
	if intPart >= 0 {
		start = intPart
		s.out = s.out[:len(s.out)-1]
	}
	s.emit(token.KindFloat, start, end)
	s.pos = end
	return true
}

// matchesFraction accepts digit runs with an optional exponent, including
// a dangling e whose signed tail follows as separate characters.
func matchesFraction(frac string) bool {
	if frac == "" || !isDigit(frac[0]) {
		return false
	}
	i := 0
	for i < len(frac) && isDigit(frac[i]) {
		i++
	}
	if i == len(frac) {
		return true
	}
	if frac[i] != 'e' && frac[i] != 'E' {
		return false
	}
	i++
	if i == len(frac) {
		return true // exponent sign and digits follow as separate tokens
	}
	for ; i < len(frac); i++ {
		if !isDigit(frac[i]) {
			return false
		}
	}
	return true
}

// leadingDotOK guards .5 style floats: allowed at line start, after
// whitespace or after an operator, but not after a name or closing bracket
// where the dot means member access.
func (s *scanner) leadingDotOK() bool {
	for i := len(s.out) - 1; i >= 0; i-- {
		t := s.out[i]
		if t.IsBlank() {
			continue
		}
		return t.Kind == token.KindSym && !t.IsClosingBracket()
	}
	return true
}

// quote scans a string or character literal. Without literal restoration,
// or when no matching close quote exists, the quote stays a plain symbol
// and the remainder is lexed normally.
func (s *scanner) quote(open byte) {
	if s.restore {
		for j := s.pos + 1; j < len(s.src); j++ {
			switch s.src[j] {
			case '\\':
				j++
			case open:
				kind := token.KindString
				if open == '\'' {
					kind = token.KindChar
				}
				s.emit(kind, s.pos, j+1)
				s.pos = j + 1
				return
			}
		}
	}
	s.emit(token.KindSym, s.pos, s.pos+1)
	s.pos++
}

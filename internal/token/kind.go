package token

// Kind classifies a lexed fragment of a line.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindSpace // run of blanks or tabs
	KindIdent // identifier or bare word
	KindInt   // integer literal, any base
	KindFloat // floating point literal
	KindString
	KindChar
	KindSym     // operator or punctuation symbol
	KindKeyword // condensed dialect keyword phrase
)

var kindNames = [...]string{
	KindInvalid: "invalid",
	KindSpace:   "space",
	KindIdent:   "ident",
	KindInt:     "int",
	KindFloat:   "float",
	KindString:  "string",
	KindChar:    "char",
	KindSym:     "sym",
	KindKeyword: "keyword",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// IsLiteral reports whether the kind is a literal constant.
func (k Kind) IsLiteral() bool {
	switch k {
	case KindInt, KindFloat, KindString, KindChar:
		return true
	}
	return false
}

package expr

// Binary precedence levels, low to high. Unary and postfix binding is
// handled structurally by the parser.
const (
	precNone = iota
	precAssign
	precTernary
	precOr
	precAnd
	precBitOr
	precBitXor
	precBitAnd
	precEquality
	precRelational
	precShift
	precAdditive
	precMultiplicative
	precUnary
	precPostfix
)

var binaryPrec = map[string]int{
	"<-":  precAssign,
	"?":   precTernary,
	"||":  precOr,
	"&&":  precAnd,
	"|":   precBitOr,
	"^":   precBitXor,
	"&":   precBitAnd,
	"==":  precEquality,
	"!=":  precEquality,
	"<":   precRelational,
	"<=":  precRelational,
	">":   precRelational,
	">=":  precRelational,
	"<<":  precShift,
	">>":  precShift,
	"+":   precAdditive,
	"-":   precAdditive,
	"*":   precMultiplicative,
	"/":   precMultiplicative,
	"%":   precMultiplicative,
	"div": precMultiplicative,
}

func rightAssoc(op string) bool {
	return op == "<-" || op == "?"
}

// Prec returns the binding strength of a canonical operator for rendering:
// binary operators get their ladder level, unary and ternary spellings fall
// back sensibly, unknown operators bind tightest.
func Prec(op string) int {
	if p, ok := binaryPrec[op]; ok {
		return p
	}
	switch op {
	case "?:":
		return precTernary
	case "!":
		return precUnary
	}
	return precPostfix
}

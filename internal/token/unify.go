package token

import "strings"

// wordOps maps the spelled operator words onto their canonical symbols.
// Matching ignores case.
var wordOps = map[string]string{
	"mod": "%",
	"div": "div",
	"shl": "<<",
	"shr": ">>",
	"and": "&&",
	"or":  "||",
	"not": "!",
	"xor": "^",
}

// Unify rewrites operator spellings in place to their canonical forms and
// returns the number of tokens changed. With assignmentOnly set, only the
// assignment spellings are touched. Unify is idempotent: running it again
// changes nothing.
func Unify(l List, assignmentOnly bool) int {
	count := 0
	for i := range l {
		t := &l[i]
		if t.Kind == KindString || t.Kind == KindChar || t.Kind == KindSpace || t.Key != "" {
			continue
		}
		repl := ""
		switch t.Text {
		case ":=", "<--", "←":
			repl = "<-"
		}
		if repl == "" && !assignmentOnly {
			switch t.Text {
			case "=":
				repl = "=="
			case "<>", "≠":
				repl = "!="
			case "≤":
				repl = "<="
			case "≥":
				repl = ">="
			default:
				if t.Kind == KindIdent {
					if sym, ok := wordOps[strings.ToLower(t.Text)]; ok && sym != t.Text {
						repl = sym
					}
				}
			}
		}
		if repl != "" {
			t.Text = repl
			t.Kind = KindSym
			count++
		}
	}
	return count
}

package diagfmt

import (
	"fmt"
	"io"

	"strux/internal/token"
)

// DumpTokens writes one token per row: span, kind, text, and the keyword
// slot for condensed tokens.
func DumpTokens(w io.Writer, l token.List) {
	for _, t := range l {
		key := ""
		if t.Key != "" {
			key = "  key=" + t.Key
		}
		fmt.Fprintf(w, "%3d..%-3d %-8s %q%s\n", t.Span.Start, t.Span.End, t.Kind, t.Text, key)
	}
}

// Package diagfmt renders diagnostics and parse results for terminals.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"strux/internal/diag"
	"strux/internal/parser"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	dimColor  = color.New(color.Faint)
)

// Printer writes human-readable diagnostics with source excerpts and
// caret markers under the blamed range.
type Printer struct {
	Out io.Writer
	// NoColor disables ANSI styling regardless of terminal detection.
	NoColor bool
}

func (p *Printer) sevColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

func (p *Printer) sprintf(c *color.Color, format string, args ...any) string {
	if p.NoColor {
		return fmt.Sprintf(format, args...)
	}
	return c.Sprintf(format, args...)
}

// Print renders one diagnostic against its source line.
func (p *Printer) Print(line string, d diag.Diagnostic) {
	head := p.sprintf(p.sevColor(d.Severity), "%s[%s]", d.Severity, d.Code.ID())
	fmt.Fprintf(p.Out, "%s: %s\n", head, d.Message)
	p.excerpt(line, d)
	for _, note := range d.Notes {
		fmt.Fprintf(p.Out, "  %s %s\n", p.sprintf(dimColor, "note:"), note.Msg)
	}
}

// excerpt prints the source line and a caret run under the primary span.
// Column arithmetic uses display widths, so wide runes keep the carets
// aligned.
func (p *Printer) excerpt(line string, d diag.Diagnostic) {
	if line == "" {
		return
	}
	fmt.Fprintf(p.Out, "  %s\n", line)

	start, end := int(d.Primary.Start), int(d.Primary.End)
	if start > len(line) {
		start = len(line)
	}
	if end > len(line) {
		end = len(line)
	}
	pad := runewidth.StringWidth(line[:start])
	width := runewidth.StringWidth(line[start:end])
	if width < 1 {
		width = 1
	}
	marker := strings.Repeat(" ", pad) + strings.Repeat("^", width)
	fmt.Fprintf(p.Out, "  %s\n", p.sprintf(p.sevColor(d.Severity), "%s", marker))
}

// PrintAll renders every diagnostic of a line.
func (p *Printer) PrintAll(line string, diags []diag.Diagnostic) {
	for _, d := range diags {
		p.Print(line, d)
	}
}

// Summary renders a one-line description of a classified line.
func Summary(l parser.Line) string {
	var sb strings.Builder
	sb.WriteString(l.Kind().String())
	sets, _ := parser.Gather(l)
	writeSet := func(label string, names []string) {
		if len(names) > 0 {
			fmt.Fprintf(&sb, "  %s=%s", label, strings.Join(names, ","))
		}
	}
	writeSet("assigned", sets.Assigned)
	writeSet("declared", sets.Declared)
	writeSet("used", sets.Used)
	return sb.String()
}

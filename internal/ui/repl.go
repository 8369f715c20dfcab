// Package ui contains the interactive terminal front end: a small REPL
// that parses one pseudocode line per entry against a shared document, so
// type definitions and bindings carry over between entries.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"strux/internal/engine"
	"strux/internal/parser"
)

var (
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	dimStyle    = lipgloss.NewStyle().Faint(true)
)

type entry struct {
	text   string
	result engine.LineResult
}

type replModel struct {
	doc     *engine.Document
	input   textinput.Model
	entries []entry
	site    int
	width   int
}

// NewREPL returns a Bubble Tea model for the interactive parser.
func NewREPL(doc *engine.Document) tea.Model {
	in := textinput.New()
	in.Prompt = promptStyle.Render("strux> ")
	in.Placeholder = "type a pseudocode line, ctrl+d to quit"
	in.Focus()
	return &replModel{doc: doc, input: in, width: 80}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 10
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			text := m.input.Value()
			if strings.TrimSpace(text) != "" {
				m.submit(text)
			}
			m.input.SetValue("")
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *replModel) submit(text string) {
	id := fmt.Sprintf("repl-%d", m.site)
	m.site++
	results := m.doc.ParseElement(id, parser.AnyKind, []string{text})
	if len(results) > 0 {
		m.entries = append(m.entries, entry{text: text, result: results[0]})
	}
	if len(m.entries) > 12 {
		m.entries = m.entries[len(m.entries)-12:]
	}
}

func (m *replModel) View() string {
	var sb strings.Builder
	for _, e := range m.entries {
		sb.WriteString(promptStyle.Render("strux> "))
		sb.WriteString(e.text)
		sb.WriteByte('\n')
		sb.WriteString("  ")
		sb.WriteString(kindStyle.Render(e.result.Line.Kind().String()))
		sb.WriteString(dimStyle.Render("  " + setsLine(e.result)))
		sb.WriteByte('\n')
		for _, d := range e.result.Diags {
			sb.WriteString("  ")
			sb.WriteString(errStyle.Render(fmt.Sprintf("%s: %s", d.Code.ID(), d.Message)))
			sb.WriteByte('\n')
		}
	}
	sb.WriteString(m.input.View())
	sb.WriteByte('\n')
	return sb.String()
}

func setsLine(r engine.LineResult) string {
	var parts []string
	if len(r.Sets.Assigned) > 0 {
		parts = append(parts, "assigned: "+strings.Join(r.Sets.Assigned, ", "))
	}
	if len(r.Sets.Declared) > 0 {
		parts = append(parts, "declared: "+strings.Join(r.Sets.Declared, ", "))
	}
	if len(r.Sets.Used) > 0 {
		parts = append(parts, "used: "+strings.Join(r.Sets.Used, ", "))
	}
	return strings.Join(parts, "  ")
}

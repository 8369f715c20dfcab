package main

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"strux/internal/engine"
	"strux/internal/ui"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Parse lines interactively",
	Long:  `Repl opens an interactive prompt; every entered line is parsed against one shared document, so type definitions carry over`,
	RunE:  runRepl,
}

func runRepl(cmd *cobra.Command, args []string) error {
	kw, err := loadKeywords(cmd)
	if err != nil {
		return err
	}
	doc := engine.NewDocument(kw)
	p := tea.NewProgram(ui.NewREPL(doc))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("repl failed: %w", err)
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strux/internal/engine"
	"strux/internal/parser"
)

var typesCmd = &cobra.Command{
	Use:   "types [flags] [\"line\"...]",
	Short: "Show the types and bindings a set of lines declares",
	Long: `Types parses the lines against one shared registry and prints every
declared type as its canonical description, plus the variable bindings.`,
	RunE: runTypes,
}

func init() {
	typesCmd.Flags().String("file", "", "read lines from a file instead of arguments")
}

func runTypes(cmd *cobra.Command, args []string) error {
	kw, err := loadKeywords(cmd)
	if err != nil {
		return err
	}
	lines, err := collectLines(cmd, args)
	if err != nil {
		return err
	}

	doc := engine.NewDocument(kw)
	doc.ParseElement("cli", parser.AnyKind, lines)

	reg := doc.Registry()
	arena := reg.Arena()
	if names := reg.TypeNames(); len(names) > 0 {
		fmt.Fprintln(os.Stdout, "types:")
		for _, name := range names {
			id, _ := reg.Lookup(name)
			fmt.Fprintf(os.Stdout, "  %-16s %s\n", name, arena.Encode(id))
		}
	}
	if names := reg.VarNames(); len(names) > 0 {
		fmt.Fprintln(os.Stdout, "variables:")
		for _, name := range names {
			b, _ := reg.VarBinding(name)
			origin := "guessed"
			if b.Explicit {
				origin = "declared"
			}
			fmt.Fprintf(os.Stdout, "  %-16s %-10s %s\n", name, origin, arena.Encode(b.Type))
		}
	}
	return nil
}

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strux/internal/diagfmt"
	"strux/internal/lexer"
	"strux/internal/token"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] \"line\"",
	Short: "Split a pseudocode line into tokens",
	Long:  `Tokenize shows the lexical breakdown of one line: raw tokens, condensed keywords and unified operators`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().Bool("raw", false, "skip keyword condensing and operator unification")
	tokenizeCmd.Flags().Bool("no-literals", false, "do not reassemble string literals")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	raw, err := cmd.Flags().GetBool("raw")
	if err != nil {
		return fmt.Errorf("failed to get raw flag: %w", err)
	}
	noLiterals, err := cmd.Flags().GetBool("no-literals")
	if err != nil {
		return fmt.Errorf("failed to get no-literals flag: %w", err)
	}

	toks := lexer.Split(args[0], !noLiterals)
	if !raw {
		kw, err := loadKeywords(cmd)
		if err != nil {
			return err
		}
		toks = kw.Condense(toks)
		token.Unify(toks, false)
	}
	diagfmt.DumpTokens(os.Stdout, toks)
	return nil
}

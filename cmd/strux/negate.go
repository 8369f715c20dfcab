package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"strux/internal/expr"
)

var negateCmd = &cobra.Command{
	Use:   "negate \"condition\"",
	Short: "Negate a pseudocode condition",
	Long:  `Negate strips an existing negation or wraps the condition in one, without distributing it inside`,
	Args:  cobra.ExactArgs(1),
	RunE:  runNegate,
}

func runNegate(cmd *cobra.Command, args []string) error {
	fmt.Fprintln(cmd.OutOrStdout(), expr.NegateText(args[0]))
	return nil
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"strux/internal/diagfmt"
	"strux/internal/engine"
	"strux/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] [\"line\"...]",
	Short: "Classify pseudocode lines",
	Long: `Parse classifies each line, prints its kind and variable sets, and reports
positioned diagnostics. Without arguments, lines are read from stdin.`,
	RunE: runParse,
}

func init() {
	parseCmd.Flags().String("file", "", "read lines from a file instead of arguments")
	parseCmd.Flags().String("snapshot", "", "write a msgpack parse summary to this file")
	parseCmd.Flags().Bool("parallel", false, "parse independent lines concurrently")
}

func collectLines(cmd *cobra.Command, args []string) ([]string, error) {
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return strings.Split(strings.TrimRight(string(data), "\n"), "\n"), nil
	}
	if len(args) > 0 {
		return args, nil
	}
	var lines []string
	sc := bufio.NewScanner(os.Stdin)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func runParse(cmd *cobra.Command, args []string) error {
	kw, err := loadKeywords(cmd)
	if err != nil {
		return err
	}
	lines, err := collectLines(cmd, args)
	if err != nil {
		return err
	}
	maxDiags, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	doc := engine.NewDocument(kw)
	var results []engine.LineResult
	if par, _ := cmd.Flags().GetBool("parallel"); par {
		results, err = doc.ParseLines(context.Background(), engine.Unbreak(lines), parser.AnyKind)
		if err != nil {
			return err
		}
	} else {
		results = doc.ParseElement("cli", parser.AnyKind, lines)
	}

	printer := &diagfmt.Printer{Out: os.Stderr, NoColor: !useColor(cmd, os.Stderr)}
	shown := 0
	for _, r := range results {
		fmt.Fprintf(os.Stdout, "%-22s %s\n", r.Line.Kind(), r.Line.Text())
		if s := diagfmt.Summary(r.Line); s != r.Line.Kind().String() {
			fmt.Fprintf(os.Stdout, "%22s %s\n", "", strings.TrimPrefix(s, r.Line.Kind().String()+"  "))
		}
		for _, d := range r.Diags {
			if shown >= maxDiags {
				break
			}
			printer.Print(r.Line.Text(), d)
			shown++
		}
	}

	if out, _ := cmd.Flags().GetString("snapshot"); out != "" {
		data, err := doc.Snapshot()
		if err != nil {
			return fmt.Errorf("snapshot failed: %w", err)
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return err
		}
	}
	return nil
}

package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strux/internal/keyword"
	"strux/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "strux",
	Short: "Pseudocode line syntax analyzer",
	Long:  `Strux classifies pseudocode lines, parses their expressions and tracks declared types and variables`,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(negateCmd)
	rootCmd.AddCommand(typesCmd)
	rootCmd.AddCommand(replCmd)
	rootCmd.AddCommand(keywordsCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().String("keywords", "", "keyword configuration file (TOML)")
	rootCmd.PersistentFlags().Bool("ignore-case", false, "match keywords ignoring case")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	flag, _ := cmd.Root().PersistentFlags().GetString("color")
	return flag == "on" || (flag == "auto" && isTerminal(f))
}

// loadKeywords собирает таблицу ключевых слов из флагов
func loadKeywords(cmd *cobra.Command) (keyword.Table, error) {
	path, _ := cmd.Root().PersistentFlags().GetString("keywords")
	fold, _ := cmd.Root().PersistentFlags().GetBool("ignore-case")
	if path == "" {
		t := keyword.Default()
		t.IgnoreCase = fold
		return t, nil
	}
	t, err := keyword.LoadFile(path)
	if err != nil {
		return keyword.Table{}, err
	}
	if fold {
		t.IgnoreCase = true
	}
	return t, nil
}

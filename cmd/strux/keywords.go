package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var keywordsCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Show or export the keyword configuration",
	Long:  `Keywords prints the effective dialect configuration; with --out it writes a TOML file that --keywords can load back`,
	RunE:  runKeywords,
}

func init() {
	keywordsCmd.Flags().String("out", "", "write the configuration as TOML to this file")
}

func runKeywords(cmd *cobra.Command, args []string) error {
	kw, err := loadKeywords(cmd)
	if err != nil {
		return err
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		return kw.SaveFile(out)
	}
	fmt.Fprintf(os.Stdout, "ignore case: %v\n", kw.IgnoreCase)
	for _, key := range kw.Keys() {
		phrase := kw.Phrase(key)
		if phrase == "" {
			phrase = `""`
		}
		fmt.Fprintf(os.Stdout, "  %-12s %s\n", key, phrase)
	}
	return nil
}

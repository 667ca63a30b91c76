package keygrep

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/keygrep/keygrep/internal/report"
	"github.com/keygrep/keygrep/internal/rules"
)

func init() {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the built-in rule catalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			if flagJSON {
				return report.WriteRulesJSON(os.Stdout, rules.Summaries())
			}
			report.PrintRulesTable(os.Stdout, rules.Summaries())
			return nil
		},
	}
	rootCmd.AddCommand(cmd)
}

package report

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"

	"github.com/keygrep/keygrep/internal/types"
)

// PrintFindingsTable renders findings as a bordered table.
func PrintFindingsTable(w io.Writer, res types.ScanResult) {
	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No secrets found")
		printSummary(w, res)
		return
	}
	tbl := tablewriter.NewTable(w)
	tbl.Header([]string{"Severity", "Rule", "Location", "Secret", "Fingerprint"})
	for _, f := range res.Findings {
		tbl.Append([]string{
			f.Severity.String(),
			f.RuleID,
			fmt.Sprintf("%s:%d:%d", f.Path, f.Line, f.StartColumn),
			f.Secret,
			f.Fingerprint,
		})
	}
	tbl.Render()
	printSummary(w, res)
}

// PrintRulesTable renders the catalog listing used by `keygrep rules`.
func PrintRulesTable(w io.Writer, summaries []types.RuleSummary) {
	tbl := tablewriter.NewTable(w)
	tbl.Header([]string{"ID", "Severity", "Category", "Description"})
	for _, s := range summaries {
		tbl.Append([]string{s.ID, s.Severity.String(), string(s.Category), s.Description})
	}
	tbl.Render()
}

// Package report renders scan results for humans and pipelines: columnar
// text, bordered tables, JSON, SARIF and a grep-friendly compact form. It
// only consumes ScanResult values and never alters detection semantics.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/keygrep/keygrep/internal/types"
)

// PrintOptions controls human-readable rendering.
type PrintOptions struct {
	NoColor bool
	Verbose bool
	Width   int
}

// TerminalOptions derives rendering options from the output stream: color
// and width are enabled only when f is a terminal.
func TerminalOptions(f *os.File) PrintOptions {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return PrintOptions{NoColor: true}
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		w = 80
	}
	return PrintOptions{Width: w}
}

// PrintText writes the default columnar report plus a summary footer.
func PrintText(w io.Writer, res types.ScanResult, opts PrintOptions) {
	if len(res.Findings) == 0 {
		fmt.Fprintln(w, "No secrets found")
	}
	maxRule := 8
	for _, f := range res.Findings {
		if l := len(f.RuleID); l > maxRule {
			maxRule = l
		}
	}
	for _, f := range res.Findings {
		sev := f.Severity.String()
		if !opts.NoColor {
			sev = colorSeverity(f.Severity)
		}
		fmt.Fprintf(w, "%-8s %-*s %s:%d:%d  %s\n", sev, maxRule, f.RuleID, f.Path, f.Line, f.StartColumn, f.Secret)
		if opts.Verbose {
			line := f.LineText
			if !opts.NoColor {
				line = HighlightLine(f.Path, line)
			}
			fmt.Fprintf(w, "         %s\n", truncate(line, opts.Width))
		}
	}
	printSummary(w, res)
}

// PrintCompact writes one machine-friendly line per finding:
// path:line:col ruleId severity fingerprint masked-secret.
func PrintCompact(w io.Writer, res types.ScanResult) {
	for _, f := range res.Findings {
		fmt.Fprintf(w, "%s:%d:%d %s %s %s %s\n",
			f.Path, f.Line, f.StartColumn, f.RuleID, f.Severity, f.Fingerprint, f.Secret)
	}
}

// WriteJSON emits the full scan result as indented JSON.
func WriteJSON(w io.Writer, res types.ScanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteRulesJSON emits the catalog listing as indented JSON.
func WriteRulesJSON(w io.Writer, summaries []types.RuleSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func printSummary(w io.Writer, res types.ScanResult) {
	counts := map[types.Severity]int{}
	for _, f := range res.Findings {
		counts[f.Severity]++
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Findings: %d (critical: %d, high: %d, medium: %d, low: %d, info: %d)\n",
		len(res.Findings), counts[types.SevCritical], counts[types.SevHigh],
		counts[types.SevMedium], counts[types.SevLow], counts[types.SevInfo])
	fmt.Fprintf(w, "Files scanned: %d, lines scanned: %d\n", res.FilesScanned, res.LinesScanned)
	fmt.Fprintf(w, "Scan duration: %.2fs\n", res.Duration.Seconds())
	for _, e := range res.Errors {
		fmt.Fprintf(w, "warning: %s\n", e.Error())
	}
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SevCritical:
		return "\x1b[35mcritical\x1b[0m" // magenta
	case types.SevHigh:
		return "\x1b[31mhigh\x1b[0m" // red
	case types.SevMedium:
		return "\x1b[33mmedium\x1b[0m" // yellow
	case types.SevLow:
		return "\x1b[36mlow\x1b[0m" // cyan
	default:
		return "\x1b[37minfo\x1b[0m"
	}
}

func truncate(s string, width int) string {
	if width <= 12 || len(s) <= width-10 {
		return s
	}
	return s[:width-10] + "…"
}

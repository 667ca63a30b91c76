package keygrep

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	flagJSON          bool
	flagSARIF         bool
	flagCompact       bool
	flagTable         bool
	flagNoColor       bool
	flagVerbose       bool
	flagThreads       int
	flagFailOnFound   bool
	flagConfig        string
	flagNoUpdateCheck bool

	version = "0.1.0"
)

// rootCmd is the base Cobra command for the keygrep CLI.
var rootCmd = &cobra.Command{
	Use:           "keygrep",
	Short:         "Find hard-coded secrets in source trees",
	Long:          "Keygrep scans files, staged changes and container images for hard-coded secrets using a rule catalog plus entropy analysis, and reports masked findings with stable fingerprints.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the keygrep CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagSARIF, "sarif", false, "emit SARIF 2.1.0")
	rootCmd.PersistentFlags().BoolVar(&flagCompact, "compact", false, "one finding per line, grep-friendly")
	rootCmd.PersistentFlags().BoolVar(&flagTable, "table", false, "output in bordered table format")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "show matched line content")
	rootCmd.PersistentFlags().IntVar(&flagThreads, "threads", 0, "worker count (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVar(&flagFailOnFound, "fail-on-found", false, "exit 1 when any finding survives filtering")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "explicit config file (overrides discovery)")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
}

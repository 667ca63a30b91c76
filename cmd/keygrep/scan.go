package keygrep

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/keygrep/keygrep/internal/artifacts"
	"github.com/keygrep/keygrep/internal/config"
	"github.com/keygrep/keygrep/internal/engine"
	"github.com/keygrep/keygrep/internal/git"
	"github.com/keygrep/keygrep/internal/report"
	"github.com/keygrep/keygrep/internal/rules"
	"github.com/keygrep/keygrep/internal/tui"
	"github.com/keygrep/keygrep/internal/types"
	"github.com/keygrep/keygrep/internal/update"
)

var (
	flagStaged           bool
	flagImage            string
	flagBaseline         string
	flagUpdateBaseline   bool
	flagInteractive      bool
	flagMinSeverity      string
	flagNoEntropy        bool
	flagEntropyThreshold float64
	flagMaxFileSize      int64
	flagIgnore           []string
	flagDisableRules     []string
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [paths...]",
		Short: "Scan paths for hard-coded secrets",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().BoolVar(&flagStaged, "staged", false, "scan files staged for commit instead of paths")
	cmd.Flags().StringVar(&flagImage, "image", "", "scan a remote container image instead of paths")
	cmd.Flags().StringVar(&flagBaseline, "baseline", "", "baseline file; known fingerprints are filtered out")
	cmd.Flags().BoolVar(&flagUpdateBaseline, "update-baseline", false, "rewrite the baseline file from this scan's findings")
	cmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "browse findings interactively")
	cmd.Flags().StringVar(&flagMinSeverity, "min-severity", "", "drop findings below this severity (info|low|medium|high|critical)")
	cmd.Flags().BoolVar(&flagNoEntropy, "no-entropy", false, "disable the entropy rule")
	cmd.Flags().Float64Var(&flagEntropyThreshold, "entropy-threshold", 0, "bits/char required to flag a high-entropy string")
	cmd.Flags().Int64Var(&flagMaxFileSize, "max-file-size", 0, "skip files larger than this many bytes")
	cmd.Flags().StringSliceVar(&flagIgnore, "ignore", nil, "extra ignore globs (repeatable)")
	cmd.Flags().StringSliceVar(&flagDisableRules, "disable-rule", nil, "rule ids to disable (repeatable)")
}

// loadFileConfig resolves the effective file configuration. An explicit
// --config wins outright and must load; otherwise global config is overlaid
// by any repo-local one found in workDir.
func loadFileConfig(workDir string) (config.FileConfig, error) {
	if flagConfig != "" {
		return config.Load(flagConfig)
	}
	var fc config.FileConfig
	if g, err := config.LoadGlobal(); err == nil {
		fc = g
	}
	if l, _, err := config.LoadLocal(workDir); err == nil {
		fc = config.Merge(fc, l)
	}
	return fc, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	workDir, err := os.Getwd()
	if err != nil {
		return err
	}

	fc, err := loadFileConfig(workDir)
	if err != nil {
		return err
	}
	cfg, err := fc.ToEngine(workDir)
	if err != nil {
		return err
	}

	// CLI flags override anything the config files said.
	if len(args) > 0 {
		cfg.Paths = args
	}
	if flagMinSeverity != "" {
		sev, err := types.ParseSeverity(flagMinSeverity)
		if err != nil {
			return err
		}
		cfg.MinSeverity = sev
	}
	if flagNoEntropy {
		cfg.EnableEntropy = false
	}
	if cmd.Flags().Changed("entropy-threshold") {
		cfg.EntropyThreshold = flagEntropyThreshold
	}
	if cmd.Flags().Changed("max-file-size") {
		cfg.MaxFileSize = flagMaxFileSize
	}
	cfg.IgnoreGlobs = append(cfg.IgnoreGlobs, flagIgnore...)
	cfg.DisabledRules = append(cfg.DisabledRules, flagDisableRules...)
	cfg.Threads = flagThreads

	if flagStaged {
		files, err := git.StagedFiles(workDir)
		if err != nil {
			return err
		}
		if len(files) == 0 {
			fmt.Fprintln(os.Stderr, "nothing staged")
			return nil
		}
		cfg.Paths = files
	}

	// Surface dropped custom rules before scanning; they never abort the run.
	if _, warns := engine.BuildCatalog(cfg); len(warns) > 0 {
		for _, w := range warns {
			fmt.Fprintln(os.Stderr, "warning:", w)
		}
	}

	if !flagJSON && !flagSARIF && !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'keygrep update' to upgrade\n", latest)
		}
	}

	var res types.ScanResult
	if flagImage != "" {
		res, err = scanImage(flagImage, cfg)
		if err != nil {
			return err
		}
	} else {
		res = engine.Scan(cfg)
	}

	if flagBaseline != "" {
		if flagUpdateBaseline {
			if err := report.SaveBaseline(flagBaseline, res.Findings); err != nil {
				return fmt.Errorf("write baseline: %w", err)
			}
			fmt.Fprintf(os.Stderr, "baseline updated: %d fingerprints in %s\n", len(res.Findings), flagBaseline)
			return nil
		}
		base, err := report.LoadBaseline(flagBaseline)
		if err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("read baseline: %w", err)
		}
		res.Findings = report.FilterNew(res.Findings, base)
	}

	if flagInteractive {
		rescan := func() ([]types.Finding, error) {
			r := engine.Scan(cfg)
			return r.Findings, nil
		}
		if flagImage != "" {
			rescan = nil
		}
		return tui.Run(res.Findings, workDir, rescan)
	}

	switch {
	case flagSARIF:
		if err := report.WriteSARIF(os.Stdout, res, version); err != nil {
			return fmt.Errorf("write sarif: %w", err)
		}
	case flagJSON:
		if err := report.WriteJSON(os.Stdout, res); err != nil {
			return err
		}
	case flagCompact:
		report.PrintCompact(os.Stdout, res)
	case flagTable:
		report.PrintFindingsTable(os.Stdout, res)
	default:
		opts := report.TerminalOptions(os.Stdout)
		opts.NoColor = opts.NoColor || flagNoColor
		opts.Verbose = flagVerbose
		report.PrintText(os.Stdout, res, opts)
	}

	if code := res.ExitCode(flagFailOnFound); code != 0 {
		os.Exit(code)
	}
	return nil
}

// scanImage streams a remote image's layers through the same per-file
// detection pass used for local files, then post-processes identically.
func scanImage(imageRef string, cfg engine.Config) (types.ScanResult, error) {
	started := time.Now()
	catalog, _ := engine.BuildCatalog(cfg)

	var res types.ScanResult
	var raw []types.Finding
	err := artifacts.ScanImage(imageRef, artifacts.DefaultLimits(), scanImageEntry(cfg, catalog, &res, &raw))
	if err != nil {
		return res, err
	}
	res.Findings = engine.Aggregate(cfg, raw)
	res.Duration = time.Since(started)
	return res, nil
}

// scanImageEntry applies the same per-file rules as the filesystem path:
// entries over the size gate are skipped silently, undecodable entries are
// recorded as scan errors.
func scanImageEntry(cfg engine.Config, catalog *rules.Catalog, res *types.ScanResult, raw *[]types.Finding) artifacts.EmitFunc {
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = engine.DefaultMaxFileSize
	}
	return func(path string, data []byte) {
		if int64(len(data)) > cfg.MaxFileSize {
			return
		}
		findings, lines, serr := engine.ScanBytes(path, data, cfg, catalog)
		if serr != nil {
			res.Errors = append(res.Errors, *serr)
			return
		}
		*raw = append(*raw, findings...)
		res.LinesScanned += lines
		res.FilesScanned++
	}
}

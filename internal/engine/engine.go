package engine

import (
	"bufio"
	"bytes"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/keygrep/keygrep/internal/rules"
	"github.com/keygrep/keygrep/internal/types"
)

// Config holds the scan parameters. It is built once per invocation and
// read-only for the duration of the scan.
type Config struct {
	Paths            []string
	IgnoreGlobs      []string
	DisabledRules    []string
	MinSeverity      types.Severity
	EnableEntropy    bool
	EntropyThreshold float64
	MaxFileSize      int64
	Extensions       []string
	Allowlist        []types.AllowlistEntry
	CustomRules      []rules.CustomRule
	Threads          int
	WorkDir          string
}

// DefaultMaxFileSize is the per-file size gate in bytes.
const DefaultMaxFileSize = 1_000_000

// DefaultConfig returns a Config with the built-in defaults: scan the
// current directory, entropy detection on, minimum severity low.
func DefaultConfig() Config {
	return Config{
		Paths:            []string{"."},
		IgnoreGlobs:      DefaultIgnoreGlobs(),
		MinSeverity:      types.SevLow,
		EnableEntropy:    true,
		EntropyThreshold: rules.DefaultEntropyThreshold,
		MaxFileSize:      DefaultMaxFileSize,
		Extensions:       DefaultExtensions(),
	}
}

// withDefaults fills the zero-valued fields a caller left unset. The entropy
// enable flag is deliberately not touched: its default is applied by the
// configuration layer, so a false here is an explicit opt-out.
func (c Config) withDefaults() Config {
	if len(c.Paths) == 0 {
		c.Paths = []string{"."}
	}
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.EntropyThreshold <= 0 {
		c.EntropyThreshold = rules.DefaultEntropyThreshold
	}
	if len(c.Extensions) == 0 {
		c.Extensions = DefaultExtensions()
	}
	if c.Threads <= 0 {
		c.Threads = runtime.GOMAXPROCS(0)
	}
	if c.WorkDir == "" {
		c.WorkDir, _ = os.Getwd()
	}
	return c
}

// BuildCatalog assembles the active rule catalog for cfg, returning any
// custom-rule construction errors alongside it.
func BuildCatalog(cfg Config) (*rules.Catalog, []error) {
	return rules.Build(rules.Options{
		Disabled:         cfg.DisabledRules,
		EnableEntropy:    cfg.EnableEntropy,
		EntropyThreshold: cfg.EntropyThreshold,
		Custom:           cfg.CustomRules,
	})
}

// fileResult is what one scanning task hands back to the collector.
type fileResult struct {
	findings []types.Finding
	lines    int
	scanned  bool
	err      *types.ScanError
}

// Scan runs the full pipeline over cfg's roots and blocks until every
// discovered file has been processed. Per-file failures degrade to entries
// in the result's error list and never abort sibling tasks.
func Scan(cfg Config) types.ScanResult {
	cfg = cfg.withDefaults()
	started := time.Now()

	catalog, _ := BuildCatalog(cfg)
	files := Collect(cfg)

	jobs := make(chan string)
	results := make(chan fileResult)

	var wg sync.WaitGroup
	for i := 0; i < cfg.Threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- scanFile(path, cfg, catalog)
			}
		}()
	}
	go func() {
		for _, p := range files {
			jobs <- p
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	// Single collection point: one file's results integrate atomically,
	// nothing else mutates shared state.
	var res types.ScanResult
	var raw []types.Finding
	for r := range results {
		raw = append(raw, r.findings...)
		res.LinesScanned += r.lines
		if r.scanned {
			res.FilesScanned++
		}
		if r.err != nil {
			res.Errors = append(res.Errors, *r.err)
		}
	}

	res.Findings = Aggregate(cfg, raw)
	res.Duration = time.Since(started)
	return res
}

// scanFile runs every active rule over each non-blank, non-comment line of
// one file. Oversized files are skipped silently; unreadable or undecodable
// files contribute a ScanError and nothing else.
func scanFile(path string, cfg Config, catalog *rules.Catalog) fileResult {
	rel := relToWork(path, cfg.WorkDir)

	info, err := os.Stat(path)
	if err != nil {
		return fileResult{err: &types.ScanError{Path: rel, Message: err.Error()}}
	}
	if info.Size() > cfg.MaxFileSize {
		return fileResult{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fileResult{err: &types.ScanError{Path: rel, Message: err.Error()}}
	}
	findings, lines, serr := ScanBytes(rel, data, cfg, catalog)
	if serr != nil {
		return fileResult{err: serr}
	}
	return fileResult{findings: findings, lines: lines, scanned: true}
}

// ScanBytes is the per-file detection pass on in-memory content. It is
// shared by the filesystem orchestrator and artifact scanning, which feeds
// it files extracted from container layers.
func ScanBytes(path string, data []byte, cfg Config, catalog *rules.Catalog) ([]types.Finding, int, *types.ScanError) {
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return nil, 0, &types.ScanError{Path: path, Message: "binary or undecodable content"}
	}

	var findings []types.Finding
	lines := 0
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), int(cfg.MaxFileSize)+1)
	for sc.Scan() {
		lines++
		line := sc.Text()
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isCommentLine(path, trimmed) {
			continue
		}
		for _, r := range catalog.Rules() {
			findings = append(findings, r.Detect(line, lines, path)...)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, 0, &types.ScanError{Path: path, Message: err.Error()}
	}
	return findings, lines, nil
}


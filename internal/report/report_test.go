package report

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/keygrep/keygrep/internal/types"
)

func sampleResult() types.ScanResult {
	return types.ScanResult{
		Findings: []types.Finding{
			{
				RuleID: "github-token", Description: "GitHub personal access token",
				Severity: types.SevHigh, Category: types.CatToken,
				Path: "cmd/deploy.go", Line: 14, StartColumn: 15, EndColumn: 54,
				Secret: "ghp_****1234", Fingerprint: "a1b2c3d4e5f60718",
			},
			{
				RuleID: "generic-password", Description: "Hard-coded password assignment",
				Severity: types.SevMedium, Category: types.CatPassword,
				Path: "settings.py", Line: 3, StartColumn: 12, EndColumn: 22,
				Secret: "**********", Fingerprint: "00ff00ff00ff00ff",
			},
		},
		FilesScanned: 12,
		LinesScanned: 340,
	}
}

func TestWriteSARIF_Structure(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteSARIF(&buf, sampleResult(), "1.2.3"); err != nil {
		t.Fatal(err)
	}
	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc["version"] != "2.1.0" {
		t.Fatalf("version = %v", doc["version"])
	}
	runs := doc["runs"].([]any)
	if len(runs) != 1 {
		t.Fatalf("runs = %d", len(runs))
	}
	run := runs[0].(map[string]any)
	driver := run["tool"].(map[string]any)["driver"].(map[string]any)
	if driver["name"] != "keygrep" || driver["version"] != "1.2.3" {
		t.Fatalf("driver = %v", driver)
	}
	results := run["results"].([]any)
	if len(results) != 2 {
		t.Fatalf("results = %d", len(results))
	}
	first := results[0].(map[string]any)
	if first["level"] != "error" {
		t.Fatalf("high severity should map to error, got %v", first["level"])
	}
	fp := first["partialFingerprints"].(map[string]any)
	if fp["keygrep/v1"] != "a1b2c3d4e5f60718" {
		t.Fatalf("partialFingerprints = %v", fp)
	}
	second := results[1].(map[string]any)
	if second["level"] != "warning" {
		t.Fatalf("medium severity should map to warning, got %v", second["level"])
	}
}

func TestPrintCompact_Format(t *testing.T) {
	var buf bytes.Buffer
	PrintCompact(&buf, sampleResult())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d: %q", len(lines), buf.String())
	}
	if lines[0] != "cmd/deploy.go:14:15 github-token high a1b2c3d4e5f60718 ghp_****1234" {
		t.Fatalf("compact line = %q", lines[0])
	}
}

func TestPrintText_MasksAndSummary(t *testing.T) {
	var buf bytes.Buffer
	PrintText(&buf, sampleResult(), PrintOptions{NoColor: true, Width: 120})
	out := buf.String()
	if !strings.Contains(out, "github-token") || !strings.Contains(out, "cmd/deploy.go") {
		t.Fatalf("missing finding details: %q", out)
	}
	if !strings.Contains(out, "Files scanned: 12") {
		t.Fatalf("missing summary: %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatal("NoColor output still contains ANSI escapes")
	}
}

func TestWriteJSON_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleResult()); err != nil {
		t.Fatal(err)
	}
	var res types.ScanResult
	if err := json.Unmarshal(buf.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if len(res.Findings) != 2 || res.Findings[0].Severity != types.SevHigh {
		t.Fatalf("round-trip lost data: %+v", res)
	}
}

func TestBaseline_SaveLoadFilter(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "keygrep.baseline.json")
	res := sampleResult()

	if err := SaveBaseline(path, res.Findings); err != nil {
		t.Fatal(err)
	}
	base, err := LoadBaseline(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(base.Fingerprints) != 2 {
		t.Fatalf("fingerprints = %d, want 2", len(base.Fingerprints))
	}

	fresh := types.Finding{RuleID: "jwt", Fingerprint: "1111222233334444"}
	got := FilterNew(append(res.Findings, fresh), base)
	if len(got) != 1 || got[0].Fingerprint != "1111222233334444" {
		t.Fatalf("FilterNew = %+v", got)
	}
}

func TestLoadBaseline_Missing(t *testing.T) {
	base, err := LoadBaseline(filepath.Join(t.TempDir(), "absent.json"))
	if err == nil {
		t.Fatal("expected error for missing baseline")
	}
	if base.Fingerprints == nil || len(base.Fingerprints) != 0 {
		t.Fatalf("missing baseline must still be usable: %+v", base)
	}
	// filtering against an empty baseline keeps everything
	fs := sampleResult().Findings
	if got := FilterNew(fs, base); len(got) != len(fs) {
		t.Fatalf("empty baseline filtered findings: %+v", got)
	}
}

func TestPrintRulesTable_ContainsIDs(t *testing.T) {
	var buf bytes.Buffer
	PrintRulesTable(&buf, []types.RuleSummary{
		{ID: "github-token", Description: "GitHub personal access token", Severity: types.SevHigh, Category: types.CatToken},
	})
	if !strings.Contains(buf.String(), "github-token") {
		t.Fatalf("table output missing rule id: %q", buf.String())
	}
}

package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keygrep/keygrep/internal/types"
)

func sampleFindings() []types.Finding {
	return []types.Finding{
		{
			RuleID:      "aws-secret-access-key",
			Severity:    types.SevCritical,
			Category:    types.CatCloudProvider,
			Path:        "deploy/creds.env",
			Line:        4,
			StartColumn: 25,
			EndColumn:   64,
			LineText:    "AWS_SECRET_ACCESS_KEY=wJal****EKEY",
			Secret:      "wJal****EKEY",
			Fingerprint: "a1b2c3d4e5f60718",
		},
		{
			RuleID:      "github-token",
			Severity:    types.SevHigh,
			Category:    types.CatToken,
			Path:        "scripts/release.sh",
			Line:        12,
			Secret:      "ghp_****1234",
			Fingerprint: "ffeeddccbbaa0099",
		},
	}
}

func TestFindingRows(t *testing.T) {
	rows := findingRows(sampleFindings())
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	if rows[0][0] != "CRITICAL" || rows[0][1] != "aws-secret-access-key" || rows[0][3] != "4" {
		t.Errorf("unexpected first row: %v", rows[0])
	}
	if rows[1][2] != "scripts/release.sh" {
		t.Errorf("unexpected second row: %v", rows[1])
	}
}

func TestSeverityText(t *testing.T) {
	if severityText(types.SevMedium) != "MEDIUM" {
		t.Errorf("severityText = %q", severityText(types.SevMedium))
	}
}

func TestModelQuitKeys(t *testing.T) {
	msgs := map[string]tea.KeyMsg{
		"q":      {Type: tea.KeyRunes, Runes: []rune("q")},
		"esc":    {Type: tea.KeyEsc},
		"ctrl+c": {Type: tea.KeyCtrlC},
	}
	for name, msg := range msgs {
		m := NewModel(sampleFindings(), t.TempDir(), nil)
		updated, cmd := m.Update(msg)
		if cmd == nil {
			t.Errorf("key %q produced no command", name)
			continue
		}
		if got := updated.(Model); !got.quitting {
			t.Errorf("key %q did not mark quitting", name)
		}
	}
}

func TestModelViewBeforeSize(t *testing.T) {
	m := NewModel(sampleFindings(), t.TempDir(), nil)
	if v := m.View(); v != "loading..." {
		t.Errorf("pre-size view = %q", v)
	}
}

func TestModelWindowSize(t *testing.T) {
	m := NewModel(sampleFindings(), t.TempDir(), nil)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	got := updated.(Model)
	if !got.ready {
		t.Fatal("model not ready after a window size message")
	}
	view := got.View()
	for _, want := range []string{"2 findings", "aws-secret-access-key", "quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestRescanMsgUpdatesRows(t *testing.T) {
	m := NewModel(sampleFindings(), t.TempDir(), nil)
	next := sampleFindings()[:1]
	updated, _ := m.Update(rescanMsg{findings: next})
	got := updated.(Model)
	if len(got.findings) != 1 {
		t.Fatalf("findings = %d, want 1", len(got.findings))
	}
	if !strings.Contains(got.status, "1 findings") {
		t.Errorf("status = %q", got.status)
	}
}

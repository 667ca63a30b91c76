package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keygrep/keygrep/internal/types"
)

// Run starts the interactive browser. rescan may be nil; when set it is
// invoked on the "r" key and its findings replace the current set.
func Run(findings []types.Finding, workDir string, rescan func() ([]types.Finding, error)) error {
	m := NewModel(findings, workDir, rescan)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("run interactive view: %w", err)
	}
	return nil
}

// Package tui is the interactive findings browser.
package tui

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keygrep/keygrep/internal/config"
	"github.com/keygrep/keygrep/internal/report"
	"github.com/keygrep/keygrep/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("12")).
			Bold(true)
)

// severityText is plain text on purpose; ANSI codes break table truncation.
func severityText(s types.Severity) string {
	return strings.ToUpper(s.String())
}

type statusMsg string

type rescanMsg struct {
	findings []types.Finding
	err      error
}

// Model is the findings browser state: a table of findings over a detail
// pane for the selected row.
type Model struct {
	table    table.Model
	findings []types.Finding
	workDir  string
	rescan   func() ([]types.Finding, error)
	status   string
	ready    bool
	quitting bool
	width    int
	height   int
}

func NewModel(findings []types.Finding, workDir string, rescan func() ([]types.Finding, error)) Model {
	m := Model{
		findings: findings,
		workDir:  workDir,
		rescan:   rescan,
	}
	m.table = table.New(
		table.WithColumns(findingColumns(80)),
		table.WithRows(findingRows(findings)),
		table.WithFocused(true),
	)
	st := table.DefaultStyles()
	st.Header = st.Header.Bold(true).Foreground(lipgloss.Color("6"))
	st.Selected = st.Selected.Background(lipgloss.Color("237")).Foreground(lipgloss.Color("15"))
	m.table.SetStyles(st)
	return m
}

func findingColumns(width int) []table.Column {
	pathW := width - 46
	if pathW < 20 {
		pathW = 20
	}
	return []table.Column{
		{Title: "SEV", Width: 8},
		{Title: "RULE", Width: 24},
		{Title: "PATH", Width: pathW},
		{Title: "LINE", Width: 6},
	}
}

func findingRows(findings []types.Finding) []table.Row {
	rows := make([]table.Row, 0, len(findings))
	for _, f := range findings {
		rows = append(rows, table.Row{
			severityText(f.Severity),
			f.RuleID,
			f.Path,
			fmt.Sprintf("%d", f.Line),
		})
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) selected() *types.Finding {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.findings) {
		return nil
	}
	return &m.findings[idx]
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		tableH := m.height - 14
		if tableH < 4 {
			tableH = 4
		}
		m.table.SetColumns(findingColumns(m.width - 4))
		m.table.SetHeight(tableH)
		m.ready = true

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m, m.copyFingerprint()
		case "y":
			return m, m.copyLocation()
		case "a":
			return m, m.allowlistSelected()
		case "r":
			if m.rescan != nil {
				m.status = "Rescanning..."
				return m, func() tea.Msg {
					fs, err := m.rescan()
					return rescanMsg{findings: fs, err: err}
				}
			}
		}

	case rescanMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Rescan failed: %v", msg.err)
			break
		}
		m.findings = msg.findings
		m.table.SetRows(findingRows(m.findings))
		if m.table.Cursor() >= len(m.findings) {
			m.table.GotoTop()
		}
		m.status = fmt.Sprintf("Rescan complete: %d findings", len(m.findings))

	case statusMsg:
		m.status = string(msg)
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) copyFingerprint() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	fp := f.Fingerprint
	return func() tea.Msg {
		if err := clipboard.WriteAll(fp); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied fingerprint " + fp)
	}
}

func (m Model) copyLocation() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	loc := fmt.Sprintf("%s:%d", f.Path, f.Line)
	return func() tea.Msg {
		if err := clipboard.WriteAll(loc); err != nil {
			return statusMsg(fmt.Sprintf("Clipboard error: %v", err))
		}
		return statusMsg("Copied " + loc)
	}
}

func (m Model) allowlistSelected() tea.Cmd {
	f := m.selected()
	if f == nil {
		return nil
	}
	entry := types.AllowlistEntry{
		Fingerprint: f.Fingerprint,
		Reason:      fmt.Sprintf("accepted via interactive review (%s at %s:%d)", f.RuleID, f.Path, f.Line),
	}
	workDir := m.workDir
	return func() tea.Msg {
		path, err := config.AppendAllowlist(workDir, entry)
		if err != nil {
			return statusMsg(fmt.Sprintf("Allowlist error: %v", err))
		}
		return statusMsg(fmt.Sprintf("Allowlisted %s in %s", f.Fingerprint, path))
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "loading..."
	}

	title := titleStyle.Render(fmt.Sprintf("keygrep — %d findings", len(m.findings)))
	body := tableBorderStyle.Render(m.table.View())
	detail := detailBorderStyle.Width(m.width - 2).Render(m.detailView())
	help := statusStyle.Width(m.width).Render(
		" " + keyStyle.Render("↑/↓") + " navigate  " +
			keyStyle.Render("c") + " copy fingerprint  " +
			keyStyle.Render("y") + " copy location  " +
			keyStyle.Render("a") + " allowlist  " +
			keyStyle.Render("r") + " rescan  " +
			keyStyle.Render("q") + " quit")

	parts := []string{title, body, detail}
	if m.status != "" {
		parts = append(parts, statusStyle.Width(m.width).Render(" "+m.status))
	}
	parts = append(parts, help)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) detailView() string {
	f := m.selected()
	if f == nil {
		return "no finding selected"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s (%s)\n",
		labelStyle.Render("Rule:"), f.RuleID,
		labelStyle.Render("Severity:"), f.Severity, f.Category)
	fmt.Fprintf(&b, "%s %s:%d:%d\n", labelStyle.Render("Where:"), f.Path, f.Line, f.StartColumn)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Secret:"), f.Secret)
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("Fingerprint:"), f.Fingerprint)
	fmt.Fprintf(&b, "%s %s", labelStyle.Render("Line:"), report.HighlightLine(f.Path, strings.TrimSpace(f.LineText)))
	return b.String()
}

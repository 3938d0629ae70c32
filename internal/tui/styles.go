package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

var (
	panelStyle       lipgloss.Style
	titleStyle       lipgloss.Style
	labelStyle       lipgloss.Style
	valueStyle       lipgloss.Style
	dimStyle         lipgloss.Style
	successStyle     lipgloss.Style
	errorStyle       lipgloss.Style
	busyStyle        lipgloss.Style
	footerKeyStyle   lipgloss.Style
	footerDescStyle  lipgloss.Style
	cpuSparkStyle    lipgloss.Style
	memSparkStyle    lipgloss.Style
	progressBarColor string
)

func init() {
	initStyles()
}

// initStyles rebuilds the styles from the current ui theme. Run calls it
// again after the theme has been selected.
func initStyles() {
	t := ui.GetCurrentTUITheme()

	panelStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Foreground(t.Text).
		Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Accent)
	labelStyle = lipgloss.NewStyle().Foreground(t.Dim)
	valueStyle = lipgloss.NewStyle().Bold(true).Foreground(t.Text)
	dimStyle = lipgloss.NewStyle().Foreground(t.Dim)
	successStyle = lipgloss.NewStyle().Foreground(t.Success)
	errorStyle = lipgloss.NewStyle().Foreground(t.Error)
	busyStyle = lipgloss.NewStyle().Foreground(t.Warning).Bold(true)
	footerKeyStyle = lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	footerDescStyle = lipgloss.NewStyle().Foreground(t.Dim)
	cpuSparkStyle = lipgloss.NewStyle().Foreground(t.Accent)
	memSparkStyle = lipgloss.NewStyle().Foreground(t.Warning)

	progressBarColor = "#24C8DB"
	if _, plain := t.Accent.(lipgloss.NoColor); plain {
		progressBarColor = ""
	}
}

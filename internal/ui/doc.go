// Package ui provides the color themes shared by the CLI, the REPL and the
// dashboard. Plain output uses ANSI escape codes from the active Theme; the
// dashboard uses the lipgloss palette from TUITheme.
package ui

package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the dashboard key bindings.
type KeyMap struct {
	Pi         key.Binding
	Sieve      key.Binding
	Progress   key.Binding
	Iterations key.Binding
	Limit      key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Pi: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "estimate π"),
		),
		Sieve: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "count primes"),
		),
		Progress: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "progress task"),
		),
		Iterations: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "iterations"),
		),
		Limit: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "limit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// shortHelp lists the bindings shown in the footer.
func (k KeyMap) shortHelp() []key.Binding {
	return []key.Binding{k.Pi, k.Sieve, k.Progress, k.Iterations, k.Limit, k.Quit}
}

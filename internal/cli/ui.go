//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

// Package cli implements the command-line front-ends: one-shot command
// invocation, the interactive shell and shell completion scripts.
package cli

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/briandowns/spinner"

	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

const (
	// SpinnerRefreshRate is the frame interval of the spinner.
	SpinnerRefreshRate = 100 * time.Millisecond
	// ProgressBarWidth is the width in runes of the progress bar.
	ProgressBarWidth = 30
)

// Invoker executes named commands. *commands.Registry implements it.
type Invoker interface {
	Invoke(ctx context.Context, name string, args json.RawMessage) (any, error)
	Names() []string
}

// EventSource hands out event subscriptions. *events.Bus implements it.
type EventSource interface {
	Subscribe(buffer int) *events.Subscription
}

// Spinner abstracts the terminal spinner so that output can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], SpinnerRefreshRate, options...)
	return &realSpinner{s}
}

// withSpinner runs fn while a spinner labelled label animates on out.
func withSpinner(out io.Writer, label string, fn func()) {
	s := newSpinner(spinner.WithWriter(out), spinner.WithHiddenCursor(true))
	s.UpdateSuffix(" " + label)
	s.Start()
	defer s.Stop()
	fn()
}

// CLIColorProvider supplies the active theme colors to apperrors.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

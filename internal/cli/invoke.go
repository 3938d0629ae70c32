package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/FlyinPancake/tauri-presentation/internal/commands"
	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
	"github.com/FlyinPancake/tauri-presentation/internal/events"
)

// Options configures command execution from the front-ends.
type Options struct {
	// Quiet prints raw JSON instead of formatted output.
	Quiet bool
	// Timeout bounds one command, including a progress task's event stream.
	Timeout time.Duration
	// EventBuffer is the buffer of the progress subscription.
	EventBuffer int
}

// blocking reports whether a command computes for long enough to deserve a
// spinner.
func blocking(name string) bool {
	switch name {
	case commands.CalculatePi, commands.CalculatePrimes, commands.AsyncTask:
		return true
	}
	return false
}

// Runner executes commands and prints their results.
type Runner struct {
	inv  Invoker
	src  EventSource
	opts Options
	out  io.Writer
}

// NewRunner creates a Runner writing to out.
func NewRunner(inv Invoker, src EventSource, opts Options, out io.Writer) *Runner {
	return &Runner{inv: inv, src: src, opts: opts, out: out}
}

// Run invokes name with the JSON object rawArgs, prints the outcome and
// returns the exit code. For start_progress_task it also follows the
// task's events until completion.
func (r *Runner) Run(ctx context.Context, name string, rawArgs json.RawMessage) int {
	if len(rawArgs) > 0 && !json.Valid(rawArgs) {
		err := apperrors.NewValidationError("args", fmt.Sprintf("arguments are not valid JSON: %s", rawArgs))
		return apperrors.HandleCalculationError(err, 0, r.out, CLIColorProvider{})
	}
	parent := ctx
	if r.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.Timeout)
		defer cancel()
	}

	// Subscribe before invoking so that the first event cannot be missed.
	var sub *events.Subscription
	if name == commands.StartProgressTask && r.src != nil {
		sub = r.src.Subscribe(max(r.opts.EventBuffer, 1))
		defer sub.Close()
	}

	start := time.Now()
	var (
		result any
		err    error
	)
	invoke := func() { result, err = r.inv.Invoke(ctx, name, rawArgs) }
	if blocking(name) && !r.opts.Quiet {
		withSpinner(r.out, fmt.Sprintf("Running %s...", name), invoke)
	} else {
		invoke()
	}
	if err != nil {
		return apperrors.HandleCalculationError(r.timeout(parent, name, err), time.Since(start), r.out, CLIColorProvider{})
	}

	if err := (Presenter{Out: r.out, Quiet: r.opts.Quiet}).Present(result); err != nil {
		return apperrors.HandleCalculationError(err, 0, r.out, CLIColorProvider{})
	}

	if sub != nil {
		if _, err := WatchProgress(ctx, sub, r.out, r.opts.Quiet); err != nil {
			return apperrors.HandleCalculationError(r.timeout(parent, name, err), time.Since(start), r.out, CLIColorProvider{})
		}
	}
	return apperrors.ExitSuccess
}

// timeout reports a deadline hit by the -timeout budget as a TimeoutError.
// Deadlines inherited from parent are returned unchanged.
func (r *Runner) timeout(parent context.Context, name string, err error) error {
	if r.opts.Timeout > 0 && errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return apperrors.TimeoutError{Operation: name, Limit: r.opts.Timeout}
	}
	return err
}

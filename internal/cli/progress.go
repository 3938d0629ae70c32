package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/format"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
	"github.com/FlyinPancake/tauri-presentation/internal/ui"
)

// jsonEvent is the quiet-mode rendering of one event.
type jsonEvent struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// WatchProgress renders the events of one progress task until its
// completion event arrives. The followed task is the one that produced the
// first event read from sub; events of other tasks are ignored. It returns
// ctx.Err() if ctx ends first and events.ErrClosed if sub is closed.
func WatchProgress(ctx context.Context, sub *events.Subscription, out io.Writer, quiet bool) (progress.Completion, error) {
	var taskID string
	follows := func(id string) bool {
		if taskID == "" {
			taskID = id
		}
		return id == taskID
	}
	enc := json.NewEncoder(out)

	for {
		select {
		case <-ctx.Done():
			if !quiet {
				fmt.Fprintln(out)
			}
			return progress.Completion{}, ctx.Err()
		case ev, ok := <-sub.Events():
			if !ok {
				return progress.Completion{}, events.ErrClosed
			}
			switch p := ev.Payload.(type) {
			case progress.Update:
				if !follows(p.TaskID) {
					continue
				}
				if quiet {
					_ = enc.Encode(jsonEvent{Event: ev.Name, Payload: p})
					continue
				}
				fmt.Fprintf(out, "\r%s %s",
					ui.Paint(ui.ColorCyan(), format.ProgressLine(p.Current, p.Total, ProgressBarWidth)),
					p.Message)
			case progress.Completion:
				if !follows(p.TaskID) {
					continue
				}
				if quiet {
					_ = enc.Encode(jsonEvent{Event: ev.Name, Payload: p})
				} else {
					fmt.Fprintf(out, "\n%s\n", ui.Paint(ui.ColorGreen(), p.Message))
				}
				return p, nil
			}
		}
	}
}

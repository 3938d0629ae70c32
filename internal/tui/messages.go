package tui

import (
	"time"

	"github.com/FlyinPancake/tauri-presentation/internal/progress"
)

// ResultMsg carries the outcome of a command invocation.
type ResultMsg struct {
	Command string
	Result  any
	Err     error
	Elapsed time.Duration
}

// ProgressMsg carries a progress-update event.
type ProgressMsg struct {
	progress.Update
}

// CompletionMsg carries a progress-complete event.
type CompletionMsg struct {
	progress.Completion
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// ContextCancelledMsg reports cancellation of the dashboard context.
type ContextCancelledMsg struct {
	Err error
}

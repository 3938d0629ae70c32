// Package progress runs background tasks that report their advancement as an
// ordered stream of progress-update events followed by a single
// progress-complete event.
package progress

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/logging"
)

const (
	// Acknowledgment is returned to the caller as soon as a task is scheduled.
	Acknowledgment = "Progress task started"
	// CompletionMessage is the payload message of the terminal event.
	CompletionMessage = "Task completed successfully!"

	// DefaultSteps is the number of progress events per task.
	DefaultSteps = 10
	// DefaultInterval is the delay between two consecutive events.
	DefaultInterval = 500 * time.Millisecond
)

// Update is the payload of a progress-update event.
type Update struct {
	TaskID  string `json:"task_id"`
	Current uint32 `json:"current"`
	Total   uint32 `json:"total"`
	Message string `json:"message"`
}

// Completion is the payload of the progress-complete event. It carries no
// step counters.
type Completion struct {
	TaskID  string `json:"task_id"`
	Message string `json:"message"`
}

// State is the lifecycle state of a task.
type State int32

const (
	NotStarted State = iota
	Running
	Completed
	Cancelled
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not-started"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Cancelled:
		return "cancelled"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Task is a handle on a started background task.
type Task struct {
	ID    string
	state atomic.Int32
	done  chan struct{}
}

// State returns the current state of the task.
func (t *Task) State() State { return State(t.state.Load()) }

// Done is closed once the task has stopped, completed or not.
func (t *Task) Done() <-chan struct{} { return t.done }

// Options configures an Emitter.
type Options struct {
	// Steps is the number of progress events per task (DefaultSteps if <= 0).
	Steps int
	// Interval is the delay between events; 0 emits as fast as possible.
	Interval time.Duration
}

// Emitter starts independent progress tasks that publish to a shared sink.
type Emitter struct {
	sink   events.Emitter
	steps  int
	every  rate.Limit
	logger logging.Logger
	wg     sync.WaitGroup
}

// NewEmitter creates an Emitter publishing to sink. A nil logger discards output.
func NewEmitter(sink events.Emitter, opts Options, logger logging.Logger) *Emitter {
	if opts.Steps <= 0 {
		opts.Steps = DefaultSteps
	}
	every := rate.Inf
	if opts.Interval > 0 {
		every = rate.Every(opts.Interval)
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &Emitter{sink: sink, steps: opts.Steps, every: every, logger: logger}
}

// Start schedules a new task and returns immediately. The task runs until it
// has emitted its completion event or ctx is cancelled, whichever comes
// first; the caller never waits for it.
func (e *Emitter) Start(ctx context.Context) *Task {
	t := &Task{ID: uuid.NewString(), done: make(chan struct{})}
	t.state.Store(int32(Running))

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		defer close(t.done)
		e.run(ctx, t)
	}()
	return t
}

// Wait blocks until every task started so far has stopped.
func (e *Emitter) Wait() {
	e.wg.Wait()
}

func (e *Emitter) run(ctx context.Context, t *Task) {
	// Burst 1: the first event goes out immediately, the following ones and
	// the completion are spaced by the interval.
	limiter := rate.NewLimiter(e.every, 1)
	total := uint32(e.steps)

	for step := uint32(1); step <= total; step++ {
		if err := limiter.Wait(ctx); err != nil {
			e.cancel(t, step, err)
			return
		}
		update := Update{
			TaskID:  t.ID,
			Current: step,
			Total:   total,
			Message: fmt.Sprintf("Processing step %d of %d", step, total),
		}
		if err := e.sink.Emit(events.ProgressUpdate, update); err != nil {
			e.logger.Error("failed to emit progress event", err,
				logging.String("task", t.ID), logging.Int("step", int(step)))
		}
	}

	if err := limiter.Wait(ctx); err != nil {
		e.cancel(t, total+1, err)
		return
	}
	if err := e.sink.Emit(events.ProgressComplete, Completion{TaskID: t.ID, Message: CompletionMessage}); err != nil {
		e.logger.Error("failed to emit completion event", err, logging.String("task", t.ID))
	}
	t.state.Store(int32(Completed))
	e.logger.Debug("progress task completed", logging.String("task", t.ID))
}

func (e *Emitter) cancel(t *Task, step uint32, err error) {
	t.state.Store(int32(Cancelled))
	e.logger.Info("progress task cancelled",
		logging.String("task", t.ID), logging.Int("step", int(step)), logging.Err(err))
}

package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/FlyinPancake/tauri-presentation/internal/events"
	"github.com/FlyinPancake/tauri-presentation/internal/progress"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so the bridge goroutine needs a pointer that
// survives copies.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the tea.Program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send sends msg to the program if one is set.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// sender is the part of programRef used by the bridge.
type sender interface {
	Send(msg tea.Msg)
}

// eventMsg converts a bus event into a dashboard message. It returns nil for
// events the dashboard does not display.
func eventMsg(ev events.Event) tea.Msg {
	switch p := ev.Payload.(type) {
	case progress.Update:
		return ProgressMsg{Update: p}
	case progress.Completion:
		return CompletionMsg{Completion: p}
	}
	return nil
}

// forwardEvents relays events from sub to s until ctx ends or sub is closed.
func forwardEvents(ctx context.Context, sub *events.Subscription, s sender) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-sub.Events():
			if !ok {
				return
			}
			if msg := eventMsg(ev); msg != nil {
				s.Send(msg)
			}
		}
	}
}

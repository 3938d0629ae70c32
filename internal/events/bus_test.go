package events

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestBus_NoListener(t *testing.T) {
	t.Parallel()
	b := NewBus()
	if err := b.Emit(ProgressUpdate, 1); !errors.Is(err, ErrNoListener) {
		t.Fatalf("Emit() error = %v, want ErrNoListener", err)
	}
}

func TestBus_DeliversInOrder(t *testing.T) {
	t.Parallel()
	b := NewBus()
	sub := b.Subscribe(16)
	defer sub.Close()

	for i := 1; i <= 10; i++ {
		if err := b.Emit(ProgressUpdate, i); err != nil {
			t.Fatalf("Emit(%d) error = %v", i, err)
		}
	}
	for want := 1; want <= 10; want++ {
		ev := <-sub.Events()
		if ev.Name != ProgressUpdate || ev.Payload != want {
			t.Fatalf("got %+v, want payload %d", ev, want)
		}
	}
}

func TestBus_FanOut(t *testing.T) {
	t.Parallel()
	b := NewBus()
	a, c := b.Subscribe(1), b.Subscribe(1)
	defer a.Close()
	defer c.Close()

	if err := b.Emit(ProgressComplete, "done"); err != nil {
		t.Fatalf("Emit() error = %v", err)
	}
	for _, s := range []*Subscription{a, c} {
		if ev := <-s.Events(); ev.Payload != "done" {
			t.Errorf("subscriber got %+v", ev)
		}
	}
}

func TestBus_FullSubscriberDoesNotBlock(t *testing.T) {
	t.Parallel()
	b := NewBus()
	slow := b.Subscribe(1)
	fast := b.Subscribe(4)
	defer slow.Close()
	defer fast.Close()

	if err := b.Emit("x", 1); err != nil {
		t.Fatalf("first Emit() error = %v", err)
	}
	if err := b.Emit("x", 2); !errors.Is(err, ErrSubscriberFull) {
		t.Fatalf("second Emit() error = %v, want ErrSubscriberFull", err)
	}
	if got := len(fast.Events()); got != 2 {
		t.Errorf("fast subscriber buffered %d events, want 2", got)
	}
}

func TestSubscription_CloseIsIdempotent(t *testing.T) {
	t.Parallel()
	b := NewBus()
	s := b.Subscribe(1)
	s.Close()
	s.Close()
	if b.Len() != 0 {
		t.Errorf("Len() = %d after Close, want 0", b.Len())
	}
	if _, ok := <-s.Events(); ok {
		t.Error("channel should be closed")
	}
}

func TestBus_Close(t *testing.T) {
	t.Parallel()
	b := NewBus()
	s := b.Subscribe(1)
	b.Close()
	b.Close()

	if _, ok := <-s.Events(); ok {
		t.Error("subscription channel should be closed by Bus.Close")
	}
	if err := b.Emit("x", nil); !errors.Is(err, ErrClosed) {
		t.Errorf("Emit() after Close = %v, want ErrClosed", err)
	}
	late := b.Subscribe(1)
	if _, ok := <-late.Events(); ok {
		t.Error("subscribing to a closed bus should yield a closed channel")
	}
	late.Close()
}

// TestBus_ConcurrentProducers checks that concurrent producers do not corrupt
// delivery and that each producer's events stay ordered.
func TestBus_ConcurrentProducers(t *testing.T) {
	t.Parallel()
	const producers, perProducer = 8, 50

	b := NewBus()
	sub := b.Subscribe(producers * perProducer)
	defer sub.Close()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				if err := b.Emit("tick", fmt.Sprintf("%d:%d", id, i)); err != nil {
					t.Errorf("Emit() error = %v", err)
				}
			}
		}(p)
	}
	wg.Wait()

	next := make([]int, producers)
	for i := 0; i < producers*perProducer; i++ {
		ev := <-sub.Events()
		var id, seq int
		if _, err := fmt.Sscanf(ev.Payload.(string), "%d:%d", &id, &seq); err != nil {
			t.Fatalf("bad payload %v: %v", ev.Payload, err)
		}
		if seq != next[id] {
			t.Fatalf("producer %d: got seq %d, want %d", id, seq, next[id])
		}
		next[id]++
	}
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func runREPL(t *testing.T, input string) string {
	t.Helper()
	be := newBackend(t)
	r := NewREPL(be.registry, be.bus, Options{Timeout: 10 * time.Second, EventBuffer: 16})
	var buf bytes.Buffer
	r.SetInput(strings.NewReader(input))
	r.SetOutput(&buf)
	r.Start(context.Background())
	return buf.String()
}

func TestREPL_Commands(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains []string
	}{
		{"greet", "greet Ada Lovelace\nexit\n", []string{"Hello, Ada Lovelace! You've been greeted from Go!", "Goodbye!"}},
		{"greet without name", "greet\n", []string{"Don't be so shy, introduce yourself"}},
		{"calc symbol", "calc 7 + 3\n", []string{"Result: 10"}},
		{"calc name", "calc 7 multiply 6\n", []string{"Result: 42"}},
		{"calc divide by zero", "calc 10 / 0\n", []string{"Cannot divide by zero"}},
		{"calc usage", "calc 1 +\n", []string{"Usage: calc <a> <op> <b>"}},
		{"calc unknown op", "calc 1 % 2\n", []string{`unknown operation "%"`}},
		{"primes", "primes 1_000_000\n", []string{"78,498"}},
		{"primes invalid", "primes -3\n", []string{"Invalid value: -3"}},
		{"primes list", "primes -list 30\n", []string{"10 primes ≤ 30:", "2 3 5 7 11 13 17 19 23 29"}},
		{"primes list too large", "primes -list 100001\n", []string{"Limit too large to list (max 100,000)"}},
		{"primes list usage", "primes -list\n", []string{"Usage: primes [-list] <limit>"}},
		{"pi", "pi 20000\n", []string{"Monte Carlo π estimate", "20,000"}},
		{"sysinfo", "sysinfo\n", []string{"OS:          linux", "Arch:        arm64"}},
		{"sleep", "sleep 0\n", []string{"Async task completed after 0 seconds"}},
		{"progress", "progress\n", []string{"Progress task started", "Task completed successfully!"}},
		{"list", "list\n", []string{"calculate_pi_monte_carlo", "start_progress_task"}},
		{"help", "help\n", []string{"pi <iterations>", "primes [-list] <limit>"}},
		{"unknown", "frobnicate\n", []string{"Unknown command: frobnicate"}},
		{"eof without newline", "greet Bob", []string{"Hello, Bob!", "Goodbye!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := runREPL(t, tt.input)
			for _, want := range tt.contains {
				if !strings.Contains(out, want) {
					t.Errorf("output should contain %q, got:\n%s", want, out)
				}
			}
		})
	}
}

func TestREPL_ExitStopsReading(t *testing.T) {
	out := runREPL(t, "exit\ngreet Ada\n")
	if strings.Contains(out, "Hello, Ada") {
		t.Error("commands after exit should not run")
	}
}

func TestREPL_CanceledContext(t *testing.T) {
	be := newBackend(t)
	r := NewREPL(be.registry, be.bus, Options{})
	var buf bytes.Buffer
	r.SetInput(strings.NewReader("greet Ada\n"))
	r.SetOutput(&buf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r.Start(ctx)
	if strings.Contains(buf.String(), "Hello, Ada") {
		t.Error("a canceled session should not execute commands")
	}
}

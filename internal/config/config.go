// Package config parses and validates the application configuration.
//
// Values are resolved with the priority: CLI flags > environment variables
// (prefixed with EnvPrefix) > adaptive hardware defaults > static defaults.
package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
)

// EnvPrefix is prepended to every environment variable override.
const EnvPrefix = "TAURIDEMO_"

// Static defaults.
const (
	// DefaultChunkSize is the number of Monte Carlo samples handled by one
	// worker task before its partial count is reduced.
	DefaultChunkSize = 1_000_000
	// DefaultProgressSteps is the number of progress events a task emits.
	DefaultProgressSteps = 10
	// DefaultProgressInterval is the cadence between two progress events.
	DefaultProgressInterval = 500 * time.Millisecond
	// DefaultEventBuffer is the per-subscriber event buffer of the front-ends.
	DefaultEventBuffer = 64
	// DefaultTimeout bounds one-shot command execution.
	DefaultTimeout = 5 * time.Minute
)

// AppConfig aggregates all the configuration parameters of the application.
type AppConfig struct {
	// Command is the name of the command to invoke in one-shot mode.
	Command string
	// Args is the JSON object passed as command arguments.
	Args string
	// REPL starts the interactive shell.
	REPL bool
	// TUI starts the dashboard.
	TUI bool

	// ChunkSize is the Monte Carlo chunk size in samples.
	ChunkSize uint64
	// Workers bounds the Monte Carlo worker pool; 0 selects a hardware default.
	Workers int
	// Seed fixes the Monte Carlo root seed; 0 draws a random one per run.
	Seed uint64

	// ProgressSteps is the number of progress-update events per task.
	ProgressSteps int
	// ProgressInterval is the delay between two progress events.
	ProgressInterval time.Duration
	// EventBuffer is the buffer size of front-end event subscriptions.
	EventBuffer int

	// Timeout bounds a one-shot invocation, including waiting for progress events.
	Timeout time.Duration
	// LogLevel is the zerolog level name (debug, info, warn, error).
	LogLevel string
	// LogFormat selects console or json log output.
	LogFormat string
	// Theme names the color theme (dark, light, none).
	Theme string
	// NoColor disables ANSI colors.
	NoColor bool
	// Quiet prints raw JSON results only.
	Quiet bool
	// Metrics dumps the Prometheus text exposition on exit.
	Metrics bool
	// Trace exports OpenTelemetry spans to stdout.
	Trace bool
	// Completion names a shell whose completion script is printed instead
	// of running a command.
	Completion string
}

// ParseConfig parses command-line arguments into an AppConfig, applies
// environment overrides for flags that were not set, fills adaptive defaults
// and validates the result.
func ParseConfig(programName string, args []string, errWriter io.Writer) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	cfg := AppConfig{}
	fs.StringVar(&cfg.Command, "cmd", "", "Command to invoke (see -cmd list).")
	fs.StringVar(&cfg.Args, "args", "{}", "JSON object with the command arguments.")
	fs.BoolVar(&cfg.REPL, "repl", false, "Start the interactive shell.")
	fs.BoolVar(&cfg.TUI, "tui", false, "Start the interactive dashboard.")
	fs.Uint64Var(&cfg.ChunkSize, "chunk-size", DefaultChunkSize, "Monte Carlo samples per chunk.")
	fs.IntVar(&cfg.Workers, "workers", 0, "Monte Carlo worker pool size (0 = number of CPUs).")
	fs.Uint64Var(&cfg.Seed, "seed", 0, "Monte Carlo root seed (0 = random).")
	fs.IntVar(&cfg.ProgressSteps, "progress-steps", DefaultProgressSteps, "Number of progress events per task.")
	fs.DurationVar(&cfg.ProgressInterval, "progress-interval", DefaultProgressInterval, "Delay between progress events.")
	fs.IntVar(&cfg.EventBuffer, "event-buffer", DefaultEventBuffer, "Event buffer per listener.")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "Maximum duration of a one-shot invocation.")
	fs.StringVar(&cfg.LogLevel, "log-level", "warn", "Log level (debug, info, warn, error).")
	fs.StringVar(&cfg.LogFormat, "log-format", "console", "Log output format (console, json).")
	fs.StringVar(&cfg.Theme, "theme", "dark", "Color theme (dark, light, none).")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "Disable colored output.")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "Print raw JSON results only.")
	fs.BoolVar(&cfg.Quiet, "q", false, "Shorthand for -quiet.")
	fs.BoolVar(&cfg.Metrics, "metrics", false, "Print Prometheus metrics on exit.")
	fs.BoolVar(&cfg.Trace, "trace", false, "Export OpenTelemetry spans to stdout.")
	fs.StringVar(&cfg.Completion, "completion", "", "Print a completion script (bash, zsh, fish).")

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}
	if fs.NArg() > 0 {
		return AppConfig{}, apperrors.NewConfigError("unexpected positional arguments: %v", fs.Args())
	}

	applyEnvOverrides(&cfg, fs)
	cfg = ApplyAdaptiveDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(errWriter, "Configuration error: %v\n", err)
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the semantic consistency of the configuration.
func (c AppConfig) Validate() error {
	if c.ChunkSize == 0 {
		return apperrors.NewConfigError("chunk size must be greater than zero")
	}
	if c.Workers < 0 {
		return apperrors.NewConfigError("workers must not be negative, got %d", c.Workers)
	}
	if c.ProgressSteps <= 0 {
		return apperrors.NewConfigError("progress steps must be greater than zero, got %d", c.ProgressSteps)
	}
	if c.ProgressInterval < 0 {
		return apperrors.NewConfigError("progress interval must not be negative, got %s", c.ProgressInterval)
	}
	if c.EventBuffer <= 0 {
		return apperrors.NewConfigError("event buffer must be greater than zero, got %d", c.EventBuffer)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be greater than zero, got %s", c.Timeout)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return apperrors.NewConfigError("unsupported log format %q", c.LogFormat)
	}
	switch c.Theme {
	case "dark", "light", "none":
	default:
		return apperrors.NewConfigError("unknown theme %q", c.Theme)
	}
	switch c.Completion {
	case "", "bash", "zsh", "fish":
	default:
		return apperrors.NewConfigError("unsupported completion shell %q", c.Completion)
	}
	if c.REPL && c.TUI {
		return apperrors.NewConfigError("-repl and -tui are mutually exclusive")
	}
	return nil
}

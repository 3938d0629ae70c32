package config

import (
	"errors"
	"flag"
	"io"
	"testing"
	"time"

	apperrors "github.com/FlyinPancake/tauri-presentation/internal/errors"
)

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig("tauri-presentation", nil, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("ChunkSize = %d, want %d", cfg.ChunkSize, DefaultChunkSize)
	}
	if cfg.ProgressSteps != DefaultProgressSteps {
		t.Errorf("ProgressSteps = %d, want %d", cfg.ProgressSteps, DefaultProgressSteps)
	}
	if cfg.ProgressInterval != DefaultProgressInterval {
		t.Errorf("ProgressInterval = %s, want %s", cfg.ProgressInterval, DefaultProgressInterval)
	}
	if cfg.Workers < 1 {
		t.Errorf("Workers should be filled by the adaptive default, got %d", cfg.Workers)
	}
	if cfg.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", cfg.Theme)
	}
	if cfg.LogFormat != "console" {
		t.Errorf("LogFormat = %q, want console", cfg.LogFormat)
	}
	if cfg.Args != "{}" {
		t.Errorf("Args = %q, want {}", cfg.Args)
	}
}

func TestParseConfig_Flags(t *testing.T) {
	args := []string{"-cmd", "calculate_pi_monte_carlo", "-args", `{"iterations":10}`, "-workers", "3", "-seed", "42", "-q"}
	cfg, err := ParseConfig("tauri-presentation", args, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Command != "calculate_pi_monte_carlo" || cfg.Args != `{"iterations":10}` {
		t.Errorf("unexpected command/args: %q %q", cfg.Command, cfg.Args)
	}
	if cfg.Workers != 3 || cfg.Seed != 42 || !cfg.Quiet {
		t.Errorf("unexpected parsed values: %+v", cfg)
	}
}

func TestParseConfig_EnvOverrides(t *testing.T) {
	t.Setenv(EnvPrefix+"WORKERS", "5")
	t.Setenv(EnvPrefix+"PROGRESS_INTERVAL", "10ms")
	t.Setenv(EnvPrefix+"QUIET", "yes")
	t.Setenv(EnvPrefix+"CHUNK_SIZE", "not-a-number")
	t.Setenv(EnvPrefix+"LOG_FORMAT", "JSON")

	cfg, err := ParseConfig("tauri-presentation", []string{"-workers", "2"}, io.Discard)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Workers != 2 {
		t.Errorf("flag should win over env: Workers = %d, want 2", cfg.Workers)
	}
	if cfg.ProgressInterval != 10*time.Millisecond {
		t.Errorf("ProgressInterval = %s, want 10ms", cfg.ProgressInterval)
	}
	if !cfg.Quiet {
		t.Error("Quiet should be set from the environment")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want json", cfg.LogFormat)
	}
	if cfg.ChunkSize != DefaultChunkSize {
		t.Errorf("invalid env value should be ignored, ChunkSize = %d", cfg.ChunkSize)
	}
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero chunk size", []string{"-chunk-size", "0"}},
		{"negative workers", []string{"-workers", "-1"}},
		{"zero steps", []string{"-progress-steps", "0"}},
		{"repl and tui", []string{"-repl", "-tui"}},
		{"unknown shell", []string{"-completion", "tcsh"}},
		{"unknown log format", []string{"-log-format", "xml"}},
		{"unknown theme", []string{"-theme", "solarized"}},
		{"positional", []string{"extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig("tauri-presentation", tt.args, io.Discard)
			var cfgErr apperrors.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
		})
	}
}

func TestParseConfig_Help(t *testing.T) {
	_, err := ParseConfig("tauri-presentation", []string{"-h"}, io.Discard)
	if !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseBoolEnv(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		def  bool
		want bool
	}{
		{"TRUE", false, true},
		{"1", false, true},
		{"no", true, false},
		{"maybe", true, true},
	}
	for _, tt := range tests {
		if got := parseBoolEnv(tt.in, tt.def); got != tt.want {
			t.Errorf("parseBoolEnv(%q, %v) = %v, want %v", tt.in, tt.def, got, tt.want)
		}
	}
}

package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestGenerateCompletion(t *testing.T) {
	t.Parallel()
	names := []string{"greet", "calculate_pi_monte_carlo"}

	for _, shell := range SupportedShells {
		t.Run(shell, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			if err := GenerateCompletion(&buf, shell, "tauri-presentation", names); err != nil {
				t.Fatalf("GenerateCompletion(%s) error = %v", shell, err)
			}
			out := buf.String()
			for _, want := range []string{"tauri-presentation", "calculate_pi_monte_carlo", "log-level", "progress-interval"} {
				if !strings.Contains(out, want) {
					t.Errorf("%s script should contain %q", shell, want)
				}
			}
		})
	}
}

func TestGenerateCompletion_Bash(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "bash", "tauri-presentation", []string{"greet"}); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "complete -F _tauri_presentation_completions tauri-presentation") {
		t.Errorf("bash script should register its completion function:\n%s", out)
	}
	if !strings.Contains(out, `-cmd)`) {
		t.Error("bash script should complete -cmd values")
	}
}

func TestGenerateCompletion_Unsupported(t *testing.T) {
	t.Parallel()
	err := GenerateCompletion(&bytes.Buffer{}, "powershell", "tauri-presentation", nil)
	if err == nil || !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("expected unsupported shell error, got %v", err)
	}
}

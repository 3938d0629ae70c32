package format

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.in); got != tt.want {
			t.Errorf("FormatExecutionDuration(%s) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMillis(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.000ms"},
		{0.0421, "0.042ms"},
		{12.346, "12.35ms"},
		{999.99, "999.99ms"},
		{2500, "2.50s"},
	}
	for _, tt := range tests {
		if got := FormatMillis(tt.in); got != tt.want {
			t.Errorf("FormatMillis(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestThroughput(t *testing.T) {
	t.Parallel()
	tests := []struct {
		count uint64
		ms    float64
		want  string
	}{
		{10_000_000, 1000, "10.0M/s"},
		{5_000, 1000, "5.0k/s"},
		{3, 1000, "3/s"},
		{4_000_000_000, 1000, "4.0G/s"},
		{100, 0, "n/a"},
	}
	for _, tt := range tests {
		if got := Throughput(tt.count, tt.ms); got != tt.want {
			t.Errorf("Throughput(%d, %v) = %q, want %q", tt.count, tt.ms, got, tt.want)
		}
	}
}

func TestFormatNumberString(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in, want string
	}{
		{"0", "0"},
		{"123", "123"},
		{"1234", "1,234"},
		{"78498", "78,498"},
		{"1000000", "1,000,000"},
		{"-1234567", "-1,234,567"},
	}
	for _, tt := range tests {
		if got := FormatNumberString(tt.in); got != tt.want {
			t.Errorf("FormatNumberString(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if got := FormatThousands(10_000_000); got != "10,000,000" {
		t.Errorf("FormatThousands() = %q", got)
	}
}

func TestFormatScientific(t *testing.T) {
	t.Parallel()
	if got := FormatScientific(0); got != "0" {
		t.Errorf("FormatScientific(0) = %q", got)
	}
	if got := FormatScientific(0.000123456); got != "1.23e-04" {
		t.Errorf("FormatScientific() = %q, want 1.23e-04", got)
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		width    int
		filled   int
	}{
		{0, 10, 0},
		{0.5, 10, 5},
		{1, 10, 10},
		{1.7, 10, 10},
		{-0.3, 10, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, tt.width)
		if n := utf8.RuneCountInString(bar); n != tt.width {
			t.Errorf("ProgressBar(%v) width = %d, want %d", tt.progress, n, tt.width)
		}
		if n := strings.Count(bar, "█"); n != tt.filled {
			t.Errorf("ProgressBar(%v) filled = %d, want %d", tt.progress, n, tt.filled)
		}
	}
	if ProgressBar(0.5, 0) != "" {
		t.Error("zero width should render nothing")
	}
}

func TestProgressLine(t *testing.T) {
	t.Parallel()
	if got := ProgressFraction(3, 0); got != 0 {
		t.Errorf("ProgressFraction(3, 0) = %v, want 0", got)
	}
	line := ProgressLine(3, 10, 10)
	if !strings.Contains(line, " 3/10") || !strings.Contains(line, "30.0%") {
		t.Errorf("unexpected progress line %q", line)
	}
}

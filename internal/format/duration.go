// Package format renders durations, counts and progress for terminal output.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a time.Duration for display: microseconds
// below a millisecond, milliseconds below a second, the default
// representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

// FormatMillis formats an elapsed time reported in milliseconds, as carried
// by the command results.
func FormatMillis(ms float64) string {
	switch {
	case ms < 1:
		return fmt.Sprintf("%.3fms", ms)
	case ms < 1000:
		return fmt.Sprintf("%.2fms", ms)
	default:
		return fmt.Sprintf("%.2fs", ms/1000)
	}
}

// Throughput formats count/elapsed as a per-second rate with an SI suffix,
// e.g. "12.3M/s". A non-positive elapsed time yields "n/a".
func Throughput(count uint64, elapsedMs float64) string {
	if elapsedMs <= 0 {
		return "n/a"
	}
	rate := float64(count) / (elapsedMs / 1000)
	switch {
	case rate >= 1e9:
		return fmt.Sprintf("%.1fG/s", rate/1e9)
	case rate >= 1e6:
		return fmt.Sprintf("%.1fM/s", rate/1e6)
	case rate >= 1e3:
		return fmt.Sprintf("%.1fk/s", rate/1e3)
	}
	return fmt.Sprintf("%.0f/s", rate)
}

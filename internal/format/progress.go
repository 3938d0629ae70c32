package format

import (
	"fmt"
	"strings"
)

// ProgressFraction returns current/total clamped to [0, 1]. A zero total
// yields 0.
func ProgressFraction(current, total uint32) float64 {
	if total == 0 {
		return 0
	}
	f := float64(current) / float64(total)
	if f > 1 {
		return 1
	}
	return f
}

// ProgressBar renders a bar of width runes for a progress value in [0, 1].
// Out-of-range values are clamped.
func ProgressBar(progress float64, width int) string {
	if width <= 0 {
		return ""
	}
	progress = max(0, min(progress, 1))
	filled := int(progress * float64(width))

	var b strings.Builder
	b.Grow(width * 3)
	b.WriteString(strings.Repeat("█", filled))
	b.WriteString(strings.Repeat("░", width-filled))
	return b.String()
}

// ProgressLine renders "[bar]  3/10 (30.0%)".
func ProgressLine(current, total uint32, width int) string {
	f := ProgressFraction(current, total)
	return fmt.Sprintf("[%s] %2d/%d (%5.1f%%)", ProgressBar(f, width), current, total, f*100)
}

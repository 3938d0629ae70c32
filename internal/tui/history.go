package tui

import "strings"

var sparkRunes = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// history keeps the most recent percentage samples for a sparkline.
type history struct {
	samples []float64
	limit   int
}

func newHistory(limit int) *history {
	return &history{limit: max(limit, 1)}
}

func (h *history) Push(v float64) {
	h.samples = append(h.samples, v)
	if len(h.samples) > h.limit {
		h.samples = h.samples[len(h.samples)-h.limit:]
	}
}

// Last returns the most recent sample, or 0 if empty.
func (h *history) Last() float64 {
	if len(h.samples) == 0 {
		return 0
	}
	return h.samples[len(h.samples)-1]
}

// Sparkline renders the last width samples, scaled on 0..100, left-padded
// with spaces.
func (h *history) Sparkline(width int) string {
	if width <= 0 {
		return ""
	}
	s := h.samples
	if len(s) > width {
		s = s[len(s)-width:]
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", width-len(s)))
	for _, v := range s {
		v = max(0, min(v, 100))
		b.WriteRune(sparkRunes[int(v/100*7+0.5)])
	}
	return b.String()
}

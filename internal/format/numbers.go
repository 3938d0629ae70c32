package format

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatThousands renders n with comma thousands separators.
func FormatThousands(n uint64) string {
	return FormatNumberString(strconv.FormatUint(n, 10))
}

// FormatNumberString inserts comma separators into a string of decimal
// digits, keeping a leading minus sign.
func FormatNumberString(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	var b strings.Builder
	b.Grow(len(s) + len(s)/3 + 1)
	b.WriteString(sign)
	head := len(s) % 3
	if head == 0 {
		head = 3
	}
	b.WriteString(s[:head])
	for i := head; i < len(s); i += 3 {
		b.WriteByte(',')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}

// FormatScientific renders a small non-negative error value in scientific
// notation, e.g. "1.23e-04". Zero renders as "0".
func FormatScientific(v float64) string {
	if v == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2e", v)
}

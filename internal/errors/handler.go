package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the escape codes used when printing errors.
// A nil provider prints plain text.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }

// ExitCodeFor maps an error to the process exit code without printing anything.
func ExitCodeFor(err error) int {
	var (
		cfgErr     ConfigError
		timeoutErr TimeoutError
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		return ExitErrorCanceled
	case errors.As(err, &cfgErr):
		return ExitErrorConfig
	case IsValidationError(err):
		return ExitErrorValidation
	default:
		return ExitErrorGeneric
	}
}

// HandleCalculationError prints a description of err to out and returns the
// matching exit code. duration is the time spent before the failure; it is
// only printed when non-zero.
func HandleCalculationError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}
	if colors == nil {
		colors = noColors{}
	}
	suffix := ""
	if duration > 0 {
		suffix = fmt.Sprintf(" after %s", duration.Round(time.Microsecond))
	}

	code := ExitCodeFor(err)
	switch code {
	case ExitErrorTimeout:
		var timeoutErr TimeoutError
		if errors.As(err, &timeoutErr) {
			fmt.Fprintf(out, "%sStatus: Timeout%s. %s exceeded its %s limit%s.\n",
				colors.Yellow(), colors.Reset(), timeoutErr.Operation, timeoutErr.Limit, suffix)
			break
		}
		fmt.Fprintf(out, "%sStatus: Timeout%s. The operation exceeded its time limit%s.\n", colors.Yellow(), colors.Reset(), suffix)
	case ExitErrorCanceled:
		fmt.Fprintf(out, "%sStatus: Canceled%s by user%s.\n", colors.Yellow(), colors.Reset(), suffix)
	case ExitErrorValidation:
		fmt.Fprintf(out, "%sRejected:%s %v\n", colors.Red(), colors.Reset(), err)
	default:
		fmt.Fprintf(out, "%sStatus: Failure%s%s. %v\n", colors.Red(), colors.Reset(), suffix, err)
	}
	return code
}

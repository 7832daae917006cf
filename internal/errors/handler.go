package apperrors

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"
)

// ColorProvider supplies the ANSI sequences used when printing errors.
// It keeps this package independent from the ui package.
type ColorProvider interface {
	Red() string
	Yellow() string
	Reset() string
}

// HandleRunError prints a human-readable description of err and returns the
// exit code the process should terminate with.
//
// Parameters:
//   - err: The error returned by a run (nil means success).
//   - duration: How long the run lasted before failing.
//   - out: The writer for the message.
//   - colors: The color provider.
//
// Returns:
//   - int: One of the Exit* constants.
func HandleRunError(err error, duration time.Duration, out io.Writer, colors ColorProvider) int {
	if err == nil {
		return ExitSuccess
	}

	var timeoutErr TimeoutError
	var configErr ConfigError
	switch {
	case errors.As(err, &timeoutErr), errors.Is(err, context.DeadlineExceeded):
		fmt.Fprintf(out, "%sRun stopped: the time limit was exceeded after %s.%s\n",
			colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorTimeout
	case errors.Is(err, context.Canceled):
		fmt.Fprintf(out, "%sRun canceled by user after %s.%s\n",
			colors.Yellow(), duration.Round(time.Millisecond), colors.Reset())
		return ExitErrorCanceled
	case errors.As(err, &configErr):
		fmt.Fprintf(out, "%sConfiguration error: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorConfig
	default:
		fmt.Fprintf(out, "%sError: %v%s\n", colors.Red(), err, colors.Reset())
		return ExitErrorGeneric
	}
}

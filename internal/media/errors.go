package media

import (
	"fmt"
	"time"

	"github.com/pkg/errors"
)

var (
	ErrAudioExtraction = errors.New("audio extraction failed")
	ErrSubtitleBurn    = errors.New("subtitle burn failed")
)

// TimeoutError reports an external process that was forcibly terminated
// after exceeding its wall-clock budget.
type TimeoutError struct {
	Op      string
	Timeout time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out after %s", e.Op, e.Timeout)
}

// ExitError reports a non-zero process exit with the captured streams.
type ExitError struct {
	Op       string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s exited with code %d: %s", e.Op, e.ExitCode, e.Stderr)
}

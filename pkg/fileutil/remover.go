package fileutil

import (
	"os"
	"time"

	"github.com/voizable/voizable-backend/pkg/logger"
)

// RetryPolicy bounds deletion retries for one remover.
type RetryPolicy struct {
	MaxAttempts  int
	InitialDelay time.Duration
}

// ImmediatePolicy is the short budget for removing a single staging file
// right after an external process exits.
var ImmediatePolicy = RetryPolicy{
	MaxAttempts:  3,
	InitialDelay: 50 * time.Millisecond,
}

// DefaultJobPolicy is the end-of-job budget for removing a job's remaining
// artifacts. Overridable through the cleanup config section.
var DefaultJobPolicy = RetryPolicy{
	MaxAttempts:  5,
	InitialDelay: 100 * time.Millisecond,
}

// Remover deletes files with bounded exponential backoff. The platform may
// hold a handle on a file briefly after the process that wrote it exits, so
// a first failed delete is retried rather than reported.
type Remover struct {
	policy RetryPolicy
	logger logger.Logger

	stat   func(string) (os.FileInfo, error)
	remove func(string) error
	sleep  func(time.Duration)
}

func NewRemover(policy RetryPolicy, logger logger.Logger) *Remover {
	if policy.MaxAttempts <= 0 {
		policy = DefaultJobPolicy
	}
	return &Remover{
		policy: policy,
		logger: logger,
		stat:   os.Stat,
		remove: os.Remove,
		sleep:  time.Sleep,
	}
}

// Remove deletes path, retrying on failure. A missing path is success.
// Exhausting the retry budget is logged and swallowed; cleanup never fails
// the operation that owns the file.
func (r *Remover) Remove(path string) {
	if path == "" {
		return
	}
	if _, err := r.stat(path); os.IsNotExist(err) {
		return
	}

	delay := r.policy.InitialDelay
	for attempt := 1; attempt <= r.policy.MaxAttempts; attempt++ {
		err := r.remove(path)
		if err == nil || os.IsNotExist(err) {
			return
		}
		if attempt == r.policy.MaxAttempts {
			r.logger.Warnf("failed to clean up %s after %d attempts: %v", path, attempt, err)
			return
		}
		r.sleep(delay)
		delay *= 2
	}
}

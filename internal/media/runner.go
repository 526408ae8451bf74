package media

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/voizable/voizable-backend/pkg/logger"

	"github.com/pkg/errors"
)

// Command describes one external process invocation.
type Command struct {
	Path    string
	Args    []string
	Dir     string
	Timeout time.Duration
	Op      string
}

type Result struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner executes external commands. Any transcoding tool with a compatible
// CLI satisfies the pipeline through this interface.
type Runner interface {
	Run(ctx context.Context, command Command) (*Result, error)
}

// drainJoinTimeout bounds the wait for the stdout/stderr drain goroutines
// after the process has exited. A grandchild that inherited the pipe could
// otherwise hold the drain open indefinitely.
const drainJoinTimeout = 2 * time.Second

type execRunner struct {
	logger logger.Logger
}

func NewRunner(logger logger.Logger) Runner {
	return &execRunner{logger: logger}
}

func (r *execRunner) Run(ctx context.Context, command Command) (*Result, error) {
	runCtx := ctx
	if command.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, command.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, command.Path, command.Args...)
	cmd.Dir = command.Dir

	outR, outW, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to open stdout pipe for %s: %w", command.Op, err)
	}
	errR, errW, err := os.Pipe()
	if err != nil {
		outR.Close()
		outW.Close()
		return nil, fmt.Errorf("failed to open stderr pipe for %s: %w", command.Op, err)
	}
	cmd.Stdout = outW
	cmd.Stderr = errW

	if err := cmd.Start(); err != nil {
		outR.Close()
		outW.Close()
		errR.Close()
		errW.Close()
		return nil, fmt.Errorf("failed to start %s: %w", command.Op, err)
	}

	// The child holds its own copies of the write ends now; drop ours so the
	// drains see EOF when the process exits.
	outW.Close()
	errW.Close()

	// Streams are drained concurrently with the process; a full OS pipe
	// buffer would otherwise block the child.
	var outBuf, errBuf bytes.Buffer
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		defer outR.Close()
		io.Copy(&outBuf, outR) //nolint:errcheck
	}()
	go func() {
		defer wg.Done()
		defer errR.Close()
		io.Copy(&errBuf, errR) //nolint:errcheck
	}()

	waitErr := cmd.Wait()

	drained := make(chan struct{})
	go func() {
		wg.Wait()
		close(drained)
	}()
	var stdout, stderr string
	select {
	case <-drained:
		stdout = outBuf.String()
		stderr = errBuf.String()
	case <-time.After(drainJoinTimeout):
		// The drains may still be writing; leave the captured output empty
		// rather than read the buffers mid-write.
		r.logger.Warnf("%s: output drain did not finish within %s", command.Op, drainJoinTimeout)
	}

	if runCtx.Err() == context.DeadlineExceeded {
		return nil, &TimeoutError{Op: command.Op, Timeout: command.Timeout}
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			return nil, &ExitError{
				Op:       command.Op,
				ExitCode: exitErr.ExitCode(),
				Stdout:   stdout,
				Stderr:   stderr,
			}
		}
		return nil, errors.Wrapf(waitErr, "%s failed", command.Op)
	}

	return &Result{
		ExitCode: 0,
		Stdout:   stdout,
		Stderr:   stderr,
	}, nil
}

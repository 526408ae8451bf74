package media

import (
	"context"
	"errors"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/voizable/voizable-backend/pkg/logger"
)

func requireUnix(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("runner tests shell out to sh")
	}
}

func TestRunnerCapturesBothStreams(t *testing.T) {
	requireUnix(t)
	r := NewRunner(logger.NewNopLogger())

	res, err := r.Run(context.Background(), Command{
		Path:    "sh",
		Args:    []string{"-c", "echo out; echo err 1>&2"},
		Timeout: 5 * time.Second,
		Op:      "stream capture",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ExitCode != 0 {
		t.Fatalf("exit code = %d, want 0", res.ExitCode)
	}
	if !strings.Contains(res.Stdout, "out") {
		t.Fatalf("stdout = %q, want to contain %q", res.Stdout, "out")
	}
	if !strings.Contains(res.Stderr, "err") {
		t.Fatalf("stderr = %q, want to contain %q", res.Stderr, "err")
	}
}

func TestRunnerReportsNonZeroExit(t *testing.T) {
	requireUnix(t)
	r := NewRunner(logger.NewNopLogger())

	_, err := r.Run(context.Background(), Command{
		Path:    "sh",
		Args:    []string{"-c", "echo boom 1>&2; exit 3"},
		Timeout: 5 * time.Second,
		Op:      "failing command",
	})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want *ExitError", err)
	}
	if exitErr.ExitCode != 3 {
		t.Fatalf("exit code = %d, want 3", exitErr.ExitCode)
	}
	if !strings.Contains(exitErr.Stderr, "boom") {
		t.Fatalf("stderr = %q, want to contain %q", exitErr.Stderr, "boom")
	}
	if exitErr.Op != "failing command" {
		t.Fatalf("op = %q, want %q", exitErr.Op, "failing command")
	}
}

func TestRunnerKillsProcessOnTimeout(t *testing.T) {
	requireUnix(t)
	r := NewRunner(logger.NewNopLogger())

	start := time.Now()
	_, err := r.Run(context.Background(), Command{
		Path:    "sleep",
		Args:    []string{"30"},
		Timeout: 200 * time.Millisecond,
		Op:      "never-ending command",
	})
	elapsed := time.Since(start)

	var timeoutErr *TimeoutError
	if !errors.As(err, &timeoutErr) {
		t.Fatalf("error = %v, want *TimeoutError", err)
	}
	if timeoutErr.Op != "never-ending command" {
		t.Fatalf("op = %q", timeoutErr.Op)
	}
	if timeoutErr.Timeout != 200*time.Millisecond {
		t.Fatalf("timeout = %v", timeoutErr.Timeout)
	}
	if elapsed > 5*time.Second {
		t.Fatalf("process not terminated at timeout, ran for %v", elapsed)
	}
}

func TestRunnerPropagatesContextCancellation(t *testing.T) {
	requireUnix(t)
	r := NewRunner(logger.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(100 * time.Millisecond)
		cancel()
	}()

	_, err := r.Run(ctx, Command{
		Path:    "sleep",
		Args:    []string{"30"},
		Timeout: time.Minute,
		Op:      "cancelled command",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
}

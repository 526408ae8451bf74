package media

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/logger"
)

type fakeRunner struct {
	commands []Command
	run      func(Command) (*Result, error)
}

func (f *fakeRunner) Run(ctx context.Context, command Command) (*Result, error) {
	f.commands = append(f.commands, command)
	if f.run != nil {
		return f.run(command)
	}
	return &Result{ExitCode: 0}, nil
}

func stagedFiles(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestExtractAudioCommandShape(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	e := NewExtractor(runner, "ffmpeg", dir, 10*time.Minute, logger.NewNopLogger())

	audioPath, err := e.ExtractAudio(context.Background(), &models.Upload{
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		Data:        []byte("fake video"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasSuffix(audioPath, ".wav") {
		t.Fatalf("audio path = %q, want .wav suffix", audioPath)
	}

	if len(runner.commands) != 1 {
		t.Fatalf("commands = %d, want 1", len(runner.commands))
	}
	cmd := runner.commands[0]
	if cmd.Path != "ffmpeg" {
		t.Fatalf("path = %q", cmd.Path)
	}
	if cmd.Timeout != 10*time.Minute {
		t.Fatalf("timeout = %v", cmd.Timeout)
	}
	args := strings.Join(cmd.Args, " ")
	for _, want := range []string{"-vn", "-acodec pcm_s16le", "-ar 16000", "-ac 1"} {
		if !strings.Contains(args, want) {
			t.Errorf("args %q missing %q", args, want)
		}
	}
	if cmd.Args[len(cmd.Args)-1] != audioPath {
		t.Fatalf("last arg = %q, want output path %q", cmd.Args[len(cmd.Args)-1], audioPath)
	}
}

func TestExtractAudioRemovesStagedInput(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{}
	e := NewExtractor(runner, "ffmpeg", dir, 0, logger.NewNopLogger())

	if _, err := e.ExtractAudio(context.Background(), &models.Upload{
		FileName: "clip.mp4",
		Data:     []byte("fake video"),
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, name := range stagedFiles(t, dir) {
		if strings.HasSuffix(name, "_clip.mp4") {
			t.Fatalf("staged input copy %q not removed", name)
		}
	}
}

func TestExtractAudioFailureRemovesStagedInput(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{
		run: func(Command) (*Result, error) {
			return nil, &ExitError{Op: "audio extraction", ExitCode: 1, Stderr: "invalid data"}
		},
	}
	e := NewExtractor(runner, "ffmpeg", dir, 0, logger.NewNopLogger())

	_, err := e.ExtractAudio(context.Background(), &models.Upload{
		FileName: "broken.mp4",
		Data:     []byte("not a video"),
	})
	if !errors.Is(err, ErrAudioExtraction) {
		t.Fatalf("error = %v, want ErrAudioExtraction", err)
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("error = %v, want wrapped *ExitError", err)
	}

	if names := stagedFiles(t, dir); len(names) != 0 {
		t.Fatalf("uploads dir not clean after failure: %v", names)
	}
}

func TestExtractAudioStagedNameIsUnique(t *testing.T) {
	dir := t.TempDir()
	staged := map[string]bool{}
	runner := &fakeRunner{
		run: func(cmd Command) (*Result, error) {
			// input path is the arg after -i
			for i, a := range cmd.Args {
				if a == "-i" {
					if staged[cmd.Args[i+1]] {
						t.Fatalf("staged path reused: %s", cmd.Args[i+1])
					}
					staged[cmd.Args[i+1]] = true
				}
			}
			return &Result{}, nil
		},
	}
	e := NewExtractor(runner, "ffmpeg", dir, 0, logger.NewNopLogger())

	upload := &models.Upload{FileName: "same-name.mp4", Data: []byte("x")}
	for i := 0; i < 3; i++ {
		if _, err := e.ExtractAudio(context.Background(), upload); err != nil {
			t.Fatal(err)
		}
	}
}

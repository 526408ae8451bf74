package media

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/voizable/voizable-backend/pkg/fileutil"
	"github.com/voizable/voizable-backend/pkg/logger"

	"github.com/google/uuid"
)

const defaultBurnTimeout = 15 * time.Minute

// Burner renders a subtitle track permanently into a video's frames.
type Burner struct {
	runner     Runner
	fonts      fs.FS
	ffmpegPath string
	uploadsDir string
	timeout    time.Duration
	remover    *fileutil.Remover
	logger     logger.Logger
}

func NewBurner(runner Runner, fonts fs.FS, ffmpegPath, uploadsDir string, timeout time.Duration, logger logger.Logger) *Burner {
	if timeout <= 0 {
		timeout = defaultBurnTimeout
	}
	return &Burner{
		runner:     runner,
		fonts:      fonts,
		ffmpegPath: ffmpegPath,
		uploadsDir: uploadsDir,
		timeout:    timeout,
		remover:    fileutil.NewRemover(fileutil.ImmediatePolicy, logger),
		logger:     logger,
	}
}

// Burn renders the subtitle file onto the video with the requested font
// style and returns the produced file's path. The temporary font copy is
// always removed.
func (b *Burner) Burn(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error) {
	outputPath := filepath.Join(b.uploadsDir, "captioned_"+uuid.New().String()+".mp4")

	fontPath, err := b.extractFont(fontStyle)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubtitleBurn, err)
	}
	defer b.remover.Remove(fontPath)

	absSubtitlePath, err := filepath.Abs(subtitlePath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubtitleBurn, err)
	}
	absFontPath, err := filepath.Abs(fontPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubtitleBurn, err)
	}

	filter := buildSubtitleFilter(absSubtitlePath, absFontPath)
	b.logger.Infof("Burning subtitles with filter: %s", filter)

	_, err = b.runner.Run(ctx, Command{
		Path: b.ffmpegPath,
		Args: []string{
			"-i", videoPath,
			"-vf", filter,
			"-c:a", "copy",
			"-y",
			outputPath,
		},
		Dir:     b.uploadsDir,
		Timeout: b.timeout,
		Op:      "subtitle burn",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrSubtitleBurn, err)
	}

	// The transcoder has exited; confirm the output actually landed instead
	// of sleeping for handle release.
	if _, err := os.Stat(outputPath); err != nil {
		return "", fmt.Errorf("%w: output file not written: %w", ErrSubtitleBurn, err)
	}

	return outputPath, nil
}

// extractFont copies the resolved font out of the font filesystem. The
// transcoder's filter needs a real path, not a resource handle.
func (b *Burner) extractFont(style string) (string, error) {
	fontFile := FontFileForStyle(style)
	data, err := fs.ReadFile(b.fonts, fontFile)
	if err != nil {
		return "", fmt.Errorf("font file not found: %s: %w", fontFile, err)
	}

	tmp, err := os.CreateTemp("", "font-*.ttf")
	if err != nil {
		return "", fmt.Errorf("failed to create temp font file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to write temp font file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", fmt.Errorf("failed to close temp font file: %w", err)
	}
	return tmp.Name(), nil
}

// filterPath normalizes a path for the subtitle filter: forward slashes,
// drive-letter colon escaped.
func filterPath(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	return strings.Replace(p, ":", "\\:", 1)
}

func buildSubtitleFilter(subtitlePath, fontPath string) string {
	return fmt.Sprintf(
		"subtitles='%s':force_style='FontFile=%s,FontSize=18,PrimaryColour=&HFFFFFF,OutlineColour=&H000000,Outline=1,Shadow=1'",
		filterPath(subtitlePath),
		filterPath(fontPath),
	)
}

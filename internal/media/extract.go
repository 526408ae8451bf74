package media

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/fileutil"
	"github.com/voizable/voizable-backend/pkg/logger"

	"github.com/google/uuid"
)

const defaultExtractTimeout = 10 * time.Minute

// Extractor converts an uploaded video into a normalized mono 16 kHz PCM
// WAV file the transcription provider accepts.
type Extractor struct {
	runner     Runner
	ffmpegPath string
	uploadsDir string
	timeout    time.Duration
	remover    *fileutil.Remover
	logger     logger.Logger
}

func NewExtractor(runner Runner, ffmpegPath, uploadsDir string, timeout time.Duration, logger logger.Logger) *Extractor {
	if timeout <= 0 {
		timeout = defaultExtractTimeout
	}
	return &Extractor{
		runner:     runner,
		ffmpegPath: ffmpegPath,
		uploadsDir: uploadsDir,
		timeout:    timeout,
		remover:    fileutil.NewRemover(fileutil.ImmediatePolicy, logger),
		logger:     logger,
	}
}

// ExtractAudio stages the upload to a uniquely named file, transcodes it,
// and returns the audio path. Ownership of the output passes to the caller;
// the staged input copy is always removed.
func (e *Extractor) ExtractAudio(ctx context.Context, upload *models.Upload) (string, error) {
	if err := os.MkdirAll(e.uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: failed to create uploads dir: %w", ErrAudioExtraction, err)
	}

	tempVideoPath := filepath.Join(e.uploadsDir, uuid.New().String()+"_"+filepath.Base(upload.FileName))
	if err := os.WriteFile(tempVideoPath, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("%w: failed to stage upload: %w", ErrAudioExtraction, err)
	}
	defer e.remover.Remove(tempVideoPath)

	audioPath := filepath.Join(e.uploadsDir, uuid.New().String()+".wav")
	e.logger.Infof("Extracting audio from %s", upload.FileName)

	_, err := e.runner.Run(ctx, Command{
		Path: e.ffmpegPath,
		Args: []string{
			"-i", tempVideoPath,
			"-vn",
			"-acodec", "pcm_s16le",
			"-ar", "16000",
			"-ac", "1",
			audioPath,
		},
		Timeout: e.timeout,
		Op:      "audio extraction",
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrAudioExtraction, err)
	}
	return audioPath, nil
}

package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/voizable/voizable-backend/internal/config"
	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/internal/transcriptions"
	"github.com/voizable/voizable-backend/pkg/fileutil"
	"github.com/voizable/voizable-backend/pkg/logger"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/google/uuid"
)

type transcriptionUC struct {
	cfg               *config.Config
	transcriptionRepo transcriptions.Repository
	provider          transcriptions.Provider
	extractor         transcriptions.AudioExtractor
	remover           *fileutil.Remover
	logger            logger.Logger
}

func NewTranscriptionUseCase(
	cfg *config.Config,
	transcriptionRepo transcriptions.Repository,
	provider transcriptions.Provider,
	extractor transcriptions.AudioExtractor,
	log logger.Logger,
) transcriptions.UseCase {
	return &transcriptionUC{
		cfg:               cfg,
		transcriptionRepo: transcriptionRepo,
		provider:          provider,
		extractor:         extractor,
		remover:           fileutil.NewRemover(fileutil.ImmediatePolicy, log),
		logger:            log,
	}
}

// TranscribeAndSave normalizes the upload to an audio file, submits it to
// the provider, and persists the result. The temporary audio file is
// removed on every path; no partial record is ever persisted.
func (t *transcriptionUC) TranscribeAndSave(ctx context.Context, upload *models.Upload) (*models.Transcription, error) {
	var audioPath string
	var err error

	if upload.IsVideo() {
		t.logger.Infof("TranscribeAndSave - extracting audio from video %s", upload.FileName)
		audioPath, err = t.extractor.ExtractAudio(ctx, upload)
		if err != nil {
			t.logger.Errorf("TranscribeAndSave - ExtractAudio error: %v", err)
			return nil, err
		}
	} else {
		audioPath, err = t.stageAudio(upload)
		if err != nil {
			t.logger.Errorf("TranscribeAndSave - stageAudio error: %v", err)
			return nil, fmt.Errorf("%w: %w", transcriptions.ErrTranscription, err)
		}
	}
	defer t.remover.Remove(audioPath)

	result, err := t.provider.Transcribe(ctx, audioPath)
	if err != nil {
		t.logger.Errorf("TranscribeAndSave - provider error: %v", err)
		return nil, fmt.Errorf("%w: %w", transcriptions.ErrTranscription, err)
	}

	transcription := &models.Transcription{
		OriginalFileName: upload.FileName,
		PlainText:        result.PlainText,
		SrtContent:       result.SrtContent,
	}
	saved, err := t.transcriptionRepo.CreateTranscription(ctx, transcription)
	if err != nil {
		t.logger.Errorf("TranscribeAndSave - CreateTranscription error: %v", err)
		return nil, fmt.Errorf("%w: %w", transcriptions.ErrTranscription, err)
	}
	return saved, nil
}

func (t *transcriptionUC) ListTranscriptions(ctx context.Context, pagination *utils.Pagination) (*models.TranscriptionList, error) {
	if pagination == nil {
		pagination = &utils.Pagination{Page: 1, Size: 10}
	}
	if pagination.Page < 1 {
		pagination.Page = 1
	}
	if pagination.Size < 1 || pagination.Size > 100 {
		pagination.Size = 10
	}
	list, err := t.transcriptionRepo.GetTranscriptions(ctx, pagination)
	if err != nil {
		t.logger.Errorf("ListTranscriptions - GetTranscriptions error: %v", err)
		return nil, fmt.Errorf("failed to fetch transcriptions: %v", err)
	}
	return list, nil
}

// stageAudio writes an already-audio upload to a uniquely named temporary
// file in the shared uploads dir.
func (t *transcriptionUC) stageAudio(upload *models.Upload) (string, error) {
	uploadsDir := t.cfg.FFmpeg.UploadsDir
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}
	audioPath := filepath.Join(uploadsDir, uuid.New().String()+"_"+filepath.Base(upload.FileName))
	if err := os.WriteFile(audioPath, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to stage audio upload: %w", err)
	}
	return audioPath, nil
}

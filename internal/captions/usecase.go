package captions

import (
	"context"

	"github.com/voizable/voizable-backend/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrJobNotFound = errors.New("caption job not found")
	ErrEmptyUpload = errors.New("uploaded file is empty")
)

type UseCase interface {
	// StartJob creates a pending job and launches its background run.
	// It returns as soon as the job record is readable.
	StartJob(ctx context.Context, upload *models.Upload, fontStyle string) (*models.CaptionJob, error)
	GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error)
}

// SubtitleBurner renders a subtitle file onto a video and returns the
// produced file's path.
type SubtitleBurner interface {
	Burn(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error)
}

package transcriptions

import (
	"context"

	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/pkg/errors"
)

// ErrTranscription covers provider, network, and persistence failures of a
// transcription run.
var ErrTranscription = errors.New("transcription failed")

type UseCase interface {
	TranscribeAndSave(ctx context.Context, upload *models.Upload) (*models.Transcription, error)
	ListTranscriptions(ctx context.Context, pagination *utils.Pagination) (*models.TranscriptionList, error)
}

// AudioExtractor normalizes a video upload into an audio file the provider
// accepts. Ownership of the returned path passes to the caller.
type AudioExtractor interface {
	ExtractAudio(ctx context.Context, upload *models.Upload) (string, error)
}

package transcriptions

import (
	"context"

	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/utils"
)

type Repository interface {
	CreateTranscription(ctx context.Context, transcription *models.Transcription) (*models.Transcription, error)
	GetTranscriptions(ctx context.Context, pq *utils.Pagination) (*models.TranscriptionList, error)
}

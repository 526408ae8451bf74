package transcriptions

import (
	"context"

	"github.com/voizable/voizable-backend/internal/models"
)

// Provider is the external speech-to-text service. One attempt per call;
// failures surface to the caller.
type Provider interface {
	Transcribe(ctx context.Context, audioPath string) (*models.TranscriptionResult, error)
}

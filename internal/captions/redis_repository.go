package captions

import (
	"context"
	"time"

	"github.com/voizable/voizable-backend/internal/models"

	"github.com/google/uuid"
)

// RedisRepository caches terminal job records so status polling does not
// keep hitting postgres.
type RedisRepository interface {
	CacheJob(ctx context.Context, job *models.CaptionJob, ttl time.Duration) error
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error)
}

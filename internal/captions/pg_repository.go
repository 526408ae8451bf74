package captions

import (
	"context"

	"github.com/voizable/voizable-backend/internal/models"

	"github.com/google/uuid"
)

type Repository interface {
	CreateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error)
	GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error)
	// UpdateJob replaces the whole record in one statement so readers never
	// observe a torn transition.
	UpdateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error)
}

package repository

import (
	"context"
	"fmt"

	"github.com/voizable/voizable-backend/internal/captions"
	"github.com/voizable/voizable-backend/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type captionJobRepo struct {
	db *sqlx.DB
}

func NewCaptionJobRepo(db *sqlx.DB) captions.Repository {
	return &captionJobRepo{
		db: db,
	}
}

func (r *captionJobRepo) CreateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error) {
	created := &models.CaptionJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		createJobQuery,
		job.JobID,
		job.Status,
		job.OriginalFileName,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create caption job: %w", err)
	}
	return created, nil
}

func (r *captionJobRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error) {
	job := &models.CaptionJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		getJobByIDQuery,
		jobID,
	).StructScan(job); err != nil {
		return nil, fmt.Errorf("failed to get caption job by id: %w", err)
	}
	return job, nil
}

func (r *captionJobRepo) UpdateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error) {
	updated := &models.CaptionJob{}
	if err := r.db.QueryRowxContext(
		ctx,
		updateJobQuery,
		job.Status,
		job.CaptionedVideoPath,
		job.ErrorMessage,
		job.CompletedAt,
		job.JobID,
	).StructScan(updated); err != nil {
		return nil, fmt.Errorf("failed to update caption job: %w", err)
	}
	return updated, nil
}

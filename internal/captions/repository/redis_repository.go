package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/voizable/voizable-backend/internal/captions"
	"github.com/voizable/voizable-backend/internal/models"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const jobCacheKeyPrefix = "caption_jobs:"

type captionRedisRepo struct {
	redisClient *redis.Client
}

func NewCaptionRedisRepo(redisClient *redis.Client) captions.RedisRepository {
	return &captionRedisRepo{
		redisClient: redisClient,
	}
}

func (r *captionRedisRepo) CacheJob(ctx context.Context, job *models.CaptionJob, ttl time.Duration) error {
	jobData, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to marshal caption job: %w", err)
	}
	if err := r.redisClient.Set(ctx, jobCacheKeyPrefix+job.JobID.String(), jobData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache caption job: %w", err)
	}
	return nil
}

func (r *captionRedisRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error) {
	jobData, err := r.redisClient.Get(ctx, jobCacheKeyPrefix+jobID.String()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached caption job: %w", err)
	}
	job := &models.CaptionJob{}
	if err := json.Unmarshal(jobData, job); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached caption job: %w", err)
	}
	return job, nil
}

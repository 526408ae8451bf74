package usecase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"github.com/voizable/voizable-backend/internal/captions"
	"github.com/voizable/voizable-backend/internal/config"
	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/internal/transcriptions"
	"github.com/voizable/voizable-backend/pkg/fileutil"
	"github.com/voizable/voizable-backend/pkg/logger"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/google/uuid"
)

const (
	capacityChecks        = 5
	capacityCheckInterval = 10 * time.Second
)

type captionUC struct {
	cfg             *config.Config
	jobRepo         captions.Repository
	redisRepo       captions.RedisRepository
	transcriptionUC transcriptions.UseCase
	burner          captions.SubtitleBurner
	remover         *fileutil.Remover
	cacheTTL        time.Duration
	logger          logger.Logger
}

func NewCaptionUseCase(
	cfg *config.Config,
	jobRepo captions.Repository,
	redisRepo captions.RedisRepository,
	transcriptionUC transcriptions.UseCase,
	burner captions.SubtitleBurner,
	log logger.Logger,
) captions.UseCase {
	policy := fileutil.RetryPolicy{
		MaxAttempts:  cfg.Cleanup.MaxRetries,
		InitialDelay: cfg.Cleanup.InitialDelay,
	}
	if policy.MaxAttempts <= 0 {
		policy = fileutil.DefaultJobPolicy
	}
	return &captionUC{
		cfg:             cfg,
		jobRepo:         jobRepo,
		redisRepo:       redisRepo,
		transcriptionUC: transcriptionUC,
		burner:          burner,
		remover:         fileutil.NewRemover(policy, log),
		cacheTTL:        time.Duration(cfg.Redis.JobCacheTTL) * time.Second,
		logger:          log,
	}
}

func (u *captionUC) StartJob(ctx context.Context, upload *models.Upload, fontStyle string) (*models.CaptionJob, error) {
	if upload.IsEmpty() {
		return nil, captions.ErrEmptyUpload
	}

	job := &models.CaptionJob{
		JobID:            uuid.New(),
		Status:           models.JobStatusPending,
		OriginalFileName: upload.FileName,
	}
	created, err := u.jobRepo.CreateJob(ctx, job)
	if err != nil {
		u.logger.Errorf("StartJob - CreateJob error: %v", err)
		return nil, fmt.Errorf("failed to create caption job: %w", err)
	}

	go u.processJob(created.JobID, upload, fontStyle)

	return created, nil
}

func (u *captionUC) GetJobStatus(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error) {
	if u.redisRepo != nil {
		cached, err := u.redisRepo.GetJobByID(ctx, jobID)
		if err != nil {
			u.logger.Warnf("GetJobStatus - cache read error for job %s: %v", jobID, err)
		} else if cached != nil {
			return cached, nil
		}
	}

	job, err := u.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, captions.ErrJobNotFound
		}
		u.logger.Errorf("GetJobStatus - GetJobByID error: %v", err)
		return nil, fmt.Errorf("failed to fetch caption job: %w", err)
	}

	// Terminal records are immutable; cache them to absorb polling.
	if job.Status.Terminal() && u.redisRepo != nil {
		if err := u.redisRepo.CacheJob(ctx, job, u.cacheTTL); err != nil {
			u.logger.Warnf("GetJobStatus - failed to cache job %s: %v", jobID, err)
		}
	}
	return job, nil
}

// processJob drives one job from PROCESSING to a terminal state. It runs on
// its own goroutine with a detached context; nothing propagates past this
// boundary, and every path ends in a terminal transition plus cleanup of
// the subtitle file and staged video copy.
func (u *captionUC) processJob(jobID uuid.UUID, upload *models.Upload, fontStyle string) {
	ctx := context.Background()

	defer func() {
		if r := recover(); r != nil {
			u.logger.Errorf("caption job %s panicked: %v\n%s", jobID, r, string(debug.Stack()))
			u.finishJob(ctx, jobID, "", fmt.Sprintf("internal error: %v", r))
		}
	}()

	u.waitForCapacity()

	job, err := u.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		u.logger.Errorf("caption job %s vanished before processing: %v", jobID, err)
		return
	}
	job.Status = models.JobStatusProcessing
	if _, err := u.jobRepo.UpdateJob(ctx, job); err != nil {
		u.logger.Errorf("caption job %s: failed to mark processing: %v", jobID, err)
		return
	}

	var subtitlePath, stagedVideoPath string
	defer func() {
		u.remover.Remove(subtitlePath)
		u.remover.Remove(stagedVideoPath)
	}()

	captionedPath, runErr := func() (string, error) {
		transcription, err := u.transcriptionUC.TranscribeAndSave(ctx, upload)
		if err != nil {
			return "", err
		}
		subtitlePath, err = u.writeSubtitleFile(transcription.SrtContent)
		if err != nil {
			return "", err
		}
		stagedVideoPath, err = u.stageVideo(upload)
		if err != nil {
			return "", err
		}
		return u.burner.Burn(ctx, stagedVideoPath, subtitlePath, fontStyle)
	}()

	if runErr != nil {
		u.logger.Errorf("caption job %s failed: %v", jobID, runErr)
		u.finishJob(ctx, jobID, "", runErr.Error())
		return
	}

	u.logger.Infof("caption job %s completed: %s", jobID, filepath.Base(captionedPath))
	u.finishJob(ctx, jobID, filepath.Base(captionedPath), "")
}

// finishJob applies the terminal transition as one atomic record update.
func (u *captionUC) finishJob(ctx context.Context, jobID uuid.UUID, captionedVideoPath, errorMessage string) {
	job, err := u.jobRepo.GetJobByID(ctx, jobID)
	if err != nil {
		u.logger.Errorf("caption job %s: failed to load for terminal update: %v", jobID, err)
		return
	}
	if job.Status.Terminal() {
		return
	}

	now := time.Now()
	job.CompletedAt = &now
	if errorMessage != "" {
		job.Status = models.JobStatusFailed
		job.ErrorMessage = errorMessage
	} else {
		job.Status = models.JobStatusCompleted
		job.CaptionedVideoPath = captionedVideoPath
	}

	updated, err := u.jobRepo.UpdateJob(ctx, job)
	if err != nil {
		u.logger.Errorf("caption job %s: terminal update failed: %v", jobID, err)
		return
	}
	if u.redisRepo != nil {
		if err := u.redisRepo.CacheJob(ctx, updated, u.cacheTTL); err != nil {
			u.logger.Warnf("caption job %s: failed to cache terminal state: %v", jobID, err)
		}
	}
}

// waitForCapacity defers heavy transcoding while the host CPU is saturated.
func (u *captionUC) waitForCapacity() {
	maxUsage := u.cfg.Worker.MaxCPUUsage
	if maxUsage <= 0 {
		return
	}
	for i := 0; i < capacityChecks; i++ {
		ok, usage := utils.CheckCPUUsage(maxUsage)
		if ok {
			return
		}
		u.logger.Infof("CPU usage %.2f%% too high, delaying caption job", usage)
		time.Sleep(capacityCheckInterval)
	}
}

func (u *captionUC) writeSubtitleFile(srtContent string) (string, error) {
	uploadsDir := u.cfg.FFmpeg.UploadsDir
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create uploads dir: %w", err)
	}
	path := filepath.Join(uploadsDir, uuid.New().String()+".srt")
	if err := os.WriteFile(path, []byte(srtContent), 0o644); err != nil {
		return "", fmt.Errorf("failed to write subtitle file: %w", err)
	}
	return path, nil
}

func (u *captionUC) stageVideo(upload *models.Upload) (string, error) {
	uploadsDir := u.cfg.FFmpeg.UploadsDir
	path := filepath.Join(uploadsDir, uuid.New().String()+"_"+filepath.Base(upload.FileName))
	if err := os.WriteFile(path, upload.Data, 0o644); err != nil {
		return "", fmt.Errorf("failed to stage video: %w", err)
	}
	return path, nil
}

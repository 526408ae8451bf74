package usecase

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/voizable/voizable-backend/internal/captions"
	"github.com/voizable/voizable-backend/internal/config"
	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/logger"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	mu       sync.Mutex
	jobs     map[uuid.UUID]*models.CaptionJob
	statuses []models.JobStatus
	getErr   error
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[uuid.UUID]*models.CaptionJob)}
}

func (f *fakeJobRepo) CreateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *job
	stored.CreatedAt = time.Now()
	f.jobs[job.JobID] = &stored
	f.statuses = append(f.statuses, stored.Status)
	out := stored
	return &out, nil
}

func (f *fakeJobRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *job
	return &out, nil
}

func (f *fakeJobRepo) UpdateJob(ctx context.Context, job *models.CaptionJob) (*models.CaptionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *job
	f.jobs[job.JobID] = &stored
	f.statuses = append(f.statuses, stored.Status)
	out := stored
	return &out, nil
}

type fakeRedisRepo struct {
	mu     sync.Mutex
	cached map[uuid.UUID]*models.CaptionJob
	hit    *models.CaptionJob
}

func newFakeRedisRepo() *fakeRedisRepo {
	return &fakeRedisRepo{cached: make(map[uuid.UUID]*models.CaptionJob)}
}

func (f *fakeRedisRepo) CacheJob(ctx context.Context, job *models.CaptionJob, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	stored := *job
	f.cached[job.JobID] = &stored
	return nil
}

func (f *fakeRedisRepo) GetJobByID(ctx context.Context, jobID uuid.UUID) (*models.CaptionJob, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.hit != nil {
		return f.hit, nil
	}
	return nil, nil
}

type fakeTranscriptionUC struct {
	result *models.Transcription
	err    error
}

func (f *fakeTranscriptionUC) TranscribeAndSave(ctx context.Context, upload *models.Upload) (*models.Transcription, error) {
	return f.result, f.err
}

func (f *fakeTranscriptionUC) ListTranscriptions(ctx context.Context, pagination *utils.Pagination) (*models.TranscriptionList, error) {
	return nil, nil
}

type fakeBurner struct {
	burn func(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error)
}

func (f *fakeBurner) Burn(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error) {
	return f.burn(ctx, videoPath, subtitlePath, fontStyle)
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		FFmpeg:  config.FFmpegConfig{UploadsDir: t.TempDir()},
		Cleanup: config.CleanupConfig{MaxRetries: 1, InitialDelay: time.Millisecond},
		Redis:   config.RedisConfig{JobCacheTTL: 60},
	}
}

func testUpload() *models.Upload {
	return &models.Upload{
		FileName:    "talk.mp4",
		ContentType: "video/mp4",
		Size:        4,
		Data:        []byte("vids"),
	}
}

func newTestUC(cfg *config.Config, repo captions.Repository, redis captions.RedisRepository, tuc *fakeTranscriptionUC, burner captions.SubtitleBurner) *captionUC {
	return NewCaptionUseCase(cfg, repo, redis, tuc, burner, logger.NewNopLogger()).(*captionUC)
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestStartJobRejectsEmptyUpload(t *testing.T) {
	repo := newFakeJobRepo()
	uc := newTestUC(testConfig(t), repo, newFakeRedisRepo(), &fakeTranscriptionUC{}, &fakeBurner{})

	_, err := uc.StartJob(context.Background(), &models.Upload{FileName: "talk.mp4"}, "arial")
	if !errors.Is(err, captions.ErrEmptyUpload) {
		t.Fatalf("expected ErrEmptyUpload, got %v", err)
	}
	if len(repo.jobs) != 0 {
		t.Fatalf("no job should be created for an empty upload, got %d", len(repo.jobs))
	}
}

func TestStartJobReturnsPendingJob(t *testing.T) {
	cfg := testConfig(t)
	repo := newFakeJobRepo()
	tuc := &fakeTranscriptionUC{result: &models.Transcription{SrtContent: "1\n00:00:00,000 --> 00:00:01,000\nhi\n"}}
	burner := &fakeBurner{burn: func(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error) {
		return filepath.Join(cfg.FFmpeg.UploadsDir, "captioned_out.mp4"), nil
	}}
	uc := newTestUC(cfg, repo, newFakeRedisRepo(), tuc, burner)

	job, err := uc.StartJob(context.Background(), testUpload(), "arial")
	if err != nil {
		t.Fatalf("StartJob: %v", err)
	}
	if job.Status != models.JobStatusPending {
		t.Fatalf("expected pending status, got %s", job.Status)
	}
	if job.JobID == uuid.Nil {
		t.Fatal("expected a job id")
	}

	waitForTerminal(t, repo, job.JobID)
}

func waitForTerminal(t *testing.T, repo *fakeJobRepo, jobID uuid.UUID) *models.CaptionJob {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		job, err := repo.GetJobByID(context.Background(), jobID)
		if err == nil && job.Status.Terminal() {
			return job
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("job never reached a terminal state")
	return nil
}

func TestProcessJobSuccess(t *testing.T) {
	cfg := testConfig(t)
	repo := newFakeJobRepo()
	redis := newFakeRedisRepo()
	tuc := &fakeTranscriptionUC{result: &models.Transcription{SrtContent: "1\n00:00:00,000 --> 00:00:01,000\nhi\n"}}

	var burnedVideo, burnedSubtitle string
	burner := &fakeBurner{burn: func(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error) {
		burnedVideo = videoPath
		burnedSubtitle = subtitlePath
		out := filepath.Join(cfg.FFmpeg.UploadsDir, "captioned_final.mp4")
		if err := os.WriteFile(out, []byte("x"), 0o644); err != nil {
			return "", err
		}
		return out, nil
	}}
	uc := newTestUC(cfg, repo, redis, tuc, burner)

	job := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusPending, OriginalFileName: "talk.mp4"}
	if _, err := repo.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	uc.processJob(job.JobID, testUpload(), "arial")

	final, _ := repo.GetJobByID(context.Background(), job.JobID)
	if final.Status != models.JobStatusCompleted {
		t.Fatalf("expected completed, got %s (%s)", final.Status, final.ErrorMessage)
	}
	if final.CaptionedVideoPath != "captioned_final.mp4" {
		t.Fatalf("expected base name of captioned output, got %q", final.CaptionedVideoPath)
	}
	if final.ErrorMessage != "" {
		t.Fatalf("completed job must not carry an error message, got %q", final.ErrorMessage)
	}
	if final.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}

	want := []models.JobStatus{models.JobStatusPending, models.JobStatusProcessing, models.JobStatusCompleted}
	if len(repo.statuses) != len(want) {
		t.Fatalf("expected transitions %v, got %v", want, repo.statuses)
	}
	for i, s := range want {
		if repo.statuses[i] != s {
			t.Fatalf("expected transitions %v, got %v", want, repo.statuses)
		}
	}

	if !strings.HasSuffix(burnedSubtitle, ".srt") {
		t.Fatalf("burner must receive the subtitle file, got %q", burnedSubtitle)
	}
	if !strings.HasSuffix(burnedVideo, "_talk.mp4") {
		t.Fatalf("burner must receive the staged video copy, got %q", burnedVideo)
	}

	// Only the burner's output survives; the subtitle and staged copy are gone.
	names := dirEntries(t, cfg.FFmpeg.UploadsDir)
	if len(names) != 1 || names[0] != "captioned_final.mp4" {
		t.Fatalf("expected only the captioned output to remain, got %v", names)
	}

	if redis.cached[job.JobID] == nil {
		t.Fatal("terminal job should be cached")
	}
}

func TestProcessJobTranscriptionFailureMarksFailed(t *testing.T) {
	cfg := testConfig(t)
	repo := newFakeJobRepo()
	uc := newTestUC(cfg, repo, newFakeRedisRepo(), &fakeTranscriptionUC{err: errors.New("provider unreachable")}, &fakeBurner{})

	job := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusPending, OriginalFileName: "talk.mp4"}
	if _, err := repo.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	uc.processJob(job.JobID, testUpload(), "arial")

	final, _ := repo.GetJobByID(context.Background(), job.JobID)
	if final.Status != models.JobStatusFailed {
		t.Fatalf("expected failed, got %s", final.Status)
	}
	if final.ErrorMessage == "" {
		t.Fatal("failed job must carry an error message")
	}
	if final.CaptionedVideoPath != "" {
		t.Fatalf("failed job must not carry a video path, got %q", final.CaptionedVideoPath)
	}
	if final.CompletedAt == nil {
		t.Fatal("expected completed_at to be set")
	}
}

func TestProcessJobBurnFailureCleansIntermediateFiles(t *testing.T) {
	cfg := testConfig(t)
	repo := newFakeJobRepo()
	tuc := &fakeTranscriptionUC{result: &models.Transcription{SrtContent: "1\n00:00:00,000 --> 00:00:01,000\nhi\n"}}
	burner := &fakeBurner{burn: func(ctx context.Context, videoPath, subtitlePath, fontStyle string) (string, error) {
		return "", errors.New("ffmpeg exited with code 1")
	}}
	uc := newTestUC(cfg, repo, newFakeRedisRepo(), tuc, burner)

	job := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusPending, OriginalFileName: "talk.mp4"}
	if _, err := repo.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	uc.processJob(job.JobID, testUpload(), "arial")

	final, _ := repo.GetJobByID(context.Background(), job.JobID)
	if final.Status != models.JobStatusFailed {
		t.Fatalf("expected failed, got %s", final.Status)
	}
	if !strings.Contains(final.ErrorMessage, "ffmpeg") {
		t.Fatalf("expected burn error in message, got %q", final.ErrorMessage)
	}

	if names := dirEntries(t, cfg.FFmpeg.UploadsDir); len(names) != 0 {
		t.Fatalf("intermediate files must be cleaned up on failure, got %v", names)
	}
}

func TestGetJobStatusNotFound(t *testing.T) {
	uc := newTestUC(testConfig(t), newFakeJobRepo(), newFakeRedisRepo(), &fakeTranscriptionUC{}, &fakeBurner{})

	_, err := uc.GetJobStatus(context.Background(), uuid.New())
	if !errors.Is(err, captions.ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestGetJobStatusCacheHitSkipsRepo(t *testing.T) {
	repo := newFakeJobRepo()
	repo.getErr = errors.New("postgres must not be queried on a cache hit")
	redis := newFakeRedisRepo()
	cached := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusCompleted, CaptionedVideoPath: "captioned_x.mp4"}
	redis.hit = cached
	uc := newTestUC(testConfig(t), repo, redis, &fakeTranscriptionUC{}, &fakeBurner{})

	job, err := uc.GetJobStatus(context.Background(), cached.JobID)
	if err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if job.CaptionedVideoPath != "captioned_x.mp4" {
		t.Fatalf("expected cached record, got %+v", job)
	}
}

func TestGetJobStatusCachesTerminalJob(t *testing.T) {
	repo := newFakeJobRepo()
	redis := newFakeRedisRepo()
	uc := newTestUC(testConfig(t), repo, redis, &fakeTranscriptionUC{}, &fakeBurner{})

	now := time.Now()
	job := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusCompleted, CaptionedVideoPath: "captioned_x.mp4", CompletedAt: &now}
	if _, err := repo.CreateJob(context.Background(), job); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}

	if _, err := uc.GetJobStatus(context.Background(), job.JobID); err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if redis.cached[job.JobID] == nil {
		t.Fatal("terminal job should be cached after a read")
	}

	pending := &models.CaptionJob{JobID: uuid.New(), Status: models.JobStatusPending}
	if _, err := repo.CreateJob(context.Background(), pending); err != nil {
		t.Fatalf("CreateJob: %v", err)
	}
	if _, err := uc.GetJobStatus(context.Background(), pending.JobID); err != nil {
		t.Fatalf("GetJobStatus: %v", err)
	}
	if redis.cached[pending.JobID] != nil {
		t.Fatal("non-terminal jobs must not be cached")
	}
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Terminal reports whether no further transitions are valid.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

type CaptionJob struct {
	JobID              uuid.UUID  `json:"job_id" db:"job_id" validate:"omitempty"`
	Status             JobStatus  `json:"status" db:"status" validate:"required"`
	OriginalFileName   string     `json:"original_file_name" db:"original_file_name" validate:"required,lte=255"`
	CaptionedVideoPath string     `json:"captioned_video_path,omitempty" db:"captioned_video_path"`
	ErrorMessage       string     `json:"error_message,omitempty" db:"error_message"`
	CreatedAt          time.Time  `json:"created_at" db:"created_at" validate:"omitempty"`
	CompletedAt        *time.Time `json:"completed_at,omitempty" db:"completed_at" validate:"omitempty"`
}

type CaptionRequest struct {
	FontStyle string `form:"fontStyle" json:"font_style" validate:"lte=50"`
}

// JobStatusView is the polling response. Preview and download links appear
// only once the job is completed.
type JobStatusView struct {
	JobID        uuid.UUID  `json:"job_id"`
	Status       JobStatus  `json:"status"`
	ErrorMessage string     `json:"error_message,omitempty"`
	PreviewURL   string     `json:"preview_url,omitempty"`
	DownloadURL  string     `json:"download_url,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
}

package models

import "time"

type Transcription struct {
	ID               int64     `json:"id" db:"id" validate:"omitempty"`
	OriginalFileName string    `json:"original_file_name" db:"original_file_name" validate:"required,lte=255"`
	PlainText        string    `json:"plain_text" db:"plain_text" validate:"required"`
	SrtContent       string    `json:"srt_content" db:"srt_content" validate:"required"`
	CreatedAt        time.Time `json:"created_at" db:"created_at" validate:"omitempty"`
}

type TranscriptionList struct {
	Transcriptions []*Transcription `json:"transcriptions"`
	TotalCount     int              `json:"total_count"`
	Page           int              `json:"page"`
	PageSize       int              `json:"page_size"`
	HasMore        bool             `json:"has_more"`
}

// TranscriptionResult is the transcription provider's wire response.
type TranscriptionResult struct {
	PlainText  string `json:"plain_text"`
	SrtContent string `json:"srt_content"`
}

package repository

import (
	"context"
	"fmt"

	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/internal/transcriptions"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/jmoiron/sqlx"
)

type transcriptionRepo struct {
	db *sqlx.DB
}

func NewTranscriptionRepo(db *sqlx.DB) transcriptions.Repository {
	return &transcriptionRepo{
		db: db,
	}
}

func (t *transcriptionRepo) CreateTranscription(ctx context.Context, transcription *models.Transcription) (*models.Transcription, error) {
	created := &models.Transcription{}
	if err := t.db.QueryRowxContext(
		ctx,
		createTranscriptionQuery,
		transcription.OriginalFileName,
		transcription.PlainText,
		transcription.SrtContent,
	).StructScan(created); err != nil {
		return nil, fmt.Errorf("failed to create transcription: %w", err)
	}
	return created, nil
}

func (t *transcriptionRepo) GetTranscriptions(ctx context.Context, pq *utils.Pagination) (*models.TranscriptionList, error) {
	var totalCount int
	if err := t.db.GetContext(
		ctx,
		&totalCount,
		getTotalTranscriptionsQuery,
	); err != nil {
		return nil, fmt.Errorf("failed to get total transcriptions count: %w", err)
	}
	if totalCount == 0 {
		return &models.TranscriptionList{
			Transcriptions: make([]*models.Transcription, 0),
			TotalCount:     0,
			Page:           pq.GetPage(),
			PageSize:       pq.GetSize(),
			HasMore:        false,
		}, nil
	}
	rows, err := t.db.QueryxContext(
		ctx,
		getTranscriptionsQuery,
		pq.GetOffset(),
		pq.GetLimit(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get transcriptions: %w", err)
	}
	defer rows.Close()
	var results = make([]*models.Transcription, 0, pq.GetSize())
	for rows.Next() {
		var transcription models.Transcription
		if err = rows.StructScan(&transcription); err != nil {
			return nil, fmt.Errorf("failed to scan transcription: %w", err)
		}
		results = append(results, &transcription)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan transcriptions: %w", err)
	}
	return &models.TranscriptionList{
		Transcriptions: results,
		TotalCount:     totalCount,
		Page:           pq.GetPage(),
		PageSize:       pq.GetSize(),
		HasMore:        utils.GetHasMore(pq.GetPage(), totalCount, pq.GetSize()),
	}, nil
}

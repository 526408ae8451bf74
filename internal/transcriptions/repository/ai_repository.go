package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/voizable/voizable-backend/internal/config"
	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/internal/transcriptions"

	"github.com/pkg/errors"
)

// aiRepo submits audio files to the transcription service over HTTP
// multipart. A run may take seconds to minutes depending on audio length;
// the client timeout comes from config.
type aiRepo struct {
	client *http.Client
	url    string
}

func NewAIRepository(cfg *config.Config) transcriptions.Provider {
	return &aiRepo{
		client: &http.Client{Timeout: cfg.Transcriber.Timeout},
		url:    cfg.Transcriber.URL,
	}
}

func (a *aiRepo) Transcribe(ctx context.Context, audioPath string) (*models.TranscriptionResult, error) {
	file, err := os.Open(audioPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open audio file")
	}
	defer file.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to build multipart request")
	}
	if _, err = io.Copy(part, file); err != nil {
		return nil, errors.Wrap(err, "failed to read audio file")
	}
	if err = writer.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize multipart request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, body)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build provider request")
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "provider call failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, errors.Errorf("provider returned status %d: %s", resp.StatusCode, string(detail))
	}

	result := &models.TranscriptionResult{}
	if err = json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, errors.Wrap(err, "failed to decode provider response")
	}
	return result, nil
}

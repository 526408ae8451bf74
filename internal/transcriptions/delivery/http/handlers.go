package http

import (
	"net/http"

	"github.com/voizable/voizable-backend/internal/transcriptions"
	"github.com/voizable/voizable-backend/pkg/logger"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/labstack/echo/v4"
)

type transcriptionHandler struct {
	transcriptionUC transcriptions.UseCase
	logger          logger.Logger
}

func NewTranscriptionHandler(transcriptionUC transcriptions.UseCase, logger logger.Logger) transcriptions.Handler {
	return &transcriptionHandler{
		transcriptionUC: transcriptionUC,
		logger:          logger,
	}
}

func (h *transcriptionHandler) Transcribe() echo.HandlerFunc {
	return func(c echo.Context) error {
		upload, err := utils.ReadUploadFromCtx(c, "file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}
		if upload.IsEmpty() {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is empty. Please upload a valid file."})
		}

		transcription, err := h.transcriptionUC.TranscribeAndSave(c.Request().Context(), upload)
		if err != nil {
			h.logger.Errorf("Transcribe - TranscribeAndSave error: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, transcription)
	}
}

func (h *transcriptionHandler) ListTranscriptions() echo.HandlerFunc {
	return func(c echo.Context) error {
		pagination, err := utils.GetPaginationFromCtx(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		list, err := h.transcriptionUC.ListTranscriptions(c.Request().Context(), pagination)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	}
}

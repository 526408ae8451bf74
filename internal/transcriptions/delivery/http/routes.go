package http

import (
	"github.com/voizable/voizable-backend/internal/transcriptions"

	"github.com/labstack/echo/v4"
)

func MapTranscriptionRoutes(audioGroup *echo.Group, h transcriptions.Handler) {
	audioGroup.POST("/transcribe", h.Transcribe())
	audioGroup.GET("/transcriptions", h.ListTranscriptions())
}

package http

import (
	"github.com/voizable/voizable-backend/internal/captions"

	"github.com/labstack/echo/v4"
)

func MapCaptionRoutes(captionGroup *echo.Group, h captions.Handler) {
	captionGroup.POST("/generate", h.Generate())
	captionGroup.GET("/status/:job_id", h.GetStatus())
	captionGroup.GET("/preview/:filename", h.Preview())
	captionGroup.GET("/download/:job_id", h.Download())
}

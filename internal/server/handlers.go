package server

import (
	"net/http"
	"os"

	captionsHttp "github.com/voizable/voizable-backend/internal/captions/delivery/http"
	captionsRepository "github.com/voizable/voizable-backend/internal/captions/repository"
	captionsUsecase "github.com/voizable/voizable-backend/internal/captions/usecase"
	"github.com/voizable/voizable-backend/internal/media"
	"github.com/voizable/voizable-backend/internal/middleware"
	transcriptionsHttp "github.com/voizable/voizable-backend/internal/transcriptions/delivery/http"
	transcriptionsRepository "github.com/voizable/voizable-backend/internal/transcriptions/repository"
	transcriptionsUsecase "github.com/voizable/voizable-backend/internal/transcriptions/usecase"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/labstack/echo/v4"
)

func (s *Server) MapHandlers(e *echo.Echo) error {
	jobRepo := captionsRepository.NewCaptionJobRepo(s.db)
	jobRedisRepo := captionsRepository.NewCaptionRedisRepo(s.redisClient)
	tRepo := transcriptionsRepository.NewTranscriptionRepo(s.db)
	provider := transcriptionsRepository.NewAIRepository(s.cfg)

	runner := media.NewRunner(s.logger)
	extractor := media.NewExtractor(runner, s.cfg.FFmpeg.Path, s.cfg.FFmpeg.UploadsDir, s.cfg.FFmpeg.ExtractTimeout, s.logger)
	burner := media.NewBurner(runner, os.DirFS(s.cfg.FFmpeg.FontsDir), s.cfg.FFmpeg.Path, s.cfg.FFmpeg.UploadsDir, s.cfg.FFmpeg.BurnTimeout, s.logger)

	transcriptionUC := transcriptionsUsecase.NewTranscriptionUseCase(s.cfg, tRepo, provider, extractor, s.logger)
	captionUC := captionsUsecase.NewCaptionUseCase(s.cfg, jobRepo, jobRedisRepo, transcriptionUC, burner, s.logger)

	captionHandlers := captionsHttp.NewCaptionHandler(s.cfg, captionUC, s.logger)
	transcriptionHandlers := transcriptionsHttp.NewTranscriptionHandler(transcriptionUC, s.logger)

	mw := middleware.NewMiddlewareManager(s.cfg, []string{"*"}, s.logger)
	e.Use(mw.RequestLoggerMiddleware)

	v1 := e.Group("/api/v1")
	health := v1.Group("/health")
	captionGroup := v1.Group("/captions")
	audioGroup := v1.Group("/audio")

	captionsHttp.MapCaptionRoutes(captionGroup, captionHandlers)
	transcriptionsHttp.MapTranscriptionRoutes(audioGroup, transcriptionHandlers)
	health.GET("", func(c echo.Context) error {
		s.logger.Infof("Health check RequestID: %s", utils.GetRequestID(c))
		return c.JSON(http.StatusOK, map[string]string{"status": "OK"})
	})
	return nil
}

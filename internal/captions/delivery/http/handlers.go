package http

import (
	"errors"
	"net/http"
	"os"
	"path/filepath"

	"github.com/voizable/voizable-backend/internal/captions"
	"github.com/voizable/voizable-backend/internal/config"
	"github.com/voizable/voizable-backend/internal/models"
	"github.com/voizable/voizable-backend/pkg/logger"
	"github.com/voizable/voizable-backend/pkg/utils"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type captionHandler struct {
	cfg       *config.Config
	captionUC captions.UseCase
	logger    logger.Logger
}

func NewCaptionHandler(cfg *config.Config, captionUC captions.UseCase, logger logger.Logger) captions.Handler {
	return &captionHandler{
		cfg:       cfg,
		captionUC: captionUC,
		logger:    logger,
	}
}

// Generate accepts a video upload, registers a caption job and returns its
// id without waiting for processing.
func (h *captionHandler) Generate() echo.HandlerFunc {
	return func(c echo.Context) error {
		req := &models.CaptionRequest{FontStyle: c.FormValue("fontStyle")}
		if err := utils.ValidateStruct(c.Request().Context(), req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid font style"})
		}

		upload, err := utils.ReadUploadFromCtx(c, "file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
		}

		job, err := h.captionUC.StartJob(c.Request().Context(), upload, req.FontStyle)
		if err != nil {
			if errors.Is(err, captions.ErrEmptyUpload) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "File is empty. Please upload a valid file."})
			}
			h.logger.Errorf("Generate - StartJob error: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start caption job"})
		}

		return c.JSON(http.StatusAccepted, map[string]string{"job_id": job.JobID.String()})
	}
}

func (h *captionHandler) GetStatus() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		}

		job, err := h.captionUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, captions.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			h.logger.Errorf("GetStatus - GetJobStatus error: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch job status"})
		}

		view := &models.JobStatusView{
			JobID:        job.JobID,
			Status:       job.Status,
			ErrorMessage: job.ErrorMessage,
			CompletedAt:  job.CompletedAt,
		}
		if job.Status == models.JobStatusCompleted {
			view.PreviewURL = "/api/v1/captions/preview/" + job.CaptionedVideoPath
			view.DownloadURL = "/api/v1/captions/download/" + job.JobID.String()
		}
		return c.JSON(http.StatusOK, view)
	}
}

// Preview streams a captioned video inline so it plays in the browser.
func (h *captionHandler) Preview() echo.HandlerFunc {
	return func(c echo.Context) error {
		filename := c.Param("filename")
		// Reject anything that is not a plain file name.
		if filename == "" || filepath.Base(filename) != filename {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid file name"})
		}

		path := filepath.Join(h.cfg.FFmpeg.UploadsDir, filename)
		if _, err := os.Stat(path); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "File not found"})
		}
		return c.File(path)
	}
}

// Download serves the captioned video as an attachment named after the
// original upload.
func (h *captionHandler) Download() echo.HandlerFunc {
	return func(c echo.Context) error {
		jobID, err := uuid.Parse(c.Param("job_id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid job id"})
		}

		job, err := h.captionUC.GetJobStatus(c.Request().Context(), jobID)
		if err != nil {
			if errors.Is(err, captions.ErrJobNotFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": "Job not found"})
			}
			h.logger.Errorf("Download - GetJobStatus error: %v", err)
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch job"})
		}
		if job.Status != models.JobStatusCompleted || job.CaptionedVideoPath == "" {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Captioned video is not ready"})
		}

		path := filepath.Join(h.cfg.FFmpeg.UploadsDir, job.CaptionedVideoPath)
		if _, err := os.Stat(path); err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Captioned video no longer available"})
		}
		return c.Attachment(path, "captioned_"+job.OriginalFileName)
	}
}

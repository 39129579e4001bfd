package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ids"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

const mimeLatex = "application/x-latex"

// applicationParams reads and validates the :id path parameter and the theme query parameter
func applicationParams(c echo.Context) (int64, string, error) {
	params := models.ApplicationParams{
		ID:    c.Param("id"),
		Theme: c.QueryParam("theme"),
	}
	id, err := ids.ParseValue(params.ID)
	if err != nil {
		return 0, "", err
	}
	if err := requestValidator.Struct(&params); err != nil {
		return 0, "", err
	}
	return id, params.Theme, nil
}

// BuildResumeHandler handles POST /api/v1/applications/:id/resume/build
func BuildResumeHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, _, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		start := time.Now()
		logger.Info("Building tailored resume", map[string]interface{}{
			"request_id": requestID(c),
			"job_id":     jobID,
		})

		stored, err := svc.Build(c.Request().Context(), jobID, userID(c))
		if err != nil {
			return respondError(c, logger, err)
		}

		logger.Info("Tailored resume ready", map[string]interface{}{
			"request_id":  requestID(c),
			"job_id":      jobID,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return c.JSON(http.StatusOK, models.NewResumeResponse(stored))
	}
}

// GetResumeHandler handles GET /api/v1/applications/:id/resume
func GetResumeHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, _, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		stored, err := svc.Get(c.Request().Context(), jobID, userID(c))
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, models.NewResumeResponse(stored))
	}
}

// UpdateResumeHandler handles PATCH /api/v1/applications/:id/resume. Each
// top-level key of the body replaces the stored value.
func UpdateResumeHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, _, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		var patch map[string]interface{}
		if err := json.NewDecoder(c.Request().Body).Decode(&patch); err != nil {
			return respondError(c, logger, &resume.InputError{Message: "Invalid request body", Detail: err.Error()})
		}

		stored, err := svc.Update(c.Request().Context(), jobID, userID(c), patch)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, models.NewResumeResponse(stored))
	}
}

// ATSScanHandler handles POST /api/v1/applications/:id/resume/ats-scan
func ATSScanHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, _, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		result, err := svc.Scan(c.Request().Context(), jobID, userID(c))
		if err != nil {
			return respondError(c, logger, err)
		}

		logger.Info("ATS scan completed", map[string]interface{}{
			"request_id": requestID(c),
			"job_id":     jobID,
			"score":      result.Score,
		})
		return c.JSON(http.StatusOK, result)
	}
}

// LatexHandler handles GET /api/v1/applications/:id/resume/latex
func LatexHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, theme, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		filename, src, err := svc.RenderSource(c.Request().Context(), jobID, userID(c), theme)
		if err != nil {
			return respondError(c, logger, err)
		}
		return attachment(c, filename, mimeLatex, []byte(src))
	}
}

// PDFHandler handles GET /api/v1/applications/:id/resume/pdf
func PDFHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, theme, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		filename, pdf, err := svc.RenderPDF(c.Request().Context(), jobID, userID(c), theme)
		if err != nil {
			return respondError(c, logger, err)
		}
		return attachment(c, filename, "application/pdf", pdf)
	}
}

// ExportResumeHandler handles POST /api/v1/applications/:id/resume/export.
// The theme comes from the body, falling back to the query string.
func ExportResumeHandler(exp *exporter.Exporter) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, theme, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		var req models.ExportResumeRequest
		if err := json.NewDecoder(c.Request().Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return respondError(c, logger, &resume.InputError{Message: "Invalid request body", Detail: err.Error()})
		}
		if err := requestValidator.Struct(&req); err != nil {
			return respondError(c, logger, err)
		}
		if req.Theme != "" {
			theme = req.Theme
		}

		resp, err := exp.Export(c.Request().Context(), jobID, userID(c), theme)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, resp)
	}
}

// GenerationsHandler handles GET /api/v1/applications/:id/resume/generations
func GenerationsHandler(svc *resume.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "resume_handler")

	return func(c echo.Context) error {
		jobID, _, err := applicationParams(c)
		if err != nil {
			return respondError(c, logger, err)
		}

		records, err := svc.Generations(c.Request().Context(), jobID, userID(c))
		if err != nil {
			return respondError(c, logger, err)
		}
		if records == nil {
			records = []models.GenerationRecord{}
		}
		return c.JSON(http.StatusOK, models.GenerationHistoryResponse{
			ApplicationID: jobID,
			Generations:   records,
		})
	}
}

func attachment(c echo.Context, filename, contentType string, data []byte) error {
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, data)
}

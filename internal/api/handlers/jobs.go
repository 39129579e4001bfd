package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ids"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// CreateJobHandler handles POST /api/v1/jobs
func CreateJobHandler(svc *jobs.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "jobs_handler")

	return func(c echo.Context) error {
		var req models.CreateJobRequest
		if err := c.Bind(&req); err != nil {
			return respondError(c, logger, &resume.InputError{Message: "Invalid request body", Detail: bindDetail(err)})
		}
		if err := requestValidator.Struct(&req); err != nil {
			return respondError(c, logger, err)
		}

		job, err := svc.Create(c.Request().Context(), userID(c), req)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, job)
	}
}

// ImportJobHandler handles POST /api/v1/jobs/import
func ImportJobHandler(svc *jobs.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "jobs_handler")

	return func(c echo.Context) error {
		var req models.ImportJobRequest
		if err := c.Bind(&req); err != nil {
			return respondError(c, logger, &resume.InputError{Message: "Invalid request body", Detail: bindDetail(err)})
		}
		if err := requestValidator.Struct(&req); err != nil {
			return respondError(c, logger, err)
		}

		logger.Info("Importing job posting", map[string]interface{}{
			"request_id": requestID(c),
			"url":        req.URL,
		})

		job, err := svc.Import(c.Request().Context(), userID(c), req)
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusCreated, job)
	}
}

// ListJobsHandler handles GET /api/v1/jobs
func ListJobsHandler(svc *jobs.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "jobs_handler")

	return func(c echo.Context) error {
		list, err := svc.List(c.Request().Context(), userID(c))
		if err != nil {
			return respondError(c, logger, err)
		}
		if list == nil {
			list = []models.Job{}
		}
		return c.JSON(http.StatusOK, models.JobListResponse{Jobs: list, Count: len(list)})
	}
}

// GetJobHandler handles GET /api/v1/jobs/:id
func GetJobHandler(svc *jobs.Service) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "jobs_handler")

	return func(c echo.Context) error {
		id, err := ids.ParseValue(c.Param("id"))
		if err != nil {
			return respondError(c, logger, err)
		}

		job, err := svc.Get(c.Request().Context(), id)
		if err == nil && job.UserID != userID(c) {
			err = &resume.NotFoundError{Resource: "job", ID: strconv.FormatInt(id, 10)}
		}
		if err != nil {
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, job)
	}
}

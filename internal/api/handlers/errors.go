package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ids"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/utils"
)

// classify maps a service error to its HTTP status and error code.
// Unknown errors are internal errors.
func classify(err error) (string, *utils.CustomError) {
	var (
		inputErr    *resume.InputError
		notFoundErr *resume.NotFoundError
		upstreamErr *llm.UpstreamError
		schemaErr   *contract.SchemaError
		compileErr  *latex.CompileError
		validErrs   validator.ValidationErrors
		httpErr     *echo.HTTPError
	)

	switch {
	case errors.As(err, &inputErr):
		ce := utils.NewBadRequestError(inputErr.Message)
		ce.Detail = inputErr.Detail
		return "invalid_input", ce
	case errors.As(err, &validErrs):
		return "validation_failed", utils.NewValidationError(err.Error())
	case errors.Is(err, ids.ErrInvalidIDFormat):
		return "invalid_id", utils.NewBadRequestError(err.Error())
	case errors.Is(err, jobs.ErrNotJobPosting):
		return "invalid_url", utils.NewBadRequestError(err.Error())

	case errors.As(err, &notFoundErr):
		return "not_found", utils.NewNotFoundError(notFoundErr.Error())
	case errors.Is(err, store.ErrNotFound):
		return "not_found", utils.NewNotFoundError("Resource not found")

	case errors.Is(err, resume.ErrBuildInProgress):
		return "build_in_progress", utils.NewConflictError(err.Error())

	case errors.As(err, &upstreamErr):
		code := "upstream_error"
		if errors.Is(err, llm.ErrUpstreamTimeout) {
			code = "upstream_timeout"
		}
		return code, utils.NewGenerationError(upstreamErr.Error(), upstreamErr.Body)
	case errors.As(err, &schemaErr):
		return string(schemaErr.Kind), utils.NewSchemaError(schemaErr.Error(), schemaErr.Raw)
	case errors.As(err, &compileErr):
		return "compile_error", utils.NewCompileError(compileErr.Log)

	case errors.Is(err, jobs.ErrImportUnavailable):
		return "import_unavailable", &utils.CustomError{Code: http.StatusServiceUnavailable, Message: err.Error()}
	case errors.Is(err, jobs.ErrFetch):
		return "import_failed", utils.NewImportError(err.Error())
	case errors.Is(err, exporter.ErrStorageConfig):
		ce := utils.NewInternalServerError("Export storage is not configured")
		ce.Detail = err.Error()
		return "storage_configuration", ce
	case errors.Is(err, exporter.ErrUpload):
		ce := utils.NewInternalServerError("Failed to upload export")
		ce.Detail = err.Error()
		return "upload_failed", ce

	case errors.As(err, &httpErr):
		msg, ok := httpErr.Message.(string)
		if !ok {
			msg = http.StatusText(httpErr.Code)
		}
		return "invalid_request", &utils.CustomError{Code: httpErr.Code, Message: msg}
	}

	return "internal_error", utils.NewInternalServerError("Internal server error")
}

// respondError writes the error response for err and logs server-side failures
func respondError(c echo.Context, logger logging.Logger, err error) error {
	code, ce := classify(err)

	fields := map[string]interface{}{
		"request_id": requestID(c),
		"status":     ce.Code,
		"error_code": code,
		"error":      err.Error(),
	}
	if ce.Code >= http.StatusInternalServerError {
		logger.Error("Request failed", fields)
	} else {
		logger.Warn("Request rejected", fields)
	}

	return c.JSON(ce.Code, models.ErrorResponse{
		Error:     code,
		Message:   ce.Message,
		Detail:    ce.Detail,
		Raw:       ce.Raw,
		RequestID: requestID(c),
		Timestamp: time.Now(),
	})
}

func requestID(c echo.Context) string {
	if id, ok := c.Get("request_id").(string); ok && id != "" {
		return id
	}
	id := utils.GenerateRequestID()
	c.Set("request_id", id)
	return id
}

func userID(c echo.Context) string {
	if id, ok := c.Get("user_id").(string); ok && id != "" {
		return id
	}
	return "local"
}

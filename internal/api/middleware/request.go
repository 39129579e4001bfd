package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/utils"
)

// MaxBodyBytes caps request bodies on write routes
const MaxBodyBytes = 1024 * 1024

// DefaultUserID is used when a request carries no X-User-ID header
const DefaultUserID = "local"

// RequestValidation assigns a request id, identifies the caller and limits body size
func RequestValidation() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()

			requestID := req.Header.Get(echo.HeaderXRequestID)
			if requestID == "" {
				requestID = utils.GenerateRequestID()
			}
			c.Set("request_id", requestID)
			c.Response().Header().Set(echo.HeaderXRequestID, requestID)

			userID := strings.TrimSpace(req.Header.Get(HeaderUserID))
			if userID == "" {
				userID = DefaultUserID
			}
			c.Set("user_id", userID)

			switch req.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
				if req.ContentLength > MaxBodyBytes {
					return echo.NewHTTPError(http.StatusRequestEntityTooLarge, "Request body too large")
				}
				req.Body = http.MaxBytesReader(c.Response(), req.Body, MaxBodyBytes)
			}

			return next(c)
		}
	}
}

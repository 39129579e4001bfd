package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/api/validation"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

var requestValidator = validation.New()

// GetProfileHandler handles GET /api/v1/profile
func GetProfileHandler(profiles store.ProfileStore) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "profile_handler")

	return func(c echo.Context) error {
		user := userID(c)
		profile, err := profiles.GetProfile(c.Request().Context(), user)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				err = &resume.NotFoundError{Resource: "profile", ID: user}
			}
			return respondError(c, logger, err)
		}
		return c.JSON(http.StatusOK, profile)
	}
}

// PutProfileHandler handles PUT /api/v1/profile, replacing the caller's profile
func PutProfileHandler(profiles store.ProfileStore) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "profile_handler")

	return func(c echo.Context) error {
		var profile models.Profile
		if err := c.Bind(&profile); err != nil {
			return respondError(c, logger, &resume.InputError{Message: "Invalid request body", Detail: bindDetail(err)})
		}
		if err := requestValidator.Struct(&profile); err != nil {
			return respondError(c, logger, err)
		}

		profile.UserID = userID(c)
		if err := profiles.PutProfile(c.Request().Context(), &profile); err != nil {
			return respondError(c, logger, err)
		}

		logger.Info("Profile saved", map[string]interface{}{
			"request_id": requestID(c),
			"user_id":    profile.UserID,
			"experience": len(profile.Experience),
			"projects":   len(profile.Projects),
		})
		return c.JSON(http.StatusOK, profile)
	}
}

// bindDetail unwraps echo's bind error to the decoder message
func bindDetail(err error) string {
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) && httpErr.Internal != nil {
		return httpErr.Internal.Error()
	}
	return err.Error()
}

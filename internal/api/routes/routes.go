package routes

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/api/handlers"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/api/middleware"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
)

// Dependencies are the services the HTTP surface is wired to
type Dependencies struct {
	Store    store.Store
	Jobs     *jobs.Service
	Resumes  *resume.Service
	Exporter *exporter.Exporter
	Health   handlers.HealthDeps
}

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, cfg *config.Config, deps Dependencies) {
	// Global middleware
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(middleware.CORSConfig())
	e.Use(middleware.RequestValidation())
	// Generation, compile and import routes get the long timeout
	e.Use(middleware.SelectiveTimeoutConfig(cfg.Server.ReadTimeout, 2*time.Minute))

	// Health check routes
	health := e.Group("/health")
	{
		health.GET("", handlers.HealthHandler)
		health.GET("/ready", handlers.ReadinessHandler(deps.Health))
		health.GET("/live", handlers.LivenessHandler)
	}

	e.GET("/status", handlers.StatusHandler(deps.Health))

	// API v1 routes
	v1 := e.Group("/api/v1")
	{
		v1.GET("/profile", handlers.GetProfileHandler(deps.Store))
		v1.PUT("/profile", handlers.PutProfileHandler(deps.Store))

		jobsGroup := v1.Group("/jobs")
		{
			jobsGroup.POST("", handlers.CreateJobHandler(deps.Jobs))
			jobsGroup.GET("", handlers.ListJobsHandler(deps.Jobs))
			jobsGroup.POST("/import", handlers.ImportJobHandler(deps.Jobs))
			jobsGroup.GET("/:id", handlers.GetJobHandler(deps.Jobs))
		}

		resumeGroup := v1.Group("/applications/:id/resume")
		{
			resumeGroup.POST("/build", handlers.BuildResumeHandler(deps.Resumes))
			resumeGroup.GET("", handlers.GetResumeHandler(deps.Resumes))
			resumeGroup.PATCH("", handlers.UpdateResumeHandler(deps.Resumes))
			resumeGroup.POST("/ats-scan", handlers.ATSScanHandler(deps.Resumes))
			resumeGroup.GET("/latex", handlers.LatexHandler(deps.Resumes))
			resumeGroup.GET("/pdf", handlers.PDFHandler(deps.Resumes))
			resumeGroup.POST("/export", handlers.ExportResumeHandler(deps.Exporter))
			resumeGroup.GET("/generations", handlers.GenerationsHandler(deps.Resumes))
		}
	}

	// Root route
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "Job Application Organizer",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}

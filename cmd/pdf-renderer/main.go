package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

const (
	maxRequestBytes = 1 << 20 // 1 MiB
	maxSourceBytes  = 500_000
)

type compileRequest struct {
	Latex string `json:"latex"`
}

type compiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
}

func newServer(c compiler) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.BodyLimit("1M"))

	e.GET("/health", func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "ok")
	})
	e.POST("/compile", compileHandler(c))
	return e
}

func compileHandler(c compiler) echo.HandlerFunc {
	logger := logging.GetGlobalLogger().WithField("component", "pdf_renderer")

	return func(ctx echo.Context) error {
		var req compileRequest
		if err := ctx.Bind(&req); err != nil {
			return ctx.String(http.StatusBadRequest, "invalid json: "+err.Error())
		}
		if strings.TrimSpace(req.Latex) == "" {
			return ctx.String(http.StatusBadRequest, "latex is required")
		}
		if len(req.Latex) > maxSourceBytes {
			return ctx.String(http.StatusRequestEntityTooLarge, "latex input too large")
		}
		if err := validateLatex(req.Latex); err != nil {
			logger.Warn("LaTeX source rejected", map[string]interface{}{"error": err.Error()})
			return ctx.String(http.StatusBadRequest, "latex rejected: "+err.Error())
		}

		start := time.Now()
		pdf, err := c.Compile(ctx.Request().Context(), req.Latex)
		if err != nil {
			var compileErr *latex.CompileError
			if errors.As(err, &compileErr) {
				logger.Warn("LaTeX compile failed", map[string]interface{}{
					"error":       err.Error(),
					"duration_ms": time.Since(start).Milliseconds(),
				})
				return ctx.String(http.StatusBadRequest, "latex compile failed: "+err.Error()+"\n"+compileErr.Log)
			}
			logger.Error("LaTeX compile error", map[string]interface{}{"error": err.Error()})
			return ctx.String(http.StatusInternalServerError, err.Error())
		}

		logger.Info("PDF compiled", map[string]interface{}{
			"size_bytes":  len(pdf),
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return ctx.Blob(http.StatusOK, "application/pdf", pdf)
	}
}

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		cfg = config.Default()
	}
	if err := logging.InitializeLogging(cfg); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logging.CloseLogging()
	logger := logging.GetGlobalLogger()

	// the renderer always compiles locally
	cfg.Latex.RendererURL = ""
	e := newServer(latex.NewCompiler(cfg))

	addr := ":8999"
	if v := os.Getenv("PORT"); strings.TrimSpace(v) != "" {
		addr = ":" + v
	}

	go func() {
		logger.Info("pdf-renderer listening", map[string]interface{}{"address": addr})
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server error", map[string]interface{}{"error": err.Error()})
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
	}
}

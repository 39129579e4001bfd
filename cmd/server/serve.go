package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cobra"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/api/routes"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/grpc/server"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/mux"
)

//nolint:gochecknoglobals // Cobra boilerplate
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP and gRPC server",
	RunE:  runServe,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	defer logging.CloseLogging()

	logger := logging.GetGlobalLogger()
	logger.Info("Starting Job Application Organizer")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer app.Close()

	e := echo.New()
	e.HideBanner = true
	routes.SetupRoutes(e, cfg, routes.Dependencies{
		Store:    app.store,
		Jobs:     app.jobs,
		Resumes:  app.resumes,
		Exporter: app.exporter,
		Health:   app.health,
	})

	var grpcServer *server.Server
	if cfg.Server.GRPCEnabled {
		grpcServer = server.NewServer(cfg, app.ready)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	m := mux.NewMultiplexer(cfg, grpcServer, e)
	if err := m.Start(address); err != nil {
		return err
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	if err := m.Stop(); err != nil {
		logger.Error("Error shutting down server", map[string]interface{}{"error": err.Error()})
	}
	logger.Info("Server shutdown complete")
	return nil
}

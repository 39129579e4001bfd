package main

import (
	"context"
	"fmt"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/api/handlers"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ats"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/resume"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/utils"
)

// application holds the wired services of one process
type application struct {
	cfg      *config.Config
	store    store.Store
	llm      *llm.Manager
	redis    *utils.RedisClient
	jobs     *jobs.Service
	resumes  *resume.Service
	exporter *exporter.Exporter
	health   handlers.HealthDeps
}

// loadConfig reads the configuration and starts logging
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := logging.InitializeLogging(cfg); err != nil {
		return nil, fmt.Errorf("failed to initialize logging: %w", err)
	}
	return cfg, nil
}

// openStore returns Postgres when a database URL is configured, the in-memory store otherwise
func openStore(ctx context.Context, cfg *config.Config, migrate bool) (store.Store, error) {
	logger := logging.GetGlobalLogger()

	if cfg.Database.URL == "" {
		logger.Warn("No database URL configured, using in-memory store")
		return store.NewMemoryStore(), nil
	}

	pg, err := store.NewPostgresStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if migrate {
		if err := store.Migrate(ctx, pg.Pool()); err != nil {
			pg.Close()
			return nil, err
		}
	}
	return pg, nil
}

func newApplication(ctx context.Context, cfg *config.Config) (*application, error) {
	logger := logging.GetGlobalLogger()

	st, err := openStore(ctx, cfg, true)
	if err != nil {
		return nil, err
	}

	llmManager := llm.Shared(cfg.LLM)
	if err := llmManager.Start(); err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to start LLM manager: %w", err)
	}

	app := &application{
		cfg:   cfg,
		store: st,
		llm:   llmManager,
		health: handlers.HealthDeps{
			Store: st,
			LLM:   llmManager,
		},
	}

	var history resume.GenerationLog = resume.NewMemoryGenerationLog(cfg.Resume.HistoryLimit)
	if cfg.Redis.Enabled {
		app.redis = utils.NewRedisClient(cfg)
		if err := app.redis.Ping(ctx); err != nil {
			logger.Warn("Redis is unreachable, generation history and locks will fail until it recovers", map[string]interface{}{
				"error": err.Error(),
			})
		}
		history = app.redis
		app.health.Redis = app.redis
	}

	locker, err := resume.NewBuildLocker(cfg.Resume.BuildLock, app.redis, cfg.Resume.LockTTL)
	if err != nil {
		app.Close()
		return nil, err
	}

	fetcher, err := jobs.NewFirecrawlFetcher(cfg)
	if err != nil {
		logger.Warn("Job import disabled", map[string]interface{}{"reason": err.Error()})
	}
	if fetcher != nil {
		app.jobs = jobs.NewService(st, fetcher)
	} else {
		app.jobs = jobs.NewService(st, nil)
	}

	app.resumes = resume.NewService(resume.Options{
		Store:     st,
		Generator: llmManager,
		Scorer:    ats.NewScorer(cfg, llmManager, history),
		Compiler:  latex.NewCompiler(cfg),
		History:   history,
		Locker:    locker,
	})

	spaces, err := utils.NewSpacesClient(cfg)
	if err != nil {
		logger.Warn("Resume export disabled", map[string]interface{}{"reason": err.Error()})
		app.exporter = exporter.New(app.resumes, nil)
	} else {
		app.exporter = exporter.New(app.resumes, spaces)
		app.health.Storage = spaces
	}

	logger.Info("Application wired", map[string]interface{}{
		"provider":   llmManager.GetProviderName(),
		"model":      llmManager.GetModelName(),
		"build_lock": cfg.Resume.BuildLock,
		"redis":      cfg.Redis.Enabled,
		"postgres":   cfg.Database.URL != "",
	})
	return app, nil
}

// ready is the gRPC readiness probe
func (a *application) ready(ctx context.Context) bool {
	return a.store.Ping(ctx) == nil && a.llm.IsHealthy()
}

func (a *application) Close() {
	logger := logging.GetGlobalLogger()

	if err := a.llm.Stop(); err != nil {
		logger.Error("Error stopping LLM manager", map[string]interface{}{"error": err.Error()})
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Error("Error closing Redis client", map[string]interface{}{"error": err.Error()})
		}
	}
	a.store.Close()
}

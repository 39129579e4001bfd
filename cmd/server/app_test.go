package main

import (
	"context"
	"errors"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/exporter"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/jobs"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

func TestNewApplicationDefaults(t *testing.T) {
	ctx := context.Background()
	cfg := config.Default()

	app, err := newApplication(ctx, cfg)
	if err != nil {
		t.Fatalf("newApplication failed: %v", err)
	}
	defer app.Close()

	if _, ok := app.store.(*store.MemoryStore); !ok {
		t.Errorf("Expected in-memory store without a database URL, got %T", app.store)
	}
	if app.health.Redis != nil {
		t.Error("Expected redis health check to be disabled")
	}

	if _, err := app.jobs.Import(ctx, "local", models.ImportJobRequest{URL: "https://jobs.example.com/1"}); !errors.Is(err, jobs.ErrImportUnavailable) {
		t.Errorf("Expected ErrImportUnavailable without a Firecrawl key, got %v", err)
	}
	if _, err := app.exporter.Export(ctx, 1, "local", ""); !errors.Is(err, exporter.ErrStorageConfig) {
		t.Errorf("Expected ErrStorageConfig without bucket credentials, got %v", err)
	}
}

func TestNewApplicationRejectsRedisLockWithoutRedis(t *testing.T) {
	cfg := config.Default()
	cfg.Resume.BuildLock = "redis"

	if _, err := newApplication(context.Background(), cfg); err == nil {
		t.Error("Expected error for redis build lock with redis disabled")
	}
}

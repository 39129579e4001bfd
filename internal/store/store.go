package store

import (
	"context"
	"errors"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

type JobStore interface {
	CreateJob(ctx context.Context, job *models.Job) error
	GetJob(ctx context.Context, id int64) (*models.Job, error)
	ListJobs(ctx context.Context, userID string) ([]models.Job, error)
}

type ProfileStore interface {
	GetProfile(ctx context.Context, userID string) (*models.Profile, error)
	PutProfile(ctx context.Context, profile *models.Profile) error
}

// ResumeStore keeps at most one resume per job. Upsert replaces the whole document.
type ResumeStore interface {
	GetResume(ctx context.Context, jobID int64) (*models.StoredResume, error)
	UpsertResume(ctx context.Context, jobID int64, data models.GeneratedResume) (*models.StoredResume, error)
}

// Store is the full persistence surface the service runs on
type Store interface {
	JobStore
	ProfileStore
	ResumeStore

	Ping(ctx context.Context) error
	Close()
}

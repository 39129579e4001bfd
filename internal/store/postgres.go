package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// PostgresStore persists jobs, profiles and resumes in PostgreSQL. Profiles
// and resume documents are stored as JSONB.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects a pool using the database section of cfg
func NewPostgresStore(ctx context.Context, cfg *config.Config) (*PostgresStore, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}

	pool, err := pgxpool.ConnectConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// Pool exposes the underlying pool for migrations
func (s *PostgresStore) Pool() *pgxpool.Pool { return s.pool }

const jobColumns = `id, user_id, company, title, description, location, link, posted_at, tech_stack, salary_min, salary_max, created_at, updated_at`

func scanJob(row pgx.Row) (*models.Job, error) {
	var job models.Job
	err := row.Scan(&job.ID, &job.UserID, &job.Company, &job.Title, &job.Description, &job.Location, &job.Link,
		&job.PostedAt, &job.TechStack, &job.SalaryMin, &job.SalaryMax, &job.CreatedAt, &job.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

func (s *PostgresStore) CreateJob(ctx context.Context, job *models.Job) error {
	techStack := job.TechStack
	if techStack == nil {
		techStack = []string{}
	}

	row := s.pool.QueryRow(ctx, `INSERT INTO jobs (user_id, company, title, description, location, link, posted_at, tech_stack, salary_min, salary_max)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id, created_at, updated_at`,
		job.UserID, job.Company, job.Title, job.Description, job.Location, job.Link, job.PostedAt, techStack, job.SalaryMin, job.SalaryMax)

	if err := row.Scan(&job.ID, &job.CreatedAt, &job.UpdatedAt); err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	return scanJob(s.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
}

func (s *PostgresStore) ListJobs(ctx context.Context, userID string) ([]models.Job, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+jobColumns+` FROM jobs WHERE user_id = $1 ORDER BY id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	defer rows.Close()

	jobs := []models.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, rows.Err()
}

func (s *PostgresStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	var data []byte
	var updatedAt time.Time

	err := s.pool.QueryRow(ctx, `SELECT data, updated_at FROM profiles WHERE user_id = $1`, userID).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("decode profile: %w", err)
	}
	profile.UserID = userID
	profile.UpdatedAt = updatedAt
	return &profile, nil
}

func (s *PostgresStore) PutProfile(ctx context.Context, profile *models.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}

	return s.pool.QueryRow(ctx, `INSERT INTO profiles (user_id, data) VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		RETURNING updated_at`, profile.UserID, data).Scan(&profile.UpdatedAt)
}

func (s *PostgresStore) GetResume(ctx context.Context, jobID int64) (*models.StoredResume, error) {
	var data []byte
	resume := models.StoredResume{JobID: jobID}

	err := s.pool.QueryRow(ctx, `SELECT id, data, created_at, updated_at FROM resumes WHERE job_id = $1`, jobID).
		Scan(&resume.ID, &data, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(data, &resume.Data); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return &resume, nil
}

// UpsertResume writes the whole document in one statement; concurrent
// builds resolve to whichever commits last.
func (s *PostgresStore) UpsertResume(ctx context.Context, jobID int64, data models.GeneratedResume) (*models.StoredResume, error) {
	encoded, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}

	resume := models.StoredResume{JobID: jobID, Data: data}
	err = s.pool.QueryRow(ctx, `INSERT INTO resumes (job_id, data) VALUES ($1, $2)
		ON CONFLICT (job_id) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
		RETURNING id, created_at, updated_at`, jobID, encoded).
		Scan(&resume.ID, &resume.CreatedAt, &resume.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert resume: %w", err)
	}
	return &resume, nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// MemoryStore is a process-local Store used when no database is configured
// and in tests. Values are copied on the way in and out.
type MemoryStore struct {
	mu       sync.RWMutex
	nextJob  int64
	nextRes  int64
	jobs     map[int64]models.Job
	profiles map[string]models.Profile
	resumes  map[int64]models.StoredResume
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:     make(map[int64]models.Job),
		profiles: make(map[string]models.Profile),
		resumes:  make(map[int64]models.StoredResume),
	}
}

func (s *MemoryStore) CreateJob(ctx context.Context, job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextJob++
	now := time.Now().UTC()
	job.ID = s.nextJob
	job.CreatedAt = now
	job.UpdatedAt = now
	s.jobs[job.ID] = *job
	return nil
}

func (s *MemoryStore) GetJob(ctx context.Context, id int64) (*models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &job, nil
}

func (s *MemoryStore) ListJobs(ctx context.Context, userID string) ([]models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	jobs := make([]models.Job, 0, len(s.jobs))
	for _, job := range s.jobs {
		if job.UserID == userID {
			jobs = append(jobs, job)
		}
	}
	sort.Slice(jobs, func(i, j int) bool { return jobs[i].ID > jobs[j].ID })
	return jobs, nil
}

func (s *MemoryStore) GetProfile(ctx context.Context, userID string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &profile, nil
}

func (s *MemoryStore) PutProfile(ctx context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile.UpdatedAt = time.Now().UTC()
	s.profiles[profile.UserID] = *profile
	return nil
}

func (s *MemoryStore) GetResume(ctx context.Context, jobID int64) (*models.StoredResume, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	resume, ok := s.resumes[jobID]
	if !ok {
		return nil, ErrNotFound
	}
	return &resume, nil
}

func (s *MemoryStore) UpsertResume(ctx context.Context, jobID int64, data models.GeneratedResume) (*models.StoredResume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.jobs[jobID]; !ok {
		return nil, ErrNotFound
	}

	now := time.Now().UTC()
	resume, ok := s.resumes[jobID]
	if !ok {
		s.nextRes++
		resume = models.StoredResume{ID: s.nextRes, JobID: jobID, CreatedAt: now}
	}
	resume.Data = data
	resume.UpdatedAt = now
	s.resumes[jobID] = resume
	return &resume, nil
}

func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Close() {}

package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// Service stores job postings, entered by hand or imported from a URL
type Service struct {
	store   store.JobStore
	fetcher PageFetcher
	logger  logging.Logger
}

// NewService builds a job service. fetcher may be nil, which disables Import.
func NewService(s store.JobStore, fetcher PageFetcher) *Service {
	return &Service{
		store:   s,
		fetcher: fetcher,
		logger:  logging.GetGlobalLogger().WithField("component", "jobs"),
	}
}

func (s *Service) Create(ctx context.Context, userID string, req models.CreateJobRequest) (*models.Job, error) {
	description := req.Description
	if strings.TrimSpace(req.DescriptionHTML) != "" {
		text, err := HTMLToText(req.DescriptionHTML)
		if err != nil {
			return nil, fmt.Errorf("convert description_html: %w", err)
		}
		description = text
	}

	job := &models.Job{
		UserID:      userID,
		Company:     strings.TrimSpace(req.Company),
		Title:       strings.TrimSpace(req.Title),
		Description: description,
		Location:    req.Location,
		Link:        req.Link,
		PostedAt:    req.PostedAt,
		TechStack:   req.TechStack,
		SalaryMin:   req.SalaryMin,
		SalaryMax:   req.SalaryMax,
	}
	if job.TechStack == nil {
		job.TechStack = []string{}
	}

	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, err
	}

	s.logger.Info("Job created", map[string]interface{}{
		"job_id":             job.ID,
		"user_id":            userID,
		"description_length": len(job.Description),
	})
	return job, nil
}

// Import fetches the posting at req.URL and stores its text as the job description
func (s *Service) Import(ctx context.Context, userID string, req models.ImportJobRequest) (*models.Job, error) {
	if s.fetcher == nil {
		return nil, ErrImportUnavailable
	}

	url, err := NormalizeJobURL(req.URL)
	if err != nil {
		return nil, err
	}

	page, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		s.logger.Error("Job import fetch failed", map[string]interface{}{
			"url":   url,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	text, err := PageText(page)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}

	return s.Create(ctx, userID, models.CreateJobRequest{
		Company:     req.Company,
		Title:       req.Title,
		Description: text,
		Location:    req.Location,
		Link:        url,
	})
}

func (s *Service) Get(ctx context.Context, id int64) (*models.Job, error) {
	return s.store.GetJob(ctx, id)
}

func (s *Service) List(ctx context.Context, userID string) ([]models.Job, error) {
	return s.store.ListJobs(ctx, userID)
}

package resume

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/ats"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/latex"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/prompt"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/store"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// PDFCompiler turns LaTeX source into PDF bytes
type PDFCompiler interface {
	Compile(ctx context.Context, source string) ([]byte, error)
}

// Service runs the tailoring pipeline and the on-demand renderers for the
// resume attached to each job
type Service struct {
	store     store.Store
	generator llm.Generator
	scorer    *ats.Scorer
	engine    *latex.Engine
	compiler  PDFCompiler
	history   GenerationLog
	locker    BuildLocker
	logger    logging.Logger
}

// Options carries the collaborators of a Service. Nil History and Locker
// fall back to an in-memory log and last-write-wins.
type Options struct {
	Store     store.Store
	Generator llm.Generator
	Scorer    *ats.Scorer
	Compiler  PDFCompiler
	History   GenerationLog
	Locker    BuildLocker
}

func NewService(opts Options) *Service {
	s := &Service{
		store:     opts.Store,
		generator: opts.Generator,
		scorer:    opts.Scorer,
		engine:    latex.NewEngine(),
		compiler:  opts.Compiler,
		history:   opts.History,
		locker:    opts.Locker,
		logger:    logging.GetGlobalLogger().WithField("component", "resume"),
	}
	if s.history == nil {
		s.history = NewMemoryGenerationLog(0)
	}
	if s.locker == nil {
		s.locker = noLock{}
	}
	return s
}

// Build generates and stores a tailored resume for the job. The job
// description is checked before any generation call is made.
func (s *Service) Build(ctx context.Context, jobID int64, userID string) (*models.StoredResume, error) {
	job, err := s.job(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(job.Description) == "" {
		return nil, &InputError{Message: "job description is empty; add a description before building a resume"}
	}

	profile, err := s.store.GetProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "profile", ID: userID}
		}
		return nil, err
	}

	release, err := s.locker.Acquire(ctx, jobID)
	if err != nil {
		return nil, err
	}
	defer release()

	p, err := prompt.BuildResumePrompt(prompt.FormatProfile(*profile), profile.Name, profile.Email, job.Description)
	if err != nil {
		return nil, fmt.Errorf("build resume prompt: %w", err)
	}

	rec := llm.NewRecord(s.generator, models.GenerationKindResume, jobID, p)
	start := time.Now()

	raw, err := s.generator.Generate(ctx, p, llm.GenerateOptions{})
	var generated *models.GeneratedResume
	if err == nil {
		generated, err = contract.ValidateResume(contract.Sanitize(raw))
	}

	llm.Finish(&rec, raw, start, err)
	s.record(ctx, rec)

	if err != nil {
		s.logger.Error("Resume generation failed", map[string]interface{}{
			"job_id":  jobID,
			"outcome": rec.Outcome,
			"error":   err.Error(),
		})
		return nil, err
	}

	stored, err := s.store.UpsertResume(ctx, jobID, *generated)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	s.logger.Info("Resume built", map[string]interface{}{
		"job_id":      jobID,
		"resume_id":   stored.ID,
		"experience":  len(generated.Experience),
		"duration_ms": rec.DurationMS,
	})
	return stored, nil
}

// Get returns the stored resume for the job
func (s *Service) Get(ctx context.Context, jobID int64, userID string) (*models.StoredResume, error) {
	if _, err := s.job(ctx, jobID, userID); err != nil {
		return nil, err
	}
	return s.resume(ctx, jobID)
}

// Update merges patch into the stored resume, replacing whole top-level keys,
// and re-validates the result. A job without a resume starts from an empty one.
func (s *Service) Update(ctx context.Context, jobID int64, userID string, patch map[string]interface{}) (*models.StoredResume, error) {
	if _, err := s.job(ctx, jobID, userID); err != nil {
		return nil, err
	}
	if len(patch) == 0 {
		return nil, &InputError{Message: "update body must contain at least one resume field"}
	}
	if unknown := unknownFields(patch); len(unknown) > 0 {
		return nil, &InputError{Message: "unknown resume fields", Detail: strings.Join(unknown, ", ")}
	}

	base := models.GeneratedResume{}
	existing, err := s.store.GetResume(ctx, jobID)
	switch {
	case err == nil:
		base = existing.Data
	case !errors.Is(err, store.ErrNotFound):
		return nil, err
	}

	doc, err := toDocument(base)
	if err != nil {
		return nil, err
	}
	for k, v := range patch {
		doc[k] = v
	}

	merged, err := contract.ValidateResumeDocument(doc)
	if err != nil {
		var schemaErr *contract.SchemaError
		if errors.As(err, &schemaErr) {
			return nil, &InputError{Message: "invalid resume", Detail: schemaErr.Detail}
		}
		return nil, err
	}

	stored, err := s.store.UpsertResume(ctx, jobID, *merged)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	s.logger.Info("Resume updated", map[string]interface{}{
		"job_id": jobID,
		"fields": len(patch),
	})
	return stored, nil
}

// Scan scores the stored resume against the job description
func (s *Service) Scan(ctx context.Context, jobID int64, userID string) (*models.ATSResult, error) {
	job, err := s.job(ctx, jobID, userID)
	if err != nil {
		return nil, err
	}
	stored, err := s.resume(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(job.Description) == "" {
		return nil, &InputError{Message: "job description is empty; add a description before running an ATS scan"}
	}
	return s.scorer.ScoreMatch(ctx, jobID, stored.Data, job.Description)
}

// RenderSource returns the LaTeX source and its download filename
func (s *Service) RenderSource(ctx context.Context, jobID int64, userID, theme string) (string, string, error) {
	stored, err := s.Get(ctx, jobID, userID)
	if err != nil {
		return "", "", err
	}

	src, err := s.engine.Render(stored.Data, theme)
	if err != nil {
		if errors.Is(err, latex.ErrUnknownTheme) {
			return "", "", &InputError{Message: err.Error()}
		}
		return "", "", err
	}
	return fmt.Sprintf("resume_%d.tex", jobID), src, nil
}

// RenderPDF compiles the resume and returns the PDF and its download filename
func (s *Service) RenderPDF(ctx context.Context, jobID int64, userID, theme string) (string, []byte, error) {
	_, src, err := s.RenderSource(ctx, jobID, userID, theme)
	if err != nil {
		return "", nil, err
	}

	start := time.Now()
	pdf, err := s.compiler.Compile(ctx, src)
	if err != nil {
		s.logger.Error("PDF compilation failed", map[string]interface{}{
			"job_id": jobID,
			"error":  err.Error(),
		})
		return "", nil, err
	}

	s.logger.Info("PDF compiled", map[string]interface{}{
		"job_id":      jobID,
		"size_bytes":  len(pdf),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return fmt.Sprintf("resume_%d.pdf", jobID), pdf, nil
}

// Generations returns the audit history of the job, newest first
func (s *Service) Generations(ctx context.Context, jobID int64, userID string) ([]models.GenerationRecord, error) {
	if _, err := s.job(ctx, jobID, userID); err != nil {
		return nil, err
	}
	return s.history.GetGenerationHistory(ctx, jobID)
}

// job loads a job owned by userID; other users' jobs are reported as missing
func (s *Service) job(ctx context.Context, jobID int64, userID string) (*models.Job, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "job", ID: strconv.FormatInt(jobID, 10)}
		}
		return nil, err
	}
	if job.UserID != userID {
		return nil, &NotFoundError{Resource: "job", ID: strconv.FormatInt(jobID, 10)}
	}
	return job, nil
}

func (s *Service) resume(ctx context.Context, jobID int64) (*models.StoredResume, error) {
	stored, err := s.store.GetResume(ctx, jobID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, &NotFoundError{Resource: "resume for job", ID: strconv.FormatInt(jobID, 10)}
		}
		return nil, err
	}
	return stored, nil
}

func (s *Service) record(ctx context.Context, rec models.GenerationRecord) {
	if err := s.history.RecordGeneration(ctx, rec); err != nil {
		s.logger.Warn("Failed to record generation", map[string]interface{}{
			"job_id": rec.JobID,
			"error":  err.Error(),
		})
	}
}

func unknownFields(patch map[string]interface{}) []string {
	known := make(map[string]bool, len(contract.Resume.Fields))
	for _, f := range contract.Resume.Fields {
		known[f.Name] = true
	}

	var unknown []string
	for k := range patch {
		if !known[k] {
			unknown = append(unknown, k)
		}
	}
	sort.Strings(unknown)
	return unknown
}

func toDocument(r models.GeneratedResume) (map[string]interface{}, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}
	doc := map[string]interface{}{}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode resume: %w", err)
	}
	return doc, nil
}

package ats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/prompt"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// Scorer asks the generation endpoint to compare a resume with a job description
type Scorer struct {
	generator   llm.Generator
	recorder    llm.GenerationRecorder
	maxTokens   int
	temperature float64
	logger      logging.Logger
}

func NewScorer(cfg *config.Config, generator llm.Generator, recorder llm.GenerationRecorder) *Scorer {
	return &Scorer{
		generator:   generator,
		recorder:    recorder,
		maxTokens:   cfg.ATS.MaxTokens,
		temperature: cfg.ATS.Temperature,
		logger:      logging.GetGlobalLogger().WithField("component", "ats"),
	}
}

// ScoreMatch returns the model's analysis. The result is not cross-checked
// against the resume's own keyword lists.
func (s *Scorer) ScoreMatch(ctx context.Context, jobID int64, resume models.GeneratedResume, jobDescription string) (*models.ATSResult, error) {
	resumeJSON, err := json.MarshalIndent(resume, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode resume: %w", err)
	}

	p, err := prompt.BuildATSPrompt(string(resumeJSON), jobDescription)
	if err != nil {
		return nil, fmt.Errorf("build ATS prompt: %w", err)
	}

	rec := llm.NewRecord(s.generator, models.GenerationKindATS, jobID, p)
	start := time.Now()

	raw, err := s.generator.Generate(ctx, p, llm.GenerateOptions{
		MaxTokens:   s.maxTokens,
		Temperature: &s.temperature,
	})
	var result *models.ATSResult
	if err == nil {
		result, err = contract.ValidateATS(contract.Sanitize(raw))
	}

	llm.Finish(&rec, raw, start, err)
	s.record(ctx, rec)

	if err != nil {
		return nil, err
	}

	s.logger.Info("ATS scan completed", map[string]interface{}{
		"job_id":      jobID,
		"score":       result.Score,
		"duration_ms": rec.DurationMS,
	})
	return result, nil
}

func (s *Scorer) record(ctx context.Context, rec models.GenerationRecord) {
	if s.recorder == nil {
		return
	}
	if err := s.recorder.RecordGeneration(ctx, rec); err != nil {
		s.logger.Warn("Failed to record generation", map[string]interface{}{
			"job_id": rec.JobID,
			"error":  err.Error(),
		})
	}
}

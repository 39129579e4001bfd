package ats

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/contract"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

type stubGenerator struct {
	reply  string
	err    error
	prompt string
	opts   llm.GenerateOptions
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string, opts llm.GenerateOptions) (string, error) {
	g.prompt = prompt
	g.opts = opts
	return g.reply, g.err
}

func (g *stubGenerator) GetProviderName() string { return "stub" }
func (g *stubGenerator) GetModelName() string    { return "stub-1" }

type memoryRecorder struct {
	records []models.GenerationRecord
}

func (r *memoryRecorder) RecordGeneration(ctx context.Context, rec models.GenerationRecord) error {
	r.records = append(r.records, rec)
	return nil
}

func TestScoreMatch(t *testing.T) {
	gen := &stubGenerator{reply: "```json\n{\"score\": 82.6, \"matched_keywords\": [\"Go\"], \"missing_keywords\": null}\n```"}
	rec := &memoryRecorder{}
	scorer := NewScorer(config.Default(), gen, rec)

	resume := models.GeneratedResume{Header: "Ada", ProgrammingLanguages: []string{"Go"}}
	result, err := scorer.ScoreMatch(context.Background(), 7, resume, "Go microservices")
	if err != nil {
		t.Fatalf("ScoreMatch failed: %v", err)
	}

	if result.Score != 83 {
		t.Errorf("Expected rounded score 83, got %d", result.Score)
	}
	if len(result.MatchedKeywords) != 1 || result.MissingKeywords == nil {
		t.Errorf("Expected matched keywords and empty missing list, got %+v", result)
	}

	if gen.opts.MaxTokens != 1500 || gen.opts.Temperature == nil || *gen.opts.Temperature != 0.2 {
		t.Errorf("Expected ATS generation options 1500/0.2, got %+v", gen.opts)
	}
	if !strings.Contains(gen.prompt, "Go microservices") || !strings.Contains(gen.prompt, `"header": "Ada"`) {
		t.Error("Expected prompt to embed the resume and job description")
	}

	if len(rec.records) != 1 || rec.records[0].Outcome != models.GenerationOutcomeOK || rec.records[0].Kind != models.GenerationKindATS {
		t.Errorf("Expected one ok ATS record, got %+v", rec.records)
	}
}

func TestScoreMatchErrors(t *testing.T) {
	tests := []struct {
		name    string
		gen     *stubGenerator
		target  error
		outcome string
	}{
		{"upstream", &stubGenerator{err: &llm.UpstreamError{Kind: "status", Provider: "stub", StatusCode: 503}}, llm.ErrUpstream, models.GenerationOutcomeUpstreamError},
		{"invalid json", &stubGenerator{reply: "{not json"}, contract.ErrSchema, models.GenerationOutcomeSchemaError},
		{"score out of range", &stubGenerator{reply: `{"score": 140}`}, contract.ErrSchema, models.GenerationOutcomeSchemaError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &memoryRecorder{}
			_, err := NewScorer(config.Default(), tt.gen, rec).ScoreMatch(context.Background(), 1, models.GeneratedResume{}, "jd")

			if !errors.Is(err, tt.target) {
				t.Fatalf("Expected %v, got %v", tt.target, err)
			}
			if len(rec.records) != 1 || rec.records[0].Outcome != tt.outcome {
				t.Errorf("Expected outcome '%s', got %+v", tt.outcome, rec.records)
			}
			if rec.records[0].Raw != tt.gen.reply {
				t.Errorf("Expected raw payload to be recorded")
			}
		})
	}
}

package llm

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/pkg/models"
)

// GenerationRecorder persists audit records of generation calls
type GenerationRecorder interface {
	RecordGeneration(ctx context.Context, rec models.GenerationRecord) error
}

// NewRecord starts an audit record for one generation call
func NewRecord(g Generator, kind string, jobID int64, prompt string) models.GenerationRecord {
	return models.GenerationRecord{
		ID:          uuid.New().String(),
		JobID:       jobID,
		Kind:        kind,
		Provider:    g.GetProviderName(),
		Model:       g.GetModelName(),
		PromptChars: len(prompt),
		CreatedAt:   time.Now().UTC(),
	}
}

// Finish fills in the result of the call. Errors that did not come from the
// generation endpoint are post-processing failures and count as schema errors.
func Finish(rec *models.GenerationRecord, raw string, start time.Time, err error) {
	rec.Raw = raw
	rec.DurationMS = time.Since(start).Milliseconds()

	switch {
	case err == nil:
		rec.Outcome = models.GenerationOutcomeOK
	case errors.Is(err, ErrUpstream), errors.Is(err, ErrUpstreamTimeout), errors.Is(err, ErrUpstreamFormat):
		rec.Outcome = models.GenerationOutcomeUpstreamError
		rec.Error = err.Error()
	default:
		rec.Outcome = models.GenerationOutcomeSchemaError
		rec.Error = err.Error()
	}
}

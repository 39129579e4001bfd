package llm

import (
	"context"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
)

type Provider = types.Provider
type GenerateOptions = types.GenerateOptions
type UpstreamError = types.UpstreamError

var (
	ErrUpstreamTimeout = types.ErrUpstreamTimeout
	ErrUpstream        = types.ErrUpstream
	ErrUpstreamFormat  = types.ErrUpstreamFormat
)

// Generator is the narrow view of the generation client used by the pipeline
type Generator interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)
	GetProviderName() string
	GetModelName() string
}

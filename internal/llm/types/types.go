package types

import (
	"context"
	"errors"
	"fmt"
)

// Provider sends one prompt to a text-generation endpoint and returns its raw completion
type Provider interface {
	Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error)

	// IsHealthy reports whether the provider is configured to make calls
	IsHealthy(ctx context.Context) error

	GetProviderName() string
	GetModelName() string
}

// GenerateOptions override the configured defaults for a single call. Zero values keep the defaults.
type GenerateOptions struct {
	MaxTokens   int
	Temperature *float64
}

// Temperature returns a pointer for GenerateOptions.Temperature
func Temperature(t float64) *float64 {
	return &t
}

var (
	ErrUpstreamTimeout = errors.New("generation endpoint timed out")
	ErrUpstream        = errors.New("generation endpoint failed")
	ErrUpstreamFormat  = errors.New("generation endpoint returned an unexpected envelope")
)

type UpstreamErrorKind string

const (
	KindTimeout   UpstreamErrorKind = "timeout"
	KindTransport UpstreamErrorKind = "transport"
	KindStatus    UpstreamErrorKind = "status"
	KindFormat    UpstreamErrorKind = "format"
)

// UpstreamError is returned by every provider for a failed call. Body holds
// the response payload, when one was received, so it can be surfaced verbatim.
type UpstreamError struct {
	Kind       UpstreamErrorKind
	Provider   string
	StatusCode int
	Body       string
	Err        error
}

func (e *UpstreamError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("%s: request timed out: %v", e.Provider, e.Err)
	case KindStatus:
		return fmt.Sprintf("%s: unexpected status %d", e.Provider, e.StatusCode)
	case KindFormat:
		return fmt.Sprintf("%s: malformed response: %v", e.Provider, e.Err)
	default:
		return fmt.Sprintf("%s: request failed: %v", e.Provider, e.Err)
	}
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

func (e *UpstreamError) Is(target error) bool {
	switch target {
	case ErrUpstreamTimeout:
		return e.Kind == KindTimeout
	case ErrUpstream:
		return e.Kind == KindTransport || e.Kind == KindStatus
	case ErrUpstreamFormat:
		return e.Kind == KindFormat
	}
	return false
}

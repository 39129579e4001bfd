package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
)

// ClaudeProvider generates completions with Anthropic's Messages API
type ClaudeProvider struct {
	client anthropic.Client
	config config.LLMConfig
	model  string
}

// NewClaudeProvider creates a new Claude provider instance. SDK retries are
// disabled; a failed call surfaces immediately.
func NewClaudeProvider(cfg config.LLMConfig) *ClaudeProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithRequestTimeout(requestTimeout(cfg)),
	}
	if cfg.BaseURL != "" && cfg.BaseURL != config.DefaultLLMBaseURL {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" || model == config.DefaultLLMModel {
		model = string(anthropic.ModelClaude3_7SonnetLatest)
	}

	return &ClaudeProvider{
		client: anthropic.NewClient(opts...),
		config: cfg,
		model:  model,
	}
}

func (cp *ClaudeProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	response, err := cp.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(cp.model),
		MaxTokens:   int64(maxTokens(opts, cp.config)),
		Temperature: anthropic.Float(temperature(opts, cp.config)),
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	})
	if err != nil {
		return "", cp.upstreamError(ctx, err)
	}

	var text strings.Builder
	for _, content := range response.Content {
		if content.Type == "text" {
			text.WriteString(content.AsText().Text)
		}
	}

	result := strings.TrimSpace(text.String())
	if result == "" {
		return "", &types.UpstreamError{
			Kind:     types.KindFormat,
			Provider: cp.GetProviderName(),
			Body:     response.RawJSON(),
			Err:      errors.New("no text content in Claude response"),
		}
	}
	return result, nil
}

func (cp *ClaudeProvider) upstreamError(ctx context.Context, err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		return &types.UpstreamError{
			Kind:       types.KindStatus,
			Provider:   cp.GetProviderName(),
			StatusCode: apiErr.StatusCode,
			Body:       apiErr.RawJSON(),
			Err:        err,
		}
	}

	kind := types.KindTransport
	if isTimeout(ctx, err) {
		kind = types.KindTimeout
	}
	return &types.UpstreamError{Kind: kind, Provider: cp.GetProviderName(), Err: err}
}

// IsHealthy checks if the Claude provider is configured
func (cp *ClaudeProvider) IsHealthy(ctx context.Context) error {
	if cp.config.APIKey == "" {
		return fmt.Errorf("Claude API key not configured - set LLM_API_KEY environment variable")
	}
	return nil
}

func (cp *ClaudeProvider) GetProviderName() string {
	return "claude"
}

func (cp *ClaudeProvider) GetModelName() string {
	return cp.model
}

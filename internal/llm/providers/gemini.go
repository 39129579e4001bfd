package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider generates completions with Google's Gemini through langchaingo
type GeminiProvider struct {
	config config.LLMConfig
	model  string

	once      sync.Once
	client    llms.Model
	clientErr error
}

func NewGeminiProvider(cfg config.LLMConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" || model == config.DefaultLLMModel {
		model = defaultGeminiModel
	}
	return &GeminiProvider{config: cfg, model: model}
}

// llm builds the googleai client on first use; construction needs a context
func (gp *GeminiProvider) llm(ctx context.Context) (llms.Model, error) {
	gp.once.Do(func() {
		gp.client, gp.clientErr = googleai.New(ctx,
			googleai.WithAPIKey(gp.config.APIKey),
			googleai.WithDefaultModel(gp.model),
		)
	})
	return gp.client, gp.clientErr
}

func (gp *GeminiProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	client, err := gp.llm(ctx)
	if err != nil {
		return "", &types.UpstreamError{
			Kind:     types.KindTransport,
			Provider: gp.GetProviderName(),
			Err:      fmt.Errorf("failed to create Gemini client: %w", err),
		}
	}

	ctx, cancel := context.WithTimeout(ctx, requestTimeout(gp.config))
	defer cancel()

	completion, err := llms.GenerateFromSinglePrompt(ctx, client, prompt,
		llms.WithMaxTokens(maxTokens(opts, gp.config)),
		llms.WithTemperature(temperature(opts, gp.config)),
	)
	if err != nil {
		kind := types.KindTransport
		if isTimeout(ctx, err) {
			kind = types.KindTimeout
		}
		return "", &types.UpstreamError{Kind: kind, Provider: gp.GetProviderName(), Err: err}
	}

	completion = strings.TrimSpace(completion)
	if completion == "" {
		return "", &types.UpstreamError{
			Kind:     types.KindFormat,
			Provider: gp.GetProviderName(),
			Err:      errors.New("completion is empty"),
		}
	}
	return completion, nil
}

func (gp *GeminiProvider) IsHealthy(ctx context.Context) error {
	if gp.config.APIKey == "" {
		return fmt.Errorf("Gemini API key not configured - set LLM_API_KEY environment variable")
	}
	return nil
}

func (gp *GeminiProvider) GetProviderName() string {
	return "gemini"
}

func (gp *GeminiProvider) GetModelName() string {
	return gp.model
}

package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
)

// maxResponseBytes bounds how much of an upstream body is read and kept
const maxResponseBytes = 4 << 20

// OpenRouterProvider calls an OpenAI-compatible chat/completions endpoint
type OpenRouterProvider struct {
	config     config.LLMConfig
	endpoint   string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message *struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string      `json:"message"`
		Code    interface{} `json:"code"`
	} `json:"error"`
}

func NewOpenRouterProvider(cfg config.LLMConfig) *OpenRouterProvider {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultLLMBaseURL
	}

	return &OpenRouterProvider{
		config:     cfg,
		endpoint:   baseURL + "/chat/completions",
		httpClient: &http.Client{},
	}
}

// Generate makes exactly one request. The configured timeout bounds the
// whole exchange, including reading the body.
func (p *OpenRouterProvider) Generate(ctx context.Context, prompt string, opts types.GenerateOptions) (string, error) {
	reqBody, err := json.Marshal(chatRequest{
		Model:       p.config.Model,
		Messages:    []chatMessage{{Role: "user", Content: prompt}},
		MaxTokens:   maxTokens(opts, p.config),
		Temperature: temperature(opts, p.config),
	})
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal chat request")
	}

	if p.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(reqBody))
	if err != nil {
		return "", errors.Wrap(err, "failed to create HTTP request")
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)
	if p.config.Referer != "" {
		httpReq.Header.Set("HTTP-Referer", p.config.Referer)
	}
	if p.config.Title != "" {
		httpReq.Header.Set("X-Title", p.config.Title)
	}

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", p.transportError(ctx, errors.Wrap(err, "HTTP request failed"))
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", p.transportError(ctx, errors.Wrap(err, "failed to read response body"))
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &types.UpstreamError{
			Kind:       types.KindStatus,
			Provider:   p.GetProviderName(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Err:        errors.Errorf("status %d", resp.StatusCode),
		}
	}

	var envelope chatResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		return "", p.formatError(resp.StatusCode, respBody, errors.Wrap(err, "failed to decode response envelope"))
	}

	// some gateways report upstream failures inside a 200 response
	if envelope.Error != nil {
		return "", &types.UpstreamError{
			Kind:       types.KindStatus,
			Provider:   p.GetProviderName(),
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
			Err:        errors.New(envelope.Error.Message),
		}
	}

	if len(envelope.Choices) == 0 || envelope.Choices[0].Message == nil || envelope.Choices[0].Message.Content == nil {
		return "", p.formatError(resp.StatusCode, respBody, errors.New("response lacks choices[0].message.content"))
	}

	content := strings.TrimSpace(*envelope.Choices[0].Message.Content)
	if content == "" {
		return "", p.formatError(resp.StatusCode, respBody, errors.New("completion is empty"))
	}

	return content, nil
}

func (p *OpenRouterProvider) transportError(ctx context.Context, err error) error {
	kind := types.KindTransport
	if isTimeout(ctx, err) {
		kind = types.KindTimeout
	}
	return &types.UpstreamError{Kind: kind, Provider: p.GetProviderName(), Err: err}
}

func (p *OpenRouterProvider) formatError(status int, body []byte, err error) error {
	return &types.UpstreamError{
		Kind:       types.KindFormat,
		Provider:   p.GetProviderName(),
		StatusCode: status,
		Body:       string(body),
		Err:        err,
	}
}

func (p *OpenRouterProvider) IsHealthy(ctx context.Context) error {
	if p.config.APIKey == "" {
		return errors.New("OpenRouter API key not configured - set LLM_API_KEY or OPENROUTER_API_KEY")
	}
	return nil
}

func (p *OpenRouterProvider) GetProviderName() string {
	return "openrouter"
}

func (p *OpenRouterProvider) GetModelName() string {
	return p.config.Model
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func maxTokens(opts types.GenerateOptions, cfg config.LLMConfig) int {
	if opts.MaxTokens > 0 {
		return opts.MaxTokens
	}
	return cfg.MaxTokens
}

func temperature(opts types.GenerateOptions, cfg config.LLMConfig) float64 {
	if opts.Temperature != nil {
		return *opts.Temperature
	}
	return cfg.Temperature
}

// requestTimeout is the per-call deadline used by SDK-backed providers
func requestTimeout(cfg config.LLMConfig) time.Duration {
	if cfg.Timeout > 0 {
		return cfg.Timeout
	}
	return 60 * time.Second
}

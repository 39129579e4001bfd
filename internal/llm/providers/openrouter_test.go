package providers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/types"
)

func testLLMConfig(baseURL string) config.LLMConfig {
	cfg := config.Default().LLM
	cfg.APIKey = "test-key"
	cfg.BaseURL = baseURL
	return cfg
}

func TestOpenRouterGenerateSuccess(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("Expected path '/chat/completions', got '%s'", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("Expected bearer auth, got '%s'", got)
		}
		if got := r.Header.Get("X-Title"); got != "Job Application Organizer" {
			t.Errorf("Expected X-Title header, got '%s'", got)
		}
		if got := r.Header.Get("HTTP-Referer"); got != "http://localhost:8000" {
			t.Errorf("Expected HTTP-Referer header, got '%s'", got)
		}
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  {\"header\":\"Ada\"}\n"}}]}`))
	}))
	defer server.Close()

	provider := NewOpenRouterProvider(testLLMConfig(server.URL + "/"))

	out, err := provider.Generate(context.Background(), "tailor this", types.GenerateOptions{MaxTokens: 1500, Temperature: types.Temperature(0.2)})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != `{"header":"Ada"}` {
		t.Errorf("Expected trimmed content, got %q", out)
	}

	if captured.Model != config.DefaultLLMModel {
		t.Errorf("Expected model '%s', got '%s'", config.DefaultLLMModel, captured.Model)
	}
	if len(captured.Messages) != 1 || captured.Messages[0].Role != "user" || captured.Messages[0].Content != "tailor this" {
		t.Errorf("Expected single user message, got %+v", captured.Messages)
	}
	if captured.MaxTokens != 1500 || captured.Temperature != 0.2 {
		t.Errorf("Expected overrides max_tokens=1500 temperature=0.2, got %d %v", captured.MaxTokens, captured.Temperature)
	}
}

func TestOpenRouterGenerateDefaults(t *testing.T) {
	var captured chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&captured)
		w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	}))
	defer server.Close()

	provider := NewOpenRouterProvider(testLLMConfig(server.URL))
	if _, err := provider.Generate(context.Background(), "p", types.GenerateOptions{}); err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if captured.MaxTokens != 2500 || captured.Temperature != 0.7 {
		t.Errorf("Expected defaults max_tokens=2500 temperature=0.7, got %d %v", captured.MaxTokens, captured.Temperature)
	}
}

func TestOpenRouterGenerateErrors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
		kind     types.UpstreamErrorKind
	}{
		{"non-2xx", http.StatusTooManyRequests, `{"error":{"message":"rate limited"}}`, types.ErrUpstream, types.KindStatus},
		{"error inside 200", http.StatusOK, `{"error":{"message":"provider down","code":502}}`, types.ErrUpstream, types.KindStatus},
		{"no choices", http.StatusOK, `{"choices":[]}`, types.ErrUpstreamFormat, types.KindFormat},
		{"no message", http.StatusOK, `{"choices":[{"finish_reason":"stop"}]}`, types.ErrUpstreamFormat, types.KindFormat},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`, types.ErrUpstreamFormat, types.KindFormat},
		{"not json", http.StatusOK, `<html>gateway</html>`, types.ErrUpstreamFormat, types.KindFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls++
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewOpenRouterProvider(testLLMConfig(server.URL))
			_, err := provider.Generate(context.Background(), "p", types.GenerateOptions{})

			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("Expected %v, got %v", tt.sentinel, err)
			}
			var upstream *types.UpstreamError
			if !errors.As(err, &upstream) {
				t.Fatalf("Expected *UpstreamError, got %T", err)
			}
			if upstream.Kind != tt.kind {
				t.Errorf("Expected kind %s, got %s", tt.kind, upstream.Kind)
			}
			if upstream.Body != tt.body {
				t.Errorf("Expected raw body %q to be kept, got %q", tt.body, upstream.Body)
			}
			if calls != 1 {
				t.Errorf("Expected exactly one request, got %d", calls)
			}
		})
	}
}

func TestOpenRouterGenerateTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	cfg := testLLMConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond

	_, err := NewOpenRouterProvider(cfg).Generate(context.Background(), "p", types.GenerateOptions{})
	if !errors.Is(err, types.ErrUpstreamTimeout) {
		t.Fatalf("Expected ErrUpstreamTimeout, got %v", err)
	}
	if errors.Is(err, types.ErrUpstream) {
		t.Error("Expected timeout not to match ErrUpstream")
	}
}

func TestOpenRouterGenerateTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewOpenRouterProvider(testLLMConfig(url)).Generate(context.Background(), "p", types.GenerateOptions{})
	if !errors.Is(err, types.ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
	if !strings.Contains(err.Error(), "openrouter") {
		t.Errorf("Expected provider name in error, got %q", err.Error())
	}
}

func TestOpenRouterIsHealthy(t *testing.T) {
	cfg := testLLMConfig("http://localhost")
	cfg.APIKey = ""
	if err := NewOpenRouterProvider(cfg).IsHealthy(context.Background()); err == nil {
		t.Error("Expected unhealthy provider without API key")
	}
}

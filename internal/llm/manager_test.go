package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
)

type fakeProvider struct {
	calls int
	reply string
	err   error
}

func (f *fakeProvider) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	f.calls++
	return f.reply, f.err
}

func (f *fakeProvider) IsHealthy(ctx context.Context) error { return nil }
func (f *fakeProvider) GetProviderName() string             { return "fake" }
func (f *fakeProvider) GetModelName() string                { return "fake-1" }

func TestManagerGenerateDelegates(t *testing.T) {
	provider := &fakeProvider{reply: "{}"}
	m := NewManagerWithProvider(config.Default().LLM, provider)

	out, err := m.Generate(context.Background(), "prompt", GenerateOptions{})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if out != "{}" || provider.calls != 1 {
		t.Errorf("Expected one delegated call returning '{}', got %q after %d calls", out, provider.calls)
	}
	if !m.IsHealthy() || m.GetProviderName() != "fake" || m.GetModelName() != "fake-1" {
		t.Error("Expected manager to report the wrapped provider")
	}
}

func TestManagerDoesNotRetry(t *testing.T) {
	provider := &fakeProvider{err: &UpstreamError{Kind: "status", Provider: "fake", StatusCode: 502}}
	m := NewManagerWithProvider(config.Default().LLM, provider)

	_, err := m.Generate(context.Background(), "prompt", GenerateOptions{})
	if !errors.Is(err, ErrUpstream) {
		t.Fatalf("Expected ErrUpstream, got %v", err)
	}
	if provider.calls != 1 {
		t.Errorf("Expected a single attempt, got %d", provider.calls)
	}
}

func TestManagerLazyInit(t *testing.T) {
	cfg := config.Default().LLM
	cfg.Provider = "unknown"
	m := NewManager(cfg)

	if m.IsHealthy() {
		t.Error("Expected manager to be unhealthy before first use")
	}
	if _, err := m.Generate(context.Background(), "p", GenerateOptions{}); err == nil {
		t.Fatal("Expected unsupported provider error")
	}
	if err := m.Start(); err == nil {
		t.Error("Expected the construction error to be remembered")
	}
}

func TestManagerStop(t *testing.T) {
	m := NewManagerWithProvider(config.Default().LLM, &fakeProvider{reply: "x"})
	m.Stop()

	if _, err := m.Generate(context.Background(), "p", GenerateOptions{}); !errors.Is(err, ErrManagerStopped) {
		t.Errorf("Expected ErrManagerStopped, got %v", err)
	}
}

func TestSharedFirstConfigWins(t *testing.T) {
	first := config.Default().LLM
	first.Model = "first-model"
	second := config.Default().LLM
	second.Model = "second-model"

	a := Shared(first)
	b := Shared(second)

	if a != b {
		t.Fatal("Expected the same process-wide manager")
	}
	if a.GetModelName() != "first-model" {
		t.Errorf("Expected first configuration to win, got '%s'", a.GetModelName())
	}
}

func TestFactorySupportedProviders(t *testing.T) {
	for _, name := range NewLLMFactory(config.LLMConfig{}).GetSupportedProviders() {
		cfg := config.Default().LLM
		cfg.Provider = name
		provider, err := NewLLMFactory(cfg).CreateProvider()
		if err != nil {
			t.Fatalf("CreateProvider(%s) failed: %v", name, err)
		}
		if provider.GetProviderName() != name {
			t.Errorf("Expected provider '%s', got '%s'", name, provider.GetProviderName())
		}
	}
}

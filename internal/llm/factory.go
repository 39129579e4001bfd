package llm

import (
	"fmt"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/llm/providers"
)

// LLMFactory creates LLM provider instances
type LLMFactory struct {
	config config.LLMConfig
}

func NewLLMFactory(cfg config.LLMConfig) *LLMFactory {
	return &LLMFactory{config: cfg}
}

// CreateProvider creates an LLM provider based on the configuration
func (f *LLMFactory) CreateProvider() (Provider, error) {
	switch f.config.Provider {
	case "", "openrouter", "openai":
		return providers.NewOpenRouterProvider(f.config), nil
	case "claude":
		return providers.NewClaudeProvider(f.config), nil
	case "gemini":
		return providers.NewGeminiProvider(f.config), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", f.config.Provider)
	}
}

// GetSupportedProviders returns a list of supported LLM providers
func (f *LLMFactory) GetSupportedProviders() []string {
	return []string{"openrouter", "claude", "gemini"}
}

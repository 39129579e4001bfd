package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/config"
	"github.com/CMPUT-401-Hackathon-2026/job-application-organizer/internal/logging"
)

// ErrManagerStopped is returned by Generate after Stop
var ErrManagerStopped = errors.New("LLM manager stopped")

// Manager owns the process-wide generation client. The provider is built
// lazily from explicit configuration on first use and is never rebuilt.
type Manager struct {
	config  config.LLMConfig
	factory *LLMFactory
	limiter *rate.Limiter
	logger  logging.Logger

	once     sync.Once
	provider Provider
	initErr  error

	mu      sync.RWMutex
	healthy bool
	stopped bool
}

func NewManager(cfg config.LLMConfig) *Manager {
	m := &Manager{
		config:  cfg,
		factory: NewLLMFactory(cfg),
		logger:  logging.GetGlobalLogger().WithField("component", "llm"),
	}
	if cfg.RateLimit > 0 {
		m.limiter = rate.NewLimiter(rate.Limit(float64(cfg.RateLimit)/60.0), 1)
	}
	return m
}

// NewManagerWithProvider wraps an already-built provider
func NewManagerWithProvider(cfg config.LLMConfig, provider Provider) *Manager {
	m := NewManager(cfg)
	m.once.Do(func() {
		m.provider = provider
		m.healthy = true
	})
	return m
}

var (
	sharedOnce    sync.Once
	sharedManager *Manager
)

// Shared returns the single process-wide manager. The first caller's
// configuration wins; later calls ignore cfg.
func Shared(cfg config.LLMConfig) *Manager {
	sharedOnce.Do(func() {
		sharedManager = NewManager(cfg)
	})
	return sharedManager
}

func (m *Manager) init() (Provider, error) {
	m.once.Do(func() {
		provider, err := m.factory.CreateProvider()
		if err != nil {
			m.initErr = fmt.Errorf("failed to create LLM provider: %w", err)
			return
		}

		healthy := provider.IsHealthy(context.Background()) == nil

		m.mu.Lock()
		m.provider = provider
		m.healthy = healthy
		m.mu.Unlock()

		m.logger.Info("LLM provider initialized", map[string]interface{}{
			"provider": provider.GetProviderName(),
			"model":    provider.GetModelName(),
		})
	})
	return m.provider, m.initErr
}

// Start initializes the provider eagerly and checks its configuration. An
// unhealthy provider is logged, not fatal.
func (m *Manager) Start() error {
	provider, err := m.init()
	if err != nil {
		return err
	}

	if err := provider.IsHealthy(context.Background()); err != nil {
		m.logger.Warn("LLM provider health check failed - generation requests will fail", map[string]interface{}{
			"provider": provider.GetProviderName(),
			"error":    err.Error(),
		})
		return nil
	}

	m.logger.Info("LLM manager started successfully", map[string]interface{}{
		"provider": provider.GetProviderName(),
	})
	return nil
}

// Stop shuts down the manager. The provider is not rebuilt afterwards.
func (m *Manager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Info("Stopping LLM manager")
	m.stopped = true
	m.healthy = false
	return nil
}

// Generate sends one prompt. There are no retries; failures are returned as
// *UpstreamError from the provider.
func (m *Manager) Generate(ctx context.Context, prompt string, opts GenerateOptions) (string, error) {
	m.mu.RLock()
	stopped := m.stopped
	m.mu.RUnlock()
	if stopped {
		return "", ErrManagerStopped
	}

	provider, err := m.init()
	if err != nil {
		return "", err
	}

	if m.limiter != nil {
		if err := m.limiter.Wait(ctx); err != nil {
			return "", fmt.Errorf("rate limiter: %w", err)
		}
	}

	start := time.Now()
	text, err := provider.Generate(ctx, prompt, opts)

	fields := map[string]interface{}{
		"provider":      provider.GetProviderName(),
		"model":         provider.GetModelName(),
		"prompt_chars":  len(prompt),
		"duration_ms":   time.Since(start).Milliseconds(),
		"response_size": len(text),
	}
	if err != nil {
		fields["error"] = err.Error()
		m.logger.Error("Generation request failed", fields)
		return "", err
	}

	m.logger.Debug("Generation request completed", fields)
	return text, nil
}

// IsHealthy checks if the LLM manager and provider are healthy
func (m *Manager) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.healthy && !m.stopped && m.provider != nil
}

// GetProviderName returns the configured provider name without building it
func (m *Manager) GetProviderName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetProviderName()
	}
	if m.config.Provider == "" {
		return "openrouter"
	}
	return m.config.Provider
}

func (m *Manager) GetModelName() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.provider != nil {
		return m.provider.GetModelName()
	}
	return m.config.Model
}

// Package hub holds no-op-safe stand-ins for the connector-hub collaborators
// the harness links against: provider configuration, credential lookup,
// payload validation and telemetry spans. None of them are on the benchmark
// measurement path.
package hub

import (
	"fmt"
	"os"
	"strings"
	"sync"
)

// ProviderConfig describes one upstream provider.
type ProviderConfig struct {
	Provider string
	Endpoint string
	Models   []string
	Settings map[string]string
}

// ErrUnknownProvider is returned for providers outside the static catalogue.
var ErrUnknownProvider = fmt.Errorf("unknown provider")

// ErrCredentialNotFound is returned when no credential is configured.
var ErrCredentialNotFound = fmt.Errorf("credential not found")

var knownProviders = map[string]ProviderConfig{
	"openai": {
		Provider: "openai",
		Endpoint: "https://api.openai.com/v1",
		Models:   []string{"gpt-4", "gpt-4o", "gpt-3.5-turbo"},
	},
	"anthropic": {
		Provider: "anthropic",
		Endpoint: "https://api.anthropic.com/v1",
		Models:   []string{"claude-3-opus", "claude-3-sonnet"},
	},
	"google": {
		Provider: "google",
		Endpoint: "https://generativelanguage.googleapis.com/v1",
		Models:   []string{"gemini-pro"},
	},
	"azure": {
		Provider: "azure",
		Endpoint: "https://example.openai.azure.com",
		Models:   []string{"gpt-4"},
	},
	"bedrock": {
		Provider: "bedrock",
		Endpoint: "https://bedrock-runtime.us-east-1.amazonaws.com",
		Models:   []string{"anthropic.claude-v2"},
	},
}

// ConfigAdapter resolves provider configuration with a per-adapter cache.
type ConfigAdapter struct {
	mu    sync.Mutex
	cache map[string]ProviderConfig
}

func NewConfigAdapter() *ConfigAdapter {
	return &ConfigAdapter{cache: make(map[string]ProviderConfig)}
}

// LoadProviderConfig returns the static configuration for provider.
func (a *ConfigAdapter) LoadProviderConfig(provider string) (ProviderConfig, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if cfg, ok := a.cache[provider]; ok {
		return cfg, nil
	}
	cfg, ok := knownProviders[provider]
	if !ok {
		return ProviderConfig{}, fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	a.cache[provider] = cfg
	return cfg, nil
}

// GetCredential reads <PROVIDER>_<NAME> from the environment, uppercased.
func (a *ConfigAdapter) GetCredential(provider, name string) (string, error) {
	key := strings.ToUpper(provider) + "_" + strings.ToUpper(name)
	if v := os.Getenv(key); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("%w: %s", ErrCredentialNotFound, key)
}

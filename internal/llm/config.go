package llm

import (
	"fmt"
	"os"
	"time"
)

// Provider names accepted by Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// VendorConfig is the per-backend connection setting.
type VendorConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// RetryConfig controls exponential backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `mapstructure:"max_attempts"`
	InitialWait time.Duration `mapstructure:"initial_wait"`
	MaxWait     time.Duration `mapstructure:"max_wait"`
	Multiplier  float64       `mapstructure:"multiplier"`
}

// Config selects and configures one backend.
type Config struct {
	Provider   string        `mapstructure:"provider"`
	Anthropic  VendorConfig  `mapstructure:"anthropic"`
	OpenAI     VendorConfig  `mapstructure:"openai"`
	Gemini     VendorConfig  `mapstructure:"gemini"`
	OpenRouter VendorConfig  `mapstructure:"openrouter"`
	Retry      RetryConfig   `mapstructure:"retry"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// DefaultConfig returns the defaults used when nothing is configured.
// Provider is left empty: no backend is chosen until a key is found.
func DefaultConfig() Config {
	return Config{
		Anthropic:  VendorConfig{Model: "claude-haiku"},
		OpenAI:     VendorConfig{Model: "gpt-4o-mini"},
		Gemini:     VendorConfig{Model: "gemini-flash"},
		OpenRouter: VendorConfig{Model: "google/gemini-2.5-flash"},
		Retry: RetryConfig{
			MaxAttempts: 3,
			InitialWait: time.Second,
			MaxWait:     10 * time.Second,
			Multiplier:  2,
		},
		Timeout: 30 * time.Second,
	}
}

// Vendor returns the settings of the selected backend.
func (c Config) Vendor() VendorConfig {
	switch c.Provider {
	case ProviderAnthropic:
		return c.Anthropic
	case ProviderOpenAI:
		return c.OpenAI
	case ProviderGemini:
		return c.Gemini
	case ProviderOpenRouter:
		return c.OpenRouter
	}
	return VendorConfig{}
}

// Configured reports whether a backend has been selected.
func (c Config) Configured() bool {
	return c.Provider != ""
}

// Discover fills in the first backend whose conventional API key variable
// is set, checked in the order Gemini, OpenAI, Anthropic, OpenRouter. cfg
// is returned unchanged when a provider is already selected or no key is
// found.
func Discover(cfg Config) Config {
	if cfg.Configured() {
		return cfg
	}
	probes := []struct {
		env      string
		provider string
		vendor   *VendorConfig
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			if p.vendor.APIKey == "" {
				p.vendor.APIKey = k
			}
			return cfg
		}
	}
	return cfg
}

// Validate checks that the selected backend can be constructed.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMock:
		return nil
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.Vendor().APIKey == "" {
			return fmt.Errorf("llm.%s.api_key is required for the %s provider", c.Provider, c.Provider)
		}
		return nil
	case "":
		return fmt.Errorf("no LLM provider configured")
	}
	return fmt.Errorf("unknown LLM provider: %q", c.Provider)
}

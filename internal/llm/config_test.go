package llm

import (
	"context"
	"testing"

	"go.uber.org/zap"
)

func clearKeyEnv(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func TestDiscover(t *testing.T) {
	clearKeyEnv(t)
	if cfg := Discover(DefaultConfig()); cfg.Configured() {
		t.Fatalf("expected nothing discovered, got %q", cfg.Provider)
	}

	t.Setenv("ANTHROPIC_API_KEY", "a-key")
	t.Setenv("OPENROUTER_API_KEY", "r-key")
	cfg := Discover(DefaultConfig())
	if cfg.Provider != ProviderAnthropic || cfg.Vendor().APIKey != "a-key" {
		t.Fatalf("expected anthropic discovered, got %q %+v", cfg.Provider, cfg.Vendor())
	}

	t.Setenv("GEMINI_API_KEY", "g-key")
	if cfg := Discover(DefaultConfig()); cfg.Provider != ProviderGemini {
		t.Fatalf("gemini should win, got %q", cfg.Provider)
	}
}

func TestDiscover_KeepsExplicitProvider(t *testing.T) {
	clearKeyEnv(t)
	t.Setenv("GEMINI_API_KEY", "g-key")

	in := DefaultConfig()
	in.Provider = ProviderOpenAI
	in.OpenAI.APIKey = "o-key"
	if out := Discover(in); out.Provider != ProviderOpenAI || out.OpenAI.APIKey != "o-key" {
		t.Fatalf("explicit provider overridden: %+v", out)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"unset", func(c *Config) {}, true},
		{"mock", func(c *Config) { c.Provider = ProviderMock }, false},
		{"missing key", func(c *Config) { c.Provider = ProviderOpenAI }, true},
		{"with key", func(c *Config) { c.Provider = ProviderGemini; c.Gemini.APIKey = "k" }, false},
		{"unknown", func(c *Config) { c.Provider = "watson" }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock
	p, err := New(context.Background(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != ProviderMock {
		t.Fatalf("unexpected model %q", p.ModelID())
	}

	cfg.Provider = ProviderAnthropic
	if _, err := New(context.Background(), cfg, zap.NewNop()); err == nil {
		t.Fatal("expected error without an API key")
	}
}

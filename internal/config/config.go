// Package config loads settings from defaults, an optional YAML file,
// CALIBRATE_* environment variables and command-line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/calibrate-app/calibrate/internal/coach"
	"github.com/calibrate-app/calibrate/internal/llm"
	"github.com/calibrate-app/calibrate/internal/logging"
)

// EnvPrefix is prepended to every environment variable, e.g.
// CALIBRATE_ROUND_SIZE for round.size.
const EnvPrefix = "CALIBRATE"

// Config is the top-level configuration.
type Config struct {
	Bank  BankConfig  `mapstructure:"bank"`
	Round RoundConfig `mapstructure:"round"`
	Log   LogConfig   `mapstructure:"log"`
	Coach CoachConfig `mapstructure:"coach"`
	LLM   llm.Config  `mapstructure:"llm"`
}

// BankConfig locates the question bank.
type BankConfig struct {
	Path string `mapstructure:"path"`
}

// RoundConfig shapes each round.
type RoundConfig struct {
	Size          int    `mapstructure:"size"`
	Category      string `mapstructure:"category"`
	Seed          uint64 `mapstructure:"seed"` // 0 picks a new order every round
	RevealAnswers bool   `mapstructure:"reveal_answers"`
}

// LogConfig controls the log file.
type LogConfig struct {
	File       string `mapstructure:"file"`
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// CoachConfig toggles the LLM coach.
type CoachConfig struct {
	Enabled      bool `mapstructure:"enabled"`
	coach.Config `mapstructure:",squash"`
}

// Options tells Load where to look.
type Options struct {
	// File is an explicit config file. When empty, calibrate.yaml is looked
	// up in the working directory and the user config dir.
	File string

	// Flags, when set, overrides keys from the flags named in FlagKeys.
	Flags *pflag.FlagSet

	// SearchPaths replaces the default lookup directories.
	SearchPaths []string
}

// FlagKeys maps command-line flag names to config keys.
var FlagKeys = map[string]string{
	"bank":           "bank.path",
	"size":           "round.size",
	"category":       "round.category",
	"seed":           "round.seed",
	"reveal-answers": "round.reveal_answers",
	"log-file":       "log.file",
	"log-level":      "log.level",
	"coach":          "coach.enabled",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bank.path", "questions.csv")

	v.SetDefault("round.size", 40)
	v.SetDefault("round.category", "")
	v.SetDefault("round.seed", 0)
	v.SetDefault("round.reveal_answers", false)

	v.SetDefault("log.file", logging.DefaultFile())
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size_mb", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 7)

	cc := coach.DefaultConfig()
	v.SetDefault("coach.enabled", true)
	v.SetDefault("coach.max_tokens", cc.MaxTokens)
	v.SetDefault("coach.temperature", cc.Temperature)

	// Every llm key needs a default so AutomaticEnv can see it.
	lc := llm.DefaultConfig()
	v.SetDefault("llm.provider", lc.Provider)
	v.SetDefault("llm.timeout", lc.Timeout)
	v.SetDefault("llm.retry.max_attempts", lc.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", lc.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", lc.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", lc.Retry.Multiplier)
	for name, vendor := range map[string]llm.VendorConfig{
		llm.ProviderAnthropic:  lc.Anthropic,
		llm.ProviderOpenAI:     lc.OpenAI,
		llm.ProviderGemini:     lc.Gemini,
		llm.ProviderOpenRouter: lc.OpenRouter,
	} {
		v.SetDefault("llm."+name+".api_key", vendor.APIKey)
		v.SetDefault("llm."+name+".model", vendor.Model)
		v.SetDefault("llm."+name+".base_url", vendor.BaseURL)
	}
}

// Load resolves the configuration. A missing config file is not an error
// unless it was named explicitly.
func Load(opts Options) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("calibrate")
		paths := opts.SearchPaths
		if paths == nil {
			paths = defaultSearchPaths()
		}
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if opts.Flags != nil {
		for name, key := range FlagKeys {
			f := opts.Flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag --%s: %w", name, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	cfg.LLM = llm.Discover(cfg.LLM)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later in a confusing way.
func (c *Config) Validate() error {
	var errs []error
	if c.Bank.Path == "" {
		errs = append(errs, fmt.Errorf("bank.path must be set"))
	}
	if c.Round.Size < 1 {
		errs = append(errs, fmt.Errorf("round.size must be at least 1, got %d", c.Round.Size))
	}
	if c.Log.MaxSizeMB < 0 || c.Log.MaxBackups < 0 || c.Log.MaxAgeDays < 0 {
		errs = append(errs, fmt.Errorf("log rotation limits must not be negative"))
	}
	return errors.Join(errs...)
}

// Logging converts the log section for the logging package.
func (c *Config) Logging() logging.Options {
	return logging.Options{
		File:       c.Log.File,
		Level:      c.Log.Level,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxBackups: c.Log.MaxBackups,
		MaxAgeDays: c.Log.MaxAgeDays,
	}
}

// CoachEnabled reports whether the coach is both wanted and usable.
func (c *Config) CoachEnabled() bool {
	return c.Coach.Enabled && c.LLM.Configured()
}

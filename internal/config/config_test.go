package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/calibrate-app/calibrate/internal/llm"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, k := range []string{"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibrate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load(Options{SearchPaths: []string{}})
	require.NoError(t, err)

	assert.Equal(t, "questions.csv", cfg.Bank.Path)
	assert.Equal(t, 40, cfg.Round.Size)
	assert.False(t, cfg.Round.RevealAnswers)
	assert.Equal(t, uint64(0), cfg.Round.Seed)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10, cfg.Log.MaxSizeMB)
	assert.True(t, cfg.Coach.Enabled)
	assert.Equal(t, 600, cfg.Coach.MaxTokens)
	assert.Equal(t, 3, cfg.LLM.Retry.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.False(t, cfg.LLM.Configured())
	assert.False(t, cfg.CoachEnabled())
}

func TestLoad_FileEnvAndFlags(t *testing.T) {
	isolate(t)
	path := writeFile(t, `
bank:
  path: banks/trivia.yaml
round:
  size: 10
  category: History
  reveal_answers: true
log:
  level: debug
llm:
  provider: openai
  timeout: 5s
  openai:
    api_key: from-file
    model: gpt-4.1-mini
`)
	t.Setenv("CALIBRATE_ROUND_SIZE", "12")
	t.Setenv("CALIBRATE_LLM_OPENAI_API_KEY", "from-env")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("bank", "", "")
	flags.String("log-file", "", "")
	require.NoError(t, flags.Parse([]string{"--bank", "cli.csv"}))

	cfg, err := Load(Options{File: path, Flags: flags})
	require.NoError(t, err)

	assert.Equal(t, "cli.csv", cfg.Bank.Path, "flag beats file")
	assert.Equal(t, 12, cfg.Round.Size, "env beats file")
	assert.Equal(t, "History", cfg.Round.Category)
	assert.True(t, cfg.Round.RevealAnswers)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.NotEmpty(t, cfg.Log.File, "unset flag keeps the default")

	assert.Equal(t, llm.ProviderOpenAI, cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.LLM.OpenAI.APIKey)
	assert.Equal(t, "gpt-4.1-mini", cfg.LLM.OpenAI.Model)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.CoachEnabled())
}

func TestLoad_DiscoversProviderFromStandardKey(t *testing.T) {
	isolate(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")

	cfg, err := Load(Options{SearchPaths: []string{}})
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderAnthropic, cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.Anthropic.APIKey)
	assert.Equal(t, "claude-haiku", cfg.LLM.Anthropic.Model)
}

func TestLoad_SearchPath(t *testing.T) {
	isolate(t)
	path := writeFile(t, "round:\n  size: 5\n")

	cfg, err := Load(Options{SearchPaths: []string{filepath.Dir(path)}})
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Round.Size)
}

func TestLoad_Errors(t *testing.T) {
	isolate(t)

	_, err := Load(Options{File: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err, "an explicit file must exist")

	_, err = Load(Options{File: writeFile(t, "round: [unclosed\n")})
	assert.Error(t, err)

	_, err = Load(Options{File: writeFile(t, "round:\n  size: 0\n")})
	assert.ErrorContains(t, err, "round.size")
}

func TestLogging(t *testing.T) {
	cfg := &Config{Log: LogConfig{File: "x.log", Level: "warn", MaxSizeMB: 1, MaxBackups: 2, MaxAgeDays: 3}}
	opts := cfg.Logging()
	assert.Equal(t, "x.log", opts.File)
	assert.Equal(t, "warn", opts.Level)
	assert.Equal(t, 3, opts.MaxAgeDays)
}

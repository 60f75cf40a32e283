// Package coach asks an LLM to comment on a finished round's calibration.
// It is optional: the results screen works without it.
package coach

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/llm"
	"github.com/calibrate-app/calibrate/internal/scoring"
)

// Feedback is the coach's reply.
type Feedback struct {
	Headline     string   `json:"headline"`
	Observations []string `json:"observations"`
	Tip          string   `json:"tip"`
}

// Config holds generation settings.
type Config struct {
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// DefaultConfig returns the settings used when none are configured.
func DefaultConfig() Config {
	return Config{MaxTokens: 600, Temperature: 0.4}
}

// Service produces Feedback for scored rounds.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      *zap.Logger
}

// NewService returns a coach backed by provider.
func NewService(provider llm.Provider, cfg Config, log *zap.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Model returns the model the coach talks to.
func (s *Service) Model() string {
	return s.provider.ModelID()
}

// Review asks for feedback on res. It blocks until the provider answers or
// ctx is done.
func (s *Service) Review(ctx context.Context, res *scoring.Result) (*Feedback, error) {
	if res == nil || res.Total == 0 {
		return nil, &scoring.EmptyRoundError{}
	}

	resp, err := s.provider.Generate(llm.WithPurpose(ctx, "coach"), llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(BuildPrompt(res)),
		Schema:      FeedbackSchema,
		MaxTokens:   s.cfg.MaxTokens,
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("coach review: %w", err)
	}

	var fb Feedback
	if err := resp.Decode(&fb); err != nil {
		return nil, fmt.Errorf("coach review: %w", err)
	}
	s.log.Debug("coach feedback received",
		zap.Int("observations", len(fb.Observations)),
		zap.String("verdict", string(res.Verdict)))
	return &fb, nil
}

package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/coach"
	"github.com/calibrate-app/calibrate/internal/config"
	"github.com/calibrate-app/calibrate/internal/llm"
	"github.com/calibrate-app/calibrate/internal/logging"
	"github.com/calibrate-app/calibrate/internal/question"
)

var rootCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Confidence calibration trainer",
	Long: `Calibrate asks two-choice questions, has you state how sure you are,
and shows how well your confidence matches how often you are right.`,
	SilenceUsage: true,
	RunE:         runPlay,
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to a YAML config file (default: ./calibrate.yaml)")
	pf.String("bank", "", "Question bank file (.csv, .json, .yaml)")
	pf.String("log-file", "", "Log file path")
	pf.String("log-level", "", "Log level: debug, info, warn, error")

	pf.Int("size", 0, "Questions per round")
	pf.String("category", "", "Only ask questions from this category")
	pf.Uint64("seed", 0, "Shuffle seed (0 picks a new order every round)")
	pf.Bool("reveal-answers", false, "Show the correct answer after each question")
	pf.Bool("coach", true, "Offer LLM feedback on results when a provider is configured")
	pf.String("export-dir", "", "Write each round's responses CSV and chart HTML here")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig resolves configuration for cmd, honouring --config and every
// flag listed in config.FlagKeys that the user set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{File: file, Flags: cmd.Flags()})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// loadBank reads and validates the question bank at path.
func loadBank(ctx context.Context, path string) ([]question.Question, error) {
	loader, err := question.NewLoader(path)
	if err != nil {
		return nil, err
	}
	qs, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load question bank: %w", err)
	}
	return qs, nil
}

// newLogger builds the file logger described by cfg.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	log, err := logging.New(cfg.Logging())
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	return log, nil
}

// newCoach returns nil when the coach is disabled or no LLM is set up.
// Provider errors are reported but do not stop the app.
func newCoach(ctx context.Context, cfg *config.Config, log *zap.Logger) *coach.Service {
	if !cfg.CoachEnabled() {
		log.Info("coach disabled", zap.Bool("enabled", cfg.Coach.Enabled), zap.Bool("llm", cfg.LLM.Configured()))
		return nil
	}
	provider, err := llm.New(ctx, cfg.LLM, log)
	if err != nil {
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Coach feedback will be unavailable.")
		log.Warn("coach unavailable", zap.Error(err))
		return nil
	}
	return coach.NewService(provider, cfg.Coach.Config, log.Named("coach"))
}

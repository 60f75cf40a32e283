package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/app"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the calibration trainer (default)",
	RunE:  runPlay,
}

// runPlay loads config, logger, question bank and coach, then launches
// the TUI.
func runPlay(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	questions, err := loadBank(ctx, cfg.Bank.Path)
	if err != nil {
		log.Error("question bank rejected", zap.String("path", cfg.Bank.Path), zap.Error(err))
		return err
	}
	log.Info("question bank loaded",
		zap.String("path", cfg.Bank.Path),
		zap.Int("questions", len(questions)))

	opts := app.Options{
		Config:    cfg,
		Questions: questions,
		Logger:    log,
	}
	opts.ExportDir, _ = cmd.Flags().GetString("export-dir")
	if c := newCoach(ctx, cfg, log); c != nil {
		opts.Coach = c
	}

	return app.Run(ctx, opts)
}

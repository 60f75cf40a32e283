package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/calibrate-app/calibrate/internal/question"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the question bank and print a summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		qs, err := loadBank(cmd.Context(), cfg.Bank.Path)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s: %d questions OK\n", cfg.Bank.Path, len(qs))

		counts := question.CountByCategory(qs)
		cats := question.Categories(qs)
		sort.Strings(cats)
		if len(cats) > 0 {
			fmt.Fprintln(out)
			fmt.Fprintf(out, "%-24s  %s\n", "Category", "Questions")
			fmt.Fprintln(out, strings.Repeat("─", 36))
			for _, c := range cats {
				fmt.Fprintf(out, "%-24s  %d\n", c, counts[c])
			}
		}

		pool, err := question.Select(qs, question.SelectOptions{Category: cfg.Round.Category})
		if err != nil {
			fmt.Fprintf(out, "\nwarning: %v\n", err)
			return nil
		}
		if n := len(pool); n < cfg.Round.Size {
			fmt.Fprintf(out, "\nnote: rounds will be shortened to %d questions (round size is %d)\n", n, cfg.Round.Size)
		}
		return nil
	},
}

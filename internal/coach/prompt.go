package coach

import (
	"fmt"
	"strings"

	"github.com/calibrate-app/calibrate/internal/scoring"
)

const systemPrompt = `You coach people on probability calibration.
The player answered two-option questions and gave a confidence of 55, 65, 75, 85 or 95 percent for each.
A well-calibrated player is right about 75% of the time when they say 75%.
Be specific and encouraging. Refer to the numbers you are given; do not invent others.
The Brier score ranges from 0 (perfect) to 1; always answering 50% would score 0.25.`

// BuildPrompt describes a scored round for the model.
func BuildPrompt(res *scoring.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Questions answered: %d\n", res.Total)
	fmt.Fprintf(&b, "Overall accuracy: %.1f%%\n", res.Accuracy*100)
	fmt.Fprintf(&b, "Mean stated confidence: %.1f%%\n", res.MeanConfidence()*100)
	fmt.Fprintf(&b, "Brier score: %.3f\n", res.Brier)
	fmt.Fprintf(&b, "Overall verdict: %s\n", res.Verdict)

	b.WriteString("\nBy confidence level:\n")
	for _, bk := range res.Buckets {
		fmt.Fprintf(&b, "- said %d%%: %d of %d correct (%.1f%%), %s\n",
			bk.Confidence.Percent(), bk.Correct, bk.Count, bk.Accuracy()*100,
			scoring.BucketVerdict(bk, scoring.DefaultTolerance))
	}

	if len(res.Categories) > 1 {
		b.WriteString("\nBy category:\n")
		for _, c := range res.Categories {
			name := c.Category
			if name == "" {
				name = "uncategorized"
			}
			fmt.Fprintf(&b, "- %s: %d of %d correct, Brier %.3f\n", name, c.Correct, c.Count, c.Brier)
		}
	}

	return b.String()
}

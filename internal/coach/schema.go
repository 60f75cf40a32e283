package coach

import "github.com/calibrate-app/calibrate/internal/llm"

// FeedbackSchema is the reply shape requested from the model.
var FeedbackSchema = &llm.Schema{
	Name:        "calibration-feedback",
	Description: "Short coaching feedback on how well stated confidence matched accuracy",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"headline": map[string]any{
				"type":        "string",
				"description": "One sentence summary of the player's calibration (under 15 words)",
			},
			"observations": map[string]any{
				"type":        "array",
				"items":       map[string]any{"type": "string"},
				"description": "2-4 concrete observations that cite confidence levels or categories",
			},
			"tip": map[string]any{
				"type":        "string",
				"description": "One actionable suggestion for the next round",
			},
		},
		"required":             []any{"headline", "observations", "tip"},
		"additionalProperties": false,
	},
}

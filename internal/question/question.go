package question

import (
	"context"
	"strings"
)

// Kind describes how a question's two options are presented.
type Kind string

const (
	// KindTrueFalse is a statement judged True or False.
	KindTrueFalse Kind = "tf"

	// KindEither asks the player to pick one of two named options.
	KindEither Kind = "either"
)

// Question is a single binary trivia question. Questions are created by a
// Loader and never mutated afterwards.
type Question struct {
	// ID uniquely identifies the question within its bank.
	ID string

	// Category is an optional grouping label, e.g. "Animals" or "History".
	Category string

	// Prompt is the text shown to the player.
	Prompt string

	// Kind is KindTrueFalse or KindEither.
	Kind Kind

	// Options holds the two candidate answers in display order.
	// For KindTrueFalse this is {"True", "False"}.
	Options [2]string

	// Correct is the index (0 or 1) of the correct entry in Options.
	Correct int
}

// CorrectOption returns the text of the correct answer.
func (q Question) CorrectOption() string {
	return q.Options[q.Correct]
}

// HasOption reports whether answer is one of the question's two options.
func (q Question) HasOption(answer string) bool {
	return answer != "" && (answer == q.Options[0] || answer == q.Options[1])
}

// IsCorrect reports whether answer matches the correct option.
func (q Question) IsCorrect(answer string) bool {
	return answer == q.CorrectOption()
}

// OptionIndex returns the index of answer in Options, or -1.
func (q Question) OptionIndex(answer string) int {
	for i, o := range q.Options {
		if o == answer {
			return i
		}
	}
	return -1
}

// Loader yields validated questions from some backing source.
type Loader interface {
	Load(ctx context.Context) ([]Question, error)
}

// Categories returns the distinct non-empty categories in first-seen order.
func Categories(questions []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range questions {
		if q.Category == "" || seen[q.Category] {
			continue
		}
		seen[q.Category] = true
		out = append(out, q.Category)
	}
	return out
}

// CountByCategory returns the number of questions per category. Questions
// without a category are counted under the empty string.
func CountByCategory(questions []Question) map[string]int {
	counts := make(map[string]int)
	for _, q := range questions {
		counts[q.Category]++
	}
	return counts
}

// normalizeKind maps the various spellings found in banks to a Kind.
func normalizeKind(raw string, options [2]string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "tf", "truefalse", "true_false", "true/false", "bool":
		return KindTrueFalse
	case "either", "ab", "a/b", "choice":
		return KindEither
	}
	if strings.EqualFold(options[0], "true") && strings.EqualFold(options[1], "false") {
		return KindTrueFalse
	}
	return KindEither
}

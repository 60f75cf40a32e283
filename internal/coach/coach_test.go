package coach

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/llm"
	"github.com/calibrate-app/calibrate/internal/question"
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/scoring"
)

func sub(id, cat string, conf round.Confidence, correct bool) round.Submission {
	return round.Submission{
		Question:   question.Question{ID: id, Category: cat, Options: [2]string{"A", "B"}},
		Answer:     "A",
		Confidence: conf,
		Correct:    correct,
	}
}

func sampleResult(t *testing.T) *scoring.Result {
	t.Helper()
	res, err := scoring.Evaluate([]round.Submission{
		sub("q1", "Geography", round.Conf95, false),
		sub("q2", "Geography", round.Conf95, true),
		sub("q3", "History", round.Conf55, true),
	})
	require.NoError(t, err)
	return res
}

func TestReview(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(
		`{"headline":"Too sure at 95%","observations":["1 of 2 at 95%"],"tip":"Use 75% more"}`,
	)})
	svc := NewService(mock, DefaultConfig(), zap.NewNop())

	fb, err := svc.Review(context.Background(), sampleResult(t))
	require.NoError(t, err)
	assert.Equal(t, "Too sure at 95%", fb.Headline)
	assert.Equal(t, []string{"1 of 2 at 95%"}, fb.Observations)
	assert.Equal(t, "Use 75% more", fb.Tip)

	calls := mock.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, FeedbackSchema, calls[0].Schema)
	assert.Equal(t, DefaultConfig().MaxTokens, calls[0].MaxTokens)
	assert.Contains(t, calls[0].Messages[0].Content, "said 95%: 1 of 2 correct")
}

func TestReview_SchemaMismatch(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(`{"headline":"x"}`)})
	svc := NewService(mock, DefaultConfig(), zap.NewNop())

	_, err := svc.Review(context.Background(), sampleResult(t))
	var inv *llm.ErrInvalidResponse
	assert.True(t, errors.As(err, &inv), "got %v", err)
}

func TestReview_ProviderError(t *testing.T) {
	svc := NewService(llm.NewMockProvider(), DefaultConfig(), zap.NewNop())

	_, err := svc.Review(context.Background(), sampleResult(t))
	var unavail *llm.ErrProviderUnavailable
	assert.True(t, errors.As(err, &unavail), "got %v", err)
}

func TestReview_EmptyResult(t *testing.T) {
	mock := llm.NewMockProvider()
	svc := NewService(mock, DefaultConfig(), zap.NewNop())

	_, err := svc.Review(context.Background(), &scoring.Result{})
	var empty *scoring.EmptyRoundError
	assert.True(t, errors.As(err, &empty))
	assert.Zero(t, mock.CallCount())
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(sampleResult(t))

	assert.Contains(t, p, "Questions answered: 3")
	assert.Contains(t, p, "Overall accuracy: 66.7%")
	assert.Contains(t, p, "said 55%: 1 of 1 correct (100.0%), underconfident")
	assert.Contains(t, p, "said 95%: 1 of 2 correct (50.0%), overconfident")
	assert.Contains(t, p, "- History: 1 of 1 correct")
}

func TestBuildPrompt_SingleCategoryOmitsBreakdown(t *testing.T) {
	res, err := scoring.Evaluate([]round.Submission{sub("q1", "", round.Conf75, true)})
	require.NoError(t, err)
	assert.NotContains(t, BuildPrompt(res), "By category")
}

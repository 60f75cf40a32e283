// Package scoring turns a round's submissions into calibration metrics.
// Every function here is pure: the same submissions always give the same
// result and the input is never modified.
package scoring

import (
	"fmt"
	"sort"

	"github.com/calibrate-app/calibrate/internal/round"
)

// EmptyRoundError is returned when scoring is requested for zero submissions.
type EmptyRoundError struct{}

func (e *EmptyRoundError) Error() string {
	return "cannot score an empty round"
}

// Bucket groups the submissions made at one confidence level.
type Bucket struct {
	Confidence round.Confidence
	Count      int
	Correct    int
}

// Accuracy returns Correct / Count. Buckets are never empty.
func (b Bucket) Accuracy() float64 {
	if b.Count == 0 {
		return 0
	}
	return float64(b.Correct) / float64(b.Count)
}

// Gap returns accuracy minus stated confidence, as a fraction. Negative
// means overconfident.
func (b Bucket) Gap() float64 {
	return b.Accuracy() - b.Confidence.Fraction()
}

// OverallAccuracy returns the fraction of correct submissions.
func OverallAccuracy(subs []round.Submission) (float64, error) {
	if len(subs) == 0 {
		return 0, &EmptyRoundError{}
	}
	correct := 0
	for _, s := range subs {
		if s.Correct {
			correct++
		}
	}
	return float64(correct) / float64(len(subs)), nil
}

// CalibrationTable groups submissions by confidence level. Only levels that
// were actually used appear, in ascending order.
func CalibrationTable(subs []round.Submission) []Bucket {
	byLevel := make(map[round.Confidence]*Bucket)
	for _, s := range subs {
		b, ok := byLevel[s.Confidence]
		if !ok {
			b = &Bucket{Confidence: s.Confidence}
			byLevel[s.Confidence] = b
		}
		b.Count++
		if s.Correct {
			b.Correct++
		}
	}

	out := make([]Bucket, 0, len(byLevel))
	for _, b := range byLevel {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Confidence < out[j].Confidence
	})
	return out
}

// BrierScore returns the mean squared difference between each stated
// confidence (as a fraction) and its outcome (1 correct, 0 wrong).
func BrierScore(subs []round.Submission) (float64, error) {
	if len(subs) == 0 {
		return 0, &EmptyRoundError{}
	}
	var sum float64
	for _, s := range subs {
		outcome := 0.0
		if s.Correct {
			outcome = 1
		}
		d := s.Confidence.Fraction() - outcome
		sum += d * d
	}
	return sum / float64(len(subs)), nil
}

// Result is the full scoring output for one round.
type Result struct {
	Total      int
	Correct    int
	Accuracy   float64
	Brier      float64
	Buckets    []Bucket
	Categories []CategoryStats
	Verdict    Verdict
}

// Evaluate computes every metric for subs.
func Evaluate(subs []round.Submission) (*Result, error) {
	acc, err := OverallAccuracy(subs)
	if err != nil {
		return nil, err
	}
	brier, err := BrierScore(subs)
	if err != nil {
		return nil, err
	}
	buckets := CalibrationTable(subs)

	correct := 0
	for _, s := range subs {
		if s.Correct {
			correct++
		}
	}

	return &Result{
		Total:      len(subs),
		Correct:    correct,
		Accuracy:   acc,
		Brier:      brier,
		Buckets:    buckets,
		Categories: CategoryBreakdown(subs),
		Verdict:    OverallVerdict(buckets, DefaultTolerance),
	}, nil
}

// MeanConfidence returns the average stated confidence as a fraction.
func (r *Result) MeanConfidence() float64 {
	if r.Total == 0 {
		return 0
	}
	var sum float64
	for _, b := range r.Buckets {
		sum += b.Confidence.Fraction() * float64(b.Count)
	}
	return sum / float64(r.Total)
}

func (b Bucket) String() string {
	return fmt.Sprintf("%s: %d/%d (%.1f%%)", b.Confidence, b.Correct, b.Count, b.Accuracy()*100)
}

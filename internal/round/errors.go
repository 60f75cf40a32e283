package round

import (
	"errors"
	"fmt"
)

// ErrRoundComplete is returned by Current once every question was answered.
var ErrRoundComplete = errors.New("round complete")

// InvalidRoundError indicates a round could not be started.
type InvalidRoundError struct {
	Requested int
	Available int
}

func (e *InvalidRoundError) Error() string {
	if e.Requested < 1 {
		return fmt.Sprintf("invalid round: need at least 1 question, requested %d", e.Requested)
	}
	return fmt.Sprintf("invalid round: requested %d questions, only %d available", e.Requested, e.Available)
}

// SubmissionReason classifies why a submission was rejected.
type SubmissionReason string

const (
	ReasonMissingConfidence SubmissionReason = "missing-confidence"
	ReasonInvalidConfidence SubmissionReason = "invalid-confidence"
	ReasonInvalidAnswer     SubmissionReason = "invalid-answer"
	ReasonRoundComplete     SubmissionReason = "round-complete"
	ReasonNotStarted        SubmissionReason = "not-started"
)

// InvalidSubmissionError indicates a submission was rejected. The session is
// left exactly as it was before the call.
type InvalidSubmissionError struct {
	Reason SubmissionReason
	Detail string
}

func (e *InvalidSubmissionError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("invalid submission: %s", e.Reason)
	}
	return fmt.Sprintf("invalid submission: %s: %s", e.Reason, e.Detail)
}

// IsInvalidSubmission reports whether err is an *InvalidSubmissionError.
func IsInvalidSubmission(err error) bool {
	var se *InvalidSubmissionError
	return errors.As(err, &se)
}

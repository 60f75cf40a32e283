package round

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/calibrate-app/calibrate/internal/question"
)

// State is the lifecycle phase of a Session.
type State int

const (
	StateNotStarted State = iota // zero Session, never started
	StateInProgress              // at least one question left
	StateComplete                // every question answered; terminal
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateComplete:
		return "complete"
	default:
		return "not-started"
	}
}

// Submission is one committed answer. It is immutable once returned.
type Submission struct {
	Question   question.Question
	Answer     string
	Confidence Confidence
	Correct    bool
}

// Session holds the state of one round: its question sequence, the
// submissions collected so far and the current position.
//
// A Session is owned by a single caller and is not safe for concurrent use.
// len(submissions) == position at all times.
type Session struct {
	id          string
	startedAt   time.Time
	questions   []question.Question
	submissions []Submission
	position    int
}

// Start creates a session over the first n questions. It fails with
// *InvalidRoundError when n < 1 or fewer than n questions are supplied.
func Start(questions []question.Question, n int) (*Session, error) {
	if n < 1 || len(questions) < n {
		return nil, &InvalidRoundError{Requested: n, Available: len(questions)}
	}

	qs := make([]question.Question, n)
	copy(qs, questions[:n])

	return &Session{
		id:          uuid.New().String(),
		startedAt:   time.Now(),
		questions:   qs,
		submissions: make([]Submission, 0, n),
	}, nil
}

// ID returns the session's unique identifier.
func (s *Session) ID() string { return s.id }

// StartedAt returns when the session was started.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Len returns the number of questions in the round.
func (s *Session) Len() int { return len(s.questions) }

// Position returns the index of the current question, which equals the
// number of submissions so far.
func (s *Session) Position() int { return s.position }

// State returns the lifecycle phase.
func (s *Session) State() State {
	switch {
	case len(s.questions) == 0:
		return StateNotStarted
	case s.position >= len(s.questions):
		return StateComplete
	default:
		return StateInProgress
	}
}

// IsComplete reports whether every question has been answered.
func (s *Session) IsComplete() bool {
	return s.State() == StateComplete
}

// Current returns the question at the current position, or ErrRoundComplete.
func (s *Session) Current() (question.Question, error) {
	switch s.State() {
	case StateNotStarted:
		return question.Question{}, fmt.Errorf("round not started")
	case StateComplete:
		return question.Question{}, ErrRoundComplete
	}
	return s.questions[s.position], nil
}

// Questions returns a copy of the round's question sequence.
func (s *Session) Questions() []question.Question {
	out := make([]question.Question, len(s.questions))
	copy(out, s.questions)
	return out
}

// Submissions returns a copy of the submissions collected so far.
func (s *Session) Submissions() []Submission {
	out := make([]Submission, len(s.submissions))
	copy(out, s.submissions)
	return out
}

// Submit records the answer and confidence for the current question and
// advances. All checks run before any mutation, so a rejected submission
// leaves the session unchanged.
func (s *Session) Submit(answer string, conf Confidence) (Submission, error) {
	switch s.State() {
	case StateNotStarted:
		return Submission{}, &InvalidSubmissionError{Reason: ReasonNotStarted}
	case StateComplete:
		return Submission{}, &InvalidSubmissionError{
			Reason: ReasonRoundComplete,
			Detail: fmt.Sprintf("all %d questions already answered", len(s.questions)),
		}
	}

	if !conf.IsSet() {
		return Submission{}, &InvalidSubmissionError{Reason: ReasonMissingConfidence}
	}
	if !conf.Valid() {
		return Submission{}, &InvalidSubmissionError{
			Reason: ReasonInvalidConfidence,
			Detail: fmt.Sprintf("%d%% is not an allowed level", int(conf)),
		}
	}

	q := s.questions[s.position]
	if !q.HasOption(answer) {
		return Submission{}, &InvalidSubmissionError{
			Reason: ReasonInvalidAnswer,
			Detail: fmt.Sprintf("%q is not an option for question %s", answer, q.ID),
		}
	}

	sub := Submission{
		Question:   q,
		Answer:     answer,
		Confidence: conf,
		Correct:    q.IsCorrect(answer),
	}
	s.submissions = append(s.submissions, sub)
	s.position++
	return sub, nil
}

// CorrectSoFar returns the number of correct submissions so far.
func (s *Session) CorrectSoFar() int {
	n := 0
	for _, sub := range s.submissions {
		if sub.Correct {
			n++
		}
	}
	return n
}

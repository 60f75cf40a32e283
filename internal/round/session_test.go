package round

import (
	"errors"
	"fmt"
	"testing"

	"github.com/calibrate-app/calibrate/internal/question"
)

func testQuestions(n int) []question.Question {
	qs := make([]question.Question, n)
	for i := range qs {
		qs[i] = question.Question{
			ID:      fmt.Sprintf("q%d", i+1),
			Prompt:  fmt.Sprintf("Question %d?", i+1),
			Kind:    question.KindTrueFalse,
			Options: [2]string{"True", "False"},
			Correct: i % 2,
		}
	}
	return qs
}

func TestStart(t *testing.T) {
	s, err := Start(testQuestions(5), 3)
	if err != nil {
		t.Fatalf("Start: %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("Len() = %d, want 3", s.Len())
	}
	if s.Position() != 0 {
		t.Errorf("Position() = %d, want 0", s.Position())
	}
	if s.State() != StateInProgress {
		t.Errorf("State() = %s, want in-progress", s.State())
	}
	if s.ID() == "" {
		t.Error("expected a session ID")
	}
	if s.StartedAt().IsZero() {
		t.Error("expected StartedAt to be set")
	}
}

func TestStart_InvalidSize(t *testing.T) {
	for _, tc := range []struct {
		available, requested int
	}{
		{5, 0},
		{5, -1},
		{3, 4},
		{0, 1},
	} {
		_, err := Start(testQuestions(tc.available), tc.requested)
		var inv *InvalidRoundError
		if !errors.As(err, &inv) {
			t.Fatalf("Start(%d of %d) err = %v, want *InvalidRoundError", tc.requested, tc.available, err)
		}
		if inv.Requested != tc.requested || inv.Available != tc.available {
			t.Errorf("InvalidRoundError = %+v, want requested %d available %d", inv, tc.requested, tc.available)
		}
	}
}

func TestZeroSessionNotStarted(t *testing.T) {
	var s Session
	if s.State() != StateNotStarted {
		t.Errorf("State() = %s, want not-started", s.State())
	}
	if _, err := s.Current(); err == nil {
		t.Error("Current() on zero session should fail")
	}
	_, err := s.Submit("True", Conf75)
	var inv *InvalidSubmissionError
	if !errors.As(err, &inv) || inv.Reason != ReasonNotStarted {
		t.Errorf("Submit err = %v, want not-started", err)
	}
}

func TestSubmit_AdvancesAndScores(t *testing.T) {
	s, _ := Start(testQuestions(3), 3)

	sub, err := s.Submit("True", Conf85)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !sub.Correct {
		t.Error("q1 answered True should be correct")
	}
	if sub.Question.ID != "q1" || sub.Confidence != Conf85 {
		t.Errorf("submission = %+v", sub)
	}

	sub, err = s.Submit("True", Conf55)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if sub.Correct {
		t.Error("q2 answered True should be incorrect")
	}

	if s.Position() != 2 {
		t.Errorf("Position() = %d, want 2", s.Position())
	}
	if got := len(s.Submissions()); got != s.Position() {
		t.Errorf("len(Submissions()) = %d, want Position() = %d", got, s.Position())
	}
	if s.CorrectSoFar() != 1 {
		t.Errorf("CorrectSoFar() = %d, want 1", s.CorrectSoFar())
	}

	q, err := s.Current()
	if err != nil || q.ID != "q3" {
		t.Errorf("Current() = %v, %v; want q3", q.ID, err)
	}
}

func TestSubmit_RejectionsLeaveSessionUnchanged(t *testing.T) {
	s, _ := Start(testQuestions(2), 2)

	tests := []struct {
		name   string
		answer string
		conf   Confidence
		reason SubmissionReason
	}{
		{"missing confidence", "True", Unset, ReasonMissingConfidence},
		{"off-level confidence", "True", Confidence(70), ReasonInvalidConfidence},
		{"out of range confidence", "True", Confidence(100), ReasonInvalidConfidence},
		{"empty answer", "", Conf75, ReasonInvalidAnswer},
		{"unknown answer", "Maybe", Conf75, ReasonInvalidAnswer},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Submit(tc.answer, tc.conf)
			if !IsInvalidSubmission(err) {
				t.Fatalf("err = %v, want invalid submission", err)
			}
			var inv *InvalidSubmissionError
			errors.As(err, &inv)
			if inv.Reason != tc.reason {
				t.Errorf("reason = %s, want %s", inv.Reason, tc.reason)
			}
			if s.Position() != 0 || len(s.Submissions()) != 0 {
				t.Errorf("session mutated: position %d, %d submissions", s.Position(), len(s.Submissions()))
			}
		})
	}
}

func TestSubmit_AfterComplete(t *testing.T) {
	s, _ := Start(testQuestions(1), 1)
	if _, err := s.Submit("False", Conf95); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if !s.IsComplete() {
		t.Fatal("single-question round should be complete after one submission")
	}
	if _, err := s.Current(); !errors.Is(err, ErrRoundComplete) {
		t.Errorf("Current() err = %v, want ErrRoundComplete", err)
	}

	_, err := s.Submit("True", Conf55)
	var inv *InvalidSubmissionError
	if !errors.As(err, &inv) || inv.Reason != ReasonRoundComplete {
		t.Fatalf("err = %v, want round-complete", err)
	}
	if len(s.Submissions()) != 1 {
		t.Errorf("submissions = %d, want 1", len(s.Submissions()))
	}
}

func TestSessionCopiesAreIndependent(t *testing.T) {
	src := testQuestions(2)
	s, _ := Start(src, 2)
	src[0].Prompt = "changed"

	if s.Questions()[0].Prompt == "changed" {
		t.Error("session shares the caller's question slice")
	}

	qs := s.Questions()
	qs[1].ID = "mutated"
	if s.Questions()[1].ID != "q2" {
		t.Error("Questions() exposes internal state")
	}
}

func TestStartGivesDistinctIDs(t *testing.T) {
	a, _ := Start(testQuestions(1), 1)
	b, _ := Start(testQuestions(1), 1)
	if a.ID() == b.ID() {
		t.Errorf("two sessions share ID %s", a.ID())
	}
}

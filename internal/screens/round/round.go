package round

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/question"
	rnd "github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/scoring"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/ui/components"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota
	phaseFeedback
	phaseConfirmQuit
	phaseDone
)

// RoundScreen asks the round's questions one at a time.
type RoundScreen struct {
	session *rnd.Session
	reveal  bool
	log     *zap.Logger

	phase   phase
	current question.Question
	answer  components.OptionPicker
	conf    components.ConfidencePicker
	last    rnd.Submission
	errMsg  string
}

var (
	_ screen.Screen          = (*RoundScreen)(nil)
	_ screen.KeyHintProvider = (*RoundScreen)(nil)
	_ screen.StatusProvider  = (*RoundScreen)(nil)
	_ screen.EscapeHandler   = (*RoundScreen)(nil)
)

// New returns a screen driving session. With reveal set, the correct
// answer is shown after each submission.
func New(session *rnd.Session, reveal bool, log *zap.Logger) *RoundScreen {
	s := &RoundScreen{session: session, reveal: reveal, log: log}
	s.loadCurrent()
	return s
}

func (s *RoundScreen) Init() tea.Cmd {
	s.log.Info("round started",
		zap.String("session", s.session.ID()),
		zap.Int("questions", s.session.Len()))
	return nil
}

func (s *RoundScreen) Title() string { return "Round" }

func (s *RoundScreen) HandlesEscape() bool { return true }

func (s *RoundScreen) Status() string {
	n := min(s.session.Position()+1, s.session.Len())
	return fmt.Sprintf("Q %d/%d", n, s.session.Len())
}

// loadCurrent resets the pickers for the question at the session's
// position. Neither an answer nor a confidence is preselected.
func (s *RoundScreen) loadCurrent() {
	q, err := s.session.Current()
	if err != nil {
		return
	}
	s.current = q
	s.answer = components.NewOptionPicker(q.Options)
	s.conf = components.ConfidencePicker{}
	s.errMsg = ""
}

func (s *RoundScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}
	key := kmsg.String()

	switch s.phase {
	case phaseConfirmQuit:
		switch key {
		case "y", "Y":
			return s, s.abandon()
		case "n", "N", "esc":
			s.phase = phaseAnswering
		}
		return s, nil

	case phaseFeedback:
		return s, s.advance()

	case phaseDone:
		return s, nil
	}

	switch key {
	case "esc":
		s.phase = phaseConfirmQuit
		return s, nil
	case "enter":
		return s, s.submit()
	}

	var handled bool
	if s.answer, handled = s.answer.Update(msg); handled {
		s.errMsg = ""
		return s, nil
	}
	if s.conf, handled = s.conf.Update(msg); handled {
		s.errMsg = ""
	}
	return s, nil
}

func (s *RoundScreen) submit() tea.Cmd {
	sub, err := s.session.Submit(s.answer.Chosen(), s.conf.Value)
	if err != nil {
		s.errMsg = submissionMessage(err)
		s.log.Debug("submission rejected", zap.Error(err))
		return nil
	}
	s.last = sub
	s.log.Debug("answer submitted",
		zap.String("question", sub.Question.ID),
		zap.Int("confidence", sub.Confidence.Percent()),
		zap.Bool("correct", sub.Correct))

	if s.reveal {
		s.phase = phaseFeedback
		return nil
	}
	return s.advance()
}

// advance moves on after a submission: to the next question, or to the
// results when the round is complete.
func (s *RoundScreen) advance() tea.Cmd {
	if !s.session.IsComplete() {
		s.phase = phaseAnswering
		s.loadCurrent()
		return nil
	}

	s.phase = phaseDone
	subs := s.session.Submissions()
	res, err := scoring.Evaluate(subs)
	if err == nil {
		s.log.Info("round complete",
			zap.String("session", s.session.ID()),
			zap.Int("correct", res.Correct),
			zap.Int("total", res.Total),
			zap.Float64("brier", res.Brier),
			zap.String("verdict", string(res.Verdict)),
			zap.Duration("elapsed", time.Since(s.session.StartedAt())))
	}
	msg := CompletedMsg{SessionID: s.session.ID(), Submissions: subs, Result: res, Err: err}
	return func() tea.Msg { return msg }
}

func (s *RoundScreen) abandon() tea.Cmd {
	msg := AbandonedMsg{
		SessionID: s.session.ID(),
		Answered:  s.session.Position(),
		Total:     s.session.Len(),
	}
	return tea.Batch(
		func() tea.Msg { return msg },
		router.Cmd(router.PopScreenMsg{}),
	)
}

// submissionMessage turns a rejected submission into a prompt for the
// player.
func submissionMessage(err error) string {
	var inv *rnd.InvalidSubmissionError
	if !errors.As(err, &inv) {
		return err.Error()
	}
	switch inv.Reason {
	case rnd.ReasonMissingConfidence:
		return "Choose how confident you are (← → or 5-9)."
	case rnd.ReasonInvalidAnswer:
		return "Choose an answer first (↑ ↓, 1/2 or a/b)."
	}
	return inv.Error()
}

func (s *RoundScreen) KeyHints() []layout.KeyHint {
	switch s.phase {
	case phaseConfirmQuit:
		return []layout.KeyHint{
			{Key: "Y", Description: "Abandon round"},
			{Key: "N", Description: "Keep going"},
		}
	case phaseFeedback:
		return []layout.KeyHint{{Key: "any key", Description: "Continue"}}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Answer"},
		{Key: "←→", Description: "Confidence"},
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Quit"},
	}
}

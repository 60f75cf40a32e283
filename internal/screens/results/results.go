package results

import (
	"context"
	"time"

	"charm.land/bubbles/v2/spinner"
	"charm.land/bubbles/v2/table"
	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/coach"
	"github.com/calibrate-app/calibrate/internal/export"
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/scoring"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/screens/responses"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
)

// Reviewer produces coaching feedback for a finished round.
type Reviewer interface {
	Review(ctx context.Context, res *scoring.Result) (*coach.Feedback, error)
	Model() string
}

// Options configures a ResultsScreen. Coach may be nil.
type Options struct {
	Result      *scoring.Result
	Submissions []round.Submission
	Coach       Reviewer
	Timeout     time.Duration
	Exported    *export.Files
	ExportErr   error
	Log         *zap.Logger
}

type coachState int

const (
	coachIdle coachState = iota
	coachLoading
	coachReady
	coachFailed
)

// feedbackMsg carries the outcome of a coach review.
type feedbackMsg struct {
	feedback *coach.Feedback
	err      error
}

// ResultsScreen shows the metrics of a finished round.
type ResultsScreen struct {
	opts    Options
	buckets table.Model
	body    viewport.Model
	spin    spinner.Model

	coach    coachState
	feedback *coach.Feedback
	coachErr error
}

var (
	_ screen.Screen          = (*ResultsScreen)(nil)
	_ screen.KeyHintProvider = (*ResultsScreen)(nil)
	_ screen.StatusProvider  = (*ResultsScreen)(nil)
)

// New returns a results screen for opts.Result.
func New(opts Options) *ResultsScreen {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = time.Minute
	}
	return &ResultsScreen{
		opts:    opts,
		buckets: newBucketTable(opts.Result.Buckets),
		body:    viewport.New(),
		spin:    spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
}

func (s *ResultsScreen) Init() tea.Cmd { return nil }

func (s *ResultsScreen) Title() string { return "Results" }

func (s *ResultsScreen) Status() string {
	return string(s.opts.Result.Verdict)
}

// CoachFeedback returns the feedback received so far, if any.
func (s *ResultsScreen) CoachFeedback() *coach.Feedback { return s.feedback }

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case feedbackMsg:
		if msg.err != nil {
			s.coach = coachFailed
			s.coachErr = msg.err
			s.opts.Log.Warn("coach review failed", zap.Error(msg.err))
		} else {
			s.coach = coachReady
			s.feedback = msg.feedback
		}
		return s, nil

	case spinner.TickMsg:
		if s.coach != coachLoading {
			return s, nil
		}
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd

	case tea.KeyPressMsg:
		switch msg.String() {
		case "enter", "q":
			return s, router.Cmd(router.PopScreenMsg{})
		case "r":
			return s, router.Cmd(router.PushScreenMsg{Screen: responses.New(s.opts.Submissions)})
		case "c":
			return s, s.requestReview()
		}
		var cmd tea.Cmd
		s.body, cmd = s.body.Update(msg)
		return s, cmd
	}
	return s, nil
}

// requestReview starts a coach review unless one is running or done.
func (s *ResultsScreen) requestReview() tea.Cmd {
	if s.opts.Coach == nil || s.coach == coachLoading || s.coach == coachReady {
		return nil
	}
	s.coach = coachLoading
	s.coachErr = nil

	reviewer, res, timeout := s.opts.Coach, s.opts.Result, s.opts.Timeout
	review := func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		fb, err := reviewer.Review(ctx, res)
		return feedbackMsg{feedback: fb, err: err}
	}
	return tea.Batch(review, s.spin.Tick)
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "R", Description: "Responses"},
	}
	if s.opts.Coach != nil && s.coach != coachReady {
		hints = append(hints, layout.KeyHint{Key: "C", Description: "Coach"})
	}
	return append(hints, layout.KeyHint{Key: "Enter", Description: "Home"})
}

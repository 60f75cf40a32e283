// Package app wires the screens into the root Bubble Tea model.
package app

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"go.uber.org/zap"

	"github.com/calibrate-app/calibrate/internal/config"
	"github.com/calibrate-app/calibrate/internal/export"
	"github.com/calibrate-app/calibrate/internal/question"
	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/screens/home"
	"github.com/calibrate-app/calibrate/internal/screens/results"
	roundscreen "github.com/calibrate-app/calibrate/internal/screens/round"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
)

// Options holds the dependencies of the TUI.
type Options struct {
	Config    *config.Config
	Questions []question.Question
	Logger    *zap.Logger

	// Coach is nil when no LLM is configured or the coach is disabled.
	Coach results.Reviewer

	// ExportDir, when set, receives a CSV and an HTML chart per round.
	ExportDir string

	now func() time.Time
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts   Options
	router *router.Router
	home   *home.HomeScreen
	width  int
	height int
}

func newAppModel(opts Options) AppModel {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.now == nil {
		opts.now = time.Now
	}
	m := AppModel{opts: opts}
	m.home = home.New(home.Options{
		BankPath:  opts.Config.Bank.Path,
		Questions: opts.Questions,
		RoundSize: opts.Config.Round.Size,
		Category:  opts.Config.Round.Category,
		NewRound:  m.newRound,
	})
	m.router = router.New(m.home)
	return m
}

// newRound draws a question sequence and returns the screen that plays
// it. The round is shortened when the bank holds fewer questions than
// the configured size.
func (m AppModel) newRound() (screen.Screen, error) {
	rc := m.opts.Config.Round
	seed := rc.Seed
	if seed == 0 {
		seed = uint64(m.opts.now().UnixNano())
	}
	qs, err := question.Select(m.opts.Questions, question.SelectOptions{
		Count:    rc.Size,
		Category: rc.Category,
		Shuffle:  true,
		Seed:     seed,
	})
	if err != nil {
		return nil, err
	}

	n := min(rc.Size, len(qs))
	if n < rc.Size {
		m.opts.Logger.Info("round shortened to fit the bank",
			zap.Int("requested", rc.Size), zap.Int("available", n))
	}
	sess, err := round.Start(qs, n)
	if err != nil {
		return nil, err
	}
	return roundscreen.New(sess, rc.RevealAnswers, m.opts.Logger.Named("round")), nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if h, ok := m.router.Active().(screen.EscapeHandler); ok && h.HandlesEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, router.Cmd(router.PopScreenMsg{})
			}
			return m, nil
		}

	case roundscreen.CompletedMsg:
		return m, m.roundCompleted(msg)

	case roundscreen.AbandonedMsg:
		m.opts.Logger.Info("round abandoned",
			zap.String("session", msg.SessionID),
			zap.Int("answered", msg.Answered),
			zap.Int("total", msg.Total))
		m.home.RecordAbandoned(msg.Answered, msg.Total)
		return m, nil
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

// roundCompleted exports the round if asked to, records it on the home
// screen and swaps the round screen for its results.
func (m AppModel) roundCompleted(msg roundscreen.CompletedMsg) tea.Cmd {
	log := m.opts.Logger
	if msg.Err != nil {
		log.Error("scoring round", zap.String("session", msg.SessionID), zap.Error(msg.Err))
		return router.Cmd(router.PopScreenMsg{})
	}

	opts := results.Options{
		Result:      msg.Result,
		Submissions: msg.Submissions,
		Coach:       m.opts.Coach,
		Timeout:     m.opts.Config.LLM.Timeout,
		Log:         log.Named("results"),
	}
	if m.opts.ExportDir != "" {
		files, err := export.Round(m.opts.ExportDir, msg.Submissions, msg.Result, m.opts.now())
		if err != nil {
			log.Warn("export failed", zap.String("dir", m.opts.ExportDir), zap.Error(err))
			opts.ExportErr = err
		} else {
			log.Info("round exported",
				zap.String("responses", files.Responses),
				zap.String("chart", files.Chart))
			opts.Exported = &files
		}
	}

	m.home.RecordResult(msg.Result)
	return router.Cmd(router.ReplaceScreenMsg{Screen: results.New(opts)})
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	var title, status string
	if active != nil {
		title = active.Title()
	}
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	var hints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		hints = kp.KeyHints()
	} else if m.router.Depth() > 1 {
		hints = []layout.KeyHint{{Key: "Esc", Description: "Back"}}
	}
	hints = append(hints, layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	footer := layout.RenderFooter(hints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	v.SetContent(layout.RenderFrame(header, content, footer, m.width, m.height))
	return v
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

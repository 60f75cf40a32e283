package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/question"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/scoring"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/screens/howto"
	"github.com/calibrate-app/calibrate/internal/ui/components"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

// Options configures the home screen.
type Options struct {
	BankPath  string
	Questions []question.Question
	RoundSize int
	Category  string

	// NewRound builds the screen for a fresh round. Its error is shown in
	// place of starting the round.
	NewRound func() (screen.Screen, error)
}

// HomeScreen shows the bank summary and the main menu.
type HomeScreen struct {
	opts    Options
	menu    components.Menu
	last    *scoring.Result
	rounds  int
	quit    string
	errMsg  string
	summary []string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New returns the home screen.
func New(opts Options) *HomeScreen {
	h := &HomeScreen{opts: opts, summary: bankSummary(opts)}
	h.menu = components.NewMenu([]components.MenuItem{
		{Label: "START ROUND", Action: h.startRound, Disabled: opts.NewRound == nil},
		{Label: "HOW IT WORKS", Action: func() tea.Cmd {
			return router.Cmd(router.PushScreenMsg{Screen: howto.New()})
		}},
		{Label: "QUIT", Action: func() tea.Cmd { return tea.Quit }},
	})
	return h
}

func (h *HomeScreen) startRound() tea.Cmd {
	s, err := h.opts.NewRound()
	if err != nil {
		h.errMsg = err.Error()
		return nil
	}
	h.errMsg = ""
	return router.Cmd(router.PushScreenMsg{Screen: s})
}

// RecordResult shows res as the most recent round.
func (h *HomeScreen) RecordResult(res *scoring.Result) {
	h.last = res
	h.rounds++
	h.quit = ""
}

// RecordAbandoned notes a round the player left early. Nothing from it is
// scored.
func (h *HomeScreen) RecordAbandoned(answered, total int) {
	h.quit = fmt.Sprintf("Last round abandoned after %d of %d questions, not scored.", answered, total)
}

func (h *HomeScreen) Init() tea.Cmd { return nil }

func (h *HomeScreen) Title() string { return "Home" }

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := min(max(width-8, 40), 64)
	box := theme.Card.Width(cw)

	sections := []string{
		renderBanner(cw, height < 30),
		theme.Subtitle.Width(cw).Align(lipgloss.Center).
			Render("How well do you know what you know?"),
		box.Render(strings.Join(h.summary, "\n")),
	}
	if h.last != nil {
		sections = append(sections, box.Render(h.lastRoundLine()))
	}
	if h.quit != "" {
		sections = append(sections, theme.Hint.Width(cw).Align(lipgloss.Center).Render(h.quit))
	}
	sections = append(sections, box.Render(h.menu.View()))
	if h.errMsg != "" {
		sections = append(sections, theme.ErrorText.Width(cw).Render(h.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center, sections...))
}

func (h *HomeScreen) lastRoundLine() string {
	r := h.last
	return fmt.Sprintf("%s %d/%d correct · Brier %.3f · %s",
		theme.Label.Render(fmt.Sprintf("Round %d:", h.rounds)),
		r.Correct, r.Total, r.Brier, r.Verdict)
}

func bankSummary(opts Options) []string {
	counts := question.CountByCategory(opts.Questions)
	cats := question.Categories(opts.Questions)

	lines := []string{
		theme.Label.Render("Bank  ") + theme.Body.Render(opts.BankPath),
		theme.Label.Render("Size  ") + theme.Body.Render(fmt.Sprintf("%d questions", len(opts.Questions))),
	}
	if len(cats) > 0 {
		parts := make([]string, 0, len(cats))
		for _, c := range cats {
			parts = append(parts, fmt.Sprintf("%s (%d)", c, counts[c]))
		}
		lines = append(lines, theme.Label.Render("Topic ")+theme.Body.Render(strings.Join(parts, ", ")))
	}

	round := fmt.Sprintf("%d questions", opts.RoundSize)
	if opts.Category != "" {
		round += " from " + opts.Category
	}
	lines = append(lines, theme.Label.Render("Round ")+theme.Body.Render(round))
	return lines
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
	}
}

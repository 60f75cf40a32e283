package round

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/ui/components"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

func (s *RoundScreen) View(width, height int) string {
	var body string
	switch s.phase {
	case phaseConfirmQuit:
		body = theme.Dialog.Render(
			theme.Title.Render("Abandon this round?") + "\n\n" +
				theme.Body.Render(fmt.Sprintf("Your %d answers so far will be discarded.", s.session.Position())) + "\n\n" +
				theme.Hint.Render("y to abandon · n to keep going"))
	case phaseFeedback:
		body = s.renderFeedback()
	case phaseDone:
		body = theme.Hint.Render("Scoring…")
	default:
		body = s.renderQuestion(width)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *RoundScreen) renderQuestion(width int) string {
	w := min(width-8, 76)
	q := s.current

	var b strings.Builder
	b.WriteString(components.ProgressBar{Done: s.session.Position(), Total: s.session.Len(), Width: w}.View())
	b.WriteString("\n\n")
	if q.Category != "" {
		b.WriteString(theme.Label.Render(strings.ToUpper(q.Category)))
		b.WriteString("\n")
	}
	b.WriteString(theme.Body.Bold(true).Width(w).Render(q.Prompt))
	b.WriteString("\n\n")
	b.WriteString(s.answer.View(-1))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Render("How confident are you?"))
	b.WriteString("\n")
	b.WriteString(s.conf.View())
	b.WriteString("\n\n")
	if s.errMsg != "" {
		b.WriteString(theme.ErrorText.Render(s.errMsg))
	} else {
		b.WriteString(theme.Hint.Render("Pick an answer and a confidence, then press Enter."))
	}
	return lipgloss.NewStyle().Width(w).Render(b.String())
}

func (s *RoundScreen) renderFeedback() string {
	sub := s.last
	picker := components.OptionPicker{Options: sub.Question.Options, Selected: sub.Question.OptionIndex(sub.Answer)}

	verdict := theme.Incorrect.Render("Not this time")
	if sub.Correct {
		verdict = theme.Correct.Render("Correct")
	}

	return layout.Center(60, strings.Join([]string{
		verdict,
		"",
		theme.Body.Width(60).Render(sub.Question.Prompt),
		"",
		picker.View(sub.Question.Correct),
		"",
		theme.Subtitle.Render(fmt.Sprintf("You said %s.", sub.Confidence)),
		"",
		theme.Hint.Render("Press any key to continue."),
	}, "\n"))
}

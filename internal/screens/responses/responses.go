// Package responses lists every answer given in a round.
package responses

import (
	"fmt"
	"strconv"
	"strings"

	"charm.land/bubbles/v2/table"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/ui/layout"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

const promptWidth = 34

// Screen is a scrollable table of submissions with the selected
// question shown in full underneath.
type Screen struct {
	subs  []round.Submission
	table table.Model
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

func New(subs []round.Submission) *Screen {
	cols := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Question", Width: promptWidth},
		{Title: "You said", Width: 14},
		{Title: "Conf", Width: 5},
		{Title: "", Width: 2},
	}
	rows := make([]table.Row, 0, len(subs))
	for i, s := range subs {
		mark := "✗"
		if s.Correct {
			mark = "✓"
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			truncate(s.Question.Prompt, promptWidth),
			truncate(s.Answer, 14),
			s.Confidence.String(),
			mark,
		})
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Foreground(theme.Secondary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(theme.Border)
	styles.Selected = styles.Selected.Foreground(theme.Primary)

	return &Screen{
		subs: subs,
		table: table.New(
			table.WithColumns(cols),
			table.WithRows(rows),
			table.WithWidth(tableWidth(cols)),
			table.WithFocused(true),
			table.WithStyles(styles),
		),
	}
}

func tableWidth(cols []table.Column) int {
	w := 0
	for _, c := range cols {
		w += c.Width + 2
	}
	return w
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "Responses" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyPressMsg); ok {
		switch kmsg.String() {
		case "enter", "q":
			return s, router.Cmd(router.PopScreenMsg{})
		}
	}
	var cmd tea.Cmd
	s.table, cmd = s.table.Update(msg)
	return s, cmd
}

func (s *Screen) View(width, height int) string {
	if len(s.subs) == 0 {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No answers recorded."))
	}
	s.table.SetHeight(max(height-9, 3))

	detail := s.detail(s.subs[s.table.Cursor()])
	block := lipgloss.JoinVertical(lipgloss.Left, s.table.View(), "", detail)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, block)
}

func (s *Screen) detail(sub round.Submission) string {
	q := sub.Question
	result := theme.Incorrect.Render("incorrect")
	if sub.Correct {
		result = theme.Correct.Render("correct")
	}
	lines := []string{
		theme.Body.Bold(true).Width(64).Render(q.Prompt),
		fmt.Sprintf("You answered %s at %s: %s. Correct answer: %s.",
			sub.Answer, sub.Confidence, result, q.CorrectOption()),
	}
	if q.Category != "" {
		lines = append([]string{theme.Label.Render(strings.ToUpper(q.Category))}, lines...)
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Browse"},
		{Key: "Esc", Description: "Back"},
	}
}

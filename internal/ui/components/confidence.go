package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/round"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

// ConfidencePicker chooses one of the allowed confidence levels. It starts
// Unset.
type ConfidencePicker struct {
	Value round.Confidence
}

// Update handles ←/→ and the digits 5 to 9.
func (c ConfidencePicker) Update(msg tea.Msg) (ConfidencePicker, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return c, false
	}
	levels := round.Levels()
	key := kmsg.String()

	// "7" picks 75%.
	if len(key) == 1 && key >= "5" && key <= "9" {
		if lvl, err := round.ParseConfidence(key + "5"); err == nil {
			c.Value = lvl
			return c, true
		}
	}

	i := c.Value.Index()
	switch key {
	case "left", "h":
		if i < 0 {
			i = 0
		} else if i > 0 {
			i--
		}
	case "right", "l":
		if i < len(levels)-1 {
			i++
		}
	default:
		return c, false
	}
	c.Value = levels[max(i, 0)]
	return c, true
}

// View renders every level with the selected one highlighted.
func (c ConfidencePicker) View() string {
	cells := make([]string, 0, len(round.Levels()))
	for _, lvl := range round.Levels() {
		label := " " + lvl.String() + " "
		if lvl == c.Value {
			cells = append(cells, lipgloss.NewStyle().
				Background(theme.Accent).
				Foreground(theme.BgCard).
				Bold(true).
				Render(label))
		} else {
			cells = append(cells, lipgloss.NewStyle().
				Foreground(theme.Text).
				Render(label))
		}
	}
	return strings.Join(cells, lipgloss.NewStyle().Foreground(theme.Border).Render("│"))
}

package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

// NoChoice is OptionPicker.Selected before the player picks.
const NoChoice = -1

// OptionPicker chooses one of a question's two options. Nothing is
// selected initially.
type OptionPicker struct {
	Options  [2]string
	Selected int
}

// NewOptionPicker returns a picker with no selection.
func NewOptionPicker(options [2]string) OptionPicker {
	return OptionPicker{Options: options, Selected: NoChoice}
}

// Chosen returns the selected option text, or "" when none is selected.
func (p OptionPicker) Chosen() string {
	if p.Selected == NoChoice {
		return ""
	}
	return p.Options[p.Selected]
}

// Update handles ↑/↓, 1/2 and a/b.
func (p OptionPicker) Update(msg tea.Msg) (OptionPicker, bool) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return p, false
	}
	switch kmsg.String() {
	case "up", "k":
		p.Selected = 0
	case "down", "j":
		p.Selected = 1
	case "1", "a":
		p.Selected = 0
	case "2", "b":
		p.Selected = 1
	default:
		return p, false
	}
	return p, true
}

// View renders both options, the selected one highlighted. When reveal is
// a valid index the correct option is marked.
func (p OptionPicker) View(reveal int) string {
	labels := [2]string{"A", "B"}
	lines := make([]string, 2)
	for i, opt := range p.Options {
		mark := "○"
		if i == p.Selected {
			mark = "●"
		}
		line := fmt.Sprintf("%s  %s)  %s", mark, labels[i], opt)
		switch {
		case reveal >= 0 && i == reveal:
			lines[i] = theme.Correct.Render(line)
		case reveal >= 0 && i == p.Selected:
			lines[i] = theme.Incorrect.Render(line)
		case i == p.Selected:
			lines[i] = theme.Selected.Render(line)
		default:
			lines[i] = theme.Unselected.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}

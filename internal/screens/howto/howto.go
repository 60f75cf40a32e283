package howto

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/router"
	"github.com/calibrate-app/calibrate/internal/screen"
	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

var paragraphs = []string{
	"Each question has two possible answers. Pick the one you think is right, then say how sure you are: 55%, 65%, 75%, 85% or 95%.",
	"55% means barely better than a coin flip. 95% means you would be shocked to be wrong.",
	"When the round ends you see how often you were actually right at each confidence level. If you are well calibrated, the answers you gave at 75% are right about three times in four.",
	"Points below the dashed line mean you were overconfident at that level. Points above it mean you were underconfident.",
	"The Brier score sums it all up: 0 is perfect, and always saying 50% would score 0.25.",
}

// Screen explains the game.
type Screen struct{}

var _ screen.Screen = (*Screen)(nil)

// New returns the explanation screen.
func New() *Screen { return &Screen{} }

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return "How it works" }

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && (k.String() == "enter" || k.String() == "q") {
		return s, router.Cmd(router.PopScreenMsg{})
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	w := min(width-8, 72)
	body := theme.Body.Width(w).Render(strings.Join(paragraphs, "\n\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
}

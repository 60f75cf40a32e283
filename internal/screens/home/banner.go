package home

import (
	"charm.land/lipgloss/v2"

	"github.com/calibrate-app/calibrate/internal/ui/theme"
)

const bannerFull = ` ▄▄·  ▄▄▄· ▄▄▌  ▪  ▄▄▄▄· ▄▄▄   ▄▄▄· ▄▄▄▄▄▄▄▄ .
▐█ ▌▪▐█ ▀█ ██•  ██ ▐█ ▀█▪▀▄ █·▐█ ▀█ •██  ▀▄.▀·
██ ▄▄▄█▀▀█ ██▪  ▐█·▐█▀▀█▄▐▀▀▄ ▄█▀▀█  ▐█.▪▐▀▀▪▄
▐███▌▐█ ▪▐▌▐█▌▐▌▐█▌██▄▪▐█▐█•█▌▐█ ▪▐▌ ▐█▌·▐█▄▄▌
·▀▀▀  ▀  ▀ .▀▀▀ ▀▀▀·▀▀▀▀ .▀  ▀ ▀  ▀  ▀▀▀  ▀▀▀ `

const bannerCompact = "C A L I B R A T E"

// renderBanner returns the title art, or a one-line title when space is
// short.
func renderBanner(width int, compact bool) string {
	art := bannerFull
	if compact || width < lipgloss.Width(bannerFull) {
		art = bannerCompact
	}
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render(art)
}

// Package overlay centers modal content over the terminal.
package overlay

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cookbook/pkg/tui/theme"
)

// Place frames the body under a title and centers it in the given bounds.
func Place(width, height int, th theme.ModalTheme, title, body string) string {
	content := body
	if title != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, th.Title.Render(title), "", body)
	}
	box := th.Frame.Render(content)
	if width <= 0 || height <= 0 {
		return box
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

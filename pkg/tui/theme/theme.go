// Package theme centralizes Lip Gloss styles for the cookbook TUI.
package theme

import (
	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// Theme groups the styles used across the UI.
type Theme struct {
	Book   BookTheme
	Page   PageTheme
	Form   FormTheme
	Modal  ModalTheme
	Footer FooterTheme
}

// BookTheme styles the book frame and its page-edge shading.
type BookTheme struct {
	Frame lipgloss.Style
	Edge  lipgloss.Style
	Count lipgloss.Style
}

// PageTheme styles a single rendered page.
type PageTheme struct {
	Title        lipgloss.Style
	Date         lipgloss.Style
	Ingredient   lipgloss.Style
	Checked      lipgloss.Style
	Cursor       lipgloss.Style
	Instructions lipgloss.Style
	Welcome      lipgloss.Style
}

// FormTheme styles the add/edit form fields.
type FormTheme struct {
	Label      lipgloss.Style
	Focused    lipgloss.Style
	Error      lipgloss.Style
	Help       lipgloss.Style
	SaveButton lipgloss.Style
}

// ModalTheme styles centered modal overlays.
type ModalTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// Default returns the built-in theme. Page-edge shading is derived from a
// parchment base blended toward the terminal background so the stacked-page
// effect reads on both light and dark terminals.
func Default() Theme {
	focus := lipgloss.Color("212")

	base, _ := colorful.Hex("#d8c9a3")
	toward, _ := colorful.Hex("#1a1a1a")
	if !termenv.HasDarkBackground() {
		toward, _ = colorful.Hex("#f5f0e0")
	}
	edge := lipgloss.Color(base.BlendLuv(toward, 0.55).Hex())

	return Theme{
		Book: BookTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(1, 3),
			Edge:  lipgloss.NewStyle().Foreground(edge),
			Count: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Page: PageTheme{
			Title:        lipgloss.NewStyle().Bold(true).Underline(true),
			Date:         lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Italic(true),
			Ingredient:   lipgloss.NewStyle(),
			Checked:      lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true),
			Cursor:       lipgloss.NewStyle().Foreground(focus),
			Instructions: lipgloss.NewStyle(),
			Welcome:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Form: FormTheme{
			Label:      lipgloss.NewStyle().Bold(true),
			Focused:    lipgloss.NewStyle().Foreground(focus),
			Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
			Help:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			SaveButton: lipgloss.NewStyle().Foreground(focus).Bold(true),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(focus).
				Padding(1, 2),
			Title: lipgloss.NewStyle().Bold(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
		},
	}
}

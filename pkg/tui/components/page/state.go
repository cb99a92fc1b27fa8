// Package page renders a single cookbook page: one recipe, or the welcome
// placeholder when the book is empty.
package page

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/tui/theme"
)

// State holds the displayed recipe plus the ephemeral check-off marks.
// Marks are keyed by ingredient position and are discarded whenever the
// displayed recipe identity changes; they are never persisted.
type State struct {
	theme theme.PageTheme

	recipe  *recipe.Recipe
	checked map[int]bool
	cursor  int
}

// NewState returns an empty page showing the welcome placeholder.
func NewState(th theme.PageTheme) *State {
	return &State{
		theme:   th,
		checked: make(map[int]bool),
	}
}

// Recipe returns the currently displayed recipe, or nil for the welcome page.
func (s *State) Recipe() *recipe.Recipe {
	return s.recipe
}

// SetRecipe swaps the displayed recipe. Check-off state and the ingredient
// cursor reset whenever the recipe identity changes, including transitions
// to and from the welcome page.
func (s *State) SetRecipe(r *recipe.Recipe) {
	prevID := ""
	if s.recipe != nil {
		prevID = s.recipe.ID
	}
	nextID := ""
	if r != nil {
		nextID = r.ID
	}
	s.recipe = r
	if prevID != nextID {
		s.checked = make(map[int]bool)
		s.cursor = 0
	}
	s.clampCursor()
}

// MoveCursor shifts the ingredient cursor, clamped to the ingredient list.
func (s *State) MoveCursor(delta int) {
	s.cursor += delta
	s.clampCursor()
}

// ToggleCurrent flips the check mark under the cursor. Other marks are
// untouched.
func (s *State) ToggleCurrent() {
	if s.recipe == nil || len(s.recipe.Ingredients) == 0 {
		return
	}
	s.checked[s.cursor] = !s.checked[s.cursor]
}

// Checked reports whether the ingredient at position i is marked off.
func (s *State) Checked(i int) bool {
	return s.checked[i]
}

func (s *State) clampCursor() {
	limit := 0
	if s.recipe != nil {
		limit = len(s.recipe.Ingredients) - 1
	}
	if s.cursor > limit {
		s.cursor = limit
	}
	if s.cursor < 0 {
		s.cursor = 0
	}
}

// View renders the page body at the given width.
func (s *State) View(width int) string {
	if width < 20 {
		width = 20
	}
	if s.recipe == nil {
		return s.viewWelcome(width)
	}

	var lines []string
	lines = append(lines, s.theme.Title.Render(s.recipe.Title))
	if date := s.recipe.DateAdded.FormatDate(); date != "" {
		lines = append(lines, s.theme.Date.Render(date))
	}
	lines = append(lines, "")

	for i, ing := range s.recipe.Ingredients {
		mark := "[ ]"
		style := s.theme.Ingredient
		if s.checked[i] {
			mark = "[x]"
			style = s.theme.Checked
		}
		pointer := "  "
		if i == s.cursor {
			pointer = s.theme.Cursor.Render("> ")
		}
		lines = append(lines, fmt.Sprintf("%s%s %s", pointer, mark, style.Render(ing)))
	}
	lines = append(lines, "")

	wrapped := wordwrap.String(s.recipe.Instructions, width)
	lines = append(lines, s.theme.Instructions.Render(wrapped))

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}

func (s *State) viewWelcome(width int) string {
	welcome := strings.Join([]string{
		"Welcome to your cookbook.",
		"",
		"Flip through your recipes with the arrow keys.",
		"Press 'a' to add the first one.",
	}, "\n")
	return lipgloss.NewStyle().Width(width).Render(s.theme.Welcome.Render(welcome))
}

// Package form collects a recipe draft for the add and edit flows.
package form

import (
	"strings"

	"github.com/charmbracelet/bubbles/v2/textarea"
	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/tui/theme"
)

type focusField int

const (
	fieldTitle focusField = iota
	fieldIngredients
	fieldInstructions
	fieldSave
)

// SubmittedMsg carries a validated draft up to the application root.
// ID is empty for the add flow.
type SubmittedMsg struct {
	ID    string
	Draft recipe.Draft
}

// Model renders the title/ingredients/instructions fields plus a save
// action. Validation is inert: an empty field blocks submission with a
// status message instead of invoking the save callback.
type Model struct {
	theme theme.FormTheme

	focus     focusField
	editingID string
	saving    bool
	errorMsg  string

	title        textinput.Model
	ingredients  textarea.Model
	instructions textarea.Model
}

// New constructs an empty add-mode form.
func New(th theme.FormTheme) *Model {
	ti := textinput.New()
	ti.Placeholder = "Recipe title"
	ti.CharLimit = 256
	ti.Prompt = ""

	ing := textarea.New()
	ing.Placeholder = "One ingredient per line"
	ing.CharLimit = 0

	ins := textarea.New()
	ins.Placeholder = "Instructions"
	ins.CharLimit = 0

	m := &Model{
		theme:        th,
		title:        ti,
		ingredients:  ing,
		instructions: ins,
	}
	m.SetSize(60, 18)
	return m
}

// Init focuses the title field.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.updateFieldFocus(), textinput.Blink)
}

// EditingID returns the id of the recipe being edited, or "" in add mode.
func (m *Model) EditingID() string { return m.editingID }

// Saving reports whether a save is in flight.
func (m *Model) Saving() bool { return m.saving }

// SetRecipe resets the fields to the given recipe for editing, or to empty
// for the add flow when r is nil.
func (m *Model) SetRecipe(r *recipe.Recipe) {
	if r == nil {
		m.editingID = ""
		m.title.SetValue("")
		m.ingredients.SetValue("")
		m.instructions.SetValue("")
	} else {
		m.editingID = r.ID
		m.title.SetValue(r.Title)
		m.ingredients.SetValue(recipe.JoinIngredients(r.Ingredients))
		m.instructions.SetValue(r.Instructions)
	}
	m.focus = fieldTitle
	m.saving = false
	m.errorMsg = ""
	m.updateFieldFocus()
}

// SetSaving toggles the in-flight guard; while set the save action is
// disabled and relabeled.
func (m *Model) SetSaving(saving bool) {
	m.saving = saving
}

// SetSize fits the fields into the given modal body dimensions.
func (m *Model) SetSize(width, height int) {
	if width < 30 {
		width = 30
	}
	m.title.SetWidth(width - 2)
	m.ingredients.SetWidth(width - 2)
	m.instructions.SetWidth(width - 2)

	rows := (height - 8) / 2
	if rows < 3 {
		rows = 3
	}
	m.ingredients.SetHeight(rows)
	m.instructions.SetHeight(rows)
}

// Update processes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (*Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyPressMsg); ok {
		return m, m.handleKey(key)
	}

	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldIngredients:
		m.ingredients, cmd = m.ingredients.Update(msg)
	case fieldInstructions:
		m.instructions, cmd = m.instructions.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	var cmds []tea.Cmd

	switch msg.String() {
	case "tab":
		m.advanceFocus(1)
	case "shift+tab":
		m.advanceFocus(-1)
	case "ctrl+s":
		return m.submit()
	case "enter":
		switch m.focus {
		case fieldTitle:
			m.advanceFocus(1)
		case fieldSave:
			return m.submit()
		default:
			cmds = appendCmd(cmds, m.routeToField(msg))
		}
	default:
		cmds = appendCmd(cmds, m.routeToField(msg))
	}

	cmds = appendCmd(cmds, m.updateFieldFocus())
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) routeToField(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case fieldTitle:
		m.title, cmd = m.title.Update(msg)
	case fieldIngredients:
		m.ingredients, cmd = m.ingredients.Update(msg)
	case fieldInstructions:
		m.instructions, cmd = m.instructions.Update(msg)
	}
	return cmd
}

// submit validates and emits the draft. Blank title, ingredients, or
// instructions make the submit inert; re-submission while saving is
// likewise ignored.
func (m *Model) submit() tea.Cmd {
	if m.saving {
		return nil
	}

	title := strings.TrimSpace(m.title.Value())
	ingredients := recipe.ParseIngredients(m.ingredients.Value())
	instructions := m.instructions.Value()

	switch {
	case title == "":
		m.errorMsg = "A title is required"
		return nil
	case len(ingredients) == 0:
		m.errorMsg = "At least one ingredient is required"
		return nil
	case strings.TrimSpace(instructions) == "":
		m.errorMsg = "Instructions are required"
		return nil
	}

	m.errorMsg = ""
	id := m.editingID
	draft := recipe.Draft{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: instructions,
	}
	return func() tea.Msg {
		return SubmittedMsg{ID: id, Draft: draft}
	}
}

func (m *Model) advanceFocus(delta int) {
	fields := []focusField{fieldTitle, fieldIngredients, fieldInstructions, fieldSave}
	current := 0
	for i, f := range fields {
		if f == m.focus {
			current = i
			break
		}
	}
	current = (current + len(fields) + delta) % len(fields)
	m.focus = fields[current]
	m.updateFieldFocus()
}

func (m *Model) updateFieldFocus() tea.Cmd {
	var cmd tea.Cmd
	if m.focus == fieldTitle {
		cmd = m.title.Focus()
	} else {
		m.title.Blur()
	}
	if m.focus == fieldIngredients {
		cmd = m.ingredients.Focus()
	} else {
		m.ingredients.Blur()
	}
	if m.focus == fieldInstructions {
		cmd = m.instructions.Focus()
	} else {
		m.instructions.Blur()
	}
	return cmd
}

// View renders the form body; the root wraps it in the modal frame.
func (m *Model) View() string {
	var lines []string

	lines = append(lines, m.label("Title", fieldTitle), m.title.View(), "")
	lines = append(lines, m.label("Ingredients", fieldIngredients), m.ingredients.View(), "")
	lines = append(lines, m.label("Instructions", fieldInstructions), m.instructions.View(), "")
	lines = append(lines, m.renderSave(), "", m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) label(text string, field focusField) string {
	if m.focus == field {
		return m.theme.Focused.Render("> " + text)
	}
	return m.theme.Label.Render("  " + text)
}

func (m *Model) renderSave() string {
	label := "[ Save ]"
	if m.saving {
		label = "[ Saving… ]"
	}
	if m.focus == fieldSave && !m.saving {
		return m.theme.SaveButton.Render("> " + label)
	}
	return m.theme.Label.Render("  " + label)
}

func (m *Model) renderStatusLine() string {
	if m.errorMsg != "" {
		return m.theme.Error.Render(m.errorMsg)
	}
	return m.theme.Help.Render("Tab between fields • Ctrl+S to save • Esc to cancel")
}

func appendCmd(cmds []tea.Cmd, cmd tea.Cmd) []tea.Cmd {
	if cmd == nil {
		return cmds
	}
	return append(cmds, cmd)
}

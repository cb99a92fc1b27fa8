// Package teaui hosts the Bubble Tea program for the cookbook TUI.
package teaui

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/cookbook/pkg/app"
	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/store"
	"tableflip.dev/cookbook/pkg/tui/components/book"
	"tableflip.dev/cookbook/pkg/tui/components/form"
	"tableflip.dev/cookbook/pkg/tui/components/overlay"
	"tableflip.dev/cookbook/pkg/tui/components/page"
	"tableflip.dev/cookbook/pkg/tui/theme"
)

type mode int

const (
	modeBook mode = iota
	modeForm
	modeConfirm
)

type connState int

const (
	connConnecting connState = iota
	connReady
	connFailed
)

// Model contains UI state.
type Model struct {
	cfg      store.Config
	provider identity.Provider
	svc      *app.Service

	ctx    context.Context
	cancel context.CancelFunc

	conn    connState
	connErr error
	mode    mode

	recipes []*recipe.Recipe

	book *book.State
	page *page.State
	form *form.Model

	// one edit session and one in-flight save at a time
	saving          bool
	pendingLastPage bool
	confirmID       string
	confirmTitle    string

	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	status     string
	termWidth  int
	termHeight int

	theme theme.Theme
}

// New creates a UI model that connects to the store on startup.
func New(cfg store.Config, provider identity.Provider) *Model {
	th := theme.Default()
	ctx, cancel := context.WithCancel(context.Background())
	return &Model{
		cfg:      cfg,
		provider: provider,
		ctx:      ctx,
		cancel:   cancel,
		conn:     connConnecting,
		mode:     modeBook,
		book:     book.NewState(),
		page:     page.NewState(th.Page),
		form:     form.New(th.Form),
		theme:    th,
	}
}

// Init starts the connect sequence.
func (m *Model) Init() tea.Cmd {
	return connectCmd(m.ctx, m.cfg, m.provider)
}

// messages
type errMsg struct{ err error }

type connectedMsg struct {
	svc *app.Service
	err error
}

type recipesLoadedMsg struct {
	recipes []*recipe.Recipe
}

type savedMsg struct {
	created bool
	err     error
}

type deletedMsg struct {
	err error
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func connectCmd(ctx context.Context, cfg store.Config, provider identity.Provider) tea.Cmd {
	return func() tea.Msg {
		handle, err := provider.Current(ctx)
		if err != nil {
			return connectedMsg{err: err}
		}
		p, err := store.Load(cfg, handle)
		if err != nil {
			return connectedMsg{err: err}
		}
		return connectedMsg{svc: &app.Service{Persistence: p}}
	}
}

func (m *Model) loadRecipes() tea.Cmd {
	svc := m.svc
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		recipes, err := svc.Recipes(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return recipesLoadedMsg{recipes: recipes}
	}
}

func startWatchCmd(parent context.Context, svc *app.Service) tea.Cmd {
	if svc == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := svc.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (m *Model) waitForWatch() tea.Cmd {
	if m.watchCh == nil {
		return nil
	}
	ch := m.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (m *Model) stopWatch() {
	if m.watchCancel != nil {
		m.watchCancel()
		m.watchCancel = nil
	}
	m.watchCh = nil
}

func (m *Model) saveCmd(id string, d recipe.Draft) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		_, err := svc.Save(m.ctx, id, d)
		return savedMsg{created: id == "", err: err}
	}
}

func (m *Model) deleteCmd(id string) tea.Cmd {
	svc := m.svc
	return func() tea.Msg {
		return deletedMsg{err: svc.Delete(m.ctx, id)}
	}
}

// Update handles messages and keybindings.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.applySizes()
	case errMsg:
		m.setStatus("ERR: " + msg.err.Error())
	case connectedMsg:
		if msg.err != nil {
			m.conn = connFailed
			m.connErr = msg.err
			break
		}
		m.conn = connReady
		m.svc = msg.svc
		cmds = append(cmds, m.loadRecipes(), startWatchCmd(m.ctx, m.svc))
	case recipesLoadedMsg:
		m.recipes = msg.recipes
		m.book.SetRecipeCount(len(m.recipes))
		if m.pendingLastPage {
			m.book.JumpTo(len(m.recipes))
			m.pendingLastPage = false
		}
		m.syncPage()
	case watchStartedMsg:
		if msg.err != nil {
			m.setStatus("ERR: watch " + msg.err.Error())
			break
		}
		m.stopWatch()
		m.watchCh = msg.ch
		m.watchCancel = msg.cancel
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchEventMsg:
		cmds = append(cmds, m.loadRecipes())
		if cmd := m.waitForWatch(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case watchStoppedMsg:
		m.stopWatch()
		cmds = append(cmds, startWatchCmd(m.ctx, m.svc))
	case form.SubmittedMsg:
		if m.saving {
			break
		}
		m.saving = true
		m.form.SetSaving(true)
		cmds = append(cmds, m.saveCmd(msg.ID, msg.Draft))
	case savedMsg:
		m.saving = false
		m.form.SetSaving(false)
		if msg.err != nil {
			// modal stays open so the draft is not lost
			m.setStatus("ERR: save " + msg.err.Error())
			break
		}
		m.mode = modeBook
		if msg.created {
			m.pendingLastPage = true
			m.setStatus("Recipe added")
		} else {
			m.setStatus("Recipe updated")
		}
		cmds = append(cmds, m.loadRecipes())
	case deletedMsg:
		m.mode = modeBook
		m.confirmID = ""
		m.confirmTitle = ""
		if msg.err != nil {
			m.setStatus("ERR: delete " + msg.err.Error())
			break
		}
		m.book.RecipeDeleted()
		m.syncPage()
		m.setStatus("Recipe deleted")
		cmds = append(cmds, m.loadRecipes())
	case book.FlipAdvanceMsg:
		m.book.HandleAdvance(msg)
		m.syncPage()
	case book.FlipUnlockMsg:
		m.book.HandleUnlock(msg)
	case tea.KeyPressMsg:
		if cmd := m.handleKeyPress(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}

	// route remaining messages to the form while the modal is open so its
	// cursor keeps ticking
	if m.mode == modeForm {
		if _, ok := msg.(tea.KeyPressMsg); !ok {
			var cmd tea.Cmd
			m.form, cmd = m.form.Update(msg)
			if cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKeyPress(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return m.quit()
	}
	if m.conn != connReady {
		if msg.String() == "q" {
			return m.quit()
		}
		return nil
	}
	switch m.mode {
	case modeForm:
		return m.handleFormKey(msg)
	case modeConfirm:
		return m.handleConfirmKey(msg)
	default:
		return m.handleBookKey(msg)
	}
}

func (m *Model) handleBookKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		return m.quit()
	case "right", "l", "n":
		return m.book.Next()
	case "left", "h", "p":
		return m.book.Prev()
	case "up", "k":
		m.page.MoveCursor(-1)
	case "down", "j":
		m.page.MoveCursor(1)
	case "space", " ", "x":
		m.page.ToggleCurrent()
	case "a":
		m.form.SetRecipe(nil)
		m.mode = modeForm
		m.setStatus("")
		return m.form.Init()
	case "e":
		if r := m.currentRecipe(); r != nil {
			m.form.SetRecipe(r)
			m.mode = modeForm
			m.setStatus("")
			return m.form.Init()
		}
		m.setStatus("No recipe on this page to edit")
	case "d":
		if r := m.currentRecipe(); r != nil {
			m.confirmID = r.ID
			m.confirmTitle = r.Title
			m.mode = modeConfirm
		} else {
			m.setStatus("No recipe on this page to delete")
		}
	}
	return nil
}

func (m *Model) handleFormKey(msg tea.KeyPressMsg) tea.Cmd {
	if msg.String() == "esc" {
		if m.saving {
			return nil
		}
		cancelled := "Add cancelled"
		if m.form.EditingID() != "" {
			cancelled = "Edit cancelled"
		}
		m.mode = modeBook
		m.setStatus(cancelled)
		return nil
	}
	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return cmd
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		id := m.confirmID
		m.setStatus("Deleting…")
		return m.deleteCmd(id)
	case "n", "esc", "q":
		m.mode = modeBook
		m.confirmID = ""
		m.confirmTitle = ""
		m.setStatus("Delete cancelled")
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.book.Stop()
	m.stopWatch()
	m.cancel()
	if m.svc != nil && m.svc.Persistence != nil {
		_ = m.svc.Persistence.Close()
	}
	return tea.Quit
}

// currentRecipe maps the book index onto the collection; page 0 is the
// welcome page.
func (m *Model) currentRecipe() *recipe.Recipe {
	idx := m.book.Index()
	if idx <= 0 || idx > len(m.recipes) {
		return nil
	}
	return m.recipes[idx-1]
}

func (m *Model) syncPage() {
	m.page.SetRecipe(m.currentRecipe())
}

func (m *Model) setStatus(s string) {
	m.status = s
}

func (m *Model) applySizes() {
	if m.termWidth == 0 || m.termHeight == 0 {
		return
	}
	w := m.termWidth - 20
	if w < 40 {
		w = m.termWidth - 6
	}
	if w > 90 {
		w = 90
	}
	h := m.termHeight - 8
	m.form.SetSize(w, h)
}

// View renders the book, or the connect/failure states, plus overlays.
func (m *Model) View() string {
	switch m.conn {
	case connConnecting:
		return "\n  Opening your cookbook…\n"
	case connFailed:
		msg := m.theme.Footer.Error.Render("Could not open the cookbook: " + m.connErr.Error())
		return "\n  " + msg + "\n"
	}

	if m.mode == modeForm {
		title := "Add Recipe"
		if m.form.EditingID() != "" {
			title = "Edit Recipe"
		}
		body := overlay.Place(m.termWidth, m.termHeight-2, m.theme.Modal, title, m.form.View())
		return strings.Join([]string{body, m.footer()}, "\n")
	}

	var sections []string
	sections = append(sections, m.renderBook())
	sections = append(sections, m.footer())
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderBook() string {
	width := m.pageWidth()
	body := m.page.View(width)
	framed := m.theme.Book.Frame.Render(body)

	// stacked page edge down the right side of the frame
	edge := strings.TrimSuffix(strings.Repeat(m.theme.Book.Edge.Render("▏")+"\n", lipgloss.Height(framed)), "\n")
	framed = lipgloss.JoinHorizontal(lipgloss.Top, framed, edge)

	count := fmt.Sprintf("Page %d of %d", m.book.Index()+1, m.book.TotalPages())
	if m.book.Flipping() {
		if m.book.CurrentDirection() == book.Forward {
			count += "  →"
		} else {
			count += "  ←"
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, framed, m.theme.Book.Count.Render(count))
}

func (m *Model) pageWidth() int {
	w := m.termWidth - 12
	if w < 30 {
		w = 30
	}
	if w > 80 {
		w = 80
	}
	return w
}

func (m *Model) footer() string {
	if m.mode == modeConfirm {
		prompt := fmt.Sprintf("Delete %q? (y/n)", m.confirmTitle)
		return m.theme.Footer.Error.Render(prompt)
	}
	help := m.theme.Footer.Help.Render("←/→ flip • ↑/↓ select • x check • a add • e edit • d delete • q quit")
	if m.status == "" {
		return help
	}
	return help + "\n" + m.theme.Footer.Status.Render(m.status)
}

// Run launches the interactive TUI program.
func Run(cfg store.Config, provider identity.Provider) error {
	p := tea.NewProgram(New(cfg, provider), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

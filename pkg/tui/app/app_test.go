package teaui

import (
	"errors"
	"strings"
	"testing"

	"tableflip.dev/cookbook/pkg/app"
	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/store"
	"tableflip.dev/cookbook/pkg/tui/components/form"
)

func newTestModel() *Model {
	m := New(store.StaticConfig{Path: "unused", Space: "cookbook", DriverID: store.DriverFile}, identity.File("unused", "tester"))
	m.conn = connReady
	m.termWidth = 80
	m.termHeight = 24
	return m
}

func loaded(recipes ...*recipe.Recipe) recipesLoadedMsg {
	return recipesLoadedMsg{recipes: recipes}
}

func r(id, title string, ingredients ...string) *recipe.Recipe {
	return &recipe.Recipe{ID: id, Title: title, Ingredients: ingredients, Instructions: "Cook."}
}

func TestConnectFailureIsTerminal(t *testing.T) {
	m := New(store.StaticConfig{}, identity.File("unused", "tester"))
	m.Update(connectedMsg{err: errors.New("no configuration")})

	if m.conn != connFailed {
		t.Fatalf("expected failed connection state, got %v", m.conn)
	}
	view := m.View()
	if !strings.Contains(view, "Could not open the cookbook") {
		t.Fatalf("expected failure message, got %q", view)
	}
	if strings.Contains(view, "Opening") {
		t.Fatal("spinner text must stop after failure")
	}
}

func TestEmptyCollectionShowsWelcomePage(t *testing.T) {
	m := newTestModel()
	m.Update(loaded())

	if m.book.TotalPages() != 1 || m.book.Index() != 0 {
		t.Fatalf("expected single welcome page, got index %d of %d", m.book.Index(), m.book.TotalPages())
	}
	if m.book.CanNext() || m.book.CanPrev() {
		t.Fatal("navigation must be disabled on an empty book")
	}
	view := m.View()
	if !strings.Contains(view, "Welcome") || !strings.Contains(view, "Page 1 of 1") {
		t.Fatalf("expected welcome page view, got %q", view)
	}
}

func TestCreateFlowLandsOnNewLastPage(t *testing.T) {
	m := newTestModel()
	m.Update(loaded())
	m.mode = modeForm

	m.Update(form.SubmittedMsg{Draft: recipe.Draft{Title: "Pie", Ingredients: []string{"flour", "apples"}, Instructions: "Bake."}})
	if !m.saving {
		t.Fatal("expected save in flight")
	}

	// duplicate submission while saving is ignored
	m.Update(form.SubmittedMsg{Draft: recipe.Draft{Title: "Again"}})

	m.Update(savedMsg{created: true})
	if m.saving || m.mode != modeBook {
		t.Fatalf("expected modal closed after save, saving=%v mode=%v", m.saving, m.mode)
	}

	// the subscription push delivers the new snapshot
	m.Update(loaded(r("r1", "Pie", "flour", "apples")))
	if m.book.Index() != 1 {
		t.Fatalf("expected auto-advance to page 1, got %d", m.book.Index())
	}
	view := m.View()
	if !strings.Contains(view, "Pie") || !strings.Contains(view, "flour") || !strings.Contains(view, "apples") {
		t.Fatalf("expected the new recipe page, got %q", view)
	}
}

func TestSaveFailureKeepsModalOpen(t *testing.T) {
	m := newTestModel()
	m.mode = modeForm
	m.saving = true

	m.Update(savedMsg{err: errors.New("disk full")})
	if m.mode != modeForm {
		t.Fatal("save failure must leave the modal open")
	}
	if m.saving {
		t.Fatal("expected the saving guard to clear")
	}
	if !strings.Contains(m.status, "disk full") {
		t.Fatalf("expected failure in status, got %q", m.status)
	}
}

func TestDeleteDisplayedRecipeStepsBack(t *testing.T) {
	m := newTestModel()
	m.Update(loaded(r("r1", "Pie", "flour"), r("r2", "Stew", "beef")))
	m.book.JumpTo(2)
	m.syncPage()

	m.confirmID = "r2"
	m.mode = modeConfirm
	m.Update(deletedMsg{})

	if m.book.Index() != 1 {
		t.Fatalf("expected index 1 after deleting page 2, got %d", m.book.Index())
	}
	if m.mode != modeBook {
		t.Fatal("expected confirm mode to end")
	}

	// the snapshot without the deleted recipe arrives afterwards
	m.Update(loaded(r("r1", "Pie", "flour")))
	view := m.View()
	if !strings.Contains(view, "Pie") {
		t.Fatalf("expected first recipe displayed, got %q", view)
	}
}

func TestDeleteOnlyRecipeReturnsToWelcome(t *testing.T) {
	m := newTestModel()
	m.Update(loaded(r("r1", "Pie", "flour")))
	m.book.JumpTo(1)
	m.syncPage()

	m.Update(deletedMsg{})
	m.Update(loaded())

	if m.book.Index() != 0 {
		t.Fatalf("expected welcome page, got index %d", m.book.Index())
	}
	if !strings.Contains(m.View(), "Welcome") {
		t.Fatal("expected welcome page view")
	}
}

func TestWatchEventTriggersReload(t *testing.T) {
	m := newTestModel()
	m.svc = &app.Service{}

	_, cmd := m.Update(watchEventMsg{event: store.Event{Type: store.EventRecipesChanged}})
	if cmd == nil {
		t.Fatal("expected a reload command from a watch event")
	}
}

func TestCurrentRecipeMapsIndexOntoCollection(t *testing.T) {
	m := newTestModel()
	m.Update(loaded(r("r1", "Pie", "flour"), r("r2", "Stew", "beef")))

	if got := m.currentRecipe(); got != nil {
		t.Fatalf("welcome page has no recipe, got %+v", got)
	}
	m.book.JumpTo(2)
	if got := m.currentRecipe(); got == nil || got.ID != "r2" {
		t.Fatalf("expected r2 at page 2, got %+v", got)
	}
}

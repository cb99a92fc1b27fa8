package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/cookbook/pkg/recipe"
)

func testSQLite(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(StaticConfig{Path: t.TempDir(), Space: "cookbook", DriverID: DriverSQLite}, "tester")
	if err != nil {
		t.Fatalf("load sqlite persistence: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestSQLiteRoundTrip(t *testing.T) {
	p := testSQLite(t)
	ctx := context.Background()

	r, err := p.Create(ctx, recipe.Draft{Title: "Stew", Ingredients: []string{"beef", "carrots"}, Instructions: "Simmer.\n\nServe hot."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" || r.DateAdded.IsZero() {
		t.Fatalf("expected assigned id and dateAdded, got %+v", r)
	}

	got, err := p.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Stew" || len(got.Ingredients) != 2 {
		t.Fatalf("round trip mismatch: %+v", got)
	}
	if got.Instructions != "Simmer.\n\nServe hot." {
		t.Fatalf("instructions whitespace not preserved: %q", got.Instructions)
	}
}

func TestSQLiteUpdateAndDelete(t *testing.T) {
	p := testSQLite(t)
	ctx := context.Background()

	r, err := p.Create(ctx, recipe.Draft{Title: "Stew", Ingredients: []string{"beef"}, Instructions: "Simmer."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := p.Update(ctx, r.ID, recipe.Draft{Title: "Beef Stew", Ingredients: []string{"beef", "onion"}, Instructions: "Simmer longer."})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != r.ID || !updated.DateAdded.Equal(r.DateAdded.Time) {
		t.Fatalf("update changed identity fields: %+v vs %+v", updated, r)
	}

	if err := p.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := p.Delete(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for duplicate delete, got %v", err)
	}
}

func TestSQLiteListOrder(t *testing.T) {
	p := testSQLite(t)
	ctx := context.Background()

	first, err := p.Create(ctx, recipe.Draft{Title: "First", Ingredients: []string{"a"}, Instructions: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	if _, err := p.Create(ctx, recipe.Draft{Title: "Second", Ingredients: []string{"b"}, Instructions: "y"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := p.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != first.ID {
		t.Fatalf("expected ascending order starting with %q, got %+v", first.Title, all)
	}
}

func TestSQLiteWatchSeesWrites(t *testing.T) {
	p := testSQLite(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	if _, err := p.Create(ctx, recipe.Draft{Title: "Pie", Ingredients: []string{"flour"}, Instructions: "Bake."}); err != nil {
		t.Fatalf("create: %v", err)
	}

	deadline := time.After(3 * time.Second)
	for {
		select {
		case evt, ok := <-ch:
			if !ok {
				t.Fatal("watch channel closed early")
			}
			if evt.Type == EventRecipesChanged {
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for poll event")
		}
	}
}

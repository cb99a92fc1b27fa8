package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"tableflip.dev/cookbook/pkg/recipe"
)

func testPersistence(t *testing.T) Persistence {
	t.Helper()
	p, err := Load(StaticConfig{Path: t.TempDir(), Space: "cookbook"}, "tester")
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestCreateAssignsIDAndDateAdded(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	r, err := p.Create(ctx, recipe.Draft{Title: "Pie", Ingredients: []string{"flour", "apples"}, Instructions: "Bake."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if r.ID == "" {
		t.Fatal("expected store-assigned id")
	}
	if r.DateAdded.IsZero() {
		t.Fatal("expected store-assigned dateAdded")
	}

	got, err := p.Get(ctx, r.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Pie" || len(got.Ingredients) != 2 || got.Instructions != "Bake." {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestListOrdersByDateAdded(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	first, err := p.Create(ctx, recipe.Draft{Title: "First", Ingredients: []string{"a"}, Instructions: "x"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	time.Sleep(5 * time.Millisecond)
	second, err := p.Create(ctx, recipe.Draft{Title: "Second", Ingredients: []string{"b"}, Instructions: "y"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	all, err := p.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 recipes, got %d", len(all))
	}
	if all[0].ID != first.ID || all[1].ID != second.ID {
		t.Fatalf("expected ascending dateAdded order, got [%s %s]", all[0].Title, all[1].Title)
	}
}

func TestUpdatePreservesIDAndDateAdded(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	r, err := p.Create(ctx, recipe.Draft{Title: "Pie", Ingredients: []string{"flour"}, Instructions: "Bake."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	updated, err := p.Update(ctx, r.ID, recipe.Draft{Title: "Apple Pie", Ingredients: []string{"flour", "apples"}, Instructions: "Bake longer."})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.ID != r.ID {
		t.Fatalf("update changed id: %q != %q", updated.ID, r.ID)
	}
	if !updated.DateAdded.Equal(r.DateAdded.Time) {
		t.Fatalf("update changed dateAdded: %v != %v", updated.DateAdded, r.DateAdded)
	}
	if updated.Title != "Apple Pie" {
		t.Fatalf("update did not apply title: %q", updated.Title)
	}
}

func TestUpdateMissingRecipe(t *testing.T) {
	p := testPersistence(t)
	if _, err := p.Update(context.Background(), "nope", recipe.Draft{Title: "x"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDeleteRemovesRecipe(t *testing.T) {
	p := testPersistence(t)
	ctx := context.Background()

	r, err := p.Create(ctx, recipe.Draft{Title: "Pie", Ingredients: []string{"flour"}, Instructions: "Bake."})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := p.Delete(ctx, r.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Get(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := p.Delete(ctx, r.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for duplicate delete, got %v", err)
	}
}

func TestIdentityScopingSeparatesCollections(t *testing.T) {
	base := t.TempDir()
	cfg := StaticConfig{Path: base, Space: "cookbook"}

	alice, err := Load(cfg, "alice")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	bob, err := Load(cfg, "bob")
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	ctx := context.Background()
	if _, err := alice.Create(ctx, recipe.Draft{Title: "Pie", Ingredients: []string{"flour"}, Instructions: "Bake."}); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := bob.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected bob's collection to be empty, got %d recipes", len(got))
	}
}

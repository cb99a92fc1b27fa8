package app

import (
	"context"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/store"
)

// Service provides high-level recipe operations. It wraps persistence so
// the TUI and the CLI verbs share the same save/delete semantics.
type Service struct {
	Persistence store.Persistence
}

var errNoPersistence = errors.New("app: no persistence configured")

// Recipes lists the collection in ascending creation order.
func (s *Service) Recipes(ctx context.Context) ([]*recipe.Recipe, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.List(ctx)
}

// Get returns a single recipe by id.
func (s *Service) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Get(ctx, id)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Save creates when id is empty, otherwise updates the editable fields of
// the identified recipe. The store assigns id and dateAdded on create and
// preserves both on update so collection order never shifts.
func (s *Service) Save(ctx context.Context, id string, d recipe.Draft) (*recipe.Recipe, error) {
	if s.Persistence == nil {
		return nil, errNoPersistence
	}
	if id == "" {
		return s.Persistence.Create(ctx, d)
	}
	return s.Persistence.Update(ctx, id, d)
}

// Delete removes a recipe. A missing record counts as already deleted:
// the failure is logged and swallowed.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Persistence == nil {
		return errNoPersistence
	}
	if err := s.Persistence.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(os.Stderr, "app: delete %s: %v\n", id, err)
			return nil
		}
		return err
	}
	return nil
}

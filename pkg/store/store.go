package store

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
)

// ErrNotFound is returned when the identified recipe does not exist.
// Callers that treat missing records as already-deleted can test for it.
var ErrNotFound = errors.New("store: recipe not found")

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventRecipesChanged indicates the recipe collection changed (added,
	// edited, or removed recipes). Consumers should re-list.
	EventRecipesChanged EventType = iota

	// EventInvalidated signals the store could not classify the change;
	// consumers should refresh their full view.
	EventInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type EventType
}

// Persistence defines the persistence contract for recipes. The recipe
// collection is scoped to a single namespace/identity pair and is always
// listed in ascending DateAdded order.
type Persistence interface {
	List(ctx context.Context) ([]*recipe.Recipe, error)
	Get(ctx context.Context, id string) (*recipe.Recipe, error)

	// Create assigns an id and creation timestamp and stores the recipe.
	Create(ctx context.Context, d recipe.Draft) (*recipe.Recipe, error)

	// Update overwrites title/ingredients/instructions for the identified
	// recipe, leaving id and dateAdded untouched.
	Update(ctx context.Context, id string, d recipe.Draft) (*recipe.Recipe, error)

	Delete(ctx context.Context, id string) error

	// Watch streams change events until ctx is cancelled. The channel is
	// closed once ctx is done or the watcher fails irrecoverably.
	Watch(ctx context.Context) (<-chan Event, error)

	Close() error
}

// Load creates a Persistence for the configured driver, scoped to the
// given identity.
func Load(cfg Config, id identity.Handle) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}
	switch cfg.Driver() {
	case "", DriverFile:
		return newDiskv(cfg, id)
	case DriverSQLite:
		return openSQLite(cfg, id)
	case DriverCharm:
		return openCharm(cfg, id)
	default:
		return nil, fmt.Errorf("store: unknown driver %q", cfg.Driver())
	}
}

// sortRecipes orders by ascending creation time; ties and missing
// timestamps fall back to id order so listing stays stable.
func sortRecipes(recipes []*recipe.Recipe) {
	sort.SliceStable(recipes, func(i, j int) bool {
		left := recipes[i]
		right := recipes[j]
		if left == nil || right == nil {
			return left != nil
		}
		lt := left.DateAdded.Time
		rt := right.DateAdded.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

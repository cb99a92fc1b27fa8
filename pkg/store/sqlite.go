package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS recipes (
    id           TEXT PRIMARY KEY,
    namespace    TEXT NOT NULL,
    identity     TEXT NOT NULL,
    title        TEXT NOT NULL,
    ingredients  TEXT NOT NULL,
    instructions TEXT NOT NULL,
    date_added   TEXT NOT NULL,
    updated_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_recipes_scope
    ON recipes (namespace, identity, date_added);
`

// sqliteStore keeps recipes in a local SQLite database, scoped per
// namespace/identity row.
type sqliteStore struct {
	db    *sql.DB
	space string
	ident string
}

func openSQLite(cfg Config, id identity.Handle) (Persistence, error) {
	if cfg.BasePath() == "" {
		return nil, errors.New("store: base path required")
	}
	if id == "" {
		return nil, errors.New("store: identity required")
	}
	if err := os.MkdirAll(cfg.BasePath(), 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	dbPath := filepath.Join(cfg.BasePath(), "cookbook.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}

	return &sqliteStore{db: db, space: cfg.Namespace(), ident: string(id)}, nil
}

func (s *sqliteStore) List(ctx context.Context) ([]*recipe.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, ingredients, instructions, date_added
           FROM recipes
          WHERE namespace = ? AND identity = ?
          ORDER BY date_added ASC, id ASC`,
		s.space, s.ident,
	)
	if err != nil {
		return nil, fmt.Errorf("store: list recipes: %w", err)
	}
	defer rows.Close()

	all := make([]*recipe.Recipe, 0)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: scan recipe: %v\n", err)
			continue
		}
		all = append(all, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("store: list recipes: %w", err)
	}
	return all, nil
}

func (s *sqliteStore) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, title, ingredients, instructions, date_added
           FROM recipes
          WHERE namespace = ? AND identity = ? AND id = ?`,
		s.space, s.ident, id,
	)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: get recipe: %w", err)
	}
	return r, nil
}

func (s *sqliteStore) Create(ctx context.Context, d recipe.Draft) (*recipe.Recipe, error) {
	r := recipe.New(d)
	r.ID = uuid.NewString()
	r.DateAdded = recipe.Now()

	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO recipes (id, namespace, identity, title, ingredients, instructions, date_added, updated_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, s.space, s.ident, r.Title, string(ingredients), r.Instructions,
		r.DateAdded.UTC().Format(time.RFC3339Nano), now,
	)
	if err != nil {
		return nil, fmt.Errorf("store: insert recipe: %w", err)
	}
	return r, nil
}

func (s *sqliteStore) Update(ctx context.Context, id string, d recipe.Draft) (*recipe.Recipe, error) {
	ingredients, err := json.Marshal(d.Ingredients)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		`UPDATE recipes
            SET title = ?, ingredients = ?, instructions = ?, updated_at = ?
          WHERE namespace = ? AND identity = ? AND id = ?`,
		d.Title, string(ingredients), d.Instructions, now,
		s.space, s.ident, id,
	)
	if err != nil {
		return nil, fmt.Errorf("store: update recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("store: update recipe: %w", err)
	}
	if affected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *sqliteStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE namespace = ? AND identity = ? AND id = ?`,
		s.space, s.ident, id,
	)
	if err != nil {
		return fmt.Errorf("store: delete recipe: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete recipe: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

const sqlitePollInterval = 500 * time.Millisecond

// Watch polls a cheap collection signature. SQLite has no push
// notification across connections, so the subscription is a poll loop
// that emits only when the signature moves.
func (s *sqliteStore) Watch(ctx context.Context) (<-chan Event, error) {
	last, err := s.signature(ctx)
	if err != nil {
		return nil, err
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		ticker := time.NewTicker(sqlitePollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				sig, err := s.signature(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					select {
					case events <- Event{Type: EventInvalidated}:
					default:
					}
					continue
				}
				if sig == last {
					continue
				}
				last = sig
				select {
				case events <- Event{Type: EventRecipesChanged}:
				default:
					// Dropped events are fine; the consumer re-lists on
					// the next delivery.
				}
			}
		}
	}()
	return events, nil
}

type collectionSignature struct {
	count   int64
	updated string
}

func (s *sqliteStore) signature(ctx context.Context) (collectionSignature, error) {
	var sig collectionSignature
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(MAX(updated_at), '')
           FROM recipes
          WHERE namespace = ? AND identity = ?`,
		s.space, s.ident,
	)
	if err := row.Scan(&sig.count, &sig.updated); err != nil {
		return sig, fmt.Errorf("store: signature: %w", err)
	}
	return sig, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row rowScanner) (*recipe.Recipe, error) {
	var (
		r           recipe.Recipe
		ingredients string
		dateAdded   string
	)
	if err := row.Scan(&r.ID, &r.Title, &ingredients, &r.Instructions, &dateAdded); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	if t, err := time.Parse(time.RFC3339Nano, dateAdded); err == nil {
		r.DateAdded = recipe.Timestamp{Time: t}
	}
	return &r, nil
}

package store

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/charmbracelet/charm/kv"
	"github.com/google/uuid"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
)

// charmStore keeps recipes in Charm Cloud KV: a hosted, account-scoped
// document store that replicates between machines. Documents live under
// an identity-prefixed key inside the namespace database.
type charmStore struct {
	db     *kv.KV
	prefix []byte
}

func openCharm(cfg Config, id identity.Handle) (Persistence, error) {
	if id == "" {
		return nil, errors.New("store: identity required")
	}
	name := cfg.Namespace()
	if name == "" {
		name = "cookbook"
	}
	db, err := kv.OpenWithDefaults(name)
	if err != nil {
		return nil, fmt.Errorf("store: open charm kv: %w", err)
	}
	return &charmStore{db: db, prefix: []byte(string(id) + "/")}, nil
}

func (c *charmStore) key(id string) []byte {
	return append(append([]byte{}, c.prefix...), id...)
}

func (c *charmStore) List(ctx context.Context) ([]*recipe.Recipe, error) {
	if err := c.db.Sync(); err != nil {
		// Offline or unreachable: serve the local replica.
		fmt.Fprintf(os.Stderr, "store: charm sync: %v\n", err)
	}
	keys, err := c.db.Keys()
	if err != nil {
		return nil, fmt.Errorf("store: charm keys: %w", err)
	}
	all := make([]*recipe.Recipe, 0, len(keys))
	for _, k := range keys {
		if !bytes.HasPrefix(k, c.prefix) {
			continue
		}
		val, err := c.db.Get(k)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: charm get %s: %v\n", k, err)
			continue
		}
		r := &recipe.Recipe{}
		if err := json.Unmarshal(val, r); err != nil {
			fmt.Fprintf(os.Stderr, "store: charm decode %s: %v\n", k, err)
			continue
		}
		r.ID = string(bytes.TrimPrefix(k, c.prefix))
		all = append(all, r)
	}
	sortRecipes(all)
	return all, nil
}

func (c *charmStore) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	if id == "" {
		return nil, ErrNotFound
	}
	val, err := c.db.Get(c.key(id))
	if err != nil {
		return nil, ErrNotFound
	}
	r := &recipe.Recipe{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, fmt.Errorf("store: charm decode %s: %w", id, err)
	}
	r.ID = id
	return r, nil
}

func (c *charmStore) Create(ctx context.Context, d recipe.Draft) (*recipe.Recipe, error) {
	r := recipe.New(d)
	r.ID = uuid.NewString()
	r.DateAdded = recipe.Now()
	if err := c.write(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *charmStore) Update(ctx context.Context, id string, d recipe.Draft) (*recipe.Recipe, error) {
	r, err := c.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Apply(d)
	if err := c.write(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (c *charmStore) write(r *recipe.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := c.db.Set(c.key(r.ID), data); err != nil {
		return fmt.Errorf("store: charm set %s: %w", r.ID, err)
	}
	return nil
}

func (c *charmStore) Delete(ctx context.Context, id string) error {
	if _, err := c.Get(ctx, id); err != nil {
		return err
	}
	if err := c.db.Delete(c.key(id)); err != nil {
		return fmt.Errorf("store: charm delete %s: %w", id, err)
	}
	return nil
}

func (c *charmStore) Close() error {
	return c.db.Close()
}

const charmPollInterval = 3 * time.Second

// Watch syncs the local replica on an interval and emits when the
// identity-scoped document set changes. Charm replication is pull-based,
// so the subscription is a Sync poll.
func (c *charmStore) Watch(ctx context.Context) (<-chan Event, error) {
	last, err := c.fingerprint()
	if err != nil {
		return nil, err
	}

	events := make(chan Event, 64)
	go func() {
		defer close(events)
		ticker := time.NewTicker(charmPollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := c.db.Sync(); err != nil {
					fmt.Fprintf(os.Stderr, "store: charm sync: %v\n", err)
					continue
				}
				fp, err := c.fingerprint()
				if err != nil {
					select {
					case events <- Event{Type: EventInvalidated}:
					default:
					}
					continue
				}
				if fp == last {
					continue
				}
				last = fp
				select {
				case events <- Event{Type: EventRecipesChanged}:
				default:
				}
			}
		}
	}()
	return events, nil
}

// fingerprint hashes the identity-scoped key/value set. The collection is
// a single user's recipes, so a full scan per poll stays cheap.
func (c *charmStore) fingerprint() (string, error) {
	keys, err := c.db.Keys()
	if err != nil {
		return "", fmt.Errorf("store: charm keys: %w", err)
	}
	scoped := make([][]byte, 0, len(keys))
	for _, k := range keys {
		if bytes.HasPrefix(k, c.prefix) {
			scoped = append(scoped, k)
		}
	}
	sort.Slice(scoped, func(i, j int) bool { return bytes.Compare(scoped[i], scoped[j]) < 0 })

	h := md5.New()
	for _, k := range scoped {
		val, err := c.db.Get(k)
		if err != nil {
			continue
		}
		h.Write(k)
		h.Write([]byte{0})
		h.Write(val)
		h.Write([]byte{0})
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

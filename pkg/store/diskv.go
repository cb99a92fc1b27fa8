package store

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/recipe"
)

// persistence is the file-backed store: one JSON document per recipe
// under <base>/<namespace>/<identity>/.
type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func newDiskv(cfg Config, id identity.Handle) (Persistence, error) {
	if cfg.BasePath() == "" {
		return nil, errors.New("store: base path required")
	}
	if id == "" {
		return nil, errors.New("store: identity required")
	}
	basePath := filepath.Join(cfg.BasePath(), encodeSegment(cfg.Namespace()), encodeSegment(string(id)))
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    func(string) []string { return nil },
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func (p *persistence) read(key string) (*recipe.Recipe, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	r := &recipe.Recipe{}
	if err := json.Unmarshal(val, r); err != nil {
		return nil, err
	}
	r.ID = key
	return r, nil
}

func (p *persistence) write(r *recipe.Recipe) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return p.d.Write(r.ID, data)
}

func (p *persistence) List(ctx context.Context) ([]*recipe.Recipe, error) {
	all := make([]*recipe.Recipe, 0)
	for key := range p.d.Keys(ctx.Done()) {
		r, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "store: %s: %s\n", key, err)
			continue
		}
		all = append(all, r)
	}
	sortRecipes(all)
	return all, nil
}

func (p *persistence) Get(ctx context.Context, id string) (*recipe.Recipe, error) {
	if id == "" || !p.d.Has(id) {
		return nil, ErrNotFound
	}
	return p.read(id)
}

func (p *persistence) Create(ctx context.Context, d recipe.Draft) (*recipe.Recipe, error) {
	r := recipe.New(d)
	r.ID = uuid.NewString()
	r.DateAdded = recipe.Now()
	if err := p.write(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *persistence) Update(ctx context.Context, id string, d recipe.Draft) (*recipe.Recipe, error) {
	r, err := p.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	r.Apply(d)
	if err := p.write(r); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *persistence) Delete(ctx context.Context, id string) error {
	if id == "" || !p.d.Has(id) {
		return ErrNotFound
	}
	return p.d.Erase(id)
}

func (p *persistence) Close() error {
	return nil
}

// encodeSegment keeps namespace and identity values path-safe.
func encodeSegment(s string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(s))
}

// Package identity resolves the opaque handle that scopes every storage
// path. Handles come from a pre-supplied token, a generated anonymous id
// persisted beside the store, or a Charm Cloud account.
package identity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Handle is an opaque, stable identity token.
type Handle string

// Provider produces the current identity and a subscribable notification
// of it. Local identities never rotate within a session, so Notify emits
// once and then holds the channel open until ctx is done.
type Provider interface {
	Current(ctx context.Context) (Handle, error)
	Notify(ctx context.Context) (<-chan Handle, error)
}

const identityFile = ".identity"

// File returns a provider backed by the store's base path. A non-empty
// token acts as a custom sign-in and short-circuits the anonymous flow;
// otherwise a generated id is created once and reused on later runs.
func File(basePath, token string) Provider {
	return &fileProvider{basePath: basePath, token: strings.TrimSpace(token)}
}

type fileProvider struct {
	basePath string
	token    string
}

func (p *fileProvider) Current(ctx context.Context) (Handle, error) {
	if p.token != "" {
		return Handle(p.token), nil
	}
	if p.basePath == "" {
		return "", errors.New("identity: base path unknown")
	}
	path := filepath.Join(p.basePath, identityFile)
	data, err := os.ReadFile(path)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return Handle(id), nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("identity: read %s: %w", path, err)
	}

	// First run: mint an anonymous identity and persist it.
	id := uuid.NewString()
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return "", fmt.Errorf("identity: ensure base path: %w", err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("identity: persist handle: %w", err)
	}
	return Handle(id), nil
}

func (p *fileProvider) Notify(ctx context.Context) (<-chan Handle, error) {
	return notifyOnce(ctx, p)
}

// notifyOnce delivers the current handle and keeps the channel open until
// ctx is cancelled, then closes it.
func notifyOnce(ctx context.Context, p Provider) (<-chan Handle, error) {
	id, err := p.Current(ctx)
	if err != nil {
		return nil, err
	}
	ch := make(chan Handle, 1)
	ch <- id
	go func() {
		defer close(ch)
		<-ctx.Done()
	}()
	return ch, nil
}

package identity

import (
	"context"
	"fmt"

	"github.com/charmbracelet/charm/client"
)

// Charm returns a provider backed by a Charm Cloud account. Accounts are
// created transparently from the local SSH key on first use, which is the
// anonymous sign-in path; linking an existing key is the custom sign-in.
func Charm() Provider {
	return &charmProvider{}
}

type charmProvider struct{}

func (p *charmProvider) Current(ctx context.Context) (Handle, error) {
	cc, err := client.NewClientWithDefaults()
	if err != nil {
		return "", fmt.Errorf("identity: charm client: %w", err)
	}
	id, err := cc.ID()
	if err != nil {
		return "", fmt.Errorf("identity: charm id: %w", err)
	}
	return Handle(id), nil
}

func (p *charmProvider) Notify(ctx context.Context) (<-chan Handle, error) {
	return notifyOnce(ctx, p)
}

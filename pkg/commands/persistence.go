package commands

import (
	"context"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/store"
)

func loadConfig() (store.Config, identity.Provider, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	return cfg, identityProvider(cfg), nil
}

// identityProvider picks the identity source for the configured driver:
// Charm accounts carry their own identity, local drivers persist an
// anonymous handle beside the store.
func identityProvider(cfg store.Config) identity.Provider {
	if cfg.Driver() == store.DriverCharm {
		return identity.Charm()
	}
	return identity.File(cfg.BasePath(), cfg.Token())
}

func loadPersistence(ctx context.Context) (store.Persistence, error) {
	cfg, provider, err := loadConfig()
	if err != nil {
		return nil, err
	}
	handle, err := provider.Current(ctx)
	if err != nil {
		return nil, err
	}
	return store.Load(cfg, handle)
}

package ui

import (
	"context"
	"errors"
	"os"

	isatty "github.com/mattn/go-isatty"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/store"
	teaui "tableflip.dev/cookbook/pkg/tui/app"
)

// UI opens the interactive cookbook.
type UI struct {
	Config   store.Config
	Provider identity.Provider
}

func (d *UI) Do(ctx context.Context) error {
	if d.Config == nil {
		return errors.New("can not open the ui, no configuration")
	}
	fd := os.Stdout.Fd()
	if !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd) {
		return errors.New("the cookbook ui needs an interactive terminal")
	}
	return teaui.Run(d.Config, d.Provider)
}

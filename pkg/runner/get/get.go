package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"tableflip.dev/cookbook/pkg/app"
	"tableflip.dev/cookbook/pkg/printers"
	"tableflip.dev/cookbook/pkg/store"
)

// Get lists the cookbook, or prints one recipe in full when ID is set.
type Get struct {
	ShowID      bool
	ID          string
	Output      string
	Persistence store.Persistence
}

func (n *Get) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence}

	if n.ID != "" {
		r, err := svc.Get(ctx, n.ID)
		if err != nil {
			return err
		}
		if n.Output == "json" {
			return printJSON(r)
		}
		pp := printers.PrettyPrint{ShowID: n.ShowID}
		pp.NewLine()
		pp.Recipe(r)
		return nil
	}

	all, err := svc.Recipes(ctx)
	if err != nil {
		return err
	}
	if n.Output == "json" {
		return printJSON(all)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Title(fmt.Sprintf("Cookbook (%d)", len(all)))
	pp.Collection(all...)
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

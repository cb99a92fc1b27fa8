package whoami

import (
	"context"
	"errors"
	"fmt"

	"tableflip.dev/cookbook/pkg/identity"
	"tableflip.dev/cookbook/pkg/printers"
)

// Whoami prints the identity handle scoping the cookbook.
type Whoami struct {
	Provider identity.Provider
}

func (n *Whoami) Do(ctx context.Context) error {
	if n.Provider == nil {
		return errors.New("can not resolve identity, no provider")
	}
	handle, err := n.Provider.Current(ctx)
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{}
	pp.NewLine()
	pp.Title("Identity")
	fmt.Println(handle)
	return nil
}

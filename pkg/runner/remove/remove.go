package remove

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"tableflip.dev/cookbook/pkg/app"
	"tableflip.dev/cookbook/pkg/store"
)

// Remove deletes a recipe by id, asking for confirmation unless it was
// given up front.
type Remove struct {
	ID          string
	Confirmed   bool
	Persistence store.Persistence
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not delete, no persistence")
	}
	svc := &app.Service{Persistence: n.Persistence}

	label := n.ID
	if r, err := svc.Get(ctx, n.ID); err == nil {
		label = fmt.Sprintf("%s (%s)", r.Title, r.ID)
	}

	if !n.Confirmed {
		fmt.Printf("Delete %s? (y/N): ", label)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
		default:
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := svc.Delete(ctx, n.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", label)
	return nil
}

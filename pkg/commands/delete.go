package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cookbook/pkg/commands/options"
	"tableflip.dev/cookbook/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recipe by id",
		Example: `
cookbook delete 4f8a1c2e
cookbook delete 4f8a1c2e --yes
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPersistence(ctx)
			if err != nil {
				return err
			}
			defer p.Close()
			s := remove.Remove{
				ID:          args[0],
				Confirmed:   co.Yes,
				Persistence: p,
			}
			return s.Do(ctx)
		},
	}

	options.AddConfirmArgs(cmd, co)

	topLevel.AddCommand(cmd)
}

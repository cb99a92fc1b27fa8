package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cookbook/pkg/commands/options"
	"tableflip.dev/cookbook/pkg/runner/get"
)

func addGet(topLevel *cobra.Command) {
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "get [id]",
		Short: "List the cookbook, or print one recipe in full",
		Example: `
cookbook get
cookbook get --show-id
cookbook get 4f8a1c2e -o json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPersistence(ctx)
			if err != nil {
				return err
			}
			defer p.Close()
			s := get.Get{
				ShowID:      io.ShowID,
				Output:      oo.Output,
				Persistence: p,
			}
			if len(args) == 1 {
				s.ID = args[0]
			}
			return s.Do(ctx)
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArgs(cmd, oo)

	topLevel.AddCommand(cmd)
}

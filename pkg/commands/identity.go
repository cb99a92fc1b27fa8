package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cookbook/pkg/runner/whoami"
)

func addIdentity(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Print the identity handle scoping this cookbook",
		Example: `
cookbook identity
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, provider, err := loadConfig()
			if err != nil {
				return err
			}
			s := whoami.Whoami{Provider: provider}
			return s.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}

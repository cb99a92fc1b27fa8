package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/cookbook/pkg/runner/ui"
)

func runUI() error {
	cfg, provider, err := loadConfig()
	if err != nil {
		return err
	}
	i := ui.UI{Config: cfg, Provider: provider}
	return i.Do(context.Background())
}

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive cookbook",
		Example: `
cookbook ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI()
		},
	}

	topLevel.AddCommand(cmd)
}

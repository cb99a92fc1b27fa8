package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "cookbook",
		Short: base.Wrap80("A flip-through virtual cookbook on the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addAdd(topLevel)
	addGet(topLevel)
	addDelete(topLevel)
	addIdentity(topLevel)
	addVersion(topLevel)
}

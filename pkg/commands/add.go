package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/cookbook/pkg/commands/options"
	"tableflip.dev/cookbook/pkg/runner/add"
)

func addAdd(topLevel *cobra.Command) {
	ro := &options.RecipeOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a recipe to the cookbook",
		Example: `
cookbook add "Apple Pie" -i "2 cups flour" -i "6 apples" --instructions "Roll the crust, fill, bake at 375F."
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			p, err := loadPersistence(ctx)
			if err != nil {
				return err
			}
			defer p.Close()
			s := add.Add{
				ShowID:       io.ShowID,
				Title:        strings.Join(args, " "),
				Ingredients:  ro.Ingredients,
				Instructions: ro.Instructions,
				Persistence:  p,
			}
			return s.Do(ctx)
		},
	}

	options.AddRecipeArgs(cmd, ro)
	options.AddShowIDArgs(cmd, io)

	topLevel.AddCommand(cmd)
}

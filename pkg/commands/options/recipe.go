// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// RecipeOptions captures the recipe field flags for the add command.
type RecipeOptions struct {
	Ingredients  []string
	Instructions string
}

// AddRecipeArgs wires recipe field flags on the provided command.
func AddRecipeArgs(cmd *cobra.Command, o *RecipeOptions) {
	cmd.Flags().StringArrayVarP(&o.Ingredients, "ingredient", "i", nil,
		"Add an ingredient line. Repeatable; newlines inside a value split into further lines.")
	cmd.Flags().StringVar(&o.Instructions, "instructions", "",
		"The recipe instructions, whitespace preserved.")
}

// IDOptions toggles display of recipe ids.
type IDOptions struct {
	ShowID bool
}

// AddShowIDArgs registers the id display flag.
func AddShowIDArgs(cmd *cobra.Command, o *IDOptions) {
	cmd.Flags().BoolVar(&o.ShowID, "show-id", false,
		"Show recipe ids.")
}

// OutputOptions selects the output format.
type OutputOptions struct {
	Output string
}

// AddOutputArgs registers the output format flag.
func AddOutputArgs(cmd *cobra.Command, o *OutputOptions) {
	cmd.Flags().StringVarP(&o.Output, "output", "o", "",
		"Output format. Empty for tables, or 'json'.")
}

// ConfirmOptions skips interactive confirmation prompts.
type ConfirmOptions struct {
	Yes bool
}

// AddConfirmArgs registers the confirmation skip flag.
func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Skip the confirmation prompt.")
}

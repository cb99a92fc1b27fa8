package printers

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/cookbook/pkg/recipe"
)

// PrettyPrint renders recipes for the CLI verbs.
type PrettyPrint struct {
	ShowID bool
}

func (pp *PrettyPrint) NewLine() {
	fmt.Println("")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Println(title)
}

// Collection prints a one-row-per-recipe summary table.
func (pp *PrettyPrint) Collection(recipes ...*recipe.Recipe) {
	if len(recipes) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Print(" none\n\n")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	if pp.ShowID {
		tbl.AddRow(bold("ID"), bold("Title"), bold("Ingredients"), bold("Added"))
	} else {
		tbl.AddRow(bold("Title"), bold("Ingredients"), bold("Added"))
	}
	for _, r := range recipes {
		if r == nil {
			continue
		}
		count := fmt.Sprintf("%d", len(r.Ingredients))
		if pp.ShowID {
			tbl.AddRow(faint(r.ID), r.Title, count, r.DateAdded.FormatDate())
		} else {
			tbl.AddRow(r.Title, count, r.DateAdded.FormatDate())
		}
	}
	_, _ = fmt.Fprintln(color.Output, tbl)
}

// Recipe prints one full recipe: title, date, ingredient lines, and the
// instructions block with whitespace preserved.
func (pp *PrettyPrint) Recipe(r *recipe.Recipe) {
	if r == nil {
		return
	}
	pp.Title(r.Title)
	if date := r.DateAdded.FormatDate(); date != "" {
		_, _ = color.New(color.Faint).Println(date)
	}
	fmt.Println("")
	for _, ing := range r.Ingredients {
		fmt.Printf("  - %s\n", ing)
	}
	fmt.Println("")
	fmt.Println(strings.TrimRight(r.Instructions, "\n"))
	fmt.Println("")
}

func bold(in string) string {
	return color.New(color.Bold).Sprint(in)
}

func faint(in string) string {
	return color.New(color.FgHiYellow, color.Italic, color.Faint).Sprint(in)
}

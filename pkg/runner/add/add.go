package add

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/cookbook/pkg/app"
	"tableflip.dev/cookbook/pkg/printers"
	"tableflip.dev/cookbook/pkg/recipe"
	"tableflip.dev/cookbook/pkg/store"
)

// Add creates a recipe from the command line.
type Add struct {
	ShowID       bool
	Title        string
	Ingredients  []string
	Instructions string
	Persistence  store.Persistence
}

func (n *Add) Do(ctx context.Context) error {
	if n.Persistence == nil {
		return errors.New("can not add, no persistence")
	}

	title := strings.TrimSpace(n.Title)
	ingredients := recipe.ParseIngredients(strings.Join(n.Ingredients, "\n"))
	switch {
	case title == "":
		return errors.New("a title is required")
	case len(ingredients) == 0:
		return errors.New("at least one ingredient is required")
	case strings.TrimSpace(n.Instructions) == "":
		return errors.New("instructions are required")
	}

	svc := &app.Service{Persistence: n.Persistence}
	r, err := svc.Save(ctx, "", recipe.Draft{
		Title:        title,
		Ingredients:  ingredients,
		Instructions: n.Instructions,
	})
	if err != nil {
		return err
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID}
	pp.NewLine()
	pp.Title("Added")
	pp.Collection(r)
	return nil
}

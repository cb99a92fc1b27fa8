package recipe

// Recipe is a single cookbook entry. The ID and DateAdded fields are
// assigned by the store when the recipe is first created and never change
// afterwards; edits touch only Title, Ingredients, and Instructions.
type Recipe struct {
	ID           string    `json:"id,omitempty"`
	Title        string    `json:"title"`
	Ingredients  []string  `json:"ingredients"`
	Instructions string    `json:"instructions"`
	DateAdded    Timestamp `json:"dateAdded,omitempty"`
}

// Draft carries the user-editable fields of a recipe, as emitted by the
// form on submission.
type Draft struct {
	Title        string
	Ingredients  []string
	Instructions string
}

// New builds an unsaved recipe from a draft. ID and DateAdded stay zero
// until the store assigns them.
func New(d Draft) *Recipe {
	return &Recipe{
		Title:        d.Title,
		Ingredients:  append([]string(nil), d.Ingredients...),
		Instructions: d.Instructions,
	}
}

// Apply overwrites the editable fields from a draft, leaving ID and
// DateAdded untouched so collection order is preserved.
func (r *Recipe) Apply(d Draft) {
	r.Title = d.Title
	r.Ingredients = append([]string(nil), d.Ingredients...)
	r.Instructions = d.Instructions
}

// Clone returns a deep copy so callers can hand recipes across goroutine
// boundaries without sharing the ingredients slice.
func (r *Recipe) Clone() *Recipe {
	if r == nil {
		return nil
	}
	c := *r
	c.Ingredients = append([]string(nil), r.Ingredients...)
	return &c
}

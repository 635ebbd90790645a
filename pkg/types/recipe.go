package types

import (
	"fmt"
	"strings"
)

// RecipeItem is one entry in a recipe's composition list: a bag name and a
// filter expression applied to that bag's tiddlers. The filter may be empty.
type RecipeItem struct {
	Bag    string `json:"bag"`
	Filter string `json:"filter"`
}

// Recipe is a named, ordered composition of (bag, filter) pairs with its
// own access policy. The order of Items is significant and round-trips
// exactly through storage.
type Recipe struct {
	Name   string       `json:"name"`
	Desc   string       `json:"desc,omitempty"`
	Items  []RecipeItem `json:"items,omitempty"`
	Policy Policy       `json:"policy"`
}

// NewRecipe returns a recipe with the given name and an empty policy.
func NewRecipe(name string) *Recipe {
	return &Recipe{Name: name}
}

// String renders the composition list in its serialized form: one
// "bag?filter" entry per line.
func (r *Recipe) String() string {
	lines := make([]string, len(r.Items))
	for i, item := range r.Items {
		lines[i] = item.Bag + "?" + item.Filter
	}
	return strings.Join(lines, "\n")
}

// ParseRecipeString parses the serialized composition list back into an
// ordered item slice. Each line splits on its first "?"; a line without "?"
// is malformed. The empty string parses to no items.
func ParseRecipeString(s string) ([]RecipeItem, error) {
	if s == "" {
		return nil, nil
	}
	var items []RecipeItem
	for _, line := range strings.Split(s, "\n") {
		bag, filter, ok := strings.Cut(line, "?")
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrMalformedRecipe, line)
		}
		items = append(items, RecipeItem{Bag: bag, Filter: filter})
	}
	return items, nil
}

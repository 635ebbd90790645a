package types

// Bag is a named collection of tiddlers with its own access policy.
// Bags are keyed by name; names are case-sensitive.
type Bag struct {
	Name   string `json:"name"`
	Desc   string `json:"desc,omitempty"`
	Policy Policy `json:"policy"`
}

// NewBag returns a bag with the given name and an empty policy.
func NewBag(name string) *Bag {
	return &Bag{Name: name}
}

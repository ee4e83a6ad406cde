package models

// MenuItem comes from the external catalog. The ledger never edits it and
// only layers a MenuOverride on top.
type MenuItem struct {
	ID          string            `json:"id"`
	Category    string            `json:"category"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description string            `json:"description"`
	Image       string            `json:"image,omitempty"`
	Available   bool              `json:"available"`
	Recipe      []RecipeComponent `json:"recipe,omitempty"`
}

type Category struct {
	Name  string     `json:"name"`
	Items []MenuItem `json:"items"`
}

// MenuOverride holds per-item adjustments. Nil fields leave the catalog
// value in place.
type MenuOverride struct {
	ID        string            `json:"id"`
	Available *bool             `json:"available,omitempty"`
	Price     *float64          `json:"price,omitempty"`
	Recipe    []RecipeComponent `json:"recipe,omitempty"`
}

// Merge copies every field set in patch onto o.
func (o MenuOverride) Merge(patch MenuOverride) MenuOverride {
	if patch.Available != nil {
		o.Available = patch.Available
	}
	if patch.Price != nil {
		o.Price = patch.Price
	}
	if patch.Recipe != nil {
		o.Recipe = patch.Recipe
	}
	return o
}

// Apply returns item with the override's fields layered on top.
func (o MenuOverride) Apply(item MenuItem) MenuItem {
	if o.Available != nil {
		item.Available = *o.Available
	}
	if o.Price != nil {
		item.Price = *o.Price
	}
	if o.Recipe != nil {
		item.Recipe = o.Recipe
	}
	return item
}

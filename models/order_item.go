package models

// RecipeComponent is one inventory draw made per unit of a sold menu item.
type RecipeComponent struct {
	InventoryItemID string  `json:"inventoryItemId"`
	Quantity        float64 `json:"quantity"`
}

// LineItem is a snapshot of a menu item taken when the order was created,
// plus the cart-level quantity and notes.
type LineItem struct {
	CartID      string            `json:"cartId,omitempty"`
	ID          string            `json:"id"`
	Category    string            `json:"category,omitempty"`
	Name        string            `json:"name"`
	Price       float64           `json:"price"`
	Description string            `json:"description,omitempty"`
	Image       string            `json:"image,omitempty"`
	Available   bool              `json:"available"`
	Recipe      []RecipeComponent `json:"recipe,omitempty"`
	Quantity    int               `json:"quantity"`
	Notes       string            `json:"notes,omitempty"`
}

// Subtotal is price times quantity for the line.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}

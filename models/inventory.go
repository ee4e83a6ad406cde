package models

type InventoryItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Quantity    float64  `json:"quantity"`
	Unit        string   `json:"unit"`
	Threshold   float64  `json:"threshold"`
	CostPerUnit *float64 `json:"costPerUnit,omitempty"`
	Category    string   `json:"category"`
}

func (i InventoryItem) RecordID() string { return i.ID }

// IsLow is advisory only; nothing blocks a sale on low stock.
func (i InventoryItem) IsLow() bool {
	return i.Quantity <= i.Threshold
}

package models

const (
	TableStatusAvailable = "available"
	TableStatusOccupied  = "occupied"
	TableStatusBilled    = "billed"
	TableStatusCleaning  = "cleaning"
)

const (
	TableShapeRectangle = "rectangle"
	TableShapeCircle    = "circle"
)

// Table placement is owned by the floor-plan editor; the ledger only reads
// and writes Status.
type Table struct {
	ID             string  `json:"id"`
	Label          string  `json:"label"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Width          float64 `json:"width"`
	Height         float64 `json:"height"`
	Shape          string  `json:"shape"`
	Seats          int     `json:"seats"`
	Status         string  `json:"status"`
	CurrentOrderID string  `json:"currentOrderId,omitempty"`
}

type Area struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Tables []Table `json:"tables"`
}

func ValidTableStatus(s string) bool {
	switch s {
	case TableStatusAvailable, TableStatusOccupied, TableStatusBilled, TableStatusCleaning:
		return true
	}
	return false
}

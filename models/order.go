package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusCompleted = "completed"
)

const (
	OrderTypeDineIn   = "dine-in"
	OrderTypePickup   = "pickup"
	OrderTypeDelivery = "delivery"
)

// OnlineTableID marks orders placed through the online storefront. Such orders
// never touch the floor plan.
const OnlineTableID = "online"

// Order is a committed (or queued) sale. After commit only Status changes.
type Order struct {
	ID            string     `json:"id"`
	CreatedAt     time.Time  `json:"created_at"`
	Status        string     `json:"status"`
	Total         float64    `json:"total"`
	Items         []LineItem `json:"items"`
	PaymentMethod string     `json:"payment_method"`
	TableID       string     `json:"tableId,omitempty"`
	CustomerName  string     `json:"customerName,omitempty"`
	CustomerPhone string     `json:"customerPhone,omitempty"`
	OrderType     string     `json:"orderType,omitempty"`
}

// IsActive reports whether the order still belongs on a kitchen display.
func (o Order) IsActive() bool {
	return o.Status != OrderStatusCompleted
}

// SeatsAtTable reports whether the order references a floor-plan table.
func (o Order) SeatsAtTable() bool {
	return o.TableID != "" && o.TableID != OnlineTableID
}

// ValidOrderStatus reports whether s is one of the four ledger statuses.
func ValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusPreparing, OrderStatusReady, OrderStatusCompleted:
		return true
	}
	return false
}

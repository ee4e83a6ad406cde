package models

import "time"

type Vendor struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	ContactName string `json:"contactName"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
}

func (v Vendor) RecordID() string { return v.ID }

const (
	EmployeeRoleManager = "Manager"
	EmployeeRoleCashier = "Cashier"
	EmployeeRoleChef    = "Chef"
	EmployeeRoleWaiter  = "Waiter"
)

type Employee struct {
	ID         string  `json:"id"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Role       string  `json:"role"`
	HourlyRate float64 `json:"hourlyRate"`
	PIN        string  `json:"pin"`
}

func (e Employee) RecordID() string { return e.ID }

const (
	PurchaseOrderPending  = "Pending"
	PurchaseOrderOrdered  = "Ordered"
	PurchaseOrderReceived = "Received"
)

type PurchaseOrderLine struct {
	InventoryItemID string  `json:"inventoryItemId"`
	Quantity        float64 `json:"quantity"`
	Cost            float64 `json:"cost"`
}

type PurchaseOrder struct {
	ID        string              `json:"id"`
	VendorID  string              `json:"vendorId"`
	Items     []PurchaseOrderLine `json:"items"`
	TotalCost float64             `json:"totalCost"`
	Status    string              `json:"status"`
	Synced    bool                `json:"synced,omitempty"`
	CreatedAt time.Time           `json:"created_at"`
}

func (p PurchaseOrder) RecordID() string { return p.ID }

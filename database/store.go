package database

import (
	"context"
	"time"

	"github.com/yeremiapane/pos-ledger/models"
)

// Collection names. Each is an independent document in the store.
const (
	CollectionOrders         = "orders"
	CollectionOfflineQueue   = "offline-queue"
	CollectionInventory      = "inventory"
	CollectionVendors        = "vendors"
	CollectionEmployees      = "employees"
	CollectionPurchaseOrders = "purchase-orders"
	CollectionLayout         = "restaurant-layout"
	CollectionMenuOverrides  = "menu-overrides"
)

// Store is the durable surface shared by every instance. Writes replace the
// whole document; there is no cross-collection transaction and no conflict
// detection, so concurrent read-modify-write cycles resolve last-writer-wins.
type Store interface {
	// Load returns nil, nil when the collection has never been written.
	Load(ctx context.Context, name string) ([]byte, error)
	Save(ctx context.Context, name string, payload []byte) error
	Remove(ctx context.Context, name string) error

	// ChangesSince lists change log rows with ID greater than afterID,
	// oldest first.
	ChangesSince(ctx context.Context, afterID uint, limit int) ([]models.DBChange, error)
	LastChangeID(ctx context.Context) (uint, error)
	PruneChanges(ctx context.Context, before time.Time) (int64, error)
}

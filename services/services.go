package services

import (
	"context"
	"time"

	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
)

type Options struct {
	Store database.Store
	// QueueStore holds the offline queue; nil shares Store.
	QueueStore database.Store
	Bus        *kds.Bus
	// Catalog defaults to DefaultCatalog.
	Catalog MenuCatalog

	Online        bool
	CommitLatency time.Duration
	StatusLatency time.Duration
	TaxRate       float64
}

// Services wires one instance's components over a shared store.
type Services struct {
	Bus            *kds.Bus
	Connectivity   *Connectivity
	Ledger         *LedgerStore
	Queue          *OfflineQueue
	Inventory      *InventoryLedger
	Tables         *TableRegistry
	Menu           *MenuService
	Orders         *OrderService
	Sync           *SyncEngine
	Vendors        *RecordSet[models.Vendor]
	Employees      *RecordSet[models.Employee]
	PurchaseOrders *RecordSet[models.PurchaseOrder]
}

func New(opts Options) *Services {
	queueStore := opts.QueueStore
	if queueStore == nil {
		queueStore = opts.Store
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = DefaultCatalog()
	}

	s := &Services{
		Bus:            opts.Bus,
		Connectivity:   NewConnectivity(opts.Online),
		Ledger:         NewLedgerStore(opts.Store, opts.Bus, opts.StatusLatency),
		Queue:          NewOfflineQueue(queueStore, opts.Bus),
		Inventory:      NewInventoryLedger(opts.Store, opts.Bus),
		Tables:         NewTableRegistry(opts.Store, opts.Bus),
		Menu:           NewMenuService(catalog, opts.Store, opts.Bus),
		Vendors:        NewRecordSet(opts.Store, database.CollectionVendors, DefaultVendors),
		Employees:      NewRecordSet(opts.Store, database.CollectionEmployees, DefaultEmployees),
		PurchaseOrders: NewRecordSet[models.PurchaseOrder](opts.Store, database.CollectionPurchaseOrders, nil),
	}
	s.Orders = &OrderService{
		ledger:        s.Ledger,
		queue:         s.Queue,
		inventory:     s.Inventory,
		tables:        s.Tables,
		menu:          s.Menu,
		connectivity:  s.Connectivity,
		bus:           opts.Bus,
		commitLatency: opts.CommitLatency,
		taxRate:       opts.TaxRate,
	}
	s.Sync = &SyncEngine{
		orders:        s.Orders,
		queue:         s.Queue,
		connectivity:  s.Connectivity,
		bus:           opts.Bus,
		commitLatency: opts.CommitLatency,
	}
	return s
}

// Seed writes the default inventory, vendors, employees and floor plan where
// they are absent.
func (s *Services) Seed(ctx context.Context) error {
	if _, err := s.Inventory.List(ctx); err != nil {
		return err
	}
	if err := s.Vendors.Seed(ctx); err != nil {
		return err
	}
	if err := s.Employees.Seed(ctx); err != nil {
		return err
	}
	_, err := s.Tables.Layout(ctx)
	return err
}

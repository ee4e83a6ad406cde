package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
)

// LedgerStore is the committed order collection. Entries are kept newest
// first; readers that care about order sort by created_at.
type LedgerStore struct {
	store         database.Store
	bus           *kds.Bus
	statusLatency time.Duration

	mu sync.Mutex
}

func NewLedgerStore(store database.Store, bus *kds.Bus, statusLatency time.Duration) *LedgerStore {
	return &LedgerStore{store: store, bus: bus, statusLatency: statusLatency}
}

// Commit records the order and notifies ledger subscribers. The id is
// trusted to be unique.
func (l *LedgerStore) Commit(ctx context.Context, order models.Order) (models.Order, error) {
	if err := l.append(ctx, order); err != nil {
		return models.Order{}, err
	}
	l.bus.Publish(ctx, kds.TopicLedgerChanged)
	return order, nil
}

// append writes without notifying, for callers that batch notifications.
func (l *LedgerStore) append(ctx context.Context, order models.Order) error {
	raw, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.ID, err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	entries, err := l.loadRaw(ctx)
	if err != nil {
		return err
	}
	entries = append([]json.RawMessage{raw}, entries...)
	return database.SaveJSON(ctx, l.store, database.CollectionOrders, entries)
}

// List returns every committed order in storage order. Entries that no
// longer decode are skipped.
func (l *LedgerStore) List(ctx context.Context) ([]models.Order, error) {
	entries, err := l.loadRaw(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(entries))
	for _, raw := range entries {
		var o models.Order
		if err := json.Unmarshal(raw, &o); err != nil {
			utils.ErrorLogger.WithField("error", err).Warn("Skipping malformed order")
			continue
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func (l *LedgerStore) Get(ctx context.Context, id string) (models.Order, error) {
	orders, err := l.List(ctx)
	if err != nil {
		return models.Order{}, err
	}
	for _, o := range orders {
		if o.ID == id {
			return o, nil
		}
	}
	return models.Order{}, fmt.Errorf("order %q: %w", id, ErrNotFound)
}

// Active lists orders not yet completed, oldest first.
func (l *LedgerStore) Active(ctx context.Context) ([]models.Order, error) {
	orders, err := l.List(ctx)
	if err != nil {
		return nil, err
	}
	active := make([]models.Order, 0, len(orders))
	for _, o := range orders {
		if o.IsActive() {
			active = append(active, o)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].CreatedAt.Before(active[j].CreatedAt)
	})
	return active, nil
}

// UpdateStatus rewrites the status of one order and leaves every other byte
// of the ledger alone. Unknown ids are a no-op. Any status may follow any
// other.
func (l *LedgerStore) UpdateStatus(ctx context.Context, id, status string) error {
	if !models.ValidOrderStatus(status) {
		return fmt.Errorf("order status %q: %w", status, ErrInvalidStatus)
	}
	ctx = context.WithoutCancel(ctx)
	pause(l.statusLatency)

	encodedStatus, _ := json.Marshal(status)

	l.mu.Lock()
	entries, err := l.loadRaw(ctx)
	if err != nil {
		l.mu.Unlock()
		return err
	}

	found := false
	for i, raw := range entries {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(raw, &fields); err != nil {
			continue
		}
		var entryID string
		if err := json.Unmarshal(fields["id"], &entryID); err != nil || entryID != id {
			continue
		}
		fields["status"] = encodedStatus
		updated, err := json.Marshal(fields)
		if err != nil {
			l.mu.Unlock()
			return fmt.Errorf("encode order %s: %w", id, err)
		}
		entries[i] = updated
		found = true
		break
	}

	if !found {
		l.mu.Unlock()
		utils.InfoLogger.WithField("order_id", id).Debug("Status update for unknown order ignored")
		return nil
	}

	err = database.SaveJSON(ctx, l.store, database.CollectionOrders, entries)
	l.mu.Unlock()
	if err != nil {
		return err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": id,
		"status":   status,
	}).Info("Order status updated")
	l.bus.Publish(ctx, kds.TopicLedgerChanged)
	return nil
}

func (l *LedgerStore) loadRaw(ctx context.Context) ([]json.RawMessage, error) {
	var entries []json.RawMessage
	found, err := database.LoadJSON(ctx, l.store, database.CollectionOrders, &entries)
	if err != nil || !found {
		return nil, err
	}
	return entries, nil
}

func pause(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

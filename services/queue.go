package services

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
)

// OfflineQueue holds orders submitted while the ledger is unreachable, in
// arrival order. Queued orders have no effect on inventory or tables.
type OfflineQueue struct {
	store database.Store
	bus   *kds.Bus

	mu sync.Mutex
}

func NewOfflineQueue(store database.Store, bus *kds.Bus) *OfflineQueue {
	return &OfflineQueue{store: store, bus: bus}
}

func (q *OfflineQueue) Enqueue(ctx context.Context, order models.Order) error {
	q.mu.Lock()
	entries, err := q.load(ctx)
	if err == nil {
		entries = append(entries, order)
		err = database.SaveJSON(ctx, q.store, database.CollectionOfflineQueue, entries)
	}
	q.mu.Unlock()
	if err != nil {
		return err
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"order_id": order.ID,
		"pending":  len(entries),
	}).Info("Order queued offline")
	q.bus.Publish(ctx, kds.TopicQueueChanged)
	return nil
}

// PeekAll returns the queued orders, oldest first.
func (q *OfflineQueue) PeekAll(ctx context.Context) ([]models.Order, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.load(ctx)
}

func (q *OfflineQueue) Len(ctx context.Context) (int, error) {
	entries, err := q.PeekAll(ctx)
	return len(entries), err
}

// DropFirst removes the n oldest entries. Orders queued after a flush took
// its snapshot survive. An emptied queue removes the collection.
func (q *OfflineQueue) DropFirst(ctx context.Context, n int) error {
	if n <= 0 {
		return nil
	}
	q.mu.Lock()
	defer q.mu.Unlock()

	entries, err := q.load(ctx)
	if err != nil {
		return err
	}
	if n >= len(entries) {
		return q.store.Remove(ctx, database.CollectionOfflineQueue)
	}
	return database.SaveJSON(ctx, q.store, database.CollectionOfflineQueue, entries[n:])
}

func (q *OfflineQueue) load(ctx context.Context) ([]models.Order, error) {
	var entries []models.Order
	found, err := database.LoadJSON(ctx, q.store, database.CollectionOfflineQueue, &entries)
	if err != nil {
		return nil, err
	}
	if !found || entries == nil {
		entries = []models.Order{}
	}
	return entries, nil
}

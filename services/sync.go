package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/utils"
)

// SyncEngine drains the offline queue through the commit path.
type SyncEngine struct {
	orders        *OrderService
	queue         *OfflineQueue
	connectivity  *Connectivity
	bus           *kds.Bus
	commitLatency time.Duration

	// flushes on one instance never interleave
	mu sync.Mutex
}

// Flush commits every queued order in arrival order, removes them from the
// queue and emits one notification per affected topic. An empty queue is a
// no-op; a non-empty one needs connectivity. It returns how many
// orders were committed. When a commit fails the committed prefix is removed
// from the queue, the rest stays queued and the error wraps ErrFlushPartial.
// A crash between a commit and the queue removal commits that order again on
// the next flush.
func (e *SyncEngine) Flush(ctx context.Context) (int, error) {
	ctx = context.WithoutCancel(ctx)

	e.mu.Lock()
	defer e.mu.Unlock()

	entries, err := e.queue.PeekAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("read offline queue: %w", err)
	}
	if len(entries) == 0 {
		return 0, nil
	}
	if !e.connectivity.Online() {
		return 0, ErrOffline
	}

	pause(e.commitLatency)

	topics := []string{}
	for i, order := range entries {
		touched, err := e.orders.commit(ctx, order)
		if err != nil {
			if i > 0 {
				if dropErr := e.queue.DropFirst(ctx, i); dropErr != nil {
					utils.ErrorLogger.WithField("error", dropErr).Error("Could not trim flushed orders from the queue")
				}
				e.bus.Publish(ctx, append(topics, kds.TopicQueueChanged)...)
			}
			utils.ErrorLogger.WithFields(logrus.Fields{
				"order_id":  order.ID,
				"committed": i,
				"remaining": len(entries) - i,
				"error":     err,
			}).Error("Flush stopped")
			return i, fmt.Errorf("%w: committed %d of %d: %w", ErrFlushPartial, i, len(entries), err)
		}
		topics = append(topics, touched...)
	}

	if err := e.queue.DropFirst(ctx, len(entries)); err != nil {
		e.bus.Publish(ctx, topics...)
		return len(entries), fmt.Errorf("clear offline queue: %w", err)
	}
	e.bus.Publish(ctx, append(topics, kds.TopicQueueChanged)...)

	utils.InfoLogger.WithField("count", len(entries)).Info("Offline queue flushed")
	return len(entries), nil
}

// Run flushes on every tick while online and the queue is not empty, until
// ctx is done.
func (e *SyncEngine) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !e.connectivity.Online() {
				continue
			}
			pending, err := e.queue.Len(ctx)
			if err != nil {
				utils.ErrorLogger.WithField("error", err).Warn("Auto sync could not read the queue")
				continue
			}
			if pending == 0 {
				continue
			}
			if _, err := e.Flush(ctx); err != nil {
				utils.ErrorLogger.WithField("error", err).Warn("Auto sync failed")
			}
		}
	}
}

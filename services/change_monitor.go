package services

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/utils"
)

const changeBatch = 100

// ChangeMonitor polls the shared change log and republishes writes made by
// other instances on the local bus. It is the cross-instance path that needs
// nothing but the shared database.
type ChangeMonitor struct {
	Store     database.Store
	Bus       *kds.Bus
	StopChan  chan struct{}
	Interval  time.Duration
	Retention time.Duration

	lastID    uint
	lastPrune time.Time
	done      chan struct{}
}

func NewChangeMonitor(store database.Store, bus *kds.Bus) *ChangeMonitor {
	return &ChangeMonitor{
		Store:     store,
		Bus:       bus,
		StopChan:  make(chan struct{}),
		Interval:  500 * time.Millisecond,
		Retention: 24 * time.Hour,
		done:      make(chan struct{}),
	}
}

// Start skips changes that predate it and begins polling.
func (cm *ChangeMonitor) Start() error {
	last, err := cm.Store.LastChangeID(context.Background())
	if err != nil {
		return err
	}
	cm.lastID = last

	go func() {
		defer close(cm.done)
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges(context.Background())
			case <-cm.StopChan:
				return
			}
		}
	}()
	return nil
}

// Stop ends polling and waits for the loop to exit.
func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
	<-cm.done
}

func (cm *ChangeMonitor) checkChanges(ctx context.Context) {
	for {
		changes, err := cm.Store.ChangesSince(ctx, cm.lastID, changeBatch)
		if err != nil {
			utils.ErrorLogger.WithField("error", err).Warn("Error fetching changes")
			return
		}

		for _, change := range changes {
			cm.lastID = change.ID
			if change.Origin == cm.Bus.Origin() {
				continue
			}
			topic, ok := kds.TopicForCollection(change.Collection)
			if !ok {
				continue
			}
			utils.InfoLogger.WithFields(logrus.Fields{
				"collection": change.Collection,
				"origin":     change.Origin,
				"revision":   change.Revision,
			}).Debug("Processing change")
			cm.Bus.PublishLocal(kds.Event{Topic: topic, Origin: change.Origin, At: change.ChangedAt})
		}

		if len(changes) < changeBatch {
			break
		}
	}

	cm.prune(ctx)
}

func (cm *ChangeMonitor) prune(ctx context.Context) {
	if cm.Retention <= 0 || time.Since(cm.lastPrune) < time.Hour {
		return
	}
	cm.lastPrune = time.Now()
	n, err := cm.Store.PruneChanges(ctx, time.Now().Add(-cm.Retention))
	if err != nil {
		utils.ErrorLogger.WithField("error", err).Warn("Error pruning change log")
		return
	}
	if n > 0 {
		utils.InfoLogger.Printf("Pruned %d change log rows", n)
	}
}

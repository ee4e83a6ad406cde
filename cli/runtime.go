package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/config"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
	"gorm.io/gorm"
)

// Runtime is one terminal's wired services over the configured databases.
type Runtime struct {
	Config   *config.Config
	Store    *database.GormStore
	Services *services.Services

	closers []func() error
}

// OpenRuntime connects, migrates and seeds. ctx bounds the broadcast
// subscription, so pass the command's lifetime context.
func OpenRuntime(ctx context.Context, cfg *config.Config) (*Runtime, error) {
	rt := &Runtime{Config: cfg}

	db, err := config.InitDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := rt.addDB(db); err != nil {
		rt.Close()
		return nil, err
	}
	rt.Store = database.NewGormStore(db, cfg.InstanceID)

	queueStore := rt.Store
	queueDB, err := config.InitQueueDB(cfg, db)
	if err != nil {
		rt.Close()
		return nil, err
	}
	if queueDB != db {
		if err := rt.addDB(queueDB); err != nil {
			rt.Close()
			return nil, err
		}
		queueStore = database.NewGormStore(queueDB, cfg.InstanceID)
	}

	transport, err := newTransport(cfg)
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("broadcast transport %s: %w", cfg.BroadcastTransport, err)
	}
	bus := kds.NewBus(cfg.InstanceID, transport)
	rt.closers = append(rt.closers, bus.Close)
	if err := bus.Start(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("subscribe to %s: %w", cfg.BroadcastTransport, err)
	}

	rt.Services = services.New(services.Options{
		Store:         rt.Store,
		QueueStore:    queueStore,
		Bus:           bus,
		Online:        !cfg.StartOffline,
		CommitLatency: cfg.CommitLatency,
		StatusLatency: cfg.StatusLatency,
		TaxRate:       cfg.TaxRate,
	})
	if err := rt.Services.Seed(ctx); err != nil {
		rt.Close()
		return nil, fmt.Errorf("seed defaults: %w", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"instance":  cfg.InstanceID,
		"driver":    cfg.DBDriver,
		"transport": cfg.BroadcastTransport,
		"online":    !cfg.StartOffline,
	}).Debug("Runtime ready")
	return rt, nil
}

func (rt *Runtime) addDB(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	rt.closers = append(rt.closers, sqlDB.Close)
	return database.Migrate(db)
}

// Close releases everything in reverse order of opening.
func (rt *Runtime) Close() {
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			utils.ErrorLogger.Warnf("Error during shutdown: %v", err)
		}
	}
	rt.closers = nil
}

func newTransport(cfg *config.Config) (kds.Transport, error) {
	switch cfg.BroadcastTransport {
	case config.TransportNATS:
		t, err := kds.NewNATSTransport(cfg.NATSURL, cfg.BroadcastSubject)
		if err != nil {
			return nil, err
		}
		return t, nil
	case config.TransportRabbitMQ:
		t, err := kds.NewRabbitTransport(cfg.RabbitMQURL, cfg.BroadcastSubject)
		if err != nil {
			return nil, err
		}
		return t, nil
	}
	return nil, nil
}

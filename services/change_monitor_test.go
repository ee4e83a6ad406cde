package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSharedDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

func TestChangeMonitorRelaysOtherInstances(t *testing.T) {
	db := openSharedDB(t)
	ctx := context.Background()

	tillBus := kds.NewBus("till-1", nil)
	till := New(Options{Store: database.NewGormStore(db, "till-1"), Bus: tillBus, Online: true})
	require.NoError(t, till.Seed(ctx))

	kitchenBus := kds.NewBus("kitchen", nil)
	kitchenStore := database.NewGormStore(db, "kitchen")
	kitchen := New(Options{Store: kitchenStore, Bus: kitchenBus, Online: true})

	monitor := NewChangeMonitor(kitchenStore, kitchenBus)
	monitor.Interval = 10 * time.Millisecond
	require.NoError(t, monitor.Start())
	defer monitor.Stop()

	sub := kitchenBus.Subscribe(kds.TopicLedgerChanged)
	defer sub.Close()

	res, err := till.Orders.Submit(ctx, models.Order{Items: []models.LineItem{recipeLine("x", 1)}})
	require.NoError(t, err)

	select {
	case e := <-sub.C():
		assert.Equal(t, "till-1", e.Origin)
	case <-time.After(2 * time.Second):
		t.Fatal("kitchen never heard about the order")
	}

	got, err := kitchen.Ledger.Get(ctx, res.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, got.Status)
}

func TestChangeMonitorIgnoresOwnWrites(t *testing.T) {
	db := openSharedDB(t)
	ctx := context.Background()

	bus := kds.NewBus("kitchen", nil)
	store := database.NewGormStore(db, "kitchen")
	svc := New(Options{Store: store, Bus: bus, Online: true})

	monitor := NewChangeMonitor(store, bus)
	monitor.Interval = 10 * time.Millisecond
	require.NoError(t, monitor.Start())
	defer monitor.Stop()

	_, err := svc.Ledger.Commit(ctx, models.Order{ID: "own", Status: models.OrderStatusPending})
	require.NoError(t, err)

	sub := bus.Subscribe()
	defer sub.Close()
	select {
	case e := <-sub.C():
		t.Fatalf("unexpected relay of %+v", e)
	case <-time.After(100 * time.Millisecond):
	}
}

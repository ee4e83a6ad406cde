package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
)

type testEnv struct {
	svc   *Services
	store *database.MemoryStore
	queue *database.MemoryStore
	sub   *kds.Subscription
}

func newTestEnv(t *testing.T, online bool) *testEnv {
	t.Helper()
	return newTestEnvWithStore(t, online, nil)
}

// newTestEnvWithStore lets a test wrap the ledger store.
func newTestEnvWithStore(t *testing.T, online bool, wrap func(database.Store) database.Store) *testEnv {
	t.Helper()
	store := database.NewMemoryStore("till-1")
	queue := database.NewMemoryStore("till-1")
	bus := kds.NewBus("till-1", nil)

	var ledgerStore database.Store = store
	if wrap != nil {
		ledgerStore = wrap(store)
	}
	svc := New(Options{
		Store:      ledgerStore,
		QueueStore: queue,
		Bus:        bus,
		Online:     online,
		TaxRate:    0.10,
	})
	require.NoError(t, svc.Seed(context.Background()))

	sub := bus.Subscribe()
	t.Cleanup(func() { bus.Close() })
	return &testEnv{svc: svc, store: store, queue: queue, sub: sub}
}

// events drains what the bus delivered so far.
func (e *testEnv) events() []string {
	var topics []string
	for {
		select {
		case ev := <-e.sub.C():
			topics = append(topics, ev.Topic)
		case <-time.After(20 * time.Millisecond):
			return topics
		}
	}
}

func countTopic(topics []string, topic string) int {
	n := 0
	for _, t := range topics {
		if t == topic {
			n++
		}
	}
	return n
}

func recipeLine(name string, qty int, recipe ...models.RecipeComponent) models.LineItem {
	return models.LineItem{ID: name, Name: name, Price: 10, Available: true, Quantity: qty, Recipe: recipe}
}

func cheese(qty float64) models.RecipeComponent {
	return models.RecipeComponent{InventoryItemID: "inv-2", Quantity: qty}
}

func stockOf(t *testing.T, svc *Services, id string) float64 {
	t.Helper()
	item, err := svc.Inventory.Get(context.Background(), id)
	require.NoError(t, err)
	return item.Quantity
}

func tableStatus(t *testing.T, svc *Services, tableID string) string {
	t.Helper()
	areas, err := svc.Tables.Layout(context.Background())
	require.NoError(t, err)
	for _, a := range areas {
		for _, tb := range a.Tables {
			if tb.ID == tableID {
				return tb.Status
			}
		}
	}
	t.Fatalf("table %s not found", tableID)
	return ""
}

// flakyStore fails Save on one collection after a number of successful saves.
type flakyStore struct {
	database.Store
	collection string
	allowed    int

	mu    sync.Mutex
	saves int
}

func (f *flakyStore) Save(ctx context.Context, name string, payload []byte) error {
	if name == f.collection {
		f.mu.Lock()
		f.saves++
		fail := f.saves > f.allowed
		f.mu.Unlock()
		if fail {
			return errors.New("disk full")
		}
	}
	return f.Store.Save(ctx, name, payload)
}

package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
)

func TestLedgerCommitNewestFirst(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for i, id := range []string{"a", "b", "c"} {
		_, err := env.svc.Ledger.Commit(ctx, models.Order{
			ID:        id,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
			Status:    models.OrderStatusPending,
			Items:     []models.LineItem{recipeLine("x", 1)},
		})
		require.NoError(t, err)
	}

	orders, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 3)
	assert.Equal(t, "c", orders[0].ID)
	assert.Equal(t, "a", orders[2].ID)
	assert.Equal(t, 3, countTopic(env.events(), kds.TopicLedgerChanged))
}

func TestLedgerActiveSortsOldestFirstAndHidesCompleted(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	orders := []models.Order{
		{ID: "late", CreatedAt: base.Add(2 * time.Minute), Status: models.OrderStatusPending},
		{ID: "done", CreatedAt: base, Status: models.OrderStatusCompleted},
		{ID: "early", CreatedAt: base.Add(time.Minute), Status: models.OrderStatusReady},
	}
	for _, o := range orders {
		_, err := env.svc.Ledger.Commit(ctx, o)
		require.NoError(t, err)
	}

	active, err := env.svc.Ledger.Active(ctx)
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, "early", active[0].ID)
	assert.Equal(t, "late", active[1].ID)
}

func TestUpdateStatusTouchesOnlyStatus(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	first, err := env.svc.Orders.Submit(ctx, models.Order{
		Items:         []models.LineItem{recipeLine("Margherita", 2, cheese(1))},
		Total:         27.5,
		PaymentMethod: "card",
		TableID:       "t1",
	})
	require.NoError(t, err)
	second, err := env.svc.Orders.Submit(ctx, models.Order{Items: []models.LineItem{recipeLine("Espresso", 1)}})
	require.NoError(t, err)

	before, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	env.events()

	require.NoError(t, env.svc.Ledger.UpdateStatus(ctx, first.Order.ID, models.OrderStatusReady))

	after, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before))

	for i := range before {
		want := before[i]
		if want.ID == first.Order.ID {
			want.Status = models.OrderStatusReady
		}
		assert.Equal(t, want, after[i])
	}

	untouched, err := env.svc.Ledger.Get(ctx, second.Order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, untouched.Status)
	assert.Equal(t, []string{kds.TopicLedgerChanged}, env.events())
}

func TestUpdateStatusAllowsAnyTransition(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	res, err := env.svc.Orders.Submit(ctx, models.Order{Items: []models.LineItem{recipeLine("x", 1)}})
	require.NoError(t, err)

	for _, s := range []string{models.OrderStatusCompleted, models.OrderStatusPending, models.OrderStatusPreparing} {
		require.NoError(t, env.svc.Ledger.UpdateStatus(ctx, res.Order.ID, s))
		got, err := env.svc.Ledger.Get(ctx, res.Order.ID)
		require.NoError(t, err)
		assert.Equal(t, s, got.Status)
	}
}

func TestUpdateStatusUnknownIDIsNoop(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	_, err := env.svc.Orders.Submit(ctx, models.Order{Items: []models.LineItem{recipeLine("x", 1)}})
	require.NoError(t, err)
	env.events()

	last, err := env.store.LastChangeID(ctx)
	require.NoError(t, err)

	require.NoError(t, env.svc.Ledger.UpdateStatus(ctx, "missing", models.OrderStatusReady))

	now, err := env.store.LastChangeID(ctx)
	require.NoError(t, err)
	assert.Equal(t, last, now)
	assert.Empty(t, env.events())
}

func TestUpdateStatusRejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t, true)
	err := env.svc.Ledger.UpdateStatus(context.Background(), "any", "burnt")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestLedgerSkipsMalformedEntries(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	require.NoError(t, env.store.Save(ctx, database.CollectionOrders,
		[]byte(`[{"id":"ok","status":"pending","items":[]}, "garbage"]`)))

	orders, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ok", orders[0].ID)

	_, err = env.svc.Ledger.Get(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLedgerTreatsUnreadableCollectionAsEmpty(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	require.NoError(t, env.store.Save(ctx, database.CollectionOrders, []byte(`{not json`)))

	orders, err := env.svc.Ledger.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

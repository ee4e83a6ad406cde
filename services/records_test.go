package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-ledger/models"
)

func TestBackOfficeSeeding(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	vendors, err := env.svc.Vendors.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, DefaultVendors(), vendors)

	employees, err := env.svc.Employees.List(ctx)
	require.NoError(t, err)
	require.Len(t, employees, 2)
	assert.Equal(t, models.EmployeeRoleManager, employees[0].Role)

	pos, err := env.svc.PurchaseOrders.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, pos)
}

func TestRecordSetUpsertGetDelete(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	po := models.PurchaseOrder{
		ID:        "po-1",
		VendorID:  "ven-2",
		Items:     []models.PurchaseOrderLine{{InventoryItemID: "inv-2", Quantity: 10, Cost: 4}},
		TotalCost: 40,
		Status:    models.PurchaseOrderPending,
		CreatedAt: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
	}
	_, err := env.svc.PurchaseOrders.Upsert(ctx, po)
	require.NoError(t, err)

	po.Status = models.PurchaseOrderOrdered
	_, err = env.svc.PurchaseOrders.Upsert(ctx, po)
	require.NoError(t, err)

	got, err := env.svc.PurchaseOrders.Get(ctx, "po-1")
	require.NoError(t, err)
	assert.Equal(t, po, got)

	all, err := env.svc.PurchaseOrders.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, env.svc.PurchaseOrders.Delete(ctx, "po-1"))
	_, err = env.svc.PurchaseOrders.Get(ctx, "po-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, env.svc.Vendors.Delete(ctx, "ven-9"), ErrNotFound)
}

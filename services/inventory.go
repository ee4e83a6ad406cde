package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
)

// InventoryLedger tracks stock. Sales deduct recipe quantities and never
// drive stock below zero; insufficient stock never blocks a sale.
type InventoryLedger struct {
	items *RecordSet[models.InventoryItem]
	bus   *kds.Bus
}

func NewInventoryLedger(store database.Store, bus *kds.Bus) *InventoryLedger {
	return &InventoryLedger{
		items: NewRecordSet(store, database.CollectionInventory, DefaultInventory),
		bus:   bus,
	}
}

func (l *InventoryLedger) List(ctx context.Context) ([]models.InventoryItem, error) {
	return l.items.List(ctx)
}

func (l *InventoryLedger) Get(ctx context.Context, id string) (models.InventoryItem, error) {
	return l.items.Get(ctx, id)
}

// LowStock lists items at or under their threshold.
func (l *InventoryLedger) LowStock(ctx context.Context) ([]models.InventoryItem, error) {
	items, err := l.items.List(ctx)
	if err != nil {
		return nil, err
	}
	low := []models.InventoryItem{}
	for _, it := range items {
		if it.IsLow() {
			low = append(low, it)
		}
	}
	return low, nil
}

// Deduct applies the order's recipes and notifies once if stock moved.
func (l *InventoryLedger) Deduct(ctx context.Context, order models.Order) error {
	changed, err := l.deduct(ctx, order)
	if err != nil {
		return err
	}
	if changed {
		l.bus.Publish(ctx, kds.TopicInventoryChanged)
	}
	return nil
}

func (l *InventoryLedger) deduct(ctx context.Context, order models.Order) (bool, error) {
	draws := recipeDraws(order)
	if len(draws) == 0 {
		return false, nil
	}

	changed := false
	err := l.items.Update(ctx, func(items []models.InventoryItem) ([]models.InventoryItem, bool, error) {
		for i := range items {
			amount, ok := draws[items[i].ID]
			if !ok {
				continue
			}
			items[i].Quantity = math.Max(0, items[i].Quantity-amount)
			changed = true
		}
		return items, changed, nil
	})
	if err != nil {
		return false, fmt.Errorf("deduct inventory for order %s: %w", order.ID, err)
	}
	if changed {
		utils.InfoLogger.WithFields(logrus.Fields{
			"order_id": order.ID,
			"items":    len(draws),
		}).Info("Inventory deducted")
	}
	return changed, nil
}

// recipeDraws sums component quantity times line quantity per inventory id.
func recipeDraws(order models.Order) map[string]float64 {
	draws := make(map[string]float64)
	for _, line := range order.Items {
		for _, c := range line.Recipe {
			if c.InventoryItemID == "" {
				continue
			}
			draws[c.InventoryItemID] += c.Quantity * float64(line.Quantity)
		}
	}
	return draws
}

// Upsert is the administrative edit path. Quantities are clamped at zero.
func (l *InventoryLedger) Upsert(ctx context.Context, item models.InventoryItem) (models.InventoryItem, error) {
	if strings.TrimSpace(item.Name) == "" {
		return models.InventoryItem{}, fmt.Errorf("inventory item name is required: %w", ErrInvalidRecord)
	}
	if item.ID == "" {
		item.ID = "inv-" + uuid.NewString()[:8]
	}
	item.Quantity = math.Max(0, item.Quantity)

	saved, err := l.items.Upsert(ctx, item)
	if err != nil {
		return models.InventoryItem{}, err
	}
	l.bus.Publish(ctx, kds.TopicInventoryChanged)
	return saved, nil
}

func (l *InventoryLedger) Delete(ctx context.Context, id string) error {
	if err := l.items.Delete(ctx, id); err != nil {
		return err
	}
	l.bus.Publish(ctx, kds.TopicInventoryChanged)
	return nil
}

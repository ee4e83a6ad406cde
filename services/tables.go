package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/utils"
)

// TableRegistry owns table occupancy. Geometry belongs to the floor-plan
// editor and is written back untouched.
type TableRegistry struct {
	store database.Store
	bus   *kds.Bus

	mu sync.Mutex
}

func NewTableRegistry(store database.Store, bus *kds.Bus) *TableRegistry {
	return &TableRegistry{store: store, bus: bus}
}

// Layout returns every area, seeding the default floor when none exists.
func (r *TableRegistry) Layout(ctx context.Context) ([]models.Area, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(ctx)
}

// SaveLayout replaces the whole floor plan.
func (r *TableRegistry) SaveLayout(ctx context.Context, areas []models.Area) error {
	for _, a := range areas {
		for _, t := range a.Tables {
			if !models.ValidTableStatus(t.Status) {
				return fmt.Errorf("table %s status %q: %w", t.ID, t.Status, ErrInvalidStatus)
			}
		}
	}
	if areas == nil {
		areas = []models.Area{}
	}

	r.mu.Lock()
	err := database.SaveJSON(ctx, r.store, database.CollectionLayout, areas)
	r.mu.Unlock()
	if err != nil {
		return err
	}
	r.bus.Publish(ctx, kds.TopicLayoutChanged)
	return nil
}

// SetStatus overwrites one table's status and returns the updated layout.
func (r *TableRegistry) SetStatus(ctx context.Context, areaID, tableID, status string) ([]models.Area, error) {
	if !models.ValidTableStatus(status) {
		return nil, fmt.Errorf("table status %q: %w", status, ErrInvalidStatus)
	}

	r.mu.Lock()
	areas, err := r.load(ctx)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	t := findTable(areas, areaID, tableID)
	if t == nil {
		r.mu.Unlock()
		return nil, fmt.Errorf("table %s in area %s: %w", tableID, areaID, ErrNotFound)
	}
	t.Status = status
	if status != models.TableStatusOccupied {
		t.CurrentOrderID = ""
	}
	err = database.SaveJSON(ctx, r.store, database.CollectionLayout, areas)
	r.mu.Unlock()
	if err != nil {
		return nil, err
	}

	r.bus.Publish(ctx, kds.TopicLayoutChanged)
	return areas, nil
}

// occupy marks the table carrying tableID as occupied by orderID, scanning
// every area. An unknown table is not an error.
func (r *TableRegistry) occupy(ctx context.Context, tableID, orderID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	areas, err := r.load(ctx)
	if err != nil {
		return false, err
	}
	var t *models.Table
	for i := range areas {
		if t = findTable(areas, areas[i].ID, tableID); t != nil {
			break
		}
	}
	if t == nil {
		utils.InfoLogger.WithField("table_id", tableID).Debug("Order references unknown table")
		return false, nil
	}

	t.Status = models.TableStatusOccupied
	t.CurrentOrderID = orderID
	if err := database.SaveJSON(ctx, r.store, database.CollectionLayout, areas); err != nil {
		return false, fmt.Errorf("occupy table %s: %w", tableID, err)
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"table_id": tableID,
		"order_id": orderID,
	}).Info("Table occupied")
	return true, nil
}

func (r *TableRegistry) load(ctx context.Context) ([]models.Area, error) {
	var areas []models.Area
	found, err := database.LoadJSON(ctx, r.store, database.CollectionLayout, &areas)
	if err != nil {
		return nil, err
	}
	if found {
		return areas, nil
	}
	areas = DefaultLayout()
	if err := database.SaveJSON(ctx, r.store, database.CollectionLayout, areas); err != nil {
		return nil, err
	}
	return areas, nil
}

func findTable(areas []models.Area, areaID, tableID string) *models.Table {
	for i := range areas {
		if areas[i].ID != areaID {
			continue
		}
		for j := range areas[i].Tables {
			if areas[i].Tables[j].ID == tableID {
				return &areas[i].Tables[j]
			}
		}
	}
	return nil
}

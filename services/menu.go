package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/yeremiapane/pos-ledger/database"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
)

// MenuCatalog supplies the read-only menu.
type MenuCatalog interface {
	Categories(ctx context.Context) ([]models.Category, error)
}

// StaticCatalog is a fixed, in-memory menu.
type StaticCatalog []models.Category

func (c StaticCatalog) Categories(context.Context) ([]models.Category, error) {
	out := make([]models.Category, len(c))
	for i, cat := range c {
		out[i] = models.Category{Name: cat.Name, Items: append([]models.MenuItem(nil), cat.Items...)}
	}
	return out, nil
}

// MenuService layers stored overrides on top of the catalog.
type MenuService struct {
	catalog MenuCatalog
	store   database.Store
	bus     *kds.Bus

	mu sync.Mutex
}

func NewMenuService(catalog MenuCatalog, store database.Store, bus *kds.Bus) *MenuService {
	return &MenuService{catalog: catalog, store: store, bus: bus}
}

func (m *MenuService) Overrides(ctx context.Context) (map[string]models.MenuOverride, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loadOverrides(ctx)
}

// UpdateOverride merges patch into the item's stored override.
func (m *MenuService) UpdateOverride(ctx context.Context, itemID string, patch models.MenuOverride) (models.MenuOverride, error) {
	if _, err := m.catalogItem(ctx, itemID); err != nil {
		return models.MenuOverride{}, err
	}

	m.mu.Lock()
	overrides, err := m.loadOverrides(ctx)
	if err != nil {
		m.mu.Unlock()
		return models.MenuOverride{}, err
	}
	merged := overrides[itemID].Merge(patch)
	merged.ID = itemID
	overrides[itemID] = merged
	err = database.SaveJSON(ctx, m.store, database.CollectionMenuOverrides, overrides)
	m.mu.Unlock()
	if err != nil {
		return models.MenuOverride{}, err
	}

	m.bus.Publish(ctx, kds.TopicMenuChanged)
	return merged, nil
}

// Menu returns the catalog with overrides applied.
func (m *MenuService) Menu(ctx context.Context) ([]models.Category, error) {
	categories, err := m.catalog.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("read menu catalog: %w", err)
	}
	overrides, err := m.Overrides(ctx)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		for j, item := range categories[i].Items {
			if o, ok := overrides[item.ID]; ok {
				categories[i].Items[j] = o.Apply(item)
			}
		}
	}
	return categories, nil
}

// Lookup returns one menu item with its override applied.
func (m *MenuService) Lookup(ctx context.Context, itemID string) (models.MenuItem, error) {
	item, err := m.catalogItem(ctx, itemID)
	if err != nil {
		return models.MenuItem{}, err
	}
	overrides, err := m.Overrides(ctx)
	if err != nil {
		return models.MenuItem{}, err
	}
	if o, ok := overrides[itemID]; ok {
		item = o.Apply(item)
	}
	return item, nil
}

func (m *MenuService) catalogItem(ctx context.Context, itemID string) (models.MenuItem, error) {
	categories, err := m.catalog.Categories(ctx)
	if err != nil {
		return models.MenuItem{}, fmt.Errorf("read menu catalog: %w", err)
	}
	for _, cat := range categories {
		for _, item := range cat.Items {
			if item.ID == itemID {
				return item, nil
			}
		}
	}
	return models.MenuItem{}, fmt.Errorf("menu item %q: %w", itemID, ErrUnknownMenuItem)
}

func (m *MenuService) loadOverrides(ctx context.Context) (map[string]models.MenuOverride, error) {
	overrides := map[string]models.MenuOverride{}
	found, err := database.LoadJSON(ctx, m.store, database.CollectionMenuOverrides, &overrides)
	if err != nil {
		return nil, err
	}
	if !found || overrides == nil {
		overrides = map[string]models.MenuOverride{}
	}
	return overrides, nil
}

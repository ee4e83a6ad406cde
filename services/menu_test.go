package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/models"
)

func TestOverridesMergeField(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	price := 14.0
	_, err := env.svc.Menu.UpdateOverride(ctx, "pizza-margherita", models.MenuOverride{Price: &price})
	require.NoError(t, err)

	off := false
	merged, err := env.svc.Menu.UpdateOverride(ctx, "pizza-margherita", models.MenuOverride{Available: &off})
	require.NoError(t, err)
	require.NotNil(t, merged.Price)
	assert.Equal(t, 14.0, *merged.Price)
	require.NotNil(t, merged.Available)
	assert.False(t, *merged.Available)

	item, err := env.svc.Menu.Lookup(ctx, "pizza-margherita")
	require.NoError(t, err)
	assert.Equal(t, 14.0, item.Price)
	assert.False(t, item.Available)
	assert.Len(t, item.Recipe, 3)

	assert.Equal(t, 2, countTopic(env.events(), kds.TopicMenuChanged))
}

func TestMenuAppliesOverridesWithoutTouchingCatalog(t *testing.T) {
	env := newTestEnv(t, true)
	ctx := context.Background()

	recipe := []models.RecipeComponent{{InventoryItemID: "inv-4", Quantity: 0.01}}
	_, err := env.svc.Menu.UpdateOverride(ctx, "garlic-bread", models.MenuOverride{Recipe: recipe})
	require.NoError(t, err)

	menu, err := env.svc.Menu.Menu(ctx)
	require.NoError(t, err)
	var found models.MenuItem
	for _, c := range menu {
		for _, it := range c.Items {
			if it.ID == "garlic-bread" {
				found = it
			}
		}
	}
	assert.Equal(t, recipe, found.Recipe)

	catalog, err := DefaultCatalog().Categories(ctx)
	require.NoError(t, err)
	assert.Empty(t, catalog[1].Items[1].Recipe)
}

func TestUpdateOverrideUnknownItem(t *testing.T) {
	env := newTestEnv(t, true)
	price := 1.0
	_, err := env.svc.Menu.UpdateOverride(context.Background(), "nope", models.MenuOverride{Price: &price})
	assert.ErrorIs(t, err, ErrUnknownMenuItem)
}

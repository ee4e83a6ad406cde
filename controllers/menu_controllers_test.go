package controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/pos-ledger/controllers"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
)

func setupMenuRouter(svc *services.Services) *gin.Engine {
	router := setupOrderRouter(svc)
	menuCtrl := controllers.NewMenuController(svc)
	router.GET("/menu", menuCtrl.GetMenu)
	router.GET("/menu/overrides", menuCtrl.GetOverrides)
	router.PATCH("/menu/:item_id/override", menuCtrl.UpdateOverride)
	return router
}

func TestMenuOverrideFlow(t *testing.T) {
	svc := setupServices(t, true)
	router := setupMenuRouter(svc)

	w, env := doJSON(t, router, http.MethodGet, "/menu", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var menu []models.Category
	decode(t, env.Data, &menu)
	require.NotEmpty(t, menu)

	w, _ = doJSON(t, router, http.MethodPatch, "/menu/espresso/override", map[string]interface{}{"price": 3.25})
	require.Equal(t, http.StatusOK, w.Code)
	w, env = doJSON(t, router, http.MethodPatch, "/menu/espresso/override", map[string]interface{}{"available": false})
	require.Equal(t, http.StatusOK, w.Code)

	var merged models.MenuOverride
	decode(t, env.Data, &merged)
	require.NotNil(t, merged.Price)
	assert.Equal(t, 3.25, *merged.Price)
	require.NotNil(t, merged.Available)
	assert.False(t, *merged.Available)

	w, env = doJSON(t, router, http.MethodGet, "/menu/overrides", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var overrides map[string]models.MenuOverride
	decode(t, env.Data, &overrides)
	assert.Contains(t, overrides, "espresso")

	// switched-off items can no longer be sold
	w, _ = doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"menuItemId": "espresso", "quantity": 1}},
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = doJSON(t, router, http.MethodPatch, "/menu/unknown/override", map[string]interface{}{"price": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

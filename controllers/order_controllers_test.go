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

func setupOrderRouter(svc *services.Services) *gin.Engine {
	router := gin.New()
	orderCtrl := controllers.NewOrderController(svc)
	router.GET("/orders", orderCtrl.GetAllOrders)
	router.GET("/orders/active", orderCtrl.GetActiveOrders)
	router.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	router.POST("/orders", orderCtrl.Checkout)
	router.POST("/orders/online", orderCtrl.CreateOnlineOrder)
	router.POST("/orders/submit", orderCtrl.SubmitOrder)
	router.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)
	return router
}

func TestCheckoutAndGetOrder(t *testing.T) {
	svc := setupServices(t, true)
	router := setupOrderRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"tableId": "t1",
		"items": []map[string]interface{}{
			{"menuItemId": "pizza-margherita", "quantity": 2},
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.True(t, env.Status)

	var res services.SubmitResult
	decode(t, env.Data, &res)
	assert.False(t, res.Queued)
	assert.Equal(t, 27.5, res.Order.Total)
	assert.Equal(t, models.OrderStatusPending, res.Order.Status)

	w, env = doJSON(t, router, http.MethodGet, "/orders/"+res.Order.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got models.Order
	decode(t, env.Data, &got)
	assert.Equal(t, res.Order.ID, got.ID)
	assert.Equal(t, "t1", got.TableID)

	w, _ = doJSON(t, router, http.MethodGet, "/orders/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutWhileOfflineIsAccepted(t *testing.T) {
	svc := setupServices(t, false)
	router := setupOrderRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
		"items": []map[string]interface{}{{"menuItemId": "espresso", "quantity": 1}},
	})
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var res services.SubmitResult
	decode(t, env.Data, &res)
	assert.True(t, res.Queued)

	w, env = doJSON(t, router, http.MethodGet, "/orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var orders []models.Order
	decode(t, env.Data, &orders)
	assert.Empty(t, orders)
}

func TestCheckoutErrors(t *testing.T) {
	svc := setupServices(t, true)
	router := setupOrderRouter(svc)

	tests := []struct {
		name string
		body interface{}
		code int
	}{
		{"empty cart", map[string]interface{}{"items": []interface{}{}}, http.StatusBadRequest},
		{"unknown item", map[string]interface{}{"items": []map[string]interface{}{{"menuItemId": "sushi", "quantity": 1}}}, http.StatusBadRequest},
		{"zero quantity", map[string]interface{}{"items": []map[string]interface{}{{"menuItemId": "espresso", "quantity": 0}}}, http.StatusBadRequest},
		{"not json", "nope", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, router, http.MethodPost, "/orders", tt.body)
			assert.Equal(t, tt.code, w.Code)
			assert.False(t, env.Status)
			assert.NotEmpty(t, env.Message)
		})
	}
}

func TestOnlineOrderIsPickup(t *testing.T) {
	svc := setupServices(t, true)
	router := setupOrderRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/orders/online", map[string]interface{}{
		"customerName":  "Ana",
		"customerPhone": "555-0199",
		"tableId":       "t1",
		"items":         []map[string]interface{}{{"menuItemId": "pizza-marinara", "quantity": 1}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res services.SubmitResult
	decode(t, env.Data, &res)
	assert.Equal(t, models.OnlineTableID, res.Order.TableID)
	assert.Equal(t, models.OrderTypePickup, res.Order.OrderType)
	assert.Equal(t, "online-card", res.Order.PaymentMethod)
	assert.Equal(t, "Ana", res.Order.CustomerName)
}

func TestSubmitPrebuiltOrder(t *testing.T) {
	svc := setupServices(t, true)
	router := setupOrderRouter(svc)

	w, env := doJSON(t, router, http.MethodPost, "/orders/submit", models.Order{
		ID:            "pos-1",
		Total:         11,
		PaymentMethod: "card",
		Items:         []models.LineItem{{ID: "espresso", Name: "Espresso", Price: 2.75, Quantity: 4}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var res services.SubmitResult
	decode(t, env.Data, &res)
	assert.Equal(t, "pos-1", res.Order.ID)
	assert.Equal(t, 11.0, res.Order.Total)
}

func TestUpdateOrderStatusAndActiveView(t *testing.T) {
	svc := setupServices(t, true)
	router := setupOrderRouter(svc)

	ids := make([]string, 0, 2)
	for i := 0; i < 2; i++ {
		w, env := doJSON(t, router, http.MethodPost, "/orders", map[string]interface{}{
			"items": []map[string]interface{}{{"menuItemId": "lemonade", "quantity": 1}},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var res services.SubmitResult
		decode(t, env.Data, &res)
		ids = append(ids, res.Order.ID)
	}

	w, _ := doJSON(t, router, http.MethodPatch, "/orders/"+ids[0]+"/status", map[string]string{"status": "completed"})
	require.Equal(t, http.StatusOK, w.Code)

	w, env := doJSON(t, router, http.MethodGet, "/orders/active", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var active []models.Order
	decode(t, env.Data, &active)
	require.Len(t, active, 1)
	assert.Equal(t, ids[1], active[0].ID)

	w, _ = doJSON(t, router, http.MethodPatch, "/orders/"+ids[1]+"/status", map[string]string{"status": "eaten"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown ids are accepted and change nothing
	w, _ = doJSON(t, router, http.MethodPatch, "/orders/ghost/status", map[string]string{"status": "ready"})
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = doJSON(t, router, http.MethodPatch, "/orders/"+ids[1]+"/status", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

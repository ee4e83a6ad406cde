package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

const onlinePaymentMethod = "online-card"

type OrderController struct {
	Svc *services.Services
}

func NewOrderController(svc *services.Services) *OrderController {
	return &OrderController{Svc: svc}
}

// GetAllOrders -> every committed order, newest first
func (oc *OrderController) GetAllOrders(c *gin.Context) {
	orders, err := oc.Svc.Ledger.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of orders", orders)
}

// GetActiveOrders -> kitchen view, oldest first
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	orders, err := oc.Svc.Ledger.Active(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Active orders", orders)
}

func (oc *OrderController) GetOrderByID(c *gin.Context) {
	order, err := oc.Svc.Ledger.Get(c.Request.Context(), c.Param("order_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order detail", order)
}

// Checkout -> price a register cart and submit it
func (oc *OrderController) Checkout(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.respondSubmit(c, func() (services.SubmitResult, error) {
		return oc.Svc.Orders.Checkout(c.Request.Context(), req)
	})
}

// CreateOnlineOrder -> storefront pickup order, never seated at a table
func (oc *OrderController) CreateOnlineOrder(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	req.TableID = models.OnlineTableID
	req.OrderType = models.OrderTypePickup
	req.PaymentMethod = onlinePaymentMethod

	oc.respondSubmit(c, func() (services.SubmitResult, error) {
		return oc.Svc.Orders.Checkout(c.Request.Context(), req)
	})
}

// SubmitOrder -> accept an order built by the terminal itself
func (oc *OrderController) SubmitOrder(c *gin.Context) {
	var order models.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	oc.respondSubmit(c, func() (services.SubmitResult, error) {
		return oc.Svc.Orders.Submit(c.Request.Context(), order)
	})
}

func (oc *OrderController) respondSubmit(c *gin.Context, submit func() (services.SubmitResult, error)) {
	res, err := submit()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if res.Queued {
		utils.RespondJSON(c, http.StatusAccepted, "Order saved offline", res)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Order created", res)
}

// UpdateOrderStatus -> kitchen moves an order along
func (oc *OrderController) UpdateOrderStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	id := c.Param("order_id")
	if err := oc.Svc.Ledger.UpdateStatus(c.Request.Context(), id, body.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Order status updated", gin.H{"id": id, "status": body.Status})
}

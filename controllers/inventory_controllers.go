package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type InventoryController struct {
	Svc *services.Services
}

func NewInventoryController(svc *services.Services) *InventoryController {
	return &InventoryController{Svc: svc}
}

func (ic *InventoryController) GetAllItems(c *gin.Context) {
	items, err := ic.Svc.Inventory.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory items", items)
}

func (ic *InventoryController) GetLowStock(c *gin.Context) {
	items, err := ic.Svc.Inventory.LowStock(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Low stock items", items)
}

func (ic *InventoryController) CreateItem(c *gin.Context) {
	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item.ID = ""
	saved, err := ic.Svc.Inventory.Upsert(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Inventory item created", saved)
}

func (ic *InventoryController) UpdateItem(c *gin.Context) {
	id := c.Param("item_id")
	if _, err := ic.Svc.Inventory.Get(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}

	var item models.InventoryItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	item.ID = id
	saved, err := ic.Svc.Inventory.Upsert(c.Request.Context(), item)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item updated", saved)
}

func (ic *InventoryController) DeleteItem(c *gin.Context) {
	if err := ic.Svc.Inventory.Delete(c.Request.Context(), c.Param("item_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory item deleted", nil)
}

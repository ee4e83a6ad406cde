package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type MenuController struct {
	Svc *services.Services
}

func NewMenuController(svc *services.Services) *MenuController {
	return &MenuController{Svc: svc}
}

// GetMenu -> catalog with availability, price and recipe overrides applied
func (mc *MenuController) GetMenu(c *gin.Context) {
	menu, err := mc.Svc.Menu.Menu(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu", menu)
}

func (mc *MenuController) GetOverrides(c *gin.Context) {
	overrides, err := mc.Svc.Menu.Overrides(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu overrides", overrides)
}

// UpdateOverride -> fields left out of the body keep their stored value
func (mc *MenuController) UpdateOverride(c *gin.Context) {
	var patch models.MenuOverride
	if err := c.ShouldBindJSON(&patch); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	merged, err := mc.Svc.Menu.UpdateOverride(c.Request.Context(), c.Param("item_id"), patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu override updated", merged)
}

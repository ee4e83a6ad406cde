package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/models"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type TableController struct {
	Svc *services.Services
}

func NewTableController(svc *services.Services) *TableController {
	return &TableController{Svc: svc}
}

// GetLayout -> all areas with their tables
func (tc *TableController) GetLayout(c *gin.Context) {
	areas, err := tc.Svc.Tables.Layout(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Restaurant layout", areas)
}

// SaveLayout -> floor-plan editor writes the whole plan back
func (tc *TableController) SaveLayout(c *gin.Context) {
	var areas []models.Area
	if err := c.ShouldBindJSON(&areas); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if err := tc.Svc.Tables.SaveLayout(c.Request.Context(), areas); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Layout saved", areas)
}

// UpdateTableStatus -> e.g. back to available after cleaning
func (tc *TableController) UpdateTableStatus(c *gin.Context) {
	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	areas, err := tc.Svc.Tables.SetStatus(c.Request.Context(), c.Param("area_id"), c.Param("table_id"), body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Table %s set to %s", c.Param("table_id"), body.Status)
	utils.RespondJSON(c, http.StatusOK, "Table status updated", areas)
}

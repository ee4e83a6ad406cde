package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/services"
	"github.com/yeremiapane/pos-ledger/utils"
)

type SyncController struct {
	Svc *services.Services
}

func NewSyncController(svc *services.Services) *SyncController {
	return &SyncController{Svc: svc}
}

// GetQueue -> pending offline orders
func (sc *SyncController) GetQueue(c *gin.Context) {
	orders, err := sc.Svc.Queue.PeekAll(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offline queue", gin.H{
		"count":  len(orders),
		"orders": orders,
	})
}

// Flush -> commit everything in the offline queue
func (sc *SyncController) Flush(c *gin.Context) {
	n, err := sc.Svc.Sync.Flush(c.Request.Context())
	if errors.Is(err, services.ErrFlushPartial) {
		utils.ErrorLogger.Printf("Partial flush: %v", err)
		utils.RespondJSON(c, http.StatusBadGateway, err.Error(), gin.H{"flushed": n})
		return
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Offline orders synced", gin.H{"flushed": n})
}

func (sc *SyncController) GetConnectivity(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Connectivity", gin.H{"online": sc.Svc.Connectivity.Online()})
}

// SetConnectivity -> manual online/offline switch for the terminal
func (sc *SyncController) SetConnectivity(c *gin.Context) {
	var body struct {
		Online *bool `json:"online" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	changed := sc.Svc.Connectivity.SetOnline(*body.Online)
	utils.RespondJSON(c, http.StatusOK, "Connectivity updated", gin.H{
		"online":  *body.Online,
		"changed": changed,
	})
}

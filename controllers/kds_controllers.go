package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

var displayRoles = map[string]bool{
	"kitchen":  true,
	"register": true,
	"customer": true,
	"display":  true,
}

type KDSController struct {
	Hub *kds.Hub
}

func NewKDSController(hub *kds.Hub) *KDSController {
	return &KDSController{Hub: hub}
}

// Handler -> websocket endpoint; clients get a frame per change and re-read
// over HTTP
func (kc *KDSController) Handler(c *gin.Context) {
	role := c.DefaultQuery("role", "display")
	if !displayRoles[role] {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("unknown display role %q", role))
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	kc.Hub.Register(ws, role)

	// Clients never send anything meaningful; reading detects disconnects.
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	kc.Hub.Unregister(ws)
}

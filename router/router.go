package router

import (
	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/pos-ledger/controllers"
	"github.com/yeremiapane/pos-ledger/kds"
	"github.com/yeremiapane/pos-ledger/middlewares"
	"github.com/yeremiapane/pos-ledger/services"
)

type Options struct {
	RateLimitRPS int
	AllowOrigin  string
}

func SetupRouter(svc *services.Services, hub *kds.Hub, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares(opts.AllowOrigin))
	r.Use(middlewares.LoggerMiddleware())
	r.Use(middlewares.NewRateLimiter(opts.RateLimitRPS).RateLimit())

	orderCtrl := controllers.NewOrderController(svc)
	syncCtrl := controllers.NewSyncController(svc)
	inventoryCtrl := controllers.NewInventoryController(svc)
	tableCtrl := controllers.NewTableController(svc)
	menuCtrl := controllers.NewMenuController(svc)
	vendorCtrl := controllers.NewVendorController(svc)
	employeeCtrl := controllers.NewEmployeeController(svc)
	purchaseCtrl := controllers.NewPurchaseOrderController(svc)
	kdsCtrl := controllers.NewKDSController(hub)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Display push (kitchen, other registers, customer screen)
	r.GET("/kds/ws", kdsCtrl.Handler)

	// ORDERS
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/active", orderCtrl.GetActiveOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.POST("/orders", orderCtrl.Checkout)
	r.POST("/orders/online", orderCtrl.CreateOnlineOrder)
	r.POST("/orders/submit", orderCtrl.SubmitOrder)
	r.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus)

	// OFFLINE QUEUE / SYNC
	r.GET("/sync/queue", syncCtrl.GetQueue)
	r.POST("/sync/flush", syncCtrl.Flush)
	r.GET("/connectivity", syncCtrl.GetConnectivity)
	r.PUT("/connectivity", syncCtrl.SetConnectivity)

	// INVENTORY
	r.GET("/inventory", inventoryCtrl.GetAllItems)
	r.GET("/inventory/low-stock", inventoryCtrl.GetLowStock)
	r.POST("/inventory", inventoryCtrl.CreateItem)
	r.PUT("/inventory/:item_id", inventoryCtrl.UpdateItem)
	r.DELETE("/inventory/:item_id", inventoryCtrl.DeleteItem)

	// FLOOR PLAN
	r.GET("/layout", tableCtrl.GetLayout)
	r.PUT("/layout", tableCtrl.SaveLayout)
	r.PATCH("/layout/:area_id/tables/:table_id", tableCtrl.UpdateTableStatus)

	// MENU
	r.GET("/menu", menuCtrl.GetMenu)
	r.GET("/menu/overrides", menuCtrl.GetOverrides)
	r.PATCH("/menu/:item_id/override", menuCtrl.UpdateOverride)

	// BACK OFFICE
	records := []struct {
		path                           string
		list, get, create, update, del gin.HandlerFunc
	}{
		{"/vendors", vendorCtrl.List, vendorCtrl.Get, vendorCtrl.Create, vendorCtrl.Update, vendorCtrl.Delete},
		{"/employees", employeeCtrl.List, employeeCtrl.Get, employeeCtrl.Create, employeeCtrl.Update, employeeCtrl.Delete},
		{"/purchase-orders", purchaseCtrl.List, purchaseCtrl.Get, purchaseCtrl.Create, purchaseCtrl.Update, purchaseCtrl.Delete},
	}
	for _, rec := range records {
		g := r.Group(rec.path)
		g.GET("", rec.list)
		g.POST("", rec.create)
		g.GET("/:id", rec.get)
		g.PUT("/:id", rec.update)
		g.DELETE("/:id", rec.del)
	}

	return r
}

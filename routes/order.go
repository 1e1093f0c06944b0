package routes

import (
	"github.com/gin-gonic/gin"
	orderControllers "github.com/harishwar07/ecommerce-api/controllers/order"
	"github.com/harishwar07/ecommerce-api/middleware"
	"github.com/harishwar07/ecommerce-api/ws"
	"gorm.io/gorm"
)

// SetupOrderRoutes registers all "/api/orders/*" endpoints. Requires JWT.
func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, hub *ws.Hub) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.POST("", orderControllers.PlaceOrderHandler(db, hub))
		orders.GET("", orderControllers.GetUserOrders(db))
		orders.GET("/:id", orderControllers.GetOrderByID(db))
		orders.POST("/:id/cancel", orderControllers.CancelOrder(db, hub))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	adminController "github.com/harishwar07/ecommerce-api/controllers/admin"
	"github.com/harishwar07/ecommerce-api/middleware"
	"github.com/harishwar07/ecommerce-api/ws"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers all "/api/admin/*" endpoints. Requires JWT with
// the admin flag.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, hub *ws.Hub) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.ValidateToken, middleware.RequireAdmin)
	{
		admin.GET("/dashboard", adminController.GetDashboard(db))

		productAdmin := admin.Group("/products")
		{
			productAdmin.GET("", adminController.GetProducts(db))
			productAdmin.POST("", adminController.CreateProduct(db, hub))
			productAdmin.GET("/export", adminController.ExportProductsToExcel(db))
			productAdmin.PUT("/:id", adminController.UpdateProduct(db, hub))
			productAdmin.PATCH("/:id/stock", adminController.UpdateStock(db, hub))
			productAdmin.DELETE("/:id", adminController.DeleteProduct(db, hub))
		}

		orderAdmin := admin.Group("/orders")
		{
			orderAdmin.GET("", adminController.GetAllOrders(db))
			orderAdmin.PATCH("/:id/status", adminController.UpdateOrderStatus(db, hub))
		}
	}
}

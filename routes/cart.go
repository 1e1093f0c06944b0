package routes

import (
	"github.com/gin-gonic/gin"
	cartControllers "github.com/harishwar07/ecommerce-api/controllers/cart"
	"github.com/harishwar07/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupCartRoutes registers all "/api/cart/*" endpoints. Requires JWT.
func SetupCartRoutes(r *gin.Engine, db *gorm.DB) {
	cart := r.Group("/api/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCart(db))
		cart.POST("/add", cartControllers.AddToCart(db))
		cart.PUT("/update/:id", cartControllers.UpdateCartItem(db))
		cart.DELETE("/remove/:id", cartControllers.RemoveCartItem(db))
		cart.DELETE("/clear", cartControllers.ClearCart(db))
	}
}

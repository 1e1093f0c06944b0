package routes

import (
	"github.com/gin-gonic/gin"
	userControllers "github.com/harishwar07/ecommerce-api/controllers/user"
	"github.com/harishwar07/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupUserRoutes registers all "/api/users/*" endpoints. Requires JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB) {
	users := r.Group("/api/users")
	users.Use(middleware.ValidateToken)
	{
		users.GET("/profile", userControllers.GetProfile(db))
		users.PUT("/profile", userControllers.UpdateProfile(db))
		users.PUT("/password", userControllers.ChangePassword(db))
		users.GET("/stats", userControllers.GetStats(db))
	}
}

package routes

import (
	"github.com/gin-gonic/gin"
	authControllers "github.com/harishwar07/ecommerce-api/controllers/auth"
	"github.com/harishwar07/ecommerce-api/middleware"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers all "/api/auth/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB) {
	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/register", authControllers.Register(db))
		authGroup.POST("/login", authControllers.Login(db))
		authGroup.GET("/me", middleware.ValidateToken, authControllers.Me(db))
	}
}

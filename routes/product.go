package routes

import (
	"github.com/gin-gonic/gin"
	productcontroller "github.com/harishwar07/ecommerce-api/controllers/product"
	"gorm.io/gorm"
)

// SetupProductRoutes registers the public catalog endpoints.
func SetupProductRoutes(r *gin.Engine, db *gorm.DB) {
	products := r.Group("/api/products")
	{
		products.GET("", productcontroller.GetProducts(db))
		products.GET("/featured", productcontroller.GetFeaturedProducts(db))
		products.GET("/search", productcontroller.SearchProducts(db))
		products.GET("/categories", productcontroller.GetAllCategories(db))
		products.GET("/:id", productcontroller.GetProductByID(db))
	}
}

package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

// GET /api/products/featured
func GetFeaturedProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []ProductView
		if err := db.Model(&models.Product{}).
			Select("products.*, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("products.is_featured = ?", true).
			Order("products.rating DESC, products.created_at DESC").
			Limit(8).
			Scan(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch featured products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

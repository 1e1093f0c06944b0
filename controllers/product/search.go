package productcontroller

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

// GET /api/products/search
//
// Quick-search endpoint for typeahead; the full listing endpoint accepts the
// same filter as ?search= alongside its other parameters.
func SearchProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		q := strings.TrimSpace(c.Query("q"))
		if q == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Search query is required"})
			return
		}

		like := "%" + strings.ToLower(q) + "%"
		var products []ProductView
		if err := db.Model(&models.Product{}).
			Select("products.*, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like).
			Order("products.name").
			Limit(20).
			Scan(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to search products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

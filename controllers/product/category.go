package productcontroller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

type CategoryView struct {
	models.Category
	ProductCount int64 `json:"product_count"`
}

// GET /api/products/categories
func GetAllCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []CategoryView
		if err := db.Model(&models.Category{}).
			Select("categories.*, COUNT(products.id) AS product_count").
			Joins("LEFT JOIN products ON products.category_id = categories.id").
			Group("categories.id").
			Order("categories.name").
			Scan(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch categories"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

package productcontroller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var product ProductView
		err = db.Model(&models.Product{}).
			Select("products.*, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = products.category_id").
			Where("products.id = ?", id).
			First(&product).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to retrieve product"})
			}
			return
		}

		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

package adminController

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

const lowStockThreshold = 10

// GET /api/admin/dashboard
func GetDashboard(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var totalSales float64
		var totalOrders, totalUsers, totalProducts int64

		if err := db.Model(&models.Order{}).
			Where("status <> ?", models.OrderStatusCancelled).
			Select("COALESCE(SUM(total_amount), 0)").
			Scan(&totalSales).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dashboard"})
			return
		}
		db.Model(&models.Order{}).Count(&totalOrders)
		db.Model(&models.User{}).Count(&totalUsers)
		db.Model(&models.Product{}).Count(&totalProducts)

		var recentOrders []struct {
			models.Order
			FirstName string `json:"first_name"`
			LastName  string `json:"last_name"`
			Email     string `json:"email"`
		}
		if err := db.Model(&models.Order{}).
			Select("orders.*, users.first_name, users.last_name, users.email").
			Joins("JOIN users ON users.id = orders.user_id").
			Order("orders.created_at DESC").
			Limit(10).
			Scan(&recentOrders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dashboard"})
			return
		}

		var lowStock []models.Product
		if err := db.Where("stock_quantity < ?", lowStockThreshold).
			Order("stock_quantity ASC").
			Limit(10).
			Find(&lowStock).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch dashboard"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"stats": gin.H{
				"total_sales":    totalSales,
				"total_orders":   totalOrders,
				"total_users":    totalUsers,
				"total_products": totalProducts,
			},
			"recent_orders":      recentOrders,
			"low_stock_products": lowStock,
		})
	}
}

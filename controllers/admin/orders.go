package adminController

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	orderControllers "github.com/harishwar07/ecommerce-api/controllers/order"
	"github.com/harishwar07/ecommerce-api/models"
	"github.com/harishwar07/ecommerce-api/ws"
	"gorm.io/gorm"
)

// GET /api/admin/orders
func GetAllOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
		if limit < 1 {
			limit = 20
		}

		var total int64
		if err := db.Model(&models.Order{}).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		var orders []orderControllers.OrderView
		if err := db.Model(&models.Order{}).
			Select("orders.*, users.first_name, users.last_name, users.email").
			Joins("JOIN users ON users.id = orders.user_id").
			Order("orders.created_at DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Scan(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"orders": orders,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		})
	}
}

// PATCH /api/admin/orders/:id/status
func UpdateOrderStatus(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		var req orderControllers.UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		order, err := orderControllers.UpdateOrderStatus(db, uint(orderID), models.OrderStatus(req.Status))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
				return
			}
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		// Tell the purchaser (and the admin dashboard) about the new state.
		var view orderControllers.OrderView
		if err := db.Model(&models.Order{}).
			Select("orders.*, users.first_name, users.last_name, users.email").
			Joins("JOIN users ON users.id = orders.user_id").
			Where("orders.id = ?", order.ID).
			First(&view).Error; err == nil {
			hub.EmitOrderUpdate(order.UserID, view)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Order status updated successfully",
			"order":   order,
		})
	}
}

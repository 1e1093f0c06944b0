package userControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/auth"
	"github.com/harishwar07/ecommerce-api/middleware"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	Address   *string `json:"address"`
	City      *string `json:"city"`
	State     *string `json:"state"`
	ZipCode   *string `json:"zip_code"`
	Country   *string `json:"country"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=6"`
}

// GET /api/users/profile
func GetProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// PUT /api/users/profile
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var user models.User
		if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		var req UpdateProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if req.FirstName != nil {
			updates["first_name"] = *req.FirstName
		}
		if req.LastName != nil {
			updates["last_name"] = *req.LastName
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.City != nil {
			updates["city"] = *req.City
		}
		if req.State != nil {
			updates["state"] = *req.State
		}
		if req.ZipCode != nil {
			updates["zip_code"] = *req.ZipCode
		}
		if req.Country != nil {
			updates["country"] = *req.Country
		}

		if len(updates) > 0 {
			if err := db.Model(&user).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}

// PUT /api/users/password
func ChangePassword(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChangePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		var user models.User
		if err := db.First(&user, middleware.UserID(c)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if !auth.CheckPassword(user.Password, req.CurrentPassword) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Current password is incorrect"})
			return
		}

		hash, err := auth.HashPassword(req.NewPassword)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		if err := db.Model(&user).Update("password", hash).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to change password"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}

type userStats struct {
	TotalOrders     int64   `json:"total_orders"`
	TotalSpent      float64 `json:"total_spent"`
	DeliveredOrders int64   `json:"delivered_orders"`
	PendingOrders   int64   `json:"pending_orders"`
}

// GET /api/users/stats
func GetStats(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var stats userStats
		if err := db.Model(&models.Order{}).
			Select(`COUNT(*) AS total_orders,
				COALESCE(SUM(total_amount), 0) AS total_spent,
				COUNT(CASE WHEN status = 'delivered' THEN 1 END) AS delivered_orders,
				COUNT(CASE WHEN status = 'pending' THEN 1 END) AS pending_orders`).
			Where("user_id = ?", userID).
			Scan(&stats).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}

		var recent []models.Order
		if err := db.Select("id", "total_amount", "status", "created_at").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(5).
			Find(&recent).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch stats"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"stats": stats, "recent_orders": recent})
	}
}

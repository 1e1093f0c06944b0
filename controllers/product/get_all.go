package productcontroller

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
)

// Sort fields a caller may request; anything else falls back to created_at.
var allowedSortFields = map[string]bool{
	"name":       true,
	"price":      true,
	"created_at": true,
	"rating":     true,
}

type ProductView struct {
	models.Product
	CategoryName string `json:"category_name"`
}

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
		if limit < 1 {
			limit = 12
		}
		offset := (page - 1) * limit

		category := c.Query("category")
		search := c.Query("search")
		sortBy := c.DefaultQuery("sortBy", "created_at")
		if !allowedSortFields[sortBy] {
			sortBy = "created_at"
		}
		sortOrder := "DESC"
		if strings.EqualFold(c.Query("sortOrder"), "asc") {
			sortOrder = "ASC"
		}

		query := db.Model(&models.Product{}).
			Select("products.*, categories.name AS category_name").
			Joins("LEFT JOIN categories ON categories.id = products.category_id")

		if category != "" {
			query = query.Where("categories.name = ?", category)
		}
		if search != "" {
			like := "%" + strings.ToLower(search) + "%"
			query = query.Where("LOWER(products.name) LIKE ? OR LOWER(products.description) LIKE ?", like, like)
		}
		if minPrice := c.Query("minPrice"); minPrice != "" {
			mp, err := strconv.ParseFloat(minPrice, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid minPrice"})
				return
			}
			query = query.Where("products.price >= ?", mp)
		}
		if maxPrice := c.Query("maxPrice"); maxPrice != "" {
			mp, err := strconv.ParseFloat(maxPrice, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid maxPrice"})
				return
			}
			query = query.Where("products.price <= ?", mp)
		}

		var total int64
		if err := query.Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		var products []ProductView
		if err := query.
			Order(fmt.Sprintf("products.%s %s", sortBy, sortOrder)).
			Limit(limit).
			Offset(offset).
			Scan(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"products": products,
			"pagination": gin.H{
				"page":  page,
				"limit": limit,
				"total": total,
				"pages": int(math.Ceil(float64(total) / float64(limit))),
			},
		})
	}
}

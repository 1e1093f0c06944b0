package adminController

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/models"
	"github.com/harishwar07/ecommerce-api/ws"
	"gorm.io/gorm"
)

type ProductRequest struct {
	Name          string  `json:"name" binding:"required,min=2,max=255"`
	Description   string  `json:"description" binding:"max=1000"`
	Price         float64 `json:"price" binding:"required,gt=0"`
	CategoryID    uint    `json:"category_id" binding:"required"`
	ImageURL      string  `json:"image_url"`
	StockQuantity *int    `json:"stock_quantity" binding:"required"`
	IsFeatured    bool    `json:"is_featured"`
}

type UpdateStockRequest struct {
	StockQuantity *int `json:"stock_quantity" binding:"required"`
}

// GET /api/admin/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if *req.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "stock_quantity must be >= 0"})
			return
		}

		var category models.Category
		if err := db.First(&category, req.CategoryID).Error; err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Category does not exist"})
			return
		}

		product := models.Product{
			Name:          req.Name,
			Description:   req.Description,
			Price:         req.Price,
			CategoryID:    req.CategoryID,
			ImageURL:      req.ImageURL,
			StockQuantity: *req.StockQuantity,
			IsFeatured:    req.IsFeatured,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to create product"})
			return
		}

		hub.EmitProductUpdate(gin.H{"type": "created", "product": product})

		c.JSON(http.StatusCreated, gin.H{"message": "Product created successfully", "product": product})
	}
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		var req ProductRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if *req.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "stock_quantity must be >= 0"})
			return
		}

		updates := map[string]interface{}{
			"name":           req.Name,
			"description":    req.Description,
			"price":          req.Price,
			"category_id":    req.CategoryID,
			"image_url":      req.ImageURL,
			"stock_quantity": *req.StockQuantity,
			"is_featured":    req.IsFeatured,
		}
		if err := db.Model(&product).Updates(updates).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update product"})
			return
		}

		hub.EmitProductUpdate(gin.H{"type": "updated", "product": product})

		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": product})
	}
}

// PATCH /api/admin/products/:id/stock
func UpdateStock(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var req UpdateStockRequest
		if err := c.ShouldBindJSON(&req); err != nil || *req.StockQuantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "stock_quantity must be >= 0"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}

		if err := db.Model(&product).Update("stock_quantity", *req.StockQuantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update stock"})
			return
		}

		hub.EmitStockUpdate(product.ID, *req.StockQuantity)

		c.JSON(http.StatusOK, gin.H{
			"message":    "Stock updated successfully",
			"product_id": product.ID,
			"new_stock":  *req.StockQuantity,
		})
	}
}

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid product ID"})
			return
		}

		var product models.Product
		if err := db.First(&product, id).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			return
		}

		if err := db.Delete(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to delete product"})
			return
		}

		hub.EmitProductUpdate(gin.H{"type": "deleted", "productId": product.ID})

		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

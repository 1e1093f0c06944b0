package cartControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/harishwar07/ecommerce-api/middleware"
	"github.com/harishwar07/ecommerce-api/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AddToCartRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"omitempty,min=1"`
}

type UpdateCartRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

type CartItemView struct {
	models.CartItem
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	ImageURL      string  `json:"image_url"`
	StockQuantity int     `json:"stock_quantity"`
	Subtotal      float64 `json:"subtotal"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// GET /api/cart
//
// The total reflects live product prices at read time; only order placement
// freezes prices.
func GetCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var items []CartItemView
		if err := db.Model(&models.CartItem{}).
			Select("cart_items.*, products.name, products.price, products.image_url, products.stock_quantity, cart_items.quantity * products.price AS subtotal").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", userID).
			Order("cart_items.created_at DESC").
			Scan(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch cart"})
			return
		}

		var total float64
		for _, item := range items {
			total += item.Subtotal
		}

		c.JSON(http.StatusOK, gin.H{
			"cart_items": items,
			"total":      round2(total),
			"item_count": len(items),
		})
	}
}

// POST /api/cart/add
//
// Adding an already-carted product increments its row; the combined quantity
// is validated against current stock before the write. The write itself is an
// atomic insert-or-increment on the (user_id, product_id) unique index, so
// concurrent adds can never produce duplicate rows.
func AddToCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req AddToCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if req.Quantity == 0 {
			req.Quantity = 1
		}

		var created bool
		var newQuantity int
		err := db.Transaction(func(tx *gorm.DB) error {
			var product models.Product
			if err := tx.First(&product, req.ProductID).Error; err != nil {
				return err
			}

			var existing models.CartItem
			err := tx.Where("user_id = ? AND product_id = ?", userID, req.ProductID).First(&existing).Error
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}

			newQuantity = existing.Quantity + req.Quantity
			if product.StockQuantity < newQuantity {
				remaining := product.StockQuantity - existing.Quantity
				if remaining < 0 {
					remaining = 0
				}
				if existing.ID != 0 {
					return &insufficientStockError{
						message: fmt.Sprintf("Cannot add %d more items. Only %d more available", req.Quantity, remaining),
					}
				}
				return &insufficientStockError{
					message: fmt.Sprintf("Insufficient stock. Only %d items available", product.StockQuantity),
				}
			}
			created = existing.ID == 0

			item := models.CartItem{UserID: userID, ProductID: req.ProductID, Quantity: req.Quantity}
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"quantity": gorm.Expr("quantity + ?", req.Quantity),
				}),
			}).Create(&item).Error
		})

		if err != nil {
			var stockErr *insufficientStockError
			switch {
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"message": stockErr.message})
			case errors.Is(err, gorm.ErrRecordNotFound):
				c.JSON(http.StatusNotFound, gin.H{"message": "Product not found"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to add item to cart"})
			}
			return
		}

		if created {
			c.JSON(http.StatusCreated, gin.H{"message": "Item added to cart successfully", "quantity": newQuantity})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart updated successfully", "quantity": newQuantity})
	}
}

// PUT /api/cart/update/:id
func UpdateCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		itemID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
			return
		}

		var req UpdateCartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}

		// Ownership check: the row must belong to the caller.
		var item models.CartItem
		if err := db.Where("id = ? AND user_id = ?", itemID, userID).First(&item).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}

		var product models.Product
		if err := db.First(&product, item.ProductID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to validate product"})
			return
		}
		if product.StockQuantity < req.Quantity {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Insufficient stock. Only %d items available", product.StockQuantity),
			})
			return
		}

		if err := db.Model(&item).Update("quantity", req.Quantity).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to update cart item"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Cart item updated successfully"})
	}
}

// DELETE /api/cart/remove/:id
func RemoveCartItem(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		itemID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid cart item ID"})
			return
		}

		result := db.Where("id = ? AND user_id = ?", itemID, userID).Delete(&models.CartItem{})
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to remove item"})
			return
		}
		if result.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Cart item not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart successfully"})
	}
}

// DELETE /api/cart/clear
func ClearCart(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared successfully"})
	}
}

type insufficientStockError struct {
	message string
}

func (e *insufficientStockError) Error() string { return e.message }

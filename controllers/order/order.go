package orderControllers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/harishwar07/ecommerce-api/middleware"
	"github.com/harishwar07/ecommerce-api/models"
	"github.com/harishwar07/ecommerce-api/ws"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var logger = zerolog.New(os.Stdout).With().Timestamp().Str("component", "orders").Logger()

type PlaceOrderRequest struct {
	ShippingAddress string `json:"shipping_address" binding:"required"`
	PaymentMethod   string `json:"payment_method"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

var paymentMethods = map[string]bool{
	"credit_card": true,
	"debit_card":  true,
	"paypal":      true,
	"apple_pay":   true,
	"google_pay":  true,
}

// cartLine is one cart row joined with the product fields the placement needs.
type cartLine struct {
	ProductID     uint
	Quantity      int
	Price         float64
	StockQuantity int
	Name          string
}

var (
	errEmptyCart = errors.New("Cart is empty")
	errStockGone = errors.New("stock changed during placement")
)

type insufficientStockError struct {
	name      string
	available int
}

func (e *insufficientStockError) Error() string {
	return fmt.Sprintf("Insufficient stock for %s. Only %d available", e.name, e.available)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func generateOrderRef() string {
	return time.Now().Format("20060102150405") + "-" + uuid.NewString()
}

// PlaceOrder converts the user's cart into an order in one transaction: the
// whole cart is validated against current stock before any write, prices are
// frozen into order items, and every decrement is conditional
// (stock_quantity >= quantity). A decrement that matches no row means another
// purchaser got there first; the transaction rolls back completely, so stock
// can never go negative and an order is never half-written.
func PlaceOrder(db *gorm.DB, userID uint, shippingAddress, paymentMethod string) (*models.Order, error) {
	var order models.Order

	err := db.Transaction(func(tx *gorm.DB) error {
		var lines []cartLine
		if err := tx.Model(&models.CartItem{}).
			Select("cart_items.product_id, cart_items.quantity, products.price, products.stock_quantity, products.name").
			Joins("JOIN products ON products.id = cart_items.product_id").
			Where("cart_items.user_id = ?", userID).
			Scan(&lines).Error; err != nil {
			return err
		}
		if len(lines) == 0 {
			return errEmptyCart
		}

		// Validation pass: no writes have happened yet, so any shortfall here
		// leaves the database untouched.
		for _, line := range lines {
			if line.StockQuantity < line.Quantity {
				return &insufficientStockError{name: line.Name, available: line.StockQuantity}
			}
		}

		var total float64
		items := make([]models.OrderItem, 0, len(lines))
		for _, line := range lines {
			total += line.Price * float64(line.Quantity)
			items = append(items, models.OrderItem{
				ProductID: line.ProductID,
				Quantity:  line.Quantity,
				Price:     line.Price, // frozen snapshot
			})
		}

		order = models.Order{
			OrderRef:        generateOrderRef(),
			UserID:          userID,
			Items:           items,
			TotalAmount:     round2(total),
			ShippingAddress: shippingAddress,
			PaymentMethod:   paymentMethod,
			Status:          models.OrderStatusPending,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		for _, line := range lines {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", line.ProductID, line.Quantity).
				Update("stock_quantity", gorm.Expr("stock_quantity - ?", line.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				// Concurrent purchase consumed the stock between our read and
				// this write; abort the whole order.
				return fmt.Errorf("%w: product %d", errStockGone, line.ProductID)
			}
		}

		return tx.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// POST /api/orders
func PlaceOrderHandler(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		var req PlaceOrderRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input: " + err.Error()})
			return
		}
		if req.PaymentMethod == "" {
			req.PaymentMethod = "credit_card"
		}
		if !paymentMethods[req.PaymentMethod] {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid payment method"})
			return
		}

		order, err := PlaceOrder(db, userID, req.ShippingAddress, req.PaymentMethod)
		if err != nil {
			var stockErr *insufficientStockError
			switch {
			case errors.Is(err, errEmptyCart):
				c.JSON(http.StatusBadRequest, gin.H{"message": "Cart is empty"})
			case errors.As(err, &stockErr):
				c.JSON(http.StatusBadRequest, gin.H{"message": stockErr.Error()})
			case errors.Is(err, errStockGone):
				c.JSON(http.StatusConflict, gin.H{"message": "Stock changed while placing the order, please retry"})
			default:
				logger.Error().Err(err).Uint("user_id", userID).Msg("order placement failed")
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			}
			return
		}

		// Notifications go out only after the transaction has committed.
		for _, item := range order.Items {
			var product models.Product
			if err := db.First(&product, item.ProductID).Error; err == nil {
				hub.EmitStockUpdate(product.ID, product.StockQuantity)
			}
		}
		if enriched, err := orderWithPurchaser(db, order.ID); err == nil {
			hub.EmitNewOrder(enriched)
		}

		logger.Info().Uint("order_id", order.ID).Uint("user_id", userID).
			Float64("total", order.TotalAmount).Msg("order placed")

		c.JSON(http.StatusCreated, gin.H{
			"message":      "Order created successfully",
			"order_id":     order.ID,
			"total_amount": order.TotalAmount,
		})
	}
}

// OrderView is an order row joined with the purchaser's identity, the shape
// pushed to admin listeners and returned by admin listings.
type OrderView struct {
	models.Order
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

func orderWithPurchaser(db *gorm.DB, orderID uint) (*OrderView, error) {
	var view OrderView
	err := db.Model(&models.Order{}).
		Select("orders.*, users.first_name, users.last_name, users.email").
		Joins("JOIN users ON users.id = orders.user_id").
		Where("orders.id = ?", orderID).
		First(&view).Error
	if err != nil {
		return nil, err
	}
	return &view, nil
}

// GET /api/orders
func GetUserOrders(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		if page < 1 {
			page = 1
		}
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		if limit < 1 {
			limit = 10
		}

		var total int64
		if err := db.Model(&models.Order{}).Where("user_id = ?", userID).Count(&total).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to fetch orders"})
			return
		}

		var orders []models.Order
		if err := db.Preload("Items").
			Where("user_id = ?", userID).
			Order("created_at DESC").
			Limit(limit).
			Offset((page - 1) * limit).
			Find(&orders).Error; err != nil {
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

// GET /api/orders/:id
func GetOrderByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Preload("Items").
			Where("id = ? AND user_id = ?", orderID, userID).
			First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"order": order})
	}
}

// POST /api/orders/:id/cancel
//
// Users may cancel their own order only while it is still pending.
func CancelOrder(db *gorm.DB, hub *ws.Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := middleware.UserID(c)

		orderID, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid order ID"})
			return
		}

		var order models.Order
		if err := db.Where("id = ? AND user_id = ?", orderID, userID).First(&order).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"message": "Order not found"})
			return
		}
		if order.Status != models.OrderStatusPending {
			c.JSON(http.StatusBadRequest, gin.H{
				"message": fmt.Sprintf("Cannot cancel an order that is %s", order.Status),
			})
			return
		}

		if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to cancel order"})
			return
		}

		if enriched, err := orderWithPurchaser(db, order.ID); err == nil {
			hub.EmitOrderUpdate(order.UserID, enriched)
		}

		c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully"})
	}
}

// UpdateOrderStatus applies one transition of the order lifecycle graph. An
// unknown status value or a transition the graph forbids leaves the row
// unchanged.
func UpdateOrderStatus(db *gorm.DB, orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, fmt.Errorf("invalid status %q", newStatus)
	}

	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		return nil, err
	}
	if !models.CanTransition(order.Status, newStatus) {
		return nil, fmt.Errorf("cannot change status from %s to %s", order.Status, newStatus)
	}

	if err := db.Model(&order).Update("status", newStatus).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

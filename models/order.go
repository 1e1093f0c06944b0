package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"    // placed, awaiting processing
	OrderStatusProcessing OrderStatus = "processing" // accepted, being prepared
	OrderStatusShipped    OrderStatus = "shipped"    // out for delivery
	OrderStatusDelivered  OrderStatus = "delivered"  // terminal
	OrderStatusCancelled  OrderStatus = "cancelled"  // terminal
)

// statusTransitions is the enforced lifecycle graph. Cancellation is only
// possible before the order ships; delivered and cancelled are terminal.
var statusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusProcessing, OrderStatusCancelled},
	OrderStatusProcessing: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:    {OrderStatusDelivered},
	OrderStatusDelivered:  {},
	OrderStatusCancelled:  {},
}

// ValidOrderStatus reports whether s is one of the five known status values.
func ValidOrderStatus(s OrderStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// CanTransition reports whether an order may move from its current status to next.
func CanTransition(current, next OrderStatus) bool {
	for _, allowed := range statusTransitions[current] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderRef        string      `gorm:"uniqueIndex" json:"order_ref"`
	UserID          uint        `gorm:"not null;index" json:"user_id"`
	User            User        `gorm:"foreignKey:UserID" json:"-"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	TotalAmount     float64     `gorm:"not null" json:"total_amount"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	PaymentMethod   string      `json:"payment_method"`
	Status          OrderStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// OrderItem freezes the product price at placement time; later price edits on
// the product never reach past orders.
type OrderItem struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint    `gorm:"index" json:"order_id"`
	ProductID uint    `gorm:"not null" json:"product_id"`
	Product   Product `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int     `gorm:"not null" json:"quantity"`
	Price     float64 `gorm:"not null" json:"price"`
}

package models

import "time"

// OrderStatus follows the fulfillment lifecycle. Only admins move an order past
// "placed"; "cancelled" is terminal.
type OrderStatus string

const (
	OrderStatusPlaced         OrderStatus = "placed"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus is flipped from pending to paid by the gateway callback.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
)

// OrderType selects between home delivery and per-seller pickup.
type OrderType string

const (
	OrderTypeDelivery OrderType = "delivery"
	OrderTypePickup   OrderType = "pickup"
)

// PaymentMethod is the shopper's chosen payment path.
type PaymentMethod string

const (
	PaymentMethodCard PaymentMethod = "card"
	PaymentMethodUPI  PaymentMethod = "upi"
	PaymentMethodCOD  PaymentMethod = "cod"
)

// OrderLine is a denormalized snapshot of one cart line at order time. Later
// price or name changes to the product do not touch this record.
type OrderLine struct {
	ID        uint    `json:"-" gorm:"primaryKey"`
	OrderID   string  `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string  `json:"product_id" gorm:"type:varchar(36)"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// Order is the aggregate record created exactly once per successful checkout.
// Immutable after creation except Status and PaymentStatus.
type Order struct {
	ID               string        `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID           string        `json:"user_id" gorm:"index;type:varchar(36)"`
	Lines            []OrderLine   `json:"lines" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal         float64       `json:"subtotal"`
	ShippingFee      float64       `json:"shipping_fee"`
	TotalAmount      float64       `json:"total_amount"`
	Status           OrderStatus   `json:"status" gorm:"type:varchar(20);default:'placed'"`
	OrderType        OrderType     `json:"order_type" gorm:"type:varchar(20)"`
	PaymentMethod    PaymentMethod `json:"payment_method" gorm:"type:varchar(20)"`
	PaymentStatus    PaymentStatus `json:"payment_status" gorm:"type:varchar(20);default:'pending'"`
	PaymentReference string        `json:"payment_reference,omitempty"`
	IdempotencyKey   string        `json:"-" gorm:"uniqueIndex;type:varchar(64)"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// SellerOrderEntry is the per-seller projection of an order line, used by
// retailer and wholesaler dashboards for fulfillment. Linked to its Order by a
// weak back-reference; never deleted independently.
type SellerOrderEntry struct {
	ID        uint        `json:"id" gorm:"primaryKey"`
	OrderID   string      `json:"order_id" gorm:"index;type:varchar(36)"`
	UserID    string      `json:"user_id" gorm:"type:varchar(36)"`
	SellerID  string      `json:"seller_id" gorm:"index;type:varchar(36)"`
	ProductID string      `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int         `json:"quantity"`
	LineTotal float64     `json:"line_total"`
	Status    OrderStatus `json:"status" gorm:"type:varchar(20);default:'placed'"`
	CreatedAt time.Time   `json:"created_at"`
}

// ValidOrderStatus reports whether s is one of the admin-settable statuses.
func ValidOrderStatus(s OrderStatus) bool {
	switch s {
	case OrderStatusPlaced, OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

package model

import "time"

// Order status values. An order starts Pending and moves to Processing the
// first time an admin views it.
const (
	StatusPending    = "Pending"
	StatusProcessing = "Processing"
	StatusShipped    = "Shipped"
	StatusDelivered  = "Delivered"
)

// Order is owned by exactly one user; ownership never changes after checkout.
type Order struct {
	ID              uint        `json:"id" gorm:"primaryKey"`
	UserID          uint        `json:"user_id" gorm:"index;not null"`
	TotalAmount     float64     `json:"total_amount" gorm:"default:0"`
	Status          string      `json:"status" gorm:"type:varchar(20);default:'Pending'"`
	ShippingAddress string      `json:"shipping_address" gorm:"type:text"`
	CreatedAt       time.Time   `json:"created_at"`
	Items           []OrderItem `json:"items"`
}

// OrderItem captures quantity and the unit price at the time of purchase.
// Price is a frozen copy of the product's discount price and never tracks
// later catalog changes.
type OrderItem struct {
	ID        uint     `json:"id" gorm:"primaryKey"`
	OrderID   uint     `json:"order_id" gorm:"index;not null"`
	ProductID uint     `json:"product_id" gorm:"index;not null"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"`
	Product   *Product `json:"product,omitempty"`
}

package models

import (
	"fmt"
	"math/rand"
	"time"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusPreparing = "preparing"
	OrderStatusReady     = "ready"
	OrderStatusServed    = "served"
)

// orderStatusFlow is the forward-only progression shown on the orders board.
var orderStatusFlow = []string{
	OrderStatusPending,
	OrderStatusPreparing,
	OrderStatusReady,
	OrderStatusServed,
}

type Order struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	RestaurantID  uint        `gorm:"index;not null" json:"restaurant_id"`
	OrderNumber   string      `gorm:"type:varchar(20);not null" json:"order_number"`
	Status        string      `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	CustomerName  string      `gorm:"type:varchar(255)" json:"customer_name,omitempty"`
	CustomerPhone string      `gorm:"type:varchar(50)" json:"customer_phone,omitempty"`
	TableNumber   *string     `gorm:"type:varchar(20)" json:"table_number,omitempty"`
	Items         []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	CreatedAt     time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time   `gorm:"not null" json:"updated_at"`
}

// OrderItem snapshots product name and unit price at order time so later
// product edits never rewrite order history.
type OrderItem struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	OrderID     uint      `gorm:"index;not null" json:"order_id"`
	ProductID   uint      `gorm:"not null" json:"product_id"`
	ProductName string    `gorm:"type:varchar(255);not null" json:"product_name"`
	Quantity    int       `gorm:"not null" json:"quantity"`
	UnitPrice   float64   `gorm:"type:decimal(10,2);not null" json:"unit_price"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

func (o *Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

func IsValidOrderStatus(status string) bool {
	for _, s := range orderStatusFlow {
		if s == status {
			return true
		}
	}
	return false
}

// NextOrderStatus returns the status one step forward in the progression.
// "served" is terminal and has no next step.
func NextOrderStatus(status string) (string, bool) {
	for i, s := range orderStatusFlow {
		if s == status && i+1 < len(orderStatusFlow) {
			return orderStatusFlow[i+1], true
		}
	}
	return "", false
}

// GenerateOrderNumber builds the human-readable label shown to staff:
// a yymmdd date stamp plus a random 3-digit suffix, e.g. "240915-482".
func GenerateOrderNumber(now time.Time) string {
	return fmt.Sprintf("%s-%d", now.Format("060102"), rand.Intn(900)+100)
}

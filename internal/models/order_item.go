package models

import (
	"time"

	"gorm.io/gorm"
)

// OrderItem is a product snapshot frozen at checkout. Later catalog edits
// never change what an order shows.
type OrderItem struct {
	ID             uint           `gorm:"primarykey" json:"id"`                                         // primary key
	OrderID        uint           `gorm:"index;not null" json:"order_id"`                               // owning order
	ProductID      uint           `gorm:"index;not null" json:"product_id"`                             // source product
	Name           string         `gorm:"type:varchar(200);not null" json:"name"`                       // name snapshot
	Image          string         `gorm:"type:varchar(500)" json:"image"`                               // primary image snapshot
	UnitPrice      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"unit_price"`      // price snapshot
	Quantity       int            `gorm:"not null" json:"quantity"`                                     // units ordered
	DeliveryCharge Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_charge"` // flat charge applied for this product
	LineTotal      Money          `gorm:"type:decimal(20,2);not null;default:0" json:"line_total"`      // unit price x quantity
	CreatedAt      time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	DeletedAt      gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft-delete time
}

// TableName sets the table name.
func (OrderItem) TableName() string {
	return "order_items"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// CartItem is one product line in a user's cart.
type CartItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // primary key
	UserID    uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`    // owning user
	ProductID uint           `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"` // product
	Quantity  int            `gorm:"not null" json:"quantity"`                                     // within [min order quantity, stock]
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	UpdatedAt time.Time      `gorm:"index" json:"updated_at"`                                      // update time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft-delete time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // joined product
}

// TableName sets the table name.
func (CartItem) TableName() string {
	return "cart_items"
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// WishlistItem records a product a user saved for later.
type WishlistItem struct {
	ID        uint           `gorm:"primarykey" json:"id"`                                         // primary key
	UserID    uint           `gorm:"not null;uniqueIndex:idx_wish_user_product" json:"user_id"`    // owning user
	ProductID uint           `gorm:"not null;uniqueIndex:idx_wish_user_product" json:"product_id"` // product
	CreatedAt time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft-delete time

	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"` // joined product
}

// TableName sets the table name.
func (WishlistItem) TableName() string {
	return "wishlist_items"
}

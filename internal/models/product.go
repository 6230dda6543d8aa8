package models

import (
	"time"

	"gorm.io/gorm"
)

// Product is the catalog product table.
type Product struct {
	ID                uint           `gorm:"primarykey" json:"id"`                                         // primary key
	Name              string         `gorm:"type:varchar(200);not null;index" json:"name"`                 // display name
	Slug              string         `gorm:"uniqueIndex;not null" json:"slug"`                             // unique URL identifier
	Description       string         `gorm:"type:text" json:"description"`                                 // long description
	Price             Money          `gorm:"type:decimal(20,2);not null;default:0" json:"price"`           // selling price
	OriginalPrice     *Money         `gorm:"type:decimal(20,2)" json:"original_price,omitempty"`           // strike-through price
	Stock             int            `gorm:"not null;default:0" json:"stock"`                              // units available
	MinOrderQuantity  int            `gorm:"not null;default:1" json:"min_order_quantity"`                 // smallest quantity per cart line
	Images            StringArray    `gorm:"type:json" json:"images"`                                      // image URLs, at least one
	Tags              StringArray    `gorm:"type:json" json:"tags"`                                        // search tags
	IsFeatured        bool           `gorm:"default:false;index" json:"is_featured"`                       // homepage highlight
	IsActive          bool           `gorm:"default:true;index" json:"is_active"`                          // storefront visibility
	HasDeliveryCharge bool           `gorm:"default:false" json:"has_delivery_charge"`                     // flat delivery charge applies
	DeliveryCharge    Money          `gorm:"type:decimal(20,2);not null;default:0" json:"delivery_charge"` // charged once per order when present
	SortOrder         int            `gorm:"default:0;index" json:"sort_order"`                            // sort weight
	CreatedAt         time.Time      `gorm:"index" json:"created_at"`                                      // creation time
	UpdatedAt         time.Time      `json:"updated_at"`                                                   // update time
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`                                               // soft-delete time

	Categories []Category `gorm:"many2many:product_categories" json:"categories,omitempty"` // at least one
}

// TableName sets the table name.
func (Product) TableName() string {
	return "products"
}

// CategoryIDs returns the ids of the loaded category associations.
func (p *Product) CategoryIDs() []uint {
	ids := make([]uint, 0, len(p.Categories))
	for _, c := range p.Categories {
		ids = append(ids, c.ID)
	}
	return ids
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Category is the catalog category table.
type Category struct {
	ID          uint           `gorm:"primarykey" json:"id"`                    // primary key
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`        // display name
	Slug        string         `gorm:"uniqueIndex;not null" json:"slug"`        // derived from name unless provided
	Description string         `gorm:"type:text" json:"description"`            // short description
	ImageURL    string         `gorm:"type:varchar(500)" json:"image_url"`      // tile image
	SortOrder   int            `gorm:"default:0;index" json:"sort_order"`       // sort weight
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`                 // creation time
	UpdatedAt   time.Time      `json:"updated_at"`                              // update time
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`                          // soft-delete time
}

// TableName sets the table name.
func (Category) TableName() string {
	return "categories"
}

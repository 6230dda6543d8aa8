package models

import "time"

// OrderTracking is one entry of an order's append-only status log. Entries
// are only ever inserted; updates and deletes are reserved to order removal.
type OrderTracking struct {
	ID             uint            `gorm:"primarykey" json:"id"`                          // primary key
	OrderID        uint            `gorm:"index;not null" json:"order_id"`                // owning order
	Status         string          `gorm:"not null" json:"status"`                        // status after the change
	PreviousStatus string          `json:"previous_status"`                               // status before the change
	UpdatedByName  string          `gorm:"type:varchar(100)" json:"updated_by_name"`      // acting admin or "system"
	Notes          string          `gorm:"type:text" json:"notes,omitempty"`              // free-form remark
	AdditionalInfo *AdditionalInfo `gorm:"type:json" json:"additional_info,omitempty"`    // message slot snapshot at write time
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`                       // entry time
}

// TableName sets the table name.
func (OrderTracking) TableName() string {
	return "order_tracking"
}

package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"gorm.io/gorm"
)

// ShippingAddress is the structured delivery address snapshot stored on an
// order. Service flags chosen at checkout (gift wrap, express delivery)
// travel with it.
type ShippingAddress struct {
	Name            string `json:"name"`
	Phone           string `json:"phone"`
	Email           string `json:"email,omitempty"`
	Line1           string `json:"line1"`
	Line2           string `json:"line2,omitempty"`
	Landmark        string `json:"landmark,omitempty"`
	Area            string `json:"area,omitempty"`
	City            string `json:"city"`
	District        string `json:"district,omitempty"`
	State           string `json:"state"`
	Pincode         string `json:"pincode"`
	Country         string `json:"country,omitempty"`
	GiftWrap        bool   `json:"gift_wrap,omitempty"`
	ExpressDelivery bool   `json:"express_delivery,omitempty"`
	GiftMessage     string `json:"gift_message,omitempty"`
}

// Value implements driver.Valuer.
func (a ShippingAddress) Value() (driver.Value, error) {
	return json.Marshal(a)
}

// Scan implements sql.Scanner.
func (a *ShippingAddress) Scan(value interface{}) error {
	if value == nil {
		*a = ShippingAddress{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("shipping address: unsupported column type")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, a)
}

// AdditionalInfo is the single customer-facing message slot on an order.
// Setting it overwrites the previous value; clearing empties the slot.
type AdditionalInfo struct {
	Message   string    `json:"message"`
	UpdatedAt time.Time `json:"updated_at"`
	UpdatedBy string    `json:"updated_by"`
}

// Value implements driver.Valuer.
func (i AdditionalInfo) Value() (driver.Value, error) {
	return json.Marshal(i)
}

// Scan implements sql.Scanner.
func (i *AdditionalInfo) Scan(value interface{}) error {
	if value == nil {
		*i = AdditionalInfo{}
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		s, ok := value.(string)
		if !ok {
			return errors.New("additional info: unsupported column type")
		}
		bytes = []byte(s)
	}
	return json.Unmarshal(bytes, i)
}

// Order is the order table.
type Order struct {
	ID              uint            `gorm:"primarykey" json:"id"`                                        // primary key
	OrderNo         string          `gorm:"uniqueIndex;not null" json:"order_no"`                        // public order number
	UserID          uint            `gorm:"index;not null" json:"user_id"`                               // owning user
	Status          string          `gorm:"index;not null" json:"status"`                                // one of the seven canonical values
	Currency        string          `gorm:"not null" json:"currency"`                                    // site currency
	Subtotal        Money           `gorm:"type:decimal(20,2);not null;default:0" json:"subtotal"`       // sum of line totals
	ShippingFee     Money           `gorm:"type:decimal(20,2);not null;default:0" json:"shipping_fee"`   // flat per-product delivery charges
	TotalAmount     Money           `gorm:"type:decimal(20,2);not null;default:0" json:"total_amount"`   // subtotal + shipping fee
	ShippingAddress ShippingAddress `gorm:"type:json" json:"shipping_address"`                           // delivery address snapshot
	AdditionalInfo  *AdditionalInfo `gorm:"type:json" json:"additional_info,omitempty"`                  // one-slot admin message
	PaymentID       string          `gorm:"type:varchar(100);index" json:"payment_id,omitempty"`         // opaque external payment reference
	PaymentStatus   string          `gorm:"type:varchar(20);default:'pending'" json:"payment_status"`    // mirrored gateway outcome
	CancelledAt     *time.Time      `gorm:"index" json:"cancelled_at,omitempty"`                         // cancellation time
	DeliveredAt     *time.Time      `gorm:"index" json:"delivered_at,omitempty"`                         // delivery time
	CreatedAt       time.Time       `gorm:"index" json:"created_at"`                                     // placement time
	UpdatedAt       time.Time       `gorm:"index" json:"updated_at"`                                     // last change time
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`                                              // soft-delete time

	Items    []OrderItem     `gorm:"foreignKey:OrderID" json:"items,omitempty"`    // line snapshots
	Tracking []OrderTracking `gorm:"foreignKey:OrderID" json:"tracking,omitempty"` // append-only status log
}

// TableName sets the table name.
func (Order) TableName() string {
	return "orders"
}

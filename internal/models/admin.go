package models

import (
	"time"

	"gorm.io/gorm"
)

// Admin is a back-office operator account.
type Admin struct {
	ID           uint           `gorm:"primarykey" json:"id"`                         // primary key
	Username     string         `gorm:"uniqueIndex;not null" json:"username"`         // login name
	Email        string         `gorm:"uniqueIndex;not null" json:"email"`            // contact email, used by check-admin
	PasswordHash string         `gorm:"not null" json:"-"`                            // bcrypt hash, never serialized
	Role         string         `gorm:"type:varchar(30);default:'support'" json:"role"` // casbin role
	IsSuper      bool           `gorm:"not null;default:false;index" json:"is_super"` // bypasses permission checks
	Status       string         `gorm:"default:'active'" json:"status"`               // account status
	LastLoginAt  *time.Time     `json:"last_login_at"`                                // last login time
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`                      // creation time
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`                               // soft-delete time
}

// TableName sets the table name.
func (Admin) TableName() string {
	return "admins"
}

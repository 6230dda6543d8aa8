package models

import (
	"strings"

	"github.com/giftgalore/api/internal/constants"
	"github.com/giftgalore/api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin provisions the default administrator on an empty database.
func InitDefaultAdmin(username, email, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)

	// With admins present, only make sure the default account stays super.
	if count > 0 {
		if err := DB.Model(&Admin{}).Where("username = ?", "admin").Update("is_super", true).Error; err != nil {
			logger.Warnw("ensure_default_admin_super_failed", "error", err)
		}
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if email == "" {
		email = "admin@giftgalore.local"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         constants.AdminRoleSuper,
		IsSuper:      strings.EqualFold(strings.TrimSpace(username), "admin"),
		Status:       constants.AccountStatusActive,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "username", username)
		logger.Warnw("default_admin_password_change_required", "username", username)
	} else {
		logger.Warnw("default_admin_created", "username", username, "password_hidden", true)
	}

	return nil
}

package models

import (
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultAdmin 初始化默认管理员账号
func InitDefaultAdmin(email, password string) error {
	var count int64
	DB.Model(&Admin{}).Count(&count)
	if count > 0 {
		return nil
	}

	// 创建默认管理员
	if strings.TrimSpace(email) == "" {
		email = "admin@madiluxe.com"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := Admin{
		Email:        email,
		Name:         "Administrator",
		Role:         constants.AdminRoleAdmin,
		PasswordHash: string(hash),
		IsActive:     true,
	}

	if err := DB.Create(&admin).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_admin_created_with_default_password", "email", email)
		logger.Warnw("default_admin_password_change_required", "email", email)
	} else {
		logger.Warnw("default_admin_created", "email", email, "password_hidden", true)
	}

	return nil
}

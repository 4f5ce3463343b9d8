package models

import (
	"github.com/ice-club/storefront/internal/logger"

	"golang.org/x/crypto/bcrypt"
)

// InitDefaultSuperuser 初始化默认超级管理员账号
func InitDefaultSuperuser(username, password, email string) error {
	var count int64
	DB.Model(&User{}).Where("is_superuser = ?", true).Count(&count)
	if count > 0 {
		return nil
	}

	if username == "" {
		username = "admin"
	}
	if password == "" {
		password = "admin123"
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsSuperuser:  true,
	}

	if err := DB.Create(&user).Error; err != nil {
		return err
	}

	if password == "admin123" {
		logger.Warnw("default_superuser_created_with_default_password", "username", username)
		logger.Warnw("default_superuser_password_change_required", "username", username)
	} else {
		logger.Warnw("default_superuser_created", "username", username, "password_hidden", true)
	}

	return nil
}

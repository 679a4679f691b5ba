package repository

import (
	"errors"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// AdminRepository 管理员数据访问接口
type AdminRepository interface {
	GetByEmail(email string) (*models.Admin, error)
	GetByID(id string) (*models.Admin, error)
	Create(admin *models.Admin) error
	UpdateLastLogin(id string, at time.Time) error
}

// GormAdminRepository GORM 实现
type GormAdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository 创建管理员仓库
func NewAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{db: db}
}

// GetByEmail 根据邮箱获取管理员
func (r *GormAdminRepository) GetByEmail(email string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("email = ?", email).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// GetByID 根据 ID 获取管理员
func (r *GormAdminRepository) GetByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.db.Where("id = ?", id).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &admin, nil
}

// Create 创建管理员
func (r *GormAdminRepository) Create(admin *models.Admin) error {
	return r.db.Create(admin).Error
}

// UpdateLastLogin 更新最后登录时间
func (r *GormAdminRepository) UpdateLastLogin(id string, at time.Time) error {
	return r.db.Model(&models.Admin{}).Where("id = ?", id).Update("last_login_at", at).Error
}

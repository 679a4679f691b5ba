package repository

import (
	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// IntegrationRepository 营销集成数据访问接口
type IntegrationRepository interface {
	ListActiveByKinds(kinds []string) ([]models.Integration, error)
}

// GormIntegrationRepository GORM 实现
type GormIntegrationRepository struct {
	db *gorm.DB
}

// NewIntegrationRepository 创建集成仓库
func NewIntegrationRepository(db *gorm.DB) *GormIntegrationRepository {
	return &GormIntegrationRepository{db: db}
}

// ListActiveByKinds 获取指定类型的启用集成
func (r *GormIntegrationRepository) ListActiveByKinds(kinds []string) ([]models.Integration, error) {
	var integrations []models.Integration
	if err := r.db.
		Where("is_active = ?", true).
		Where("kind IN ?", kinds).
		Order("created_at ASC").
		Find(&integrations).Error; err != nil {
		return nil, err
	}
	return integrations, nil
}

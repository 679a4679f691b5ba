package repository

import (
	"errors"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// OrderRepository 线索订单数据访问接口
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
}

// GormOrderRepository GORM 实现
type GormOrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Create 创建订单
func (r *GormOrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID 根据 ID 获取订单（带商品信息）
func (r *GormOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Product").Where("id = ?", id).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &order, nil
}

package repository

import (
	"errors"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// CustomerRepository 客户数据访问接口
type CustomerRepository interface {
	GetByPhone(phone string) (*models.Customer, error)
	Create(customer *models.Customer) error
	Update(customer *models.Customer) error
}

// GormCustomerRepository GORM 实现
type GormCustomerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository 创建客户仓库
func NewCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

// GetByPhone 根据手机号获取客户（取最早一条）
func (r *GormCustomerRepository) GetByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.Where("phone = ?", phone).Order("created_at ASC").First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// Create 创建客户
func (r *GormCustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// Update 更新客户
func (r *GormCustomerRepository) Update(customer *models.Customer) error {
	return r.db.Save(customer).Error
}

package repository

import (
	"errors"

	"gorm.io/gorm"
)

// GatewayRepository 通用查询网关的数据访问接口
// 资源的类型信息由上层注册表提供，这里只负责统一的增删改查语义。
type GatewayRepository interface {
	Select(model interface{}, dest interface{}, filters map[string]interface{}) error
	Create(value interface{}) error
	FindOne(model interface{}, dest interface{}, column string, value interface{}) (bool, error)
	UpdateFields(model interface{}, id string, fields map[string]interface{}) (int64, error)
	DeleteByID(model interface{}, id string) (int64, error)
}

// GormGatewayRepository GORM 实现
type GormGatewayRepository struct {
	db *gorm.DB
}

// NewGatewayRepository 创建网关仓库
func NewGatewayRepository(db *gorm.DB) *GormGatewayRepository {
	return &GormGatewayRepository{db: db}
}

// Select 按等值条件查询资源列表，按创建时间倒序
func (r *GormGatewayRepository) Select(model interface{}, dest interface{}, filters map[string]interface{}) error {
	query := r.db.Model(model)
	if len(filters) > 0 {
		query = query.Where(filters)
	}
	return query.Order("created_at DESC").Find(dest).Error
}

// Create 插入一行或多行
func (r *GormGatewayRepository) Create(value interface{}) error {
	return r.db.Create(value).Error
}

// FindOne 按单列等值查找一行，未命中返回 false 而非错误
func (r *GormGatewayRepository) FindOne(model interface{}, dest interface{}, column string, value interface{}) (bool, error) {
	err := r.db.Model(model).Where(column+" = ?", value).First(dest).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// UpdateFields 按主键更新字段集合，返回受影响行数
func (r *GormGatewayRepository) UpdateFields(model interface{}, id string, fields map[string]interface{}) (int64, error) {
	result := r.db.Model(model).Where("id = ?", id).Updates(fields)
	return result.RowsAffected, result.Error
}

// DeleteByID 按主键删除，返回受影响行数（0 行不视为错误）
func (r *GormGatewayRepository) DeleteByID(model interface{}, id string) (int64, error) {
	result := r.db.Where("id = ?", id).Delete(model)
	return result.RowsAffected, result.Error
}

package repository

import (
	"errors"

	"github.com/madiluxe/madiluxe-api/internal/models"

	"gorm.io/gorm"
)

// CatalogRepository 公开目录数据访问接口（仅读取上架数据）
type CatalogRepository interface {
	ListActiveCategories() ([]models.Category, error)
	GetActiveCategoryBySlug(slug string) (*models.Category, error)
	ListActiveProducts(categoryID string) ([]models.Product, error)
	GetActiveProductBySlug(slug string) (*models.Product, error)
}

// GormCatalogRepository GORM 实现
type GormCatalogRepository struct {
	db *gorm.DB
}

// NewCatalogRepository 创建目录仓库
func NewCatalogRepository(db *gorm.DB) *GormCatalogRepository {
	return &GormCatalogRepository{db: db}
}

// ListActiveCategories 获取展示中的分类列表
func (r *GormCatalogRepository) ListActiveCategories() ([]models.Category, error) {
	var categories []models.Category
	if err := r.db.
		Where("is_active = ?", true).
		Order("sort_order DESC, created_at ASC").
		Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetActiveCategoryBySlug 根据 slug 获取展示中的分类
func (r *GormCatalogRepository) GetActiveCategoryBySlug(slug string) (*models.Category, error) {
	var category models.Category
	if err := r.db.Where("slug = ? AND is_active = ?", slug, true).First(&category).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// ListActiveProducts 获取上架商品列表，可按分类过滤
func (r *GormCatalogRepository) ListActiveProducts(categoryID string) ([]models.Product, error) {
	query := r.db.Preload("Category").Where("is_active = ?", true)
	if categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	var products []models.Product
	if err := query.Order("sort_order DESC, created_at DESC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetActiveProductBySlug 根据 slug 获取上架商品
func (r *GormCatalogRepository) GetActiveProductBySlug(slug string) (*models.Product, error) {
	var product models.Product
	if err := r.db.Preload("Category").Where("slug = ? AND is_active = ?", slug, true).First(&product).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

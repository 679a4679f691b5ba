package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/cache"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/repository"
)

const (
	catalogCategoriesCacheKey = "catalog:categories"
	catalogCacheTTL           = 5 * time.Minute
)

// CatalogService 公开目录服务
// 只读上架数据，分类列表走 Redis 缓存，缓存不可用时直接回源。
type CatalogService struct {
	catalogRepo repository.CatalogRepository
}

// NewCatalogService 创建目录服务实例
func NewCatalogService(catalogRepo repository.CatalogRepository) *CatalogService {
	return &CatalogService{catalogRepo: catalogRepo}
}

// ListCategories 展示中的分类列表
func (s *CatalogService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var cached []models.Category
	if hit, err := cache.GetJSON(ctx, catalogCategoriesCacheKey, &cached); err == nil && hit {
		return cached, nil
	}

	categories, err := s.catalogRepo.ListActiveCategories()
	if err != nil {
		return nil, err
	}
	if err := cache.SetJSON(ctx, catalogCategoriesCacheKey, categories, catalogCacheTTL); err != nil {
		logger.Warnw("catalog_cache_set_failed", "key", catalogCategoriesCacheKey, "error", err)
	}
	return categories, nil
}

// ListProducts 上架商品列表，可按分类 slug 过滤
// 未知分类 slug 返回 ErrNotFound。
func (s *CatalogService) ListProducts(categorySlug string) ([]models.Product, error) {
	categoryID := ""
	if slug := strings.TrimSpace(categorySlug); slug != "" {
		category, err := s.catalogRepo.GetActiveCategoryBySlug(slug)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, fmt.Errorf("%w: category %s", ErrNotFound, slug)
		}
		categoryID = category.ID
	}
	return s.catalogRepo.ListActiveProducts(categoryID)
}

// GetProductBySlug 根据 slug 获取上架商品
func (s *CatalogService) GetProductBySlug(slug string) (*models.Product, error) {
	product, err := s.catalogRepo.GetActiveProductBySlug(strings.TrimSpace(slug))
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, fmt.Errorf("%w: product %s", ErrNotFound, slug)
	}
	return product, nil
}

// InvalidateCategoriesCache 分类变更后清缓存
func (s *CatalogService) InvalidateCategoriesCache(ctx context.Context) {
	if err := cache.Del(ctx, catalogCategoriesCacheKey); err != nil {
		logger.Warnw("catalog_cache_del_failed", "key", catalogCategoriesCacheKey, "error", err)
	}
}

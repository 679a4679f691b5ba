package public

import (
	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"
	"github.com/madiluxe/madiluxe-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// ListCategories 展示中的分类列表
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.CatalogService.ListCategories(c.Request.Context())
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, categories)
}

// ListProducts 上架商品列表，支持 ?category=slug 过滤
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.CatalogService.ListProducts(c.Query("category"))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 商品详情
func (h *Handler) GetProduct(c *gin.Context) {
	product, err := h.CatalogService.GetProductBySlug(c.Param("slug"))
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, product)
}

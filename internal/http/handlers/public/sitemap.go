package public

import (
	"net/http"

	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

// Sitemap 站点地图
// 构建失败时退回最小 sitemap，永远返回 200。
func (h *Handler) Sitemap(c *gin.Context) {
	body, err := h.SitemapService.BuildSitemap()
	if err != nil {
		shared.RequestLog(c).Errorw("sitemap_build_failed", "error", err)
		body = h.SitemapService.FallbackSitemap()
	}
	c.Data(http.StatusOK, xmlContentType, body)
}

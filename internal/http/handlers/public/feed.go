package public

import (
	"net/http"

	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"

	"github.com/gin-gonic/gin"
)

const xmlContentType = "application/xml; charset=utf-8"

// ProductFeed Google Merchant 商品 Feed
func (h *Handler) ProductFeed(c *gin.Context) {
	body, err := h.FeedService.BuildProductFeed()
	if err != nil {
		shared.RequestLog(c).Errorw("product_feed_build_failed", "error", err)
		c.Data(http.StatusBadRequest, xmlContentType, []byte(`<?xml version="1.0" encoding="UTF-8"?><error>feed unavailable</error>`))
		return
	}
	c.Data(http.StatusOK, xmlContentType, body)
}

package public

import (
	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"
	"github.com/madiluxe/madiluxe-api/internal/http/response"
	"github.com/madiluxe/madiluxe-api/internal/service"

	"github.com/gin-gonic/gin"
)

// CaptureLead 留资表单提交
// 通知渠道的成败不影响表单结果，表单只关心线索是否落库。
func (h *Handler) CaptureLead(c *gin.Context) {
	var input service.CaptureLeadInput
	if err := c.ShouldBindJSON(&input); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	order, err := h.LeadService.Capture(input)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	shared.RequestLog(c).Infow("lead_captured", "order_id", order.ID, "source", order.Source)
	response.Success(c, gin.H{"order_id": order.ID})
}

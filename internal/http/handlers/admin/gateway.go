package admin

import (
	"encoding/json"

	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"
	"github.com/madiluxe/madiluxe-api/internal/http/response"
	"github.com/madiluxe/madiluxe-api/internal/service"

	"github.com/gin-gonic/gin"
)

type gatewayRequest struct {
	SessionToken string                 `json:"session_token"`
	Query        string                 `json:"query"`
	Action       string                 `json:"action"`
	Data         json.RawMessage        `json:"data"`
	ID           string                 `json:"id"`
	Filters      map[string]interface{} `json:"filters"`
}

// Query 通用查询网关
// 每次请求都重新校验会话令牌，再按注册表和角色策略执行。
func (h *Handler) Query(c *gin.Context) {
	var req gatewayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "invalid request body", nil)
		return
	}

	admin, err := h.AuthService.Verify(req.SessionToken)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	data, err := h.GatewayService.Execute(admin, service.GatewayRequest{
		Query:   req.Query,
		Action:  req.Action,
		Data:    req.Data,
		ID:      req.ID,
		Filters: req.Filters,
	})
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	shared.RequestLog(c).Infow("gateway_query",
		"admin_id", admin.ID,
		"resource", req.Query,
		"action", req.Action,
	)
	response.Success(c, data)
}

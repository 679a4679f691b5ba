package admin

import (
	"github.com/madiluxe/madiluxe-api/internal/http/handlers/shared"
	"github.com/madiluxe/madiluxe-api/internal/http/response"
	"github.com/madiluxe/madiluxe-api/internal/models"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type sessionTokenRequest struct {
	SessionToken string `json:"session_token"`
}

// Login 管理员登录
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeBadRequest, "email and password are required", nil)
		return
	}

	admin, token, expiresAt, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	shared.RequestLog(c).Infow("admin_login", "admin_id", admin.ID, "email", admin.Email)
	response.Success(c, gin.H{
		"session_token": token,
		"expires_at":    expiresAt,
		"admin":         adminView(admin),
	})
}

// Verify 校验会话令牌
func (h *Handler) Verify(c *gin.Context) {
	var req sessionTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		shared.RespondError(c, response.CodeUnauthorized, "invalid session", nil)
		return
	}

	admin, err := h.AuthService.Verify(req.SessionToken)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Success(c, gin.H{"admin": adminView(admin)})
}

// Logout 登出（幂等，令牌无效也返回成功）
func (h *Handler) Logout(c *gin.Context) {
	var req sessionTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Success(c, nil)
		return
	}

	if err := h.AuthService.Logout(req.SessionToken); err != nil {
		shared.RespondServiceError(c, err)
		return
	}
	response.Success(c, nil)
}

func adminView(admin *models.Admin) gin.H {
	return gin.H{
		"id":    admin.ID,
		"email": admin.Email,
		"name":  admin.Name,
		"role":  admin.Role,
	}
}

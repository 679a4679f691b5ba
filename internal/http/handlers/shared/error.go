package shared

import (
	"errors"

	"github.com/madiluxe/madiluxe-api/internal/http/response"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 把服务层业务错误映射到统一响应
// 未识别的错误按存储故障处理：细节只进日志，响应保持笼统。
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidCredentials):
		RespondError(c, response.CodeUnauthorized, "invalid credentials", nil)
	case errors.Is(err, service.ErrInvalidSession):
		RespondError(c, response.CodeUnauthorized, "invalid session", nil)
	case errors.Is(err, service.ErrForbidden):
		RespondError(c, response.CodeForbidden, "forbidden", nil)
	case errors.Is(err, service.ErrUnknownResource):
		RespondError(c, response.CodeBadRequest, "unknown resource", nil)
	case errors.Is(err, service.ErrUnsupportedAction):
		RespondError(c, response.CodeBadRequest, "unsupported action", nil)
	case errors.Is(err, service.ErrInvalidPayload), errors.Is(err, service.ErrInvalidInput):
		RespondError(c, response.CodeBadRequest, err.Error(), nil)
	case errors.Is(err, service.ErrNotFound):
		RespondError(c, response.CodeNotFound, "record not found", nil)
	default:
		RespondError(c, response.CodeInternal, "internal error", err)
	}
}

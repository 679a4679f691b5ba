package notify

import (
	"context"
	"net/http"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/models"
)

const defaultTimeout = 5 * time.Second

// Message 线索通知内容
type Message struct {
	OrderID       string
	CustomerName  string
	CustomerPhone string
	CustomerEmail string
	ProductName   string
	Text          string
	Source        string
	CreatedAt     time.Time
}

// Sender 通知渠道发送器
// 每个启用的 Integration 对应一次 Send 调用，失败只记录不重试。
type Sender interface {
	Kind() string
	Send(ctx context.Context, integration models.Integration, msg Message) error
}

// NewHTTPClient 创建带超时的通知 HTTP 客户端
func NewHTTPClient(timeoutMS int) *http.Client {
	timeout := defaultTimeout
	if timeoutMS > 0 {
		timeout = time.Duration(timeoutMS) * time.Millisecond
	}
	return &http.Client{Timeout: timeout}
}

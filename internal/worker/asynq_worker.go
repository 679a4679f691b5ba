package worker

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/provider"
	"github.com/madiluxe/madiluxe-api/internal/queue"

	"github.com/hibiken/asynq"
)

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	return &Consumer{
		Container: c,
	}
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskLeadNotify, c.handleLeadNotify)
}

// handleLeadNotify 线索通知分发
// 渠道失败不触发重试：营销事件允许丢失，任务返回 nil 即消费完成。
func (c *Consumer) handleLeadNotify(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_lead_notify_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	var payload queue.LeadNotifyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		logger.Warnw("worker_lead_notify_unmarshal_failed", "error", err)
		return nil
	}
	orderID := strings.TrimSpace(payload.OrderID)
	if orderID == "" {
		logger.Debugw("worker_lead_notify_skip_invalid_payload")
		return nil
	}
	if c.NotificationService == nil {
		logger.Warnw("worker_lead_notify_skip_service_nil", "order_id", orderID)
		return nil
	}
	return c.NotificationService.DispatchLeadNotifications(ctx, orderID)
}

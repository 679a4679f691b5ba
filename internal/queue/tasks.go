package queue

import (
	"encoding/json"

	"github.com/madiluxe/madiluxe-api/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskLeadNotify 线索通知分发任务
	TaskLeadNotify = constants.TaskLeadNotify
)

// LeadNotifyPayload 线索通知任务载荷
type LeadNotifyPayload struct {
	OrderID string `json:"order_id"`
}

// NewLeadNotifyTask 创建线索通知任务
func NewLeadNotifyTask(payload LeadNotifyPayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskLeadNotify, body), nil
}

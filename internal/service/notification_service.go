package service

import (
	"context"
	"sync"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/notify"
	"github.com/madiluxe/madiluxe-api/internal/repository"
)

// NotificationService 线索通知分发服务
// 每条线索按启用的集成并行推送，单渠道失败只记日志，
// 任务不重试：营销事件丢了就丢了，不阻塞后续线索。
type NotificationService struct {
	orderRepo       repository.OrderRepository
	integrationRepo repository.IntegrationRepository
	senders         map[string]notify.Sender
}

// NewNotificationService 创建通知分发服务实例
func NewNotificationService(
	orderRepo repository.OrderRepository,
	integrationRepo repository.IntegrationRepository,
	senders ...notify.Sender,
) *NotificationService {
	byKind := make(map[string]notify.Sender, len(senders))
	for _, sender := range senders {
		byKind[sender.Kind()] = sender
	}
	return &NotificationService{
		orderRepo:       orderRepo,
		integrationRepo: integrationRepo,
		senders:         byKind,
	}
}

// DispatchLeadNotifications 分发一条线索到所有启用的通知渠道
func (s *NotificationService) DispatchLeadNotifications(ctx context.Context, orderID string) error {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil {
		logger.Errorw("lead_notify_load_failed", "order_id", orderID, "error", err)
		return nil
	}
	if order == nil {
		logger.Warnw("lead_notify_order_missing", "order_id", orderID)
		return nil
	}

	kinds := make([]string, 0, len(s.senders))
	for kind := range s.senders {
		kinds = append(kinds, kind)
	}
	integrations, err := s.integrationRepo.ListActiveByKinds(kinds)
	if err != nil {
		logger.Errorw("lead_notify_integrations_failed", "order_id", orderID, "error", err)
		return nil
	}
	if len(integrations) == 0 {
		return nil
	}

	msg := buildLeadMessage(order)

	var wg sync.WaitGroup
	for _, integration := range integrations {
		sender, ok := s.senders[integration.Kind]
		if !ok {
			continue
		}
		wg.Add(1)
		go func(integration models.Integration, sender notify.Sender) {
			defer wg.Done()
			if err := sender.Send(ctx, integration, msg); err != nil {
				logger.Errorw("lead_notify_send_failed",
					"order_id", msg.OrderID,
					"integration", integration.Name,
					"kind", integration.Kind,
					"error", err,
				)
				return
			}
			logger.Infow("lead_notify_sent",
				"order_id", msg.OrderID,
				"integration", integration.Name,
				"kind", integration.Kind,
			)
		}(integration, sender)
	}
	wg.Wait()
	return nil
}

func buildLeadMessage(order *models.Order) notify.Message {
	productName := ""
	if order.Product.ID != "" {
		productName = order.Product.Name
	}
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}
	source := order.Source
	if source == "" {
		source = constants.OrderSourceWebsite
	}
	return notify.Message{
		OrderID:       order.ID,
		CustomerName:  order.CustomerName,
		CustomerPhone: order.CustomerPhone,
		CustomerEmail: order.CustomerEmail,
		ProductName:   productName,
		Text:          order.Message,
		Source:        source,
		CreatedAt:     createdAt,
	}
}

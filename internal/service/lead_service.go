package service

import (
	"fmt"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/queue"
	"github.com/madiluxe/madiluxe-api/internal/repository"
)

// CaptureLeadInput 留资表单入参
type CaptureLeadInput struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
	Message     string `json:"message"`
	ProductSlug string `json:"product_slug"`
	Source      string `json:"source"`
}

// LeadService 线索捕获服务
// 公开表单落库为客户 + 订单，通知分发交给异步队列，
// 队列不可用或入队失败不影响表单结果。
type LeadService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
	catalogRepo  repository.CatalogRepository
	queueClient  *queue.Client
}

// NewLeadService 创建线索服务实例
func NewLeadService(
	customerRepo repository.CustomerRepository,
	orderRepo repository.OrderRepository,
	catalogRepo repository.CatalogRepository,
	queueClient *queue.Client,
) *LeadService {
	return &LeadService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
		catalogRepo:  catalogRepo,
		queueClient:  queueClient,
	}
}

// Capture 落库一条线索
func (s *LeadService) Capture(input CaptureLeadInput) (*models.Order, error) {
	name := strings.TrimSpace(input.Name)
	phone := strings.TrimSpace(input.Phone)
	if name == "" || phone == "" {
		return nil, fmt.Errorf("%w: name and phone are required", ErrInvalidInput)
	}

	source := strings.TrimSpace(input.Source)
	switch source {
	case constants.OrderSourceWebsite, constants.OrderSourceCallback:
	default:
		source = constants.OrderSourceWebsite
	}

	// 商品 slug 无效时仍然收下线索，只是不挂商品
	productID := ""
	if slug := strings.TrimSpace(input.ProductSlug); slug != "" {
		product, err := s.catalogRepo.GetActiveProductBySlug(slug)
		if err != nil {
			return nil, err
		}
		if product != nil {
			productID = product.ID
		} else {
			logger.Warnw("lead_product_slug_unknown", "slug", slug)
		}
	}

	// 同手机号复用客户档案
	customer, err := s.customerRepo.GetByPhone(phone)
	if err != nil {
		return nil, err
	}
	email := strings.TrimSpace(input.Email)
	if customer == nil {
		customer = &models.Customer{Name: name, Phone: phone, Email: email}
		if err := s.customerRepo.Create(customer); err != nil {
			return nil, err
		}
	} else if email != "" && customer.Email == "" {
		customer.Email = email
		if err := s.customerRepo.Update(customer); err != nil {
			logger.Warnw("lead_customer_update_failed", "customer_id", customer.ID, "error", err)
		}
	}

	order := models.Order{
		CustomerID:    customer.ID,
		ProductID:     productID,
		CustomerName:  name,
		CustomerPhone: phone,
		CustomerEmail: email,
		Message:       strings.TrimSpace(input.Message),
		Status:        constants.OrderStatusNew,
		Source:        source,
	}
	if err := s.orderRepo.Create(&order); err != nil {
		return nil, err
	}

	if err := s.queueClient.EnqueueLeadNotify(queue.LeadNotifyPayload{OrderID: order.ID}); err != nil {
		logger.Errorw("lead_notify_enqueue_failed", "order_id", order.ID, "error", err)
	}

	return &order, nil
}

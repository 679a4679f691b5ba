package service

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/queue"
	"github.com/madiluxe/madiluxe-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupLeadServiceTest(t *testing.T) (*LeadService, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}, &models.Customer{}, &models.Order{}); err != nil {
		t.Fatalf("migrate lead models failed: %v", err)
	}
	queueClient, err := queue.NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new queue client failed: %v", err)
	}
	svc := NewLeadService(
		repository.NewCustomerRepository(db),
		repository.NewOrderRepository(db),
		repository.NewCatalogRepository(db),
		queueClient,
	)
	return svc, db
}

func seedLeadProduct(t *testing.T, db *gorm.DB) *models.Product {
	t.Helper()
	category := &models.Category{Slug: "sofas", Name: "Sofas", IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	product := &models.Product{
		CategoryID: category.ID,
		Slug:       "milano-corner-sofa",
		Name:       "Milano Corner Sofa",
		Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(2490)),
		Currency:   "EUR",
		IsActive:   true,
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("seed product failed: %v", err)
	}
	return product
}

func TestCaptureCreatesCustomerAndOrder(t *testing.T) {
	svc, db := setupLeadServiceTest(t)
	product := seedLeadProduct(t, db)

	order, err := svc.Capture(CaptureLeadInput{
		Name:        " Anna ",
		Phone:       " +491701234567 ",
		Email:       "anna@example.com",
		Message:     "Interested in fabric options",
		ProductSlug: "milano-corner-sofa",
		Source:      constants.OrderSourceCallback,
	})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if order.CustomerName != "Anna" || order.CustomerPhone != "+491701234567" {
		t.Fatalf("contact snapshot should be trimmed: %+v", order)
	}
	if order.ProductID != product.ID {
		t.Fatalf("order product_id want %s got %s", product.ID, order.ProductID)
	}
	if order.Status != constants.OrderStatusNew {
		t.Fatalf("order status want new got %s", order.Status)
	}
	if order.Source != constants.OrderSourceCallback {
		t.Fatalf("order source want callback_form got %s", order.Source)
	}

	var customer models.Customer
	if err := db.Where("phone = ?", "+491701234567").First(&customer).Error; err != nil {
		t.Fatalf("customer row not created: %v", err)
	}
	if order.CustomerID != customer.ID {
		t.Fatalf("order customer_id want %s got %s", customer.ID, order.CustomerID)
	}
}

func TestCaptureRequiresNameAndPhone(t *testing.T) {
	svc, _ := setupLeadServiceTest(t)

	cases := []CaptureLeadInput{
		{Name: "", Phone: "+4917000000"},
		{Name: "Anna", Phone: ""},
		{Name: "   ", Phone: "   "},
	}
	for _, input := range cases {
		if _, err := svc.Capture(input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("input %+v: want ErrInvalidInput got %v", input, err)
		}
	}
}

func TestCaptureReusesCustomerByPhone(t *testing.T) {
	svc, db := setupLeadServiceTest(t)

	first, err := svc.Capture(CaptureLeadInput{Name: "Anna", Phone: "+4917011111"})
	if err != nil {
		t.Fatalf("first capture failed: %v", err)
	}
	second, err := svc.Capture(CaptureLeadInput{Name: "Anna K", Phone: "+4917011111", Email: "anna@example.com"})
	if err != nil {
		t.Fatalf("second capture failed: %v", err)
	}

	if first.CustomerID != second.CustomerID {
		t.Fatalf("same phone should reuse customer: %s != %s", first.CustomerID, second.CustomerID)
	}

	var count int64
	if err := db.Model(&models.Customer{}).Count(&count).Error; err != nil {
		t.Fatalf("count customers failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("customers count want 1 got %d", count)
	}

	// 第二次留资补全空邮箱
	var customer models.Customer
	if err := db.Where("id = ?", first.CustomerID).First(&customer).Error; err != nil {
		t.Fatalf("load customer failed: %v", err)
	}
	if customer.Email != "anna@example.com" {
		t.Fatalf("customer email want anna@example.com got %s", customer.Email)
	}
}

func TestCaptureToleratesUnknownProductSlug(t *testing.T) {
	svc, _ := setupLeadServiceTest(t)

	order, err := svc.Capture(CaptureLeadInput{
		Name:        "Anna",
		Phone:       "+4917022222",
		ProductSlug: "no-such-product",
	})
	if err != nil {
		t.Fatalf("capture with unknown slug failed: %v", err)
	}
	if order.ProductID != "" {
		t.Fatalf("unknown slug should leave product_id empty, got %s", order.ProductID)
	}
}

func TestCaptureDefaultsUnknownSource(t *testing.T) {
	svc, _ := setupLeadServiceTest(t)

	order, err := svc.Capture(CaptureLeadInput{Name: "Anna", Phone: "+4917033333", Source: "spam-bot"})
	if err != nil {
		t.Fatalf("capture failed: %v", err)
	}
	if order.Source != constants.OrderSourceWebsite {
		t.Fatalf("unknown source should fall back to website, got %s", order.Source)
	}
}

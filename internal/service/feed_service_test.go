package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func setupCatalogTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("migrate catalog failed: %v", err)
	}
	return db
}

func seedCatalog(t *testing.T, db *gorm.DB) *models.Category {
	t.Helper()
	category := &models.Category{Slug: "sofas", Name: "Sofas", SortOrder: 10, IsActive: true}
	if err := db.Create(category).Error; err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	products := []*models.Product{
		{
			CategoryID: category.ID,
			Slug:       "milano-corner-sofa",
			Name:       "Milano Corner Sofa",
			Price:      models.NewMoneyFromDecimal(decimal.NewFromFloat(2490.5)),
			Currency:   "EUR",
			Images:     models.StringArray{"https://images.madiluxe.com/milano.jpg"},
			IsActive:   true,
		},
		{
			CategoryID: category.ID,
			Slug:       "retired-sofa",
			Name:       "Retired Sofa",
			Price:      models.NewMoneyFromDecimal(decimal.NewFromInt(100)),
			Currency:   "EUR",
			IsActive:   false,
		},
	}
	for _, product := range products {
		if err := db.Create(product).Error; err != nil {
			t.Fatalf("seed product %s failed: %v", product.Slug, err)
		}
	}
	if err := db.Model(&models.Product{}).Where("slug = ?", "retired-sofa").Update("is_active", false).Error; err != nil {
		t.Fatalf("deactivate product failed: %v", err)
	}
	return category
}

func feedTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Site.BaseURL = "https://shop.example.com/"
	cfg.Site.Name = "Example Shop"
	cfg.Site.Currency = "EUR"
	return cfg
}

func TestBuildProductFeed(t *testing.T) {
	db := setupCatalogTestDB(t)
	seedCatalog(t, db)
	svc := NewFeedService(feedTestConfig(), repository.NewCatalogRepository(db))

	body, err := svc.BuildProductFeed()
	if err != nil {
		t.Fatalf("build feed failed: %v", err)
	}
	feed := string(body)

	if !strings.HasPrefix(feed, "<?xml") {
		t.Fatalf("feed should start with xml header, got %.40q", feed)
	}
	for _, want := range []string{
		`xmlns:g="http://base.google.com/ns/1.0"`,
		"<g:title>Milano Corner Sofa</g:title>",
		"<g:price>2490.50 EUR</g:price>",
		"<g:availability>in_stock</g:availability>",
		"<g:condition>new</g:condition>",
		"<g:link>https://shop.example.com/products/milano-corner-sofa</g:link>",
		"<g:image_link>https://images.madiluxe.com/milano.jpg</g:image_link>",
		"<g:product_type>Sofas</g:product_type>",
		"<title>Example Shop</title>",
	} {
		if !strings.Contains(feed, want) {
			t.Fatalf("feed missing %q:\n%s", want, feed)
		}
	}

	if strings.Contains(feed, "retired-sofa") {
		t.Fatalf("feed should exclude inactive products:\n%s", feed)
	}
}

func TestBuildProductFeedEmptyCatalog(t *testing.T) {
	db := setupCatalogTestDB(t)
	svc := NewFeedService(feedTestConfig(), repository.NewCatalogRepository(db))

	body, err := svc.BuildProductFeed()
	if err != nil {
		t.Fatalf("build empty feed failed: %v", err)
	}
	feed := string(body)
	if !strings.Contains(feed, "<channel>") {
		t.Fatalf("empty feed should still carry channel metadata:\n%s", feed)
	}
	if strings.Contains(feed, "<item>") {
		t.Fatalf("empty catalog should produce no items:\n%s", feed)
	}
}

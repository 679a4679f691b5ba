package service

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/repository"
)

const googleMerchantNS = "http://base.google.com/ns/1.0"

// feedRSS Google Merchant RSS 2.0 根节点
type feedRSS struct {
	XMLName xml.Name    `xml:"rss"`
	Version string      `xml:"version,attr"`
	NSG     string      `xml:"xmlns:g,attr"`
	Channel feedChannel `xml:"channel"`
}

type feedChannel struct {
	Title       string     `xml:"title"`
	Link        string     `xml:"link"`
	Description string     `xml:"description"`
	Items       []feedItem `xml:"item"`
}

type feedItem struct {
	ID           string `xml:"g:id"`
	Title        string `xml:"g:title"`
	Description  string `xml:"g:description"`
	Link         string `xml:"g:link"`
	ImageLink    string `xml:"g:image_link,omitempty"`
	Availability string `xml:"g:availability"`
	Price        string `xml:"g:price"`
	Condition    string `xml:"g:condition"`
	ProductType  string `xml:"g:product_type,omitempty"`
}

// FeedService 商品 Feed 服务
// 从上架商品生成 Google Merchant XML。
type FeedService struct {
	cfg         *config.Config
	catalogRepo repository.CatalogRepository
}

// NewFeedService 创建 Feed 服务实例
func NewFeedService(cfg *config.Config, catalogRepo repository.CatalogRepository) *FeedService {
	return &FeedService{cfg: cfg, catalogRepo: catalogRepo}
}

// BuildProductFeed 生成商品 Feed XML
func (s *FeedService) BuildProductFeed() ([]byte, error) {
	products, err := s.catalogRepo.ListActiveProducts("")
	if err != nil {
		return nil, err
	}

	baseURL := s.baseURL()
	items := make([]feedItem, 0, len(products))
	for _, product := range products {
		items = append(items, s.buildFeedItem(baseURL, product))
	}

	feed := feedRSS{
		Version: "2.0",
		NSG:     googleMerchantNS,
		Channel: feedChannel{
			Title:       s.siteName(),
			Link:        baseURL,
			Description: s.siteName() + " product feed",
			Items:       items,
		},
	}

	body, err := xml.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func (s *FeedService) buildFeedItem(baseURL string, product models.Product) feedItem {
	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
	}
	currency := strings.TrimSpace(product.Currency)
	if currency == "" {
		currency = s.currency()
	}
	productType := ""
	if product.Category.ID != "" {
		productType = product.Category.Name
	}
	return feedItem{
		ID:           product.ID,
		Title:        product.Name,
		Description:  product.Description,
		Link:         fmt.Sprintf("%s/products/%s", baseURL, product.Slug),
		ImageLink:    image,
		Availability: "in_stock",
		Price:        fmt.Sprintf("%s %s", product.Price.String(), currency),
		Condition:    "new",
		ProductType:  productType,
	}
}

func (s *FeedService) baseURL() string {
	if s.cfg != nil {
		if base := strings.TrimRight(strings.TrimSpace(s.cfg.Site.BaseURL), "/"); base != "" {
			return base
		}
	}
	return "https://madiluxe.com"
}

func (s *FeedService) siteName() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Site.Name) != "" {
		return strings.TrimSpace(s.cfg.Site.Name)
	}
	return "Madiluxe"
}

func (s *FeedService) currency() string {
	if s.cfg != nil && strings.TrimSpace(s.cfg.Site.Currency) != "" {
		return strings.TrimSpace(s.cfg.Site.Currency)
	}
	return "EUR"
}

package service

import (
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/repository"
)

const sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"

// sitemapURLSet sitemap 根节点
type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	NS      string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapService 站点地图服务
// 静态页 + 上架分类与商品；构建失败时退回只含首页的最小 sitemap。
type SitemapService struct {
	cfg         *config.Config
	catalogRepo repository.CatalogRepository
}

// NewSitemapService 创建 sitemap 服务实例
func NewSitemapService(cfg *config.Config, catalogRepo repository.CatalogRepository) *SitemapService {
	return &SitemapService{cfg: cfg, catalogRepo: catalogRepo}
}

// BuildSitemap 生成完整 sitemap XML
func (s *SitemapService) BuildSitemap() ([]byte, error) {
	baseURL := s.baseURL()

	urls := []sitemapURL{
		{Loc: baseURL + "/", ChangeFreq: "weekly", Priority: "1.0"},
		{Loc: baseURL + "/catalog", ChangeFreq: "weekly", Priority: "0.8"},
		{Loc: baseURL + "/about", ChangeFreq: "monthly", Priority: "0.5"},
		{Loc: baseURL + "/contacts", ChangeFreq: "monthly", Priority: "0.5"},
	}

	categories, err := s.catalogRepo.ListActiveCategories()
	if err != nil {
		return nil, err
	}
	for _, category := range categories {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/catalog/%s", baseURL, category.Slug),
			LastMod:    formatLastMod(category.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.7",
		})
	}

	products, err := s.catalogRepo.ListActiveProducts("")
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		urls = append(urls, sitemapURL{
			Loc:        fmt.Sprintf("%s/products/%s", baseURL, product.Slug),
			LastMod:    formatLastMod(product.UpdatedAt),
			ChangeFreq: "weekly",
			Priority:   "0.6",
		})
	}

	return marshalURLSet(sitemapURLSet{NS: sitemapNS, URLs: urls})
}

// FallbackSitemap 最小可用 sitemap（只含首页）
func (s *SitemapService) FallbackSitemap() []byte {
	body, err := marshalURLSet(sitemapURLSet{
		NS:   sitemapNS,
		URLs: []sitemapURL{{Loc: s.baseURL() + "/"}},
	})
	if err != nil {
		// 手写兜底，不会再失败
		return []byte(xml.Header + `<urlset xmlns="` + sitemapNS + `"><url><loc>` + s.baseURL() + `/</loc></url></urlset>`)
	}
	return body
}

func marshalURLSet(set sitemapURLSet) ([]byte, error) {
	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), body...), nil
}

func formatLastMod(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02")
}

func (s *SitemapService) baseURL() string {
	if s.cfg != nil {
		if base := strings.TrimRight(strings.TrimSpace(s.cfg.Site.BaseURL), "/"); base != "" {
			return base
		}
	}
	return "https://madiluxe.com"
}

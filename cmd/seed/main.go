package main

import (
	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"

	"github.com/shopspring/decimal"
)

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 默认管理员
	if err := models.InitDefaultAdmin("", ""); err != nil {
		stdLog.Printf("Failed to init default admin: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Slug: "sofas", Name: "Sofas", Description: "Modular and classic sofas", SortOrder: 40, IsActive: true},
		{Slug: "beds", Name: "Beds", Description: "Upholstered beds and frames", SortOrder: 30, IsActive: true},
		{Slug: "tables", Name: "Tables", Description: "Dining and coffee tables", SortOrder: 20, IsActive: true},
		{Slug: "wardrobes", Name: "Wardrobes", Description: "Built-in and freestanding wardrobes", SortOrder: 10, IsActive: true},
	}
	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]string{}
	var categoryList []models.Category
	if err := models.DB.Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	// 添加商品
	products := []models.Product{
		{
			CategoryID:  categoryIDs["sofas"],
			Slug:        "milano-corner-sofa",
			Name:        "Milano Corner Sofa",
			Description: "Corner sofa with solid oak frame and removable velvet covers.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(2490)),
			Currency:    "EUR",
			Images:      models.StringArray{"https://images.madiluxe.com/products/milano-corner-sofa.jpg"},
			Materials:   models.JSON{"frame": "oak", "upholstery": "velvet"},
			Dimensions:  models.JSON{"width_cm": 280, "depth_cm": 180, "height_cm": 85},
			IsActive:    true,
			SortOrder:   30,
		},
		{
			CategoryID:  categoryIDs["beds"],
			Slug:        "verona-upholstered-bed",
			Name:        "Verona Upholstered Bed",
			Description: "King-size bed with a tall headboard and hidden storage.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(1890)),
			Currency:    "EUR",
			Images:      models.StringArray{"https://images.madiluxe.com/products/verona-bed.jpg"},
			Materials:   models.JSON{"frame": "pine", "upholstery": "boucle"},
			Dimensions:  models.JSON{"width_cm": 196, "length_cm": 224, "height_cm": 120},
			IsActive:    true,
			SortOrder:   20,
		},
		{
			CategoryID:  categoryIDs["tables"],
			Slug:        "torino-dining-table",
			Name:        "Torino Dining Table",
			Description: "Extendable dining table in smoked oak for eight seats.",
			Price:       models.NewMoneyFromDecimal(decimal.NewFromFloat(1290)),
			Currency:    "EUR",
			Images:      models.StringArray{"https://images.madiluxe.com/products/torino-table.jpg"},
			Materials:   models.JSON{"top": "smoked oak", "legs": "steel"},
			Dimensions:  models.JSON{"width_cm": 100, "length_cm": 220, "height_cm": 75},
			IsActive:    true,
			SortOrder:   10,
		},
	}
	for _, product := range products {
		var existing models.Product
		if err := models.DB.Where("slug = ?", product.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&product).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", product.Slug, err)
			} else {
				stdLog.Printf("Created product: %s", product.Slug)
			}
		} else {
			stdLog.Printf("Product already exists: %s", product.Slug)
		}
	}

	// 营销集成样例（默认停用，填好配置后在后台启用）
	integrations := []models.Integration{
		{
			Name:     "lead-telegram",
			Kind:     constants.IntegrationKindTelegram,
			Config:   models.JSON{"bot_token": "", "chat_id": ""},
			IsActive: false,
		},
		{
			Name:     "lead-facebook-capi",
			Kind:     constants.IntegrationKindFacebookCAPI,
			Config:   models.JSON{"pixel_id": "", "access_token": ""},
			IsActive: false,
		},
	}
	for _, integration := range integrations {
		var existing models.Integration
		if err := models.DB.Where("name = ?", integration.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&integration).Error; err != nil {
				stdLog.Printf("Failed to create integration %s: %v", integration.Name, err)
			} else {
				stdLog.Printf("Created integration: %s", integration.Name)
			}
		} else {
			stdLog.Printf("Integration already exists: %s", integration.Name)
		}
	}

	// SEO 默认配置
	seoSettings := []models.SEOSetting{
		{
			SettingKey: "home",
			Value: models.JSON{
				"title":       "Madiluxe — furniture made to order",
				"description": "Custom sofas, beds, tables and wardrobes.",
			},
		},
		{
			SettingKey: "catalog",
			Value: models.JSON{
				"title":       "Catalog — Madiluxe",
				"description": "Browse the Madiluxe furniture catalog.",
			},
		},
	}
	for _, setting := range seoSettings {
		var existing models.SEOSetting
		if err := models.DB.Where("setting_key = ?", setting.SettingKey).First(&existing).Error; err != nil {
			if err := models.DB.Create(&setting).Error; err != nil {
				stdLog.Printf("Failed to create seo setting %s: %v", setting.SettingKey, err)
			} else {
				stdLog.Printf("Created seo setting: %s", setting.SettingKey)
			}
		} else {
			stdLog.Printf("SEO setting already exists: %s", setting.SettingKey)
		}
	}

	stdLog.Printf("Seed completed")
}

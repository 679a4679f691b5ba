package router

import (
	"fmt"
	"strings"

	"github.com/madiluxe/madiluxe-api/internal/cache"
	"github.com/madiluxe/madiluxe-api/internal/config"
	adminhandlers "github.com/madiluxe/madiluxe-api/internal/http/handlers/admin"
	publichandlers "github.com/madiluxe/madiluxe-api/internal/http/handlers/public"
	"github.com/madiluxe/madiluxe-api/internal/http/response"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	// 初始化 Handler（按前台/后台分组）
	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "mlx"
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
	}
	leadRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:lead", redisPrefix),
		WindowSeconds: cfg.Security.LeadRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LeadRateLimit.MaxAttempts,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// 健康检查
	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	// XML 输出（feed / sitemap）
	r.GET("/feed/products.xml", publicHandler.ProductFeed)
	r.GET("/sitemap.xml", publicHandler.Sitemap)

	// API 路由组
	apiV1 := r.Group("/api/v1")
	{
		// 公开接口
		public := apiV1.Group("/public")
		{
			public.GET("/categories", publicHandler.ListCategories)
			public.GET("/products", publicHandler.ListProducts)
			public.GET("/products/:slug", publicHandler.GetProduct)
			public.POST("/leads",
				RateLimitMiddleware(redisClient, leadRule, KeyByIP),
				publicHandler.CaptureLead,
			)
		}

		// 管理端接口（会话令牌随请求体提交，每次调用都重新校验）
		admin := apiV1.Group("/admin")
		{
			admin.POST("/login",
				RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")),
				adminHandler.Login,
			)
			admin.POST("/verify", adminHandler.Verify)
			admin.POST("/logout", adminHandler.Logout)
			admin.POST("/query", adminHandler.Query)
		}
	}

	return r
}

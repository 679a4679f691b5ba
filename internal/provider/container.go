package provider

import (
	"github.com/madiluxe/madiluxe-api/internal/authz"
	"github.com/madiluxe/madiluxe-api/internal/cache"
	"github.com/madiluxe/madiluxe-api/internal/config"
	"github.com/madiluxe/madiluxe-api/internal/logger"
	"github.com/madiluxe/madiluxe-api/internal/models"
	"github.com/madiluxe/madiluxe-api/internal/notify"
	"github.com/madiluxe/madiluxe-api/internal/queue"
	"github.com/madiluxe/madiluxe-api/internal/repository"
	"github.com/madiluxe/madiluxe-api/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo       repository.AdminRepository
	SessionRepo     repository.SessionRepository
	GatewayRepo     repository.GatewayRepository
	CustomerRepo    repository.CustomerRepository
	OrderRepo       repository.OrderRepository
	IntegrationRepo repository.IntegrationRepository
	CatalogRepo     repository.CatalogRepository

	// Services
	AuthzService        *authz.Service
	AuthService         *service.AuthService
	GatewayService      *service.GatewayService
	CatalogService      *service.CatalogService
	LeadService         *service.LeadService
	NotificationService *service.NotificationService
	FeedService         *service.FeedService
	SitemapService      *service.SitemapService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.SessionRepo = repository.NewSessionRepository(db)
	c.GatewayRepo = repository.NewGatewayRepository(db)
	c.CustomerRepo = repository.NewCustomerRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.IntegrationRepo = repository.NewIntegrationRepository(db)
	c.CatalogRepo = repository.NewCatalogRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.EnsureBuiltinPolicies(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_policies_failed", "error", err)
		panic(err)
	}

	c.AuthService = service.NewAuthService(c.Config, c.AdminRepo, c.SessionRepo)
	c.GatewayService = service.NewGatewayService(c.GatewayRepo, c.AuthzService)
	c.CatalogService = service.NewCatalogService(c.CatalogRepo)
	c.LeadService = service.NewLeadService(c.CustomerRepo, c.OrderRepo, c.CatalogRepo, c.QueueClient)

	notifyClient := notify.NewHTTPClient(c.Config.Notify.TimeoutMS)
	c.NotificationService = service.NewNotificationService(
		c.OrderRepo,
		c.IntegrationRepo,
		notify.NewTelegramSender(notifyClient),
		notify.NewFacebookCAPISender(notifyClient),
	)

	c.FeedService = service.NewFeedService(c.Config, c.CatalogRepo)
	c.SitemapService = service.NewSitemapService(c.Config, c.CatalogRepo)
}

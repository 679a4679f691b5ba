package constants

// 管理员角色常量
const (
	AdminRoleAdmin          = "admin"
	AdminRoleContentManager = "content_manager"
	AdminRoleSales          = "sales"
)

// 线索（订单）状态常量
const (
	OrderStatusNew        = "new"
	OrderStatusProcessing = "processing"
	OrderStatusDone       = "done"
	OrderStatusCancelled  = "cancelled"
)

// 线索来源常量
const (
	OrderSourceWebsite  = "website"
	OrderSourceCallback = "callback_form"
	OrderSourceManual   = "manual"
)

// 营销集成类型常量
const (
	IntegrationKindTelegram        = "telegram"
	IntegrationKindFacebookCAPI    = "facebook_capi"
	IntegrationKindGoogleAnalytics = "google_analytics"
)

// 网关资源名称常量
const (
	ResourceCategories   = "categories"
	ResourceProducts     = "products"
	ResourceOrders       = "orders"
	ResourceCustomers    = "customers"
	ResourceAdmins       = "admins"
	ResourceIntegrations = "integrations"
	ResourceSEOSettings  = "seo_settings"
)

// 网关操作常量
const (
	GatewayActionSelect = "select"
	GatewayActionInsert = "insert"
	GatewayActionUpdate = "update"
	GatewayActionUpsert = "upsert"
	GatewayActionDelete = "delete"
)

// 授权动作常量（select 映射 read，其余映射 write）
const (
	AuthzActionRead  = "read"
	AuthzActionWrite = "write"
)

// 异步任务名称常量
const (
	TaskLeadNotify = "lead:notify"
	QueueDefault   = "default"
)

package service

import (
	"fmt"

	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// columnKind 列值类型，决定写入前的取值转换
type columnKind int

const (
	colScalar columnKind = iota
	colJSON
	colStrings
	colMoney
)

// resourceSpec 网关资源描述
// 网关只接受注册过的资源名，列白名单约束过滤与写入字段，
// conflictColumn 定义 upsert 的自然键。
type resourceSpec struct {
	name           string
	newModel       func() interface{}
	newSlice       func() interface{}
	filterColumns  map[string]struct{}
	writeColumns   map[string]struct{}
	columnKinds    map[string]columnKind
	conflictColumn string
	conflictField  string
	// prepare 在解码前改写字段集合，返回需要直接落库的计算列
	prepare func(fields map[string]interface{}) (map[string]interface{}, error)
	// applyComputed 把计算列写回类型化模型（insert 路径使用）
	applyComputed func(model interface{}, computed map[string]interface{})
}

func columnSet(columns ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// adminPrepare 把入参中的明文 password 换成 bcrypt 哈希列
func adminPrepare(fields map[string]interface{}) (map[string]interface{}, error) {
	raw, ok := fields["password"]
	if !ok {
		return nil, nil
	}
	delete(fields, "password")
	password, ok := raw.(string)
	if !ok || password == "" {
		return nil, fmt.Errorf("%w: password must be a non-empty string", ErrInvalidPayload)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"password_hash": string(hash)}, nil
}

// buildResourceRegistry 构建闭合的资源注册表
func buildResourceRegistry() map[string]*resourceSpec {
	specs := []*resourceSpec{
		{
			name:          constants.ResourceCategories,
			newModel:      func() interface{} { return &models.Category{} },
			newSlice:      func() interface{} { return &[]models.Category{} },
			filterColumns: columnSet("id", "slug", "is_active", "sort_order"),
			writeColumns:  columnSet("slug", "name", "description", "image", "sort_order", "is_active"),
			columnKinds:   map[string]columnKind{},
		},
		{
			name:          constants.ResourceProducts,
			newModel:      func() interface{} { return &models.Product{} },
			newSlice:      func() interface{} { return &[]models.Product{} },
			filterColumns: columnSet("id", "category_id", "slug", "is_active", "currency", "sort_order"),
			writeColumns: columnSet(
				"category_id", "slug", "name", "description", "price", "currency",
				"images", "materials", "dimensions", "is_active", "sort_order",
			),
			columnKinds: map[string]columnKind{
				"price":      colMoney,
				"images":     colStrings,
				"materials":  colJSON,
				"dimensions": colJSON,
			},
		},
		{
			name:          constants.ResourceOrders,
			newModel:      func() interface{} { return &models.Order{} },
			newSlice:      func() interface{} { return &[]models.Order{} },
			filterColumns: columnSet("id", "customer_id", "product_id", "status", "source", "customer_phone"),
			writeColumns: columnSet(
				"customer_id", "product_id", "customer_name", "customer_phone",
				"customer_email", "message", "status", "source",
			),
			columnKinds: map[string]columnKind{},
		},
		{
			name:          constants.ResourceCustomers,
			newModel:      func() interface{} { return &models.Customer{} },
			newSlice:      func() interface{} { return &[]models.Customer{} },
			filterColumns: columnSet("id", "phone", "email"),
			writeColumns:  columnSet("name", "phone", "email"),
			columnKinds:   map[string]columnKind{},
		},
		{
			name:          constants.ResourceAdmins,
			newModel:      func() interface{} { return &models.Admin{} },
			newSlice:      func() interface{} { return &[]models.Admin{} },
			filterColumns: columnSet("id", "email", "role", "is_active"),
			writeColumns:  columnSet("email", "name", "role", "is_active", "password"),
			columnKinds:   map[string]columnKind{},
			prepare:       adminPrepare,
			applyComputed: func(model interface{}, computed map[string]interface{}) {
				admin, ok := model.(*models.Admin)
				if !ok {
					return
				}
				if hash, ok := computed["password_hash"].(string); ok {
					admin.PasswordHash = hash
				}
			},
		},
		{
			name:           constants.ResourceIntegrations,
			newModel:       func() interface{} { return &models.Integration{} },
			newSlice:       func() interface{} { return &[]models.Integration{} },
			filterColumns:  columnSet("id", "name", "kind", "is_active"),
			writeColumns:   columnSet("name", "kind", "config", "is_active"),
			columnKinds:    map[string]columnKind{"config": colJSON},
			conflictColumn: "name",
			conflictField:  "name",
		},
		{
			name:           constants.ResourceSEOSettings,
			newModel:       func() interface{} { return &models.SEOSetting{} },
			newSlice:       func() interface{} { return &[]models.SEOSetting{} },
			filterColumns:  columnSet("id", "setting_key"),
			writeColumns:   columnSet("setting_key", "value"),
			columnKinds:    map[string]columnKind{"value": colJSON},
			conflictColumn: "setting_key",
			conflictField:  "setting_key",
		},
	}

	registry := make(map[string]*resourceSpec, len(specs))
	for _, spec := range specs {
		registry[spec.name] = spec
	}
	return registry
}

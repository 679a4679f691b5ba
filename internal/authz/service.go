package authz

import (
	"fmt"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const (
	casbinTableName = "casbin_rule"
	rolePrefix      = "role:"
)

const defaultRBACModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && (r.obj == p.obj || p.obj == "*") && (r.act == p.act || p.act == "*")
`

// Service Casbin 授权服务
// 按「角色 × 资源 × 动作」判定网关访问，策略持久化在数据库中。
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("authz db is nil")
	}

	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter failed: %w", err)
	}

	m, err := model.NewModelFromString(defaultRBACModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model failed: %w", err)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer failed: %w", err)
	}
	enforcer.EnableAutoSave(true)

	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy failed: %w", err)
	}

	return &Service{enforcer: enforcer}, nil
}

// Enforcer 返回底层 enforcer
func (s *Service) Enforcer() *casbin.SyncedEnforcer {
	if s == nil {
		return nil
	}
	return s.enforcer
}

// EnforceRole 判定角色对资源动作的访问权
func (s *Service) EnforceRole(role, resource, action string) (bool, error) {
	if s == nil || s.enforcer == nil {
		return false, fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.Enforce(SubjectForRole(role), strings.TrimSpace(resource), strings.TrimSpace(action))
}

// GrantRolePolicy 为角色授予策略
func (s *Service) GrantRolePolicy(role, resource, action string) error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	if _, err := s.enforcer.AddPolicy(SubjectForRole(role), strings.TrimSpace(resource), strings.TrimSpace(action)); err != nil {
		return fmt.Errorf("grant policy failed: %w", err)
	}
	return nil
}

// ReloadPolicy 重新加载策略
func (s *Service) ReloadPolicy() error {
	if s == nil || s.enforcer == nil {
		return fmt.Errorf("authz service unavailable")
	}
	return s.enforcer.LoadPolicy()
}

// SubjectForRole 生成角色主体标识
func SubjectForRole(role string) string {
	normalized := strings.TrimSpace(role)
	if strings.HasPrefix(normalized, rolePrefix) {
		return normalized
	}
	return rolePrefix + normalized
}

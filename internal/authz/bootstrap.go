package authz

import (
	"github.com/madiluxe/madiluxe-api/internal/constants"
	"github.com/madiluxe/madiluxe-api/internal/logger"
)

// builtinPolicies 内置角色策略
// admin 全量放行；content_manager 管内容与营销配置；sales 管线索与客户。
var builtinPolicies = [][3]string{
	{constants.AdminRoleAdmin, "*", "*"},

	{constants.AdminRoleContentManager, constants.ResourceCategories, "*"},
	{constants.AdminRoleContentManager, constants.ResourceProducts, "*"},
	{constants.AdminRoleContentManager, constants.ResourceSEOSettings, "*"},
	{constants.AdminRoleContentManager, constants.ResourceIntegrations, "*"},

	{constants.AdminRoleSales, constants.ResourceOrders, "*"},
	{constants.AdminRoleSales, constants.ResourceCustomers, "*"},
	{constants.AdminRoleSales, constants.ResourceProducts, constants.AuthzActionRead},
	{constants.AdminRoleSales, constants.ResourceCategories, constants.AuthzActionRead},
}

// EnsureBuiltinPolicies 写入内置角色策略（幂等）
func (s *Service) EnsureBuiltinPolicies() error {
	for _, p := range builtinPolicies {
		if err := s.GrantRolePolicy(p[0], p[1], p[2]); err != nil {
			logger.Errorw("authz_builtin_policy_failed",
				"role", p[0],
				"resource", p[1],
				"action", p[2],
				"error", err,
			)
			return err
		}
	}
	return nil
}

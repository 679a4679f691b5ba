package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Admin 管理员表
type Admin struct {
	ID           string    `gorm:"type:varchar(36);primarykey" json:"id"`        // 主键（UUID）
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`            // 登录邮箱
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`       // 显示名称
	Role         string    `gorm:"type:varchar(30);not null;index" json:"role"`  // 角色（admin/content_manager/sales）
	PasswordHash string    `gorm:"not null" json:"-"`                            // 密码哈希（不返回给前端）
	IsActive     bool      `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	LastLoginAt  *time.Time `json:"last_login_at"`                               // 最后登录时间
	CreatedAt    time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt    time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Admin) TableName() string {
	return "admins"
}

// BeforeCreate 写入前生成 UUID 主键
func (a *Admin) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

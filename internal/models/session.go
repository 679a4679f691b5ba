package models

import (
	"time"
)

// AdminSession 管理员会话表
// 一次登录一行记录，凭 session_token 校验，过期后由 worker 定期清理。
type AdminSession struct {
	ID           uint      `gorm:"primarykey" json:"id"`                        // 主键
	AdminID      string    `gorm:"type:varchar(36);not null;index" json:"admin_id"` // 管理员ID
	SessionToken string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`  // 会话令牌（不返回日志与列表）
	ExpiresAt    time.Time `gorm:"not null;index" json:"expires_at"`            // 过期时间
	CreatedAt    time.Time `json:"created_at"`                                  // 创建时间

	// 关联
	Admin Admin `gorm:"foreignKey:AdminID" json:"admin,omitempty"` // 管理员信息
}

// TableName 指定表名
func (AdminSession) TableName() string {
	return "admin_sessions"
}

// Expired 判断会话是否已过期
func (s AdminSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}

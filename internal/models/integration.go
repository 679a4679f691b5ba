package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Integration 营销集成表
// name 为自然键，upsert 按 name 冲突合并，保证同名集成不会重复。
type Integration struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`        // 主键（UUID）
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"` // 集成名称（自然键）
	Kind      string    `gorm:"type:varchar(30);not null;index" json:"kind"`  // 类型（telegram/facebook_capi/google_analytics）
	Config    JSON      `gorm:"type:json" json:"config"`                      // 集成配置（token、chat_id、pixel_id 等）
	IsActive  bool      `gorm:"not null;default:true;index" json:"is_active"` // 是否启用
	CreatedAt time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Integration) TableName() string {
	return "integrations"
}

// BeforeCreate 写入前生成 UUID 主键
func (i *Integration) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ConfigString 读取配置中的字符串字段
func (i Integration) ConfigString(key string) string {
	if i.Config == nil {
		return ""
	}
	if v, ok := i.Config[key].(string); ok {
		return v
	}
	return ""
}

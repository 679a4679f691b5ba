package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SEOSetting SEO 配置表
// setting_key 为自然键，upsert 按 key 冲突合并。
type SEOSetting struct {
	ID         string    `gorm:"type:varchar(36);primarykey" json:"id"`               // 主键（UUID）
	SettingKey string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"setting_key"` // 配置键（自然键）
	Value      JSON      `gorm:"type:json" json:"value"`                              // 配置值
	CreatedAt  time.Time `json:"created_at"`                                          // 创建时间
	UpdatedAt  time.Time `json:"updated_at"`                                          // 更新时间
}

// TableName 指定表名
func (SEOSetting) TableName() string {
	return "seo_settings"
}

// BeforeCreate 写入前生成 UUID 主键
func (s *SEOSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category 家具分类表
type Category struct {
	ID          string    `gorm:"type:varchar(36);primarykey" json:"id"`        // 主键（UUID）
	Slug        string    `gorm:"uniqueIndex;not null" json:"slug"`             // 唯一标识
	Name        string    `gorm:"type:varchar(200);not null" json:"name"`       // 分类名称
	Description string    `gorm:"type:text" json:"description"`                 // 分类描述
	Image       string    `gorm:"type:varchar(500)" json:"image"`               // 分类图片
	SortOrder   int       `gorm:"default:0;index" json:"sort_order"`            // 排序权重
	IsActive    bool      `gorm:"not null;default:true;index" json:"is_active"` // 是否展示
	CreatedAt   time.Time `gorm:"index" json:"created_at"`                      // 创建时间
	UpdatedAt   time.Time `json:"updated_at"`                                   // 更新时间
}

// TableName 指定表名
func (Category) TableName() string {
	return "categories"
}

// BeforeCreate 写入前生成 UUID 主键
func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

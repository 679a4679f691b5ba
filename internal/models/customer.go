package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Customer 客户表（按手机号去重复用）
type Customer struct {
	ID        string    `gorm:"type:varchar(36);primarykey" json:"id"`    // 主键（UUID）
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`   // 客户姓名
	Phone     string    `gorm:"type:varchar(50);not null;index" json:"phone"` // 联系电话
	Email     string    `gorm:"type:varchar(200)" json:"email"`           // 邮箱（可选）
	CreatedAt time.Time `gorm:"index" json:"created_at"`                  // 创建时间
	UpdatedAt time.Time `json:"updated_at"`                               // 更新时间
}

// TableName 指定表名
func (Customer) TableName() string {
	return "customers"
}

// BeforeCreate 写入前生成 UUID 主键
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

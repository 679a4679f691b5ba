package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Order 线索订单表
// 展示型站点没有在线支付，订单即客户留资，联系方式快照随单存储。
type Order struct {
	ID            string    `gorm:"type:varchar(36);primarykey" json:"id"`                  // 主键（UUID）
	CustomerID    string    `gorm:"type:varchar(36);index" json:"customer_id"`              // 客户ID
	ProductID     string    `gorm:"type:varchar(36);index" json:"product_id"`               // 关联商品ID（可为空）
	CustomerName  string    `gorm:"type:varchar(200);not null" json:"customer_name"`        // 客户姓名快照
	CustomerPhone string    `gorm:"type:varchar(50);not null" json:"customer_phone"`        // 联系电话快照
	CustomerEmail string    `gorm:"type:varchar(200)" json:"customer_email"`                // 邮箱快照
	Message       string    `gorm:"type:text" json:"message"`                               // 客户留言
	Status        string    `gorm:"type:varchar(20);not null;default:'new';index" json:"status"` // 状态（new/processing/done/cancelled）
	Source        string    `gorm:"type:varchar(30);not null;default:'website'" json:"source"`   // 来源（website/callback_form/manual）
	CreatedAt     time.Time `gorm:"index" json:"created_at"`                                // 创建时间
	UpdatedAt     time.Time `json:"updated_at"`                                             // 更新时间

	// 关联
	Customer Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"` // 客户信息
	Product  Product  `gorm:"foreignKey:ProductID" json:"product,omitempty"`   // 商品信息
}

// TableName 指定表名
func (Order) TableName() string {
	return "orders"
}

// BeforeCreate 写入前生成 UUID 主键
func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

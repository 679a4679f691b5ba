package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Product 家具商品表
type Product struct {
	ID          string      `gorm:"type:varchar(36);primarykey" json:"id"`                      // 主键（UUID）
	CategoryID  string      `gorm:"type:varchar(36);not null;index" json:"category_id"`         // 分类ID
	Slug        string      `gorm:"uniqueIndex;not null" json:"slug"`                           // 唯一标识
	Name        string      `gorm:"type:varchar(300);not null" json:"name"`                     // 商品名称
	Description string      `gorm:"type:text" json:"description"`                               // 商品描述
	Price       Money       `gorm:"type:decimal(20,2);not null;default:0" json:"price"`         // 价格
	Currency    string      `gorm:"type:varchar(3);not null;default:'EUR'" json:"currency"`     // 币种
	Images      StringArray `gorm:"type:json" json:"images"`                                    // 图片数组
	Materials   JSON        `gorm:"type:json" json:"materials"`                                 // 材质说明
	Dimensions  JSON        `gorm:"type:json" json:"dimensions"`                                // 尺寸规格
	IsActive    bool        `gorm:"not null;default:true;index" json:"is_active"`               // 是否上架
	SortOrder   int         `gorm:"default:0;index" json:"sort_order"`                          // 排序权重
	CreatedAt   time.Time   `gorm:"index" json:"created_at"`                                    // 创建时间
	UpdatedAt   time.Time   `json:"updated_at"`                                                 // 更新时间

	// 关联
	Category Category `gorm:"foreignKey:CategoryID" json:"category,omitempty"` // 分类信息
}

// TableName 指定表名
func (Product) TableName() string {
	return "products"
}

// BeforeCreate 写入前生成 UUID 主键
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

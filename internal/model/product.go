package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== Product 商品 ====================

// Product 数字商品
// ContentText 是付费解锁的正文内容，只有订单支付后才能读取
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Title       string `gorm:"size:200;index;not null"`
	Description string `gorm:"type:text"`

	// 价格（精确两位小数）
	Price decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	// 付费内容
	ContentText string `gorm:"type:text;not null"`

	// 归属（0 表示未分类）
	CategoryID int64 `gorm:"index;default:0"`
	SellerID   int64 `gorm:"index;not null"`

	// 状态
	IsActive bool `gorm:"default:true;index"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*Product) TableName() string {
	return "products"
}

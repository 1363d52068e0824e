package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 订单状态常量 ====================

// OrderStatus 订单状态
const (
	OrderStatusPending   = "pending"   // 待支付
	OrderStatusPaid      = "paid"      // 已支付（终态）
	OrderStatusCancelled = "cancelled" // 已取消（终态）
)

// ==================== Order 订单主表 ====================

// Order 订单
// TotalAmount 在结算时一次性算定，之后只有 Status 和 PaymentID 会变
type Order struct {
	ID     int64 `gorm:"primaryKey;autoIncrement"`
	UserID int64 `gorm:"index;not null"`

	// 金额（精确两位小数）
	TotalAmount decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	// 状态
	Status string `gorm:"size:20;index;default:pending;not null"`

	// 支付（支付成功后写入，全局唯一）
	PaymentID *string `gorm:"size:100;uniqueIndex"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time

	// 关联
	Items     []OrderItem `gorm:"foreignKey:OrderID"`
	Purchases []Purchase  `gorm:"foreignKey:OrderID"`
}

func (*Order) TableName() string {
	return "orders"
}

// IsTerminal 是否处于终态
func (o *Order) IsTerminal() bool {
	return o.Status != OrderStatusPending
}

// ==================== OrderItem 订单行 ====================

// OrderItem 订单行
// PriceAtPurchase 是下单时刻的价格快照，后续商品改价不影响已有订单
type OrderItem struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index;not null"`
	Quantity  int   `gorm:"not null"`

	PriceAtPurchase decimal.Decimal `gorm:"type:numeric(10,2);not null"`

	// 关联
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (*OrderItem) TableName() string {
	return "order_items"
}

// Subtotal 行小计
func (i *OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtPurchase.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

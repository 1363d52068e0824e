package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ==================== 订单 ====================

// CreateOrderRequest 结算请求
// session_id 用于合并登录前的匿名购物车
type CreateOrderRequest struct {
	SessionID string `json:"session_id" binding:"omitempty,max=100"`
}

// OrderItemInfo 订单行
type OrderItemInfo struct {
	ID              int64           `json:"id"`
	ProductID       int64           `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `json:"price_at_purchase"`
	Product         *ProductInfo    `json:"product,omitempty"`
}

// OrderInfo 订单
type OrderInfo struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Status      string          `json:"status"`
	PaymentID   *string         `json:"payment_id,omitempty"`
	Items       []OrderItemInfo `json:"items,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ==================== 购买记录 ====================

// PurchaseInfo 购买记录
type PurchaseInfo struct {
	ID          int64     `json:"id"`
	OrderID     int64     `json:"order_id"`
	ProductID   int64     `json:"product_id"`
	PurchasedAt time.Time `json:"purchased_at"`
}

// PurchaseContentInfo 已购内容
type PurchaseContentInfo struct {
	ProductID    int64     `json:"product_id"`
	ProductTitle string    `json:"product_title"`
	ContentText  string    `json:"content_text"`
	PurchasedAt  time.Time `json:"purchased_at"`
}

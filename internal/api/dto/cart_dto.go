package dto

import "time"

// AddCartItemRequest 加入购物车请求
// 匿名用户不带 session_id 时由服务端生成并随响应返回
type AddCartItemRequest struct {
	ProductID int64  `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity" binding:"omitempty,gt=0"`
	SessionID string `json:"session_id" binding:"omitempty,max=100"`
}

// CartItemInfo 购物车条目
type CartItemInfo struct {
	ID        int64        `json:"id"`
	ProductID int64        `json:"product_id"`
	Quantity  int          `json:"quantity"`
	SessionID string       `json:"session_id,omitempty"`
	Product   *ProductInfo `json:"product,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
}

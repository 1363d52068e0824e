package model

import "time"

// ==================== CartItem 购物车条目 ====================

// CartItem 购物车条目
// 归属轴二选一：登录用户填 UserID（SessionID 为空串），
// 匿名用户填 SessionID（UserID 为 0）。
// (user_id, session_id, product_id) 唯一索引支撑并发加购时的合并更新。
type CartItem struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"default:0;uniqueIndex:idx_cart_owner_product"`
	SessionID string `gorm:"size:100;default:'';uniqueIndex:idx_cart_owner_product"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_cart_owner_product"`
	Quantity  int    `gorm:"not null;default:1"`

	CreatedAt time.Time

	// 关联
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (*CartItem) TableName() string {
	return "cart_items"
}

package model

import "time"

// Purchase 购买记录
// 结算时随订单一并创建，是内容访问和评价资格的凭证
type Purchase struct {
	ID        int64 `gorm:"primaryKey;autoIncrement"`
	UserID    int64 `gorm:"index:idx_purchase_user_product;not null"`
	OrderID   int64 `gorm:"index;not null"`
	ProductID int64 `gorm:"index:idx_purchase_user_product;not null"`

	PurchasedAt time.Time `gorm:"autoCreateTime"`

	// 关联
	Product *Product `gorm:"foreignKey:ProductID"`
}

func (*Purchase) TableName() string {
	return "purchases"
}

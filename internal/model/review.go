package model

import "time"

// 评分范围
const (
	RatingMin = 1
	RatingMax = 5
)

// Review 商品评价
// 每个用户对同一商品最多一条，且必须先有购买记录
type Review struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;uniqueIndex:idx_review_user_product"`
	ProductID int64  `gorm:"not null;uniqueIndex:idx_review_user_product"`
	Rating    int    `gorm:"not null"`
	Comment   string `gorm:"type:text"`

	CreatedAt time.Time
}

func (*Review) TableName() string {
	return "reviews"
}

package model

import "time"

// Category 商品分类
type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"size:100;uniqueIndex;not null"`
	Description string `gorm:"type:text"`

	CreatedAt time.Time
}

func (*Category) TableName() string {
	return "categories"
}

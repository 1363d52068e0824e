package model

import "time"

// ==================== User 用户 ====================

// User 用户账号
type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`

	// 状态
	IsActive bool `gorm:"default:true"`
	IsStaff  bool `gorm:"default:false"`

	// 审计字段
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (*User) TableName() string {
	return "users"
}

package task

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"digistore_v1/internal/logger"
	"digistore_v1/internal/model"
	"digistore_v1/internal/repository"
)

func init() {
	logger.InitLoggerDev()
}

func TestCartCleanupTask_RunOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}
	if err := db.AutoMigrate(&model.CartItem{}); err != nil {
		t.Fatalf("自动建表失败: %v", err)
	}

	stale := &model.CartItem{SessionID: "old-session", ProductID: 1, Quantity: 1}
	fresh := &model.CartItem{SessionID: "new-session", ProductID: 2, Quantity: 1}
	userOwned := &model.CartItem{UserID: 42, ProductID: 3, Quantity: 1}
	for _, item := range []*model.CartItem{stale, fresh, userOwned} {
		if err := db.Create(item).Error; err != nil {
			t.Fatalf("创建测试条目失败: %v", err)
		}
	}

	// 把 stale 和 userOwned 的创建时间拨回保留期之前
	backdated := time.Now().Add(-48 * time.Hour)
	db.Model(&model.CartItem{}).
		Where("id IN ?", []int64{stale.ID, userOwned.ID}).
		Update("created_at", backdated)

	task := NewCartCleanupTask(repository.NewCartRepository(db), "@hourly", 24*time.Hour)
	task.runOnce(context.Background())

	// 只清过期的匿名条目，登录用户的条目再旧也保留
	var remaining []model.CartItem
	db.Order("product_id").Find(&remaining)
	if assert.Len(t, remaining, 2) {
		assert.Equal(t, fresh.ID, remaining[0].ID)
		assert.Equal(t, userOwned.ID, remaining[1].ID)
	}
}

package task

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"digistore_v1/internal/logger"
	"digistore_v1/internal/repository"
)

// ==================== CartCleanupTask 购物车清理任务 ====================

// CartCleanupTask 定期清理过期的匿名会话购物车
// 登录用户的购物车不动，只清 session 归属且超过保留期的条目
type CartCleanupTask struct {
	cartRepo  repository.CartRepository
	cron      *cron.Cron
	spec      string
	retention time.Duration
}

// NewCartCleanupTask 创建清理任务
func NewCartCleanupTask(cartRepo repository.CartRepository, spec string, retention time.Duration) *CartCleanupTask {
	return &CartCleanupTask{
		cartRepo:  cartRepo,
		cron:      cron.New(),
		spec:      spec,
		retention: retention,
	}
}

// Start 启动定时任务
func (t *CartCleanupTask) Start() {
	_, err := t.cron.AddFunc(t.spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		t.runOnce(ctx)
	})
	if err != nil {
		logger.Log.Fatalw("无法启动购物车清理任务", "error", err)
	}

	t.cron.Start()
	logger.Log.Infow("购物车清理任务已启动", "spec", t.spec, "retention", t.retention)
}

// Stop 停止定时任务
func (t *CartCleanupTask) Stop() {
	t.cron.Stop()
}

func (t *CartCleanupTask) runOnce(ctx context.Context) {
	before := time.Now().Add(-t.retention)
	deleted, err := t.cartRepo.DeleteStaleSessions(ctx, before)
	if err != nil {
		logger.Log.Errorw("清理匿名购物车失败", "error", err)
		return
	}
	if deleted > 0 {
		logger.Log.Infow("已清理过期匿名购物车条目", "count", deleted)
	}
}

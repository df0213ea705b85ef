package task

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== CartCleanupTask 购物车清理任务 ====================

// CartCleanupTask 定期清理长期无人下单的购物车行项
type CartCleanupTask struct {
	cartRepo repository.CartRepository
	cron     *cron.Cron

	ttl time.Duration // 行项保留时长
}

// NewCartCleanupTask 创建购物车清理任务
func NewCartCleanupTask(cartRepo repository.CartRepository, ttlDays int) *CartCleanupTask {
	if ttlDays <= 0 {
		ttlDays = 30
	}
	return &CartCleanupTask{
		cartRepo: cartRepo,
		cron:     cron.New(cron.WithSeconds()),
		ttl:      time.Duration(ttlDays) * 24 * time.Hour,
	}
}

// Start 启动定时任务，每天凌晨 3 点执行
func (t *CartCleanupTask) Start() {
	_, err := t.cron.AddFunc("0 0 3 * * *", func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		t.Run(ctx)
	})
	if err != nil {
		log.Printf("[CartCleanupTask] 定时任务启动失败: %v", err)
		return
	}

	t.cron.Start()
	log.Println("[CartCleanupTask] 已启动")
}

// Stop 停止定时任务
func (t *CartCleanupTask) Stop() {
	t.cron.Stop()
}

// Run 执行一次清理
func (t *CartCleanupTask) Run(ctx context.Context) {
	cutoff := time.Now().Add(-t.ttl)
	deleted, err := t.cartRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[CartCleanupTask] 清理失败: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("[CartCleanupTask] 清理过期购物车行项 %d 条", deleted)
	}
}

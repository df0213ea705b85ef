package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
)

// ==================== NotifyLogRepository 回调日志仓库 ====================

// NotifyLogRepository 回调日志仓库接口
type NotifyLogRepository interface {
	Create(ctx context.Context, log *model.NotifyLog) error
	ListByOrder(ctx context.Context, orderID int64) ([]model.NotifyLog, error)
}

// ==================== 实现 ====================

type notifyLogRepository struct {
	db *gorm.DB
}

// NewNotifyLogRepository 创建回调日志仓库
func NewNotifyLogRepository(db *gorm.DB) NotifyLogRepository {
	return &notifyLogRepository{db: db}
}

func (r *notifyLogRepository) Create(ctx context.Context, log *model.NotifyLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *notifyLogRepository) ListByOrder(ctx context.Context, orderID int64) ([]model.NotifyLog, error) {
	var logs []model.NotifyLog
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id DESC").
		Find(&logs).Error
	return logs, err
}

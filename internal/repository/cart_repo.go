package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
)

// ==================== CartRepository 购物车仓库 ====================

// CartRepository 购物车仓库接口
// 所有按 ID 的读取都带 userID 条件，属主校验下沉到查询本身
type CartRepository interface {
	Create(ctx context.Context, item *model.CartItem) error
	GetByIDAndUser(ctx context.Context, id, userID int64) (*model.CartItem, error)
	GetByUserAndMenuItem(ctx context.Context, userID, menuItemID int64) (*model.CartItem, error)
	ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error)
	Update(ctx context.Context, item *model.CartItem) error
	Delete(ctx context.Context, id, userID int64) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// ==================== 实现 ====================

type cartRepository struct {
	db *gorm.DB
}

// NewCartRepository 创建购物车仓库
func NewCartRepository(db *gorm.DB) CartRepository {
	return &cartRepository{db: db}
}

func (r *cartRepository) Create(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *cartRepository) GetByIDAndUser(ctx context.Context, id, userID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).Preload("MenuItem").
		Where("id = ? AND user_id = ?", id, userID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) GetByUserAndMenuItem(ctx context.Context, userID, menuItemID int64) (*model.CartItem, error) {
	var item model.CartItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND menu_item_id = ?", userID, menuItemID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem
	err := r.db.WithContext(ctx).Preload("MenuItem").
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&items).Error
	return items, err
}

func (r *cartRepository) Update(ctx context.Context, item *model.CartItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *cartRepository) Delete(ctx context.Context, id, userID int64) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&model.CartItem{}).Error
}

func (r *cartRepository) DeleteByUser(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.CartItem{}).Error
}

// DeleteOlderThan 清理过期购物车行项，返回删除行数
func (r *cartRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&model.CartItem{})
	return result.RowsAffected, result.Error
}

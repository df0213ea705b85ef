package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
)

// ==================== 过滤条件 ====================

// MenuItemFilter 菜品过滤条件
type MenuItemFilter struct {
	CategoryID int64
	Keyword    string
	Featured   *bool
	Page       int
	PageSize   int
}

// ==================== MenuItemRepository 菜品仓库 ====================

// MenuItemRepository 菜品仓库接口
type MenuItemRepository interface {
	Create(ctx context.Context, item *model.MenuItem) error
	GetByID(ctx context.Context, id int64) (*model.MenuItem, error)
	List(ctx context.Context, filter MenuItemFilter) ([]model.MenuItem, int64, error)
	Update(ctx context.Context, item *model.MenuItem) error
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error

	// 今日特选
	SetItemOfDay(ctx context.Context, id int64) error
	GetItemOfDay(ctx context.Context) (*model.MenuItem, error)
}

// ==================== 实现 ====================

type menuItemRepository struct {
	db *gorm.DB
}

// NewMenuItemRepository 创建菜品仓库
func NewMenuItemRepository(db *gorm.DB) MenuItemRepository {
	return &menuItemRepository{db: db}
}

func (r *menuItemRepository) Create(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *menuItemRepository) GetByID(ctx context.Context, id int64) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).Preload("Category").First(&item, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *menuItemRepository) List(ctx context.Context, filter MenuItemFilter) ([]model.MenuItem, int64, error) {
	var items []model.MenuItem
	var total int64

	db := r.db.WithContext(ctx).Model(&model.MenuItem{})

	// 应用过滤条件
	if filter.CategoryID > 0 {
		db = db.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Keyword != "" {
		db = db.Where("name LIKE ?", "%"+filter.Keyword+"%")
	}
	if filter.Featured != nil {
		db = db.Where("featured = ?", *filter.Featured)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// 分页
	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	err := db.Preload("Category").Order("id ASC").Find(&items).Error
	return items, total, err
}

func (r *menuItemRepository) Update(ctx context.Context, item *model.MenuItem) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *menuItemRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.MenuItem{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *menuItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.MenuItem{}, id).Error
}

// SetItemOfDay 设置今日特选
// 先清掉旧标记再落新标记，放在同一事务中，
// 保证并发读不会看到两条 featured 记录
func (r *menuItemRepository) SetItemOfDay(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.MenuItem{}).
			Where("featured = ?", true).
			Update("featured", false).Error; err != nil {
			return err
		}
		return tx.Model(&model.MenuItem{}).
			Where("id = ?", id).
			Update("featured", true).Error
	})
}

func (r *menuItemRepository) GetItemOfDay(ctx context.Context) (*model.MenuItem, error) {
	var item model.MenuItem
	err := r.db.WithContext(ctx).Preload("Category").
		Where("featured = ?", true).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

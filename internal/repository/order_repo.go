package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
)

// ==================== 过滤条件 ====================

// OrderFilter 订单过滤条件
type OrderFilter struct {
	UserID         int64 // 按下单人过滤
	DeliveryCrewID int64 // 按配送员过滤
	Status         *bool
	Page           int
	PageSize       int
}

// ==================== OrderRepository 订单仓库 ====================

// OrderRepository 订单仓库接口
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id int64) (*model.Order, error)
	GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error)
	UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
}

// ==================== 实现 ====================

type orderRepository struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓库
func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

// Create 创建订单，order.Items 一并落库
func (r *orderRepository) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) GetByIDWithItems(ctx context.Context, id int64) (*model.Order, error) {
	var order model.Order
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Items.MenuItem").
		First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) List(ctx context.Context, filter OrderFilter) ([]model.Order, int64, error) {
	var orders []model.Order
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Order{})

	// 应用过滤条件
	if filter.UserID > 0 {
		db = db.Where("user_id = ?", filter.UserID)
	}
	if filter.DeliveryCrewID > 0 {
		db = db.Where("delivery_crew_id = ?", filter.DeliveryCrewID)
	}
	if filter.Status != nil {
		db = db.Where("status = ?", *filter.Status)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page > 0 && filter.PageSize > 0 {
		db = db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}

	err := db.Preload("Items").Preload("Items.MenuItem").Order("id DESC").Find(&orders).Error
	return orders, total, err
}

func (r *orderRepository) UpdateFields(ctx context.Context, id int64, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).Model(&model.Order{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&model.Order{}, id).Error
}

// ==================== 事务支持 ====================

// OrderUnitOfWork 下单工作单元（事务）
// 下单要同时创建订单、落行项快照、清空购物车，
// 三步必须全部成功或全部回滚
type OrderUnitOfWork struct {
	db     *gorm.DB
	Orders OrderRepository
	Carts  CartRepository
}

// NewOrderUnitOfWork 创建工作单元
func NewOrderUnitOfWork(db *gorm.DB) *OrderUnitOfWork {
	return &OrderUnitOfWork{
		db:     db,
		Orders: NewOrderRepository(db),
		Carts:  NewCartRepository(db),
	}
}

// Transaction 执行事务
func (u *OrderUnitOfWork) Transaction(ctx context.Context, fn func(uow *OrderUnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txUow := &OrderUnitOfWork{
			db:     tx,
			Orders: NewOrderRepository(tx),
			Carts:  NewCartRepository(tx),
		}
		return fn(txUow)
	})
}

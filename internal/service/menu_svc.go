package service

import (
	"context"
	"math"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// toAmount 元 → 分
func toAmount(price float64) int64 {
	return int64(math.Round(price * 100))
}

// ==================== MenuService 菜单服务 ====================

// MenuService 分类与菜品服务
type MenuService struct {
	categoryRepo repository.CategoryRepository
	menuItemRepo repository.MenuItemRepository
	authz        *AuthzService
}

// NewMenuService 创建菜单服务
func NewMenuService(
	categoryRepo repository.CategoryRepository,
	menuItemRepo repository.MenuItemRepository,
	authz *AuthzService,
) *MenuService {
	return &MenuService{
		categoryRepo: categoryRepo,
		menuItemRepo: menuItemRepo,
		authz:        authz,
	}
}

// ==================== 分类 ====================

// ListCategories 分类列表，对任何人开放
func (s *MenuService) ListCategories(ctx context.Context) ([]dto.CategoryItem, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	list := make([]dto.CategoryItem, len(categories))
	for i, c := range categories {
		list[i] = dto.CategoryItem{ID: c.ID, Slug: c.Slug, Name: c.Name}
	}
	return list, nil
}

// CreateCategory 创建分类，仅经理
func (s *MenuService) CreateCategory(ctx context.Context, actorRole model.UserRole, req *dto.CreateCategoryRequest) (*dto.CategoryItem, error) {
	if err := s.authz.Authorize(actorRole, ActionCategoryWrite); err != nil {
		return nil, err
	}

	existing, err := s.categoryRepo.GetByName(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrCategoryExists
	}

	category := &model.Category{Slug: req.Slug, Name: req.Name}
	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, err
	}
	return &dto.CategoryItem{ID: category.ID, Slug: category.Slug, Name: category.Name}, nil
}

// ==================== 菜品 ====================

// ListMenuItems 菜品列表，对任何人开放
func (s *MenuService) ListMenuItems(ctx context.Context, req *dto.ListMenuItemsRequest) (*dto.ListMenuItemsResponse, error) {
	items, total, err := s.menuItemRepo.List(ctx, repository.MenuItemFilter{
		CategoryID: req.CategoryID,
		Keyword:    req.Keyword,
		Page:       req.Page,
		PageSize:   req.PageSize,
	})
	if err != nil {
		return nil, err
	}

	list := make([]dto.MenuItemResponse, len(items))
	for i, item := range items {
		list[i] = s.toMenuItemResponse(&item)
	}
	return &dto.ListMenuItemsResponse{Total: total, List: list}, nil
}

// GetMenuItem 菜品详情
func (s *MenuService) GetMenuItem(ctx context.Context, id int64) (*dto.MenuItemResponse, error) {
	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	resp := s.toMenuItemResponse(item)
	return &resp, nil
}

// CreateMenuItem 创建菜品，仅经理，价格不能低于 5 元
func (s *MenuService) CreateMenuItem(ctx context.Context, actorRole model.UserRole, req *dto.CreateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionMenuWrite); err != nil {
		return nil, err
	}

	amount := toAmount(req.Price)
	if amount < model.MinItemPriceAmount {
		return nil, ErrPriceTooLow
	}

	category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrCategoryNotFound
	}

	inventory := req.Inventory
	if inventory == 0 {
		inventory = 1
	}

	item := &model.MenuItem{
		Name:        req.Name,
		PriceAmount: amount,
		CategoryID:  req.CategoryID,
		Inventory:   inventory,
	}
	if err := s.menuItemRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.Category = *category

	resp := s.toMenuItemResponse(item)
	return &resp, nil
}

// UpdateMenuItem 更新菜品，仅经理
func (s *MenuService) UpdateMenuItem(ctx context.Context, actorRole model.UserRole, id int64, req *dto.UpdateMenuItemRequest) (*dto.MenuItemResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionMenuWrite); err != nil {
		return nil, err
	}

	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	fields := map[string]interface{}{}
	if req.Name != "" {
		fields["name"] = req.Name
	}
	if req.Price != nil {
		amount := toAmount(*req.Price)
		if amount < model.MinItemPriceAmount {
			return nil, ErrPriceTooLow
		}
		fields["price_amount"] = amount
	}
	if req.CategoryID > 0 {
		category, err := s.categoryRepo.GetByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if category == nil {
			return nil, ErrCategoryNotFound
		}
		fields["category_id"] = req.CategoryID
	}
	if req.Inventory != nil {
		fields["inventory"] = *req.Inventory
	}

	if len(fields) > 0 {
		if err := s.menuItemRepo.UpdateFields(ctx, id, fields); err != nil {
			return nil, err
		}
	}

	return s.GetMenuItem(ctx, id)
}

// DeleteMenuItem 删除菜品，仅经理
func (s *MenuService) DeleteMenuItem(ctx context.Context, actorRole model.UserRole, id int64) error {
	if err := s.authz.Authorize(actorRole, ActionMenuWrite); err != nil {
		return err
	}

	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrMenuItemNotFound
	}

	return s.menuItemRepo.Delete(ctx, id)
}

// ==================== 今日特选 ====================

// SetItemOfDay 设置今日特选，仅经理
// 仓库层在事务里先清旧标记再落新标记
func (s *MenuService) SetItemOfDay(ctx context.Context, actorRole model.UserRole, id int64) (*dto.MenuItemResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionItemOfDay); err != nil {
		return nil, err
	}

	item, err := s.menuItemRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}

	if err := s.menuItemRepo.SetItemOfDay(ctx, id); err != nil {
		return nil, err
	}

	return s.GetMenuItem(ctx, id)
}

// GetItemOfDay 查询当前今日特选
func (s *MenuService) GetItemOfDay(ctx context.Context) (*dto.MenuItemResponse, error) {
	item, err := s.menuItemRepo.GetItemOfDay(ctx)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrMenuItemNotFound
	}
	resp := s.toMenuItemResponse(item)
	return &resp, nil
}

// toMenuItemResponse 转换为响应结构
func (s *MenuService) toMenuItemResponse(item *model.MenuItem) dto.MenuItemResponse {
	return dto.MenuItemResponse{
		ID:           item.ID,
		Name:         item.Name,
		Price:        item.GetPrice(),
		CategoryID:   item.CategoryID,
		CategoryName: item.Category.Name,
		Inventory:    item.Inventory,
		Featured:     item.Featured,
	}
}

package service

import (
	"context"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== CartService 购物车服务 ====================

// CartService 购物车服务
// 所有操作都限定在当前用户名下，不属于自己的行项一律按不存在处理，
// 避免向外部泄露行项是否存在
type CartService struct {
	cartRepo     repository.CartRepository
	menuItemRepo repository.MenuItemRepository
}

// NewCartService 创建购物车服务
func NewCartService(cartRepo repository.CartRepository, menuItemRepo repository.MenuItemRepository) *CartService {
	return &CartService{cartRepo: cartRepo, menuItemRepo: menuItemRepo}
}

// ==================== 操作 ====================

// AddItem 加购
// 单价取当前菜价快照；同一菜品重复加购合并为一行
func (s *CartService) AddItem(ctx context.Context, userID int64, req *dto.AddCartItemRequest) (*dto.CartItemResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrQuantityTooSmall
	}

	menuItem, err := s.menuItemRepo.GetByID(ctx, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, ErrMenuItemNotFound
	}

	// 已有同菜品行项则合并
	existing, err := s.cartRepo.GetByUserAndMenuItem(ctx, userID, req.MenuItemID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		existing.Quantity += req.Quantity
		existing.UnitPriceAmount = menuItem.PriceAmount
		existing.LinePriceAmount = existing.UnitPriceAmount * int64(existing.Quantity)
		if err := s.cartRepo.Update(ctx, existing); err != nil {
			return nil, err
		}
		existing.MenuItem = *menuItem
		resp := s.toCartItemResponse(existing)
		return &resp, nil
	}

	item := &model.CartItem{
		UserID:          userID,
		MenuItemID:      req.MenuItemID,
		Quantity:        req.Quantity,
		UnitPriceAmount: menuItem.PriceAmount,
		LinePriceAmount: menuItem.PriceAmount * int64(req.Quantity),
	}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		return nil, err
	}
	item.MenuItem = *menuItem

	resp := s.toCartItemResponse(item)
	return &resp, nil
}

// UpdateItem 修改数量
// 单价按当前菜价重新取值（沿用既有产品行为），行小计随之重算
func (s *CartService) UpdateItem(ctx context.Context, userID, itemID int64, req *dto.UpdateCartItemRequest) (*dto.CartItemResponse, error) {
	if req.Quantity < 1 {
		return nil, ErrQuantityTooSmall
	}

	item, err := s.cartRepo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrCartItemNotFound
	}

	menuItem, err := s.menuItemRepo.GetByID(ctx, item.MenuItemID)
	if err != nil {
		return nil, err
	}
	if menuItem == nil {
		return nil, ErrMenuItemNotFound
	}

	item.Quantity = req.Quantity
	item.UnitPriceAmount = menuItem.PriceAmount
	item.LinePriceAmount = item.UnitPriceAmount * int64(item.Quantity)
	if err := s.cartRepo.Update(ctx, item); err != nil {
		return nil, err
	}
	item.MenuItem = *menuItem

	resp := s.toCartItemResponse(item)
	return &resp, nil
}

// RemoveItem 删除行项
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID int64) error {
	item, err := s.cartRepo.GetByIDAndUser(ctx, itemID, userID)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrCartItemNotFound
	}
	return s.cartRepo.Delete(ctx, itemID, userID)
}

// ListItems 当前用户的购物车
func (s *CartService) ListItems(ctx context.Context, userID int64) (*dto.CartResponse, error) {
	items, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.CartResponse{Items: make([]dto.CartItemResponse, len(items))}
	var total int64
	for i, item := range items {
		resp.Items[i] = s.toCartItemResponse(&item)
		total += item.LinePriceAmount
	}
	resp.Total = float64(total) / 100
	return resp, nil
}

// toCartItemResponse 转换为响应结构
func (s *CartService) toCartItemResponse(item *model.CartItem) dto.CartItemResponse {
	return dto.CartItemResponse{
		ID:           item.ID,
		MenuItemID:   item.MenuItemID,
		MenuItemName: item.MenuItem.Name,
		Quantity:     item.Quantity,
		UnitPrice:    item.GetUnitPrice(),
		LinePrice:    item.GetLinePrice(),
	}
}

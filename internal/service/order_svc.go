package service

import (
	"context"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== 依赖接口 ====================

// DeliveredNotifier 送达通知（可选注入）
type DeliveredNotifier interface {
	NotifyDelivered(order *model.Order)
}

// ==================== OrderService 订单服务 ====================

// OrderService 订单服务
type OrderService struct {
	uow       *repository.OrderUnitOfWork
	orderRepo repository.OrderRepository
	userRepo  repository.UserRepository
	authz     *AuthzService
	notifier  DeliveredNotifier
}

// NewOrderService 创建订单服务
func NewOrderService(
	uow *repository.OrderUnitOfWork,
	orderRepo repository.OrderRepository,
	userRepo repository.UserRepository,
	authz *AuthzService,
) *OrderService {
	return &OrderService{
		uow:       uow,
		orderRepo: orderRepo,
		userRepo:  userRepo,
		authz:     authz,
	}
}

// SetNotifier 设置送达通知器（可选注入）
func (s *OrderService) SetNotifier(n DeliveredNotifier) {
	s.notifier = n
}

// ==================== 下单 ====================

// Place 下单
// 整个流程在一个事务里：取购物车、建订单、落行项快照、清空购物车，
// 任何一步失败全部回滚。购物车在事务内读取，
// 保证同一快照内求和与落库一致
func (s *OrderService) Place(ctx context.Context, userID int64) (*dto.OrderResponse, error) {
	var placed *model.Order

	err := s.uow.Transaction(ctx, func(tx *repository.OrderUnitOfWork) error {
		cartItems, err := tx.Carts.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return ErrEmptyCart
		}

		// 总价 = 行小计之和
		var total int64
		orderItems := make([]model.OrderItem, len(cartItems))
		for i, ci := range cartItems {
			total += ci.LinePriceAmount
			// 保留购物车里捕获的价格，不回读当前菜价
			orderItems[i] = model.OrderItem{
				MenuItemID:      ci.MenuItemID,
				Quantity:        ci.Quantity,
				UnitPriceAmount: ci.UnitPriceAmount,
				LinePriceAmount: ci.LinePriceAmount,
			}
		}

		order := &model.Order{
			UserID:           userID,
			Status:           false,
			TotalPriceAmount: total,
			Items:            orderItems,
		}
		if err := tx.Orders.Create(ctx, order); err != nil {
			return err
		}

		if err := tx.Carts.DeleteByUser(ctx, userID); err != nil {
			return err
		}

		placed = order
		return nil
	})
	if err != nil {
		return nil, err
	}

	// 事务内创建的 Items 没带菜品关联，回读一次补全名称
	full, err := s.orderRepo.GetByIDWithItems(ctx, placed.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toOrderResponse(full)
	return &resp, nil
}

// ==================== 查询 ====================

// List 订单列表，可见范围按角色收窄：
// 经理看全部，配送员看指派给自己的，顾客看自己的
func (s *OrderService) List(ctx context.Context, actorID int64, actorRole model.UserRole, req *dto.ListOrdersRequest) (*dto.ListOrdersResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionOrderRead); err != nil {
		return nil, err
	}

	filter := repository.OrderFilter{
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	switch actorRole {
	case model.RoleAdmin, model.RoleManager:
		// 不加范围条件
	case model.RoleDeliveryCrew:
		filter.DeliveryCrewID = actorID
	default:
		filter.UserID = actorID
	}

	orders, total, err := s.orderRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	list := make([]dto.OrderResponse, len(orders))
	for i, o := range orders {
		list[i] = s.toOrderResponse(&o)
	}
	return &dto.ListOrdersResponse{Total: total, List: list}, nil
}

// Get 订单详情，超出可见范围按不存在处理
func (s *OrderService) Get(ctx context.Context, actorID int64, actorRole model.UserRole, orderID int64) (*dto.OrderResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionOrderRead); err != nil {
		return nil, err
	}

	order, err := s.getVisibleOrder(ctx, actorID, actorRole, orderID)
	if err != nil {
		return nil, err
	}

	resp := s.toOrderResponse(order)
	return &resp, nil
}

// getVisibleOrder 按角色可见范围取订单，不可见返回 not_found
func (s *OrderService) getVisibleOrder(ctx context.Context, actorID int64, actorRole model.UserRole, orderID int64) (*model.Order, error) {
	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	switch actorRole {
	case model.RoleAdmin, model.RoleManager:
		return order, nil
	case model.RoleDeliveryCrew:
		if order.DeliveryCrewID == nil || *order.DeliveryCrewID != actorID {
			return nil, ErrOrderNotFound
		}
		return order, nil
	default:
		if order.UserID != actorID {
			return nil, ErrOrderNotFound
		}
		return order, nil
	}
}

// ==================== 更新 ====================

// Update 更新订单字段
// 经理可改 delivery_crew / status / total_price 任意组合；
// 配送员只能单独改指派给自己的订单的 status，
// 请求里带了其他字段整单拒绝；顾客无权更新
func (s *OrderService) Update(ctx context.Context, actorID int64, actorRole model.UserRole, orderID int64, req *dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionOrderUpdate); err != nil {
		return nil, err
	}

	if actorRole == model.RoleDeliveryCrew {
		if req.DeliveryCrewID != nil || req.TotalPrice != nil {
			return nil, forbiddenErr("配送员只能更新订单状态")
		}
	}

	order, err := s.getVisibleOrder(ctx, actorID, actorRole, orderID)
	if err != nil {
		return nil, err
	}

	fields := map[string]interface{}{}
	if req.Status != nil {
		fields["status"] = *req.Status
	}
	if req.DeliveryCrewID != nil {
		if err := s.checkDeliveryCrew(ctx, *req.DeliveryCrewID); err != nil {
			return nil, err
		}
		fields["delivery_crew_id"] = *req.DeliveryCrewID
	}
	if req.TotalPrice != nil {
		amount := toAmount(*req.TotalPrice)
		if amount < model.MinOrderTotalAmount {
			return nil, ErrTotalPriceTooLow
		}
		fields["total_price_amount"] = amount
	}

	if len(fields) > 0 {
		if err := s.orderRepo.UpdateFields(ctx, order.ID, fields); err != nil {
			return nil, err
		}
	}

	return s.Get(ctx, actorID, actorRole, orderID)
}

// Delete 删除订单，仅经理
func (s *OrderService) Delete(ctx context.Context, actorRole model.UserRole, orderID int64) error {
	if err := s.authz.Authorize(actorRole, ActionOrderDelete); err != nil {
		return err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if order == nil {
		return ErrOrderNotFound
	}

	return s.orderRepo.Delete(ctx, orderID)
}

// ==================== 生命周期 ====================

// AssignDeliveryCrew 指派配送员，仅经理
// 目标用户必须已持有 delivery_crew 角色
func (s *OrderService) AssignDeliveryCrew(ctx context.Context, actorRole model.UserRole, orderID, crewUserID int64) (*dto.OrderResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionOrderAssign); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrOrderNotFound
	}

	if err := s.checkDeliveryCrew(ctx, crewUserID); err != nil {
		return nil, err
	}

	if err := s.orderRepo.UpdateFields(ctx, orderID, map[string]interface{}{
		"delivery_crew_id": crewUserID,
	}); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	resp := s.toOrderResponse(updated)
	return &resp, nil
}

// MarkDelivered 标记送达，仅配送员，且只能操作指派给自己的订单
// 未指派给自己的订单按不存在处理
func (s *OrderService) MarkDelivered(ctx context.Context, actorID int64, actorRole model.UserRole, orderID int64) (*dto.OrderResponse, error) {
	if err := s.authz.Authorize(actorRole, ActionOrderDeliver); err != nil {
		return nil, err
	}

	order, err := s.orderRepo.GetByIDWithItems(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil || order.DeliveryCrewID == nil || *order.DeliveryCrewID != actorID {
		return nil, ErrOrderNotFound
	}

	if err := s.orderRepo.UpdateFields(ctx, orderID, map[string]interface{}{
		"status": true,
	}); err != nil {
		return nil, err
	}
	order.Status = true

	// 回调失败不影响订单流程
	if s.notifier != nil {
		s.notifier.NotifyDelivered(order)
	}

	resp := s.toOrderResponse(order)
	return &resp, nil
}

// checkDeliveryCrew 校验目标用户持有配送员角色
func (s *OrderService) checkDeliveryCrew(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	if !user.IsDeliveryCrew() {
		return ErrNotDeliveryCrew
	}
	return nil
}

// toOrderResponse 转换为响应结构
func (s *OrderService) toOrderResponse(order *model.Order) dto.OrderResponse {
	items := make([]dto.OrderItemResponse, len(order.Items))
	for i, it := range order.Items {
		items[i] = dto.OrderItemResponse{
			ID:           it.ID,
			MenuItemID:   it.MenuItemID,
			MenuItemName: it.MenuItem.Name,
			Quantity:     it.Quantity,
			UnitPrice:    it.GetUnitPrice(),
			LinePrice:    it.GetLinePrice(),
		}
	}
	return dto.OrderResponse{
		ID:             order.ID,
		UserID:         order.UserID,
		DeliveryCrewID: order.DeliveryCrewID,
		Status:         order.Status,
		TotalPrice:     order.GetTotalPrice(),
		Items:          items,
		CreatedAt:      order.CreatedAt,
	}
}

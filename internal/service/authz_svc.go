package service

import (
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
)

// ==================== 动作定义 ====================

// Action 受控动作
type Action string

// 菜单浏览对匿名开放，购物车和下单对所有已认证用户开放，
// 这三类动作不进表，由路由层的认证中间件把关
const (
	ActionMenuWrite      Action = "menu:write"       // 菜品增删改
	ActionCategoryWrite  Action = "category:write"   // 分类增删改
	ActionItemOfDay      Action = "menu:item_of_day" // 切换今日特选
	ActionAssignManager  Action = "group:manager"    // 指派/移除经理角色
	ActionAssignDelivery Action = "group:delivery"   // 指派/移除配送员角色
	ActionOrderRead      Action = "order:read"       // 查看订单（范围在服务层按角色收窄）
	ActionOrderUpdate    Action = "order:update"     // 更新订单字段
	ActionOrderDelete    Action = "order:delete"     // 删除订单
	ActionOrderAssign    Action = "order:assign"     // 指派配送员
	ActionOrderDeliver   Action = "order:deliver"    // 标记送达
)

// ==================== 权限表 ====================

// 各动作允许的角色，admin 为超管不查表。
// 权限集中在这一张表里，避免散落在各个接口里漂移
var actionRoles = map[Action][]model.UserRole{
	ActionMenuWrite:      {model.RoleManager},
	ActionCategoryWrite:  {model.RoleManager},
	ActionItemOfDay:      {model.RoleManager},
	ActionAssignManager:  {}, // 仅 admin
	ActionAssignDelivery: {model.RoleManager},
	ActionOrderRead:      {model.RoleManager, model.RoleDeliveryCrew, model.RoleCustomer},
	ActionOrderUpdate:    {model.RoleManager, model.RoleDeliveryCrew},
	ActionOrderDelete:    {model.RoleManager},
	ActionOrderAssign:    {model.RoleManager},
	ActionOrderDeliver:   {model.RoleDeliveryCrew},
}

// ==================== AuthzService 鉴权服务 ====================

// AuthzService 统一鉴权检查
// 只做 角色 → 动作 的判定，属主范围收窄（自己的购物车、
// 指派给自己的订单）在各业务服务内以 not_found 语义处理
type AuthzService struct{}

// NewAuthzService 创建鉴权服务
func NewAuthzService() *AuthzService {
	return &AuthzService{}
}

// Authorize 判定角色是否允许执行动作，拒绝返回 forbidden 业务错误
// 拒绝不产生任何副作用
func (s *AuthzService) Authorize(role model.UserRole, action Action) error {
	// admin 超管放行
	if role == model.RoleAdmin {
		return nil
	}

	for _, allowed := range actionRoles[action] {
		if role == allowed {
			return nil
		}
	}
	return forbiddenErr("当前角色无权执行该操作")
}

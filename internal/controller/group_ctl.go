package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== GroupController 角色分组控制器 ====================

// GroupController 角色分组控制器
// /groups/manager/users 仅 admin，/groups/delivery-crew/users 仅经理
type GroupController struct {
	userService *service.UserService
}

// NewGroupController 创建分组控制器
func NewGroupController(userService *service.UserService) *GroupController {
	return &GroupController{userService: userService}
}

// ==================== 经理分组 ====================

// ListManagers 经理列表
// GET /api/groups/manager/users
func (c *GroupController) ListManagers(ctx *gin.Context) {
	c.listMembers(ctx, model.RoleManager)
}

// AssignManager 指派经理
// POST /api/groups/manager/users
func (c *GroupController) AssignManager(ctx *gin.Context) {
	c.assign(ctx, model.RoleManager)
}

// RemoveManager 移除经理
// DELETE /api/groups/manager/users/:id
func (c *GroupController) RemoveManager(ctx *gin.Context) {
	c.remove(ctx, model.RoleManager)
}

// ==================== 配送员分组 ====================

// ListDeliveryCrew 配送员列表
// GET /api/groups/delivery-crew/users
func (c *GroupController) ListDeliveryCrew(ctx *gin.Context) {
	c.listMembers(ctx, model.RoleDeliveryCrew)
}

// AssignDeliveryCrew 指派配送员
// POST /api/groups/delivery-crew/users
func (c *GroupController) AssignDeliveryCrew(ctx *gin.Context) {
	c.assign(ctx, model.RoleDeliveryCrew)
}

// RemoveDeliveryCrew 移除配送员
// DELETE /api/groups/delivery-crew/users/:id
func (c *GroupController) RemoveDeliveryCrew(ctx *gin.Context) {
	c.remove(ctx, model.RoleDeliveryCrew)
}

// ==================== 公共实现 ====================

func (c *GroupController) listMembers(ctx *gin.Context, target model.UserRole) {
	members, err := c.userService.ListGroupMembers(ctx.Request.Context(), actorRole(ctx), target)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", members)
}

func (c *GroupController) assign(ctx *gin.Context, target model.UserRole) {
	var req dto.AssignGroupRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	info, err := c.userService.AssignRole(ctx.Request.Context(), actorRole(ctx), &req, target)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, "指派成功", info)
}

func (c *GroupController) remove(ctx *gin.Context, target model.UserRole) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	if err := c.userService.RemoveRole(ctx.Request.Context(), actorRole(ctx), id, target); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "移除成功", nil)
}

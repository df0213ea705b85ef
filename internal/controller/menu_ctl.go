package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== MenuController 菜单控制器 ====================

// MenuController 分类与菜品控制器
type MenuController struct {
	svc *service.MenuService
}

// NewMenuController 创建菜单控制器
func NewMenuController(svc *service.MenuService) *MenuController {
	return &MenuController{svc: svc}
}

// ==================== 分类 ====================

// ListCategories 分类列表
// @Summary 分类列表
// @Tags Menu
// @Produce json
// @Success 200 {array} dto.CategoryItem
// @Router /categories [get]
func (c *MenuController) ListCategories(ctx *gin.Context) {
	list, err := c.svc.ListCategories(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", list)
}

// CreateCategory 创建分类
// @Summary 创建分类（仅经理）
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateCategoryRequest true "分类信息"
// @Success 201 {object} dto.CategoryItem
// @Failure 403 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /categories [post]
func (c *MenuController) CreateCategory(ctx *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.svc.CreateCategory(ctx.Request.Context(), actorRole(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, "创建成功", item)
}

// ==================== 菜品 ====================

// ListMenuItems 菜品列表
// @Summary 菜品列表（公开）
// @Tags Menu
// @Produce json
// @Param category_id query int false "分类"
// @Param keyword query string false "关键字"
// @Success 200 {object} dto.ListMenuItemsResponse
// @Router /menu-items [get]
func (c *MenuController) ListMenuItems(ctx *gin.Context) {
	var req dto.ListMenuItemsRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.svc.ListMenuItems(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", resp)
}

// GetMenuItem 菜品详情
// GET /api/menu-items/:id
func (c *MenuController) GetMenuItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	item, err := c.svc.GetMenuItem(ctx.Request.Context(), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", item)
}

// CreateMenuItem 创建菜品
// @Summary 创建菜品（仅经理，价格 ≥ 5 元）
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuItemRequest true "菜品信息"
// @Success 201 {object} dto.MenuItemResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 403 {object} map[string]interface{}
// @Router /menu-items [post]
func (c *MenuController) CreateMenuItem(ctx *gin.Context) {
	var req dto.CreateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.svc.CreateMenuItem(ctx.Request.Context(), actorRole(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, "创建成功", item)
}

// UpdateMenuItem 更新菜品
// PUT/PATCH /api/menu-items/:id
func (c *MenuController) UpdateMenuItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	var req dto.UpdateMenuItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.svc.UpdateMenuItem(ctx.Request.Context(), actorRole(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "更新成功", item)
}

// DeleteMenuItem 删除菜品
// DELETE /api/menu-items/:id
func (c *MenuController) DeleteMenuItem(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	if err := c.svc.DeleteMenuItem(ctx.Request.Context(), actorRole(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "删除成功", nil)
}

// ==================== 今日特选 ====================

// SetItemOfDay 设置今日特选
// PUT /api/menu-items/:id/item-of-day
func (c *MenuController) SetItemOfDay(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	item, err := c.svc.SetItemOfDay(ctx.Request.Context(), actorRole(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "设置成功", item)
}

// GetItemOfDay 查询今日特选
// GET /api/menu-items/item-of-day
func (c *MenuController) GetItemOfDay(ctx *gin.Context) {
	item, err := c.svc.GetItemOfDay(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", item)
}

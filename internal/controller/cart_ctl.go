package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== CartController 购物车控制器 ====================

// CartController 购物车控制器，所有接口都要求认证
type CartController struct {
	svc *service.CartService
}

// NewCartController 创建购物车控制器
func NewCartController(svc *service.CartService) *CartController {
	return &CartController{svc: svc}
}

// List 我的购物车
// @Summary 我的购物车
// @Tags Cart
// @Produce json
// @Success 200 {object} dto.CartResponse
// @Router /cart/menu-items [get]
func (c *CartController) List(ctx *gin.Context) {
	resp, err := c.svc.ListItems(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", resp)
}

// Add 加购
// @Summary 加购（数量 ≥ 1）
// @Tags Cart
// @Accept json
// @Produce json
// @Param request body dto.AddCartItemRequest true "加购信息"
// @Success 201 {object} dto.CartItemResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /cart/menu-items [post]
func (c *CartController) Add(ctx *gin.Context) {
	var req dto.AddCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.svc.AddItem(ctx.Request.Context(), middleware.GetUserID(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, "加购成功", item)
}

// Update 修改数量
// PATCH /api/cart/menu-items/:id
func (c *CartController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	var req dto.UpdateCartItemRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	item, err := c.svc.UpdateItem(ctx.Request.Context(), middleware.GetUserID(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "更新成功", item)
}

// Remove 删除行项
// DELETE /api/cart/menu-items/:id
func (c *CartController) Remove(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	if err := c.svc.RemoveItem(ctx.Request.Context(), middleware.GetUserID(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "删除成功", nil)
}

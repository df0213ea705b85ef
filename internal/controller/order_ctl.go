package controller

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== OrderController 订单控制器 ====================

// OrderController 订单控制器
type OrderController struct {
	svc *service.OrderService
}

// NewOrderController 创建订单控制器
func NewOrderController(svc *service.OrderService) *OrderController {
	return &OrderController{svc: svc}
}

// ==================== 下单与查询 ====================

// Place 下单
// @Summary 用当前购物车下单
// @Tags Order
// @Produce json
// @Success 201 {object} dto.OrderResponse
// @Failure 400 {object} map[string]interface{}
// @Router /orders [post]
func (c *OrderController) Place(ctx *gin.Context) {
	resp, err := c.svc.Place(ctx.Request.Context(), middleware.GetUserID(ctx))
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondCreated(ctx, "下单成功", resp)
}

// List 订单列表
// @Summary 订单列表（按角色收窄可见范围）
// @Tags Order
// @Produce json
// @Param status query bool false "配送状态"
// @Success 200 {object} dto.ListOrdersResponse
// @Router /orders [get]
func (c *OrderController) List(ctx *gin.Context) {
	var req dto.ListOrdersRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.svc.List(ctx.Request.Context(), middleware.GetUserID(ctx), actorRole(ctx), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", resp)
}

// Get 订单详情
// GET /api/orders/:id
func (c *OrderController) Get(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	resp, err := c.svc.Get(ctx.Request.Context(), middleware.GetUserID(ctx), actorRole(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "查询成功", resp)
}

// ==================== 更新与删除 ====================

// Update 更新订单字段
// PUT/PATCH /api/orders/:id
func (c *OrderController) Update(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	var req dto.UpdateOrderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.svc.Update(ctx.Request.Context(), middleware.GetUserID(ctx), actorRole(ctx), id, &req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "更新成功", resp)
}

// Delete 删除订单
// DELETE /api/orders/:id
func (c *OrderController) Delete(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	if err := c.svc.Delete(ctx.Request.Context(), actorRole(ctx), id); err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "删除成功", nil)
}

// ==================== 生命周期 ====================

// AssignDelivery 指派配送员
// POST /api/orders/:id/assign-delivery
func (c *OrderController) AssignDelivery(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	var req dto.AssignDeliveryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.svc.AssignDeliveryCrew(ctx.Request.Context(), actorRole(ctx), id, req.DeliveryCrewID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "指派成功", resp)
}

// MarkDelivered 标记送达
// POST /api/orders/:id/delivered
func (c *OrderController) MarkDelivered(ctx *gin.Context) {
	id, err := strconv.ParseInt(ctx.Param("id"), 10, 64)
	if err != nil {
		respondBadRequest(ctx, "无效的ID")
		return
	}

	resp, err := c.svc.MarkDelivered(ctx.Request.Context(), middleware.GetUserID(ctx), actorRole(ctx), id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	respondOK(ctx, "已标记送达", resp)
}

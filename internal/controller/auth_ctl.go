package controller

import (
	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== AuthController 认证控制器 ====================

// AuthController 认证控制器
type AuthController struct {
	userService *service.UserService
}

// NewAuthController 创建认证控制器
func NewAuthController(userService *service.UserService) *AuthController {
	return &AuthController{userService: userService}
}

// Register 注册
// @Summary 注册
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "注册信息"
// @Success 201 {object} dto.UserInfo
// @Failure 400 {object} map[string]interface{}
// @Failure 409 {object} map[string]interface{}
// @Router /auth/register [post]
func (c *AuthController) Register(ctx *gin.Context) {
	var req dto.RegisterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	info, err := c.userService.Register(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondCreated(ctx, "注册成功", info)
}

// Login 登录
// @Summary 登录
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "登录信息"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} map[string]interface{}
// @Failure 401 {object} map[string]interface{}
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.userService.Login(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "登录成功", resp)
}

// RefreshToken 刷新 Token
// @Summary 刷新 Token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh Token"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 401 {object} map[string]interface{}
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBadRequest(ctx, "参数错误: "+err.Error())
		return
	}

	resp, err := c.userService.RefreshToken(ctx.Request.Context(), &req)
	if err != nil {
		respondError(ctx, err)
		return
	}

	respondOK(ctx, "刷新成功", resp)
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
)

// ==================== 响应辅助 ====================

// respondOK 成功响应
func respondOK(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusOK, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondCreated 创建成功响应
func respondCreated(ctx *gin.Context, message string, data interface{}) {
	ctx.JSON(http.StatusCreated, gin.H{
		"code":    0,
		"message": message,
		"data":    data,
	})
}

// respondBadRequest 参数错误响应
func respondBadRequest(ctx *gin.Context, message string) {
	ctx.JSON(http.StatusBadRequest, gin.H{
		"code":    400,
		"message": message,
	})
}

// respondError 按业务错误类别映射状态码
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch service.KindOf(err) {
	case service.KindValidation:
		status = http.StatusBadRequest
	case service.KindUnauthorized:
		status = http.StatusUnauthorized
	case service.KindForbidden:
		status = http.StatusForbidden
	case service.KindNotFound:
		status = http.StatusNotFound
	case service.KindConflict:
		status = http.StatusConflict
	}

	message := err.Error()
	if status == http.StatusInternalServerError {
		// 内部错误不外露细节
		message = "服务内部错误"
	}

	ctx.JSON(status, gin.H{
		"code":    status,
		"message": message,
	})
}

// ==================== 身份辅助 ====================

// actorRole 从 Context 取当前角色，匿名视为 customer
func actorRole(ctx *gin.Context) model.UserRole {
	if role := middleware.GetRole(ctx); role != "" {
		return model.UserRole(role)
	}
	return model.RoleCustomer
}

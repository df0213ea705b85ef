package service

// ==================== 业务错误 ====================

// ErrorKind 错误类别，供 HTTP 层映射状态码
type ErrorKind string

const (
	KindValidation   ErrorKind = "validation"   // 400
	KindUnauthorized ErrorKind = "unauthorized" // 401
	KindForbidden    ErrorKind = "forbidden"    // 403
	KindNotFound     ErrorKind = "not_found"    // 404
	KindConflict     ErrorKind = "conflict"     // 409
)

// BizError 业务错误，携带类别与可读信息
type BizError struct {
	Kind    ErrorKind
	Message string
}

func (e *BizError) Error() string {
	return e.Message
}

// KindOf 取出错误类别，非业务错误返回空串
func KindOf(err error) ErrorKind {
	if be, ok := err.(*BizError); ok {
		return be.Kind
	}
	return ""
}

func validationErr(msg string) *BizError {
	return &BizError{Kind: KindValidation, Message: msg}
}

func forbiddenErr(msg string) *BizError {
	return &BizError{Kind: KindForbidden, Message: msg}
}

// ==================== 预置错误 ====================

var (
	// 认证
	ErrInvalidCredentials = &BizError{Kind: KindUnauthorized, Message: "用户名或密码错误"}
	ErrInvalidToken       = &BizError{Kind: KindUnauthorized, Message: "Token 无效"}
	ErrUserDisabled       = &BizError{Kind: KindForbidden, Message: "用户已禁用"}
	ErrUsernameExists     = &BizError{Kind: KindConflict, Message: "用户名已存在"}

	// 角色分组
	ErrUserNotFound = &BizError{Kind: KindNotFound, Message: "用户不存在"}
	ErrRoleOccupied = &BizError{Kind: KindConflict, Message: "该用户已持有其他操作角色"}

	// 菜单
	ErrCategoryNotFound = &BizError{Kind: KindNotFound, Message: "分类不存在"}
	ErrCategoryExists   = &BizError{Kind: KindConflict, Message: "分类名称已存在"}
	ErrMenuItemNotFound = &BizError{Kind: KindNotFound, Message: "菜品不存在"}
	ErrPriceTooLow      = &BizError{Kind: KindValidation, Message: "菜品价格不能低于 5 元"}

	// 购物车
	ErrCartItemNotFound = &BizError{Kind: KindNotFound, Message: "购物车行项不存在"}
	ErrQuantityTooSmall = &BizError{Kind: KindValidation, Message: "数量必须大于等于 1"}

	// 订单
	ErrEmptyCart        = &BizError{Kind: KindValidation, Message: "购物车为空，无法下单"}
	ErrOrderNotFound    = &BizError{Kind: KindNotFound, Message: "订单不存在"}
	ErrTotalPriceTooLow = &BizError{Kind: KindValidation, Message: "订单总价不能低于 1 元"}
	ErrNotDeliveryCrew  = &BizError{Kind: KindConflict, Message: "该用户不是配送员"}
)

package dto

import "time"

// ==================== 查询 ====================

// ListOrdersRequest 订单列表查询
type ListOrdersRequest struct {
	Status   *bool `form:"status"`
	Page     int   `form:"page,default=1"`
	PageSize int   `form:"page_size,default=20"`
}

// ==================== 更新 ====================

// UpdateOrderRequest 订单字段更新请求
// 经理可改任意组合；配送员只允许单独更新 status，
// 请求里出现其他字段会被整体拒绝
type UpdateOrderRequest struct {
	DeliveryCrewID *int64   `json:"delivery_crew_id" binding:"omitempty,min=1"`
	Status         *bool    `json:"status"`
	TotalPrice     *float64 `json:"total_price" binding:"omitempty,gt=0"`
}

// AssignDeliveryRequest 配送员指派请求
type AssignDeliveryRequest struct {
	DeliveryCrewID int64 `json:"delivery_crew_id" binding:"required,min=1"`
}

// ==================== 响应 ====================

// OrderItemResponse 订单行项响应
type OrderItemResponse struct {
	ID           int64   `json:"id"`
	MenuItemID   int64   `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LinePrice    float64 `json:"line_price"`
}

// OrderResponse 订单响应
type OrderResponse struct {
	ID             int64               `json:"id"`
	UserID         int64               `json:"user_id"`
	DeliveryCrewID *int64              `json:"delivery_crew_id"`
	Status         bool                `json:"status"`
	TotalPrice     float64             `json:"total_price"`
	Items          []OrderItemResponse `json:"items"`
	CreatedAt      time.Time           `json:"created_at"`
}

// ListOrdersResponse 订单列表响应
type ListOrdersResponse struct {
	Total int64           `json:"total"`
	List  []OrderResponse `json:"list"`
}

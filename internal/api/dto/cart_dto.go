package dto

// AddCartItemRequest 加购请求
type AddCartItemRequest struct {
	MenuItemID int64 `json:"menu_item_id" binding:"required,min=1"`
	Quantity   int   `json:"quantity" binding:"required"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// CartItemResponse 购物车行项响应
type CartItemResponse struct {
	ID           int64   `json:"id"`
	MenuItemID   int64   `json:"menu_item_id"`
	MenuItemName string  `json:"menu_item_name,omitempty"`
	Quantity     int     `json:"quantity"`
	UnitPrice    float64 `json:"unit_price"`
	LinePrice    float64 `json:"line_price"`
}

// CartResponse 购物车响应
type CartResponse struct {
	Items []CartItemResponse `json:"items"`
	Total float64            `json:"total"`
}

package dto

// ==================== 分类 ====================

// CreateCategoryRequest 创建分类请求
type CreateCategoryRequest struct {
	Slug string `json:"slug" binding:"required,min=1,max=100"`
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// CategoryItem 分类响应
type CategoryItem struct {
	ID   int64  `json:"id"`
	Slug string `json:"slug"`
	Name string `json:"name"`
}

// ==================== 菜品 ====================

// CreateMenuItemRequest 创建菜品请求
type CreateMenuItemRequest struct {
	Name       string  `json:"name" binding:"required,min=1,max=100"`
	Price      float64 `json:"price" binding:"required,gt=0"` // 元
	CategoryID int64   `json:"category_id" binding:"required,min=1"`
	Inventory  int     `json:"inventory" binding:"omitempty,min=0"`
}

// UpdateMenuItemRequest 更新菜品请求，零值字段不更新
type UpdateMenuItemRequest struct {
	Name       string   `json:"name" binding:"omitempty,min=1,max=100"`
	Price      *float64 `json:"price" binding:"omitempty,gt=0"`
	CategoryID int64    `json:"category_id" binding:"omitempty,min=1"`
	Inventory  *int     `json:"inventory" binding:"omitempty,min=0"`
}

// ListMenuItemsRequest 菜品列表查询
type ListMenuItemsRequest struct {
	CategoryID int64  `form:"category_id"`
	Keyword    string `form:"keyword"`
	Page       int    `form:"page,default=1"`
	PageSize   int    `form:"page_size,default=20"`
}

// MenuItemResponse 菜品响应
type MenuItemResponse struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Price        float64 `json:"price"`
	CategoryID   int64   `json:"category_id"`
	CategoryName string  `json:"category_name,omitempty"`
	Inventory    int     `json:"inventory"`
	Featured     bool    `json:"featured"`
}

// ListMenuItemsResponse 菜品列表响应
type ListMenuItemsResponse struct {
	Total int64              `json:"total"`
	List  []MenuItemResponse `json:"list"`
}

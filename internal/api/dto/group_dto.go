package dto

// AssignGroupRequest 角色分组指派请求
// 兼容传 user_id 或 username 两种写法
type AssignGroupRequest struct {
	UserID   int64  `json:"user_id" binding:"omitempty,min=1"`
	Username string `json:"username" binding:"omitempty,min=3,max=50"`
}

// GroupMemberItem 分组成员列表项
type GroupMemberItem struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

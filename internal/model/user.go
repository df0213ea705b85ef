package model

import "time"

// ==================== 角色常量 ====================

// UserRole 业务角色
// 业务上 manager 和 delivery_crew 互斥，因此存储为单值角色列，
// 而不是角色集合（admin 是超管，独立于分组逻辑）
type UserRole string

const (
	RoleAdmin        UserRole = "admin"         // 超管
	RoleManager      UserRole = "manager"       // 经理
	RoleDeliveryCrew UserRole = "delivery_crew" // 配送员
	RoleCustomer     UserRole = "customer"      // 普通顾客（默认）
)

// ==================== User 用户 ====================

// User 系统用户
type User struct {
	BaseModel
	Username string `gorm:"size:100;uniqueIndex;not null"`
	Password string `gorm:"size:255;not null"` // 哈希密码
	Email    string `gorm:"size:100"`

	Role UserRole `gorm:"size:20;default:'customer';index"`

	IsActive    bool `gorm:"default:true"`
	LastLoginAt time.Time
}

func (User) TableName() string {
	return "users"
}

// IsManager 是否持有经理角色
func (u *User) IsManager() bool {
	return u.Role == RoleManager
}

// IsDeliveryCrew 是否持有配送员角色
func (u *User) IsDeliveryCrew() bool {
	return u.Role == RoleDeliveryCrew
}

package model

// ==================== 金额常量 ====================

// 金额以分为单位存储
const (
	// MinItemPriceAmount 菜品最低价格（5 元）
	MinItemPriceAmount int64 = 500
	// MinOrderTotalAmount 订单最低总价（1 元）
	MinOrderTotalAmount int64 = 100
)

// ==================== MenuItem 菜品 ====================

// MenuItem 菜品
type MenuItem struct {
	BaseModel
	Name        string `gorm:"size:100;not null"`
	PriceAmount int64  `gorm:"not null"` // 单价（分）

	CategoryID int64    `gorm:"index;not null"`
	Category   Category `gorm:"foreignKey:CategoryID"`

	Inventory int `gorm:"default:1"`

	// 今日特选，全表同一时刻至多一条为 true，
	// 只能通过 item-of-day 操作在事务中切换
	Featured bool `gorm:"default:false;index"`
}

func (MenuItem) TableName() string {
	return "menu_items"
}

// GetPrice 获取单价（元）
func (m *MenuItem) GetPrice() float64 {
	return float64(m.PriceAmount) / 100
}

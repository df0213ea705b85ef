package model

// ==================== Order 订单主表 ====================

// Order 订单
// Status: false = 待配送/配送中，true = 已送达
type Order struct {
	BaseModel
	UserID int64 `gorm:"index;not null"` // 下单人
	User   User  `gorm:"foreignKey:UserID"`

	// 配送员，下单时为空，只有经理可指派，
	// 被指派人必须持有 delivery_crew 角色
	DeliveryCrewID *int64 `gorm:"index"`
	DeliveryCrew   *User  `gorm:"foreignKey:DeliveryCrewID"`

	Status           bool  `gorm:"default:false;index"`
	TotalPriceAmount int64 `gorm:"not null"` // 总价（分），下单时由购物车行小计求和，此后不重算

	Items []OrderItem `gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// GetTotalPrice 获取总价（元）
func (o *Order) GetTotalPrice() float64 {
	return float64(o.TotalPriceAmount) / 100
}

// ==================== OrderItem 订单行项 ====================

// OrderItem 订单行项，下单时对购物车行项的不可变快照
type OrderItem struct {
	BaseModel
	OrderID int64 `gorm:"index;not null"`

	MenuItemID int64    `gorm:"index;not null"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID"`

	Quantity        int   `gorm:"not null"`
	UnitPriceAmount int64 `gorm:"not null"`
	LinePriceAmount int64 `gorm:"not null"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

// GetUnitPrice 获取单价（元）
func (i *OrderItem) GetUnitPrice() float64 {
	return float64(i.UnitPriceAmount) / 100
}

// GetLinePrice 获取行小计（元）
func (i *OrderItem) GetLinePrice() float64 {
	return float64(i.LinePriceAmount) / 100
}

package model

// CartItem 购物车行项
// unit_price 在加购时从 MenuItem 复制，更新数量时按当前菜价重新取值
type CartItem struct {
	BaseModel
	UserID int64 `gorm:"index;not null"`

	MenuItemID int64    `gorm:"index;not null"`
	MenuItem   MenuItem `gorm:"foreignKey:MenuItemID"`

	Quantity        int   `gorm:"not null"`
	UnitPriceAmount int64 `gorm:"not null"` // 单价快照（分）
	LinePriceAmount int64 `gorm:"not null"` // 行小计 = 单价 × 数量（分）
}

func (CartItem) TableName() string {
	return "cart_items"
}

// GetUnitPrice 获取单价（元）
func (c *CartItem) GetUnitPrice() float64 {
	return float64(c.UnitPriceAmount) / 100
}

// GetLinePrice 获取行小计（元）
func (c *CartItem) GetLinePrice() float64 {
	return float64(c.LinePriceAmount) / 100
}

package model

// Category 菜品分类
type Category struct {
	BaseModel
	Slug string `gorm:"size:100;uniqueIndex;not null"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

func (Category) TableName() string {
	return "categories"
}

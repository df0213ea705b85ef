package service

import (
	"context"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/api/dto"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
)

// ==================== 测试辅助 ====================

func setupCartTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Category{}, &model.MenuItem{}, &model.CartItem{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

// seedMenuItem 直接落一条菜品，price 单位为分
func seedMenuItem(t *testing.T, db *gorm.DB, name string, priceAmount int64) *model.MenuItem {
	t.Helper()
	cat := model.Category{Slug: name, Name: name}
	if err := db.Create(&cat).Error; err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	item := model.MenuItem{Name: name, PriceAmount: priceAmount, CategoryID: cat.ID, Inventory: 1}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("创建菜品失败: %v", err)
	}
	return &item
}

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(
		repository.NewCartRepository(db),
		repository.NewMenuItemRepository(db),
	)
}

// ==================== 单元测试 ====================

func TestCartService_AddItem(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	menu := seedMenuItem(t, db, "Pizza", 1000) // 10 元

	item, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{
		MenuItemID: menu.ID,
		Quantity:   2,
	})
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	if item.UnitPrice != 10 {
		t.Fatalf("单价应为 10，实际为 %v", item.UnitPrice)
	}
	// 行小计 = 单价 × 数量
	if item.LinePrice != 20 {
		t.Fatalf("行小计应为 20，实际为 %v", item.LinePrice)
	}
}

func TestCartService_AddItemQuantityTooSmall(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	menu := seedMenuItem(t, db, "Pizza", 1000)

	_, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{
		MenuItemID: menu.ID,
		Quantity:   0,
	})
	if KindOf(err) != KindValidation {
		t.Fatalf("数量 0 应为 validation 错误，实际: %v", err)
	}
}

func TestCartService_AddItemMenuItemMissing(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)

	_, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{
		MenuItemID: 999,
		Quantity:   1,
	})
	if KindOf(err) != KindNotFound {
		t.Fatalf("菜品不存在应为 not_found，实际: %v", err)
	}
}

// 同一菜品重复加购合并为一行
func TestCartService_AddItemMerges(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	menu := seedMenuItem(t, db, "Pizza", 1000)

	if _, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: menu.ID, Quantity: 2}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	merged, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: menu.ID, Quantity: 3})
	if err != nil {
		t.Fatalf("二次加购失败: %v", err)
	}
	if merged.Quantity != 5 || merged.LinePrice != 50 {
		t.Fatalf("合并后应为 5 件 / 50 元，实际 %d 件 / %v 元", merged.Quantity, merged.LinePrice)
	}

	var count int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("同菜品应只有一行，实际 %d 行", count)
	}
}

// 更新数量时按当前菜价重新取值
func TestCartService_UpdateRepricesFromCurrentMenu(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	menu := seedMenuItem(t, db, "Pizza", 1000)

	item, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: menu.ID, Quantity: 2})
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	// 菜价上调
	if err := db.Model(&model.MenuItem{}).Where("id = ?", menu.ID).Update("price_amount", 1500).Error; err != nil {
		t.Fatalf("调价失败: %v", err)
	}

	updated, err := svc.UpdateItem(context.Background(), 1, item.ID, &dto.UpdateCartItemRequest{Quantity: 3})
	if err != nil {
		t.Fatalf("更新失败: %v", err)
	}
	if updated.UnitPrice != 15 || updated.LinePrice != 45 {
		t.Fatalf("应按新菜价 15 重算为 45，实际单价 %v 小计 %v", updated.UnitPrice, updated.LinePrice)
	}
}

// 不属于自己的行项按不存在处理，不泄露存在性
func TestCartService_OwnershipAsNotFound(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	menu := seedMenuItem(t, db, "Pizza", 1000)

	item, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: menu.ID, Quantity: 1})
	if err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	// 用户 2 操作用户 1 的行项
	if _, err := svc.UpdateItem(context.Background(), 2, item.ID, &dto.UpdateCartItemRequest{Quantity: 5}); KindOf(err) != KindNotFound {
		t.Fatalf("他人行项更新应为 not_found，实际: %v", err)
	}
	if err := svc.RemoveItem(context.Background(), 2, item.ID); KindOf(err) != KindNotFound {
		t.Fatalf("他人行项删除应为 not_found，实际: %v", err)
	}

	// 原行项不受影响
	var count int64
	db.Model(&model.CartItem{}).Where("user_id = ?", 1).Count(&count)
	if count != 1 {
		t.Fatalf("原行项应仍在，实际 %d 行", count)
	}
}

func TestCartService_ListItems(t *testing.T) {
	db := setupCartTestDB(t)
	svc := newCartService(db)
	pizza := seedMenuItem(t, db, "Pizza", 1000)
	salad := seedMenuItem(t, db, "Salad", 1500)

	if _, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: pizza.ID, Quantity: 2}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	if _, err := svc.AddItem(context.Background(), 1, &dto.AddCartItemRequest{MenuItemID: salad.ID, Quantity: 1}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}
	// 其他用户的行项不可见
	if _, err := svc.AddItem(context.Background(), 2, &dto.AddCartItemRequest{MenuItemID: pizza.ID, Quantity: 9}); err != nil {
		t.Fatalf("加购失败: %v", err)
	}

	resp, err := svc.ListItems(context.Background(), 1)
	if err != nil {
		t.Fatalf("查询购物车失败: %v", err)
	}
	if len(resp.Items) != 2 {
		t.Fatalf("应有 2 行，实际 %d 行", len(resp.Items))
	}
	if resp.Total != 35 {
		t.Fatalf("总计应为 35，实际为 %v", resp.Total)
	}
}

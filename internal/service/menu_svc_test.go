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

func setupMenuTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(&model.Category{}, &model.MenuItem{}); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newMenuService(db *gorm.DB) *MenuService {
	return NewMenuService(
		repository.NewCategoryRepository(db),
		repository.NewMenuItemRepository(db),
		NewAuthzService(),
	)
}

func mustCreateCategory(t *testing.T, svc *MenuService, name string) *dto.CategoryItem {
	t.Helper()
	cat, err := svc.CreateCategory(context.Background(), model.RoleManager, &dto.CreateCategoryRequest{
		Slug: name, Name: name,
	})
	if err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return cat
}

// ==================== 单元测试 ====================

func TestMenuService_CreateMenuItem(t *testing.T) {
	db := setupMenuTestDB(t)
	svc := newMenuService(db)
	cat := mustCreateCategory(t, svc, "mains")

	item, err := svc.CreateMenuItem(context.Background(), model.RoleManager, &dto.CreateMenuItemRequest{
		Name:       "Lemon Pasta",
		Price:      12.50,
		CategoryID: cat.ID,
	})
	if err != nil {
		t.Fatalf("创建菜品失败: %v", err)
	}
	if item.Price != 12.50 {
		t.Fatalf("价格应为 12.50，实际为 %v", item.Price)
	}
	if item.CategoryName != "mains" {
		t.Fatalf("分类名应为 mains，实际为 %s", item.CategoryName)
	}
}

func TestMenuService_PriceTooLow(t *testing.T) {
	db := setupMenuTestDB(t)
	svc := newMenuService(db)
	cat := mustCreateCategory(t, svc, "mains")

	_, err := svc.CreateMenuItem(context.Background(), model.RoleManager, &dto.CreateMenuItemRequest{
		Name:       "Too Cheap",
		Price:      4.99,
		CategoryID: cat.ID,
	})
	if err == nil {
		t.Fatal("低于 5 元应当被拒绝")
	}
	if KindOf(err) != KindValidation {
		t.Fatalf("应为 validation 错误，实际为 %s", KindOf(err))
	}
}

func TestMenuService_CustomerCannotMutate(t *testing.T) {
	db := setupMenuTestDB(t)
	svc := newMenuService(db)
	cat := mustCreateCategory(t, svc, "mains")

	_, err := svc.CreateMenuItem(context.Background(), model.RoleCustomer, &dto.CreateMenuItemRequest{
		Name:       "Sneaky Dish",
		Price:      9.00,
		CategoryID: cat.ID,
	})
	if KindOf(err) != KindForbidden {
		t.Fatalf("顾客创建菜品应被拒绝，实际错误: %v", err)
	}
}

func TestMenuService_CategoryNameUnique(t *testing.T) {
	db := setupMenuTestDB(t)
	svc := newMenuService(db)
	mustCreateCategory(t, svc, "desserts")

	_, err := svc.CreateCategory(context.Background(), model.RoleManager, &dto.CreateCategoryRequest{
		Slug: "desserts-2", Name: "desserts",
	})
	if KindOf(err) != KindConflict {
		t.Fatalf("重名分类应为 conflict，实际错误: %v", err)
	}
}

// 任意一串切换之后全表至多一条 featured
func TestMenuService_ItemOfDayExclusive(t *testing.T) {
	db := setupMenuTestDB(t)
	svc := newMenuService(db)
	cat := mustCreateCategory(t, svc, "mains")

	var ids []int64
	for _, name := range []string{"A", "B", "C"} {
		item, err := svc.CreateMenuItem(context.Background(), model.RoleManager, &dto.CreateMenuItemRequest{
			Name: name, Price: 10, CategoryID: cat.ID,
		})
		if err != nil {
			t.Fatalf("创建菜品失败: %v", err)
		}
		ids = append(ids, item.ID)
	}

	// 连续切换
	for _, id := range []int64{ids[0], ids[2], ids[1], ids[2]} {
		if _, err := svc.SetItemOfDay(context.Background(), model.RoleManager, id); err != nil {
			t.Fatalf("设置今日特选失败: %v", err)
		}

		var count int64
		db.Model(&model.MenuItem{}).Where("featured = ?", true).Count(&count)
		if count != 1 {
			t.Fatalf("featured 数量应为 1，实际为 %d", count)
		}
	}

	current, err := svc.GetItemOfDay(context.Background())
	if err != nil {
		t.Fatalf("查询今日特选失败: %v", err)
	}
	if current.ID != ids[2] {
		t.Fatalf("今日特选应为 %d，实际为 %d", ids[2], current.ID)
	}
}

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

func setupOrderTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("连接测试数据库失败: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{}, &model.Category{}, &model.MenuItem{},
		&model.CartItem{}, &model.Order{}, &model.OrderItem{},
	); err != nil {
		t.Fatalf("建表失败: %v", err)
	}
	return db
}

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(
		repository.NewOrderUnitOfWork(db),
		repository.NewOrderRepository(db),
		repository.NewUserRepository(db),
		NewAuthzService(),
	)
}

func seedUser(t *testing.T, db *gorm.DB, username string, role model.UserRole) *model.User {
	t.Helper()
	user := model.User{Username: username, Password: "x", Role: role, IsActive: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return &user
}

// seedCart 给用户落一条购物车行项
func seedCart(t *testing.T, db *gorm.DB, userID int64, unitAmount int64, quantity int) *model.CartItem {
	t.Helper()
	cat := model.Category{Slug: "c", Name: "c"}
	db.FirstOrCreate(&cat, model.Category{Slug: "c"})
	menu := model.MenuItem{Name: "dish", PriceAmount: unitAmount, CategoryID: cat.ID}
	if err := db.Create(&menu).Error; err != nil {
		t.Fatalf("创建菜品失败: %v", err)
	}
	item := model.CartItem{
		UserID:          userID,
		MenuItemID:      menu.ID,
		Quantity:        quantity,
		UnitPriceAmount: unitAmount,
		LinePriceAmount: unitAmount * int64(quantity),
	}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("创建购物车行项失败: %v", err)
	}
	return &item
}

// ==================== 下单 ====================

// 10 元 × 2 + 15 元 × 1 下单 → 总价 35 元、2 个行项、购物车清空
func TestOrderService_Place(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)

	seedCart(t, db, customer.ID, 1000, 2)
	seedCart(t, db, customer.ID, 1500, 1)

	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if order.TotalPrice != 35 {
		t.Fatalf("总价应为 35，实际为 %v", order.TotalPrice)
	}
	if len(order.Items) != 2 {
		t.Fatalf("应有 2 个行项，实际 %d", len(order.Items))
	}
	for _, it := range order.Items {
		if it.MenuItemName == "" {
			t.Fatal("下单响应的行项应带菜品名称")
		}
	}

	// 行小计之和等于总价
	var sum float64
	for _, it := range order.Items {
		sum += it.LinePrice
	}
	if sum != order.TotalPrice {
		t.Fatalf("行小计之和 %v 应等于总价 %v", sum, order.TotalPrice)
	}

	// 购物车已清空
	var cartCount int64
	db.Model(&model.CartItem{}).Where("user_id = ?", customer.ID).Count(&cartCount)
	if cartCount != 0 {
		t.Fatalf("下单后购物车应清空，剩余 %d 行", cartCount)
	}

	// 有且只有一个订单
	var orderCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	if orderCount != 1 {
		t.Fatalf("应只有 1 个订单，实际 %d", orderCount)
	}
}

// 空购物车下单失败且不产生订单
func TestOrderService_PlaceEmptyCart(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)

	_, err := svc.Place(context.Background(), customer.ID)
	if KindOf(err) != KindValidation {
		t.Fatalf("空购物车应为 validation 错误，实际: %v", err)
	}

	var orderCount int64
	db.Model(&model.Order{}).Count(&orderCount)
	if orderCount != 0 {
		t.Fatalf("失败的下单不应留下订单，实际 %d", orderCount)
	}
}

// 购物车已被上一次下单消费后再次下单，视为空购物车
func TestOrderService_PlaceTwice(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)
	seedCart(t, db, customer.ID, 1000, 1)

	if _, err := svc.Place(context.Background(), customer.ID); err != nil {
		t.Fatalf("首次下单失败: %v", err)
	}
	if _, err := svc.Place(context.Background(), customer.ID); KindOf(err) != KindValidation {
		t.Fatalf("二次下单应因购物车为空被拒绝，实际: %v", err)
	}
}

// ==================== 可见范围 ====================

func TestOrderService_ListScoping(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	alice := seedUser(t, db, "alice", model.RoleCustomer)
	bob := seedUser(t, db, "bob", model.RoleCustomer)
	manager := seedUser(t, db, "mgr", model.RoleManager)
	crew := seedUser(t, db, "crew", model.RoleDeliveryCrew)

	seedCart(t, db, alice.ID, 1000, 1)
	seedCart(t, db, bob.ID, 2000, 1)

	aliceOrder, err := svc.Place(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.Place(context.Background(), bob.ID); err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	// alice 的订单指派给 crew
	if _, err := svc.AssignDeliveryCrew(context.Background(), model.RoleManager, aliceOrder.ID, crew.ID); err != nil {
		t.Fatalf("指派失败: %v", err)
	}

	req := &dto.ListOrdersRequest{Page: 1, PageSize: 20}

	// 经理看全部，列表行项同样带菜品名称
	resp, err := svc.List(context.Background(), manager.ID, model.RoleManager, req)
	if err != nil || resp.Total != 2 {
		t.Fatalf("经理应看到 2 单，实际 %v / %v", resp, err)
	}
	for _, o := range resp.List {
		for _, it := range o.Items {
			if it.MenuItemName == "" {
				t.Fatal("列表响应的行项应带菜品名称")
			}
		}
	}

	// 配送员只看指派给自己的
	resp, err = svc.List(context.Background(), crew.ID, model.RoleDeliveryCrew, req)
	if err != nil || resp.Total != 1 {
		t.Fatalf("配送员应看到 1 单，实际 %v / %v", resp, err)
	}

	// 顾客只看自己的
	resp, err = svc.List(context.Background(), alice.ID, model.RoleCustomer, req)
	if err != nil || resp.Total != 1 {
		t.Fatalf("顾客应看到 1 单，实际 %v / %v", resp, err)
	}

	// 顾客看不到别人的订单详情
	if _, err := svc.Get(context.Background(), bob.ID, model.RoleCustomer, aliceOrder.ID); KindOf(err) != KindNotFound {
		t.Fatalf("他人订单详情应为 not_found，实际: %v", err)
	}
}

// ==================== 生命周期 ====================

// 指派非配送员 → conflict，订单不变
func TestOrderService_AssignNonCrewRejected(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)
	outsider := seedUser(t, db, "bob", model.RoleCustomer)

	seedCart(t, db, customer.ID, 1000, 1)
	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	_, err = svc.AssignDeliveryCrew(context.Background(), model.RoleManager, order.ID, outsider.ID)
	if KindOf(err) != KindConflict {
		t.Fatalf("指派非配送员应为 conflict，实际: %v", err)
	}

	var stored model.Order
	db.First(&stored, order.ID)
	if stored.DeliveryCrewID != nil {
		t.Fatal("失败的指派不应写入 delivery_crew")
	}
}

// 配送员只能标记指派给自己的订单
func TestOrderService_MarkDelivered(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)
	crew := seedUser(t, db, "crew", model.RoleDeliveryCrew)
	other := seedUser(t, db, "crew2", model.RoleDeliveryCrew)

	seedCart(t, db, customer.ID, 1000, 1)
	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.AssignDeliveryCrew(context.Background(), model.RoleManager, order.ID, crew.ID); err != nil {
		t.Fatalf("指派失败: %v", err)
	}

	// 别的配送员操作 → not_found，状态不变
	if _, err := svc.MarkDelivered(context.Background(), other.ID, model.RoleDeliveryCrew, order.ID); KindOf(err) != KindNotFound {
		t.Fatalf("非指派配送员应得 not_found，实际: %v", err)
	}
	var stored model.Order
	db.First(&stored, order.ID)
	if stored.Status {
		t.Fatal("失败的标记不应改状态")
	}

	// 被指派的配送员操作 → 成功
	resp, err := svc.MarkDelivered(context.Background(), crew.ID, model.RoleDeliveryCrew, order.ID)
	if err != nil {
		t.Fatalf("标记送达失败: %v", err)
	}
	if !resp.Status {
		t.Fatal("标记后状态应为 true")
	}
}

// 配送员更新 status 以外的字段被整体拒绝
func TestOrderService_CrewFieldRestriction(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)
	crew := seedUser(t, db, "crew", model.RoleDeliveryCrew)

	seedCart(t, db, customer.ID, 1000, 1)
	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}
	if _, err := svc.AssignDeliveryCrew(context.Background(), model.RoleManager, order.ID, crew.ID); err != nil {
		t.Fatalf("指派失败: %v", err)
	}

	status := true
	price := 99.0
	_, err = svc.Update(context.Background(), crew.ID, model.RoleDeliveryCrew, order.ID, &dto.UpdateOrderRequest{
		Status:     &status,
		TotalPrice: &price,
	})
	if KindOf(err) != KindForbidden {
		t.Fatalf("夹带其他字段应为 forbidden，实际: %v", err)
	}

	// 订单未被改动
	var stored model.Order
	db.First(&stored, order.ID)
	if stored.Status || stored.TotalPriceAmount != 1000 {
		t.Fatal("被拒绝的更新不应有任何副作用")
	}

	// 单独更新 status 则成功
	resp, err := svc.Update(context.Background(), crew.ID, model.RoleDeliveryCrew, order.ID, &dto.UpdateOrderRequest{
		Status: &status,
	})
	if err != nil {
		t.Fatalf("更新状态失败: %v", err)
	}
	if !resp.Status {
		t.Fatal("状态应更新为 true")
	}
}

// 顾客永远不能更新订单
func TestOrderService_CustomerCannotUpdate(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)

	seedCart(t, db, customer.ID, 1000, 1)
	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	status := true
	_, err = svc.Update(context.Background(), customer.ID, model.RoleCustomer, order.ID, &dto.UpdateOrderRequest{Status: &status})
	if KindOf(err) != KindForbidden {
		t.Fatalf("顾客更新订单应为 forbidden，实际: %v", err)
	}
}

// 经理可改任意组合，总价最低 1 元
func TestOrderService_ManagerUpdate(t *testing.T) {
	db := setupOrderTestDB(t)
	svc := newOrderService(db)
	customer := seedUser(t, db, "alice", model.RoleCustomer)
	crew := seedUser(t, db, "crew", model.RoleDeliveryCrew)
	manager := seedUser(t, db, "mgr", model.RoleManager)

	seedCart(t, db, customer.ID, 1000, 1)
	order, err := svc.Place(context.Background(), customer.ID)
	if err != nil {
		t.Fatalf("下单失败: %v", err)
	}

	lowPrice := 0.5
	_, err = svc.Update(context.Background(), manager.ID, model.RoleManager, order.ID, &dto.UpdateOrderRequest{TotalPrice: &lowPrice})
	if KindOf(err) != KindValidation {
		t.Fatalf("总价低于 1 元应为 validation，实际: %v", err)
	}

	status := true
	price := 42.0
	resp, err := svc.Update(context.Background(), manager.ID, model.RoleManager, order.ID, &dto.UpdateOrderRequest{
		DeliveryCrewID: &crew.ID,
		Status:         &status,
		TotalPrice:     &price,
	})
	if err != nil {
		t.Fatalf("经理更新失败: %v", err)
	}
	if resp.DeliveryCrewID == nil || *resp.DeliveryCrewID != crew.ID || !resp.Status || resp.TotalPrice != 42 {
		t.Fatalf("经理更新未全部生效: %+v", resp)
	}
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/controller"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/model"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/repository"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/router"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/service"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/task"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/pkg/database"
)

func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. 初始化依赖
	deps := initDependencies(db)

	// 3. 启动定时任务
	cleanupTask := initTasks(deps)

	// 4. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 5. 启动服务
	startServer(r, cleanupTask)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User      repository.UserRepository
	Category  repository.CategoryRepository
	MenuItem  repository.MenuItemRepository
	Cart      repository.CartRepository
	Order     repository.OrderRepository
	OrderUow  *repository.OrderUnitOfWork
	NotifyLog repository.NotifyLogRepository
}

// Services 服务集合
type Services struct {
	Authz  *service.AuthzService
	User   *service.UserService
	Menu   *service.MenuService
	Cart   *service.CartService
	Order  *service.OrderService
	Notify *service.NotifyService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=lemon_admin password=1234 dbname=little_lemon port=5432 sslmode=disable")

	db, err := database.InitDB(dsn,
		// 账号
		&model.User{},
		// 菜单
		&model.Category{}, &model.MenuItem{},
		// 购物车 & 订单
		&model.CartItem{}, &model.Order{}, &model.OrderItem{},
		// 回调日志
		&model.NotifyLog{},
	)
	if err != nil {
		log.Fatalf("数据库初始化失败: %v", err)
	}
	return db
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- JWT 配置 --------
	jwtCfg := middleware.DefaultJWTConfig()
	jwtCfg.SecretKey = getEnv("JWT_SECRET", jwtCfg.SecretKey)
	middleware.SetJWTConfig(jwtCfg)

	// -------- Repo 层 --------
	repos := &Repositories{
		User:      repository.NewUserRepository(db),
		Category:  repository.NewCategoryRepository(db),
		MenuItem:  repository.NewMenuItemRepository(db),
		Cart:      repository.NewCartRepository(db),
		Order:     repository.NewOrderRepository(db),
		OrderUow:  repository.NewOrderUnitOfWork(db),
		NotifyLog: repository.NewNotifyLogRepository(db),
	}

	// -------- Service 层 --------
	authz := service.NewAuthzService()

	notifyCfg := service.DefaultNotifyConfig()
	notifyCfg.WebhookURL = getEnv("WEBHOOK_URL", "")

	services := &Services{
		Authz:  authz,
		User:   service.NewUserService(repos.User, authz),
		Menu:   service.NewMenuService(repos.Category, repos.MenuItem, authz),
		Cart:   service.NewCartService(repos.Cart, repos.MenuItem),
		Order:  service.NewOrderService(repos.OrderUow, repos.Order, repos.User, authz),
		Notify: service.NewNotifyService(notifyCfg, repos.NotifyLog),
	}
	services.Order.SetNotifier(services.Notify)

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Auth:  controller.NewAuthController(services.User),
		Group: controller.NewGroupController(services.User),
		Menu:  controller.NewMenuController(services.Menu),
		Cart:  controller.NewCartController(services.Cart),
		Order: controller.NewOrderController(services.Order),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务，返回任务句柄供停机时回收
func initTasks(deps *Dependencies) *task.CartCleanupTask {
	ttlDays, _ := strconv.Atoi(getEnv("CART_TTL_DAYS", "30"))

	cleanupTask := task.NewCartCleanupTask(deps.Repos.Cart, ttlDays)
	cleanupTask.Start()

	log.Println("定时任务已启动")
	return cleanupTask
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine, cleanupTask *task.CartCleanupTask) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	// HTTP 停完再停定时任务
	cleanupTask.Stop()

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

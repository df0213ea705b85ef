package router

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/controller"
	"github.com/muhammad-awais-web-dev/Meta-Backend-API-Project/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	Auth  *controller.AuthController
	Group *controller.GroupController
	Menu  *controller.MenuController
	Cart  *controller.CartController
	Order *controller.OrderController
}

// SetupRouter 注册所有路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.Default()

	// Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/register", c.Auth.Register)
			auth.POST("/login", c.Auth.Login)
			auth.POST("/refresh", c.Auth.RefreshToken)
		}

		// 菜单浏览对匿名开放，带身份则按用户限流，匿名按 IP 限流
		throttle := middleware.Throttle(200*time.Millisecond, time.Second)
		public := api.Group("", middleware.OptionalJWTAuth(), throttle)
		{
			public.GET("/categories", c.Menu.ListCategories)
			public.GET("/menu-items", c.Menu.ListMenuItems)
			public.GET("/menu-items/:id", c.Menu.GetMenuItem)
			public.GET("/item-of-day", c.Menu.GetItemOfDay)
		}

		// 以下都要求认证，角色判定在服务层统一做
		authed := api.Group("", middleware.JWTAuth())
		{
			// 菜单维护（仅经理）
			authed.POST("/categories", c.Menu.CreateCategory)
			authed.POST("/menu-items", c.Menu.CreateMenuItem)
			authed.PUT("/menu-items/:id", c.Menu.UpdateMenuItem)
			authed.PATCH("/menu-items/:id", c.Menu.UpdateMenuItem)
			authed.DELETE("/menu-items/:id", c.Menu.DeleteMenuItem)
			authed.PUT("/menu-items/:id/item-of-day", c.Menu.SetItemOfDay)

			// 角色分组
			manager := authed.Group("/groups/manager/users")
			{
				manager.GET("", c.Group.ListManagers)
				manager.POST("", c.Group.AssignManager)
				manager.DELETE("/:id", c.Group.RemoveManager)
			}
			crew := authed.Group("/groups/delivery-crew/users")
			{
				crew.GET("", c.Group.ListDeliveryCrew)
				crew.POST("", c.Group.AssignDeliveryCrew)
				crew.DELETE("/:id", c.Group.RemoveDeliveryCrew)
			}

			// 购物车
			cart := authed.Group("/cart/menu-items")
			{
				cart.GET("", c.Cart.List)
				cart.POST("", c.Cart.Add)
				cart.PATCH("/:id", c.Cart.Update)
				cart.DELETE("/:id", c.Cart.Remove)
			}

			// 订单
			orders := authed.Group("/orders")
			{
				orders.GET("", c.Order.List)
				orders.POST("", c.Order.Place)
				orders.GET("/:id", c.Order.Get)
				orders.PUT("/:id", c.Order.Update)
				orders.PATCH("/:id", c.Order.Update)
				orders.DELETE("/:id", c.Order.Delete)
				orders.POST("/:id/assign-delivery", c.Order.AssignDelivery)
				orders.POST("/:id/delivered", c.Order.MarkDelivered)
			}
		}
	}

	return r
}

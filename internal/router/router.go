package router

import (
	"github.com/gin-gonic/gin"

	"digistore_v1/internal/controller"
	"digistore_v1/internal/middleware"
)

// Controllers 控制器集合
type Controllers struct {
	User    *controller.UserController
	Catalog *controller.CatalogController
	Cart    *controller.CartController
	Order   *controller.OrderController
	Review  *controller.ReviewController
}

// SetupRouter 注册所有路由
func SetupRouter(tm *middleware.TokenManager, ctls *Controllers) *gin.Engine {
	r := gin.Default()

	requireAuth := middleware.RequireAuth(tm)
	optionalAuth := middleware.OptionalAuth(tm)

	api := r.Group("/api")
	{
		// users 用户组
		users := api.Group("/users")
		{
			users.POST("/register", ctls.User.Register)
			users.POST("/login", ctls.User.Login)

			users.GET("", requireAuth, ctls.User.List)
			users.GET("/me", requireAuth, ctls.User.Me)
			users.POST("/me/password", requireAuth, ctls.User.ChangePassword)
			users.GET("/:id", requireAuth, ctls.User.GetByID)
			users.PUT("/:id", requireAuth, ctls.User.Update)
			users.PATCH("/:id", requireAuth, ctls.User.Patch)
			users.DELETE("/:id", requireAuth, ctls.User.Delete)
		}

		// store 商店组
		store := api.Group("/store")
		{
			// 目录（公开读）
			store.GET("/categories", ctls.Catalog.ListCategories)
			store.POST("/categories", requireAuth, ctls.Catalog.CreateCategory)
			store.GET("/products", ctls.Catalog.ListProducts)
			store.GET("/products/:id", ctls.Catalog.GetProduct)
			store.POST("/products", requireAuth, ctls.Catalog.CreateProduct)
			store.PUT("/products/:id", requireAuth, ctls.Catalog.UpdateProduct)
			store.DELETE("/products/:id", requireAuth, ctls.Catalog.DeleteProduct)

			// 购物车（匿名可用，带会话令牌）
			store.GET("/cart", optionalAuth, ctls.Cart.List)
			store.POST("/cart", optionalAuth, ctls.Cart.Add)
			store.DELETE("/cart", optionalAuth, ctls.Cart.Clear)
			store.DELETE("/cart/:item_id", optionalAuth, ctls.Cart.Remove)

			// 订单与支付（必须登录）
			store.POST("/orders", requireAuth, ctls.Order.Create)
			store.GET("/orders", requireAuth, ctls.Order.List)
			store.GET("/orders/:id", requireAuth, ctls.Order.GetByID)
			store.POST("/orders/:id/pay", requireAuth, ctls.Order.Pay)
			store.POST("/orders/:id/cancel", requireAuth, ctls.Order.Cancel)

			// 购买记录与内容（必须登录）
			store.GET("/purchases", requireAuth, ctls.Order.ListPurchases)
			store.GET("/purchases/:order_id/content", requireAuth, ctls.Order.GetContent)

			// 评价
			store.GET("/products/:id/reviews", ctls.Review.ListByProduct)
			store.POST("/products/:id/reviews", requireAuth, ctls.Review.Create)
			store.PUT("/reviews/:id", requireAuth, ctls.Review.Update)
			store.DELETE("/reviews/:id", requireAuth, ctls.Review.Delete)
		}
	}

	return r
}

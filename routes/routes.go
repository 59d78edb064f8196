package routes

import (
	"astrokart/controllers"
	"astrokart/middleware"

	"github.com/gin-gonic/gin"
)

// Handlers bundles every controller the router mounts.
type Handlers struct {
	Auth     *controllers.AuthController
	Products *controllers.ProductController
	Home     *controllers.HomeController
	Orders   *controllers.OrderController
	Reviews  *controllers.ReviewController
	Wishlist *controllers.WishlistController

	AdminProducts *controllers.AdminProductController
	AdminOrders   *controllers.AdminOrderController
	AdminUsers    *controllers.AdminUserController
	AdminHome     *controllers.AdminHomeController
}

func RegisterRoutes(r *gin.Engine, h Handlers, jwtSecret []byte, blacklist middleware.TokenBlacklist) {
	api := r.Group("/api")
	{
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
		api.POST("/logout", h.Auth.Logout)

		api.GET("/home", h.Home.Get)
		api.GET("/products", h.Products.List)
		api.GET("/products/:id", h.Products.Get)
		api.GET("/reviews/:productId", h.Reviews.ListByProduct)

		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware(jwtSecret, blacklist))
		{
			protected.GET("/auth/me", h.Auth.Me)

			protected.POST("/orders", h.Orders.Create)
			protected.GET("/orders", h.Orders.List)
			protected.GET("/orders/:id", h.Orders.Get)
			protected.PUT("/orders/:id/cancel", h.Orders.Cancel)

			protected.POST("/wishlist/add", h.Wishlist.Add)
			protected.GET("/wishlist", h.Wishlist.List)
			protected.DELETE("/wishlist/:productId", h.Wishlist.Remove)

			protected.POST("/reviews/add", h.Reviews.Add)

			admin := protected.Group("/admin")
			admin.Use(middleware.AdminMiddleware())
			{
				admin.GET("/products", h.AdminProducts.List)
				admin.POST("/products", h.AdminProducts.Create)
				admin.PUT("/products/:id", h.AdminProducts.Update)
				admin.DELETE("/products/:id", h.AdminProducts.Delete)
				admin.PATCH("/products/:id/stock", h.AdminProducts.PatchStock)
				admin.PATCH("/products/:id/featured", h.AdminProducts.PatchFeatured)

				admin.GET("/orders", h.AdminOrders.List)
				admin.GET("/orders/:id", h.AdminOrders.Get)
				admin.PUT("/orders/:id/status", h.AdminOrders.UpdateStatus)

				admin.GET("/users", h.AdminUsers.List)
				admin.PUT("/users/:id", h.AdminUsers.UpdateRole)
				admin.DELETE("/users/:id", h.AdminUsers.Delete)

				admin.GET("/home", h.AdminHome.Get)
				admin.POST("/home", h.AdminHome.Update)
			}
		}
	}
}

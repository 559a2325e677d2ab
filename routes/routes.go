package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/misha4322/ps-server/controllers"
	"github.com/misha4322/ps-server/middlewares"
)

// Deps carries the wired controllers plus what the middleware needs.
type Deps struct {
	JWTSecret string

	Auth      *controllers.AuthController
	Component *controllers.ComponentController
	Build     *controllers.BuildController
	Favorite  *controllers.FavoriteController
	Cart      *controllers.CartController
	Order     *controllers.OrderController
	Admin     *controllers.AdminController
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	api := r.Group("/api")

	// Auth (public)
	a := api.Group("/auth")
	{
		a.POST("/register", d.Auth.Register)
		a.POST("/login", d.Auth.Login)
		a.POST("/refresh", d.Auth.Refresh)
	}

	// Auth (protected)
	aAuth := a.Group("", middlewares.AuthMiddleware(d.JWTSecret))
	{
		aAuth.GET("/check", d.Auth.Check)
		aAuth.PUT("/password", d.Auth.ChangePassword)
	}

	// Catalog (public)
	api.GET("/components", d.Component.List)
	api.GET("/components/:id", d.Component.Get)
	api.GET("/builds", d.Build.List)
	api.GET("/builds/:id/components", d.Build.Components)

	// Custom builds (any signed-in user)
	api.POST("/builds", middlewares.AuthMiddleware(d.JWTSecret), d.Build.Create)

	// Basket
	basket := api.Group("/basket", middlewares.AuthMiddleware(d.JWTSecret))
	{
		basket.GET("", d.Cart.Get)
		basket.POST("/sync", d.Cart.Sync)
		basket.POST("/add", d.Cart.Add)
		basket.PUT("/:id", d.Cart.UpdateQuantity)
		basket.DELETE("/:id", d.Cart.Remove)
	}

	// Favorites
	fav := api.Group("/favorites", middlewares.AuthMiddleware(d.JWTSecret))
	{
		fav.GET("", d.Favorite.List)
		fav.POST("", d.Favorite.Add)
		fav.DELETE("/:buildId", d.Favorite.Remove)
	}

	// Orders (user)
	orders := api.Group("/orders", middlewares.AuthMiddleware(d.JWTSecret))
	{
		orders.POST("", d.Order.Create)
		orders.GET("", d.Order.List)
		orders.PUT("/:id/complete", d.Order.Complete)
	}

	// Admin (admin only)
	admin := api.Group("/admin", middlewares.AuthMiddleware(d.JWTSecret, "admin"))
	{
		admin.GET("/orders", d.Admin.ListOrders)
		admin.GET("/orders/:id", d.Admin.GetOrder)
		admin.GET("/feed", d.Admin.OrderFeed)
		admin.GET("/export/orders", d.Admin.ExportOrders)
	}
}

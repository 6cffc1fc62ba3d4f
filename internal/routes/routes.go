package routes

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"

	"storefront-api/internal/auth"
	"storefront-api/internal/cache"
	"storefront-api/internal/config"
	"storefront-api/internal/handlers"
	"storefront-api/internal/middleware"
	"storefront-api/internal/repository"
	"storefront-api/internal/service"
)

func RegisterRoutes(router *gin.Engine, db *mongo.Database, store *cache.Cache, cfg *config.Config) {
	productRepo := repository.NewProductRepository(db)
	couponRepo := repository.NewCouponRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	userRepo := repository.NewUserRepository(db)
	categoryRepo := repository.NewCategoryRepository(db)

	tokens := auth.NewTokenService(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	orderService := service.NewOrderService(productRepo, couponRepo, orderRepo, userRepo)

	authHandler := handlers.NewAuthHandler(tokens, userRepo, cfg.IsProduction())
	productHandler := handlers.NewProductHandler(productRepo, store)
	couponHandler := handlers.NewCouponHandler(orderService, couponRepo)
	paymentHandler := handlers.NewPaymentHandler(orderService, orderRepo)
	cartHandler := handlers.NewCartHandler(userRepo, productRepo)
	categoryHandler := handlers.NewCategoryHandler(categoryRepo)
	analyticsHandler := handlers.NewAnalyticsHandler(userRepo, productRepo, orderRepo)

	protect := middleware.ProtectRoute(tokens, userRepo)
	admin := middleware.AdminRoute()

	api := router.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
		authGroup.POST("/logout", authHandler.Logout)
		authGroup.POST("/refresh-token", authHandler.RefreshToken)
		authGroup.GET("/profile", protect, authHandler.GetProfile)
		authGroup.PUT("/profile", protect, authHandler.UpdateProfile)
	}

	products := api.Group("/products")
	{
		products.GET("", protect, admin, productHandler.GetAllProducts)
		products.GET("/featured", productHandler.GetFeaturedProducts)
		products.GET("/recommended", productHandler.GetRecommendedProducts)
		products.GET("/category/:category", productHandler.GetProductsByCategory)
		products.POST("", protect, admin, productHandler.CreateProduct)
		products.PATCH("/:id/toggle-featured", protect, admin, productHandler.ToggleFeaturedProduct)
		products.DELETE("/:id", protect, admin, productHandler.DeleteProduct)
	}

	cart := api.Group("/cart", protect)
	{
		cart.GET("", cartHandler.GetCartProducts)
		cart.POST("", cartHandler.AddToCart)
		cart.PUT("/:id", cartHandler.UpdateQuantity)
		cart.DELETE("", cartHandler.RemoveFromCart)
	}

	coupons := api.Group("/coupons")
	{
		coupons.GET("", protect, couponHandler.GetActiveCoupons)
		coupons.POST("/validate", protect, couponHandler.ValidateCoupon)
		coupons.GET("/all", protect, admin, couponHandler.GetAllCoupons)
		coupons.POST("", protect, admin, couponHandler.CreateCoupon)
		coupons.DELETE("/:id", protect, admin, couponHandler.DeleteCoupon)
		coupons.PATCH("/:id/toggle", protect, admin, couponHandler.ToggleCouponStatus)
	}

	payments := api.Group("/payments", protect)
	{
		payments.POST("/create-order", paymentHandler.CreateOrder)
		payments.GET("/orders", paymentHandler.GetOrderHistory)
		payments.GET("/orders/all", admin, paymentHandler.GetAllOrders)
		payments.PATCH("/orders/:orderId/status", admin, paymentHandler.UpdateOrderStatus)
		payments.DELETE("/orders/:orderId", admin, paymentHandler.DeleteOrder)
	}

	api.GET("/analytics", protect, admin, analyticsHandler.GetAnalytics)

	categories := api.Group("/categories")
	{
		categories.GET("", categoryHandler.GetAllCategories)
		categories.POST("", protect, admin, categoryHandler.CreateCategory)
		categories.PUT("/:id", protect, admin, categoryHandler.UpdateCategory)
		categories.DELETE("/:id", protect, admin, categoryHandler.DeleteCategory)
	}
}

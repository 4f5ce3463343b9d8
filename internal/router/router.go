package router

import (
	"fmt"

	"github.com/ice-club/storefront/internal/cache"
	"github.com/ice-club/storefront/internal/config"
	"github.com/ice-club/storefront/internal/http/handlers/admin"
	"github.com/ice-club/storefront/internal/http/handlers/public"
	"github.com/ice-club/storefront/internal/logger"
	"github.com/ice-club/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 装配全部路由与中间件
func SetupRouter(cfg *config.Config, container *provider.Container) *gin.Engine {
	if logger.L == nil {
		logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}

	gin.SetMode(resolveGinMode(cfg.Server.Mode))

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.L))
	r.Use(CORSMiddleware(cfg.CORS))

	publicHandler := public.New(container)
	adminHandler := admin.New(container)

	authMiddleware := JWTAuthMiddleware(cfg.JWT.SecretKey, container.UserRepo)
	adminAccessMiddleware := AdminAccessMiddleware(container.AuthzService)

	loginRateRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", cfg.Redis.Prefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		publicGroup := apiV1.Group("/public")
		{
			publicGroup.GET("/config", publicHandler.GetConfig)
			publicGroup.GET("/categories", publicHandler.GetCategories)
			publicGroup.GET("/products", publicHandler.GetProducts)
			publicGroup.GET("/products/:id", publicHandler.GetProduct)
			publicGroup.GET("/offers", publicHandler.GetOffers)
			publicGroup.POST("/contact", publicHandler.SubmitContact)
			publicGroup.GET("/captcha/image", publicHandler.GetImageCaptcha)
		}

		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/signup", publicHandler.Signup)
			authGroup.POST("/login",
				RateLimitMiddleware(cache.Client(), loginRateRule, KeyByIPAndJSONField("username")),
				publicHandler.Login,
			)
		}

		userGroup := apiV1.Group("")
		userGroup.Use(authMiddleware)
		{
			userGroup.GET("/me", publicHandler.Me)
			userGroup.POST("/auth/logout", publicHandler.Logout)
			userGroup.GET("/me/orders", publicHandler.ListMyOrders)
			userGroup.GET("/me/orders/:id", publicHandler.GetMyOrder)

			userGroup.GET("/cart", publicHandler.GetCart)
			userGroup.GET("/cart/count", publicHandler.GetCartCount)
			userGroup.POST("/cart/items", publicHandler.AddCartItem)
			userGroup.PUT("/cart/items", publicHandler.UpdateCartItem)
			userGroup.DELETE("/cart/items", publicHandler.RemoveCartItem)

			userGroup.POST("/checkout", publicHandler.Checkout)
		}

		adminGroup := apiV1.Group("/admin")
		adminGroup.Use(authMiddleware, adminAccessMiddleware)
		{
			adminGroup.GET("/dashboard", adminHandler.AdminGetDashboard)

			adminGroup.GET("/orders", adminHandler.AdminListOrders)
			adminGroup.GET("/orders/:id", adminHandler.AdminGetOrder)
			adminGroup.PATCH("/orders/:id/status", adminHandler.AdminUpdateOrderStatus)

			adminGroup.GET("/products", adminHandler.AdminListProducts)
			adminGroup.POST("/products", adminHandler.AdminCreateProduct)
			adminGroup.GET("/products/:id", adminHandler.AdminGetProduct)
			adminGroup.PUT("/products/:id", adminHandler.AdminUpdateProduct)
			adminGroup.DELETE("/products/:id", adminHandler.AdminDeleteProduct)
			adminGroup.POST("/products/:id/variants", adminHandler.AdminCreateVariant)

			adminGroup.PUT("/variants/:id", adminHandler.AdminUpdateVariant)
			adminGroup.DELETE("/variants/:id", adminHandler.AdminDeleteVariant)
			adminGroup.POST("/variants/:id/sizes", adminHandler.AdminCreateSize)

			adminGroup.PUT("/sizes/:id", adminHandler.AdminUpdateSize)
			adminGroup.DELETE("/sizes/:id", adminHandler.AdminDeleteSize)

			adminGroup.GET("/categories", adminHandler.AdminListCategories)
			adminGroup.POST("/categories", adminHandler.AdminCreateCategory)
			adminGroup.PUT("/categories/:id", adminHandler.AdminUpdateCategory)
			adminGroup.DELETE("/categories/:id", adminHandler.AdminDeleteCategory)

			adminGroup.GET("/messages", adminHandler.AdminListMessages)
			adminGroup.GET("/messages/:id", adminHandler.AdminGetMessage)

			adminGroup.GET("/authz/roles", adminHandler.AdminListAuthzRoles)
			adminGroup.POST("/authz/roles", adminHandler.AdminCreateAuthzRole)
			adminGroup.GET("/authz/roles/:role/policies", adminHandler.AdminGetRolePolicies)
			adminGroup.POST("/authz/policies", adminHandler.AdminGrantRolePolicy)
			adminGroup.DELETE("/authz/policies", adminHandler.AdminRevokeRolePolicy)
			adminGroup.GET("/authz/users/:id/roles", adminHandler.AdminGetUserRoles)
			adminGroup.PUT("/authz/users/:id/roles", adminHandler.AdminSetUserRoles)
		}
	}

	return r
}

func resolveGinMode(mode string) string {
	switch mode {
	case "release", "prod", "production":
		return gin.ReleaseMode
	case "test":
		return gin.TestMode
	default:
		return gin.DebugMode
	}
}

package router

import (
	"fmt"
	"strings"

	"github.com/giftgalore/api/internal/cache"
	"github.com/giftgalore/api/internal/config"
	"github.com/giftgalore/api/internal/constants"
	adminhandlers "github.com/giftgalore/api/internal/http/handlers/admin"
	publichandlers "github.com/giftgalore/api/internal/http/handlers/public"
	"github.com/giftgalore/api/internal/logger"
	"github.com/giftgalore/api/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter builds the HTTP surface: storefront, customer and back-office
// route groups plus the raw address dataset and uploaded files.
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	log := logger.L
	if log == nil {
		log = logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	}
	r := gin.New()

	publicHandler := publichandlers.New(c)
	adminHandler := adminhandlers.New(c)

	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = constants.RedisPrefixDefault
	}
	redisClient := cache.Client()
	loginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}
	adminLoginRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:admin_login", redisPrefix),
		WindowSeconds: cfg.Security.LoginRateLimit.WindowSeconds,
		MaxRequests:   cfg.Security.LoginRateLimit.MaxAttempts,
		BlockSeconds:  cfg.Security.LoginRateLimit.BlockSeconds,
		Message:       "too many login attempts",
	}

	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(log))
	r.Use(CORSMiddleware(cfg.CORS))

	// Uploaded images and the raw address dataset.
	r.Static("/uploads", "./uploads")
	r.GET("/addressData.json", publicHandler.GetAddressData)

	api := r.Group("/api")
	{
		// Storefront, no authentication.
		api.GET("/products", publicHandler.GetProducts)
		api.GET("/products/:id", publicHandler.GetProduct)
		api.GET("/products/slug/:slug", publicHandler.GetProductBySlug)
		api.GET("/categories", publicHandler.GetCategories)
		api.GET("/categories/:id", publicHandler.GetCategory)
		api.GET("/orders/track/:order_no", publicHandler.TrackOrder)

		address := api.Group("/address")
		{
			address.GET("/states", publicHandler.GetStates)
			address.GET("/districts", publicHandler.GetDistricts)
			address.GET("/areas", publicHandler.GetAreas)
			address.GET("/lookup/:pincode", publicHandler.LookupPincode)
			address.GET("/validate", publicHandler.ValidatePincode)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/register", publicHandler.Register)
			auth.POST("/login", RateLimitMiddleware(redisClient, loginRule, KeyByIPAndJSONField("email")), publicHandler.Login)
			auth.GET("/check-admin/:email", publicHandler.CheckAdmin)
			auth.GET("/captcha", publicHandler.GetCaptcha)
		}

		// Customer routes, user JWT required.
		user := api.Group("")
		user.Use(UserJWTAuthMiddleware(cfg.UserJWT.SecretKey, c.UserRepo))
		{
			user.GET("/logout", publicHandler.Logout)
			user.GET("/me", publicHandler.GetProfile)
			user.PUT("/me/profile", publicHandler.UpdateProfile)

			user.GET("/cart", publicHandler.GetCart)
			user.POST("/cart/items", publicHandler.AddCartItem)
			user.PUT("/cart/items/:product_id", publicHandler.UpdateCartItem)
			user.DELETE("/cart/items/:product_id", publicHandler.DeleteCartItem)
			user.DELETE("/cart", publicHandler.ClearCart)

			user.GET("/wishlist", publicHandler.GetWishlist)
			user.POST("/wishlist/items", publicHandler.AddWishlistItem)
			user.DELETE("/wishlist/items/:product_id", publicHandler.DeleteWishlistItem)
			user.POST("/wishlist/:product_id/move-to-cart", publicHandler.MoveWishlistItemToCart)

			user.POST("/orders", publicHandler.Checkout)
			user.POST("/orders/quote-delivery", publicHandler.QuoteDelivery)
			user.GET("/orders/my", publicHandler.GetMyOrders)
			user.GET("/orders/my/:id", publicHandler.GetMyOrder)
		}

		// Back-office login, no admin JWT yet.
		api.POST("/admin/login", RateLimitMiddleware(redisClient, adminLoginRule, KeyByIP), adminHandler.AdminLogin)
		api.GET("/admin/captcha", adminHandler.GetAdminCaptcha)

		// Session routes every authenticated admin may hit, RBAC exempt.
		adminSession := api.Group("/admin")
		adminSession.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo))
		{
			adminSession.POST("/logout", adminHandler.AdminLogout)
			adminSession.PUT("/password", adminHandler.ChangePassword)
		}

		// Back-office routes, admin JWT plus RBAC.
		authorized := api.Group("")
		authorized.Use(JWTAuthMiddleware(cfg.JWT.SecretKey, c.AdminRepo), AdminRBACMiddleware(c.AuthzService))
		{
			authorized.POST("/products", adminHandler.CreateProduct)
			authorized.PUT("/products/:id", adminHandler.UpdateProduct)
			authorized.DELETE("/products/:id", adminHandler.DeleteProduct)

			authorized.POST("/categories", adminHandler.CreateCategory)
			authorized.PUT("/categories/:id", adminHandler.UpdateCategory)
			authorized.DELETE("/categories/:id", adminHandler.DeleteCategory)

			authorized.GET("/orders", adminHandler.GetAdminOrders)
			authorized.GET("/orders/:id", adminHandler.GetAdminOrder)
			authorized.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
			authorized.PUT("/orders/:id/additional-info", adminHandler.SetOrderAdditionalInfo)
			authorized.DELETE("/orders/:id/additional-info", adminHandler.ClearOrderAdditionalInfo)
			authorized.GET("/orders/:id/tracking", adminHandler.GetOrderTracking)
			authorized.DELETE("/orders/clear-all", adminHandler.ClearAllOrders)

			authorized.POST("/upload", adminHandler.UploadFile)

			admin := authorized.Group("/admin")
			{
				admin.GET("/products", adminHandler.GetAdminProducts)
				admin.GET("/products/:id", adminHandler.GetAdminProduct)
				admin.GET("/categories", adminHandler.GetAdminCategories)

				admin.GET("/customers", adminHandler.GetAdminCustomers)
				admin.PUT("/customers/:id/status", adminHandler.SetCustomerStatus)

				admin.GET("/dashboard", adminHandler.GetDashboardOverview)
				admin.GET("/dashboard/trends", adminHandler.GetDashboardTrends)

				admin.GET("/authz/roles", adminHandler.GetRoles)
				admin.POST("/authz/policies", adminHandler.GrantRolePolicy)
				admin.GET("/authz/admins/:id/roles", adminHandler.GetAdminRoles)
				admin.PUT("/authz/admins/:id/roles", adminHandler.SetAdminRoles)
			}
		}
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	return r
}

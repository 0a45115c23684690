package main

import (
	"context"                          // context package is needed for Redis operations
	"log"                              // log package is needed for logging
	"cloudkitchen/internal/api"        // Custom package for API handlers
	"cloudkitchen/internal/config"     // Custom package for configuration
	"cloudkitchen/internal/domain"     // Custom package for domain types
	"cloudkitchen/internal/middleware" // Custom package for middleware
	"cloudkitchen/internal/upstream"   // Custom package for the upstream API client

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the gateway
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup the upstream CloudKitchen API client
	ck := upstream.New(cfg.APIBaseURL, cfg.HTTPTimeout)

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Public auth routes (pass-through to the upstream)
	auth := r.Group("/auth")
	auth.POST("/signup", api.SignupHandler(ck))                        // Account creation endpoint
	auth.POST("/login", api.LoginHandler(ck))                          // Login endpoint
	auth.POST("/forgot-password", api.ForgotPasswordHandler(ck))       // Password reset start endpoint
	auth.POST("/verify-otp", api.VerifyOTPHandler(ck))                 // OTP verification endpoint
	auth.POST("/reset-password", api.ResetPasswordHandler(ck))         // Password reset completion endpoint
	auth.POST("/verify-email", api.VerifyEmailHandler(ck))             // Email verification endpoint
	auth.POST("/resend-verification", api.ResendVerificationHandler(ck)) // Verification resend endpoint

	// Public catalog routes (Redis-cached)
	r.GET("/menu", api.MenuHandler(ck, redisClient, cfg.CacheTTL))             // Browsable menu endpoint
	r.GET("/categories", api.CategoriesHandler(ck, redisClient, cfg.CacheTTL)) // Active categories endpoint

	// Authenticated routes (session resolved once per request)
	user := r.Group("/")
	user.Use(middleware.SessionMiddleware(ck))
	user.GET("/me", api.MeHandler())            // Who-am-I endpoint
	user.PATCH("/me", api.UpdateMeHandler(ck))  // Profile update endpoint

	user.GET("/cart", api.GetCartHandler(ck))                     // Cart view endpoint
	user.POST("/cart/items", api.AddCartItemHandler(ck))          // Add cart item endpoint
	user.PATCH("/cart/items/:id", api.UpdateCartItemHandler(ck))  // Update cart line endpoint
	user.DELETE("/cart/items/:id", api.RemoveCartItemHandler(ck)) // Remove cart line endpoint

	user.GET("/checkout/quote", api.QuoteHandler(ck)) // Pricing preview endpoint
	user.POST("/checkout", api.CheckoutHandler(ck))   // Order placement endpoint

	user.GET("/addresses", api.ListAddressesHandler(ck))                    // Address list endpoint
	user.POST("/addresses", api.CreateAddressHandler(ck))                   // Address creation endpoint
	user.PUT("/addresses/:id", api.UpdateAddressHandler(ck))                // Address update endpoint
	user.DELETE("/addresses/:id", api.DeleteAddressHandler(ck))             // Address deletion endpoint
	user.PATCH("/addresses/:id/default", api.SetDefaultAddressHandler(ck))  // Default address endpoint

	user.GET("/orders", api.ListOrdersHandler(ck))              // Order list endpoint
	user.GET("/orders/:id", api.GetOrderHandler(ck))            // Order detail endpoint
	user.POST("/orders/:id/cancel", api.CancelOrderHandler(ck)) // Order cancellation endpoint

	// Staff routes (admin or owner)
	staff := r.Group("/")
	staff.Use(middleware.SessionMiddleware(ck), middleware.RequireRole(domain.RoleAdmin, domain.RoleOwner))
	staff.POST("/orders/:id/status", api.UpdateOrderStatusHandler(ck)) // Order status transition endpoint

	admin := r.Group("/admin")
	admin.Use(middleware.SessionMiddleware(ck), middleware.RequireRole(domain.RoleAdmin, domain.RoleOwner))
	admin.GET("/menus", api.AdminListMenusHandler(ck))                    // Full menu listing endpoint
	admin.POST("/menus", api.CreateMenuHandler(ck, redisClient))          // Menu item creation endpoint
	admin.PATCH("/menus/:id", api.UpdateMenuHandler(ck, redisClient))     // Menu item update endpoint
	admin.DELETE("/menus/:id", api.DeleteMenuHandler(ck, redisClient))    // Menu item deletion endpoint
	admin.GET("/categories", api.AdminListCategoriesHandler(ck))                     // Full category listing endpoint
	admin.POST("/categories", api.CreateCategoryHandler(ck, redisClient))            // Category creation endpoint
	admin.PUT("/categories/:id", api.UpdateCategoryHandler(ck, redisClient))         // Category rename/toggle endpoint
	admin.DELETE("/categories/:id", api.DeleteCategoryHandler(ck, redisClient))      // Category deletion endpoint
	admin.POST("/categories/:id/move", api.MoveCategoryHandler(ck, redisClient))     // Category move endpoint
	admin.POST("/categories/reorder", api.ReorderCategoriesHandler(ck, redisClient)) // Full reorder endpoint

	// Owner routes (owner only)
	owner := r.Group("/owner")
	owner.Use(middleware.SessionMiddleware(ck), middleware.RequireRole(domain.RoleOwner))
	owner.GET("/users", api.ListUsersHandler(ck))           // All accounts endpoint
	owner.GET("/users/search", api.SearchUsersHandler(ck))  // Account search endpoint
	owner.POST("/admins", api.PromoteAdminHandler(ck))      // Promotion endpoint
	owner.DELETE("/admins/:id", api.DemoteAdminHandler(ck)) // Demotion endpoint

	log.Println("Gateway running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                         // Start the server on port cfg.AppPort
}

package main

import (
	"context"                            // context package is needed for Redis operations
	"log"                                // log package is needed for logging
	"micro_delivery/internal/api"        // Custom package for API handlers
	"micro_delivery/internal/config"     // Custom package for configuration
	"micro_delivery/internal/middleware" // Custom package for middleware
	"micro_delivery/internal/repository" // GORM-backed record store
	"micro_delivery/internal/service"    // Core workflows

	"github.com/gin-contrib/cors"  // CORS middleware
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err)
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPass,
		DB:       cfg.RedisDB,
	})

	// Test Redis connection
	if _, err := redisClient.Ping(context.Background()).Result(); err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Wire the core services over the record store
	store := repository.New(db)
	wallets := service.NewWalletService(store)
	orders := service.NewOrderService(store, cfg.CutoffHour)

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default()

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// CORS for browser clients
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Authorization"},
	}))

	// Public routes
	r.GET("/", api.RootHandler())                                    // Running banner
	r.GET("/health", api.HealthHandler(db, redisClient))             // Connectivity diagnostics
	r.GET("/api/config", api.ConfigHandler(cfg.CutoffHour))          // Cutoff and expected delivery date
	r.POST("/api/auth/register", api.RegisterHandler(db))            // Registration endpoint
	r.POST("/api/auth/login", api.LoginHandler(db, cfg.JWTSecret))   // Login endpoint
	r.GET("/api/products", api.ListProductsHandler(db, redisClient)) // Public catalog

	// Authenticated routes (protected by JWT)
	authGroup := r.Group("/api", middleware.JWTAuthMiddleware(cfg.JWTSecret))
	authGroup.GET("/auth/me", api.MeHandler(db))                                // Caller profile
	authGroup.GET("/wallet/balance", api.BalanceHandler(wallets, redisClient))  // Derived wallet balance
	authGroup.POST("/wallet/topup", api.TopUpHandler(wallets, redisClient))     // Wallet credit
	authGroup.POST("/orders/place", api.PlaceOrderHandler(orders, redisClient)) // Order placement workflow

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/api", middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.AdminOnlyMiddleware(db))
	adminGroup.POST("/products", api.CreateProductHandler(db, redisClient))       // Catalog create
	adminGroup.PUT("/products/:id", api.UpdateProductHandler(db, redisClient))    // Catalog partial update
	adminGroup.DELETE("/products/:id", api.DeleteProductHandler(db, redisClient)) // Catalog delete
	adminGroup.GET("/orders/summary-next-morning", api.SummaryHandler(orders))    // Fulfillment summary
	adminGroup.GET("/admin/users", api.ListUsersHandler(db, redisClient))
	adminGroup.GET("/admin/transactions", api.ListTransactionsHandler(db, redisClient))

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}

package main

import (
	"net/http"
	"os"
	"time"

	"restaurant_backend/internal/config"
	"restaurant_backend/internal/database"
	"restaurant_backend/internal/handlers"
	"restaurant_backend/internal/redis"
	"restaurant_backend/internal/repository"
	"restaurant_backend/internal/services"
	"restaurant_backend/pkg/imagehost"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load configuration
	cfg := config.Load()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		logger.WithError(err).Fatal("Failed to connect to database")
	}
	logger.Info("Database connected and migrated")

	// Redis is optional; without it the dashboard recomputes on every call
	var statsCache services.StatsCache
	if cfg.RedisURL != "" {
		redisClient, err := redis.Initialize(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Redis unavailable, stats cache disabled")
		} else {
			statsCache = redisClient
			defer redisClient.Close()
		}
	}

	// Remote asset host, with local disk as the fallback
	var uploader services.Uploader
	if cfg.ImageHostConfigured() {
		uploader = imagehost.NewClient(cfg.ImageHostURL, cfg.ImageHostAPIKey, cfg.ImageHostAPISecret)
		logger.Info("Image host configured, uploads go remote")
	} else {
		if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
			logger.WithError(err).Fatal("Failed to create upload directory")
		}
		logger.WithField("dir", cfg.UploadDir).Info("Image host not configured, storing uploads on disk")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	authService := services.NewAuthService(
		userRepo,
		cfg.JWTSecret,
		time.Duration(cfg.JWTExpiryHours)*time.Hour,
		cfg.AdminSecret,
	)
	productService := services.NewProductService(productRepo, uploader, cfg.UploadDir, logger)
	orderService := services.NewOrderService(orderRepo)
	dashboardService := services.NewDashboardService(
		productRepo,
		orderRepo,
		userRepo,
		statsCache,
		time.Duration(cfg.StatsCacheTTL)*time.Second,
		logger,
	)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, logger)
	productHandler := handlers.NewProductHandler(productService, logger)
	orderHandler := handlers.NewOrderHandler(orderService, logger)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService, logger)

	// Setup routes
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(handlers.RequestLogger(logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))
	router.Use(handlers.SecurityHeaders())
	router.Use(handlers.NoCache())

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	auth := router.Group("/api/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.GET("/me", handlers.Auth(authService), authHandler.Me)
	}

	dashboard := router.Group("/api/dashboard")
	{
		dashboard.GET("/stats", dashboardHandler.Stats)
		dashboard.GET("/users", handlers.Auth(authService), handlers.RequireAdmin(), dashboardHandler.Users)
	}

	orders := router.Group("/api/orders")
	{
		orders.GET("", orderHandler.List)
		orders.POST("", orderHandler.Create)
		orders.PUT("/:id", orderHandler.UpdateStatus)
		orders.DELETE("/:id", orderHandler.Delete)
	}

	products := router.Group("/products")
	{
		products.GET("", productHandler.List)
		products.POST("", productHandler.Create)
		products.PUT("/:id", productHandler.Update)
		products.DELETE("/:id", productHandler.Delete)
	}

	// Locally stored product images
	router.Static("/uploads", cfg.UploadDir)

	// Start server
	logger.WithField("port", cfg.ServerPort).Info("Server starting")
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		logger.WithError(err).Fatal("Failed to start server")
	}
}

func corsConfig(allowedOrigins []string) cors.Config {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 1 && allowedOrigins[0] == "*" {
		corsCfg.AllowOriginFunc = func(string) bool { return true }
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	return corsCfg
}

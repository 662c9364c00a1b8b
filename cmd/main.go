package main

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/muhsinkalodi/qmexai-ecom/internal/handler"
	"github.com/muhsinkalodi/qmexai-ecom/internal/middleware"
	"github.com/muhsinkalodi/qmexai-ecom/internal/service"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/config"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/database"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/jwtutil"
	"github.com/muhsinkalodi/qmexai-ecom/pkg/logger"
	"github.com/muhsinkalodi/qmexai-ecom/prometheus"
)

func main() {
	// Load configuration from .env file and environment variables
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger with config
	logger.InitLogger(cfg)
	log := logger.GetLogger()
	log.Info("Starting qmexai e-commerce service...", cfg.LogConfig()...)

	// Initialize database
	if err := database.InitDB(cfg); err != nil {
		log.Fatal("Failed to initialize database", zap.Error(err))
	}
	log.Info("Database connection established")

	// Initialize Prometheus metrics
	prometheus.InitMetrics(cfg)
	log.Info("Prometheus metrics initialized")

	// Wire services: the token issuer is built once from config and passed
	// explicitly, nothing reads signing settings from globals
	issuer := jwtutil.New(&cfg.JWT)
	db := database.GetDB()

	authService := service.NewAuthService(db, issuer)
	catalogService := service.NewCatalogService(db)
	orderService := service.NewOrderService(db)
	reportService := service.NewReportService(db)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(authService, orderService, reportService)

	requireAuth := middleware.Auth(authService)
	requireAdmin := middleware.AdminOnly(authService)
	loginLimiter := middleware.NewRateLimiter(rate.Limit(5), 10)

	// Initialize Echo framework
	e := echo.New()

	// Apply global middleware - order matters
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(middleware.RequestIDMiddleware)
	e.Use(logger.Middleware(log))
	e.Use(prometheus.MetricsMiddleware())

	// Public routes - no authentication required
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", handler.MetricsHandler)

	// Authentication routes
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, loginLimiter.Limit)
	auth.POST("/login", authHandler.Login, loginLimiter.Limit)
	auth.GET("/me", authHandler.Me, requireAuth)
	auth.PUT("/me", authHandler.UpdateProfile, requireAuth)

	// Catalog routes - reads are public, mutations are admin-only
	products := e.Group("/products")
	products.GET("", productHandler.ListProducts)
	products.GET("/:id", productHandler.GetProduct)
	products.POST("", productHandler.CreateProduct, requireAuth, requireAdmin)
	products.PUT("/:id", productHandler.UpdateProduct, requireAuth, requireAdmin)
	products.DELETE("/:id", productHandler.DeleteProduct, requireAuth, requireAdmin)
	products.POST("/bulk-discount", productHandler.ApplyBulkDiscount, requireAuth, requireAdmin)
	products.POST("/seed", productHandler.SeedProducts, requireAuth, requireAdmin)

	// Order routes - all require authentication
	orders := e.Group("/orders", requireAuth)
	orders.POST("/checkout", orderHandler.Checkout)
	orders.GET("/my-orders", orderHandler.MyOrders)
	orders.GET("/:id", orderHandler.GetOrder)

	// Admin routes
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/orders", adminHandler.ListOrders)
	admin.GET("/orders/:id", adminHandler.ViewOrder)
	admin.GET("/orders/:id/invoice", adminHandler.Invoice)
	admin.GET("/stats", adminHandler.Stats)

	// Start server
	port := cfg.Server.Port
	log.Info("Starting server", zap.String("port", port))
	if err := e.Start(":" + port); err != nil {
		log.Fatal("Failed to start server", zap.Error(err))
	}
}

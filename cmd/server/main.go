package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	mappingapp "github.com/buffmasterbran/pirani-connector/internal/application/mapping"
	syncapp "github.com/buffmasterbran/pirani-connector/internal/application/sync"
	"github.com/buffmasterbran/pirani-connector/internal/domain/shared"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/cache"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/config"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/logger"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/persistence"
	"github.com/buffmasterbran/pirani-connector/internal/infrastructure/shopify"
	"github.com/buffmasterbran/pirani-connector/internal/interfaces/http/handler"
	"github.com/buffmasterbran/pirani-connector/internal/interfaces/http/middleware"
	"github.com/buffmasterbran/pirani-connector/internal/interfaces/http/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
		Service:    cfg.App.Name,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = logger.Sync(log)
	}()

	log.Info("Starting Pirani Connector",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Create GORM logger backed by zap
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	// Initialize database connection with custom logger
	db, err := persistence.NewDatabaseWithCustomLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	// Initialize repositories
	mappingRepo := persistence.NewGormMappingRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	payoutRepo := persistence.NewGormPayoutRepository(db.DB)

	// Initialize the storefront platform adapter
	platform, err := shopify.NewAdapter(&shopify.Config{
		ShopDomain:    cfg.Storefront.ShopDomain,
		AccessToken:   cfg.Storefront.AccessToken,
		WebhookSecret: cfg.Storefront.WebhookSecret,
		APIVersion:    cfg.Storefront.APIVersion,
		PageSize:      cfg.Storefront.PageSize,
		Timeout:       cfg.Storefront.Timeout,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize storefront adapter", zap.Error(err))
	}

	// Webhook delivery dedup store, Redis backed with in-memory fallback
	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis,
		cache.WithLogger(log),
	).CreateStore()
	if err != nil {
		log.Fatal("Failed to initialize idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	// Initialize application services
	mappingService := mappingapp.NewMappingService(mappingRepo, orderRepo, log)
	orderService := syncapp.NewOrderService(platform, orderRepo, idempotencyStore, log).
		WithIdempotencyConfig(shared.IdempotencyConfig{TTL: cfg.Webhook.DedupTTL, Enabled: true})
	payoutService := syncapp.NewPayoutService(platform, payoutRepo, payoutRepo, log)
	webhookService := syncapp.NewWebhookService(platform, log)

	// Initialize handlers
	mappingHandler := handler.NewMappingHandler(mappingService)
	orderHandler := handler.NewOrderHandler(orderService)
	payoutHandler := handler.NewPayoutHandler(payoutService)
	webhookHandler := handler.NewWebhookHandler(orderService, webhookService)
	systemHandler := handler.NewSystemHandler()

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Register custom validators
	middleware.SetupValidator()

	// Create Gin engine without default middleware
	engine := gin.New()

	// Configure trusted proxies
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		log.Fatal("Failed to set trusted proxies", zap.Error(err))
	}

	// Middleware ordering:
	// 1. RequestID - Generate/propagate request ID
	// 2. Recovery - Catch panics
	// 3. Logger - Log requests
	// 4. Security - Add security headers
	// 5. CORS - Handle cross-origin requests
	// 6. BodyLimit - Limit request body size
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	// Configure CORS from config
	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Body size limit
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Health check endpoint (outside API versioning)
	engine.GET("/health", healthHandler(db, log))

	// Setup API routes using router
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))

	// Mapping domain (categories, entries, defaults, validation report)
	mappingRoutes := router.NewDomainGroup("mappings", "/mappings")
	mappingRoutes.GET("/categories", mappingHandler.ListCategories)
	mappingRoutes.GET("/validation-report", mappingHandler.ValidationReport)
	mappingRoutes.GET("/entries/:id", mappingHandler.GetEntry)
	mappingRoutes.PATCH("/entries/:id", mappingHandler.UpdateEntry)
	mappingRoutes.DELETE("/entries/:id", mappingHandler.DeleteEntry)
	mappingRoutes.GET("/:category/entries", mappingHandler.ListEntries)
	mappingRoutes.POST("/:category/entries", mappingHandler.CreateEntry)
	mappingRoutes.GET("/:category/default", mappingHandler.GetDefault)
	mappingRoutes.PUT("/:category/default", mappingHandler.SetDefault)

	// Order domain (imports, lookup, ERP deposit references)
	orderRoutes := router.NewDomainGroup("orders", "/orders")
	orderRoutes.POST("/import", orderHandler.Import)
	orderRoutes.GET("", orderHandler.List)
	orderRoutes.GET("/lookup", orderHandler.Lookup)
	orderRoutes.GET("/:id", orderHandler.GetByID)
	orderRoutes.POST("/:id/deposit", orderHandler.AttachDeposit)

	// Payout domain (imports, settings)
	payoutRoutes := router.NewDomainGroup("payouts", "/payouts")
	payoutRoutes.POST("/import", payoutHandler.Import)
	payoutRoutes.GET("", payoutHandler.List)
	payoutRoutes.GET("/settings", payoutHandler.ListSettings)
	payoutRoutes.POST("/settings", payoutHandler.CreateSetting)
	payoutRoutes.PUT("/settings/:id/value", payoutHandler.UpdateSettingValue)
	payoutRoutes.POST("/settings/:id/revert", payoutHandler.RevertSetting)
	payoutRoutes.GET("/:id", payoutHandler.GetByID)

	// Webhook domain (storefront delivery intake, subscription management)
	webhookRoutes := router.NewDomainGroup("webhooks", "/webhooks")
	webhookRoutes.POST("/orders", webhookHandler.ReceiveOrder)
	webhookRoutes.GET("/subscriptions", webhookHandler.ListSubscriptions)
	webhookRoutes.POST("/subscriptions", webhookHandler.Subscribe)
	webhookRoutes.DELETE("/subscriptions/:id", webhookHandler.Unsubscribe)

	// System routes
	systemRoutes := router.NewDomainGroup("system", "/system")
	systemRoutes.GET("/info", systemHandler.GetSystemInfo)
	systemRoutes.GET("/ping", systemHandler.Ping)

	// Register all domain groups
	r.Register(mappingRoutes).
		Register(orderRoutes).
		Register(payoutRoutes).
		Register(webhookRoutes).
		Register(systemRoutes)

	// Setup routes
	r.Setup()

	// Register the orders/create subscription on the storefront so deliveries
	// start flowing without a manual subscribe call. Failure is logged, not
	// fatal: the subscription can still be created through the API.
	if cfg.Webhook.CallbackAddress != "" {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), cfg.Storefront.Timeout)
			defer cancel()
			address := cfg.Webhook.CallbackAddress + "/api/v1/webhooks/orders"
			if err := webhookService.EnsureOrderSubscription(ctx, address); err != nil {
				log.Warn("Failed to register order webhook subscription",
					zap.String("address", address),
					zap.Error(err))
			}
		}()
	}

	// Create HTTP server with config
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler returns a handler for health check endpoints
func healthHandler(db *persistence.Database, _ *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}

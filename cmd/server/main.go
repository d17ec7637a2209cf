package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	billingapp "github.com/paintdesk/backend/internal/application/billing"
	catalogapp "github.com/paintdesk/backend/internal/application/catalog"
	"github.com/paintdesk/backend/internal/application/export"
	inventoryapp "github.com/paintdesk/backend/internal/application/inventory"
	partnerapp "github.com/paintdesk/backend/internal/application/partner"
	reportapp "github.com/paintdesk/backend/internal/application/report"
	"github.com/paintdesk/backend/internal/infrastructure/auth"
	"github.com/paintdesk/backend/internal/infrastructure/config"
	"github.com/paintdesk/backend/internal/infrastructure/event"
	"github.com/paintdesk/backend/internal/infrastructure/logger"
	"github.com/paintdesk/backend/internal/infrastructure/persistence"
	"github.com/paintdesk/backend/internal/infrastructure/printing"
	"github.com/paintdesk/backend/internal/infrastructure/realtime"
	"github.com/paintdesk/backend/internal/infrastructure/storage"
	"github.com/paintdesk/backend/internal/interfaces/http/handler"
	"github.com/paintdesk/backend/internal/interfaces/http/middleware"
	"github.com/paintdesk/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting PaintDesk backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Database
	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	regularRepo := persistence.NewGormRegularCustomerRepository(db.DB)
	receiptRepo := persistence.NewGormStockReceiptRepository(db.DB)
	movementRepo := persistence.NewGormStockMovementRepository(db.DB)
	billingScope := persistence.NewGormBillingTransactionScope(db.DB)
	inventoryScope := persistence.NewGormInventoryTransactionScope(db.DB)

	// Event bus with optional Redis change notifications
	eventBus := event.NewInMemoryEventBus(log)
	if err := eventBus.Start(context.Background()); err != nil {
		log.Fatal("Failed to start event bus", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = eventBus.Stop(ctx)
	}()

	if cfg.Redis.Enabled {
		notifier, err := realtime.NewRedisChangeNotifier(cfg.Redis, realtime.WithNotifierLogger(log))
		if err != nil {
			log.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		defer func() {
			if err := notifier.Close(); err != nil {
				log.Error("Error closing Redis notifier", zap.Error(err))
			}
		}()
		eventBus.Subscribe(notifier)
		log.Info("Redis change notifications enabled", zap.String("addr", cfg.Redis.Addr()))
	}

	// Object storage for attachments and product images
	var objectStorage interface {
		Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
		Delete(ctx context.Context, key string) error
	}
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ObjectStorage(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		if err := s3Store.EnsureBucket(ctx); err != nil {
			cancel()
			log.Fatal("Failed to ensure storage bucket", zap.Error(err))
		}
		cancel()
		objectStorage = s3Store
		log.Info("Object storage enabled", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		localDir := cfg.Storage.LocalDir
		if localDir == "" {
			localDir = "data/files"
		}
		localStore, err := storage.NewLocalStorage(localDir, "/files")
		if err != nil {
			log.Fatal("Failed to initialize local storage", zap.Error(err))
		}
		objectStorage = localStore
		log.Info("Local file storage enabled", zap.String("dir", localDir))
	}

	// Application services
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, productRepo, customerRepo, billingScope, log)
	invoiceService.SetEventPublisher(eventBus)
	invoiceService.SetAttachmentStorage(objectStorage)

	returnService := billingapp.NewReturnService(invoiceRepo, billingScope, log)
	returnService.SetEventPublisher(eventBus)

	productService := catalogapp.NewProductService(productRepo, log)
	productService.SetEventPublisher(eventBus)
	productService.SetObjectStorage(objectStorage)

	customerService := partnerapp.NewCustomerService(customerRepo, log)
	customerService.SetEventPublisher(eventBus)

	regularService := partnerapp.NewRegularCustomerService(regularRepo, customerRepo)
	eventBus.Subscribe(partnerapp.NewInvoiceLinkHandler(regularService, log))

	stockService := inventoryapp.NewStockService(receiptRepo, movementRepo, productRepo, inventoryScope, log)

	reportService := reportapp.NewReportService(invoiceRepo)
	exporter := export.NewBillHistoryExporter(invoiceRepo)

	// Invoice PDF printing is optional: without a Chrome binary the
	// endpoint reports unavailable instead of failing at startup.
	var printService *export.InvoicePrintService
	if cfg.Printing.Enabled {
		renderer := printing.NewChromedpRenderer(cfg.Printing, log)
		defer renderer.Close()
		printService = export.NewInvoicePrintService(invoiceRepo, renderer, export.ShopProfile{
			Name:    cfg.Shop.Name,
			Address: cfg.Shop.Address,
			Phone:   cfg.Shop.Phone,
			GSTIN:   cfg.Shop.GSTIN,
		})
		log.Info("Invoice PDF printing enabled")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Handlers
	authHandler := handler.NewAuthHandler(jwtService, cfg.Auth)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, returnService, printService, exporter)
	productHandler := handler.NewProductHandler(productService)
	customerHandler := handler.NewCustomerHandler(customerService)
	regularHandler := handler.NewRegularCustomerHandler(regularService)
	inventoryHandler := handler.NewInventoryHandler(stockService)
	reportHandler := handler.NewReportHandler(reportService)

	// HTTP engine and middleware stack
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()
	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", healthHandler(db))

	// Versioned API routes behind JWT authentication
	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Use(middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
		JWTService: jwtService,
		SkipPaths: []string{
			"/api/v1/auth/login",
			"/api/v1/auth/refresh",
		},
		Logger: log,
	}))

	authRoutes := router.NewDomainGroup("auth", "/auth")
	authRoutes.POST("/login", authHandler.Login)
	authRoutes.POST("/refresh", authHandler.Refresh)
	r.Register(authRoutes)

	billingRoutes := router.NewDomainGroup("billing", "/billing")
	billingRoutes.POST("/invoices", invoiceHandler.Create)
	billingRoutes.GET("/invoices", invoiceHandler.List)
	billingRoutes.GET("/invoices/export", invoiceHandler.Export)
	billingRoutes.GET("/invoices/number/:number", invoiceHandler.GetByNumber)
	billingRoutes.GET("/invoices/:id", invoiceHandler.GetByID)
	billingRoutes.DELETE("/invoices/:id", invoiceHandler.Delete)
	billingRoutes.POST("/invoices/:id/items", invoiceHandler.AddItem)
	billingRoutes.PUT("/invoices/:id/items/:item_id", invoiceHandler.UpdateItemQuantity)
	billingRoutes.DELETE("/invoices/:id/items/:item_id", invoiceHandler.RemoveItem)
	billingRoutes.PUT("/invoices/:id/discount", invoiceHandler.ApplyDiscount)
	billingRoutes.PUT("/invoices/:id/mode", invoiceHandler.SetBillingMode)
	billingRoutes.PUT("/invoices/:id/status", invoiceHandler.SetStatus)
	billingRoutes.POST("/invoices/:id/attachment", invoiceHandler.Attach)
	billingRoutes.POST("/invoices/:id/returns", invoiceHandler.ProcessReturn)
	billingRoutes.GET("/invoices/:id/pdf", invoiceHandler.Print)
	r.Register(billingRoutes)

	catalogRoutes := router.NewDomainGroup("catalog", "/catalog")
	catalogRoutes.POST("/products", productHandler.Create)
	catalogRoutes.GET("/products", productHandler.List)
	catalogRoutes.GET("/products/low-stock", productHandler.ListLowStock)
	catalogRoutes.GET("/products/:id", productHandler.GetByID)
	catalogRoutes.PUT("/products/:id", productHandler.Update)
	catalogRoutes.PUT("/products/:id/price", productHandler.ChangePrice)
	catalogRoutes.PUT("/products/:id/gst", productHandler.SetGSTRate)
	catalogRoutes.PUT("/products/:id/low-stock-threshold", productHandler.SetLowStockThreshold)
	catalogRoutes.POST("/products/:id/disable", productHandler.Disable)
	catalogRoutes.POST("/products/:id/enable", productHandler.Enable)
	catalogRoutes.POST("/products/:id/image", productHandler.UploadImage)
	r.Register(catalogRoutes)

	partnerRoutes := router.NewDomainGroup("partner", "/partner")
	partnerRoutes.POST("/customers", customerHandler.Create)
	partnerRoutes.GET("/customers", customerHandler.List)
	partnerRoutes.GET("/customers/:id", customerHandler.GetByID)
	partnerRoutes.PUT("/customers/:id", customerHandler.Update)
	partnerRoutes.DELETE("/customers/:id", customerHandler.Delete)
	partnerRoutes.POST("/regulars", regularHandler.Promote)
	partnerRoutes.GET("/regulars", regularHandler.List)
	partnerRoutes.GET("/regulars/:id", regularHandler.GetByID)
	partnerRoutes.GET("/regulars/by-customer/:customer_id", regularHandler.GetByCustomerID)
	partnerRoutes.GET("/regulars/by-customer/:customer_id/rates/:product_id", regularHandler.GetRate)
	partnerRoutes.PUT("/regulars/:id/rates", regularHandler.SetRate)
	partnerRoutes.DELETE("/regulars/:id/rates/:product_id", regularHandler.RemoveRate)
	r.Register(partnerRoutes)

	inventoryRoutes := router.NewDomainGroup("inventory", "/inventory")
	inventoryRoutes.POST("/receipts", inventoryHandler.ReceiveStock)
	inventoryRoutes.POST("/adjustments", inventoryHandler.AdjustStock)
	inventoryRoutes.GET("/receipts/:product_id", inventoryHandler.ListReceipts)
	inventoryRoutes.GET("/movements", inventoryHandler.ListMovements)
	r.Register(inventoryRoutes)

	reportRoutes := router.NewDomainGroup("report", "/reports")
	reportRoutes.GET("/dashboard", reportHandler.Dashboard)
	reportRoutes.GET("/sales-trend", reportHandler.SalesTrend)
	reportRoutes.GET("/receivables", reportHandler.Receivables)
	reportRoutes.GET("/top-products", reportHandler.TopProducts)
	r.Register(reportRoutes)

	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

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

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			reqLog := logger.GetGinLogger(c)
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

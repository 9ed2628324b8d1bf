package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	basketapp "github.com/lewisgroup/storefront/internal/application/basket"
	catalogapp "github.com/lewisgroup/storefront/internal/application/catalog"
	identityapp "github.com/lewisgroup/storefront/internal/application/identity"
	orderapp "github.com/lewisgroup/storefront/internal/application/order"
	reportapp "github.com/lewisgroup/storefront/internal/application/report"
	"github.com/lewisgroup/storefront/internal/infrastructure/auth"
	"github.com/lewisgroup/storefront/internal/infrastructure/config"
	"github.com/lewisgroup/storefront/internal/infrastructure/email"
	"github.com/lewisgroup/storefront/internal/infrastructure/logger"
	"github.com/lewisgroup/storefront/internal/infrastructure/payment"
	"github.com/lewisgroup/storefront/internal/infrastructure/persistence"
	"github.com/lewisgroup/storefront/internal/infrastructure/storage"
	"github.com/lewisgroup/storefront/internal/infrastructure/telemetry"
	"github.com/lewisgroup/storefront/internal/interfaces/http/handler"
	"github.com/lewisgroup/storefront/internal/interfaces/http/middleware"
	"github.com/lewisgroup/storefront/internal/interfaces/http/router"
	"go.uber.org/zap"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

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
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting storefront backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	// Tracing (no-op provider when disabled)
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), cfg.Telemetry, log)
	if err != nil {
		log.Fatal("Failed to initialize tracer provider", zap.Error(err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(shutdownCtx); err != nil {
			log.Error("Error shutting down tracer provider", zap.Error(err))
		}
	}()

	// Database connection with zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Repositories
	productRepo := persistence.NewGormProductRepository(db.DB)
	basketRepo := persistence.NewGormBasketRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	userRepo := persistence.NewGormUserRepository(db.DB)

	if cfg.Store.SeedEnabled {
		if err := persistence.Seed(context.Background(), userRepo, productRepo, log); err != nil {
			log.Fatal("Failed to seed store data", zap.Error(err))
		}
	}

	// Token blacklist: Redis-backed when configured, in-process otherwise
	var blacklist auth.TokenBlacklist
	if cfg.Redis.Enabled {
		redisBlacklist, err := auth.NewRedisTokenBlacklist(auth.RedisTokenBlacklistConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal("Failed to connect to Redis token blacklist", zap.Error(err))
		}
		defer func() {
			if err := redisBlacklist.Close(); err != nil {
				log.Error("Error closing Redis token blacklist", zap.Error(err))
			}
		}()
		blacklist = redisBlacklist
		log.Info("Token blacklist backed by Redis",
			zap.String("host", cfg.Redis.Host), zap.Int("port", cfg.Redis.Port))
	} else {
		blacklist = auth.NewInMemoryTokenBlacklist()
		log.Warn("Token blacklist is in-process only; revoked tokens survive in other instances")
	}

	jwtService := auth.NewJWTService(cfg.JWT)

	// Product image storage: S3-compatible bucket when configured, local stub otherwise
	var imageStore catalogapp.ImageStore
	if cfg.Storage.Enabled {
		s3Store, err := storage.NewS3ImageStore(&cfg.Storage)
		if err != nil {
			log.Fatal("Failed to initialize image storage", zap.Error(err))
		}
		imageStore = s3Store
		log.Info("Product images stored in S3", zap.String("bucket", cfg.Storage.Bucket))
	} else {
		imageStore = storage.NewStubImageStore()
		log.Warn("Object storage disabled; product image uploads are discarded")
	}

	// Order confirmation mail
	var mailer orderapp.Mailer
	if cfg.Email.Enabled {
		mailer = email.NewSMTPMailer(&cfg.Email, log)
	} else {
		mailer = email.NewNoopMailer(log)
	}

	payments := payment.NewLocalIntentProvider(log)

	// Application services
	productService := catalogapp.NewProductService(productRepo, imageStore, cfg.Store.BestSellersLimit, log)
	basketService := basketapp.NewBasketService(basketRepo, productRepo, log)
	orderService := orderapp.NewOrderService(
		orderRepo, basketRepo, productRepo, userRepo,
		db, payments, mailer, cfg.Store.InstallmentRate, log,
	)
	authService := identityapp.NewAuthService(userRepo, basketRepo, jwtService, blacklist, log)
	reportService := reportapp.NewReportService(orderRepo, productRepo, cfg.Store.ReportWindowDays, log)

	// Set Gin mode based on environment
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

	// Middleware stack, outermost first: request ID, panic recovery, request
	// logging, security headers, CORS, tracing, body limit, rate limiting
	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())

	corsConfig := middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	engine.Use(middleware.Tracing(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))

	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	if cfg.HTTP.RateLimitEnabled {
		rateLimiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRequests, cfg.HTTP.RateLimitWindow)
		engine.Use(middleware.RateLimit(rateLimiter))
		log.Info("Rate limiting enabled",
			zap.Int("requests", cfg.HTTP.RateLimitRequests),
			zap.Duration("window", cfg.HTTP.RateLimitWindow),
		)
	}

	// HTTP handlers
	authMiddleware := middleware.NewAuthMiddleware(jwtService, blacklist, log)
	systemHandler := handler.NewSystemHandler(db, version)
	productHandler := handler.NewProductHandler(productService, authMiddleware)
	basketHandler := handler.NewBasketHandler(basketService, authMiddleware, cfg.Cookie)
	orderHandler := handler.NewOrderHandler(orderService, authMiddleware, cfg.Cookie)
	authHandler := handler.NewAuthHandler(authService, authMiddleware, cfg.Cookie)
	reportHandler := handler.NewReportHandler(reportService, authMiddleware)

	router.NewRouter(engine).
		Register(systemHandler).
		Register(productHandler).
		Register(basketHandler).
		Register(orderHandler).
		Register(authHandler).
		Register(reportHandler).
		RegisterFunc(func(rg *gin.RouterGroup) {
			orderHandler.RegisterAdminRoutes(rg.Group("/admin"))
		}).
		Setup()

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

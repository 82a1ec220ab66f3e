package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"

	"infocomm/internal/caching"
	"infocomm/internal/common"
	"infocomm/internal/config"
	"infocomm/internal/handlers"
	"infocomm/internal/inventory"
	"infocomm/internal/jobs"
	"infocomm/internal/logging"
	appmiddleware "infocomm/internal/middleware"
	"infocomm/internal/mockdata"
	"infocomm/internal/repositories"
	"infocomm/internal/services"
	"infocomm/internal/session"
	"infocomm/pkg/database"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.New(cfg.Log)

	if cfg.Auth.JWTSecret == "" {
		cfg.Auth.JWTSecret = random.String(32)
		slog.Warn("JWT_SECRET not set, using a generated secret; sessions will not survive a restart")
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Postgres.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	cacheSvc := caching.NewRedisCacheService(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)

	minioSvc, err := services.NewMinioService(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL)
	if err != nil {
		slog.Error("failed to initialize object storage", "error", err)
		os.Exit(1)
	}
	if err := minioSvc.EnsureBucketExists(ctx, cfg.Minio.Bucket); err != nil {
		slog.Warn("could not ensure image bucket exists", "bucket", cfg.Minio.Bucket, "error", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	alertRepo := repositories.NewAlertRepo(pool)
	productImageRepo := repositories.NewProductImageRepo(pool)

	// Core query engine
	classifier := inventory.NewClassifier(cfg.Stock.LowStockThreshold)
	engine := inventory.NewEngine(classifier)

	// Services
	authSvc := services.NewAuthService(userRepo, cacheSvc, cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL, cfg.Auth.RefreshTokenTTL)
	alertSvc := services.NewAlertService(alertRepo, productRepo, classifier)
	productSvc := services.NewProductService(productRepo, productImageRepo, alertSvc, minioSvc, cacheSvc, cfg.Minio.Bucket)
	inventorySvc := services.NewInventoryService(productRepo, alertSvc, cacheSvc, engine)

	// Session store, persisted in Redis across restarts
	store := session.NewStore(authSvc, cacheSvc)
	if err := store.Restore(ctx); err != nil {
		slog.Warn("session restore failed, starting unauthenticated", "error", err)
	}

	if cfg.SeedDemoData {
		if err := mockdata.Seed(ctx, userRepo, productRepo); err != nil {
			slog.Error("failed to seed demo data", "error", err)
			os.Exit(1)
		}
		slog.Info("demo data seeded")
	}

	// Background jobs
	scheduler, err := jobs.NewScheduler(alertSvc, cfg.Stock.AlertScanInterval)
	if err != nil {
		slog.Error("failed to create job scheduler", "error", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			slog.Warn("scheduler shutdown failed", "error", err)
		}
	}()

	// Handlers
	authHandlers := handlers.NewAuthHandlers(store, authSvc, cacheSvc)
	inventoryHandlers := handlers.NewInventoryHandlers(inventorySvc)
	productHandlers := handlers.NewProductHandlers(productSvc, minioSvc, cfg.Minio.Bucket)
	alertHandlers := handlers.NewAlertHandlers(alertSvc)
	userHandlers := handlers.NewUserHandlers(userRepo)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	e := echo.New()
	e.HideBanner = true
	e.Validator = common.NewRequestValidator()

	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Use(echoMiddleware.RemoveTrailingSlash())

	// Probes, no auth
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/live", healthHandlers.LivenessCheck)

	v1 := e.Group("/v1")

	auth := v1.Group("/auth")
	auth.POST("/login", authHandlers.Login)
	auth.POST("/logout", authHandlers.Logout)
	auth.POST("/refresh", authHandlers.Refresh)
	auth.GET("/session", authHandlers.Session)
	auth.POST("/session/dismiss-error", authHandlers.DismissError)

	// Routes for any authenticated user
	protected := v1.Group("")
	protected.Use(echojwt.WithConfig(appmiddleware.JWTConfig(cfg.Auth.JWTSecret)))
	protected.Use(appmiddleware.SessionFromClaims())

	protected.GET("/me", authHandlers.Me)
	protected.GET("/inventory", inventoryHandlers.Browse)
	protected.GET("/inventory/summary", inventoryHandlers.Summary)
	protected.GET("/categories", inventoryHandlers.Categories)
	protected.GET("/alerts", alertHandlers.Recent)
	protected.GET("/products/:id", productHandlers.Get)
	protected.GET("/products/:id/images", productHandlers.ListImages)

	// Catalog writes and account listing are admin-only
	admin := protected.Group("")
	admin.Use(appmiddleware.RequireRole(session.RoleAdmin))

	admin.POST("/products", productHandlers.Create)
	admin.PUT("/products/:id", productHandlers.Update)
	admin.DELETE("/products/:id", productHandlers.Delete)
	admin.POST("/products/:id/images", productHandlers.UploadImage)
	admin.GET("/users", userHandlers.List)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("server starting", "addr", addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
	slog.Info("server stopped")
}

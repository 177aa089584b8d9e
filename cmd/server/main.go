package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/stitchpoint/orderdesk/internal/config"
	"github.com/stitchpoint/orderdesk/internal/handler"
	"github.com/stitchpoint/orderdesk/internal/middleware"
	"github.com/stitchpoint/orderdesk/internal/model/entity"
	"github.com/stitchpoint/orderdesk/internal/repository"
	"github.com/stitchpoint/orderdesk/internal/service"
	"github.com/stitchpoint/orderdesk/internal/sse"
	"github.com/stitchpoint/orderdesk/internal/store"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting orderdesk service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	rdb := initRedis(cfg.Redis)

	repos := repository.NewRepositories(db)
	st := store.NewStore(repos, zapLogger)

	// The dashboard is unusable without a snapshot; refuse to start on a
	// failed initial load.
	if err := st.LoadAll(context.Background()); err != nil {
		zapLogger.Fatal("Failed to load initial snapshot", zap.Error(err))
	}

	hub := sse.NewHub(zapLogger)
	services := service.NewServices(st, rdb, hub, cfg, zapLogger)
	handlers := handler.NewHandlers(services, st, hub, cfg, zapLogger)

	subCtx, stopSub := context.WithCancel(context.Background())
	defer stopSub()
	go services.Notification.Subscribe(subCtx)

	if err := services.Storage.EnsureBuckets(context.Background()); err != nil {
		zapLogger.Warn("Failed to prepare storage buckets", zap.Error(err))
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/v1/notifications/stream"})))

	registerRoutes(router, handlers, cfg)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")
	stopSub()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Surfaces gorm.ErrDuplicatedKey; order-code collision retry
		// depends on it.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&entity.SalesCoordinator{},
		&entity.ProductCategory{},
		&entity.ProductName{},
		&entity.Color{},
		&entity.Order{},
	); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	v1 := r.Group("/api/v1")
	{
		v1.POST("/auth/login", h.Auth.Login)

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.GET("/catalog", h.Catalog.Get)

			orders := authorized.Group("/orders")
			{
				orders.GET("", h.Order.List)
				orders.POST("", h.Order.Create)
				orders.GET("/:id", h.Order.Get)
				orders.PUT("/:id", h.Order.Update)
				orders.POST("/:id/files", h.Order.UploadFiles)
				orders.DELETE("/:id/files", h.Order.DeleteFile)
			}

			dashboard := authorized.Group("/dashboard")
			{
				dashboard.GET("/stats", h.Dashboard.Stats)
				dashboard.GET("/recent-activity", h.Dashboard.RecentActivity)
				dashboard.GET("/priority-distribution", h.Dashboard.PriorityDistribution)
				dashboard.GET("/monthly", h.Dashboard.MonthlyTimeSeries)
				dashboard.GET("/order-types", h.Dashboard.OrderTypeDistribution)
				dashboard.GET("/top-customers", h.Dashboard.TopCustomers)
			}

			coordinators := authorized.Group("/coordinators")
			{
				coordinators.GET("", h.Coordinator.List)
				coordinators.POST("", h.Coordinator.Create)
				coordinators.PUT("/:id", h.Coordinator.Update)
				coordinators.GET("/performance", h.Coordinator.Performance)
			}

			customers := authorized.Group("/customers")
			{
				customers.GET("", h.Customer.List)
				customers.POST("/import", h.Customer.Import)
				customers.GET("/template", h.Customer.Template)
			}

			reports := authorized.Group("/reports")
			{
				reports.GET("", h.Report.Get)
				reports.GET("/export", h.Report.Export)
			}

			notifications := authorized.Group("/notifications")
			{
				notifications.GET("", h.Notification.List)
				notifications.POST("/broadcast", h.Notification.Broadcast)
				notifications.GET("/stream", h.Notification.Stream)
			}
		}
	}
}

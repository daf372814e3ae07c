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
	"github.com/joho/godotenv"
	"github.com/kleenkanteen/cityflow/internal/config"
	"github.com/kleenkanteen/cityflow/internal/entity"
	"github.com/kleenkanteen/cityflow/internal/handler"
	"github.com/kleenkanteen/cityflow/internal/mail"
	"github.com/kleenkanteen/cityflow/internal/middleware"
	"github.com/kleenkanteen/cityflow/internal/repository"
	"github.com/kleenkanteen/cityflow/internal/service"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting cityflow service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := entity.AutoMigrate(db); err != nil {
		zapLogger.Fatal("Failed to migrate database", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化Redis
	rdb := initRedis(cfg.Redis)

	// 初始化邮件客户端
	var mailClient *mail.Client
	if cfg.Mail.APIKey != "" {
		mailClient = mail.NewClient(cfg.Mail.APIKey, cfg.Mail.FromName, cfg.Mail.FromEmail)
		zapLogger.Info("Mail client initialized")
	} else {
		zapLogger.Warn("Mail API key not set, notification emails disabled")
	}

	// 初始化对象存储
	var minioClient *minio.Client
	if cfg.MinIO.Endpoint != "" {
		minioClient, err = minio.New(cfg.MinIO.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.MinIO.AccessKey, cfg.MinIO.SecretKey, ""),
			Secure: cfg.MinIO.UseSSL,
		})
		if err != nil {
			zapLogger.Warn("Failed to init object storage, photo uploads disabled", zap.Error(err))
			minioClient = nil
		}
	} else {
		zapLogger.Warn("Object storage endpoint not set, photo uploads disabled")
	}

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, db, rdb, mailClient, minioClient, cfg, zapLogger)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

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
	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
		// Dialect errors become gorm.ErrDuplicatedKey etc. so services can
		// retry on unique violations.
		TranslateError: true,
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN()), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
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
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 公开接口：市民投诉与设备租借申请
		v1.POST("/complaints", h.Complaint.Create)
		v1.POST("/requests", h.Inventory.CreateRequest)

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 当前用户
			authorized.GET("/auth/me", h.Auth.Me)
			authorized.POST("/auth/logout", h.Auth.Logout)

			// 供应商管理
			suppliers := authorized.Group("/suppliers")
			{
				suppliers.POST("", h.Supplier.Create)
				suppliers.GET("", h.Supplier.List)
				suppliers.GET("/:id", h.Supplier.Get)
				suppliers.PATCH("/:id", h.Supplier.Update)
				suppliers.DELETE("/:id", middleware.RequireRole(entity.RoleManager), h.Supplier.Delete)
			}

			// 零件目录
			parts := authorized.Group("/parts")
			{
				parts.POST("", h.Part.Create)
				parts.GET("", h.Part.List)
				parts.GET("/:id", h.Part.Get)
				parts.PATCH("/:id", h.Part.Update)
				parts.DELETE("/:id", middleware.RequireRole(entity.RoleManager), h.Part.Delete)
			}

			// 批量采购单
			batchOrders := authorized.Group("/batch-orders")
			{
				batchOrders.POST("", h.Order.CreateBatchOrder)
				batchOrders.GET("", h.Order.ListBatchOrders)
				batchOrders.GET("/:id", h.Order.GetBatchOrder)
				batchOrders.PATCH("/:id", h.Order.UpdateBatchOrder)
				batchOrders.POST("/:id/submit", h.Order.SubmitBatchOrder)
				batchOrders.POST("/:id/receive", h.Order.ReceiveBatchOrder)
				batchOrders.GET("/:id/items", h.Order.ListPartOrders)
				batchOrders.GET("/:id/export", h.Order.ExportBatchOrder)
			}

			// 采购单行项
			authorized.POST("/part-orders", h.Order.CreatePartOrder)

			// 市政资产与维护日志
			assets := authorized.Group("/assets")
			{
				assets.POST("", h.Asset.Create)
				assets.GET("", h.Asset.List)
				assets.GET("/:id", h.Asset.Get)
				assets.PATCH("/:id", h.Asset.Update)
				assets.DELETE("/:id", middleware.RequireRole(entity.RoleManager), h.Asset.Delete)
				assets.POST("/:id/logs", h.Asset.CreateLog)
				assets.GET("/:id/logs", h.Asset.ListLogs)
			}

			// 设备库存
			inventory := authorized.Group("/inventory")
			{
				inventory.POST("", h.Inventory.CreateItem)
				inventory.GET("", h.Inventory.ListItems)
				inventory.PATCH("/:id", h.Inventory.UpdateItem)
				inventory.DELETE("/:id", middleware.RequireRole(entity.RoleManager), h.Inventory.DeleteItem)
			}

			// 租借申请审批
			authorized.GET("/requests", h.Inventory.ListRequests)
			authorized.PATCH("/requests/:id", h.Inventory.UpdateRequestStatus)

			// 投诉处理
			authorized.GET("/complaints", h.Complaint.List)
			authorized.PATCH("/complaints/:id", h.Complaint.Update)
			authorized.DELETE("/complaints/:id", middleware.RequireRole(entity.RoleManager), h.Complaint.Delete)
			authorized.POST("/complaints/:id/photo", h.Complaint.UploadPhoto)
			authorized.GET("/complaints/:id/photo", h.Complaint.DownloadPhoto)

			// 运营看板
			authorized.GET("/dashboard/summary", h.Dashboard.Summary)
		}
	}
}

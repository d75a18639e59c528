package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Janushan11/scout-api/internal/di"
	"github.com/Janushan11/scout-api/internal/domain"
	"github.com/Janushan11/scout-api/internal/handler"
	"github.com/Janushan11/scout-api/internal/repository"
	"github.com/Janushan11/scout-api/pkg/config"
	"github.com/Janushan11/scout-api/pkg/database"
	"github.com/Janushan11/scout-api/pkg/logger"
	"github.com/Janushan11/scout-api/pkg/middleware"
	"github.com/Janushan11/scout-api/pkg/redis"
	"github.com/Janushan11/scout-api/pkg/retry"
	"github.com/Janushan11/scout-api/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(&logger.Config{
		Level:       "info",
		ServiceName: cfg.App.Name,
		Development: cfg.IsDevelopment(),
	}); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	appLog := logger.Get()
	appLog.Info("Starting scout API...", zap.String("environment", cfg.App.Environment))

	ctx := context.Background()

	// Initialize telemetry
	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Fatal(fmt.Sprintf("Telemetry init failed: %v", err))
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = telemetry.Shutdown(shutdownCtx)
	}()

	// Initialize database connection
	db, err := database.NewPostgres(ctx, &database.PostgresConfig{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.DBName,
		SSLMode:         cfg.Database.SSLMode,
		MaxConns:        int32(cfg.Database.MaxOpenConns),
		MinConns:        int32(cfg.Database.MaxIdleConns),
		MaxConnLifetime: cfg.Database.ConnMaxLifetime,
		MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		ConnectTimeout:  5 * time.Second,
		MaxRetries:      3,
		RetryInterval:   time.Second,
		EnableTracing:   cfg.OTel.Enabled,
	})
	if err != nil {
		appLog.Fatal(fmt.Sprintf("Database connection failed: %v", err))
	}
	defer db.Close()
	appLog.Info("Database connected")

	// Bootstrap schema and seed admins, retrying while the database settles
	retrier := retry.New(&retry.Config{MaxRetries: 3, InitialInterval: time.Second})
	if result := retrier.Do(ctx, func(ctx context.Context) error {
		if err := repository.Migrate(ctx, db.Pool()); err != nil {
			return err
		}
		return seedAdmins(ctx, repository.NewPostgresAdminRepository(db.Pool()), cfg)
	}); result.Err != nil {
		appLog.Fatal(fmt.Sprintf("Schema bootstrap failed: %v", result.Err))
	}
	appLog.Info("Schema ready, bootstrap admins seeded")

	// Initialize redis (optional; the service degrades without it)
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(ctx, &redis.Config{
			Host:          cfg.Redis.Host,
			Port:          cfg.Redis.Port,
			Password:      cfg.Redis.Password,
			DB:            cfg.Redis.DB,
			PoolSize:      cfg.Redis.PoolSize,
			MinIdleConns:  cfg.Redis.MinIdleConns,
			DialTimeout:   cfg.Redis.DialTimeout,
			ReadTimeout:   cfg.Redis.ReadTimeout,
			WriteTimeout:  cfg.Redis.WriteTimeout,
			MaxRetries:    3,
			RetryInterval: time.Second,
		})
		if err != nil {
			appLog.Warn("Redis unavailable, caching and idempotency disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
			appLog.Info("Redis connected")
		}
	}

	container := di.NewContainer(cfg, db, redisClient)
	router := buildRouter(cfg, container, redisClient)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		appLog.Info(fmt.Sprintf("Scout API listening on %s", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLog.Fatal(fmt.Sprintf("Failed to start server: %v", err))
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLog.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLog.Fatal(fmt.Sprintf("Server forced to shutdown: %v", err))
	}

	appLog.Info("Server exited gracefully")
}

func buildRouter(cfg *config.Config, c *di.Container, redisClient *redis.Client) *gin.Engine {
	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.TracingMiddleware(cfg.App.Name))

	router.GET("/health", c.HealthHandler.Health)
	router.GET("/ready", c.HealthHandler.Ready)

	requireAuth := handler.AuthMiddleware(c.AuthService)
	anyAdmin := handler.RequireRole(domain.RolePrimary, domain.RoleSecondary)
	primaryOnly := handler.RequireRole(domain.RolePrimary)

	idemCfg := &middleware.IdempotencyConfig{}
	if redisClient != nil {
		idemCfg.Redis = redisClient.Client()
	}
	idempotent := middleware.Idempotency(idemCfg)

	users := router.Group("/users")
	{
		users.POST("", c.UserHandler.Register)
		users.GET("", c.UserHandler.List)
		users.GET("/:id", requireAuth, anyAdmin, c.UserHandler.Get)
		users.PUT("/:id", requireAuth, anyAdmin, c.UserHandler.Update)
		users.DELETE("/:id", requireAuth, primaryOnly, c.UserHandler.Delete)
		users.GET("/:id/badge", requireAuth, anyAdmin, c.UserHandler.Badge)
		users.PUT("/:id/duty", requireAuth, anyAdmin, idempotent, c.UserHandler.RecordDuty)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/login", c.AuthHandler.Login)

		admins := auth.Group("/admins", requireAuth, primaryOnly)
		{
			admins.POST("", c.AuthHandler.CreateAdmin)
			admins.GET("", c.AuthHandler.ListAdmins)
			admins.GET("/:id", c.AuthHandler.GetAdmin)
			admins.PUT("/:id", c.AuthHandler.UpdateAdmin)
			admins.DELETE("/:id", c.AuthHandler.DeleteAdmin)
		}

		auth.POST("/reset-password", requireAuth, primaryOnly, c.AuthHandler.ResetPassword)
	}

	return router
}

// seedAdmins creates the bootstrap admin accounts when they do not exist yet
func seedAdmins(ctx context.Context, adminRepo repository.AdminRepository, cfg *config.Config) error {
	seeds := []struct {
		email    string
		password string
		role     domain.Role
	}{
		{cfg.Bootstrap.PrimaryEmail, cfg.Bootstrap.PrimaryPassword, domain.RolePrimary},
		{cfg.Bootstrap.SecondaryEmail, cfg.Bootstrap.SecondaryPassword, domain.RoleSecondary},
	}

	for _, seed := range seeds {
		if seed.email == "" || seed.password == "" {
			continue
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(seed.password), bcrypt.DefaultCost)
		if err != nil {
			return retry.Permanent(err)
		}
		admin := &domain.Admin{
			ID:           uuid.New().String(),
			Email:        seed.email,
			PasswordHash: string(hashed),
			Role:         seed.role,
			CreatedAt:    time.Now(),
		}
		if err := adminRepo.CreateIfAbsent(ctx, admin); err != nil {
			return err
		}
	}
	return nil
}

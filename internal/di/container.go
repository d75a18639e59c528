package di

import (
	"github.com/Janushan11/scout-api/internal/handler"
	"github.com/Janushan11/scout-api/internal/repository"
	"github.com/Janushan11/scout-api/internal/service"
	"github.com/Janushan11/scout-api/pkg/config"
	"github.com/Janushan11/scout-api/pkg/database"
	"github.com/Janushan11/scout-api/pkg/redis"
)

// Container holds all dependencies for the service
type Container struct {
	// Infrastructure
	DB    *database.PostgresDB
	Redis *redis.Client

	// Repositories
	UserRepo         repository.UserRepository
	AdminRepo        repository.AdminRepository
	LeaderboardCache *repository.LeaderboardCache

	// Services
	AuthService service.AuthService
	UserService service.UserService
	DutyService service.DutyService

	// Handlers
	HealthHandler *handler.HealthHandler
	AuthHandler   *handler.AuthHandler
	UserHandler   *handler.UserHandler
}

// NewContainer creates a new dependency injection container. The redis
// client may be nil; caching and idempotency then degrade to no-ops.
func NewContainer(cfg *config.Config, db *database.PostgresDB, redisClient *redis.Client) *Container {
	c := &Container{
		DB:    db,
		Redis: redisClient,
	}

	c.UserRepo = repository.NewPostgresUserRepository(db.Pool())
	c.AdminRepo = repository.NewPostgresAdminRepository(db.Pool())

	if redisClient != nil {
		c.LeaderboardCache = repository.NewLeaderboardCache(redisClient.Client(), repository.DefaultLeaderboardTTL)
	} else {
		c.LeaderboardCache = repository.NewLeaderboardCache(nil, repository.DefaultLeaderboardTTL)
	}

	c.AuthService = service.NewAuthService(c.AdminRepo, c.UserRepo, &service.AuthServiceConfig{
		JWTSecret: cfg.JWT.Secret,
		TokenTTL:  cfg.JWT.TokenTTL,
	})
	c.UserService = service.NewUserService(c.UserRepo, c.LeaderboardCache)
	c.DutyService = service.NewDutyService(c.UserRepo, c.LeaderboardCache)

	c.HealthHandler = handler.NewHealthHandler(db, redisClient)
	c.AuthHandler = handler.NewAuthHandler(c.AuthService)
	c.UserHandler = handler.NewUserHandler(c.UserService, c.DutyService)

	return c
}

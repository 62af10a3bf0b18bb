package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"users-api/cmd/api/infrastructure"
	"users-api/internal/adapter/cache"
	"users-api/internal/adapter/db/memory"
	"users-api/internal/adapter/db/sqlstore"
	ginhandler "users-api/internal/adapter/gin/handler"
	"users-api/internal/adapter/ratelimit"
	"users-api/internal/adapter/repository/cached"
	"users-api/internal/config"
	"users-api/internal/usecase/user"
	redisclient "users-api/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *zap.Logger
	DB          *gorm.DB
	RedisClient *redisclient.Client
	Store       user.Repository
	Validator   *user.Validator
	UserUC      user.Usecase
	RateLimiter *ratelimit.Limiter
	GinHandler  *ginhandler.UserHandler
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{
		Config: cfg,
		Logger: l,
	}

	store, err := c.newStore()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	if cfg.Redis.Enabled {
		rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize Redis: %w", err)
		}
		c.RedisClient = rdb

		// Initialize cache layer
		userCache := cache.NewRedisUserCache(
			rdb.Client,
			time.Duration(cfg.Redis.CacheTTL)*time.Second,
			l,
		)
		store = cached.NewUserRepository(store, userCache, l)

		c.RateLimiter = ratelimit.New(
			rdb.Client,
			ratelimit.Config{
				RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
				BurstCapacity:     cfg.RateLimit.BurstCapacity,
				Enabled:           cfg.RateLimit.Enabled,
			},
			l,
		)
	}

	c.Store = store
	c.Validator = user.NewValidator()
	c.UserUC = user.New(store, c.Validator, l)
	c.GinHandler = ginhandler.NewUserHandler(c.UserUC, c.Validator, l)

	l.Info("container initialized",
		zap.String("store_driver", cfg.DB.Driver),
		zap.Bool("cache_enabled", cfg.Redis.Enabled),
		zap.Bool("rate_limit_enabled", c.RateLimiter.Enabled()),
	)

	return c, nil
}

func (c *Container) newStore() (user.Repository, error) {
	if c.Config.DB.Driver == config.DriverMemory {
		return memory.NewUserRepoMemory(c.Logger), nil
	}

	db, err := infrastructure.NewDatabase(c.Config, c.Logger)
	if err != nil {
		return nil, err
	}
	c.DB = db

	return sqlstore.NewUserRepoSQL(db, c.Logger), nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	return errors.Join(errs...)
}

// Package container wires the dependency graph: config, infrastructure,
// repositories, services, handlers. Everything in it is a singleton built
// once at startup.
package container

import (
	"context"
	"fmt"
	"time"

	"library-api/internal/config"
	infracache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/pkg/cache"
	"library-api/pkg/jwt"
	"library-api/pkg/logger"

	authorHandler "library-api/internal/domains/author/handler"
	authorRepo "library-api/internal/domains/author/repository"
	authorService "library-api/internal/domains/author/service"
	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"
	statsHandler "library-api/internal/domains/stats/handler"
	statsRepo "library-api/internal/domains/stats/repository"
	statsService "library-api/internal/domains/stats/service"
	userHandler "library-api/internal/domains/user/handler"
	userRepo "library-api/internal/domains/user/repository"
	userService "library-api/internal/domains/user/service"
)

type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	AuthorRepo authorRepo.RepositoryInterface
	BookRepo   bookRepo.RepositoryInterface
	UserRepo   userRepo.RepositoryInterface
	StatsRepo  statsRepo.RepositoryInterface

	AuthorService authorService.ServiceInterface
	BookService   bookService.ServiceInterface
	UserService   userService.ServiceInterface
	StatsService  statsService.ServiceInterface

	AuthorHandler *authorHandler.AuthorHandler
	BookHandler   *bookHandler.BookHandler
	UserHandler   *userHandler.UserHandler
	StatsHandler  *statsHandler.StatsHandler
}

// NewContainer builds the graph in dependency order. Config first, then
// infrastructure, then repositories, services, handlers.
func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg
	logger.Init(cfg.App.Environment)
	logger.Info("configuration loaded", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	db := database.NewPostgresDB(&cfg.Database)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db
	logger.Info("database connected", nil)

	c.Cache = infracache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB)
	if err := c.Cache.Ping(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	logger.Info("redis connected", nil)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.AuthorRepo = authorRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.BookRepo = bookRepo.NewPostgresRepository(db.Pool, c.Cache)
	c.UserRepo = userRepo.NewPostgresRepository(db.Pool)
	c.StatsRepo = statsRepo.NewPostgresRepository(db.Pool)

	c.AuthorService = authorService.NewAuthorService(c.AuthorRepo)
	c.BookService = bookService.NewBookService(c.BookRepo, c.AuthorRepo)
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)
	c.StatsService = statsService.NewStatsService(c.StatsRepo)

	c.AuthorHandler = authorHandler.NewAuthorHandler(c.AuthorService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.StatsHandler = statsHandler.NewStatsHandler(c.StatsService)

	return c, nil
}

// Cleanup releases infrastructure resources. Call on shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}
	logger.Info("container cleaned up", nil)
}

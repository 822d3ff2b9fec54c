package container

import (
	"context"
	"fmt"
	"time"

	"github.com/graph-gophers/graphql-go"
	"github.com/rs/zerolog/log"

	"bookshelf-graphql/internal/config"
	"bookshelf-graphql/internal/domains/catalog/repository"
	"bookshelf-graphql/internal/domains/catalog/service"
	"bookshelf-graphql/internal/graph"
	infraCache "bookshelf-graphql/internal/infrastructure/cache"
	"bookshelf-graphql/internal/infrastructure/database"
	"bookshelf-graphql/pkg/cache"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the whole dependency graph of the API process.
// Init order: infrastructure -> store -> service -> schema -> handler.
type Container struct {
	// Infrastructure
	Config *config.Config
	DB     *database.PostgresDB
	Cache  cache.Cache

	// Catalog domain
	CatalogRepo    repository.RepositoryInterface
	CatalogService service.ServiceInterface

	// GraphQL
	Schema         *graphql.Schema
	GraphQLHandler *graph.Handler
}

// NewContainer connects to Postgres (applying migrations when enabled), tries
// Redis and builds everything above them. Redis being unreachable is not
// fatal: the store is then used without the read-through cache.
func NewContainer(cfg *config.Config) (*Container, error) {
	log.Info().Msg("Initializing DI container")

	c := &Container{Config: cfg}

	// ----------------------------------------
	// STEP 1: DATABASE
	// ----------------------------------------
	dbConfig := cfg.Database.DBConfig()
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("database health check failed: %w", err)
	}

	// Migrations run after Connect so they benefit from its retry loop.
	if cfg.Database.RunMigrations {
		if err := database.Migrate(dbConfig); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}
	}
	c.DB = db

	// ----------------------------------------
	// STEP 2: CACHE
	// ----------------------------------------
	c.Cache = c.initCache(ctx)

	// ----------------------------------------
	// STEP 3: STORE + SERVICE
	// ----------------------------------------
	c.initCatalog()

	// ----------------------------------------
	// STEP 4: GRAPHQL
	// ----------------------------------------
	if err := c.initGraphQL(); err != nil {
		c.Cleanup()
		return nil, err
	}

	log.Info().
		Str("environment", cfg.App.Environment).
		Bool("cache_enabled", c.cacheEnabled()).
		Msg("DI container initialized")
	return c, nil
}

func (c *Container) initCache(ctx context.Context) cache.Cache {
	if !c.Config.Redis.Enabled {
		log.Info().Msg("Redis disabled, running without cache")
		return cache.Noop{}
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		log.Warn().Err(err).Str("host", c.Config.Redis.Host).Msg("Redis connection failed (non-critical)")
		_ = rc.Close()
		return cache.Noop{}
	}

	log.Info().Str("host", c.Config.Redis.Host).Msg("Redis connected")
	return rc
}

func (c *Container) initCatalog() {
	var repo repository.RepositoryInterface = repository.NewPostgresRepository(c.DB.Pool)
	if c.cacheEnabled() {
		repo = repository.NewCachedRepository(repo, c.Cache, c.Config.Redis.CacheTTL)
	}

	c.CatalogRepo = repo
	c.CatalogService = service.NewCatalogService(repo)
}

func (c *Container) initGraphQL() error {
	schema, err := graph.NewSchema(c.CatalogService,
		graphql.MaxParallelism(c.Config.GraphQL.MaxParallelism),
		graphql.MaxDepth(c.Config.GraphQL.MaxDepth),
	)
	if err != nil {
		return err
	}

	c.Schema = schema
	c.GraphQLHandler = graph.NewHandler(schema)
	return nil
}

func (c *Container) cacheEnabled() bool {
	_, isNoop := c.Cache.(cache.Noop)
	return c.Cache != nil && !isNoop
}

// Cleanup releases the pool and the Redis client. Safe to call more than once.
func (c *Container) Cleanup() {
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close database pool")
		}
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			log.Warn().Err(err).Msg("Failed to close Redis")
		}
	}

	log.Info().Msg("Container cleanup completed")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"bookshelf-graphql/internal/infrastructure/database"
	"bookshelf-graphql/internal/shared/middleware"
	"bookshelf-graphql/internal/shared/response"
	"bookshelf-graphql/pkg/cache"
	"bookshelf-graphql/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
	)

	router.POST(c.Config.GraphQL.Path, c.GraphQLHandler.Serve)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c.DB, c.Cache, c.Config.App.Version))
	}

	return router
}

// ========================================
// HEALTH CHECK
// ========================================

type healthStatus struct {
	Status   string              `json:"status"`
	Version  string              `json:"version"`
	Database string              `json:"database"`
	Cache    string              `json:"cache"`
	Pool     *database.PoolStats `json:"pool,omitempty"`
}

// dbHealth is the part of *database.PostgresDB the health endpoint needs.
type dbHealth interface {
	HealthCheck(ctx context.Context) error
	Stats() *database.PoolStats
}

// healthCheckHandler reports 503 only when Postgres is down. A disabled or
// unreachable cache degrades performance, not correctness.
func healthCheckHandler(db dbHealth, c cache.Cache, version string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
		defer cancel()

		status := healthStatus{
			Status:   "ok",
			Version:  version,
			Database: checkDatabase(reqCtx, db),
			Cache:    checkCache(reqCtx, c),
			Pool:     db.Stats(),
		}

		if status.Database != "up" {
			status.Status = "degraded"
			response.Unavailable(ctx, "DB_UNAVAILABLE", "database is not reachable", status)
			return
		}
		response.Success(ctx, http.StatusOK, status)
	}
}

func checkDatabase(ctx context.Context, db dbHealth) string {
	if err := db.HealthCheck(ctx); err != nil {
		return "down"
	}
	return "up"
}

func checkCache(ctx context.Context, c cache.Cache) string {
	err := c.Ping(ctx)
	switch {
	case err == nil:
		return "up"
	case errors.Is(err, cache.ErrCacheDisabled):
		return "disabled"
	default:
		return "down"
	}
}

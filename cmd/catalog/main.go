package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/craftline/catalog-admin/cmd/catalog/container"
	"github.com/craftline/catalog-admin/cmd/catalog/repository"
	"github.com/craftline/catalog-admin/cmd/catalog/routes"
	"github.com/craftline/catalog-admin/common/bootstrap"
	"github.com/craftline/catalog-admin/common/middleware"
	"github.com/craftline/catalog-admin/common/server"
)

func main() {
	ctx := context.Background()

	// Bootstrap common components (config, logger, DB, redis, cache,
	// telemetry) and apply the schema
	components, err := bootstrap.Setup(ctx, "catalog",
		bootstrap.WithDBInitHook(repository.ApplySchema),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap catalog: %v\n", err)
		os.Exit(1)
	}
	defer components.Shutdown(ctx)

	// Initialize service container (all repositories and services wired once)
	serviceContainer := container.NewContainer(components)

	e := setupEcho()
	setupMiddleware(e, serviceContainer)
	setupHealthCheck(e, components)
	routes.Register(e, serviceContainer)

	// Serve with graceful shutdown; pending reorder persists are drained
	// after the listener stops.
	srv := server.New("catalog", components.Config.Service.Port, e, components.Logger, serviceContainer.DrainReorders)
	if err := srv.Start(); err != nil {
		components.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// setupEcho initializes the Echo server with basic configuration
func setupEcho() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	return e
}

// setupMiddleware configures all middleware for the Echo server
func setupMiddleware(e *echo.Echo, c *container.Container) {
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.ExtractUsername())

	cfg := c.Components.Config
	if cfg.RateLimit.Enabled && c.RateLimiter != nil {
		e.Use(middleware.WriteRateLimit(c.RateLimiter, cfg.RateLimit.Limit, cfg.RateLimit.WindowSec))
	}
}

// setupHealthCheck registers the health check endpoint
func setupHealthCheck(e *echo.Echo, components *bootstrap.Components) {
	e.GET("/health", func(c echo.Context) error {
		if err := components.Health(c.Request().Context()); err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{
				"status": "unhealthy",
				"error":  err.Error(),
			})
		}
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"service": components.Config.Service.Name,
		})
	})
}

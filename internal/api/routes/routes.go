package routes

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"jobwatch/internal/api/handlers"
	"jobwatch/internal/poller"
)

// SetupRoutes configures all API routes
func SetupRoutes(e *echo.Echo, p *poller.Poller) {
	e.Use(echomiddleware.Recover())

	e.GET("/healthz", handlers.HealthHandler)

	v1 := e.Group("/api/v1")
	{
		v1.GET("/status", handlers.StatusHandler(p))
	}

	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"service": "jobwatch",
			"version": "1.0.0",
			"status":  "running",
		})
	})
}

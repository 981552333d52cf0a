package server

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"commerce/internal/middleware"
)

func RegisterRoutes(e *echo.Echo, h Handlers) {
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	e.GET("/metrics", middleware.PrometheusHandler())

	h.Users.RegisterRoutes(e)
	h.Categories.RegisterRoutes(e)
	h.Products.RegisterRoutes(e)
	h.Orders.RegisterRoutes(e)
	h.OrderItems.RegisterRoutes(e)
	h.Payments.RegisterRoutes(e)
	h.Addresses.RegisterRoutes(e)
}

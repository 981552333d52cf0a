package server

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"commerce/internal/handler"
	"commerce/internal/middleware"
)

type Handlers struct {
	Users      *handler.UserHandler
	Categories *handler.CategoryHandler
	Products   *handler.ProductHandler
	Orders     *handler.OrderHandler
	OrderItems *handler.OrderItemHandler
	Payments   *handler.PaymentHandler
	Addresses  *handler.ShippingAddressHandler
}

func New(logger *zap.Logger, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.RequestLogger(logger))
	e.Use(middleware.Metrics())

	RegisterRoutes(e, h)
	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

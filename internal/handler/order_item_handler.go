package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"commerce/internal/usecase"
)

type OrderItemHandler struct {
	uc *usecase.OrderItemUsecase
}

func NewOrderItemHandler(uc *usecase.OrderItemUsecase) *OrderItemHandler {
	return &OrderItemHandler{uc: uc}
}

type OrderItemRequest struct {
	OrderID   uuid.UUID       `json:"order_id"`
	ProductID uuid.UUID       `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

func (h *OrderItemHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/order-items")
	g.POST("", h.addOrUpdate)
	g.DELETE("/:id", h.remove)

	e.GET("/orders/:orderId/items", h.listForOrder)
}

func (h *OrderItemHandler) addOrUpdate(c echo.Context) error {
	var req OrderItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddOrUpdateItem(c.Request().Context(), usecase.AddOrderItemInput{
		OrderID:   req.OrderID,
		ProductID: req.ProductID,
		Quantity:  req.Quantity,
		UnitPrice: req.Price,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderItemHandler) listForOrder(c echo.Context) error {
	orderID, ok := parseIDParam(c, "orderId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid order id"})
	}

	out, err := h.uc.ListItems(c.Request().Context(), orderID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderItemHandler) remove(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.RemoveItem(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"commerce/internal/usecase"
)

type ShippingAddressHandler struct {
	uc *usecase.ShippingAddressUsecase
}

func NewShippingAddressHandler(uc *usecase.ShippingAddressUsecase) *ShippingAddressHandler {
	return &ShippingAddressHandler{uc: uc}
}

type ShippingAddressRequest struct {
	UserID     uuid.UUID `json:"user_id"`
	Street     string    `json:"street"`
	City       string    `json:"city"`
	State      string    `json:"state"`
	Country    string    `json:"country"`
	PostalCode string    `json:"postal_code"`
}

func (h *ShippingAddressHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/addresses")
	g.POST("", h.create)
	g.GET("/:id", h.detail)
	g.PUT("/:id", h.update)
	g.DELETE("/:id", h.remove)

	e.GET("/users/:userId/addresses", h.listForUser)
}

func (h *ShippingAddressHandler) create(c echo.Context) error {
	var req ShippingAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.CreateAddress(c.Request().Context(), toAddressInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *ShippingAddressHandler) detail(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.GetAddress(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShippingAddressHandler) listForUser(c echo.Context) error {
	userID, ok := parseIDParam(c, "userId")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid user id"})
	}

	out, err := h.uc.ListAddressesForUser(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShippingAddressHandler) update(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req ShippingAddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.UpdateAddress(c.Request().Context(), id, toAddressInput(req))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *ShippingAddressHandler) remove(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.DeleteAddress(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func toAddressInput(req ShippingAddressRequest) usecase.ShippingAddressInput {
	return usecase.ShippingAddressInput{
		UserID:     req.UserID,
		Street:     req.Street,
		City:       req.City,
		State:      req.State,
		Country:    req.Country,
		PostalCode: req.PostalCode,
	}
}

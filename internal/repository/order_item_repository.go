package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type OrderItemRepository interface {
	Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error)
	FindByID(ctx context.Context, orderItemID uuid.UUID) (model.OrderItem, error)
	FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (model.OrderItem, bool, error)
	ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error)
	UpdateQuantity(ctx context.Context, orderItemID uuid.UUID, quantity int64) error
	Delete(ctx context.Context, orderItemID uuid.UUID) error
	DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error
}

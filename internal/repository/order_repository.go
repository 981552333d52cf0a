package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (model.Order, error)
	FindByID(ctx context.Context, orderID uuid.UUID) (model.Order, error)

	// Row-locked read (SELECT ... FOR UPDATE). Serializes item and payment
	// mutation per order; only valid inside a transaction.
	FindByIDForUpdate(ctx context.Context, orderID uuid.UUID) (model.Order, error)

	ListByUserID(ctx context.Context, userID uuid.UUID, status *model.OrderStatus) ([]model.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error
	Delete(ctx context.Context, orderID uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type ShippingAddressRepository interface {
	Create(ctx context.Context, address model.ShippingAddress) (model.ShippingAddress, error)
	FindByID(ctx context.Context, addressID uuid.UUID) (model.ShippingAddress, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error)
	Update(ctx context.Context, address model.ShippingAddress) error
	Delete(ctx context.Context, addressID uuid.UUID) error
}

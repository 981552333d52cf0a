package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type ProductRepository interface {
	Create(ctx context.Context, product model.Product) (model.Product, error)
	FindByID(ctx context.Context, productID uuid.UUID) (model.Product, error)
	ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Product, error)
	ListByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error)
	Update(ctx context.Context, product model.Product) error
	Delete(ctx context.Context, productID uuid.UUID) error
}

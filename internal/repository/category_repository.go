package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type CategoryRepository interface {
	Create(ctx context.Context, category model.Category) (model.Category, error)
	FindByID(ctx context.Context, categoryID uuid.UUID) (model.Category, error)
	ExistsByID(ctx context.Context, categoryID uuid.UUID) (bool, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	List(ctx context.Context) ([]model.Category, error)
	Update(ctx context.Context, category model.Category) error
	Delete(ctx context.Context, categoryID uuid.UUID) error
}

package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByID(ctx context.Context, userID uuid.UUID) (model.User, error)
	ExistsByID(ctx context.Context, userID uuid.UUID) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	List(ctx context.Context) ([]model.User, error)
	Update(ctx context.Context, user model.User) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

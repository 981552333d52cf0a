package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type CategoryUsecase struct {
	categoryRepo repo.CategoryRepository
	logger       *zap.Logger
}

func NewCategoryUsecase(categoryRepo repo.CategoryRepository, logger *zap.Logger) *CategoryUsecase {
	return &CategoryUsecase{categoryRepo: categoryRepo, logger: logger}
}

type CategoryOutput struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (u *CategoryUsecase) CreateCategory(ctx context.Context, name string) (CategoryOutput, error) {
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return CategoryOutput{}, NewError(KindValidation, "invalid category name")
	}

	u.logger.Info("creating category", zap.String("name", name))

	exists, err := u.categoryRepo.ExistsByName(ctx, name)
	if err != nil {
		return CategoryOutput{}, errInternal()
	}
	if exists {
		return CategoryOutput{}, NewError(KindConflict, "category with this name already exists")
	}

	created, err := u.categoryRepo.Create(ctx, model.Category{Name: name})
	if err == repo.ErrConflict {
		return CategoryOutput{}, NewError(KindConflict, "category with this name already exists")
	}
	if err != nil {
		return CategoryOutput{}, errInternal()
	}

	return toCategoryOutput(created), nil
}

func (u *CategoryUsecase) GetCategory(ctx context.Context, categoryID uuid.UUID) (CategoryOutput, error) {
	if categoryID == uuid.Nil {
		return CategoryOutput{}, NewError(KindValidation, "invalid category id")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return CategoryOutput{}, NewError(KindNotFound, "category not found")
	}
	if err != nil {
		return CategoryOutput{}, errInternal()
	}
	return toCategoryOutput(c), nil
}

func (u *CategoryUsecase) ListCategories(ctx context.Context) ([]CategoryOutput, error) {
	categories, err := u.categoryRepo.List(ctx)
	if err != nil {
		return []CategoryOutput{}, errInternal()
	}

	outs := make([]CategoryOutput, 0, len(categories))
	for _, c := range categories {
		outs = append(outs, toCategoryOutput(c))
	}
	return outs, nil
}

func (u *CategoryUsecase) UpdateCategory(ctx context.Context, categoryID uuid.UUID, name string) (CategoryOutput, error) {
	if categoryID == uuid.Nil {
		return CategoryOutput{}, NewError(KindValidation, "invalid category id")
	}
	name = strings.TrimSpace(name)
	if name == "" || len(name) > 255 {
		return CategoryOutput{}, NewError(KindValidation, "invalid category name")
	}

	c, err := u.categoryRepo.FindByID(ctx, categoryID)
	if err == repo.ErrNotFound {
		return CategoryOutput{}, NewError(KindNotFound, "category not found")
	}
	if err != nil {
		return CategoryOutput{}, errInternal()
	}

	c.Name = name
	if err := u.categoryRepo.Update(ctx, c); err != nil {
		if err == repo.ErrConflict {
			return CategoryOutput{}, NewError(KindConflict, "category with this name already exists")
		}
		if err == repo.ErrNotFound {
			return CategoryOutput{}, NewError(KindNotFound, "category not found")
		}
		return CategoryOutput{}, errInternal()
	}
	return toCategoryOutput(c), nil
}

func (u *CategoryUsecase) DeleteCategory(ctx context.Context, categoryID uuid.UUID) error {
	if categoryID == uuid.Nil {
		return NewError(KindValidation, "invalid category id")
	}

	u.logger.Info("deleting category", zap.String("category_id", categoryID.String()))

	err := u.categoryRepo.Delete(ctx, categoryID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "category not found")
	}
	if err != nil {
		return errInternal()
	}
	return nil
}

func toCategoryOutput(c model.Category) CategoryOutput {
	return CategoryOutput{
		ID:        c.ID,
		Name:      c.Name,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

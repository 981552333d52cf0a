package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type ProductUsecase struct {
	productRepo   repo.ProductRepository
	categoryRepo  repo.CategoryRepository
	inventoryRepo repo.InventoryRepository
	logger        *zap.Logger
}

func NewProductUsecase(
	productRepo repo.ProductRepository,
	categoryRepo repo.CategoryRepository,
	inventoryRepo repo.InventoryRepository,
	logger *zap.Logger,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo:   productRepo,
		categoryRepo:  categoryRepo,
		inventoryRepo: inventoryRepo,
		logger:        logger,
	}
}

type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int64
	ImageURL    string
	CategoryID  uuid.UUID
}

type ProductOutput struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Stock       int64           `json:"stock"`
	ImageURL    string          `json:"image_url"`
	CategoryID  uuid.UUID       `json:"category_id"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func (u *ProductUsecase) CreateProduct(ctx context.Context, in ProductInput) (ProductOutput, error) {
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	name := strings.TrimSpace(in.Name)
	u.logger.Info("creating product", zap.String("name", name))

	exists, err := u.categoryRepo.ExistsByID(ctx, in.CategoryID)
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	if !exists {
		return ProductOutput{}, NewError(KindNotFound, "category not found")
	}

	taken, err := u.productRepo.ExistsByNameIgnoreCase(ctx, name)
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	if taken {
		return ProductOutput{}, NewError(KindConflict, "product with this name already exists")
	}

	created, err := u.productRepo.Create(ctx, model.Product{
		Name:        name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		ImageURL:    in.ImageURL,
		CategoryID:  in.CategoryID,
	})
	if err != nil {
		return ProductOutput{}, errInternal()
	}

	u.logger.Info("product created", zap.String("product_id", created.ID.String()))
	return toProductOutput(created), nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID uuid.UUID) (ProductOutput, error) {
	if productID == uuid.Nil {
		return ProductOutput{}, NewError(KindValidation, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	return toProductOutput(p), nil
}

func (u *ProductUsecase) ListProducts(ctx context.Context) ([]ProductOutput, error) {
	products, err := u.productRepo.List(ctx)
	if err != nil {
		return []ProductOutput{}, errInternal()
	}
	return toProductOutputs(products), nil
}

func (u *ProductUsecase) ListProductsByCategory(ctx context.Context, categoryID uuid.UUID) ([]ProductOutput, error) {
	if categoryID == uuid.Nil {
		return []ProductOutput{}, NewError(KindValidation, "invalid category id")
	}

	exists, err := u.categoryRepo.ExistsByID(ctx, categoryID)
	if err != nil {
		return []ProductOutput{}, errInternal()
	}
	if !exists {
		return []ProductOutput{}, NewError(KindNotFound, "category not found")
	}

	products, err := u.productRepo.ListByCategoryID(ctx, categoryID)
	if err != nil {
		return []ProductOutput{}, errInternal()
	}
	return toProductOutputs(products), nil
}

// UpdateProduct rewrites catalog fields and restocks through the inventory
// repository, never by writing the stock column directly.
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID uuid.UUID, in ProductInput) (ProductOutput, error) {
	if productID == uuid.Nil {
		return ProductOutput{}, NewError(KindValidation, "invalid product id")
	}
	if err := validateProductInput(in); err != nil {
		return ProductOutput{}, err
	}

	u.logger.Info("updating product", zap.String("product_id", productID.String()))

	p, err := u.productRepo.FindByID(ctx, productID)
	if err == repo.ErrNotFound {
		return ProductOutput{}, NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return ProductOutput{}, errInternal()
	}

	exists, err := u.categoryRepo.ExistsByID(ctx, in.CategoryID)
	if err != nil {
		return ProductOutput{}, errInternal()
	}
	if !exists {
		return ProductOutput{}, NewError(KindNotFound, "category not found")
	}

	p.Name = strings.TrimSpace(in.Name)
	p.Description = in.Description
	p.Price = in.Price
	p.ImageURL = in.ImageURL
	p.CategoryID = in.CategoryID

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewError(KindNotFound, "product not found")
		}
		return ProductOutput{}, errInternal()
	}

	if err := u.inventoryRepo.SetStock(ctx, productID, in.Stock); err != nil {
		if err == repo.ErrNotFound {
			return ProductOutput{}, NewError(KindNotFound, "product not found")
		}
		return ProductOutput{}, errInternal()
	}
	p.Stock = in.Stock

	return toProductOutput(p), nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID uuid.UUID) error {
	if productID == uuid.Nil {
		return NewError(KindValidation, "invalid product id")
	}

	u.logger.Info("deleting product", zap.String("product_id", productID.String()))

	err := u.productRepo.Delete(ctx, productID)
	if err == repo.ErrNotFound {
		return NewError(KindNotFound, "product not found")
	}
	if err != nil {
		return errInternal()
	}
	return nil
}

func validateProductInput(in ProductInput) error {
	if strings.TrimSpace(in.Name) == "" || len(in.Name) > 255 {
		return NewError(KindValidation, "invalid name")
	}
	if !in.Price.IsPositive() {
		return NewError(KindValidation, "price must be greater than zero")
	}
	if in.Stock < 0 {
		return NewError(KindValidation, "stock must be zero or greater")
	}
	if in.CategoryID == uuid.Nil {
		return NewError(KindValidation, "category id is required")
	}
	return nil
}

func toProductOutput(p model.Product) ProductOutput {
	return ProductOutput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
		CategoryID:  p.CategoryID,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func toProductOutputs(products []model.Product) []ProductOutput {
	outs := make([]ProductOutput, 0, len(products))
	for _, p := range products {
		outs = append(outs, toProductOutput(p))
	}
	return outs
}

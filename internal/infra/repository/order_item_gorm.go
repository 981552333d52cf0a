package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type OrderItemGormRepository struct {
	db *gorm.DB
}

func NewOrderItemGormRepository(db *gorm.DB) *OrderItemGormRepository {
	return &OrderItemGormRepository{db: db}
}

func (r *OrderItemGormRepository) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	if item.ID == uuid.Nil {
		item.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&item).Error; err != nil {
		if isUniqueViolation(err) {
			return model.OrderItem{}, repo.ErrConflict
		}
		return model.OrderItem{}, err
	}
	return item, nil
}

func (r *OrderItemGormRepository) FindByID(ctx context.Context, orderItemID uuid.UUID) (model.OrderItem, error) {
	var it model.OrderItem
	err := r.db.WithContext(ctx).Where("id = ?", orderItemID).First(&it).Error
	if isNotFound(err) {
		return model.OrderItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.OrderItem{}, err
	}
	return it, nil
}

func (r *OrderItemGormRepository) FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (model.OrderItem, bool, error) {
	var it model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ? AND product_id = ?", orderID, productID).
		First(&it).Error
	if isNotFound(err) {
		return model.OrderItem{}, false, nil
	}
	if err != nil {
		return model.OrderItem{}, false, err
	}
	return it, true, nil
}

func (r *OrderItemGormRepository) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	var items []model.OrderItem
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return []model.OrderItem{}, err
	}
	return items, nil
}

func (r *OrderItemGormRepository) UpdateQuantity(ctx context.Context, orderItemID uuid.UUID, quantity int64) error {
	res := r.db.WithContext(ctx).Model(&model.OrderItem{}).
		Where("id = ?", orderItemID).
		Update("quantity", quantity)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderItemGormRepository) Delete(ctx context.Context, orderItemID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", orderItemID).Delete(&model.OrderItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *OrderItemGormRepository) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("order_id = ?", orderID).Delete(&model.OrderItem{}).Error
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type ShippingAddressGormRepository struct {
	db *gorm.DB
}

func NewShippingAddressGormRepository(db *gorm.DB) *ShippingAddressGormRepository {
	return &ShippingAddressGormRepository{db: db}
}

func (r *ShippingAddressGormRepository) Create(ctx context.Context, address model.ShippingAddress) (model.ShippingAddress, error) {
	if address.ID == uuid.Nil {
		address.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&address).Error; err != nil {
		return model.ShippingAddress{}, err
	}
	return address, nil
}

func (r *ShippingAddressGormRepository) FindByID(ctx context.Context, addressID uuid.UUID) (model.ShippingAddress, error) {
	var a model.ShippingAddress
	err := r.db.WithContext(ctx).Where("id = ?", addressID).First(&a).Error
	if isNotFound(err) {
		return model.ShippingAddress{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ShippingAddress{}, err
	}
	return a, nil
}

func (r *ShippingAddressGormRepository) ListByUserID(ctx context.Context, userID uuid.UUID) ([]model.ShippingAddress, error) {
	var addresses []model.ShippingAddress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&addresses).Error
	if err != nil {
		return []model.ShippingAddress{}, err
	}
	return addresses, nil
}

func (r *ShippingAddressGormRepository) Update(ctx context.Context, address model.ShippingAddress) error {
	res := r.db.WithContext(ctx).Model(&model.ShippingAddress{}).
		Where("id = ?", address.ID).
		Updates(map[string]any{
			"street":      address.Street,
			"city":        address.City,
			"state":       address.State,
			"country":     address.Country,
			"postal_code": address.PostalCode,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *ShippingAddressGormRepository) Delete(ctx context.Context, addressID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", addressID).Delete(&model.ShippingAddress{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

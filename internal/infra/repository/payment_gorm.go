package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

type PaymentGormRepository struct {
	db *gorm.DB
}

func NewPaymentGormRepository(db *gorm.DB) *PaymentGormRepository {
	return &PaymentGormRepository{db: db}
}

// Create relies on the unique indexes on order_id and transaction_id.
// A concurrent duplicate that slipped past the existence checks surfaces
// here as ErrConflict and rolls the transaction back.
func (r *PaymentGormRepository) Create(ctx context.Context, payment model.Payment) (model.Payment, error) {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if err := r.db.WithContext(ctx).Create(&payment).Error; err != nil {
		if isUniqueViolation(err) {
			return model.Payment{}, repo.ErrConflict
		}
		return model.Payment{}, err
	}
	return payment, nil
}

func (r *PaymentGormRepository) FindByID(ctx context.Context, paymentID uuid.UUID) (model.Payment, error) {
	var p model.Payment
	err := r.db.WithContext(ctx).Where("id = ?", paymentID).First(&p).Error
	if isNotFound(err) {
		return model.Payment{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Payment{}, err
	}
	return p, nil
}

func (r *PaymentGormRepository) ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).Where("order_id = ?", orderID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentGormRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Payment{}).Where("transaction_id = ?", transactionID).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *PaymentGormRepository) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status model.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Payment{}).
		Where("id = ?", paymentID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PaymentGormRepository) Delete(ctx context.Context, paymentID uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ?", paymentID).Delete(&model.Payment{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

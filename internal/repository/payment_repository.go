package repository

import (
	"context"

	"github.com/google/uuid"

	"commerce/internal/domain/model"
)

type PaymentRepository interface {
	// Create returns ErrConflict when the order already has a payment or the
	// transaction id is taken (unique index violation).
	Create(ctx context.Context, payment model.Payment) (model.Payment, error)

	FindByID(ctx context.Context, paymentID uuid.UUID) (model.Payment, error)
	ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error)
	ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error)
	UpdateStatus(ctx context.Context, paymentID uuid.UUID, status model.PaymentStatus) error
	Delete(ctx context.Context, paymentID uuid.UUID) error
}

package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	"commerce/internal/event"
	repo "commerce/internal/repository"
)

// PaymentUsecase is the consistency coordinator for settlement: order
// lookup, uniqueness checks, amount check, payment persistence and the
// order's PENDING -> COMPLETED transition all commit or roll back as one
// transaction.
type PaymentUsecase struct {
	tx        repo.TransactionManager
	publisher event.Publisher
	logger    *zap.Logger
}

func NewPaymentUsecase(tx repo.TransactionManager, publisher event.Publisher, logger *zap.Logger) *PaymentUsecase {
	return &PaymentUsecase{tx: tx, publisher: publisher, logger: logger}
}

type CreatePaymentInput struct {
	OrderID       uuid.UUID
	Amount        decimal.Decimal
	Method        model.PaymentMethod
	TransactionID string
}

type PaymentOutput struct {
	ID            uuid.UUID       `json:"id"`
	OrderID       uuid.UUID       `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	Method        string          `json:"method"`
	Status        string          `json:"status"`
	TransactionID string          `json:"transaction_id"`
	CreatedAt     time.Time       `json:"created_at"`
}

// CreatePayment settles instantly: there is no gateway round trip, the
// payment is stored COMPLETED and a server-generated transaction id replaces
// the caller's. The caller-supplied id is only checked for uniqueness and
// then discarded, standing in for a real gateway's authoritative reference.
func (u *PaymentUsecase) CreatePayment(ctx context.Context, in CreatePaymentInput) (PaymentOutput, error) {
	if in.OrderID == uuid.Nil {
		return PaymentOutput{}, NewError(KindValidation, "order id is required")
	}
	if !in.Amount.IsPositive() {
		return PaymentOutput{}, NewError(KindValidation, "amount must be greater than zero")
	}
	if !in.Method.Valid() {
		return PaymentOutput{}, NewError(KindValidation, "invalid payment method")
	}
	txnID := strings.TrimSpace(in.TransactionID)
	if txnID == "" || len(txnID) > 255 {
		return PaymentOutput{}, NewError(KindValidation, "invalid transaction id")
	}

	u.logger.Info("creating payment", zap.String("order_id", in.OrderID.String()))

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return errInternal()
		}

		// Fast-path checks. The unique indexes on order_id and
		// transaction_id remain the authoritative guard against racers.
		exists, err := r.Payments().ExistsByOrderID(ctx, in.OrderID)
		if err != nil {
			return errInternal()
		}
		if exists {
			return NewError(KindConflict, "payment already exists for this order")
		}

		taken, err := r.Payments().ExistsByTransactionID(ctx, txnID)
		if err != nil {
			return errInternal()
		}
		if taken {
			return NewError(KindConflict, "transaction id already exists")
		}

		if order.Status != model.OrderStatusPending {
			return NewError(KindInvalidState, "order is not payable")
		}

		if in.Amount.Cmp(order.TotalPrice) < 0 {
			u.logger.Warn("payment amount below order total",
				zap.String("order_id", in.OrderID.String()),
				zap.String("amount", in.Amount.String()),
				zap.String("total", order.TotalPrice.String()),
			)
			return NewError(KindValidation, "payment amount is less than the order total")
		}

		created, err := r.Payments().Create(ctx, model.Payment{
			OrderID:       in.OrderID,
			Amount:        in.Amount,
			Method:        in.Method,
			Status:        model.PaymentStatusCompleted,
			TransactionID: uuid.NewString(),
		})
		if err == repo.ErrConflict {
			// a concurrent payment won the insert race
			return NewError(KindConflict, "payment already exists for this order")
		}
		if err != nil {
			return errInternal()
		}

		// settlement advances the order in the same transaction
		if !order.Status.CanTransitionTo(model.OrderStatusCompleted) {
			return NewError(KindInvalidState, "order is not payable")
		}
		if err := r.Orders().UpdateStatus(ctx, in.OrderID, model.OrderStatusCompleted); err != nil {
			return errInternal()
		}

		out = toPaymentOutput(created)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}

	u.logger.Info("payment created",
		zap.String("payment_id", out.ID.String()),
		zap.String("order_id", out.OrderID.String()),
	)

	// Publish only after commit so consumers never see an uncommitted
	// settlement. A publish failure is logged, not returned: persisted state
	// is already consistent.
	evt := event.PaymentSettled{
		PaymentID:     out.ID,
		OrderID:       out.OrderID,
		Amount:        out.Amount,
		TransactionID: out.TransactionID,
		SettledAt:     out.CreatedAt,
	}
	if err := u.publisher.PublishPaymentSettled(ctx, evt); err != nil {
		u.logger.Error("failed to publish payment settled event",
			zap.String("payment_id", out.ID.String()),
			zap.Error(err),
		)
	}

	return out, nil
}

func (u *PaymentUsecase) GetPayment(ctx context.Context, paymentID uuid.UUID) (PaymentOutput, error) {
	if paymentID == uuid.Nil {
		return PaymentOutput{}, NewError(KindValidation, "invalid payment id")
	}

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "payment not found")
		}
		if err != nil {
			return errInternal()
		}
		out = toPaymentOutput(p)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

// UpdateStatus rejects any change to a COMPLETED payment; settlement is
// final. Other statuses move unconditionally.
func (u *PaymentUsecase) UpdateStatus(ctx context.Context, paymentID uuid.UUID, newStatus model.PaymentStatus) (PaymentOutput, error) {
	if paymentID == uuid.Nil {
		return PaymentOutput{}, NewError(KindValidation, "invalid payment id")
	}
	if !newStatus.Valid() {
		return PaymentOutput{}, NewError(KindValidation, "invalid payment status")
	}

	u.logger.Info("updating payment status",
		zap.String("payment_id", paymentID.String()),
		zap.String("new_status", string(newStatus)),
	)

	var out PaymentOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "payment not found")
		}
		if err != nil {
			return errInternal()
		}
		if p.Status == model.PaymentStatusCompleted {
			return NewError(KindInvalidState, "completed payments cannot be updated")
		}

		if err := r.Payments().UpdateStatus(ctx, paymentID, newStatus); err != nil {
			return errInternal()
		}

		p.Status = newStatus
		out = toPaymentOutput(p)
		return nil
	})

	if err != nil {
		return PaymentOutput{}, err
	}
	return out, nil
}

func (u *PaymentUsecase) DeletePayment(ctx context.Context, paymentID uuid.UUID) error {
	if paymentID == uuid.Nil {
		return NewError(KindValidation, "invalid payment id")
	}

	u.logger.Info("deleting payment", zap.String("payment_id", paymentID.String()))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		p, err := r.Payments().FindByID(ctx, paymentID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "payment not found")
		}
		if err != nil {
			return errInternal()
		}
		if p.Status == model.PaymentStatusCompleted {
			return NewError(KindInvalidState, "completed payments cannot be deleted")
		}

		if err := r.Payments().Delete(ctx, paymentID); err != nil {
			return errInternal()
		}
		return nil
	})
}

func toPaymentOutput(p model.Payment) PaymentOutput {
	return PaymentOutput{
		ID:            p.ID,
		OrderID:       p.OrderID,
		Amount:        p.Amount,
		Method:        string(p.Method),
		Status:        string(p.Status),
		TransactionID: p.TransactionID,
		CreatedAt:     p.CreatedAt,
	}
}

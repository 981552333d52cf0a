package usecase

import (
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

var postalCodeRe = regexp.MustCompile(`^\d{4,5}$`)

type OrderUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, logger *zap.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, logger: logger}
}

type CreateOrderInput struct {
	UserID     uuid.UUID
	Street     string
	City       string
	State      string
	Country    string
	PostalCode string
	TotalPrice decimal.Decimal
}

type OrderOutput struct {
	ID         uuid.UUID       `json:"id"`
	UserID     uuid.UUID       `json:"user_id"`
	Street     string          `json:"street"`
	City       string          `json:"city"`
	State      string          `json:"state"`
	Country    string          `json:"country"`
	PostalCode string          `json:"postal_code"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateOrder creates a PENDING order with a shipping snapshot. Orders are
// never re-created; COMPLETED is only reachable through payment settlement.
func (u *OrderUsecase) CreateOrder(ctx context.Context, in CreateOrderInput) (OrderOutput, error) {
	if in.UserID == uuid.Nil {
		return OrderOutput{}, NewError(KindValidation, "user id is required")
	}
	if err := validateShipping(in.Street, in.City, in.State, in.Country, in.PostalCode); err != nil {
		return OrderOutput{}, err
	}
	if !in.TotalPrice.IsPositive() {
		return OrderOutput{}, NewError(KindValidation, "total price must be greater than zero")
	}

	u.logger.Info("creating order", zap.String("user_id", in.UserID.String()))

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		exists, err := r.Users().ExistsByID(ctx, in.UserID)
		if err != nil {
			return errInternal()
		}
		if !exists {
			return NewError(KindNotFound, "user not found")
		}

		created, err := r.Orders().Create(ctx, model.Order{
			UserID:     in.UserID,
			Street:     strings.TrimSpace(in.Street),
			City:       strings.TrimSpace(in.City),
			State:      strings.TrimSpace(in.State),
			Country:    strings.TrimSpace(in.Country),
			PostalCode: strings.TrimSpace(in.PostalCode),
			TotalPrice: in.TotalPrice,
			Status:     model.OrderStatusPending,
		})
		if err != nil {
			return errInternal()
		}

		out = toOrderOutput(created)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}

	u.logger.Info("order created", zap.String("order_id", out.ID.String()))
	return out, nil
}

func (u *OrderUsecase) GetOrder(ctx context.Context, orderID uuid.UUID) (OrderOutput, error) {
	if orderID == uuid.Nil {
		return OrderOutput{}, NewError(KindValidation, "invalid order id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return errInternal()
		}
		out = toOrderOutput(o)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) ListOrdersForUser(ctx context.Context, userID uuid.UUID, status *model.OrderStatus) ([]OrderOutput, error) {
	if userID == uuid.Nil {
		return []OrderOutput{}, NewError(KindValidation, "invalid user id")
	}
	if status != nil && !status.Valid() {
		return []OrderOutput{}, NewError(KindValidation, "invalid order status")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		exists, err := r.Users().ExistsByID(ctx, userID)
		if err != nil {
			return errInternal()
		}
		if !exists {
			return NewError(KindNotFound, "user not found")
		}

		orders, err := r.Orders().ListByUserID(ctx, userID, status)
		if err != nil {
			return errInternal()
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			outs = append(outs, toOrderOutput(o))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

// UpdateStatus applies the transition table. Cancelling puts every reserved
// line quantity back to stock in the same transaction.
func (u *OrderUsecase) UpdateStatus(ctx context.Context, orderID uuid.UUID, newStatus model.OrderStatus) (OrderOutput, error) {
	if orderID == uuid.Nil {
		return OrderOutput{}, NewError(KindValidation, "invalid order id")
	}
	if !newStatus.Valid() {
		return OrderOutput{}, NewError(KindValidation, "invalid order status")
	}

	u.logger.Info("updating order status",
		zap.String("order_id", orderID.String()),
		zap.String("new_status", string(newStatus)),
	)

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return errInternal()
		}

		if !order.Status.CanTransitionTo(newStatus) {
			return NewError(KindInvalidState, "illegal order status transition")
		}

		if newStatus == model.OrderStatusCancelled {
			if err := releaseOrderStock(ctx, r, orderID); err != nil {
				return err
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return errInternal()
		}

		order.Status = newStatus
		out = toOrderOutput(order)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// DeleteOrder refuses COMPLETED orders: a settled order and its immutable
// payment stay on record. Deleting a PENDING order releases its reserved
// stock; a CANCELLED one already released it.
func (u *OrderUsecase) DeleteOrder(ctx context.Context, orderID uuid.UUID) error {
	if orderID == uuid.Nil {
		return NewError(KindValidation, "invalid order id")
	}

	u.logger.Info("deleting order", zap.String("order_id", orderID.String()))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return errInternal()
		}
		if order.Status == model.OrderStatusCompleted {
			return NewError(KindInvalidState, "completed orders cannot be deleted")
		}

		if order.Status == model.OrderStatusPending {
			if err := releaseOrderStock(ctx, r, orderID); err != nil {
				return err
			}
		}

		if err := r.OrderItems().DeleteByOrderID(ctx, orderID); err != nil {
			return errInternal()
		}
		if err := r.Orders().Delete(ctx, orderID); err != nil {
			return errInternal()
		}
		return nil
	})
}

func releaseOrderStock(ctx context.Context, r repo.TxRepos, orderID uuid.UUID) error {
	items, err := r.OrderItems().ListByOrderID(ctx, orderID)
	if err != nil {
		return errInternal()
	}
	for _, it := range items {
		if err := r.Inventory().Release(ctx, it.ProductID, it.Quantity); err != nil {
			return errInternal()
		}
	}
	return nil
}

func validateShipping(street, city, state, country, postalCode string) error {
	if strings.TrimSpace(street) == "" || len(street) > 255 {
		return NewError(KindValidation, "invalid street")
	}
	if strings.TrimSpace(city) == "" || len(city) > 100 {
		return NewError(KindValidation, "invalid city")
	}
	if strings.TrimSpace(state) == "" || len(state) > 100 {
		return NewError(KindValidation, "invalid state")
	}
	if strings.TrimSpace(country) == "" || len(country) > 100 {
		return NewError(KindValidation, "invalid country")
	}
	if !postalCodeRe.MatchString(strings.TrimSpace(postalCode)) {
		return NewError(KindValidation, "postal code must be a valid 4 or 5-digit format")
	}
	return nil
}

func toOrderOutput(o model.Order) OrderOutput {
	return OrderOutput{
		ID:         o.ID,
		UserID:     o.UserID,
		Street:     o.Street,
		City:       o.City,
		State:      o.State,
		Country:    o.Country,
		PostalCode: o.PostalCode,
		TotalPrice: o.TotalPrice,
		Status:     string(o.Status),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

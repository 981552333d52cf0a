package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
)

// OrderItemUsecase reconciles (order, product) pairs to single line items.
// Every mutation runs inside one transaction holding a row lock on the
// parent order, so two concurrent adds for the same pair cannot both pass
// the merge lookup.
type OrderItemUsecase struct {
	tx     repo.TransactionManager
	logger *zap.Logger
}

func NewOrderItemUsecase(tx repo.TransactionManager, logger *zap.Logger) *OrderItemUsecase {
	return &OrderItemUsecase{tx: tx, logger: logger}
}

type AddOrderItemInput struct {
	OrderID   uuid.UUID
	ProductID uuid.UUID
	Quantity  int64
	UnitPrice decimal.Decimal
}

type OrderItemOutput struct {
	ID          uuid.UUID       `json:"id"`
	OrderID     uuid.UUID       `json:"order_id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int64           `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// AddOrUpdateItem creates the line for a first add and merges quantities on
// a repeat add. The merged line keeps the unit price stored at first add;
// the requested price is ignored on merge. Reservation decrements product
// stock by the requested delta and is rolled back with everything else on
// failure.
func (u *OrderItemUsecase) AddOrUpdateItem(ctx context.Context, in AddOrderItemInput) (OrderItemOutput, error) {
	if in.Quantity < 1 {
		return OrderItemOutput{}, NewError(KindValidation, "quantity must be at least 1")
	}
	if !in.UnitPrice.IsPositive() {
		return OrderItemOutput{}, NewError(KindValidation, "price must be greater than zero")
	}

	u.logger.Info("processing order item",
		zap.String("order_id", in.OrderID.String()),
		zap.String("product_id", in.ProductID.String()),
		zap.Int64("quantity", in.Quantity),
	)

	var out OrderItemOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// lock the order row for the rest of the tx
		order, err := r.Orders().FindByIDForUpdate(ctx, in.OrderID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order not found")
		}
		if err != nil {
			return errInternal()
		}
		if order.Status != model.OrderStatusPending {
			return NewError(KindInvalidState, "order is not pending")
		}

		product, err := r.Products().FindByID(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "product not found")
		}
		if err != nil {
			return errInternal()
		}

		existing, found, err := r.OrderItems().FindByOrderAndProduct(ctx, in.OrderID, in.ProductID)
		if err != nil {
			return errInternal()
		}

		// Reserve only the delta. Stock already excludes previously reserved
		// quantities, so a short product fails here and nothing is written.
		ok, err := r.Inventory().Reserve(ctx, in.ProductID, in.Quantity)
		if err != nil {
			return errInternal()
		}
		if !ok {
			u.logger.Warn("insufficient stock",
				zap.String("product_id", in.ProductID.String()),
				zap.Int64("requested", in.Quantity),
			)
			return NewError(KindInsufficientStock, "insufficient stock for the product")
		}

		if found {
			newQty := existing.Quantity + in.Quantity
			if err := r.OrderItems().UpdateQuantity(ctx, existing.ID, newQty); err != nil {
				return errInternal()
			}
			existing.Quantity = newQty
			out = toOrderItemOutput(existing, product.Name)
			return nil
		}

		created, err := r.OrderItems().Create(ctx, model.OrderItem{
			OrderID:   in.OrderID,
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Price:     in.UnitPrice,
		})
		if err != nil {
			return errInternal()
		}
		out = toOrderItemOutput(created, product.Name)
		return nil
	})

	if err != nil {
		return OrderItemOutput{}, err
	}
	return out, nil
}

// RemoveItem deletes a line and puts its reserved quantity back to stock.
func (u *OrderItemUsecase) RemoveItem(ctx context.Context, orderItemID uuid.UUID) error {
	if orderItemID == uuid.Nil {
		return NewError(KindValidation, "invalid order item id")
	}

	u.logger.Info("removing order item", zap.String("order_item_id", orderItemID.String()))

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		item, err := r.OrderItems().FindByID(ctx, orderItemID)
		if err == repo.ErrNotFound {
			return NewError(KindNotFound, "order item not found")
		}
		if err != nil {
			return errInternal()
		}

		order, err := r.Orders().FindByIDForUpdate(ctx, item.OrderID)
		if err != nil {
			return errInternal()
		}
		if order.Status != model.OrderStatusPending {
			return NewError(KindInvalidState, "order is not pending")
		}

		if err := r.OrderItems().Delete(ctx, item.ID); err != nil {
			return errInternal()
		}
		if err := r.Inventory().Release(ctx, item.ProductID, item.Quantity); err != nil {
			return errInternal()
		}
		return nil
	})
}

func (u *OrderItemUsecase) ListItems(ctx context.Context, orderID uuid.UUID) ([]OrderItemOutput, error) {
	if orderID == uuid.Nil {
		return []OrderItemOutput{}, NewError(KindValidation, "invalid order id")
	}

	var outs []OrderItemOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		if _, err := r.Orders().FindByID(ctx, orderID); err != nil {
			if err == repo.ErrNotFound {
				return NewError(KindNotFound, "order not found")
			}
			return errInternal()
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return errInternal()
		}

		outs = make([]OrderItemOutput, 0, len(items))
		for _, it := range items {
			name := ""
			if p, err := r.Products().FindByID(ctx, it.ProductID); err == nil {
				name = p.Name
			}
			outs = append(outs, toOrderItemOutput(it, name))
		}
		return nil
	})

	if err != nil {
		return []OrderItemOutput{}, err
	}
	return outs, nil
}

func toOrderItemOutput(it model.OrderItem, productName string) OrderItemOutput {
	return OrderItemOutput{
		ID:          it.ID,
		OrderID:     it.OrderID,
		ProductID:   it.ProductID,
		ProductName: productName,
		Quantity:    it.Quantity,
		Price:       it.Price,
		CreatedAt:   it.CreatedAt,
		UpdatedAt:   it.UpdatedAt,
	}
}

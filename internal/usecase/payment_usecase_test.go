package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
	"commerce/internal/usecase"
)

func newPaymentUsecase() (*usecase.PaymentUsecase, *txRepos, *publisherStub) {
	repos := newTxRepos()
	pub := &publisherStub{}
	uc := usecase.NewPaymentUsecase(&txManagerStub{repos: repos}, pub, zap.NewNop())
	return uc, repos, pub
}

// The happy path: payment stored COMPLETED with a server-generated
// transaction id, the order advanced to COMPLETED in the same unit, and one
// settlement event published after it.
func TestPaymentUsecase_CreatePayment_SettlesOrder(t *testing.T) {
	uc, repos, pub := newPaymentUsecase()

	orderID := uuid.New()
	total := decimal.RequireFromString("250.00")

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: total}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(false, nil)
	repos.payments.On("ExistsByTransactionID", mock.Anything, "tx-1").Return(false, nil)
	repos.payments.On("Create", mock.Anything, mock.MatchedBy(func(p model.Payment) bool {
		return p.OrderID == orderID &&
			p.Status == model.PaymentStatusCompleted &&
			p.Method == model.PaymentMethodCreditCard &&
			p.TransactionID != "tx-1" // server id replaces the caller's
	})).Return(model.Payment{
		ID:            uuid.New(),
		OrderID:       orderID,
		Amount:        total,
		Method:        model.PaymentMethodCreditCard,
		Status:        model.PaymentStatusCompleted,
		TransactionID: uuid.NewString(),
		CreatedAt:     time.Now(),
	}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCompleted).Return(nil)

	out, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        total,
		Method:        model.PaymentMethodCreditCard,
		TransactionID: "tx-1",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(model.PaymentStatusCompleted), out.Status)
	assert.NotEqual(t, "tx-1", out.TransactionID)
	assert.NotEmpty(t, out.TransactionID)
	repos.orders.AssertExpectations(t)
	if assert.Len(t, pub.published, 1) {
		assert.Equal(t, out.ID, pub.published[0].PaymentID)
		assert.Equal(t, orderID, pub.published[0].OrderID)
	}
}

func TestPaymentUsecase_CreatePayment_DuplicateOrder(t *testing.T) {
	uc, repos, pub := newPaymentUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: decimal.RequireFromString("10.00")}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(true, nil)

	_, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        decimal.RequireFromString("10.00"),
		Method:        model.PaymentMethodCreditCard,
		TransactionID: "tx-1",
	})

	assertKind(t, err, usecase.KindConflict)
	repos.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.published)
}

func TestPaymentUsecase_CreatePayment_DuplicateTransactionID(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: decimal.RequireFromString("10.00")}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(false, nil)
	repos.payments.On("ExistsByTransactionID", mock.Anything, "tx-dup").Return(true, nil)

	_, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        decimal.RequireFromString("10.00"),
		Method:        model.PaymentMethodPaypal,
		TransactionID: "tx-dup",
	})

	assertKind(t, err, usecase.KindConflict)
	repos.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CreatePayment_AmountBelowTotal(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: decimal.RequireFromString("100.00")}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(false, nil)
	repos.payments.On("ExistsByTransactionID", mock.Anything, "tx-1").Return(false, nil)

	_, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        decimal.RequireFromString("99.99"),
		Method:        model.PaymentMethodCreditCard,
		TransactionID: "tx-1",
	})

	assertKind(t, err, usecase.KindValidation)
	repos.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_CreatePayment_OrderNotPayable(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusCancelled, TotalPrice: decimal.RequireFromString("10.00")}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(false, nil)
	repos.payments.On("ExistsByTransactionID", mock.Anything, "tx-1").Return(false, nil)

	_, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        decimal.RequireFromString("10.00"),
		Method:        model.PaymentMethodCreditCard,
		TransactionID: "tx-1",
	})

	assertKind(t, err, usecase.KindInvalidState)
}

// When a racer wins the insert despite the fast-path checks, the unique index
// violation surfaces as a conflict and the order is left untouched.
func TestPaymentUsecase_CreatePayment_InsertRace(t *testing.T) {
	uc, repos, pub := newPaymentUsecase()

	orderID := uuid.New()
	total := decimal.RequireFromString("10.00")

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending, TotalPrice: total}, nil)
	repos.payments.On("ExistsByOrderID", mock.Anything, orderID).Return(false, nil)
	repos.payments.On("ExistsByTransactionID", mock.Anything, "tx-1").Return(false, nil)
	repos.payments.On("Create", mock.Anything, mock.Anything).Return(model.Payment{}, repo.ErrConflict)

	_, err := uc.CreatePayment(context.Background(), usecase.CreatePaymentInput{
		OrderID:       orderID,
		Amount:        total,
		Method:        model.PaymentMethodCreditCard,
		TransactionID: "tx-1",
	})

	assertKind(t, err, usecase.KindConflict)
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.published)
}

func TestPaymentUsecase_CreatePayment_InvalidInput(t *testing.T) {
	uc, _, _ := newPaymentUsecase()

	cases := []usecase.CreatePaymentInput{
		{OrderID: uuid.Nil, Amount: decimal.RequireFromString("10.00"), Method: model.PaymentMethodCreditCard, TransactionID: "tx-1"},
		{OrderID: uuid.New(), Amount: decimal.Zero, Method: model.PaymentMethodCreditCard, TransactionID: "tx-1"},
		{OrderID: uuid.New(), Amount: decimal.RequireFromString("10.00"), Method: "GOLD_COINS", TransactionID: "tx-1"},
		{OrderID: uuid.New(), Amount: decimal.RequireFromString("10.00"), Method: model.PaymentMethodCreditCard, TransactionID: "   "},
	}
	for _, in := range cases {
		_, err := uc.CreatePayment(context.Background(), in)
		assertKind(t, err, usecase.KindValidation)
	}
}

func TestPaymentUsecase_UpdateStatus_CompletedIsFinal(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	paymentID := uuid.New()

	repos.payments.On("FindByID", mock.Anything, paymentID).
		Return(model.Payment{ID: paymentID, Status: model.PaymentStatusCompleted}, nil)

	_, err := uc.UpdateStatus(context.Background(), paymentID, model.PaymentStatusCancelled)

	assertKind(t, err, usecase.KindInvalidState)
	repos.payments.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestPaymentUsecase_UpdateStatus_PendingMoves(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	paymentID := uuid.New()

	repos.payments.On("FindByID", mock.Anything, paymentID).
		Return(model.Payment{ID: paymentID, Status: model.PaymentStatusPending}, nil)
	repos.payments.On("UpdateStatus", mock.Anything, paymentID, model.PaymentStatusFailed).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), paymentID, model.PaymentStatusFailed)

	assert.NoError(t, err)
	assert.Equal(t, string(model.PaymentStatusFailed), out.Status)
	repos.payments.AssertExpectations(t)
}

func TestPaymentUsecase_DeletePayment_CompletedIsFinal(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	paymentID := uuid.New()

	repos.payments.On("FindByID", mock.Anything, paymentID).
		Return(model.Payment{ID: paymentID, Status: model.PaymentStatusCompleted}, nil)

	err := uc.DeletePayment(context.Background(), paymentID)

	assertKind(t, err, usecase.KindInvalidState)
	repos.payments.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPaymentUsecase_DeletePayment_Pending(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	paymentID := uuid.New()

	repos.payments.On("FindByID", mock.Anything, paymentID).
		Return(model.Payment{ID: paymentID, Status: model.PaymentStatusPending}, nil)
	repos.payments.On("Delete", mock.Anything, paymentID).Return(nil)

	err := uc.DeletePayment(context.Background(), paymentID)

	assert.NoError(t, err)
	repos.payments.AssertExpectations(t)
}

func TestPaymentUsecase_GetPayment_NotFound(t *testing.T) {
	uc, repos, _ := newPaymentUsecase()

	paymentID := uuid.New()
	repos.payments.On("FindByID", mock.Anything, paymentID).
		Return(model.Payment{}, repo.ErrNotFound)

	_, err := uc.GetPayment(context.Background(), paymentID)
	assertKind(t, err, usecase.KindNotFound)
}

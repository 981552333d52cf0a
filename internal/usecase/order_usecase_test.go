package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"commerce/internal/domain/model"
	repo "commerce/internal/repository"
	"commerce/internal/usecase"
)

func newOrderUsecase() (*usecase.OrderUsecase, *txRepos) {
	repos := newTxRepos()
	uc := usecase.NewOrderUsecase(&txManagerStub{repos: repos}, zap.NewNop())
	return uc, repos
}

func validCreateOrderInput(userID uuid.UUID) usecase.CreateOrderInput {
	return usecase.CreateOrderInput{
		UserID:     userID,
		Street:     "1-2-3 Chuo",
		City:       "Osaka",
		State:      "Osaka",
		Country:    "Japan",
		PostalCode: "53000",
		TotalPrice: decimal.RequireFromString("120.00"),
	}
}

func TestOrderUsecase_CreateOrder_StartsPending(t *testing.T) {
	uc, repos := newOrderUsecase()

	userID := uuid.New()

	repos.users.On("ExistsByID", mock.Anything, userID).Return(true, nil)
	repos.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.UserID == userID && o.Status == model.OrderStatusPending
	})).Return(model.Order{
		ID:         uuid.New(),
		UserID:     userID,
		Status:     model.OrderStatusPending,
		TotalPrice: decimal.RequireFromString("120.00"),
	}, nil)

	out, err := uc.CreateOrder(context.Background(), validCreateOrderInput(userID))

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)
	repos.orders.AssertExpectations(t)
}

func TestOrderUsecase_CreateOrder_UserNotFound(t *testing.T) {
	uc, repos := newOrderUsecase()

	userID := uuid.New()
	repos.users.On("ExistsByID", mock.Anything, userID).Return(false, nil)

	_, err := uc.CreateOrder(context.Background(), validCreateOrderInput(userID))

	assertKind(t, err, usecase.KindNotFound)
	repos.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_CreateOrder_InvalidPostalCode(t *testing.T) {
	uc, _ := newOrderUsecase()

	for _, code := range []string{"", "123", "123456", "ABCDE", "12 34"} {
		in := validCreateOrderInput(uuid.New())
		in.PostalCode = code
		_, err := uc.CreateOrder(context.Background(), in)
		assertKind(t, err, usecase.KindValidation)
	}
}

func TestOrderUsecase_CreateOrder_NonPositiveTotal(t *testing.T) {
	uc, _ := newOrderUsecase()

	in := validCreateOrderInput(uuid.New())
	in.TotalPrice = decimal.Zero
	_, err := uc.CreateOrder(context.Background(), in)
	assertKind(t, err, usecase.KindValidation)
}

func TestOrderUsecase_UpdateStatus_PendingToCompleted(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)
	repos.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCompleted).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), orderID, model.OrderStatusCompleted)

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCompleted), out.Status)
	repos.orders.AssertExpectations(t)
}

// Terminal states never move; in particular a settled order cannot be pushed
// back to PENDING.
func TestOrderUsecase_UpdateStatus_RejectsIllegalTransition(t *testing.T) {
	uc, repos := newOrderUsecase()

	cases := []struct {
		from model.OrderStatus
		to   model.OrderStatus
	}{
		{model.OrderStatusCompleted, model.OrderStatusPending},
		{model.OrderStatusCompleted, model.OrderStatusCancelled},
		{model.OrderStatusCancelled, model.OrderStatusPending},
		{model.OrderStatusCancelled, model.OrderStatusCompleted},
		{model.OrderStatusPending, model.OrderStatusPending},
	}

	for _, c := range cases {
		orderID := uuid.New()
		repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
			Return(model.Order{ID: orderID, Status: c.from}, nil)

		_, err := uc.UpdateStatus(context.Background(), orderID, c.to)
		assertKind(t, err, usecase.KindInvalidState)
	}
	repos.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_UpdateStatus_CancelReleasesStock(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()
	productA := uuid.New()
	productB := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, orderID).
		Return([]model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: productA, Quantity: 2},
			{ID: uuid.New(), OrderID: orderID, ProductID: productB, Quantity: 5},
		}, nil)
	repos.inventory.On("Release", mock.Anything, productA, int64(2)).Return(nil)
	repos.inventory.On("Release", mock.Anything, productB, int64(5)).Return(nil)
	repos.orders.On("UpdateStatus", mock.Anything, orderID, model.OrderStatusCancelled).Return(nil)

	out, err := uc.UpdateStatus(context.Background(), orderID, model.OrderStatusCancelled)

	assert.NoError(t, err)
	assert.Equal(t, string(model.OrderStatusCancelled), out.Status)
	repos.inventory.AssertExpectations(t)
}

func TestOrderUsecase_DeleteOrder_CompletedRejected(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusCompleted}, nil)

	err := uc.DeleteOrder(context.Background(), orderID)

	assertKind(t, err, usecase.KindInvalidState)
	repos.orders.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestOrderUsecase_DeleteOrder_PendingReleasesStock(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()
	productID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusPending}, nil)
	repos.orderItems.On("ListByOrderID", mock.Anything, orderID).
		Return([]model.OrderItem{
			{ID: uuid.New(), OrderID: orderID, ProductID: productID, Quantity: 3},
		}, nil)
	repos.inventory.On("Release", mock.Anything, productID, int64(3)).Return(nil)
	repos.orderItems.On("DeleteByOrderID", mock.Anything, orderID).Return(nil)
	repos.orders.On("Delete", mock.Anything, orderID).Return(nil)

	err := uc.DeleteOrder(context.Background(), orderID)

	assert.NoError(t, err)
	repos.inventory.AssertExpectations(t)
	repos.orders.AssertExpectations(t)
}

// A cancelled order already gave its stock back, so deletion must not
// release again.
func TestOrderUsecase_DeleteOrder_CancelledSkipsRelease(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()

	repos.orders.On("FindByIDForUpdate", mock.Anything, orderID).
		Return(model.Order{ID: orderID, Status: model.OrderStatusCancelled}, nil)
	repos.orderItems.On("DeleteByOrderID", mock.Anything, orderID).Return(nil)
	repos.orders.On("Delete", mock.Anything, orderID).Return(nil)

	err := uc.DeleteOrder(context.Background(), orderID)

	assert.NoError(t, err)
	repos.inventory.AssertNotCalled(t, "Release", mock.Anything, mock.Anything, mock.Anything)
}

func TestOrderUsecase_ListOrdersForUser_FiltersByStatus(t *testing.T) {
	uc, repos := newOrderUsecase()

	userID := uuid.New()
	status := model.OrderStatusPending

	repos.users.On("ExistsByID", mock.Anything, userID).Return(true, nil)
	repos.orders.On("ListByUserID", mock.Anything, userID, &status).
		Return([]model.Order{
			{ID: uuid.New(), UserID: userID, Status: model.OrderStatusPending},
		}, nil)

	outs, err := uc.ListOrdersForUser(context.Background(), userID, &status)

	assert.NoError(t, err)
	assert.Len(t, outs, 1)
}

func TestOrderUsecase_GetOrder_NotFound(t *testing.T) {
	uc, repos := newOrderUsecase()

	orderID := uuid.New()
	repos.orders.On("FindByID", mock.Anything, orderID).
		Return(model.Order{}, repo.ErrNotFound)

	_, err := uc.GetOrder(context.Background(), orderID)
	assertKind(t, err, usecase.KindNotFound)
}

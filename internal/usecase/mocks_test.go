package usecase_test

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"commerce/internal/domain/model"
	"commerce/internal/event"
	repo "commerce/internal/repository"
)

// =====================
// Repo mocks
// =====================

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) FindByID(ctx context.Context, userID uuid.UUID) (model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(model.User)
	return u, args.Error(1)
}

func (m *UserRepoMock) ExistsByID(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *UserRepoMock) List(ctx context.Context) ([]model.User, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.User)
	return users, args.Error(1)
}

func (m *UserRepoMock) Update(ctx context.Context, user model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepoMock) Delete(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) Create(ctx context.Context, product model.Product) (model.Product, error) {
	args := m.Called(ctx, product)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID uuid.UUID) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ExistsByNameIgnoreCase(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *ProductRepoMock) List(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) ListByCategoryID(ctx context.Context, categoryID uuid.UUID) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, product model.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *ProductRepoMock) Delete(ctx context.Context, productID uuid.UUID) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (model.Order, error) {
	args := m.Called(ctx, order)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID uuid.UUID) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID uuid.UUID) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByUserID(ctx context.Context, userID uuid.UUID, status *model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, userID, status)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID uuid.UUID, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) Delete(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) Create(ctx context.Context, item model.OrderItem) (model.OrderItem, error) {
	args := m.Called(ctx, item)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *OrderItemRepoMock) FindByID(ctx context.Context, orderItemID uuid.UUID) (model.OrderItem, error) {
	args := m.Called(ctx, orderItemID)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Error(1)
}

func (m *OrderItemRepoMock) FindByOrderAndProduct(ctx context.Context, orderID, productID uuid.UUID) (model.OrderItem, bool, error) {
	args := m.Called(ctx, orderID, productID)
	it, _ := args.Get(0).(model.OrderItem)
	return it, args.Bool(1), args.Error(2)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID uuid.UUID) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) UpdateQuantity(ctx context.Context, orderItemID uuid.UUID, quantity int64) error {
	args := m.Called(ctx, orderItemID, quantity)
	return args.Error(0)
}

func (m *OrderItemRepoMock) Delete(ctx context.Context, orderItemID uuid.UUID) error {
	args := m.Called(ctx, orderItemID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID uuid.UUID) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) Create(ctx context.Context, payment model.Payment) (model.Payment, error) {
	args := m.Called(ctx, payment)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) FindByID(ctx context.Context, paymentID uuid.UUID) (model.Payment, error) {
	args := m.Called(ctx, paymentID)
	p, _ := args.Get(0).(model.Payment)
	return p, args.Error(1)
}

func (m *PaymentRepoMock) ExistsByOrderID(ctx context.Context, orderID uuid.UUID) (bool, error) {
	args := m.Called(ctx, orderID)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepoMock) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	args := m.Called(ctx, transactionID)
	return args.Bool(0), args.Error(1)
}

func (m *PaymentRepoMock) UpdateStatus(ctx context.Context, paymentID uuid.UUID, status model.PaymentStatus) error {
	args := m.Called(ctx, paymentID, status)
	return args.Error(0)
}

func (m *PaymentRepoMock) Delete(ctx context.Context, paymentID uuid.UUID) error {
	args := m.Called(ctx, paymentID)
	return args.Error(0)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) Reserve(ctx context.Context, productID uuid.UUID, qty int64) (bool, error) {
	args := m.Called(ctx, productID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) Release(ctx context.Context, productID uuid.UUID, qty int64) error {
	args := m.Called(ctx, productID, qty)
	return args.Error(0)
}

func (m *InventoryRepoMock) SetStock(ctx context.Context, productID uuid.UUID, stock int64) error {
	args := m.Called(ctx, productID, stock)
	return args.Error(0)
}

// =====================
// Transaction manager stub
// =====================

// txRepos bundles one mock per repository; the stub manager just runs the
// callback against them, mirroring a committed transaction.
type txRepos struct {
	users      *UserRepoMock
	products   *ProductRepoMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	payments   *PaymentRepoMock
	inventory  *InventoryRepoMock
}

func newTxRepos() *txRepos {
	return &txRepos{
		users:      new(UserRepoMock),
		products:   new(ProductRepoMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		payments:   new(PaymentRepoMock),
		inventory:  new(InventoryRepoMock),
	}
}

func (r *txRepos) Users() repo.UserRepository           { return r.users }
func (r *txRepos) Products() repo.ProductRepository     { return r.products }
func (r *txRepos) Orders() repo.OrderRepository         { return r.orders }
func (r *txRepos) OrderItems() repo.OrderItemRepository { return r.orderItems }
func (r *txRepos) Payments() repo.PaymentRepository     { return r.payments }
func (r *txRepos) Inventory() repo.InventoryRepository  { return r.inventory }

type txManagerStub struct {
	repos *txRepos
}

func (m *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(m.repos)
}

// =====================
// Event publisher stub
// =====================

type publisherStub struct {
	published []event.PaymentSettled
}

func (p *publisherStub) PublishPaymentSettled(ctx context.Context, evt event.PaymentSettled) error {
	p.published = append(p.published, evt)
	return nil
}

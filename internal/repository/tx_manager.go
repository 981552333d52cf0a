package repository

import "context"

// Repos bound to one running transaction.
type TxRepos interface {
	Users() UserRepository
	Products() ProductRepository
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Payments() PaymentRepository
	Inventory() InventoryRepository
}

// Hides begin/commit/rollback from the usecases. Any error returned by fn
// rolls the whole unit back.
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}

package repository

import (
	"context"

	"github.com/google/uuid"
)

// Owns Product.Stock. A reservation decrements visible stock immediately;
// stock never goes negative because the decrement is conditional.
type InventoryRepository interface {
	// Reserve decrements stock by qty when enough is available.
	// Returns false when the product is short (or missing).
	Reserve(ctx context.Context, productID uuid.UUID, qty int64) (bool, error)

	// Release puts a reserved quantity back (item removal, order cancel).
	Release(ctx context.Context, productID uuid.UUID, qty int64) error

	// SetStock overwrites the current value (admin restock path only).
	SetStock(ctx context.Context, productID uuid.UUID, stock int64) error
}

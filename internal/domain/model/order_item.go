package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// One line per (order, product). Repeat adds merge into the existing line,
// keeping the unit price snapshot from the first add.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_product" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_order_product" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

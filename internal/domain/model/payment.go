package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentMethodCreditCard   PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard    PaymentMethod = "DEBIT_CARD"
	PaymentMethodBankTransfer PaymentMethod = "BANK_TRANSFER"
	PaymentMethodPaypal       PaymentMethod = "PAYPAL"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodBankTransfer, PaymentMethodPaypal:
		return true
	}
	return false
}

// The unique index on order_id is the authoritative one-payment-per-order
// guard; the application-level existence check is only a fast path.
type Payment struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Amount        decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"amount"`
	Method        PaymentMethod   `gorm:"type:varchar(30);not null" json:"method"`
	Status        PaymentStatus   `gorm:"type:varchar(20);not null" json:"status"`
	TransactionID string          `gorm:"type:varchar(255);not null;uniqueIndex" json:"transaction_id"`
	CreatedAt     time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

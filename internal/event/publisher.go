package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentSettled is published once a payment reaches COMPLETED. Settlement
// is final, so consumers can treat the event as authoritative.
type PaymentSettled struct {
	PaymentID     uuid.UUID       `json:"payment_id"`
	OrderID       uuid.UUID       `json:"order_id"`
	Amount        decimal.Decimal `json:"amount"`
	TransactionID string          `json:"transaction_id"`
	SettledAt     time.Time       `json:"settled_at"`
}

type Publisher interface {
	PublishPaymentSettled(ctx context.Context, evt PaymentSettled) error
}

// NoopPublisher is used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishPaymentSettled(ctx context.Context, evt PaymentSettled) error {
	return nil
}

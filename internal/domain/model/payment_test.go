package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, PaymentMethodCreditCard.Valid())
	assert.True(t, PaymentMethodDebitCard.Valid())
	assert.True(t, PaymentMethodBankTransfer.Valid())
	assert.True(t, PaymentMethodPaypal.Valid())
	assert.False(t, PaymentMethod("CASH").Valid())
}

func TestPaymentStatus_Valid(t *testing.T) {
	assert.True(t, PaymentStatusPending.Valid())
	assert.True(t, PaymentStatusCompleted.Valid())
	assert.True(t, PaymentStatusFailed.Valid())
	assert.True(t, PaymentStatusCancelled.Valid())
	assert.False(t, PaymentStatus("REFUNDED").Valid())
}

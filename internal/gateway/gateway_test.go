package gateway

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinorUnits(t *testing.T) {
	assert.Equal(t, int64(155000), MinorUnits(decimal.NewFromInt(155000), "VND"))
	assert.Equal(t, int64(3001), MinorUnits(decimal.RequireFromString("3000.5"), "vnd"))
	assert.Equal(t, int64(1999), MinorUnits(decimal.RequireFromString("19.99"), "usd"))
	assert.Equal(t, int64(1000), MinorUnits(decimal.RequireFromString("9.995"), "eur"))
}

func TestManual(t *testing.T) {
	res, err := Manual{}.Charge(context.Background(), ChargeRequest{ContractID: 1, PaymentMethodID: "terminal-42"})
	require.NoError(t, err)
	assert.Equal(t, "terminal-42", res.Reference)
}

func TestStripeRequiresPaymentMethod(t *testing.T) {
	_, err := NewStripe("sk_test_x", "vnd").Charge(context.Background(), ChargeRequest{ContractID: 1, Amount: decimal.NewFromInt(10)})
	assert.ErrorIs(t, err, ErrDeclined)
}

func TestManualRefund(t *testing.T) {
	assert.NoError(t, Manual{}.Refund(context.Background(), "terminal-42"))
}

func TestStripeRefundRequiresReference(t *testing.T) {
	assert.Error(t, NewStripe("sk_test_x", "vnd").Refund(context.Background(), ""))
}

func TestIdempotencyKey(t *testing.T) {
	assert.Equal(t, "contract-7-payment", idempotencyKey(ChargeRequest{ContractID: 7}))
	assert.Equal(t, "contract-7-payment-abc", idempotencyKey(ChargeRequest{ContractID: 7, IdempotencyKey: "contract-7-payment-abc"}))
}

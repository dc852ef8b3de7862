// Package gateway charges card payments. Cash and transfer payments never
// reach it.
package gateway

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrDeclined = errors.New("payment declined")

type ChargeRequest struct {
	ContractID      int64
	Amount          decimal.Decimal
	PaymentMethodID string
	Description     string
	ReceiptEmail    string
	// IdempotencyKey identifies one payment attempt. A refunded attempt
	// must not share its key with the retry that follows.
	IdempotencyKey string
}

type ChargeResult struct {
	Reference string
	Status    string
}

type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error)
	// Refund reverses a successful charge whose payment could not be
	// recorded.
	Refund(ctx context.Context, reference string) error
}

// Manual records card payments taken on a terminal outside the system.
type Manual struct{}

func (Manual) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	return &ChargeResult{Reference: req.PaymentMethodID, Status: "manual"}, nil
}

// Refund is a no-op; terminal payments are reversed on the terminal.
func (Manual) Refund(ctx context.Context, reference string) error {
	return nil
}

// zeroDecimal lists currencies Stripe charges in whole units.
var zeroDecimal = map[string]bool{
	"bif": true, "clp": true, "djf": true, "gnf": true, "jpy": true, "kmf": true, "krw": true, "mga": true,
	"pyg": true, "rwf": true, "ugx": true, "vnd": true, "vuv": true, "xaf": true, "xof": true, "xpf": true,
}

// MinorUnits converts amount into the integer unit the processor expects,
// rounding half up.
func MinorUnits(amount decimal.Decimal, currency string) int64 {
	if zeroDecimal[strings.ToLower(currency)] {
		return amount.Round(0).IntPart()
	}
	return amount.Shift(2).Round(0).IntPart()
}

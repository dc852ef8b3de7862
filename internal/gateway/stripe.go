package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/stripe/stripe-go/v84"
	"github.com/stripe/stripe-go/v84/paymentintent"
	"github.com/stripe/stripe-go/v84/refund"

	"motorent-backoffice/internal/logger"
)

// Stripe confirms a PaymentIntent server side with the payment method the
// front desk collected.
type Stripe struct {
	currency string
}

func NewStripe(secretKey, currency string) *Stripe {
	stripe.Key = secretKey
	return &Stripe{currency: currency}
}

func (s *Stripe) Charge(ctx context.Context, req ChargeRequest) (*ChargeResult, error) {
	if req.PaymentMethodID == "" {
		return nil, fmt.Errorf("%w: payment method is required for card payments", ErrDeclined)
	}

	params := &stripe.PaymentIntentParams{
		Amount:        stripe.Int64(MinorUnits(req.Amount, s.currency)),
		Currency:      stripe.String(s.currency),
		PaymentMethod: stripe.String(req.PaymentMethodID),
		Description:   stripe.String(req.Description),
		Confirm:       stripe.Bool(true),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled:        stripe.Bool(true),
			AllowRedirects: stripe.String("never"),
		},
	}
	if req.ReceiptEmail != "" {
		params.ReceiptEmail = stripe.String(req.ReceiptEmail)
	}
	params.AddMetadata("contract_id", fmt.Sprint(req.ContractID))
	params.SetIdempotencyKey(idempotencyKey(req))

	logger.ExternalServiceCall(ctx, "stripe", "paymentintent.create", "contract_id", req.ContractID)
	pi, err := paymentintent.New(params)
	logger.ExternalServiceResult(ctx, "stripe", "paymentintent.create", err)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) && stripeErr.Type == stripe.ErrorTypeCard {
			return nil, fmt.Errorf("%w: %s", ErrDeclined, stripeErr.Msg)
		}
		return nil, err
	}
	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("%w: payment intent %s is %s", ErrDeclined, pi.ID, pi.Status)
	}
	return &ChargeResult{Reference: pi.ID, Status: string(pi.Status)}, nil
}

// Refund returns the full amount of a confirmed PaymentIntent.
func (s *Stripe) Refund(ctx context.Context, reference string) error {
	if reference == "" {
		return errors.New("refund: empty payment reference")
	}
	params := &stripe.RefundParams{PaymentIntent: stripe.String(reference)}
	params.AddMetadata("reason", "payment not recorded")
	params.SetIdempotencyKey("refund-" + reference)

	logger.ExternalServiceCall(ctx, "stripe", "refund.create", "payment_intent", reference)
	_, err := refund.New(params)
	logger.ExternalServiceResult(ctx, "stripe", "refund.create", err)
	return err
}

func idempotencyKey(req ChargeRequest) string {
	if req.IdempotencyKey != "" {
		return req.IdempotencyKey
	}
	return fmt.Sprintf("contract-%d-payment", req.ContractID)
}

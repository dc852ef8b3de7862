package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/gateway"
	"motorent-backoffice/internal/service"
)

func completedContract() *domain.RentalContract {
	late := dec(80000)
	return &domain.RentalContract{
		ID:            42,
		CustomerID:    5,
		MotorbikeID:   7,
		Status:        domain.ContractStatusCompleted,
		RentalDate:    testNow.Add(-24 * time.Hour),
		TotalAmount:   dec(60000),
		LateReturnFee: decimalNull(late),
		DepositAmount: dec(500000),
	}
}

func TestPaymentService_Preview(t *testing.T) {
	repos := newTestRepos()
	svc := service.NewPaymentService(repos.Repositories(), new(MockGateway), new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))

	repos.contracts.On("GetByID", mock.Anything, int64(42)).Return(completedContract(), nil)
	repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
		Return(&domain.Incident{DamageCost: dec(15000)}, nil)

	b, err := svc.Preview(context.Background(), 42)
	require.NoError(t, err)
	assert.True(t, b.AmountDue.Equal(dec(155000)))
	assert.True(t, b.LateReturnFee.Equal(dec(80000)))
}

func TestPaymentService_Process(t *testing.T) {
	ctx := context.Background()
	_, _, _, _, cust := fixtures()

	t.Run("Cash", func(t *testing.T) {
		repos := newTestRepos()
		email := new(MockEmailService)
		gw := new(MockGateway)
		svc := service.NewPaymentService(repos.Repositories(), gw, email, nopMetrics{}, clockwork.NewFakeClockAt(testNow))
		contract := completedContract()
		detail := &domain.ContractDetail{RentalContract: *contract}

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(contract, nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(&domain.Incident{DamageCost: dec(15000)}, nil)
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		repos.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Amount.Equal(dec(155000)) && p.Method == domain.PaymentMethodCash &&
				p.EmployeeID == 9 && p.PaymentDate.Equal(testNow)
		})).Return(nil)
		repos.contracts.On("Update", mock.Anything, mock.MatchedBy(func(c *domain.RentalContract) bool {
			return c.IsPaid
		})).Return(nil)
		repos.contracts.On("GetDetail", mock.Anything, int64(42)).Return(detail, nil)
		email.On("SendPaymentReceipt", mock.Anything, cust, detail, mock.AnythingOfType("*domain.Payment")).Return(nil)

		p, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCash})
		require.NoError(t, err)
		assert.True(t, p.Amount.Equal(dec(155000)))
		gw.AssertNotCalled(t, "Charge", mock.Anything, mock.Anything)
		repos.payments.AssertExpectations(t)
		email.AssertExpectations(t)
	})

	t.Run("Card Declined", func(t *testing.T) {
		repos := newTestRepos()
		gw := new(MockGateway)
		svc := service.NewPaymentService(repos.Repositories(), gw, new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(nil, domain.NotFound(domain.CodeIncidentNotFound, "none"))
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		gw.On("Charge", mock.Anything, mock.MatchedBy(func(r gateway.ChargeRequest) bool {
			return r.Amount.Equal(dec(140000)) && r.PaymentMethodID == "pm_card_chargeDeclined"
		})).Return(nil, fmt.Errorf("card_declined: %w", gateway.ErrDeclined))

		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{
			Method:          domain.PaymentMethodCard,
			PaymentMethodID: "pm_card_chargeDeclined",
		})
		assert.Equal(t, domain.CodePaymentDeclined, appCode(t, err))
		repos.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Card Charged", func(t *testing.T) {
		repos := newTestRepos()
		gw := new(MockGateway)
		email := new(MockEmailService)
		svc := service.NewPaymentService(repos.Repositories(), gw, email, nopMetrics{}, clockwork.NewFakeClockAt(testNow))

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(nil, domain.NotFound(domain.CodeIncidentNotFound, "none"))
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		gw.On("Charge", mock.Anything, mock.Anything).Return(&gateway.ChargeResult{Reference: "pi_123", Status: "succeeded"}, nil)
		repos.payments.On("Create", mock.Anything, mock.MatchedBy(func(p *domain.Payment) bool {
			return p.Reference == "pi_123"
		})).Return(nil)
		repos.contracts.On("Update", mock.Anything, mock.Anything).Return(nil)
		repos.contracts.On("GetDetail", mock.Anything, int64(42)).Return(&domain.ContractDetail{}, nil)
		email.On("SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(fmt.Errorf("smtp down"))

		p, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCard, PaymentMethodID: "pm_card_visa"})
		require.NoError(t, err, "receipt failures must not fail the payment")
		assert.Equal(t, "pi_123", p.Reference)
	})

	t.Run("Card Refunded When Payment Write Fails", func(t *testing.T) {
		repos := newTestRepos()
		gw := new(MockGateway)
		email := new(MockEmailService)
		svc := service.NewPaymentService(repos.Repositories(), gw, email, nopMetrics{}, clockwork.NewFakeClockAt(testNow))

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(nil, domain.NotFound(domain.CodeIncidentNotFound, "none"))
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		gw.On("Charge", mock.Anything, mock.MatchedBy(func(r gateway.ChargeRequest) bool {
			return strings.HasPrefix(r.IdempotencyKey, "contract-42-payment-")
		})).Return(&gateway.ChargeResult{Reference: "pi_1", Status: "succeeded"}, nil)
		repos.payments.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))
		gw.On("Refund", mock.Anything, "pi_1").Return(nil)

		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCard, PaymentMethodID: "pm_card_visa"})
		assert.EqualError(t, err, "db down")
		gw.AssertExpectations(t)
		repos.contracts.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		email.AssertNotCalled(t, "SendPaymentReceipt", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Card Refunded When Commit Fails", func(t *testing.T) {
		repos := newTestRepos()
		repos.tx = new(MockTx)
		repos.tx.On("Begin", mock.Anything).Return(nil)
		repos.tx.On("Commit", mock.Anything).Return(errors.New("connection reset"))
		repos.tx.On("Rollback", mock.Anything).Return(nil)
		gw := new(MockGateway)
		svc := service.NewPaymentService(repos.Repositories(), gw, new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(nil, domain.NotFound(domain.CodeIncidentNotFound, "none"))
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		gw.On("Charge", mock.Anything, mock.Anything).Return(&gateway.ChargeResult{Reference: "pi_2", Status: "succeeded"}, nil)
		repos.payments.On("Create", mock.Anything, mock.Anything).Return(nil)
		repos.contracts.On("Update", mock.Anything, mock.Anything).Return(nil)
		gw.On("Refund", mock.Anything, "pi_2").Return(errors.New("stripe unavailable"))

		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCard, PaymentMethodID: "pm_card_visa"})
		assert.EqualError(t, err, "connection reset")
		gw.AssertCalled(t, "Refund", mock.Anything, "pi_2")
	})

	t.Run("Cash Write Failure Skips Gateway", func(t *testing.T) {
		repos := newTestRepos()
		gw := new(MockGateway)
		svc := service.NewPaymentService(repos.Repositories(), gw, new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))

		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)
		repos.incidents.On("GetByContractID", mock.Anything, int64(42)).
			Return(nil, domain.NotFound(domain.CodeIncidentNotFound, "none"))
		repos.customers.On("GetByID", mock.Anything, int64(5)).Return(cust, nil)
		repos.payments.On("Create", mock.Anything, mock.Anything).Return(errors.New("db down"))

		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCash})
		require.Error(t, err)
		gw.AssertNotCalled(t, "Refund", mock.Anything, mock.Anything)
	})

	t.Run("Already Paid", func(t *testing.T) {
		repos := newTestRepos()
		svc := service.NewPaymentService(repos.Repositories(), new(MockGateway), new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))
		contract := completedContract()
		contract.IsPaid = true
		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(contract, nil)

		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodCash})
		assert.Equal(t, domain.CodeContractAlreadyPaid, appCode(t, err))
	})

	t.Run("Payment Before Rental", func(t *testing.T) {
		repos := newTestRepos()
		svc := service.NewPaymentService(repos.Repositories(), new(MockGateway), new(MockEmailService), nopMetrics{}, clockwork.NewFakeClockAt(testNow))
		repos.contracts.On("GetByIDForUpdate", mock.Anything, int64(42)).Return(completedContract(), nil)

		early := testNow.Add(-48 * time.Hour)
		_, err := svc.Process(ctx, 9, 42, service.ProcessPaymentInput{Method: domain.PaymentMethodTransfer, PaymentDate: &early})
		assert.Equal(t, domain.CodePaymentBeforeRental, appCode(t, err))
	})
}

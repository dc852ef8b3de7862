package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/gateway"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/pricing"
	"motorent-backoffice/internal/validator"
)

type paymentService struct {
	repos    Repositories
	gateway  gateway.Gateway
	emailSvc EmailService
	metrics  Metrics
	clock    clockwork.Clock
}

func NewPaymentService(repos Repositories, gw gateway.Gateway, emailSvc EmailService, metrics Metrics, clock clockwork.Clock) PaymentService {
	return &paymentService{
		repos:    repos,
		gateway:  gw,
		emailSvc: emailSvc,
		metrics:  metrics,
		clock:    clock,
	}
}

// Preview itemises what a payment on the contract would charge, from the
// stored contract and incident.
func (s *paymentService) Preview(ctx context.Context, contractID int64) (*domain.SettlementBreakdown, error) {
	contract, err := s.repos.Contracts.GetByID(ctx, contractID)
	if err != nil {
		return nil, err
	}
	if contract.Status != domain.ContractStatusCompleted {
		return nil, domain.BusinessRule(domain.CodeInvalidContractStatus, "only COMPLETED contracts can be paid, contract is %s", contract.Status)
	}
	incident, err := s.incidentFor(ctx, contractID)
	if err != nil {
		return nil, err
	}
	breakdown := pricing.Breakdown(contract, incident)
	return &breakdown, nil
}

// Process records the single payment of a completed contract. The amount is
// always the settlement total; CARD payments are charged through the
// gateway before anything is written.
func (s *paymentService) Process(ctx context.Context, employeeID, contractID int64, in ProcessPaymentInput) (*domain.Payment, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	paymentDate := s.clock.Now()
	if in.PaymentDate != nil {
		paymentDate = *in.PaymentDate
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	contract, err := s.repos.Contracts.GetByIDForUpdate(txCtx, contractID)
	if err != nil {
		return nil, err
	}
	if err := validator.ContractPayment(contract, paymentDate); err != nil {
		return nil, err
	}
	incident, err := s.incidentFor(txCtx, contractID)
	if err != nil {
		return nil, err
	}
	customer, err := s.repos.Customers.GetByID(txCtx, contract.CustomerID)
	if err != nil {
		return nil, err
	}

	payment := &domain.Payment{
		ContractID:  contractID,
		Amount:      pricing.CalculateSettlementTotal(contract, incident),
		PaymentDate: paymentDate,
		Method:      in.Method,
		Reference:   in.Reference,
		EmployeeID:  employeeID,
		Notes:       in.Notes,
	}

	if in.Method == domain.PaymentMethodCard {
		result, err := s.gateway.Charge(txCtx, gateway.ChargeRequest{
			ContractID:      contractID,
			Amount:          payment.Amount,
			PaymentMethodID: in.PaymentMethodID,
			Description:     fmt.Sprintf("Rental contract #%d", contractID),
			ReceiptEmail:    customer.Email,
			IdempotencyKey:  fmt.Sprintf("contract-%d-payment-%s", contractID, uuid.NewString()),
		})
		if err != nil {
			if errors.Is(err, gateway.ErrDeclined) {
				return nil, domain.BusinessRule(domain.CodePaymentDeclined, "card payment was declined")
			}
			return nil, err
		}
		payment.Reference = result.Reference
	}

	if err := s.record(txCtx, payment, contract); err != nil {
		if payment.Method == domain.PaymentMethodCard {
			s.refund(ctx, contractID, payment.Reference)
		}
		return nil, err
	}

	logger.InfoContext(ctx, "payment processed",
		"payment_id", payment.ID,
		"contract_id", contractID,
		"method", payment.Method,
		"amount", payment.Amount.String(),
	)
	s.metrics.PaymentProcessed(string(payment.Method), payment.Amount)

	detail, err := s.repos.Contracts.GetDetail(ctx, contractID)
	if err != nil {
		logger.WarnContext(ctx, "failed to load contract for receipt", "contract_id", contractID, "error", err)
		return payment, nil
	}
	if err := s.emailSvc.SendPaymentReceipt(ctx, customer, detail, payment); err != nil {
		logger.WarnContext(ctx, "failed to send payment receipt", "payment_id", payment.ID, "error", err)
	}
	return payment, nil
}

// record writes the payment and marks the contract paid, committing the
// transaction carried by ctx.
func (s *paymentService) record(ctx context.Context, payment *domain.Payment, contract *domain.RentalContract) error {
	if err := s.repos.Payments.Create(ctx, payment); err != nil {
		return err
	}
	contract.IsPaid = true
	if err := s.repos.Contracts.Update(ctx, contract); err != nil {
		return err
	}
	return s.repos.Tx.Commit(ctx)
}

// refund reverses a card charge after the payment failed to commit. It
// outlives the request context, which may be what failed the write.
func (s *paymentService) refund(ctx context.Context, contractID int64, reference string) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()
	if err := s.gateway.Refund(ctx, reference); err != nil {
		logger.ErrorContext(ctx, "failed to refund card charge, manual refund required",
			"contract_id", contractID, "reference", reference, "error", err)
		return
	}
	logger.WarnContext(ctx, "card charge refunded after payment was not recorded",
		"contract_id", contractID, "reference", reference)
}

func (s *paymentService) List(ctx context.Context, filter domain.PaymentFilter) ([]domain.Payment, int, error) {
	if filter.Method != "" && !filter.Method.Valid() {
		return nil, 0, domain.Validation(domain.CodeInvalidRequest, "unknown payment method %q", filter.Method)
	}
	return s.repos.Payments.List(ctx, filter)
}

func (s *paymentService) incidentFor(ctx context.Context, contractID int64) (*domain.Incident, error) {
	incident, err := s.repos.Incidents.GetByContractID(ctx, contractID)
	if err != nil {
		if domain.IsKind(err, domain.KindNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return incident, nil
}

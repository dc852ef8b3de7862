package service

import (
	"context"
	"strings"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/logger"
	"motorent-backoffice/internal/pricing"
	"motorent-backoffice/internal/validator"
)

// ContractRules are the configurable parts of the contract lifecycle.
type ContractRules struct {
	LateFeeMultiplier   decimal.Decimal
	ActivationTolerance time.Duration
	ActivationWindow    time.Duration
}

type contractService struct {
	repos    Repositories
	emailSvc EmailService
	metrics  Metrics
	clock    clockwork.Clock
	rules    ContractRules
}

func NewContractService(repos Repositories, emailSvc EmailService, metrics Metrics, clock clockwork.Clock, rules ContractRules) ContractService {
	if rules.LateFeeMultiplier.IsZero() {
		rules.LateFeeMultiplier = pricing.DefaultLateFeeMultiplier
	}
	return &contractService{
		repos:    repos,
		emailSvc: emailSvc,
		metrics:  metrics,
		clock:    clock,
		rules:    rules,
	}
}

func (s *contractService) Quote(ctx context.Context, in QuoteInput) (*domain.PriceQuote, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	motorbike, err := s.repos.Motorbikes.GetByID(ctx, in.MotorbikeID)
	if err != nil {
		return nil, err
	}
	quote, err := s.quote(ctx, motorbike, in.DiscountID, in.RentalDate, in.ExpectedReturnDate, in.RentalType)
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// quote loads the price list, category and discount of a motorbike and
// prices the rental at the current time.
func (s *contractService) quote(ctx context.Context, motorbike *domain.Motorbike, discountID *int64, rentalDate, expectedReturn time.Time, rentalType domain.RentalType) (domain.PriceQuote, error) {
	priceList, err := s.repos.PriceLists.GetByID(ctx, motorbike.PriceListID)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	category, err := s.repos.Categories.GetByID(ctx, motorbike.CategoryID)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	var discount *domain.Discount
	if discountID != nil {
		if discount, err = s.repos.Discounts.GetByID(ctx, *discountID); err != nil {
			return domain.PriceQuote{}, err
		}
	}
	return pricing.Quote(pricing.QuoteInput{
		RentalDate:         rentalDate,
		ExpectedReturnDate: expectedReturn,
		RentalType:         rentalType,
		Motorbike:          motorbike,
		PriceList:          priceList,
		Category:           category,
		Discount:           discount,
		At:                 s.clock.Now(),
	})
}

func (s *contractService) Create(ctx context.Context, employeeID int64, in CreateContractInput) (*domain.ContractDetail, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	contract := &domain.RentalContract{
		CustomerID:              in.CustomerID,
		MotorbikeID:             in.MotorbikeID,
		EmployeeID:              employeeID,
		DiscountID:              in.DiscountID,
		RentalDate:              in.RentalDate,
		ExpectedReturnDate:      in.ExpectedReturnDate,
		TotalAmount:             in.TotalAmount,
		LateReturnFeeMultiplier: s.rules.LateFeeMultiplier,
		Status:                  in.Status,
		RentalType:              in.RentalType,
		IDCardHeld:              in.IDCardHeld,
		Notes:                   in.Notes,
	}
	if err := validator.ContractCreation(contract); err != nil {
		return nil, err
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	customer, err := s.repos.Customers.GetByID(txCtx, in.CustomerID)
	if err != nil {
		return nil, err
	}
	open, err := s.repos.Contracts.HasOpenContract(txCtx, customer.ID)
	if err != nil {
		return nil, err
	}
	if open {
		return nil, domain.BusinessRule(domain.CodeCustomerHasContract, "customer %d already has an open contract", customer.ID)
	}

	motorbike, err := s.repos.Motorbikes.GetByIDForUpdate(txCtx, in.MotorbikeID)
	if err != nil {
		return nil, err
	}
	if err := validator.MotorbikeRentable(motorbike); err != nil {
		return nil, err
	}

	quote, err := s.quote(txCtx, motorbike, in.DiscountID, in.RentalDate, in.ExpectedReturnDate, in.RentalType)
	if err != nil {
		return nil, err
	}
	if err := validator.ContractTotal(in.TotalAmount, quote.MaxTotal); err != nil {
		return nil, err
	}
	contract.DiscountAmount = quote.DiscountAmount
	contract.DepositAmount = quote.DepositAmount

	if err := s.repos.Contracts.Create(txCtx, contract); err != nil {
		return nil, err
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, motorbike.ID, motorbikeStatusFor(contract.Status)); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "contract created",
		"contract_id", contract.ID,
		"customer_id", contract.CustomerID,
		"motorbike_id", contract.MotorbikeID,
		"status", contract.Status,
		"total", contract.TotalAmount.String(),
	)
	s.metrics.ContractCreated(string(contract.RentalType), string(contract.Status))

	detail, err := s.repos.Contracts.GetDetail(ctx, contract.ID)
	if err != nil {
		return nil, err
	}
	if err := s.emailSvc.SendContractConfirmation(ctx, customer, detail); err != nil {
		logger.WarnContext(ctx, "failed to send contract confirmation", "contract_id", contract.ID, "error", err)
	}
	return detail, nil
}

func (s *contractService) Get(ctx context.Context, id int64) (*domain.ContractDetail, error) {
	return s.repos.Contracts.GetDetail(ctx, id)
}

func (s *contractService) List(ctx context.Context, filter domain.ContractFilter) ([]domain.ContractDetail, int, error) {
	if filter.From != nil && filter.To != nil && filter.From.After(*filter.To) {
		return nil, 0, domain.Validation(domain.CodeInvalidRequest, "from must not be after to")
	}
	return s.repos.Contracts.List(ctx, filter)
}

// Activate hands the motorbike over on a Pending contract. The id card is
// taken at this point.
func (s *contractService) Activate(ctx context.Context, id int64) (*domain.ContractDetail, error) {
	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	contract, err := s.repos.Contracts.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return nil, err
	}
	if err := validator.ContractActivation(contract, s.clock.Now(), s.rules.ActivationTolerance, s.rules.ActivationWindow); err != nil {
		return nil, err
	}
	contract.Status = domain.ContractStatusActive
	contract.IDCardHeld = true
	if err := s.repos.Contracts.Update(txCtx, contract); err != nil {
		return nil, err
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, contract.MotorbikeID, domain.MotorbikeStatusRented); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "contract activated", "contract_id", id)
	return s.repos.Contracts.GetDetail(ctx, id)
}

func (s *contractService) Cancel(ctx context.Context, id int64, reason string) (*domain.ContractDetail, error) {
	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	if err := s.cancel(txCtx, id, reason); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	logger.InfoContext(ctx, "contract cancelled", "contract_id", id)
	s.metrics.ContractCancelled("manual")
	return s.repos.Contracts.GetDetail(ctx, id)
}

// cancel runs inside the caller's transaction.
func (s *contractService) cancel(txCtx context.Context, id int64, reason string) error {
	contract, err := s.repos.Contracts.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return err
	}
	if err := validator.ContractCancellation(contract); err != nil {
		return err
	}
	contract.Status = domain.ContractStatusCancelled
	if reason = strings.TrimSpace(reason); reason != "" {
		contract.Notes = strings.TrimSpace(contract.Notes + "\nCancelled: " + reason)
	}
	if err := s.repos.Contracts.Update(txCtx, contract); err != nil {
		return err
	}
	return s.repos.Motorbikes.UpdateStatus(txCtx, contract.MotorbikeID, domain.MotorbikeStatusAvailable)
}

// Settle records the return and completes the contract. The late fee is
// recomputed only when the motorbike comes back after the expected date.
func (s *contractService) Settle(ctx context.Context, id int64, in SettleContractInput) (*domain.SettlementBreakdown, error) {
	if err := validator.Struct(in); err != nil {
		return nil, err
	}
	actualReturn := s.clock.Now()
	if in.ActualReturnDate != nil {
		actualReturn = *in.ActualReturnDate
	}

	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer s.repos.Tx.Rollback(txCtx)

	contract, err := s.repos.Contracts.GetByIDForUpdate(txCtx, id)
	if err != nil {
		return nil, err
	}
	if err := validator.ContractSettlement(contract, actualReturn); err != nil {
		return nil, err
	}

	if actualReturn.After(contract.ExpectedReturnDate) {
		motorbike, err := s.repos.Motorbikes.GetByID(txCtx, contract.MotorbikeID)
		if err != nil {
			return nil, err
		}
		priceList, err := s.repos.PriceLists.GetByID(txCtx, motorbike.PriceListID)
		if err != nil {
			return nil, err
		}
		fee := pricing.CalculateLateReturnFee(actualReturn, contract.ExpectedReturnDate, contract.LateReturnFeeMultiplier, priceList.HourlyRate)
		contract.LateReturnFee = decimal.NewNullDecimal(fee)
	}

	incident, err := s.repos.Incidents.GetByContractID(txCtx, id)
	if err != nil {
		if !domain.IsKind(err, domain.KindNotFound) {
			return nil, err
		}
		incident = nil
	}

	contract.ActualReturnDate = &actualReturn
	contract.Status = domain.ContractStatusCompleted
	if in.Notes != "" {
		contract.Notes = strings.TrimSpace(contract.Notes + "\n" + in.Notes)
	}
	if err := s.repos.Contracts.Update(txCtx, contract); err != nil {
		return nil, err
	}

	bikeStatus := domain.MotorbikeStatusAvailable
	if incident != nil && incident.Status != domain.IncidentStatusResolved {
		bikeStatus = domain.MotorbikeStatusDamaged
	}
	if err := s.repos.Motorbikes.UpdateStatus(txCtx, contract.MotorbikeID, bikeStatus); err != nil {
		return nil, err
	}
	if err := s.repos.Tx.Commit(txCtx); err != nil {
		return nil, err
	}

	breakdown := pricing.Breakdown(contract, incident)
	logger.InfoContext(ctx, "contract settled",
		"contract_id", id,
		"late_fee", breakdown.LateReturnFee.String(),
		"damage_cost", breakdown.DamageCost.String(),
		"amount_due", breakdown.AmountDue.String(),
	)
	s.metrics.ContractSettled()
	return &breakdown, nil
}

// CancelStalePending cancels Pending contracts that were never activated
// within the activation window. Each contract gets its own transaction so
// one failure does not hold back the rest.
func (s *contractService) CancelStalePending(ctx context.Context) (int, error) {
	cutoff := s.clock.Now().Add(-s.rules.ActivationWindow)
	stale, err := s.repos.Contracts.ListStalePending(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, c := range stale {
		if err := s.cancelStale(ctx, c.ID); err != nil {
			logger.ErrorContext(ctx, "failed to cancel stale contract", "contract_id", c.ID, "error", err)
			continue
		}
		cancelled++
		s.metrics.ContractCancelled("expired")
	}
	if cancelled > 0 {
		logger.InfoContext(ctx, "stale pending contracts cancelled", "count", cancelled, "found", len(stale))
	}
	return cancelled, nil
}

func (s *contractService) cancelStale(ctx context.Context, id int64) error {
	txCtx, err := s.repos.Tx.Begin(ctx)
	if err != nil {
		return err
	}
	defer s.repos.Tx.Rollback(txCtx)

	if err := s.cancel(txCtx, id, "not activated within the activation window"); err != nil {
		return err
	}
	return s.repos.Tx.Commit(txCtx)
}

func motorbikeStatusFor(status domain.ContractStatus) domain.MotorbikeStatus {
	if status == domain.ContractStatusActive {
		return domain.MotorbikeStatusRented
	}
	return domain.MotorbikeStatusReserved
}

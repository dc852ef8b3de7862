package validator

import (
	"time"

	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
)

// ContractCreation checks the status rules for a new contract: only Pending
// or Active, and the id card is held exactly when the contract is Active.
func ContractCreation(c *domain.RentalContract) error {
	if c.Status != domain.ContractStatusPending && c.Status != domain.ContractStatusActive {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "a new contract must be PENDING or ACTIVE, got %s", c.Status)
	}
	if c.IDCardHeld != (c.Status == domain.ContractStatusActive) {
		return domain.BusinessRule(domain.CodeIDCardMismatch, "id card must be held if and only if the contract is ACTIVE")
	}
	if !c.RentalType.Valid() {
		return domain.Validation(domain.CodeInvalidRentalType, "unknown rental type %q", c.RentalType)
	}
	if !c.ExpectedReturnDate.After(c.RentalDate) {
		return domain.Validation(domain.CodeInvalidRentalPeriod, "expected return date must be after rental date")
	}
	return nil
}

// ContractTotal checks a caller supplied total against the computed
// ceiling (base price minus discount).
func ContractTotal(total, maxTotal decimal.Decimal) error {
	if !total.IsPositive() {
		return domain.Validation(domain.CodeInvalidAmount, "total amount must be positive")
	}
	if total.GreaterThan(maxTotal) {
		return domain.BusinessRule(domain.CodeTotalExceedsPrice, "total amount %s exceeds computed price %s", total, maxTotal)
	}
	return nil
}

// ContractActivation allows Pending contracts to start from tolerance
// before the rental date up to window after it.
func ContractActivation(c *domain.RentalContract, now time.Time, tolerance, window time.Duration) error {
	if c.Status != domain.ContractStatusPending {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "only PENDING contracts can be activated, contract is %s", c.Status)
	}
	earliest := c.RentalDate.Add(-tolerance)
	latest := c.RentalDate.Add(window)
	if now.Before(earliest) || now.After(latest) {
		return domain.BusinessRule(domain.CodeActivationWindow, "contract can be activated between %s and %s",
			earliest.Format(time.RFC3339), latest.Format(time.RFC3339))
	}
	return nil
}

func ContractCancellation(c *domain.RentalContract) error {
	if c.Status != domain.ContractStatusPending {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "only PENDING contracts can be cancelled, contract is %s", c.Status)
	}
	return nil
}

func ContractSettlement(c *domain.RentalContract, actualReturn time.Time) error {
	if c.Status != domain.ContractStatusActive && c.Status != domain.ContractStatusProcessingIncident {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "only ACTIVE or PROCESSING_INCIDENT contracts can be settled, contract is %s", c.Status)
	}
	if actualReturn.Before(c.RentalDate) {
		return domain.Validation(domain.CodeInvalidRentalPeriod, "actual return date cannot precede the rental date")
	}
	return nil
}

func ContractPayment(c *domain.RentalContract, paymentDate time.Time) error {
	if c.Status != domain.ContractStatusCompleted {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "only COMPLETED contracts can be paid, contract is %s", c.Status)
	}
	if c.IsPaid {
		return domain.BusinessRule(domain.CodeContractAlreadyPaid, "contract %d is already paid", c.ID)
	}
	if paymentDate.Before(c.RentalDate) {
		return domain.BusinessRule(domain.CodePaymentBeforeRental, "payment date cannot precede the rental date")
	}
	return nil
}

// IncidentReport requires an Active contract and an incident dated within
// the rental.
func IncidentReport(c *domain.RentalContract, incident *domain.Incident) error {
	if c.Status != domain.ContractStatusActive {
		return domain.BusinessRule(domain.CodeInvalidContractStatus, "incidents can only be reported on ACTIVE contracts, contract is %s", c.Status)
	}
	if incident.DamageCost.IsNegative() {
		return domain.Validation(domain.CodeInvalidAmount, "damage cost cannot be negative")
	}
	if incident.IncidentDate.Before(c.RentalDate) {
		return domain.Validation(domain.CodeInvalidRequest, "incident date cannot precede the rental date")
	}
	return nil
}

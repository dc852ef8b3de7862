package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "CASH"
	PaymentMethodCard     PaymentMethod = "CARD"
	PaymentMethodTransfer PaymentMethod = "TRANSFER"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard || m == PaymentMethodTransfer
}

type Payment struct {
	ID          int64           `json:"id"`
	ContractID  int64           `json:"contract_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      PaymentMethod   `json:"method"`
	Reference   string          `json:"reference"`
	EmployeeID  int64           `json:"employee_id"`
	Notes       string          `json:"notes"`
	CreatedOn   time.Time       `json:"created_on"`
}

type PaymentFilter struct {
	From     *time.Time
	To       *time.Time
	Method   PaymentMethod
	Page     int
	PageSize int
}

// SettlementBreakdown itemises the amount due on a completed contract.
type SettlementBreakdown struct {
	ContractID    int64           `json:"contract_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	LateReturnFee decimal.Decimal `json:"late_return_fee"`
	DamageCost    decimal.Decimal `json:"damage_cost"`
	AmountDue     decimal.Decimal `json:"amount_due"`
	DepositAmount decimal.Decimal `json:"deposit_amount"`
}

package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type ContractStatus string

const (
	ContractStatusPending            ContractStatus = "PENDING"
	ContractStatusActive             ContractStatus = "ACTIVE"
	ContractStatusProcessingIncident ContractStatus = "PROCESSING_INCIDENT"
	ContractStatusCompleted          ContractStatus = "COMPLETED"
	ContractStatusCancelled          ContractStatus = "CANCELLED"
)

// Open reports whether the contract still holds its motorbike.
func (s ContractStatus) Open() bool {
	return s == ContractStatusPending || s == ContractStatusActive || s == ContractStatusProcessingIncident
}

type RentalType string

const (
	RentalTypeHourly RentalType = "HOURLY"
	RentalTypeDaily  RentalType = "DAILY"
)

func (t RentalType) Valid() bool {
	return t == RentalTypeHourly || t == RentalTypeDaily
}

type RentalContract struct {
	ID                      int64               `json:"id"`
	CustomerID              int64               `json:"customer_id"`
	MotorbikeID             int64               `json:"motorbike_id"`
	EmployeeID              int64               `json:"employee_id"`
	DiscountID              *int64              `json:"discount_id,omitempty"`
	RentalDate              time.Time           `json:"rental_date"`
	ExpectedReturnDate      time.Time           `json:"expected_return_date"`
	ActualReturnDate        *time.Time          `json:"actual_return_date,omitempty"`
	TotalAmount             decimal.Decimal     `json:"total_amount"`
	DiscountAmount          decimal.NullDecimal `json:"discount_amount"`
	DepositAmount           decimal.Decimal     `json:"deposit_amount"`
	LateReturnFee           decimal.NullDecimal `json:"late_return_fee"`
	LateReturnFeeMultiplier decimal.Decimal     `json:"late_return_fee_multiplier"`
	Status                  ContractStatus      `json:"status"`
	RentalType              RentalType          `json:"rental_type"`
	IsPaid                  bool                `json:"is_paid"`
	IDCardHeld              bool                `json:"id_card_held"`
	Notes                   string              `json:"notes"`
	CreatedOn               time.Time           `json:"created_on"`
	UpdatedOn               time.Time           `json:"updated_on"`
}

// ContractDetail is a read model joining display names onto a contract.
type ContractDetail struct {
	RentalContract
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	LicensePlate  string `json:"license_plate"`
	MotorbikeName string `json:"motorbike_name"`
	EmployeeName  string `json:"employee_name"`
	DiscountName  string `json:"discount_name,omitempty"`
}

type ContractFilter struct {
	Status      ContractStatus
	CustomerID  int64
	MotorbikeID int64
	From        *time.Time
	To          *time.Time
	Page        int
	PageSize    int
}

// PriceQuote is the computed price for a prospective contract. MaxTotal is
// the ceiling a caller supplied TotalAmount must respect.
type PriceQuote struct {
	BasePrice      decimal.Decimal     `json:"base_price"`
	DiscountAmount decimal.NullDecimal `json:"discount_amount"`
	MaxTotal       decimal.Decimal     `json:"max_total"`
	DepositAmount  decimal.Decimal     `json:"deposit_amount"`
}

package service

import (
	"time"

	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
)

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	Employee  *domain.Employee
}

type CreateEmployeeInput struct {
	FullName string      `json:"full_name" validate:"required,max=100"`
	Email    string      `json:"email" validate:"required,email"`
	Phone    string      `json:"phone" validate:"max=20"`
	Role     domain.Role `json:"role" validate:"required,oneof=ADMIN MANAGER STAFF"`
	Password string      `json:"password" validate:"required,min=8,max=72"`
}

type CategoryInput struct {
	Name          string          `json:"name" validate:"required,max=100"`
	Description   string          `json:"description" validate:"max=500"`
	DepositAmount decimal.Decimal `json:"deposit_amount" validate:"dgte=0"`
}

type PriceListInput struct {
	Name       string          `json:"name" validate:"required,max=100"`
	HourlyRate decimal.Decimal `json:"hourly_rate" validate:"dgt=0"`
	DailyRate  decimal.Decimal `json:"daily_rate" validate:"dgt=0"`
}

type MotorbikeInput struct {
	LicensePlate string `json:"license_plate" validate:"required,max=20"`
	Brand        string `json:"brand" validate:"required,max=50"`
	Model        string `json:"model" validate:"required,max=50"`
	Year         int    `json:"year" validate:"required"`
	Color        string `json:"color" validate:"max=30"`
	CategoryID   int64  `json:"category_id" validate:"required,gt=0"`
	PriceListID  int64  `json:"price_list_id" validate:"required,gt=0"`
	Description  string `json:"description" validate:"max=1000"`
}

type CustomerInput struct {
	FullName     string `json:"full_name" validate:"required,max=100"`
	Phone        string `json:"phone" validate:"required,max=20"`
	Email        string `json:"email" validate:"omitempty,email"`
	IDCardNumber string `json:"id_card_number" validate:"required,max=20"`
	Address      string `json:"address" validate:"max=255"`
}

type DiscountInput struct {
	Name        string    `json:"name" validate:"required,max=100"`
	Description string    `json:"description" validate:"max=500"`
	Value       int       `json:"value" validate:"required,min=1,max=100"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	EndDate     time.Time `json:"end_date" validate:"required"`
	IsActive    bool      `json:"is_active"`
	CategoryIDs []int64   `json:"category_ids" validate:"required,min=1,dive,gt=0"`
}

type QuoteInput struct {
	MotorbikeID        int64             `json:"motorbike_id" validate:"required,gt=0"`
	DiscountID         *int64            `json:"discount_id"`
	RentalDate         time.Time         `json:"rental_date" validate:"required"`
	ExpectedReturnDate time.Time         `json:"expected_return_date" validate:"required"`
	RentalType         domain.RentalType `json:"rental_type" validate:"required,oneof=HOURLY DAILY"`
}

type CreateContractInput struct {
	CustomerID         int64                 `json:"customer_id" validate:"required,gt=0"`
	MotorbikeID        int64                 `json:"motorbike_id" validate:"required,gt=0"`
	DiscountID         *int64                `json:"discount_id"`
	RentalDate         time.Time             `json:"rental_date" validate:"required"`
	ExpectedReturnDate time.Time             `json:"expected_return_date" validate:"required"`
	RentalType         domain.RentalType     `json:"rental_type" validate:"required,oneof=HOURLY DAILY"`
	TotalAmount        decimal.Decimal       `json:"total_amount" validate:"dgt=0"`
	Status             domain.ContractStatus `json:"status" validate:"required,oneof=PENDING ACTIVE"`
	IDCardHeld         bool                  `json:"id_card_held"`
	Notes              string                `json:"notes" validate:"max=1000"`
}

type SettleContractInput struct {
	// ActualReturnDate defaults to now.
	ActualReturnDate *time.Time `json:"actual_return_date"`
	Notes            string     `json:"notes" validate:"max=1000"`
}

type ReportIncidentInput struct {
	Description  string          `json:"description" validate:"required,max=2000"`
	IncidentDate time.Time       `json:"incident_date" validate:"required"`
	DamageCost   decimal.Decimal `json:"damage_cost" validate:"dgte=0"`
}

type ResolveIncidentInput struct {
	ResolutionNotes string           `json:"resolution_notes" validate:"max=2000"`
	DamageCost      *decimal.Decimal `json:"damage_cost"`
}

type ProcessPaymentInput struct {
	Method domain.PaymentMethod `json:"method" validate:"required,oneof=CASH CARD TRANSFER"`
	// PaymentDate defaults to now.
	PaymentDate *time.Time `json:"payment_date"`
	// PaymentMethodID is the processor token for CARD payments.
	PaymentMethodID string `json:"payment_method_id"`
	Reference       string `json:"reference" validate:"max=100"`
	Notes           string `json:"notes" validate:"max=1000"`
}

type CreateMaintenanceInput struct {
	MotorbikeID int64     `json:"motorbike_id" validate:"required,gt=0"`
	Description string    `json:"description" validate:"required,max=2000"`
	StartDate   time.Time `json:"start_date" validate:"required"`
}

type CompleteMaintenanceInput struct {
	Cost decimal.Decimal `json:"cost" validate:"dgte=0"`
	// EndDate defaults to now.
	EndDate *time.Time `json:"end_date"`
}

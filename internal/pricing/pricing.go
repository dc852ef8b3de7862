// Package pricing computes rental prices, discounts, late fees and
// settlement totals. Every function is pure: callers load the inputs and
// pass the current time explicitly.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"

	"motorent-backoffice/internal/domain"
)

const hoursPerDay = 24

var (
	hundred = decimal.NewFromInt(100)

	// DefaultLateFeeMultiplier applies when a contract carries no multiplier.
	DefaultLateFeeMultiplier = decimal.NewFromFloat(2.0)
)

// ceilPeriods returns the number of started periods in d. An exact multiple
// of period yields exactly that many periods.
func ceilPeriods(d, period time.Duration) int64 {
	n := int64(d / period)
	if d%period != 0 {
		n++
	}
	return n
}

// CalculateBasePrice charges ceil(hours) x HourlyRate for hourly rentals and
// ceil(days) x DailyRate for daily rentals.
func CalculateBasePrice(rentalDate, expectedReturnDate time.Time, rentalType domain.RentalType, rates *domain.PriceList) (decimal.Decimal, error) {
	if rates == nil {
		return decimal.Zero, domain.NotFound(domain.CodePriceListNotFound, "price list is required")
	}
	d := expectedReturnDate.Sub(rentalDate)
	if d <= 0 {
		return decimal.Zero, domain.Validation(domain.CodeInvalidRentalPeriod, "expected return date must be after rental date")
	}

	switch rentalType {
	case domain.RentalTypeHourly:
		hours := ceilPeriods(d, time.Hour)
		return rates.HourlyRate.Mul(decimal.NewFromInt(hours)), nil
	case domain.RentalTypeDaily:
		days := ceilPeriods(d, hoursPerDay*time.Hour)
		return rates.DailyRate.Mul(decimal.NewFromInt(days)), nil
	default:
		return decimal.Zero, domain.Validation(domain.CodeInvalidRentalType, "unknown rental type %q", rentalType)
	}
}

// ApplyDiscount returns the discount amount for basePrice. A nil discount
// yields a null amount. A supplied discount that is inactive at `at`, or
// does not cover categoryID, is rejected.
func ApplyDiscount(basePrice decimal.Decimal, discount *domain.Discount, categoryID int64, at time.Time) (decimal.NullDecimal, error) {
	if discount == nil {
		return decimal.NullDecimal{}, nil
	}
	if !discount.ActiveAt(at) {
		return decimal.NullDecimal{}, domain.BusinessRule(domain.CodeDiscountInactive, "discount %q is not active", discount.Name)
	}
	if !discount.CoversCategory(categoryID) {
		return decimal.NullDecimal{}, domain.BusinessRule(domain.CodeDiscountNotApplicable, "discount %q does not apply to this motorbike category", discount.Name)
	}

	amount := basePrice.Mul(decimal.NewFromInt(int64(discount.Value))).Div(hundred)
	return decimal.NewNullDecimal(amount), nil
}

// CalculateLateReturnFee is always charged at the hourly rate, whatever the
// rental type: ceil(late hours) x HourlyRate x multiplier.
func CalculateLateReturnFee(actualReturn, expectedReturn time.Time, multiplier, hourlyRate decimal.Decimal) decimal.Decimal {
	late := actualReturn.Sub(expectedReturn)
	if late <= 0 {
		return decimal.Zero
	}
	if multiplier.IsZero() {
		multiplier = DefaultLateFeeMultiplier
	}
	hours := ceilPeriods(late, time.Hour)
	return hourlyRate.Mul(decimal.NewFromInt(hours)).Mul(multiplier)
}

// CalculateSettlementTotal sums TotalAmount, the late fee and the incident
// damage cost, treating missing terms as zero.
func CalculateSettlementTotal(contract *domain.RentalContract, incident *domain.Incident) decimal.Decimal {
	total := contract.TotalAmount
	if contract.LateReturnFee.Valid {
		total = total.Add(contract.LateReturnFee.Decimal)
	}
	if incident != nil {
		total = total.Add(incident.DamageCost)
	}
	return total
}

// Breakdown itemises CalculateSettlementTotal.
func Breakdown(contract *domain.RentalContract, incident *domain.Incident) domain.SettlementBreakdown {
	b := domain.SettlementBreakdown{
		ContractID:    contract.ID,
		TotalAmount:   contract.TotalAmount,
		LateReturnFee: decimal.Zero,
		DamageCost:    decimal.Zero,
		DepositAmount: contract.DepositAmount,
	}
	if contract.LateReturnFee.Valid {
		b.LateReturnFee = contract.LateReturnFee.Decimal
	}
	if incident != nil {
		b.DamageCost = incident.DamageCost
	}
	b.AmountDue = CalculateSettlementTotal(contract, incident)
	return b
}

// QuoteInput carries everything needed to price a prospective contract.
type QuoteInput struct {
	RentalDate         time.Time
	ExpectedReturnDate time.Time
	RentalType         domain.RentalType
	Motorbike          *domain.Motorbike
	PriceList          *domain.PriceList
	Category           *domain.Category
	Discount           *domain.Discount
	At                 time.Time
}

// Quote prices a prospective contract. MaxTotal is base minus discount.
func Quote(in QuoteInput) (domain.PriceQuote, error) {
	base, err := CalculateBasePrice(in.RentalDate, in.ExpectedReturnDate, in.RentalType, in.PriceList)
	if err != nil {
		return domain.PriceQuote{}, err
	}
	discount, err := ApplyDiscount(base, in.Discount, in.Motorbike.CategoryID, in.At)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	q := domain.PriceQuote{
		BasePrice:      base,
		DiscountAmount: discount,
		MaxTotal:       base,
		DepositAmount:  decimal.Zero,
	}
	if discount.Valid {
		q.MaxTotal = base.Sub(discount.Decimal)
	}
	if in.Category != nil {
		q.DepositAmount = in.Category.DepositAmount
	}
	return q, nil
}

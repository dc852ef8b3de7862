package validator

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/domain"
)

var rentalDate = time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)

func code(t *testing.T, err error) string {
	t.Helper()
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr.Code
}

type sampleRequest struct {
	Name   string          `json:"name" validate:"required"`
	Email  string          `json:"email" validate:"omitempty,email"`
	Amount decimal.Decimal `json:"amount" validate:"dgt=0"`
}

type boundedRequest struct {
	Rate decimal.Decimal `json:"rate" validate:"dgte=0.1,dlte=99.99"`
}

func TestStruct(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		assert.NoError(t, Struct(sampleRequest{Name: "a", Amount: decimal.NewFromInt(5)}))
	})

	t.Run("Missing field uses json name", func(t *testing.T) {
		err := Struct(sampleRequest{Amount: decimal.NewFromInt(5)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
		assert.True(t, domain.IsKind(err, domain.KindValidation))
	})

	t.Run("Decimal compared as number", func(t *testing.T) {
		err := Struct(sampleRequest{Name: "a", Amount: decimal.Zero})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amount must be greater than 0")
	})

	t.Run("Decimal bounds are exact", func(t *testing.T) {
		assert.NoError(t, Struct(boundedRequest{Rate: decimal.RequireFromString("99.99")}))
		assert.NoError(t, Struct(boundedRequest{Rate: decimal.RequireFromString("0.1")}))

		err := Struct(boundedRequest{Rate: decimal.RequireFromString("99.99000000000000001")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate must be at most 99.99")

		err = Struct(boundedRequest{Rate: decimal.RequireFromString("0.09999999999999999999")})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate must be at least 0.1")
	})

	t.Run("Tiny positive amount passes", func(t *testing.T) {
		assert.NoError(t, Struct(sampleRequest{Name: "a", Amount: decimal.New(1, -30)}))
	})
}

func TestContractCreation(t *testing.T) {
	base := func() *domain.RentalContract {
		return &domain.RentalContract{
			Status:             domain.ContractStatusPending,
			RentalType:         domain.RentalTypeHourly,
			RentalDate:         rentalDate,
			ExpectedReturnDate: rentalDate.Add(150 * time.Minute),
		}
	}

	assert.NoError(t, ContractCreation(base()))

	active := base()
	active.Status = domain.ContractStatusActive
	active.IDCardHeld = true
	assert.NoError(t, ContractCreation(active))

	tests := []struct {
		name   string
		mutate func(*domain.RentalContract)
		code   string
	}{
		{"Completed status", func(c *domain.RentalContract) { c.Status = domain.ContractStatusCompleted }, domain.CodeInvalidContractStatus},
		{"Pending holding card", func(c *domain.RentalContract) { c.IDCardHeld = true }, domain.CodeIDCardMismatch},
		{"Active without card", func(c *domain.RentalContract) { c.Status = domain.ContractStatusActive }, domain.CodeIDCardMismatch},
		{"Return before rental", func(c *domain.RentalContract) { c.ExpectedReturnDate = c.RentalDate }, domain.CodeInvalidRentalPeriod},
		{"Unknown type", func(c *domain.RentalContract) { c.RentalType = "WEEKLY" }, domain.CodeInvalidRentalType},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := base()
			tt.mutate(c)
			assert.Equal(t, tt.code, code(t, ContractCreation(c)))
		})
	}
}

func TestContractTotal(t *testing.T) {
	max := decimal.NewFromInt(54000)
	assert.NoError(t, ContractTotal(decimal.NewFromInt(54000), max))
	assert.NoError(t, ContractTotal(decimal.NewFromInt(50000), max))
	assert.Equal(t, domain.CodeTotalExceedsPrice, code(t, ContractTotal(decimal.NewFromInt(54001), max)))
	assert.Equal(t, domain.CodeInvalidAmount, code(t, ContractTotal(decimal.Zero, max)))
}

func TestContractActivation(t *testing.T) {
	c := &domain.RentalContract{Status: domain.ContractStatusPending, RentalDate: rentalDate}
	tolerance, window := 30*time.Minute, 10*time.Hour

	assert.NoError(t, ContractActivation(c, rentalDate, tolerance, window))
	assert.NoError(t, ContractActivation(c, rentalDate.Add(-30*time.Minute), tolerance, window))
	assert.NoError(t, ContractActivation(c, rentalDate.Add(10*time.Hour), tolerance, window))
	assert.Equal(t, domain.CodeActivationWindow, code(t, ContractActivation(c, rentalDate.Add(-31*time.Minute), tolerance, window)))
	assert.Equal(t, domain.CodeActivationWindow, code(t, ContractActivation(c, rentalDate.Add(10*time.Hour+time.Second), tolerance, window)))

	active := &domain.RentalContract{Status: domain.ContractStatusActive, RentalDate: rentalDate}
	assert.Equal(t, domain.CodeInvalidContractStatus, code(t, ContractActivation(active, rentalDate, tolerance, window)))
}

func TestContractSettlement(t *testing.T) {
	for _, status := range []domain.ContractStatus{domain.ContractStatusActive, domain.ContractStatusProcessingIncident} {
		assert.NoError(t, ContractSettlement(&domain.RentalContract{Status: status, RentalDate: rentalDate}, rentalDate.Add(time.Hour)))
	}
	for _, status := range []domain.ContractStatus{domain.ContractStatusPending, domain.ContractStatusCompleted, domain.ContractStatusCancelled} {
		err := ContractSettlement(&domain.RentalContract{Status: status, RentalDate: rentalDate}, rentalDate.Add(time.Hour))
		assert.Equal(t, domain.CodeInvalidContractStatus, code(t, err))
	}
}

func TestContractPayment(t *testing.T) {
	completed := &domain.RentalContract{ID: 1, Status: domain.ContractStatusCompleted, RentalDate: rentalDate}
	assert.NoError(t, ContractPayment(completed, rentalDate.Add(5*time.Hour)))
	assert.Equal(t, domain.CodePaymentBeforeRental, code(t, ContractPayment(completed, rentalDate.Add(-time.Minute))))

	paid := *completed
	paid.IsPaid = true
	assert.Equal(t, domain.CodeContractAlreadyPaid, code(t, ContractPayment(&paid, rentalDate.Add(time.Hour))))

	active := *completed
	active.Status = domain.ContractStatusActive
	assert.Equal(t, domain.CodeInvalidContractStatus, code(t, ContractPayment(&active, rentalDate.Add(time.Hour))))
}

func TestIncidentReport(t *testing.T) {
	c := &domain.RentalContract{Status: domain.ContractStatusActive, RentalDate: rentalDate}
	ok := &domain.Incident{IncidentDate: rentalDate.Add(time.Hour), DamageCost: decimal.NewFromInt(15000)}
	assert.NoError(t, IncidentReport(c, ok))

	negative := *ok
	negative.DamageCost = decimal.NewFromInt(-1)
	assert.Equal(t, domain.CodeInvalidAmount, code(t, IncidentReport(c, &negative)))

	pending := &domain.RentalContract{Status: domain.ContractStatusPending, RentalDate: rentalDate}
	assert.Equal(t, domain.CodeInvalidContractStatus, code(t, IncidentReport(pending, ok)))
}

func TestDiscount(t *testing.T) {
	valid := &domain.Discount{Value: 10, StartDate: rentalDate, EndDate: rentalDate.Add(time.Hour), CategoryIDs: []int64{1}}
	assert.NoError(t, Discount(valid))

	for name, d := range map[string]domain.Discount{
		"Zero value":      {Value: 0, StartDate: rentalDate, EndDate: rentalDate, CategoryIDs: []int64{1}},
		"Over 100":        {Value: 101, StartDate: rentalDate, EndDate: rentalDate, CategoryIDs: []int64{1}},
		"Reversed dates":  {Value: 5, StartDate: rentalDate.Add(time.Hour), EndDate: rentalDate, CategoryIDs: []int64{1}},
		"No categories":   {Value: 5, StartDate: rentalDate, EndDate: rentalDate},
		"Duplicate entry": {Value: 5, StartDate: rentalDate, EndDate: rentalDate, CategoryIDs: []int64{1, 1}},
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, domain.IsKind(Discount(&d), domain.KindValidation))
		})
	}
}

func TestMotorbikeStatusChange(t *testing.T) {
	assert.NoError(t, MotorbikeStatusChange(domain.MotorbikeStatusAvailable, domain.MotorbikeStatusOutOfService))
	assert.NoError(t, MotorbikeStatusChange(domain.MotorbikeStatusDamaged, domain.MotorbikeStatusAvailable))
	assert.Equal(t, domain.CodeInvalidStatusChange, code(t, MotorbikeStatusChange(domain.MotorbikeStatusAvailable, domain.MotorbikeStatusRented)))
	assert.Equal(t, domain.CodeInvalidStatusChange, code(t, MotorbikeStatusChange(domain.MotorbikeStatusRented, domain.MotorbikeStatusAvailable)))
	assert.Equal(t, domain.CodeInvalidRequest, code(t, MotorbikeStatusChange(domain.MotorbikeStatusAvailable, "FLYING")))

	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	assert.NoError(t, MotorbikeYear(2026, now))
	assert.Error(t, MotorbikeYear(2027, now))
	assert.Error(t, MotorbikeYear(1949, now))
}

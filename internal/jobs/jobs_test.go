package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"motorent-backoffice/internal/config"
	"motorent-backoffice/internal/service"
)

type mockDiscountService struct {
	service.DiscountService
	mock.Mock
}

func (m *mockDiscountService) ExpireDiscounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

type mockContractService struct {
	service.ContractService
	mock.Mock
}

func (m *mockContractService) CancelStalePending(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestRunAll(t *testing.T) {
	discounts := new(mockDiscountService)
	contracts := new(mockContractService)
	discounts.On("ExpireDiscounts", mock.Anything).Return(2, nil)
	contracts.On("CancelStalePending", mock.Anything).Return(0, errors.New("db down"))

	jr := NewJobRunner(&Services{Discount: discounts, Contract: contracts}, &config.Config{})
	jr.RunAll()

	discounts.AssertExpectations(t)
	contracts.AssertExpectations(t)
}

func TestJobContextHasDeadline(t *testing.T) {
	discounts := new(mockDiscountService)
	discounts.On("ExpireDiscounts", mock.MatchedBy(func(ctx context.Context) bool {
		_, ok := ctx.Deadline()
		return ok
	})).Return(0, nil)

	jr := NewJobRunner(&Services{Discount: discounts}, &config.Config{})
	jr.ExpireDiscounts()
	discounts.AssertExpectations(t)
}

func TestRunWithRecovery(t *testing.T) {
	jr := NewJobRunner(&Services{}, &config.Config{})
	assert.NotPanics(t, func() {
		jr.runWithRecovery("boom", func(ctx context.Context) { panic("boom") })
	})
}

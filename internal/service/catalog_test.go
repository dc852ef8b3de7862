package service_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func TestCatalogService_CreateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		categories := new(MockCategoryRepo)
		svc := service.NewCatalogService(categories, new(MockPriceListRepo))

		categories.On("Create", ctx, mock.MatchedBy(func(c *domain.Category) bool {
			return c.Name == "Scooter" && c.DepositAmount.Equal(dec(500000))
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*domain.Category).ID = 11
		}).Return(nil)

		c, err := svc.CreateCategory(ctx, service.CategoryInput{Name: "Scooter", DepositAmount: dec(500000)})
		require.NoError(t, err)
		assert.Equal(t, int64(11), c.ID)
		categories.AssertExpectations(t)
	})

	t.Run("MissingName", func(t *testing.T) {
		categories := new(MockCategoryRepo)
		svc := service.NewCatalogService(categories, new(MockPriceListRepo))

		_, err := svc.CreateCategory(ctx, service.CategoryInput{DepositAmount: dec(1)})
		assert.Equal(t, domain.CodeInvalidRequest, appCode(t, err))
		categories.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("NegativeDeposit", func(t *testing.T) {
		svc := service.NewCatalogService(new(MockCategoryRepo), new(MockPriceListRepo))

		_, err := svc.CreateCategory(ctx, service.CategoryInput{Name: "Scooter", DepositAmount: dec(-1)})
		assert.Equal(t, domain.CodeInvalidRequest, appCode(t, err))
	})
}

func TestCatalogService_UpdateCategory(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		categories := new(MockCategoryRepo)
		svc := service.NewCatalogService(categories, new(MockPriceListRepo))

		existing := &domain.Category{ID: 4, Name: "Old", DepositAmount: dec(100)}
		categories.On("GetByID", ctx, int64(4)).Return(existing, nil)
		categories.On("Update", ctx, existing).Return(nil)

		c, err := svc.UpdateCategory(ctx, 4, service.CategoryInput{Name: "Touring", Description: "big bikes", DepositAmount: dec(2000000)})
		require.NoError(t, err)
		assert.Equal(t, "Touring", c.Name)
		assert.Equal(t, "big bikes", c.Description)
		assert.True(t, c.DepositAmount.Equal(dec(2000000)))
		categories.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		categories := new(MockCategoryRepo)
		svc := service.NewCatalogService(categories, new(MockPriceListRepo))

		categories.On("GetByID", ctx, int64(9)).
			Return(nil, domain.NotFound(domain.CodeCategoryNotFound, "category %d not found", 9))

		_, err := svc.UpdateCategory(ctx, 9, service.CategoryInput{Name: "X"})
		assert.Equal(t, domain.CodeCategoryNotFound, appCode(t, err))
		categories.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCatalogService_DeleteCategoryInUse(t *testing.T) {
	ctx := context.Background()
	categories := new(MockCategoryRepo)
	svc := service.NewCatalogService(categories, new(MockPriceListRepo))

	categories.On("Delete", ctx, int64(2)).
		Return(domain.BusinessRule(domain.CodeInUse, "category 2 is still referenced"))

	err := svc.DeleteCategory(ctx, 2)
	assert.Equal(t, domain.CodeInUse, appCode(t, err))
}

func TestCatalogService_PriceLists(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateRejectsZeroRate", func(t *testing.T) {
		priceLists := new(MockPriceListRepo)
		svc := service.NewCatalogService(new(MockCategoryRepo), priceLists)

		_, err := svc.CreatePriceList(ctx, service.PriceListInput{Name: "Free", HourlyRate: decimal.Zero, DailyRate: dec(100)})
		assert.Equal(t, domain.CodeInvalidRequest, appCode(t, err))
		priceLists.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("CreateSuccess", func(t *testing.T) {
		priceLists := new(MockPriceListRepo)
		svc := service.NewCatalogService(new(MockCategoryRepo), priceLists)

		priceLists.On("Create", ctx, mock.AnythingOfType("*domain.PriceList")).Return(nil)

		p, err := svc.CreatePriceList(ctx, service.PriceListInput{Name: "Standard", HourlyRate: dec(20000), DailyRate: dec(150000)})
		require.NoError(t, err)
		assert.Equal(t, "Standard", p.Name)
		assert.True(t, p.DailyRate.Equal(dec(150000)))
	})

	t.Run("UpdateOverwritesRates", func(t *testing.T) {
		priceLists := new(MockPriceListRepo)
		svc := service.NewCatalogService(new(MockCategoryRepo), priceLists)

		existing := &domain.PriceList{ID: 1, Name: "Standard", HourlyRate: dec(20000), DailyRate: dec(150000)}
		priceLists.On("GetByID", ctx, int64(1)).Return(existing, nil)
		priceLists.On("Update", ctx, existing).Return(nil)

		p, err := svc.UpdatePriceList(ctx, 1, service.PriceListInput{Name: "Standard", HourlyRate: dec(25000), DailyRate: dec(180000)})
		require.NoError(t, err)
		assert.True(t, p.HourlyRate.Equal(dec(25000)))
		assert.True(t, p.DailyRate.Equal(dec(180000)))
		priceLists.AssertExpectations(t)
	})

	t.Run("List", func(t *testing.T) {
		priceLists := new(MockPriceListRepo)
		svc := service.NewCatalogService(new(MockCategoryRepo), priceLists)

		priceLists.On("List", ctx).Return([]domain.PriceList{{ID: 1}, {ID: 2}}, nil)

		items, err := svc.ListPriceLists(ctx)
		require.NoError(t, err)
		assert.Len(t, items, 2)
	})
}

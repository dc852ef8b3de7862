package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

func TestCustomerService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("NormalizesFields", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		svc := service.NewCustomerService(customers)

		customers.On("Create", ctx, mock.AnythingOfType("*domain.Customer")).Return(nil)

		c, err := svc.Create(ctx, service.CustomerInput{
			FullName:     "  Tran Thi B ",
			Phone:        " 0901234567",
			Email:        " B.Tran@Example.COM ",
			IDCardNumber: " ab123456 ",
			Address:      "12 Le Loi",
		})
		require.NoError(t, err)
		assert.Equal(t, "Tran Thi B", c.FullName)
		assert.Equal(t, "0901234567", c.Phone)
		assert.Equal(t, "b.tran@example.com", c.Email)
		assert.Equal(t, "AB123456", c.IDCardNumber)
		assert.Equal(t, "12 Le Loi", c.Address)
		customers.AssertExpectations(t)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		svc := service.NewCustomerService(customers)

		_, err := svc.Create(ctx, service.CustomerInput{FullName: "A", Phone: "1", Email: "not-an-email", IDCardNumber: "X1"})
		assert.Equal(t, domain.CodeInvalidRequest, appCode(t, err))
		customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("MissingIDCard", func(t *testing.T) {
		svc := service.NewCustomerService(new(MockCustomerRepo))

		_, err := svc.Create(ctx, service.CustomerInput{FullName: "A", Phone: "1"})
		assert.Equal(t, domain.CodeInvalidRequest, appCode(t, err))
	})

	t.Run("DuplicateIDCard", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		svc := service.NewCustomerService(customers)

		customers.On("Create", ctx, mock.Anything).
			Return(domain.BusinessRule(domain.CodeDuplicate, "id card number already registered"))

		_, err := svc.Create(ctx, service.CustomerInput{FullName: "A", Phone: "1", IDCardNumber: "X1"})
		assert.Equal(t, domain.CodeDuplicate, appCode(t, err))
	})
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		svc := service.NewCustomerService(customers)

		existing := &domain.Customer{ID: 5, FullName: "Old Name", Phone: "0900000000", IDCardNumber: "OLD"}
		customers.On("GetByID", ctx, int64(5)).Return(existing, nil)
		customers.On("Update", ctx, existing).Return(nil)

		c, err := svc.Update(ctx, 5, service.CustomerInput{FullName: "New Name", Phone: "0911111111", IDCardNumber: "new1"})
		require.NoError(t, err)
		assert.Equal(t, "New Name", c.FullName)
		assert.Equal(t, "NEW1", c.IDCardNumber)
		assert.Empty(t, c.Email)
		customers.AssertExpectations(t)
	})

	t.Run("NotFound", func(t *testing.T) {
		customers := new(MockCustomerRepo)
		svc := service.NewCustomerService(customers)

		customers.On("GetByID", ctx, int64(99)).
			Return(nil, domain.NotFound(domain.CodeCustomerNotFound, "customer %d not found", 99))

		_, err := svc.Update(ctx, 99, service.CustomerInput{FullName: "A", Phone: "1", IDCardNumber: "X"})
		assert.Equal(t, domain.CodeCustomerNotFound, appCode(t, err))
		customers.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestCustomerService_ListTrimsSearch(t *testing.T) {
	ctx := context.Background()
	customers := new(MockCustomerRepo)
	svc := service.NewCustomerService(customers)

	customers.On("List", ctx, domain.CustomerFilter{Search: "nguyen", Page: 2, PageSize: 10}).
		Return([]domain.Customer{{ID: 1}}, 11, nil)

	items, total, err := svc.List(ctx, domain.CustomerFilter{Search: "  nguyen\t", Page: 2, PageSize: 10})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 11, total)
	customers.AssertExpectations(t)
}

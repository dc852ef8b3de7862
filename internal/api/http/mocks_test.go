package http

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"

	"motorent-backoffice/internal/domain"
	"motorent-backoffice/internal/service"
)

type mockAuthService struct {
	service.AuthService
	mock.Mock
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (*service.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoginResult), args.Error(1)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) error {
	return m.Called(ctx, email).Error(0)
}

type mockEmployeeService struct {
	service.EmployeeService
	mock.Mock
}

func (m *mockEmployeeService) AssignRole(ctx context.Context, actorID, employeeID int64, role domain.Role) (*domain.Employee, error) {
	args := m.Called(ctx, actorID, employeeID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Employee), args.Error(1)
}

type mockCatalogService struct {
	service.CatalogService
	mock.Mock
}

func (m *mockCatalogService) CreateCategory(ctx context.Context, in service.CategoryInput) (*domain.Category, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

type mockMotorbikeService struct {
	service.MotorbikeService
	mock.Mock
}

func (m *mockMotorbikeService) List(ctx context.Context, filter domain.MotorbikeFilter) ([]domain.Motorbike, int, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]domain.Motorbike), args.Int(1), args.Error(2)
}

func (m *mockMotorbikeService) UploadImage(ctx context.Context, id int64, filename string, size int64, contentType string, r io.Reader) (*domain.Motorbike, error) {
	data, _ := io.ReadAll(r)
	args := m.Called(ctx, id, filename, size, contentType, string(data))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Motorbike), args.Error(1)
}

func (m *mockMotorbikeService) ImageURL(ctx context.Context, key string) string {
	if key == "" {
		return ""
	}
	return "http://files.test/files/" + key
}

type mockContractService struct {
	service.ContractService
	mock.Mock
}

func (m *mockContractService) Create(ctx context.Context, employeeID int64, in service.CreateContractInput) (*domain.ContractDetail, error) {
	args := m.Called(ctx, employeeID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractDetail), args.Error(1)
}

func (m *mockContractService) Get(ctx context.Context, id int64) (*domain.ContractDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractDetail), args.Error(1)
}

func (m *mockContractService) Cancel(ctx context.Context, id int64, reason string) (*domain.ContractDetail, error) {
	args := m.Called(ctx, id, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ContractDetail), args.Error(1)
}

func (m *mockContractService) Settle(ctx context.Context, id int64, in service.SettleContractInput) (*domain.SettlementBreakdown, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementBreakdown), args.Error(1)
}

type mockPaymentService struct {
	service.PaymentService
	mock.Mock
}

func (m *mockPaymentService) Process(ctx context.Context, employeeID, contractID int64, in service.ProcessPaymentInput) (*domain.Payment, error) {
	args := m.Called(ctx, employeeID, contractID, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Payment), args.Error(1)
}

type mockMaintenanceService struct {
	service.MaintenanceService
	mock.Mock
}

func (m *mockMaintenanceService) ListByMotorbike(ctx context.Context, motorbikeID int64) ([]domain.Maintenance, error) {
	args := m.Called(ctx, motorbikeID)
	return args.Get(0).([]domain.Maintenance), args.Error(1)
}

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) PingContext(ctx context.Context) error { return f(ctx) }
